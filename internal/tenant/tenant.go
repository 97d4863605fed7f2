// Package tenant хранит идентификатор выбранного клуба в контексте запроса.
package tenant

import (
	"context"
	"errors"
)

// ErrNoGymSelected операция требует выбранного клуба, а он не передан.
var ErrNoGymSelected = errors.New("no gym selected")

type ctxKey struct{}

// WithGym возвращает контекст с выбранным клубом.
func WithGym(ctx context.Context, gymID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, gymID)
}

// GymFrom возвращает выбранный клуб из контекста или пустую строку.
func GymFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Require возвращает ErrNoGymSelected для пустого gymID.
func Require(gymID string) error {
	if gymID == "" {
		return ErrNoGymSelected
	}
	return nil
}
