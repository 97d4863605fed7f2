package repository

import (
	"context"
	"time"

	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
)

const identityColumns = `id, email, password_hash, created_at, updated_at`

func scanIdentity(row interface{ Scan(...any) error }) (*models.Identity, error) {
	var u models.Identity
	if err := row.Scan(&u.UUID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateIdentity сохраняет учётную запись. Почта уникальна.
func (s *Storage) CreateIdentity(ctx context.Context, u models.Identity) error {
	const op = "storage.CreateIdentity"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	_, err := s.DB.ExecContext(ctx, `INSERT INTO auth_users (id, email, password_hash) VALUES ($1, $2, $3)`,
		u.UUID, u.Email, u.PasswordHash)
	return wrap(op, err)
}

// GetIdentityByEmail ищет учётную запись по почте.
func (s *Storage) GetIdentityByEmail(ctx context.Context, email string) (*models.Identity, error) {
	const op = "storage.GetIdentityByEmail"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	u, err := scanIdentity(s.DB.QueryRowContext(ctx, `SELECT `+identityColumns+` FROM auth_users
		WHERE lower(email) = lower($1)`, email))
	if err != nil {
		return nil, wrap(op, err)
	}
	return u, nil
}

// GetIdentity ищет учётную запись по ID.
func (s *Storage) GetIdentity(ctx context.Context, userID string) (*models.Identity, error) {
	const op = "storage.GetIdentity"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	u, err := scanIdentity(s.DB.QueryRowContext(ctx, `SELECT `+identityColumns+` FROM auth_users WHERE id = $1`, userID))
	if err != nil {
		return nil, wrap(op, err)
	}
	return u, nil
}

// UpdateIdentity сохраняет почту и хэш пароля.
func (s *Storage) UpdateIdentity(ctx context.Context, u models.Identity) error {
	const op = "storage.UpdateIdentity"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	res, err := s.DB.ExecContext(ctx, `UPDATE auth_users SET email = $2, password_hash = $3, updated_at = $4
		WHERE id = $1`, u.UUID, u.Email, u.PasswordHash, time.Now())
	if err != nil {
		return wrap(op, err)
	}
	return expectAffected(op, res)
}

// DeleteIdentity удаляет учётную запись вместе с её ролями и связями.
func (s *Storage) DeleteIdentity(ctx context.Context, userID string) error {
	const op = "storage.DeleteIdentity"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	res, err := s.DB.ExecContext(ctx, `DELETE FROM auth_users WHERE id = $1`, userID)
	if err != nil {
		return wrap(op, err)
	}
	return expectAffected(op, res)
}
