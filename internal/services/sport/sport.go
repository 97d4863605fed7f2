// Package services содержит бизнес-логику работы с видами спорта клуба.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/sl"
	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
	"github.com/PoorDoomer/gym-saas-sub000/internal/tenant"
)

// SportRepository методы хранилища для видов спорта.
type SportRepository interface {
	ListSports(ctx context.Context, gymID string) ([]*models.Sport, error)
	GetSport(ctx context.Context, gymID, id string) (*models.Sport, error)
	CreateSport(ctx context.Context, sp models.Sport) (*models.Sport, error)
	UpdateSport(ctx context.Context, gymID string, sp models.Sport) error
	DeactivateSport(ctx context.Context, gymID, id string) error
}

// SportService реализует операции над видами спорта.
type SportService struct {
	repo SportRepository
	log  *slog.Logger
}

// NewSportService создает новый экземпляр SportService.
func NewSportService(repo SportRepository, log *slog.Logger) *SportService {
	return &SportService{repo: repo, log: log}
}

// List возвращает виды спорта клуба вместе с глобальными.
func (s *SportService) List(ctx context.Context, gymID string) ([]*models.Sport, error) {
	const op = "services.sport.List"
	if err := tenant.Require(gymID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := s.repo.ListSports(ctx, gymID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Get возвращает вид спорта клуба или глобальный.
func (s *SportService) Get(ctx context.Context, gymID, id string) (*models.Sport, error) {
	const op = "services.sport.Get"
	if err := tenant.Require(gymID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := s.repo.GetSport(ctx, gymID, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Create добавляет вид спорта, принадлежащий клубу.
func (s *SportService) Create(ctx context.Context, gymID string, req models.CreateSportRequest) (*models.Sport, error) {
	const op = "services.sport.Create"
	if err := tenant.Require(gymID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	owner := gymID
	res, err := s.repo.CreateSport(ctx, models.Sport{
		GymID:       &owner,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		IsActive:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Update меняет вид спорта клуба. Глобальные виды спорта менять нельзя.
func (s *SportService) Update(ctx context.Context, gymID, id string, req models.UpdateSportRequest) (*models.Sport, error) {
	const op = "services.sport.Update"
	sp, err := s.Get(ctx, gymID, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if sp.IsGlobal() {
		return nil, fmt.Errorf("%s: %w", op, models.ErrReadOnly)
	}
	if req.Name != nil {
		sp.Name = *req.Name
	}
	if req.Description != nil {
		sp.Description = *req.Description
	}
	if req.Category != nil {
		sp.Category = *req.Category
	}
	if req.IsActive != nil {
		sp.IsActive = *req.IsActive
	}
	if err := s.repo.UpdateSport(ctx, gymID, *sp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sp, nil
}

// Delete деактивирует вид спорта клуба. Повторный вызов не является ошибкой.
func (s *SportService) Delete(ctx context.Context, gymID, id string) error {
	const op = "services.sport.Delete"
	sp, err := s.Get(ctx, gymID, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if sp.IsGlobal() {
		return fmt.Errorf("%s: %w", op, models.ErrReadOnly)
	}
	if err := s.repo.DeactivateSport(ctx, gymID, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Stats сводка по видам спорта, видимым клубу.
func (s *SportService) Stats(ctx context.Context, gymID string) (models.SportStats, error) {
	const op = "services.sport.Stats"
	var stats models.SportStats
	if err := tenant.Require(gymID); err != nil {
		return stats, fmt.Errorf("%s: %w", op, err)
	}
	sports, err := s.repo.ListSports(ctx, gymID)
	if err != nil {
		s.log.Error("failed to load sports for stats", slog.String("op", op), sl.Gym(gymID), sl.Err(err))
		return stats, nil
	}
	for _, sp := range sports {
		stats.Total++
		if sp.IsActive {
			stats.Active++
		}
		if sp.IsGlobal() {
			stats.Global++
		}
	}
	return stats, nil
}
