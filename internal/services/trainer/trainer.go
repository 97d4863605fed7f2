// Package services содержит бизнес-логику работы с тренерами и их видами спорта.
// Создание тренера выполняется вместе с учётной записью, см. сервис account.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/sanitize"
	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/sl"
	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
	"github.com/PoorDoomer/gym-saas-sub000/internal/tenant"
)

// TrainerRepository методы хранилища для тренеров.
type TrainerRepository interface {
	ListTrainers(ctx context.Context, gymID string) ([]*models.Trainer, error)
	GetTrainer(ctx context.Context, gymID, id string) (*models.Trainer, error)
	UpdateTrainer(ctx context.Context, t models.Trainer) error
	DeactivateTrainer(ctx context.Context, gymID, id string) error
	AssignTrainerSport(ctx context.Context, gymID, trainerID, sportID string, level models.SkillLevel) error
	RemoveTrainerSport(ctx context.Context, gymID, trainerID, sportID string) error
	ListTrainerSports(ctx context.Context, gymID, trainerID string) ([]models.TrainerSport, error)
}

// TrainerService реализует операции над тренерами.
type TrainerService struct {
	repo TrainerRepository
	log  *slog.Logger
}

// NewTrainerService создает новый экземпляр TrainerService.
func NewTrainerService(repo TrainerRepository, log *slog.Logger) *TrainerService {
	return &TrainerService{repo: repo, log: log}
}

// List возвращает тренеров клуба.
func (s *TrainerService) List(ctx context.Context, gymID string) ([]*models.Trainer, error) {
	const op = "services.trainer.List"
	if err := tenant.Require(gymID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := s.repo.ListTrainers(ctx, gymID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Get возвращает тренера по ID.
func (s *TrainerService) Get(ctx context.Context, gymID, id string) (*models.Trainer, error) {
	const op = "services.trainer.Get"
	if err := tenant.Require(gymID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := s.repo.GetTrainer(ctx, gymID, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Update меняет только переданные поля тренера.
func (s *TrainerService) Update(ctx context.Context, gymID, id string, req models.UpdateTrainerRequest) (*models.Trainer, error) {
	const op = "services.trainer.Update"
	t, err := s.Get(ctx, gymID, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if req.FirstName != nil {
		t.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		t.LastName = *req.LastName
	}
	if req.Phone != nil {
		t.Phone = *req.Phone
	}
	if req.Specializations != nil {
		t.Specializations = *req.Specializations
	}
	if req.Bio != nil {
		t.Bio = sanitize.Text(*req.Bio)
	}
	if req.HourlyRate != nil {
		t.HourlyRate = *req.HourlyRate
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}
	if err := s.repo.UpdateTrainer(ctx, *t); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

// Delete деактивирует тренера. Повторный вызов не является ошибкой.
func (s *TrainerService) Delete(ctx context.Context, gymID, id string) error {
	const op = "services.trainer.Delete"
	if err := tenant.Require(gymID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.DeactivateTrainer(ctx, gymID, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Stats сводка по тренерам: число различных специализаций без учёта регистра
// и средняя ставка по всем тренерам. Ошибка загрузки даёт нулевую сводку.
func (s *TrainerService) Stats(ctx context.Context, gymID string) (models.TrainerStats, error) {
	const op = "services.trainer.Stats"
	var stats models.TrainerStats
	if err := tenant.Require(gymID); err != nil {
		return stats, fmt.Errorf("%s: %w", op, err)
	}
	trainers, err := s.repo.ListTrainers(ctx, gymID)
	if err != nil {
		s.log.Error("failed to load trainers for stats", slog.String("op", op), sl.Gym(gymID), sl.Err(err))
		return stats, nil
	}
	specs := make(map[string]struct{})
	var rateSum float64
	for _, t := range trainers {
		stats.Total++
		if t.IsActive {
			stats.Active++
		}
		rateSum += t.HourlyRate
		for _, spec := range t.Specializations {
			specs[strings.ToLower(strings.TrimSpace(spec))] = struct{}{}
		}
	}
	stats.Specializations = len(specs)
	if stats.Total > 0 {
		stats.AverageHourlyRate = rateSum / float64(stats.Total)
	}
	return stats, nil
}

// AssignSport привязывает вид спорта к тренеру или меняет уровень существующей привязки.
func (s *TrainerService) AssignSport(ctx context.Context, gymID, trainerID string, req models.AssignSportRequest) error {
	const op = "services.trainer.AssignSport"
	if err := tenant.Require(gymID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.AssignTrainerSport(ctx, gymID, trainerID, req.SportID, req.SkillLevel); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// RemoveSport отвязывает вид спорта от тренера.
func (s *TrainerService) RemoveSport(ctx context.Context, gymID, trainerID, sportID string) error {
	const op = "services.trainer.RemoveSport"
	if err := tenant.Require(gymID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.RemoveTrainerSport(ctx, gymID, trainerID, sportID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListSports виды спорта тренера с уровнями.
func (s *TrainerService) ListSports(ctx context.Context, gymID, trainerID string) ([]models.TrainerSport, error) {
	const op = "services.trainer.ListSports"
	if err := tenant.Require(gymID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := s.repo.ListTrainerSports(ctx, gymID, trainerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}
