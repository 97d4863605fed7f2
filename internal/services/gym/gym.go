// Package services содержит бизнес-логику клубов: создание, настройки и тариф SaaS-подписки.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/sl"
	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
	"github.com/PoorDoomer/gym-saas-sub000/internal/tenant"
)

// GymRepository методы хранилища для клубов.
type GymRepository interface {
	CreateGym(ctx context.Context, gym models.Gym, ownerUserID string) (*models.Gym, error)
	GetGym(ctx context.Context, gymID string) (*models.Gym, error)
	ListGymsForUser(ctx context.Context, userID string) ([]*models.Gym, error)
	UpdateGym(ctx context.Context, gym models.Gym) error
	UpdateGymTier(ctx context.Context, gymID string, tier models.Tier) error
	CountActiveMembers(ctx context.Context, gymID string) (int, error)
}

// GymService реализует операции над клубами.
type GymService struct {
	repo GymRepository
	log  *slog.Logger
}

// NewGymService создает новый экземпляр GymService.
func NewGymService(repo GymRepository, log *slog.Logger) *GymService {
	return &GymService{repo: repo, log: log}
}

// Create создаёт клуб на тарифе starter, создатель становится его администратором.
func (s *GymService) Create(ctx context.Context, userID string, req models.CreateGymRequest) (*models.Gym, error) {
	const op = "services.gym.Create"
	if userID == "" {
		return nil, fmt.Errorf("%s: %w: owner is required", op, models.ErrInvalidInput)
	}
	gym, err := s.repo.CreateGym(ctx, models.Gym{
		Name:     strings.TrimSpace(req.Name),
		Slug:     strings.ToLower(strings.TrimSpace(req.Slug)),
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		Tier:     models.TierStarter,
		IsActive: true,
	}, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("gym created", sl.Gym(gym.ID), slog.String("owner", userID))
	return gym, nil
}

// ListForUser клубы, в которых у пользователя есть роль.
func (s *GymService) ListForUser(ctx context.Context, userID string) ([]*models.Gym, error) {
	const op = "services.gym.ListForUser"
	res, err := s.repo.ListGymsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Get возвращает клуб.
func (s *GymService) Get(ctx context.Context, gymID string) (*models.Gym, error) {
	const op = "services.gym.Get"
	if err := tenant.Require(gymID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := s.repo.GetGym(ctx, gymID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// UpdateSettings меняет контактные данные и название клуба.
func (s *GymService) UpdateSettings(ctx context.Context, gymID string, req models.UpdateGymSettingsRequest) (*models.Gym, error) {
	const op = "services.gym.UpdateSettings"
	gym, err := s.Get(ctx, gymID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if req.Name != nil {
		gym.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		gym.Email = *req.Email
	}
	if req.Phone != nil {
		gym.Phone = *req.Phone
	}
	if req.Address != nil {
		gym.Address = *req.Address
	}
	if err := s.repo.UpdateGym(ctx, *gym); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return gym, nil
}

// Tiers доступные тарифы.
func (s *GymService) Tiers() []models.TierInfo {
	return models.Tiers()
}

// ChangeTier меняет тариф. Переход на тариф, лимит которого меньше числа
// активных участников, отклоняется с ErrMemberLimitReached.
func (s *GymService) ChangeTier(ctx context.Context, gymID string, req models.ChangeTierRequest) (*models.Gym, error) {
	const op = "services.gym.ChangeTier"
	if !req.Tier.Valid() {
		return nil, fmt.Errorf("%s: %w: tier", op, models.ErrInvalidInput)
	}
	gym, err := s.Get(ctx, gymID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if limit := req.Tier.MemberCap(); limit != models.Unlimited {
		active, err := s.repo.CountActiveMembers(ctx, gymID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if active > limit {
			return nil, fmt.Errorf("%s: %w: %d active members, %s allows %d",
				op, models.ErrMemberLimitReached, active, req.Tier, limit)
		}
	}
	if err := s.repo.UpdateGymTier(ctx, gymID, req.Tier); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("gym tier changed", sl.Gym(gymID),
		slog.String("from", string(gym.Tier)), slog.String("to", string(req.Tier)))
	gym.Tier = req.Tier
	return gym, nil
}
