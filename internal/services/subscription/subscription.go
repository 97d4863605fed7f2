// Package services содержит бизнес-логику подписок участников на абонементы.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/period"
	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/sl"
	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
	"github.com/PoorDoomer/gym-saas-sub000/internal/tenant"
)

// SubscriptionRepository определяет методы для работы с подписками в хранилище.
type SubscriptionRepository interface {
	// GetPlan возвращает абонемент клуба.
	GetPlan(ctx context.Context, gymID, id string) (*models.MembershipPlan, error)
	// GetMember возвращает участника клуба.
	GetMember(ctx context.Context, gymID, id string) (*models.Member, error)
	// CreateSubscription сохраняет подписку.
	CreateSubscription(ctx context.Context, sub models.Subscription) (*models.Subscription, error)
	// GetSubscription возвращает подписку по ID.
	GetSubscription(ctx context.Context, gymID, id string) (*models.Subscription, error)
	// ListSubscriptions возвращает подписки клуба.
	ListSubscriptions(ctx context.Context, gymID string) ([]*models.Subscription, error)
	// UpdateSubscriptionStatus меняет статус подписки.
	UpdateSubscriptionStatus(ctx context.Context, gymID, id string, status models.SubscriptionStatus) error
}

// SubscriptionService реализует бизнес-логику работы с подписками.
type SubscriptionService struct {
	repo SubscriptionRepository
	log  *slog.Logger
	now  func() time.Time
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// Create оформляет подписку участника на абонемент. Конец периода
// рассчитывается по расчётному периоду абонемента от даты начала.
func (s *SubscriptionService) Create(ctx context.Context, gymID string, req models.CreateSubscriptionRequest) (*models.Subscription, error) {
	const op = "services.subscription.Create"
	if err := tenant.Require(gymID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	start := period.DayStart(s.now())
	if req.StartDate != "" {
		parsed, err := time.Parse(models.DateLayout, req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: start_date", op, models.ErrInvalidInput)
		}
		start = parsed
	}

	member, err := s.repo.GetMember(ctx, gymID, req.MemberID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !member.IsActive {
		return nil, fmt.Errorf("%s: member: %w", op, models.ErrInactive)
	}
	plan, err := s.repo.GetPlan(ctx, gymID, req.MembershipPlanID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !plan.IsActive {
		return nil, fmt.Errorf("%s: plan: %w", op, models.ErrInactive)
	}
	end, err := plan.BillingPeriod.End(start)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sub, err := s.repo.CreateSubscription(ctx, models.Subscription{
		GymID:              gymID,
		MemberID:           member.ID,
		MembershipPlanID:   plan.ID,
		BillingPeriod:      plan.BillingPeriod,
		Status:             models.SubscriptionActive,
		CurrentPeriodStart: start,
		CurrentPeriodEnd:   end,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created new subscription", sl.Gym(gymID), slog.String("subscription_id", sub.ID))
	return sub, nil
}

// Get возвращает подписку по ID.
func (s *SubscriptionService) Get(ctx context.Context, gymID, id string) (*models.Subscription, error) {
	const op = "services.subscription.Get"
	if err := tenant.Require(gymID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sub, err := s.repo.GetSubscription(ctx, gymID, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// List возвращает подписки клуба.
func (s *SubscriptionService) List(ctx context.Context, gymID string) ([]*models.Subscription, error) {
	const op = "services.subscription.List"
	if err := tenant.Require(gymID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := s.repo.ListSubscriptions(ctx, gymID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Cancel отменяет действующую или просроченную подписку.
// Отменённую или истёкшую подписку отменить нельзя.
func (s *SubscriptionService) Cancel(ctx context.Context, gymID, id string) (*models.Subscription, error) {
	const op = "services.subscription.Cancel"
	sub, err := s.Get(ctx, gymID, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if sub.Status != models.SubscriptionActive && sub.Status != models.SubscriptionPastDue {
		return nil, fmt.Errorf("%s: %w: subscription is %s", op, models.ErrInvalidStatus, sub.Status)
	}
	if err := s.repo.UpdateSubscriptionStatus(ctx, gymID, id, models.SubscriptionCancelled); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sub.Status = models.SubscriptionCancelled
	s.log.Info("subscription cancelled", sl.Gym(gymID), slog.String("subscription_id", id))
	return sub, nil
}
