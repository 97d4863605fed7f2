// Package services содержит бизнес-логику работы с абонементами клуба.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
	"github.com/PoorDoomer/gym-saas-sub000/internal/tenant"
)

// PlanRepository методы хранилища для абонементов.
type PlanRepository interface {
	ListPlans(ctx context.Context, gymID string) ([]*models.MembershipPlan, error)
	GetPlan(ctx context.Context, gymID, id string) (*models.MembershipPlan, error)
	CreatePlan(ctx context.Context, p models.MembershipPlan) (*models.MembershipPlan, error)
	UpdatePlan(ctx context.Context, p models.MembershipPlan) error
	DeactivatePlan(ctx context.Context, gymID, id string) error
}

// PlanService реализует операции над абонементами.
type PlanService struct {
	repo PlanRepository
	log  *slog.Logger
}

// NewPlanService создает новый экземпляр PlanService.
func NewPlanService(repo PlanRepository, log *slog.Logger) *PlanService {
	return &PlanService{repo: repo, log: log}
}

// List возвращает абонементы клуба.
func (s *PlanService) List(ctx context.Context, gymID string) ([]*models.MembershipPlan, error) {
	const op = "services.plan.List"
	if err := tenant.Require(gymID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := s.repo.ListPlans(ctx, gymID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Get возвращает абонемент по ID.
func (s *PlanService) Get(ctx context.Context, gymID, id string) (*models.MembershipPlan, error) {
	const op = "services.plan.Get"
	if err := tenant.Require(gymID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := s.repo.GetPlan(ctx, gymID, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Create добавляет абонемент.
func (s *PlanService) Create(ctx context.Context, gymID string, req models.CreatePlanRequest) (*models.MembershipPlan, error) {
	const op = "services.plan.Create"
	if err := tenant.Require(gymID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !req.BillingPeriod.Valid() {
		return nil, fmt.Errorf("%s: %w: billing_period", op, models.ErrInvalidInput)
	}
	res, err := s.repo.CreatePlan(ctx, models.MembershipPlan{
		GymID:         gymID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		BillingPeriod: req.BillingPeriod,
		IsActive:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("membership plan created", slog.String("plan_id", res.ID))
	return res, nil
}

// Update меняет только переданные поля абонемента.
func (s *PlanService) Update(ctx context.Context, gymID, id string, req models.UpdatePlanRequest) (*models.MembershipPlan, error) {
	const op = "services.plan.Update"
	p, err := s.Get(ctx, gymID, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.BillingPeriod != nil {
		if !req.BillingPeriod.Valid() {
			return nil, fmt.Errorf("%s: %w: billing_period", op, models.ErrInvalidInput)
		}
		p.BillingPeriod = *req.BillingPeriod
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if err := s.repo.UpdatePlan(ctx, *p); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// Delete деактивирует абонемент. Повторный вызов не является ошибкой.
func (s *PlanService) Delete(ctx context.Context, gymID, id string) error {
	const op = "services.plan.Delete"
	if err := tenant.Require(gymID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.DeactivatePlan(ctx, gymID, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
