// Package services содержит бизнес-логику учёта платежей участников.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/period"
	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/sl"
	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
	"github.com/PoorDoomer/gym-saas-sub000/internal/tenant"
)

// PaymentRepository методы хранилища для платежей.
type PaymentRepository interface {
	CreatePayment(ctx context.Context, p models.Payment) (*models.Payment, error)
	GetPayment(ctx context.Context, gymID, id string) (*models.Payment, error)
	ListPayments(ctx context.Context, gymID string) ([]*models.Payment, error)
	UpdatePaymentStatus(ctx context.Context, gymID, id string, status models.PaymentStatus, paidAt *time.Time) error
}

// Analytics сброс кэшированной сводки клуба, в которую входит выручка.
type Analytics interface {
	InvalidateAnalytics(ctx context.Context, gymID string)
}

// PaymentService реализует операции над платежами.
type PaymentService struct {
	repo      PaymentRepository
	analytics Analytics
	log       *slog.Logger
	now       func() time.Time
}

// NewPaymentService создает новый экземпляр PaymentService. analytics может быть nil.
func NewPaymentService(repo PaymentRepository, analytics Analytics, log *slog.Logger) *PaymentService {
	return &PaymentService{repo: repo, analytics: analytics, log: log, now: time.Now}
}

func (s *PaymentService) invalidate(ctx context.Context, gymID string) {
	if s.analytics != nil {
		s.analytics.InvalidateAnalytics(ctx, gymID)
	}
}

// Create регистрирует платёж. Без статуса платёж считается проведённым,
// для проведённого платежа paid_at равен текущему времени.
func (s *PaymentService) Create(ctx context.Context, gymID string, req models.CreatePaymentRequest) (*models.Payment, error) {
	const op = "services.payment.Create"
	if err := tenant.Require(gymID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	p := models.Payment{
		GymID:       gymID,
		MemberID:    req.MemberID,
		Amount:      req.Amount,
		Currency:    strings.ToUpper(req.Currency),
		Method:      req.Method,
		Status:      req.Status,
		Description: req.Description,
	}
	if p.Currency == "" {
		p.Currency = models.DefaultCurrency
	}
	if p.Status == "" {
		p.Status = models.PaymentCompleted
	}
	if p.Status == models.PaymentRefunded {
		return nil, fmt.Errorf("%s: %w: new payment cannot be refunded", op, models.ErrInvalidStatus)
	}
	if req.SubscriptionID != "" {
		subID := req.SubscriptionID
		p.SubscriptionID = &subID
	}
	if p.Status == models.PaymentCompleted {
		now := s.now()
		p.PaidAt = &now
	}
	res, err := s.repo.CreatePayment(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("payment registered", sl.Gym(gymID), slog.String("payment_id", res.ID),
		slog.String("status", string(res.Status)))
	s.invalidate(ctx, gymID)
	return res, nil
}

// Get возвращает платёж по ID.
func (s *PaymentService) Get(ctx context.Context, gymID, id string) (*models.Payment, error) {
	const op = "services.payment.Get"
	if err := tenant.Require(gymID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := s.repo.GetPayment(ctx, gymID, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// List возвращает платежи клуба.
func (s *PaymentService) List(ctx context.Context, gymID string) ([]*models.Payment, error) {
	const op = "services.payment.List"
	if err := tenant.Require(gymID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := s.repo.ListPayments(ctx, gymID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// allowedTransition допустимые смены статуса. Возврат возможен только для проведённого платежа.
func allowedTransition(from, to models.PaymentStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case models.PaymentPending:
		return to == models.PaymentCompleted || to == models.PaymentFailed
	case models.PaymentFailed:
		return to == models.PaymentPending || to == models.PaymentCompleted
	case models.PaymentCompleted:
		return to == models.PaymentRefunded
	}
	return false
}

// UpdateStatus меняет статус платежа, в том числе оформляет возврат.
func (s *PaymentService) UpdateStatus(ctx context.Context, gymID, id string, req models.UpdatePaymentStatusRequest) (*models.Payment, error) {
	const op = "services.payment.UpdateStatus"
	p, err := s.Get(ctx, gymID, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !allowedTransition(p.Status, req.Status) {
		return nil, fmt.Errorf("%s: %w: %s -> %s", op, models.ErrInvalidStatus, p.Status, req.Status)
	}
	var paidAt *time.Time
	if req.Status == models.PaymentCompleted && p.PaidAt == nil {
		now := s.now()
		paidAt = &now
		p.PaidAt = paidAt
	}
	if err := s.repo.UpdatePaymentStatus(ctx, gymID, id, req.Status, paidAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	p.Status = req.Status
	s.invalidate(ctx, gymID)
	return p, nil
}

// Stats сводка по платежам: выручка по проведённым платежам за всё время и за текущий месяц.
func (s *PaymentService) Stats(ctx context.Context, gymID string) (models.PaymentStats, error) {
	const op = "services.payment.Stats"
	var stats models.PaymentStats
	if err := tenant.Require(gymID); err != nil {
		return stats, fmt.Errorf("%s: %w", op, err)
	}
	payments, err := s.repo.ListPayments(ctx, gymID)
	if err != nil {
		s.log.Error("failed to load payments for stats", slog.String("op", op), sl.Gym(gymID), sl.Err(err))
		return stats, nil
	}
	monthStart := period.MonthStart(s.now())
	for _, p := range payments {
		switch p.Status {
		case models.PaymentCompleted:
			stats.Completed++
			stats.TotalRevenue += p.Amount
			paid := p.CreatedAt
			if p.PaidAt != nil {
				paid = *p.PaidAt
			}
			if !paid.Before(monthStart) {
				stats.MonthlyRevenue += p.Amount
			}
		case models.PaymentPending:
			stats.Pending++
		case models.PaymentFailed:
			stats.Failed++
		}
	}
	return stats, nil
}
