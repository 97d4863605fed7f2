package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/period"
	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
)

const planColumns = `id, gym_id, name, description, price, billing_period, is_active, created_at`

func scanPlan(row interface{ Scan(...any) error }) (*models.MembershipPlan, error) {
	var p models.MembershipPlan
	var billing string
	if err := row.Scan(&p.ID, &p.GymID, &p.Name, &p.Description, &p.Price, &billing, &p.IsActive, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.BillingPeriod = period.Period(billing)
	return &p, nil
}

// ListPlans возвращает абонементы клуба.
func (s *Storage) ListPlans(ctx context.Context, gymID string) ([]*models.MembershipPlan, error) {
	const op = "storage.ListPlans"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	rows, err := s.DB.QueryContext(ctx, `SELECT `+planColumns+` FROM membership_plans
		WHERE gym_id = $1 ORDER BY price`, gymID)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	plans := []*models.MembershipPlan{}
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, wrap(op, err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return plans, nil
}

// GetPlan возвращает абонемент клуба.
func (s *Storage) GetPlan(ctx context.Context, gymID, id string) (*models.MembershipPlan, error) {
	const op = "storage.GetPlan"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	p, err := scanPlan(s.DB.QueryRowContext(ctx, `SELECT `+planColumns+` FROM membership_plans
		WHERE gym_id = $1 AND id = $2`, gymID, id))
	if err != nil {
		return nil, wrap(op, err)
	}
	return p, nil
}

// CreatePlan добавляет абонемент.
func (s *Storage) CreatePlan(ctx context.Context, p models.MembershipPlan) (*models.MembershipPlan, error) {
	const op = "storage.CreatePlan"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	created, err := scanPlan(s.DB.QueryRowContext(ctx, `INSERT INTO membership_plans
			(id, gym_id, name, description, price, billing_period)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING `+planColumns,
		p.ID, p.GymID, p.Name, p.Description, p.Price, string(p.BillingPeriod)))
	if err != nil {
		return nil, wrap(op, err)
	}
	return created, nil
}

// UpdatePlan перезаписывает абонемент.
func (s *Storage) UpdatePlan(ctx context.Context, p models.MembershipPlan) error {
	const op = "storage.UpdatePlan"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	res, err := s.DB.ExecContext(ctx, `UPDATE membership_plans
		SET name = $3, description = $4, price = $5, billing_period = $6, is_active = $7
		WHERE gym_id = $1 AND id = $2`,
		p.GymID, p.ID, p.Name, p.Description, p.Price, string(p.BillingPeriod), p.IsActive)
	if err != nil {
		return wrap(op, err)
	}
	return expectAffected(op, res)
}

// DeactivatePlan снимает флаг активности абонемента.
func (s *Storage) DeactivatePlan(ctx context.Context, gymID, id string) error {
	const op = "storage.DeactivatePlan"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	res, err := s.DB.ExecContext(ctx, `UPDATE membership_plans SET is_active = FALSE
		WHERE gym_id = $1 AND id = $2`, gymID, id)
	if err != nil {
		return wrap(op, err)
	}
	return expectAffected(op, res)
}
