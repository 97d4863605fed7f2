package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/period"
	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
)

const subscriptionColumns = `id, gym_id, member_id, membership_plan_id, billing_period, status,
	current_period_start, current_period_end, created_at`

func scanSubscription(row interface{ Scan(...any) error }) (*models.Subscription, error) {
	var sub models.Subscription
	var billing, status string
	if err := row.Scan(&sub.ID, &sub.GymID, &sub.MemberID, &sub.MembershipPlanID, &billing, &status,
		&sub.CurrentPeriodStart, &sub.CurrentPeriodEnd, &sub.CreatedAt); err != nil {
		return nil, err
	}
	sub.BillingPeriod = period.Period(billing)
	sub.Status = models.SubscriptionStatus(status)
	return &sub, nil
}

// CreateSubscription оформляет подписку. Участник и абонемент должны принадлежать клубу.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) (*models.Subscription, error) {
	const op = "storage.CreateSubscription"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	if sub.Status == "" {
		sub.Status = models.SubscriptionActive
	}
	created, err := scanSubscription(s.DB.QueryRowContext(ctx, `INSERT INTO subscriptions
			(id, gym_id, member_id, membership_plan_id, billing_period, status, current_period_start, current_period_end)
		SELECT $1, m.gym_id, m.id, p.id, $5, $6, $7, $8
		FROM members m JOIN membership_plans p ON p.gym_id = m.gym_id
		WHERE m.gym_id = $2 AND m.id = $3 AND p.id = $4
		RETURNING `+subscriptionColumns,
		sub.ID, sub.GymID, sub.MemberID, sub.MembershipPlanID, string(sub.BillingPeriod), string(sub.Status),
		sub.CurrentPeriodStart, sub.CurrentPeriodEnd))
	if err != nil {
		return nil, wrap(op, err)
	}
	return created, nil
}

// GetSubscription возвращает подписку клуба.
func (s *Storage) GetSubscription(ctx context.Context, gymID, id string) (*models.Subscription, error) {
	const op = "storage.GetSubscription"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	sub, err := scanSubscription(s.DB.QueryRowContext(ctx, `SELECT `+subscriptionColumns+` FROM subscriptions
		WHERE gym_id = $1 AND id = $2`, gymID, id))
	if err != nil {
		return nil, wrap(op, err)
	}
	return sub, nil
}

// ListSubscriptions возвращает подписки клуба.
func (s *Storage) ListSubscriptions(ctx context.Context, gymID string) ([]*models.Subscription, error) {
	const op = "storage.ListSubscriptions"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	rows, err := s.DB.QueryContext(ctx, `SELECT `+subscriptionColumns+` FROM subscriptions
		WHERE gym_id = $1 ORDER BY created_at DESC`, gymID)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	subs := []*models.Subscription{}
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, wrap(op, err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return subs, nil
}

// UpdateSubscriptionStatus меняет статус подписки.
func (s *Storage) UpdateSubscriptionStatus(ctx context.Context, gymID, id string, status models.SubscriptionStatus) error {
	const op = "storage.UpdateSubscriptionStatus"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	res, err := s.DB.ExecContext(ctx, `UPDATE subscriptions SET status = $3 WHERE gym_id = $1 AND id = $2`,
		gymID, id, string(status))
	if err != nil {
		return wrap(op, err)
	}
	return expectAffected(op, res)
}

// FindSubscriptionsExpiringOn возвращает активные подписки всех клубов,
// период которых заканчивается в календарный день day.
func (s *Storage) FindSubscriptionsExpiringOn(ctx context.Context, day time.Time) ([]*models.ExpiringSubscription, error) {
	const op = "storage.FindSubscriptionsExpiringOn"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	from := period.DayStart(day)
	to := from.AddDate(0, 0, 1)
	rows, err := s.DB.QueryContext(ctx, `SELECT s.id, g.name, p.name, m.email, m.first_name,
			s.current_period_end, p.price
		FROM subscriptions s
		JOIN members m ON m.id = s.member_id
		JOIN membership_plans p ON p.id = s.membership_plan_id
		JOIN gyms g ON g.id = s.gym_id
		WHERE s.status = 'active' AND s.current_period_end >= $1 AND s.current_period_end < $2`, from, to)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	var result []*models.ExpiringSubscription
	for rows.Next() {
		var e models.ExpiringSubscription
		if err := rows.Scan(&e.SubscriptionID, &e.GymName, &e.PlanName, &e.Email, &e.FirstName,
			&e.EndDate, &e.Price); err != nil {
			return nil, wrap(op, err)
		}
		result = append(result, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return result, nil
}

// ExpireOverdueSubscriptions переводит в expired активные подписки с окончанием до now.
func (s *Storage) ExpireOverdueSubscriptions(ctx context.Context, now time.Time) (int, error) {
	const op = "storage.ExpireOverdueSubscriptions"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}
	res, err := s.DB.ExecContext(ctx, `UPDATE subscriptions SET status = 'expired'
		WHERE status IN ('active', 'past_due') AND current_period_end < $1`, now)
	if err != nil {
		return 0, wrap(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, wrap(op, err)
	}
	return int(n), nil
}
