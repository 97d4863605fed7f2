package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
)

const paymentColumns = `id, gym_id, member_id, subscription_id, amount, currency, method, status,
	description, paid_at, created_at`

func scanPayment(row interface{ Scan(...any) error }) (*models.Payment, error) {
	var (
		p              models.Payment
		subscriptionID sql.NullString
		paidAt         sql.NullTime
		method, status string
	)
	if err := row.Scan(&p.ID, &p.GymID, &p.MemberID, &subscriptionID, &p.Amount, &p.Currency, &method,
		&status, &p.Description, &paidAt, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.SubscriptionID = stringPtr(subscriptionID)
	p.PaidAt = timePtr(paidAt)
	p.Method = models.PaymentMethod(method)
	p.Status = models.PaymentStatus(status)
	return &p, nil
}

// CreatePayment регистрирует платёж участника клуба.
func (s *Storage) CreatePayment(ctx context.Context, p models.Payment) (*models.Payment, error) {
	const op = "storage.CreatePayment"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := checkRefs(ctx, s.DB, p.GymID, tenantRef{refSubscription, p.SubscriptionID}); err != nil {
		return nil, wrap(op, err)
	}
	created, err := scanPayment(s.DB.QueryRowContext(ctx, `INSERT INTO payments (id, gym_id, member_id,
			subscription_id, amount, currency, method, status, description, paid_at)
		SELECT $1, m.gym_id, m.id, $4, $5, $6, $7, $8, $9, $10
		FROM members m WHERE m.gym_id = $2 AND m.id = $3
		RETURNING `+paymentColumns,
		p.ID, p.GymID, p.MemberID, nullString(p.SubscriptionID), p.Amount, p.Currency, string(p.Method),
		string(p.Status), p.Description, nullTime(p.PaidAt)))
	if err != nil {
		return nil, wrap(op, err)
	}
	return created, nil
}

// GetPayment возвращает платёж клуба.
func (s *Storage) GetPayment(ctx context.Context, gymID, id string) (*models.Payment, error) {
	const op = "storage.GetPayment"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	p, err := scanPayment(s.DB.QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payments
		WHERE gym_id = $1 AND id = $2`, gymID, id))
	if err != nil {
		return nil, wrap(op, err)
	}
	return p, nil
}

// ListPayments возвращает платежи клуба, новые первыми.
func (s *Storage) ListPayments(ctx context.Context, gymID string) ([]*models.Payment, error) {
	const op = "storage.ListPayments"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	rows, err := s.DB.QueryContext(ctx, `SELECT `+paymentColumns+` FROM payments
		WHERE gym_id = $1 ORDER BY created_at DESC`, gymID)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	payments := []*models.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, wrap(op, err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return payments, nil
}

// UpdatePaymentStatus меняет статус платежа. paidAt выставляется при переходе в completed.
func (s *Storage) UpdatePaymentStatus(ctx context.Context, gymID, id string, status models.PaymentStatus, paidAt *time.Time) error {
	const op = "storage.UpdatePaymentStatus"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	res, err := s.DB.ExecContext(ctx, `UPDATE payments SET status = $3, paid_at = COALESCE($4, paid_at)
		WHERE gym_id = $1 AND id = $2`, gymID, id, string(status), nullTime(paidAt))
	if err != nil {
		return wrap(op, err)
	}
	return expectAffected(op, res)
}
