package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
)

const checkInColumns = `id, gym_id, member_id, checked_in_at, checked_out_at, method, notes`

func scanCheckIn(row interface{ Scan(...any) error }) (*models.CheckIn, error) {
	var c models.CheckIn
	var out sql.NullTime
	var method string
	if err := row.Scan(&c.ID, &c.GymID, &c.MemberID, &c.CheckedInAt, &out, &method, &c.Notes); err != nil {
		return nil, err
	}
	c.CheckedOutAt = timePtr(out)
	c.Method = models.CheckInMethod(method)
	return &c, nil
}

// CreateCheckIn отмечает приход участника. Участник должен быть активен и принадлежать клубу.
func (s *Storage) CreateCheckIn(ctx context.Context, c models.CheckIn) (*models.CheckIn, error) {
	const op = "storage.CreateCheckIn"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CheckedInAt.IsZero() {
		c.CheckedInAt = time.Now()
	}
	created, err := scanCheckIn(s.DB.QueryRowContext(ctx, `INSERT INTO check_ins
			(id, gym_id, member_id, checked_in_at, method, notes)
		SELECT $1, m.gym_id, m.id, $4, $5, $6
		FROM members m WHERE m.gym_id = $2 AND m.id = $3 AND m.is_active
		RETURNING `+checkInColumns,
		c.ID, c.GymID, c.MemberID, c.CheckedInAt, string(c.Method), c.Notes))
	if err != nil {
		return nil, wrap(op, err)
	}
	return created, nil
}

// CheckOut закрывает посещение. Уже закрытое посещение возвращает ErrAlreadyCheckedOut.
func (s *Storage) CheckOut(ctx context.Context, gymID, id string, at time.Time) (*models.CheckIn, error) {
	const op = "storage.CheckOut"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	c, err := scanCheckIn(s.DB.QueryRowContext(ctx, `UPDATE check_ins SET checked_out_at = $3
		WHERE gym_id = $1 AND id = $2 AND checked_out_at IS NULL
		RETURNING `+checkInColumns, gymID, id, at))
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, wrap(op, err)
	}

	var exists bool
	if err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM check_ins WHERE gym_id = $1 AND id = $2)`,
		gymID, id).Scan(&exists); err != nil {
		return nil, wrap(op, err)
	}
	if exists {
		return nil, fmt.Errorf("%s: %w", op, models.ErrAlreadyCheckedOut)
	}
	return nil, wrap(op, sql.ErrNoRows)
}

// ListCheckIns возвращает посещения клуба начиная с since, новые первыми.
func (s *Storage) ListCheckIns(ctx context.Context, gymID string, since time.Time) ([]*models.CheckIn, error) {
	const op = "storage.ListCheckIns"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	rows, err := s.DB.QueryContext(ctx, `SELECT `+checkInColumns+` FROM check_ins
		WHERE gym_id = $1 AND checked_in_at >= $2 ORDER BY checked_in_at DESC`, gymID, since)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	checkIns := []*models.CheckIn{}
	for rows.Next() {
		c, err := scanCheckIn(rows)
		if err != nil {
			return nil, wrap(op, err)
		}
		checkIns = append(checkIns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return checkIns, nil
}
