package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
)

const memberColumns = `id, gym_id, user_id, membership_plan_id, first_name, last_name, email, phone,
	date_of_birth, emergency_contact, notes, is_active, joined_at, created_at, updated_at`

func scanMember(row interface{ Scan(...any) error }) (*models.Member, error) {
	var (
		m              models.Member
		userID, planID sql.NullString
		dateOfBirth    sql.NullTime
	)
	if err := row.Scan(&m.ID, &m.GymID, &userID, &planID, &m.FirstName, &m.LastName, &m.Email, &m.Phone,
		&dateOfBirth, &m.EmergencyContact, &m.Notes, &m.IsActive, &m.JoinedAt, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	m.UserID = stringPtr(userID)
	m.MembershipPlanID = stringPtr(planID)
	m.DateOfBirth = timePtr(dateOfBirth)
	return &m, nil
}

func insertMember(ctx context.Context, q querier, m models.Member) (*models.Member, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now()
	}
	if err := checkRefs(ctx, q, m.GymID, tenantRef{refPlan, m.MembershipPlanID}); err != nil {
		return nil, err
	}
	row := q.QueryRowContext(ctx, `INSERT INTO members (id, gym_id, user_id, membership_plan_id, first_name,
			last_name, email, phone, date_of_birth, emergency_contact, notes, is_active, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, TRUE, $12)
		RETURNING `+memberColumns,
		m.ID, m.GymID, nullString(m.UserID), nullString(m.MembershipPlanID), m.FirstName, m.LastName,
		m.Email, m.Phone, nullTime(m.DateOfBirth), m.EmergencyContact, m.Notes, m.JoinedAt)
	return scanMember(row)
}

// ListMembers возвращает всех участников клуба, новые первыми.
func (s *Storage) ListMembers(ctx context.Context, gymID string) ([]*models.Member, error) {
	const op = "storage.ListMembers"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	rows, err := s.DB.QueryContext(ctx, `SELECT `+memberColumns+` FROM members
		WHERE gym_id = $1 ORDER BY created_at DESC`, gymID)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	members := []*models.Member{}
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, wrap(op, err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return members, nil
}

// GetMember возвращает участника клуба по ID.
func (s *Storage) GetMember(ctx context.Context, gymID, id string) (*models.Member, error) {
	const op = "storage.GetMember"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	m, err := scanMember(s.DB.QueryRowContext(ctx, `SELECT `+memberColumns+` FROM members
		WHERE gym_id = $1 AND id = $2`, gymID, id))
	if err != nil {
		return nil, wrap(op, err)
	}
	return m, nil
}

// CreateMember добавляет участника. GymID берётся из записи.
func (s *Storage) CreateMember(ctx context.Context, m models.Member) (*models.Member, error) {
	const op = "storage.CreateMember"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	created, err := insertMember(ctx, s.DB, m)
	if err != nil {
		return nil, wrap(op, err)
	}
	return created, nil
}

// UpdateMember перезаписывает изменяемые поля участника.
func (s *Storage) UpdateMember(ctx context.Context, m models.Member) error {
	const op = "storage.UpdateMember"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	if err := checkRefs(ctx, s.DB, m.GymID, tenantRef{refPlan, m.MembershipPlanID}); err != nil {
		return wrap(op, err)
	}
	res, err := s.DB.ExecContext(ctx, `UPDATE members SET membership_plan_id = $3, first_name = $4,
			last_name = $5, email = $6, phone = $7, date_of_birth = $8, emergency_contact = $9,
			notes = $10, is_active = $11, updated_at = $12
		WHERE gym_id = $1 AND id = $2`,
		m.GymID, m.ID, nullString(m.MembershipPlanID), m.FirstName, m.LastName, m.Email, m.Phone,
		nullTime(m.DateOfBirth), m.EmergencyContact, m.Notes, m.IsActive, time.Now())
	if err != nil {
		return wrap(op, err)
	}
	return expectAffected(op, res)
}

// DeactivateMember снимает флаг активности. Повторный вызов не является ошибкой.
func (s *Storage) DeactivateMember(ctx context.Context, gymID, id string) error {
	const op = "storage.DeactivateMember"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	res, err := s.DB.ExecContext(ctx, `UPDATE members SET is_active = FALSE, updated_at = $3
		WHERE gym_id = $1 AND id = $2`, gymID, id, time.Now())
	if err != nil {
		return wrap(op, err)
	}
	return expectAffected(op, res)
}

// CountActiveMembers количество активных участников клуба.
func (s *Storage) CountActiveMembers(ctx context.Context, gymID string) (int, error) {
	const op = "storage.CountActiveMembers"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}
	var n int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM members WHERE gym_id = $1 AND is_active`,
		gymID).Scan(&n); err != nil {
		return 0, wrap(op, err)
	}
	return n, nil
}
