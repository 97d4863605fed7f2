package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
)

func insertRole(ctx context.Context, q querier, userID string, gymID *string, role models.Role) error {
	_, err := q.ExecContext(ctx, `INSERT INTO user_roles (id, user_id, gym_id, role)
		VALUES ($1, $2, $3, $4)`,
		uuid.NewString(), userID, nullString(gymID), string(role))
	return err
}

// AddRole назначает пользователю роль. gymID == nil означает роль во всех клубах.
func (s *Storage) AddRole(ctx context.Context, userID string, gymID *string, role models.Role) error {
	const op = "storage.AddRole"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	return wrap(op, insertRole(ctx, s.DB, userID, gymID, role))
}

// ListRoles возвращает роли пользователя, действующие в клубе gymID:
// роли этого клуба и глобальные роли. Пустой gymID возвращает все роли.
func (s *Storage) ListRoles(ctx context.Context, userID, gymID string) ([]models.UserRole, error) {
	const op = "storage.ListRoles"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var (
		rows *sql.Rows
		err  error
	)
	if gymID == "" {
		rows, err = s.DB.QueryContext(ctx, `SELECT id, user_id, gym_id, role, created_at
			FROM user_roles WHERE user_id = $1 ORDER BY created_at`, userID)
	} else {
		rows, err = s.DB.QueryContext(ctx, `SELECT id, user_id, gym_id, role, created_at
			FROM user_roles WHERE user_id = $1 AND (gym_id = $2 OR gym_id IS NULL)
			ORDER BY created_at`, userID, gymID)
	}
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	var roles []models.UserRole
	for rows.Next() {
		var r models.UserRole
		var gym sql.NullString
		var role string
		if err := rows.Scan(&r.ID, &r.UserID, &gym, &role, &r.CreatedAt); err != nil {
			return nil, wrap(op, err)
		}
		r.GymID = stringPtr(gym)
		r.Role = models.Role(role)
		roles = append(roles, r)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return roles, nil
}

// HasGymAccess сообщает, есть ли у пользователя хоть одна роль в клубе.
func (s *Storage) HasGymAccess(ctx context.Context, userID, gymID string) (bool, error) {
	const op = "storage.HasGymAccess"
	if err := checkCtx(ctx, op); err != nil {
		return false, err
	}
	var ok bool
	err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (
			SELECT 1 FROM user_roles r JOIN gyms g ON g.id = $2
			WHERE r.user_id = $1 AND (r.gym_id = g.id OR r.gym_id IS NULL)
		)`, userID, gymID).Scan(&ok)
	if err != nil {
		return false, wrap(op, err)
	}
	return ok, nil
}
