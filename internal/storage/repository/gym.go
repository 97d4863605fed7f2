package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
)

const gymColumns = `id, name, slug, email, phone, address, tier, is_active, created_at, updated_at`

func scanGym(row interface{ Scan(...any) error }) (*models.Gym, error) {
	var g models.Gym
	var tier string
	if err := row.Scan(&g.ID, &g.Name, &g.Slug, &g.Email, &g.Phone, &g.Address, &tier,
		&g.IsActive, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, err
	}
	g.Tier = models.Tier(tier)
	return &g, nil
}

// CreateGym создаёт клуб и назначает создателя его администратором в одной транзакции.
func (s *Storage) CreateGym(ctx context.Context, gym models.Gym, ownerUserID string) (*models.Gym, error) {
	const op = "storage.CreateGym"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	if gym.ID == "" {
		gym.ID = uuid.NewString()
	}
	if gym.Tier == "" {
		gym.Tier = models.TierStarter
	}

	var created *models.Gym
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `INSERT INTO gyms (id, name, slug, email, phone, address, tier)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+gymColumns,
			gym.ID, gym.Name, gym.Slug, gym.Email, gym.Phone, gym.Address, string(gym.Tier))
		g, err := scanGym(row)
		if err != nil {
			return err
		}
		created = g
		gymID := g.ID
		return insertRole(ctx, tx, ownerUserID, &gymID, models.RoleAdmin)
	})
	if err != nil {
		return nil, wrap(op, err)
	}
	return created, nil
}

// GetGym возвращает клуб по ID.
func (s *Storage) GetGym(ctx context.Context, gymID string) (*models.Gym, error) {
	const op = "storage.GetGym"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	g, err := scanGym(s.DB.QueryRowContext(ctx, `SELECT `+gymColumns+` FROM gyms WHERE id = $1`, gymID))
	if err != nil {
		return nil, wrap(op, err)
	}
	return g, nil
}

// ListGymsForUser возвращает клубы, в которых у пользователя есть роль.
// Глобальная роль (gym_id IS NULL) открывает все активные клубы.
func (s *Storage) ListGymsForUser(ctx context.Context, userID string) ([]*models.Gym, error) {
	const op = "storage.ListGymsForUser"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	rows, err := s.DB.QueryContext(ctx, `SELECT `+gymColumns+` FROM gyms g
		WHERE g.is_active AND EXISTS (
			SELECT 1 FROM user_roles r
			WHERE r.user_id = $1 AND (r.gym_id = g.id OR r.gym_id IS NULL)
		)
		ORDER BY g.name`, userID)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	var gyms []*models.Gym
	for rows.Next() {
		g, err := scanGym(rows)
		if err != nil {
			return nil, wrap(op, err)
		}
		gyms = append(gyms, g)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return gyms, nil
}

// UpdateGym сохраняет изменяемые поля клуба.
func (s *Storage) UpdateGym(ctx context.Context, gym models.Gym) error {
	const op = "storage.UpdateGym"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	res, err := s.DB.ExecContext(ctx, `UPDATE gyms
		SET name = $2, email = $3, phone = $4, address = $5, updated_at = $6
		WHERE id = $1`,
		gym.ID, gym.Name, gym.Email, gym.Phone, gym.Address, time.Now())
	if err != nil {
		return wrap(op, err)
	}
	return expectAffected(op, res)
}

// UpdateGymTier меняет тариф клуба.
func (s *Storage) UpdateGymTier(ctx context.Context, gymID string, tier models.Tier) error {
	const op = "storage.UpdateGymTier"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	res, err := s.DB.ExecContext(ctx, `UPDATE gyms SET tier = $2, updated_at = $3 WHERE id = $1`,
		gymID, string(tier), time.Now())
	if err != nil {
		return wrap(op, fmt.Errorf("update tier: %w", err))
	}
	return expectAffected(op, res)
}
