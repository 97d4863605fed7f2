package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
)

const sportColumns = `id, gym_id, name, description, category, is_active, created_at`

func scanSport(row interface{ Scan(...any) error }) (*models.Sport, error) {
	var sp models.Sport
	var gymID sql.NullString
	if err := row.Scan(&sp.ID, &gymID, &sp.Name, &sp.Description, &sp.Category, &sp.IsActive, &sp.CreatedAt); err != nil {
		return nil, err
	}
	sp.GymID = stringPtr(gymID)
	return &sp, nil
}

// ListSports возвращает виды спорта клуба и глобальные виды спорта.
func (s *Storage) ListSports(ctx context.Context, gymID string) ([]*models.Sport, error) {
	const op = "storage.ListSports"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	rows, err := s.DB.QueryContext(ctx, `SELECT `+sportColumns+` FROM sports
		WHERE gym_id = $1 OR gym_id IS NULL ORDER BY name`, gymID)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	sports := []*models.Sport{}
	for rows.Next() {
		sp, err := scanSport(rows)
		if err != nil {
			return nil, wrap(op, err)
		}
		sports = append(sports, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return sports, nil
}

// GetSport возвращает вид спорта, видимый клубу.
func (s *Storage) GetSport(ctx context.Context, gymID, id string) (*models.Sport, error) {
	const op = "storage.GetSport"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	sp, err := scanSport(s.DB.QueryRowContext(ctx, `SELECT `+sportColumns+` FROM sports
		WHERE id = $2 AND (gym_id = $1 OR gym_id IS NULL)`, gymID, id))
	if err != nil {
		return nil, wrap(op, err)
	}
	return sp, nil
}

// CreateSport добавляет вид спорта клуба.
func (s *Storage) CreateSport(ctx context.Context, sp models.Sport) (*models.Sport, error) {
	const op = "storage.CreateSport"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	if sp.ID == "" {
		sp.ID = uuid.NewString()
	}
	created, err := scanSport(s.DB.QueryRowContext(ctx, `INSERT INTO sports (id, gym_id, name, description, category)
		VALUES ($1, $2, $3, $4, $5) RETURNING `+sportColumns,
		sp.ID, nullString(sp.GymID), sp.Name, sp.Description, sp.Category))
	if err != nil {
		return nil, wrap(op, err)
	}
	return created, nil
}

// UpdateSport меняет вид спорта клуба. Глобальные виды спорта клубу не принадлежат.
func (s *Storage) UpdateSport(ctx context.Context, gymID string, sp models.Sport) error {
	const op = "storage.UpdateSport"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	res, err := s.DB.ExecContext(ctx, `UPDATE sports SET name = $3, description = $4, category = $5, is_active = $6
		WHERE gym_id = $1 AND id = $2`,
		gymID, sp.ID, sp.Name, sp.Description, sp.Category, sp.IsActive)
	if err != nil {
		return wrap(op, err)
	}
	return expectAffected(op, res)
}

// DeactivateSport снимает флаг активности вида спорта клуба.
func (s *Storage) DeactivateSport(ctx context.Context, gymID, id string) error {
	const op = "storage.DeactivateSport"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	res, err := s.DB.ExecContext(ctx, `UPDATE sports SET is_active = FALSE WHERE gym_id = $1 AND id = $2`, gymID, id)
	if err != nil {
		return wrap(op, err)
	}
	return expectAffected(op, res)
}
