package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
)

const trainerColumns = `id, gym_id, user_id, first_name, last_name, email, phone, specializations,
	bio, hourly_rate, is_active, created_at, updated_at`

// typeMap разбирает text[] из текстового представления database/sql.
var typeMap = pgtype.NewMap()

func scanTrainer(row interface{ Scan(...any) error }) (*models.Trainer, error) {
	var (
		t      models.Trainer
		userID sql.NullString
		specs  []string
	)
	if err := row.Scan(&t.ID, &t.GymID, &userID, &t.FirstName, &t.LastName, &t.Email, &t.Phone,
		typeMap.SQLScanner(&specs), &t.Bio, &t.HourlyRate, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	if specs == nil {
		specs = []string{}
	}
	t.UserID = stringPtr(userID)
	t.Specializations = specs
	return &t, nil
}

func specializationsArg(specs []string) []string {
	if specs == nil {
		return []string{}
	}
	return specs
}

func insertTrainer(ctx context.Context, q querier, t models.Trainer) (*models.Trainer, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	row := q.QueryRowContext(ctx, `INSERT INTO trainers (id, gym_id, user_id, first_name, last_name,
			email, phone, specializations, bio, hourly_rate, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, TRUE)
		RETURNING `+trainerColumns,
		t.ID, t.GymID, nullString(t.UserID), t.FirstName, t.LastName, t.Email, t.Phone,
		specializationsArg(t.Specializations), t.Bio, t.HourlyRate)
	return scanTrainer(row)
}

// ListTrainers возвращает тренеров клуба.
func (s *Storage) ListTrainers(ctx context.Context, gymID string) ([]*models.Trainer, error) {
	const op = "storage.ListTrainers"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	rows, err := s.DB.QueryContext(ctx, `SELECT `+trainerColumns+` FROM trainers
		WHERE gym_id = $1 ORDER BY last_name, first_name`, gymID)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	trainers := []*models.Trainer{}
	for rows.Next() {
		t, err := scanTrainer(rows)
		if err != nil {
			return nil, wrap(op, err)
		}
		trainers = append(trainers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return trainers, nil
}

// GetTrainer возвращает тренера клуба по ID.
func (s *Storage) GetTrainer(ctx context.Context, gymID, id string) (*models.Trainer, error) {
	const op = "storage.GetTrainer"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	t, err := scanTrainer(s.DB.QueryRowContext(ctx, `SELECT `+trainerColumns+` FROM trainers
		WHERE gym_id = $1 AND id = $2`, gymID, id))
	if err != nil {
		return nil, wrap(op, err)
	}
	return t, nil
}

// UpdateTrainer перезаписывает изменяемые поля тренера.
func (s *Storage) UpdateTrainer(ctx context.Context, t models.Trainer) error {
	const op = "storage.UpdateTrainer"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	res, err := s.DB.ExecContext(ctx, `UPDATE trainers SET first_name = $3, last_name = $4, phone = $5,
			specializations = $6, bio = $7, hourly_rate = $8, is_active = $9, updated_at = $10
		WHERE gym_id = $1 AND id = $2`,
		t.GymID, t.ID, t.FirstName, t.LastName, t.Phone, specializationsArg(t.Specializations),
		t.Bio, t.HourlyRate, t.IsActive, time.Now())
	if err != nil {
		return wrap(op, err)
	}
	return expectAffected(op, res)
}

// DeactivateTrainer снимает флаг активности тренера.
func (s *Storage) DeactivateTrainer(ctx context.Context, gymID, id string) error {
	const op = "storage.DeactivateTrainer"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	res, err := s.DB.ExecContext(ctx, `UPDATE trainers SET is_active = FALSE, updated_at = $3
		WHERE gym_id = $1 AND id = $2`, gymID, id, time.Now())
	if err != nil {
		return wrap(op, err)
	}
	return expectAffected(op, res)
}

// AssignTrainerSport привязывает вид спорта к тренеру или меняет уровень.
// Вид спорта должен принадлежать клубу или быть глобальным.
func (s *Storage) AssignTrainerSport(ctx context.Context, gymID, trainerID, sportID string, level models.SkillLevel) error {
	const op = "storage.AssignTrainerSport"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	res, err := s.DB.ExecContext(ctx, `INSERT INTO trainer_sports (trainer_id, sport_id, skill_level)
		SELECT t.id, sp.id, $4
		FROM trainers t, sports sp
		WHERE t.gym_id = $1 AND t.id = $2 AND sp.id = $3 AND (sp.gym_id = $1 OR sp.gym_id IS NULL)
		ON CONFLICT (trainer_id, sport_id) DO UPDATE SET skill_level = EXCLUDED.skill_level`,
		gymID, trainerID, sportID, string(level))
	if err != nil {
		return wrap(op, err)
	}
	return expectAffected(op, res)
}

// RemoveTrainerSport отвязывает вид спорта от тренера.
func (s *Storage) RemoveTrainerSport(ctx context.Context, gymID, trainerID, sportID string) error {
	const op = "storage.RemoveTrainerSport"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	res, err := s.DB.ExecContext(ctx, `DELETE FROM trainer_sports ts
		USING trainers t
		WHERE ts.trainer_id = t.id AND t.gym_id = $1 AND t.id = $2 AND ts.sport_id = $3`,
		gymID, trainerID, sportID)
	if err != nil {
		return wrap(op, err)
	}
	return expectAffected(op, res)
}

// ListTrainerSports возвращает виды спорта тренера.
func (s *Storage) ListTrainerSports(ctx context.Context, gymID, trainerID string) ([]models.TrainerSport, error) {
	const op = "storage.ListTrainerSports"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	rows, err := s.DB.QueryContext(ctx, `SELECT ts.trainer_id, ts.sport_id, sp.name, ts.skill_level
		FROM trainer_sports ts
		JOIN trainers t ON t.id = ts.trainer_id
		JOIN sports sp ON sp.id = ts.sport_id
		WHERE t.gym_id = $1 AND t.id = $2
		ORDER BY sp.name`, gymID, trainerID)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	result := []models.TrainerSport{}
	for rows.Next() {
		var ts models.TrainerSport
		var level string
		if err := rows.Scan(&ts.TrainerID, &ts.SportID, &ts.SportName, &level); err != nil {
			return nil, wrap(op, err)
		}
		ts.SkillLevel = models.SkillLevel(level)
		result = append(result, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return result, nil
}
