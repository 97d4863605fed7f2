package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
)

func insertAccountLink(ctx context.Context, q querier, link models.AccountLink) error {
	if link.ID == "" {
		link.ID = uuid.NewString()
	}
	_, err := q.ExecContext(ctx, `INSERT INTO account_links (id, user_id, gym_id, member_id, trainer_id)
		VALUES ($1, $2, $3, $4, $5)`,
		link.ID, link.UserID, link.GymID, nullString(link.MemberID), nullString(link.TrainerID))
	return err
}

// CreateMemberAccount в одной транзакции добавляет участника, роль member
// и связь учётной записи с участником.
func (s *Storage) CreateMemberAccount(ctx context.Context, m models.Member, userID string) (*models.Member, error) {
	const op = "storage.CreateMemberAccount"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	m.UserID = &userID

	var created *models.Member
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		created, err = insertMember(ctx, tx, m)
		if err != nil {
			return err
		}
		gymID := created.GymID
		if err := insertRole(ctx, tx, userID, &gymID, models.RoleMember); err != nil {
			return err
		}
		memberID := created.ID
		return insertAccountLink(ctx, tx, models.AccountLink{UserID: userID, GymID: gymID, MemberID: &memberID})
	})
	if err != nil {
		return nil, wrap(op, err)
	}
	return created, nil
}

// CreateTrainerAccount в одной транзакции добавляет тренера, роль trainer
// и связь учётной записи с тренером.
func (s *Storage) CreateTrainerAccount(ctx context.Context, t models.Trainer, userID string) (*models.Trainer, error) {
	const op = "storage.CreateTrainerAccount"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	t.UserID = &userID

	var created *models.Trainer
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		created, err = insertTrainer(ctx, tx, t)
		if err != nil {
			return err
		}
		gymID := created.GymID
		if err := insertRole(ctx, tx, userID, &gymID, models.RoleTrainer); err != nil {
			return err
		}
		trainerID := created.ID
		return insertAccountLink(ctx, tx, models.AccountLink{UserID: userID, GymID: gymID, TrainerID: &trainerID})
	})
	if err != nil {
		return nil, wrap(op, err)
	}
	return created, nil
}

// ListAccountLinks возвращает связи учётной записи с участниками и тренерами.
func (s *Storage) ListAccountLinks(ctx context.Context, userID string) ([]models.AccountLink, error) {
	const op = "storage.ListAccountLinks"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	rows, err := s.DB.QueryContext(ctx, `SELECT id, user_id, gym_id, member_id, trainer_id, created_at
		FROM account_links WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	var links []models.AccountLink
	for rows.Next() {
		var l models.AccountLink
		var memberID, trainerID sql.NullString
		if err := rows.Scan(&l.ID, &l.UserID, &l.GymID, &memberID, &trainerID, &l.CreatedAt); err != nil {
			return nil, wrap(op, err)
		}
		l.MemberID = stringPtr(memberID)
		l.TrainerID = stringPtr(trainerID)
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return links, nil
}
