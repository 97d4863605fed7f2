package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
	"github.com/PoorDoomer/gym-saas-sub000/internal/storage"
)

const classColumns = `id, gym_id, trainer_id, sport_id, name, description, capacity, duration_minutes,
	price, is_active, created_at`

const scheduleColumns = `id, gym_id, class_id, trainer_id, starts_at, ends_at, enrolled_count, status, created_at`

const enrollmentColumns = `id, gym_id, schedule_id, member_id, status, enrolled_at`

func scanClass(row interface{ Scan(...any) error }) (*models.Class, error) {
	var c models.Class
	var trainerID, sportID sql.NullString
	if err := row.Scan(&c.ID, &c.GymID, &trainerID, &sportID, &c.Name, &c.Description, &c.Capacity,
		&c.DurationMinutes, &c.Price, &c.IsActive, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.TrainerID = stringPtr(trainerID)
	c.SportID = stringPtr(sportID)
	return &c, nil
}

func scanSchedule(row interface{ Scan(...any) error }) (*models.ClassSchedule, error) {
	var cs models.ClassSchedule
	var trainerID sql.NullString
	var status string
	if err := row.Scan(&cs.ID, &cs.GymID, &cs.ClassID, &trainerID, &cs.StartsAt, &cs.EndsAt,
		&cs.EnrolledCount, &status, &cs.CreatedAt); err != nil {
		return nil, err
	}
	cs.TrainerID = stringPtr(trainerID)
	cs.Status = models.ScheduleStatus(status)
	return &cs, nil
}

func scanEnrollment(row interface{ Scan(...any) error }) (*models.ClassEnrollment, error) {
	var e models.ClassEnrollment
	var status string
	if err := row.Scan(&e.ID, &e.GymID, &e.ScheduleID, &e.MemberID, &status, &e.EnrolledAt); err != nil {
		return nil, err
	}
	e.Status = models.EnrollmentStatus(status)
	return &e, nil
}

// ListClasses возвращает шаблоны занятий клуба.
func (s *Storage) ListClasses(ctx context.Context, gymID string) ([]*models.Class, error) {
	const op = "storage.ListClasses"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	rows, err := s.DB.QueryContext(ctx, `SELECT `+classColumns+` FROM classes
		WHERE gym_id = $1 ORDER BY name`, gymID)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	classes := []*models.Class{}
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, wrap(op, err)
		}
		classes = append(classes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return classes, nil
}

// GetClass возвращает шаблон занятия.
func (s *Storage) GetClass(ctx context.Context, gymID, id string) (*models.Class, error) {
	const op = "storage.GetClass"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	c, err := scanClass(s.DB.QueryRowContext(ctx, `SELECT `+classColumns+` FROM classes
		WHERE gym_id = $1 AND id = $2`, gymID, id))
	if err != nil {
		return nil, wrap(op, err)
	}
	return c, nil
}

// CreateClass добавляет шаблон занятия.
func (s *Storage) CreateClass(ctx context.Context, c models.Class) (*models.Class, error) {
	const op = "storage.CreateClass"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if err := checkRefs(ctx, s.DB, c.GymID, tenantRef{refTrainer, c.TrainerID}, tenantRef{refSport, c.SportID}); err != nil {
		return nil, wrap(op, err)
	}
	created, err := scanClass(s.DB.QueryRowContext(ctx, `INSERT INTO classes (id, gym_id, trainer_id, sport_id,
			name, description, capacity, duration_minutes, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING `+classColumns,
		c.ID, c.GymID, nullString(c.TrainerID), nullString(c.SportID), c.Name, c.Description,
		c.Capacity, c.DurationMinutes, c.Price))
	if err != nil {
		return nil, wrap(op, err)
	}
	return created, nil
}

// UpdateClass перезаписывает шаблон занятия.
func (s *Storage) UpdateClass(ctx context.Context, c models.Class) error {
	const op = "storage.UpdateClass"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	if err := checkRefs(ctx, s.DB, c.GymID, tenantRef{refTrainer, c.TrainerID}, tenantRef{refSport, c.SportID}); err != nil {
		return wrap(op, err)
	}
	res, err := s.DB.ExecContext(ctx, `UPDATE classes SET trainer_id = $3, sport_id = $4, name = $5,
			description = $6, capacity = $7, duration_minutes = $8, price = $9, is_active = $10
		WHERE gym_id = $1 AND id = $2`,
		c.GymID, c.ID, nullString(c.TrainerID), nullString(c.SportID), c.Name, c.Description,
		c.Capacity, c.DurationMinutes, c.Price, c.IsActive)
	if err != nil {
		return wrap(op, err)
	}
	return expectAffected(op, res)
}

// DeactivateClass снимает флаг активности шаблона занятия.
func (s *Storage) DeactivateClass(ctx context.Context, gymID, id string) error {
	const op = "storage.DeactivateClass"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	res, err := s.DB.ExecContext(ctx, `UPDATE classes SET is_active = FALSE WHERE gym_id = $1 AND id = $2`, gymID, id)
	if err != nil {
		return wrap(op, err)
	}
	return expectAffected(op, res)
}

// CreateSchedule добавляет проведение занятия.
func (s *Storage) CreateSchedule(ctx context.Context, cs models.ClassSchedule) (*models.ClassSchedule, error) {
	const op = "storage.CreateSchedule"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	if cs.ID == "" {
		cs.ID = uuid.NewString()
	}
	if err := checkRefs(ctx, s.DB, cs.GymID, tenantRef{refTrainer, cs.TrainerID}); err != nil {
		return nil, wrap(op, err)
	}
	created, err := scanSchedule(s.DB.QueryRowContext(ctx, `INSERT INTO class_schedules
			(id, gym_id, class_id, trainer_id, starts_at, ends_at, status)
		SELECT $1, c.gym_id, c.id, $4, $5, $6, 'scheduled'
		FROM classes c WHERE c.gym_id = $2 AND c.id = $3
		RETURNING `+scheduleColumns,
		cs.ID, cs.GymID, cs.ClassID, nullString(cs.TrainerID), cs.StartsAt, cs.EndsAt))
	if err != nil {
		return nil, wrap(op, err)
	}
	return created, nil
}

// ListSchedules возвращает проведения занятий клуба, начинающиеся не раньше from.
// Нулевой from возвращает все проведения.
func (s *Storage) ListSchedules(ctx context.Context, gymID string, from time.Time) ([]*models.ClassSchedule, error) {
	const op = "storage.ListSchedules"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	rows, err := s.DB.QueryContext(ctx, `SELECT `+scheduleColumns+` FROM class_schedules
		WHERE gym_id = $1 AND starts_at >= $2 ORDER BY starts_at`, gymID, from)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	schedules := []*models.ClassSchedule{}
	for rows.Next() {
		cs, err := scanSchedule(rows)
		if err != nil {
			return nil, wrap(op, err)
		}
		schedules = append(schedules, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return schedules, nil
}

// CancelSchedule отменяет проведение занятия.
func (s *Storage) CancelSchedule(ctx context.Context, gymID, id string) error {
	const op = "storage.CancelSchedule"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	res, err := s.DB.ExecContext(ctx, `UPDATE class_schedules SET status = 'cancelled'
		WHERE gym_id = $1 AND id = $2`, gymID, id)
	if err != nil {
		return wrap(op, err)
	}
	return expectAffected(op, res)
}

// ListEnrollments возвращает все записи на занятия клуба.
func (s *Storage) ListEnrollments(ctx context.Context, gymID string) ([]*models.ClassEnrollment, error) {
	return s.listEnrollments(ctx, "storage.ListEnrollments",
		`SELECT `+enrollmentColumns+` FROM class_enrollments WHERE gym_id = $1 ORDER BY enrolled_at`, gymID)
}

// ListScheduleEnrollments возвращает записи на конкретное проведение.
func (s *Storage) ListScheduleEnrollments(ctx context.Context, gymID, scheduleID string) ([]*models.ClassEnrollment, error) {
	return s.listEnrollments(ctx, "storage.ListScheduleEnrollments",
		`SELECT `+enrollmentColumns+` FROM class_enrollments WHERE gym_id = $1 AND schedule_id = $2
		ORDER BY enrolled_at`, gymID, scheduleID)
}

func (s *Storage) listEnrollments(ctx context.Context, op, query string, args ...any) ([]*models.ClassEnrollment, error) {
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	enrollments := []*models.ClassEnrollment{}
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, wrap(op, err)
		}
		enrollments = append(enrollments, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return enrollments, nil
}

// recountEnrolled пересчитывает занятые места по записям approved и checked_in.
func recountEnrolled(ctx context.Context, tx *sql.Tx, scheduleID string) error {
	_, err := tx.ExecContext(ctx, `UPDATE class_schedules SET enrolled_count = (
			SELECT COUNT(*) FROM class_enrollments
			WHERE schedule_id = $1 AND status IN ('approved', 'checked_in')
		) WHERE id = $1`, scheduleID)
	return err
}

// Enroll записывает участника на проведение занятия. Пока есть места запись
// получает статус approved, иначе waitlist. Проведение блокируется на время записи.
func (s *Storage) Enroll(ctx context.Context, gymID, scheduleID, memberID string) (*models.ClassEnrollment, error) {
	const op = "storage.Enroll"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var created *models.ClassEnrollment
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var (
			status   string
			enrolled int
			capacity int
		)
		err := tx.QueryRowContext(ctx, `SELECT cs.status, cs.enrolled_count, c.capacity
			FROM class_schedules cs JOIN classes c ON c.id = cs.class_id
			WHERE cs.gym_id = $1 AND cs.id = $2
			FOR UPDATE OF cs`, gymID, scheduleID).Scan(&status, &enrolled, &capacity)
		if err != nil {
			return err
		}
		if models.ScheduleStatus(status) != models.ScheduleScheduled {
			return models.ErrScheduleClosed
		}

		next := models.EnrollmentWaitlist
		if enrolled < capacity {
			next = models.EnrollmentApproved
		}

		e, err := scanEnrollment(tx.QueryRowContext(ctx, `INSERT INTO class_enrollments
				(id, gym_id, schedule_id, member_id, status)
			SELECT $1, m.gym_id, $3, m.id, $4
			FROM members m WHERE m.gym_id = $2 AND m.id = $5
			RETURNING `+enrollmentColumns,
			uuid.NewString(), gymID, scheduleID, string(next), memberID))
		if err != nil {
			return err
		}
		created = e
		return recountEnrolled(ctx, tx, scheduleID)
	})
	if err != nil {
		return nil, wrap(op, err)
	}
	return created, nil
}

// UpdateEnrollmentStatus меняет статус записи и пересчитывает занятые места.
func (s *Storage) UpdateEnrollmentStatus(ctx context.Context, gymID, id string, status models.EnrollmentStatus) (*models.ClassEnrollment, error) {
	const op = "storage.UpdateEnrollmentStatus"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%s: %w", op, models.ErrInvalidStatus)
	}

	var updated *models.ClassEnrollment
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		e, err := scanEnrollment(tx.QueryRowContext(ctx, `UPDATE class_enrollments SET status = $3
			WHERE gym_id = $1 AND id = $2 RETURNING `+enrollmentColumns, gymID, id, string(status)))
		if err != nil {
			return err
		}
		updated = e
		return recountEnrolled(ctx, tx, e.ScheduleID)
	})
	if err != nil {
		return nil, wrap(op, err)
	}
	if updated == nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return updated, nil
}
