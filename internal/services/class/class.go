// Package services содержит бизнес-логику занятий: шаблоны, расписание и записи участников.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/sl"
	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
	"github.com/PoorDoomer/gym-saas-sub000/internal/tenant"
)

// ClassRepository методы хранилища для занятий.
type ClassRepository interface {
	ListClasses(ctx context.Context, gymID string) ([]*models.Class, error)
	GetClass(ctx context.Context, gymID, id string) (*models.Class, error)
	CreateClass(ctx context.Context, c models.Class) (*models.Class, error)
	UpdateClass(ctx context.Context, c models.Class) error
	DeactivateClass(ctx context.Context, gymID, id string) error

	CreateSchedule(ctx context.Context, cs models.ClassSchedule) (*models.ClassSchedule, error)
	ListSchedules(ctx context.Context, gymID string, from time.Time) ([]*models.ClassSchedule, error)
	CancelSchedule(ctx context.Context, gymID, id string) error

	ListEnrollments(ctx context.Context, gymID string) ([]*models.ClassEnrollment, error)
	ListScheduleEnrollments(ctx context.Context, gymID, scheduleID string) ([]*models.ClassEnrollment, error)
	Enroll(ctx context.Context, gymID, scheduleID, memberID string) (*models.ClassEnrollment, error)
	UpdateEnrollmentStatus(ctx context.Context, gymID, id string, status models.EnrollmentStatus) (*models.ClassEnrollment, error)
}

// ClassService реализует операции над занятиями.
type ClassService struct {
	repo ClassRepository
	log  *slog.Logger
	now  func() time.Time
}

// NewClassService создает новый экземпляр ClassService.
func NewClassService(repo ClassRepository, log *slog.Logger) *ClassService {
	return &ClassService{repo: repo, log: log, now: time.Now}
}

func optional(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

// List возвращает шаблоны занятий клуба.
func (s *ClassService) List(ctx context.Context, gymID string) ([]*models.Class, error) {
	const op = "services.class.List"
	if err := tenant.Require(gymID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := s.repo.ListClasses(ctx, gymID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Get возвращает шаблон занятия по ID.
func (s *ClassService) Get(ctx context.Context, gymID, id string) (*models.Class, error) {
	const op = "services.class.Get"
	if err := tenant.Require(gymID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := s.repo.GetClass(ctx, gymID, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Create добавляет шаблон занятия.
func (s *ClassService) Create(ctx context.Context, gymID string, req models.CreateClassRequest) (*models.Class, error) {
	const op = "services.class.Create"
	if err := tenant.Require(gymID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := s.repo.CreateClass(ctx, models.Class{
		GymID:           gymID,
		TrainerID:       optional(req.TrainerID),
		SportID:         optional(req.SportID),
		Name:            req.Name,
		Description:     req.Description,
		Capacity:        req.Capacity,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		IsActive:        true,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Update меняет только переданные поля шаблона. Пустая строка в trainer_id или
// sport_id снимает привязку.
func (s *ClassService) Update(ctx context.Context, gymID, id string, req models.UpdateClassRequest) (*models.Class, error) {
	const op = "services.class.Update"
	c, err := s.Get(ctx, gymID, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.TrainerID != nil {
		c.TrainerID = optional(*req.TrainerID)
	}
	if req.SportID != nil {
		c.SportID = optional(*req.SportID)
	}
	if req.Capacity != nil {
		c.Capacity = *req.Capacity
	}
	if req.DurationMinutes != nil {
		c.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		c.Price = *req.Price
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	if err := s.repo.UpdateClass(ctx, *c); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// Delete деактивирует шаблон занятия. Повторный вызов не является ошибкой.
func (s *ClassService) Delete(ctx context.Context, gymID, id string) error {
	const op = "services.class.Delete"
	if err := tenant.Require(gymID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.DeactivateClass(ctx, gymID, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CreateSchedule ставит занятие в расписание. Конец рассчитывается по длительности
// шаблона, тренер по умолчанию берётся из шаблона.
func (s *ClassService) CreateSchedule(ctx context.Context, gymID, classID string, req models.CreateScheduleRequest) (*models.ClassSchedule, error) {
	const op = "services.class.CreateSchedule"
	c, err := s.Get(ctx, gymID, classID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !c.IsActive {
		return nil, fmt.Errorf("%s: %w", op, models.ErrInactive)
	}
	trainerID := c.TrainerID
	if req.TrainerID != "" {
		trainerID = optional(req.TrainerID)
	}
	res, err := s.repo.CreateSchedule(ctx, models.ClassSchedule{
		GymID:     gymID,
		ClassID:   c.ID,
		TrainerID: trainerID,
		StartsAt:  req.StartsAt,
		EndsAt:    req.StartsAt.Add(time.Duration(c.DurationMinutes) * time.Minute),
		Status:    models.ScheduleScheduled,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// ListSchedules проведения занятий, начинающиеся не раньше from.
func (s *ClassService) ListSchedules(ctx context.Context, gymID string, from time.Time) ([]*models.ClassSchedule, error) {
	const op = "services.class.ListSchedules"
	if err := tenant.Require(gymID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := s.repo.ListSchedules(ctx, gymID, from)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// CancelSchedule отменяет проведение занятия.
func (s *ClassService) CancelSchedule(ctx context.Context, gymID, scheduleID string) error {
	const op = "services.class.CancelSchedule"
	if err := tenant.Require(gymID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.CancelSchedule(ctx, gymID, scheduleID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListEnrollments записи на проведение занятия.
func (s *ClassService) ListEnrollments(ctx context.Context, gymID, scheduleID string) ([]*models.ClassEnrollment, error) {
	const op = "services.class.ListEnrollments"
	if err := tenant.Require(gymID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := s.repo.ListScheduleEnrollments(ctx, gymID, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Enroll записывает участника. При свободных местах запись approved, иначе waitlist.
func (s *ClassService) Enroll(ctx context.Context, gymID, scheduleID string, req models.EnrollRequest) (*models.ClassEnrollment, error) {
	const op = "services.class.Enroll"
	if err := tenant.Require(gymID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := s.repo.Enroll(ctx, gymID, scheduleID, req.MemberID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("member enrolled",
		sl.Gym(gymID),
		slog.String("schedule_id", scheduleID),
		slog.String("status", string(res.Status)))
	return res, nil
}

// UpdateEnrollmentStatus меняет статус записи, например подтверждает запись из листа ожидания.
func (s *ClassService) UpdateEnrollmentStatus(ctx context.Context, gymID, enrollmentID string, req models.UpdateEnrollmentStatusRequest) (*models.ClassEnrollment, error) {
	const op = "services.class.UpdateEnrollmentStatus"
	if err := tenant.Require(gymID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !req.Status.Valid() {
		return nil, fmt.Errorf("%s: %w", op, models.ErrInvalidStatus)
	}
	res, err := s.repo.UpdateEnrollmentStatus(ctx, gymID, enrollmentID, req.Status)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Stats сводка по занятиям. Каждая часть загружается отдельно, ошибка части
// логируется и оставляет её нулевой.
func (s *ClassService) Stats(ctx context.Context, gymID string) (models.ClassStats, error) {
	const op = "services.class.Stats"
	var stats models.ClassStats
	if err := tenant.Require(gymID); err != nil {
		return stats, fmt.Errorf("%s: %w", op, err)
	}
	log := s.log.With(slog.String("op", op), sl.Gym(gymID))

	classes, err := s.repo.ListClasses(ctx, gymID)
	if err != nil {
		log.Error("failed to load classes", sl.Err(err))
	}
	for _, c := range classes {
		stats.TotalClasses++
		if c.IsActive {
			stats.ActiveClasses++
		}
	}

	schedules, err := s.repo.ListSchedules(ctx, gymID, s.now())
	if err != nil {
		log.Error("failed to load schedules", sl.Err(err))
	}
	for _, cs := range schedules {
		if cs.Status == models.ScheduleScheduled {
			stats.UpcomingSchedules++
		}
	}

	enrollments, err := s.repo.ListEnrollments(ctx, gymID)
	if err != nil {
		log.Error("failed to load enrollments", sl.Err(err))
	}
	stats.TotalEnrollments = len(enrollments)
	return stats, nil
}
