package models

import "time"

// ScheduleStatus статус проведения занятия.
type ScheduleStatus string

const (
	ScheduleScheduled ScheduleStatus = "scheduled"
	ScheduleCancelled ScheduleStatus = "cancelled"
	ScheduleCompleted ScheduleStatus = "completed"
)

// EnrollmentStatus статус записи на занятие.
type EnrollmentStatus string

const (
	EnrollmentApproved  EnrollmentStatus = "approved"
	EnrollmentPending   EnrollmentStatus = "pending"
	EnrollmentWaitlist  EnrollmentStatus = "waitlist"
	EnrollmentCheckedIn EnrollmentStatus = "checked_in"
	EnrollmentNoShow    EnrollmentStatus = "no_show"
)

// Valid сообщает, существует ли статус.
func (s EnrollmentStatus) Valid() bool {
	switch s {
	case EnrollmentApproved, EnrollmentPending, EnrollmentWaitlist, EnrollmentCheckedIn, EnrollmentNoShow:
		return true
	}
	return false
}

// TakesSeat сообщает, занимает ли запись место в группе.
func (s EnrollmentStatus) TakesSeat() bool {
	return s == EnrollmentApproved || s == EnrollmentCheckedIn
}

// Class шаблон занятия.
type Class struct {
	ID              string    `json:"id"`
	GymID           string    `json:"gym_id"`
	TrainerID       *string   `json:"trainer_id,omitempty"`
	SportID         *string   `json:"sport_id,omitempty"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Capacity        int       `json:"capacity"`
	DurationMinutes int       `json:"duration_minutes"`
	Price           float64   `json:"price"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

// ClassSchedule конкретное проведение занятия.
type ClassSchedule struct {
	ID            string         `json:"id"`
	GymID         string         `json:"gym_id"`
	ClassID       string         `json:"class_id"`
	TrainerID     *string        `json:"trainer_id,omitempty"`
	StartsAt      time.Time      `json:"starts_at"`
	EndsAt        time.Time      `json:"ends_at"`
	EnrolledCount int            `json:"enrolled_count"`
	Status        ScheduleStatus `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
}

// ClassEnrollment запись участника на проведение занятия.
type ClassEnrollment struct {
	ID         string           `json:"id"`
	GymID      string           `json:"gym_id"`
	ScheduleID string           `json:"schedule_id"`
	MemberID   string           `json:"member_id"`
	Status     EnrollmentStatus `json:"status"`
	EnrolledAt time.Time        `json:"enrolled_at"`
}

// CreateClassRequest данные шаблона занятия.
type CreateClassRequest struct {
	Name            string  `json:"name" validate:"required,max=200"`
	Description     string  `json:"description" validate:"max=2000"`
	TrainerID       string  `json:"trainer_id" validate:"omitempty,uuid"`
	SportID         string  `json:"sport_id" validate:"omitempty,uuid"`
	Capacity        int     `json:"capacity" validate:"required,gt=0"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,gt=0"`
	Price           float64 `json:"price" validate:"gte=0"`
}

// UpdateClassRequest частичное обновление шаблона занятия.
type UpdateClassRequest struct {
	Name            *string  `json:"name" validate:"omitempty,max=200"`
	Description     *string  `json:"description" validate:"omitempty,max=2000"`
	TrainerID       *string  `json:"trainer_id" validate:"omitempty,uuid"`
	SportID         *string  `json:"sport_id" validate:"omitempty,uuid"`
	Capacity        *int     `json:"capacity" validate:"omitempty,gt=0"`
	DurationMinutes *int     `json:"duration_minutes" validate:"omitempty,gt=0"`
	Price           *float64 `json:"price" validate:"omitempty,gte=0"`
	IsActive        *bool    `json:"is_active"`
}

// CreateScheduleRequest новое проведение занятия. Время в RFC3339.
type CreateScheduleRequest struct {
	StartsAt  time.Time `json:"starts_at" validate:"required"`
	TrainerID string    `json:"trainer_id" validate:"omitempty,uuid"`
}

// EnrollRequest запись участника на занятие.
type EnrollRequest struct {
	MemberID string `json:"member_id" validate:"required,uuid"`
}

// UpdateEnrollmentStatusRequest смена статуса записи.
type UpdateEnrollmentStatusRequest struct {
	Status EnrollmentStatus `json:"status" validate:"required,oneof=approved pending waitlist checked_in no_show"`
}

// ClassStats сводка по занятиям.
type ClassStats struct {
	TotalClasses      int `json:"total_classes"`
	ActiveClasses     int `json:"active_classes"`
	UpcomingSchedules int `json:"upcoming_schedules"`
	TotalEnrollments  int `json:"total_enrollments"`
}
