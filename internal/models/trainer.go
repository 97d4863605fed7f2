package models

import "time"

// SkillLevel уровень владения видом спорта.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
	SkillExpert       SkillLevel = "expert"
)

// Trainer тренер клуба.
type Trainer struct {
	ID              string    `json:"id"`
	GymID           string    `json:"gym_id"`
	UserID          *string   `json:"user_id,omitempty"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Specializations []string  `json:"specializations"`
	Bio             string    `json:"bio"`
	HourlyRate      float64   `json:"hourly_rate"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TrainerSport вид спорта тренера с уровнем.
type TrainerSport struct {
	TrainerID  string     `json:"trainer_id"`
	SportID    string     `json:"sport_id"`
	SportName  string     `json:"sport_name"`
	SkillLevel SkillLevel `json:"skill_level"`
}

// CreateTrainerRequest тренер вместе с учётной записью.
type CreateTrainerRequest struct {
	FirstName       string   `json:"first_name" validate:"required,max=100"`
	LastName        string   `json:"last_name" validate:"required,max=100"`
	Email           string   `json:"email" validate:"required,email"`
	Password        string   `json:"password" validate:"required,min=8"`
	Phone           string   `json:"phone" validate:"max=50"`
	Specializations []string `json:"specializations" validate:"max=20,dive,required,max=50"`
	Bio             string   `json:"bio" validate:"max=4000"`
	HourlyRate      float64  `json:"hourly_rate" validate:"gte=0"`
}

// Trainer собирает тренера клуба gymID из запроса.
func (r CreateTrainerRequest) Trainer(gymID string) Trainer {
	specs := r.Specializations
	if specs == nil {
		specs = []string{}
	}
	return Trainer{
		GymID:           gymID,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Email:           r.Email,
		Phone:           r.Phone,
		Specializations: specs,
		Bio:             r.Bio,
		HourlyRate:      r.HourlyRate,
		IsActive:        true,
	}
}

// UpdateTrainerRequest частичное обновление тренера.
type UpdateTrainerRequest struct {
	FirstName       *string   `json:"first_name" validate:"omitempty,max=100"`
	LastName        *string   `json:"last_name" validate:"omitempty,max=100"`
	Phone           *string   `json:"phone" validate:"omitempty,max=50"`
	Specializations *[]string `json:"specializations" validate:"omitempty,max=20,dive,required,max=50"`
	Bio             *string   `json:"bio" validate:"omitempty,max=4000"`
	HourlyRate      *float64  `json:"hourly_rate" validate:"omitempty,gte=0"`
	IsActive        *bool     `json:"is_active"`
}

// AssignSportRequest привязка вида спорта к тренеру.
type AssignSportRequest struct {
	SportID    string     `json:"sport_id" validate:"required,uuid"`
	SkillLevel SkillLevel `json:"skill_level" validate:"required,oneof=beginner intermediate advanced expert"`
}

// TrainerStats сводка по тренерам.
type TrainerStats struct {
	Total             int     `json:"total"`
	Active            int     `json:"active"`
	Specializations   int     `json:"specializations"`
	AverageHourlyRate float64 `json:"average_hourly_rate"`
}
