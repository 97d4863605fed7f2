package models

import "time"

// Sport вид спорта. GymID == nil означает глобальный вид спорта, видимый всем клубам.
type Sport struct {
	ID          string    `json:"id"`
	GymID       *string   `json:"gym_id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsGlobal сообщает, что вид спорта общий для всех клубов.
func (s Sport) IsGlobal() bool {
	return s.GymID == nil
}

// CreateSportRequest данные вида спорта.
type CreateSportRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
	Category    string `json:"category" validate:"max=100"`
}

// UpdateSportRequest частичное обновление вида спорта.
type UpdateSportRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Category    *string `json:"category" validate:"omitempty,max=100"`
	IsActive    *bool   `json:"is_active"`
}

// SportStats сводка по видам спорта.
type SportStats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
	Global int `json:"global"`
}
