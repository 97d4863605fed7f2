package models

import (
	"fmt"
	"time"
)

// Member участник клуба.
type Member struct {
	ID               string     `json:"id"`
	GymID            string     `json:"gym_id"`
	UserID           *string    `json:"user_id,omitempty"`
	MembershipPlanID *string    `json:"membership_plan_id,omitempty"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone"`
	DateOfBirth      *time.Time `json:"date_of_birth,omitempty"`
	EmergencyContact string     `json:"emergency_contact"`
	Notes            string     `json:"notes"`
	IsActive         bool       `json:"is_active"`
	JoinedAt         time.Time  `json:"joined_at"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// FullName имя и фамилия через пробел.
func (m Member) FullName() string {
	return m.FirstName + " " + m.LastName
}

// CreateMemberRequest данные нового участника.
// Пустой MembershipPlanID означает «без абонемента» и сохраняется как NULL.
type CreateMemberRequest struct {
	FirstName        string `json:"first_name" validate:"required,max=100"`
	LastName         string `json:"last_name" validate:"required,max=100"`
	Email            string `json:"email" validate:"required,email"`
	Phone            string `json:"phone" validate:"max=50"`
	DateOfBirth      string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	MembershipPlanID string `json:"membership_plan_id" validate:"omitempty,uuid"`
	EmergencyContact string `json:"emergency_contact" validate:"max=200"`
	Notes            string `json:"notes" validate:"max=2000"`
}

// DateLayout формат дат без времени в запросах.
const DateLayout = "2006-01-02"

// Member собирает участника клуба gymID из запроса. joinedAt становится датой вступления.
func (r CreateMemberRequest) Member(gymID string, joinedAt time.Time) (Member, error) {
	m := Member{
		GymID:            gymID,
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		Email:            r.Email,
		Phone:            r.Phone,
		EmergencyContact: r.EmergencyContact,
		Notes:            r.Notes,
		IsActive:         true,
		JoinedAt:         joinedAt,
	}
	if r.MembershipPlanID != "" {
		planID := r.MembershipPlanID
		m.MembershipPlanID = &planID
	}
	if r.DateOfBirth != "" {
		dob, err := time.Parse(DateLayout, r.DateOfBirth)
		if err != nil {
			return Member{}, fmt.Errorf("%w: date_of_birth: %v", ErrInvalidInput, err)
		}
		m.DateOfBirth = &dob
	}
	return m, nil
}

// CreateMemberAccountRequest участник вместе с учётной записью для входа.
type CreateMemberAccountRequest struct {
	CreateMemberRequest
	Password string `json:"password" validate:"required,min=8"`
}

// UpdateMemberRequest частичное обновление участника, nil поля не меняются.
type UpdateMemberRequest struct {
	FirstName        *string `json:"first_name" validate:"omitempty,max=100"`
	LastName         *string `json:"last_name" validate:"omitempty,max=100"`
	Email            *string `json:"email" validate:"omitempty,email"`
	Phone            *string `json:"phone" validate:"omitempty,max=50"`
	DateOfBirth      *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	MembershipPlanID *string `json:"membership_plan_id" validate:"omitempty,uuid"`
	EmergencyContact *string `json:"emergency_contact" validate:"omitempty,max=200"`
	Notes            *string `json:"notes" validate:"omitempty,max=2000"`
	IsActive         *bool   `json:"is_active"`
}

// MemberStats сводка по участникам.
type MemberStats struct {
	Total        int `json:"total"`
	Active       int `json:"active"`
	Inactive     int `json:"inactive"`
	NewThisMonth int `json:"new_this_month"`
}

// MemberListResult страница участников и общее число совпадений.
type MemberListResult struct {
	Items []*Member `json:"items"`
	Total int       `json:"total"`
}
