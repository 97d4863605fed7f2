package models

import "time"

// Role роль пользователя для доступа к страницам.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTrainer Role = "trainer"
	RoleMember  Role = "member"
)

// Identity учётная запись в сервисе идентификации.
type Identity struct {
	UUID         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserRole связь пользователя с ролью. GymID == nil означает роль во всех клубах.
type UserRole struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	GymID     *string   `json:"gym_id,omitempty"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AccountLink связь учётной записи с участником или тренером клуба.
type AccountLink struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	GymID     string    `json:"gym_id"`
	MemberID  *string   `json:"member_id,omitempty"`
	TrainerID *string   `json:"trainer_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SignUpRequest регистрация пользователя.
type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest вход пользователя.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest смена почты или пароля текущего пользователя.
type UpdateUserRequest struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=8"`
}

// Session выданный при входе токен доступа.
type Session struct {
	Token     string    `json:"token"`
	UserUID   string    `json:"user_uid"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}
