package models

// WelcomeNotification письмо после создания учётной записи участника или тренера.
type WelcomeNotification struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	GymName   string `json:"gym_name"`
	Role      Role   `json:"role"`
}
