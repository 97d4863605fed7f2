package models

import (
	"time"

	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/period"
)

// MembershipPlan абонемент клуба.
type MembershipPlan struct {
	ID            string        `json:"id"`
	GymID         string        `json:"gym_id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Price         float64       `json:"price"`
	BillingPeriod period.Period `json:"billing_period"`
	IsActive      bool          `json:"is_active"`
	CreatedAt     time.Time     `json:"created_at"`
}

// CreatePlanRequest данные абонемента.
type CreatePlanRequest struct {
	Name          string        `json:"name" validate:"required,max=200"`
	Description   string        `json:"description" validate:"max=2000"`
	Price         float64       `json:"price" validate:"gte=0"`
	BillingPeriod period.Period `json:"billing_period" validate:"required,oneof=monthly quarterly yearly"`
}

// UpdatePlanRequest частичное обновление абонемента.
type UpdatePlanRequest struct {
	Name          *string        `json:"name" validate:"omitempty,max=200"`
	Description   *string        `json:"description" validate:"omitempty,max=2000"`
	Price         *float64       `json:"price" validate:"omitempty,gte=0"`
	BillingPeriod *period.Period `json:"billing_period" validate:"omitempty,oneof=monthly quarterly yearly"`
	IsActive      *bool          `json:"is_active"`
}
