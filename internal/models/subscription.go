package models

import (
	"time"

	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/period"
)

// SubscriptionStatus статус подписки участника.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionPastDue   SubscriptionStatus = "past_due"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	SubscriptionExpired   SubscriptionStatus = "expired"
)

// Subscription подписка участника на абонемент.
type Subscription struct {
	ID                 string             `json:"id"`
	GymID              string             `json:"gym_id"`
	MemberID           string             `json:"member_id"`
	MembershipPlanID   string             `json:"membership_plan_id"`
	BillingPeriod      period.Period      `json:"billing_period"`
	Status             SubscriptionStatus `json:"status"`
	CurrentPeriodStart time.Time          `json:"current_period_start"`
	CurrentPeriodEnd   time.Time          `json:"current_period_end"`
	CreatedAt          time.Time          `json:"created_at"`
}

// CreateSubscriptionRequest оформление подписки. Пустой StartDate означает «сегодня».
type CreateSubscriptionRequest struct {
	MemberID         string `json:"member_id" validate:"required,uuid"`
	MembershipPlanID string `json:"membership_plan_id" validate:"required,uuid"`
	StartDate        string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
}

// ExpiringSubscription данные для письма об окончании подписки.
type ExpiringSubscription struct {
	SubscriptionID string    `json:"subscription_id"`
	GymName        string    `json:"gym_name"`
	PlanName       string    `json:"plan_name"`
	Email          string    `json:"email"`
	FirstName      string    `json:"first_name"`
	EndDate        time.Time `json:"end_date"`
	Price          float64   `json:"price"`
}
