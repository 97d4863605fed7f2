package models

import "time"

// PaymentMethod способ оплаты.
type PaymentMethod string

// PaymentStatus статус платежа.
type PaymentStatus string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentOnline   PaymentMethod = "online"

	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// DefaultCurrency валюта, если клиент её не передал.
const DefaultCurrency = "USD"

// Payment платёж участника.
type Payment struct {
	ID             string        `json:"id"`
	GymID          string        `json:"gym_id"`
	MemberID       string        `json:"member_id"`
	SubscriptionID *string       `json:"subscription_id,omitempty"`
	Amount         float64       `json:"amount"`
	Currency       string        `json:"currency"`
	Method         PaymentMethod `json:"method"`
	Status         PaymentStatus `json:"status"`
	Description    string        `json:"description"`
	PaidAt         *time.Time    `json:"paid_at,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
}

// CreatePaymentRequest регистрация платежа.
type CreatePaymentRequest struct {
	MemberID       string        `json:"member_id" validate:"required,uuid"`
	SubscriptionID string        `json:"subscription_id" validate:"omitempty,uuid"`
	Amount         float64       `json:"amount" validate:"required,gt=0"`
	Currency       string        `json:"currency" validate:"omitempty,len=3"`
	Method         PaymentMethod `json:"method" validate:"required,oneof=cash card transfer online"`
	Status         PaymentStatus `json:"status" validate:"omitempty,oneof=pending completed failed"`
	Description    string        `json:"description" validate:"max=500"`
}

// UpdatePaymentStatusRequest смена статуса платежа, в том числе возврат.
type UpdatePaymentStatusRequest struct {
	Status PaymentStatus `json:"status" validate:"required,oneof=pending completed failed refunded"`
}

// PaymentStats сводка по платежам.
type PaymentStats struct {
	TotalRevenue   float64 `json:"total_revenue"`
	MonthlyRevenue float64 `json:"monthly_revenue"`
	Completed      int     `json:"completed"`
	Pending        int     `json:"pending"`
	Failed         int     `json:"failed"`
}
