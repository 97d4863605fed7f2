package models

import "time"

// CheckInMethod способ отметки посещения.
type CheckInMethod string

const (
	CheckInManual CheckInMethod = "manual"
	CheckInQRScan CheckInMethod = "qr_scan"
	CheckInCard   CheckInMethod = "card"
)

// CheckIn посещение клуба участником.
type CheckIn struct {
	ID           string        `json:"id"`
	GymID        string        `json:"gym_id"`
	MemberID     string        `json:"member_id"`
	CheckedInAt  time.Time     `json:"checked_in_at"`
	CheckedOutAt *time.Time    `json:"checked_out_at,omitempty"`
	Method       CheckInMethod `json:"method"`
	Notes        string        `json:"notes"`
}

// CheckInRequest ручная отметка или отметка по карте.
type CheckInRequest struct {
	MemberID string        `json:"member_id" validate:"required,uuid"`
	Method   CheckInMethod `json:"method" validate:"omitempty,oneof=manual qr_scan card"`
	Notes    string        `json:"notes" validate:"max=500"`
}

// QRCheckInRequest отметка по отсканированному QR-коду.
type QRCheckInRequest struct {
	Payload string `json:"payload" validate:"required,max=500"`
}

// CheckInStats сводка по посещениям.
type CheckInStats struct {
	Today       int `json:"today"`
	CurrentlyIn int `json:"currently_in"`
	ThisWeek    int `json:"this_week"`
}
