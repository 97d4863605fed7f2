package models

// Analytics сводка для главной панели клуба. Значения best-effort.
type Analytics struct {
	TotalMembers     int     `json:"total_members"`
	ActiveMembers    int     `json:"active_members"`
	TotalTrainers    int     `json:"total_trainers"`
	ActiveTrainers   int     `json:"active_trainers"`
	TotalClasses     int     `json:"total_classes"`
	TotalEnrollments int     `json:"total_enrollments"`
	TotalRevenue     float64 `json:"total_revenue"`
	MonthlyRevenue   float64 `json:"monthly_revenue"`
}

// RevenuePoint выручка за календарный месяц, Month в формате 2006-01.
type RevenuePoint struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// CheckInPoint количество посещений за день, Day в формате 2006-01-02.
type CheckInPoint struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}
