package access

import "github.com/PoorDoomer/gym-saas-sub000/internal/models"

// NavItem пункт бокового меню.
type NavItem struct {
	Title string `json:"title"`
	Path  string `json:"path"`
	Icon  string `json:"icon"`
}

var (
	adminSidebar = []NavItem{
		{Title: "Dashboard", Path: "/dashboard", Icon: "home"},
		{Title: "Members", Path: "/members", Icon: "users"},
		{Title: "Trainers", Path: "/trainers", Icon: "user-check"},
		{Title: "Classes", Path: "/classes", Icon: "calendar"},
		{Title: "Sports", Path: "/sports", Icon: "activity"},
		{Title: "Check-ins", Path: "/checkins", Icon: "log-in"},
		{Title: "Payments", Path: "/payments", Icon: "credit-card"},
		{Title: "Plans", Path: "/plans", Icon: "layers"},
		{Title: "Reports", Path: "/reports", Icon: "bar-chart"},
		{Title: "Billing", Path: "/billing", Icon: "dollar-sign"},
		{Title: "Settings", Path: "/settings", Icon: "settings"},
	}
	trainerSidebar = []NavItem{
		{Title: "Dashboard", Path: "/trainer-dashboard", Icon: "home"},
		{Title: "My Classes", Path: "/classes", Icon: "calendar"},
		{Title: "Members", Path: "/members", Icon: "users"},
		{Title: "Check-ins", Path: "/checkins", Icon: "log-in"},
	}
	memberSidebar = []NavItem{
		{Title: "Dashboard", Path: "/member-dashboard", Icon: "home"},
		{Title: "Classes", Path: "/classes", Icon: "calendar"},
		{Title: "My QR Code", Path: "/my-qr", Icon: "maximize"},
		{Title: "Payments", Path: "/my-payments", Icon: "credit-card"},
	}
)

// Sidebar возвращает пункты меню для роли. Неизвестная роль получает пустое меню.
func Sidebar(role models.Role) []NavItem {
	var items []NavItem
	switch role {
	case models.RoleAdmin:
		items = adminSidebar
	case models.RoleTrainer:
		items = trainerSidebar
	case models.RoleMember:
		items = memberSidebar
	default:
		return []NavItem{}
	}
	out := make([]NavItem, len(items))
	copy(out, items)
	return out
}
