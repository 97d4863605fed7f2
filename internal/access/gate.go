// Package access реализует проверку доступа к страницам по ролям пользователя.
//
// Gate на каждую проверку заново читает роли пользователя, выбирает основную роль
// по старшинству admin > trainer > member и решает, показать страницу или
// перенаправить пользователя на домашнюю страницу его роли.
package access

import (
	"context"
	"fmt"
	"slices"

	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
)

// State итоговое состояние проверки.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateDenied          State = "denied"
	StateAdmin           State = "role:admin"
	StateTrainer         State = "role:trainer"
	StateMember          State = "role:member"
)

// LoginPath страница входа.
const LoginPath = "/login"

// precedence порядок старшинства ролей.
var precedence = []models.Role{models.RoleAdmin, models.RoleTrainer, models.RoleMember}

// Decision результат проверки доступа. Redirect пуст, если доступ разрешён.
type Decision struct {
	State    State       `json:"state"`
	Role     models.Role `json:"role,omitempty"`
	Redirect string      `json:"redirect,omitempty"`
}

// Allowed сообщает, что страницу можно показать.
func (d Decision) Allowed() bool {
	return d.Redirect == ""
}

// RoleSource читает роли пользователя в клубе.
type RoleSource interface {
	ListRoles(ctx context.Context, userID, gymID string) ([]models.UserRole, error)
}

// Gate проверяет доступ по ролям.
type Gate struct {
	roles RoleSource
}

// NewGate создаёт Gate.
func NewGate(roles RoleSource) *Gate {
	return &Gate{roles: roles}
}

// Home домашняя страница роли.
func Home(role models.Role) string {
	switch role {
	case models.RoleAdmin:
		return "/dashboard"
	case models.RoleTrainer:
		return "/trainer-dashboard"
	case models.RoleMember:
		return "/member-dashboard"
	}
	return LoginPath
}

// PrimaryRole выбирает основную роль по старшинству. false, если ролей нет.
func PrimaryRole(roles []models.UserRole) (models.Role, bool) {
	for _, candidate := range precedence {
		for _, r := range roles {
			if r.Role == candidate {
				return candidate, true
			}
		}
	}
	return "", false
}

func stateFor(role models.Role) State {
	return State("role:" + string(role))
}

// Evaluate проверяет доступ пользователя к странице с набором разрешённых ролей.
// Пустой allowed разрешает любую роль.
func (g *Gate) Evaluate(ctx context.Context, userID, gymID string, allowed []models.Role) (Decision, error) {
	const op = "access.Evaluate"
	if userID == "" {
		return Decision{State: StateUnauthenticated, Redirect: LoginPath}, nil
	}

	roles, err := g.roles.ListRoles(ctx, userID, gymID)
	if err != nil {
		return Decision{}, fmt.Errorf("%s: %w", op, err)
	}

	primary, ok := PrimaryRole(roles)
	if !ok {
		return Decision{State: StateDenied, Redirect: LoginPath}, nil
	}
	if len(allowed) > 0 && !slices.Contains(allowed, primary) {
		return Decision{State: StateDenied, Role: primary, Redirect: Home(primary)}, nil
	}
	return Decision{State: stateFor(primary), Role: primary}, nil
}

// ParseRoles разбирает список ролей, пропуская неизвестные.
func ParseRoles(values []string) []models.Role {
	var roles []models.Role
	for _, v := range values {
		r := models.Role(v)
		if slices.Contains(precedence, r) {
			roles = append(roles, r)
		}
	}
	return roles
}
