// Package access отдаёт клиентским страницам решение ролевого шлюза и меню для роли.
package access

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	gate "github.com/PoorDoomer/gym-saas-sub000/internal/access"
	"github.com/PoorDoomer/gym-saas-sub000/internal/http/middlewarectx"
	"github.com/PoorDoomer/gym-saas-sub000/internal/http/request"
	"github.com/PoorDoomer/gym-saas-sub000/internal/http/response"
	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
)

// Gate проверка доступа по ролям.
type Gate interface {
	Evaluate(ctx context.Context, userID, gymID string, allowed []models.Role) (gate.Decision, error)
}

// Navigation меню пользователя в выбранном клубе.
type Navigation struct {
	Role  models.Role    `json:"role"`
	Home  string         `json:"home"`
	Items []gate.NavItem `json:"items"`
}

// Handler обработчики /access и /me/navigation.
type Handler struct {
	log  *slog.Logger
	gate Gate
}

// New создает Handler.
func New(log *slog.Logger, g Gate) *Handler {
	return &Handler{log: log, gate: g}
}

// allowed собирает роли из параметров allow=admin&allow=trainer или allow=admin,trainer.
func allowed(r *http.Request) (roles []models.Role, given bool) {
	var values []string
	for _, v := range r.URL.Query()["allow"] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				values = append(values, part)
			}
		}
	}
	return gate.ParseRoles(values), len(values) > 0
}

// Check godoc
// @Summary Проверка доступа к странице
// @Description Возвращает состояние шлюза и адрес перенаправления, если страницу показывать нельзя.
// @Tags Access
// @Produce json
// @Param X-Gym-ID header string false "ID клуба"
// @Param allow query []string false "Разрешённые роли" collectionFormat(multi)
// @Success 200 {object} response.Response{data=access.Decision}
// @Failure 400 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /access [get]
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.access.Check")
	roles, given := allowed(r)
	if given && len(roles) == 0 {
		response.BadRequest(w, r, "unknown role in allow")
		return
	}
	d, err := h.gate.Evaluate(r.Context(), middlewarectx.UserFrom(r.Context()), middlewarectx.GymFromRequest(r), roles)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, d)
}

// Navigation godoc
// @Summary Меню пользователя
// @Description Основная роль в клубе (admin > trainer > member), её домашняя страница и пункты бокового меню.
// @Tags Access
// @Produce json
// @Param X-Gym-ID header string false "ID клуба"
// @Success 200 {object} response.Response{data=Navigation}
// @Failure 403 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /me/navigation [get]
func (h *Handler) Navigation(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.access.Navigation")
	d, err := h.gate.Evaluate(r.Context(), middlewarectx.UserFrom(r.Context()), middlewarectx.GymFromRequest(r), nil)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	if !d.Allowed() {
		log.Info("navigation denied", slog.String("state", string(d.State)))
		code := http.StatusForbidden
		if d.State == gate.StateUnauthenticated {
			code = http.StatusUnauthorized
		}
		render.Status(r, code)
		render.JSON(w, r, response.Redirect("access denied", d.Redirect))
		return
	}
	response.OK(w, r, Navigation{
		Role:  d.Role,
		Home:  gate.Home(d.Role),
		Items: gate.Sidebar(d.Role),
	})
}
