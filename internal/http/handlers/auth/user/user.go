// Package user реализует HTTP-обработчик смены почты или пароля текущего пользователя.
package user

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/PoorDoomer/gym-saas-sub000/internal/http/middlewarectx"
	"github.com/PoorDoomer/gym-saas-sub000/internal/http/request"
	"github.com/PoorDoomer/gym-saas-sub000/internal/http/response"
	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
)

// Service описывает клиент сервиса идентификации.
type Service interface {
	UpdateUser(ctx context.Context, userID, email, password string) (*models.Identity, error)
}

// Handler обрабатывает изменение учётной записи.
type Handler struct {
	log        *slog.Logger
	authClient Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, authClient Service) *Handler {
	return &Handler{log: log, authClient: authClient}
}

// ServeHTTP godoc
// @Summary Изменить учётную запись
// @Description Пустые поля не меняются. Нужно передать хотя бы одно.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.UpdateUserRequest true "Новая почта или пароль"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Почта уже занята"
// @Security BearerAuth
// @Router /auth/user [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.auth.user")

	var req models.UpdateUserRequest
	if !request.Decode(w, r, log, &req) {
		return
	}
	if req.Email == "" && req.Password == "" {
		response.BadRequest(w, r, "nothing to update")
		return
	}

	identity, err := h.authClient.UpdateUser(r.Context(), middlewarectx.UserFrom(r.Context()), req.Email, req.Password)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}

	response.OK(w, r, map[string]any{
		"user_uid": identity.UUID,
		"email":    identity.Email,
	})
}
