// Package register реализует HTTP-обработчик регистрации пользователя.
// Учётная запись создаётся в сервисе идентификации, роль в клубе выдаётся отдельно.
package register

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/PoorDoomer/gym-saas-sub000/internal/http/request"
	"github.com/PoorDoomer/gym-saas-sub000/internal/http/response"
	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
)

// Service описывает клиент сервиса идентификации.
type Service interface {
	SignUp(ctx context.Context, email, password string) (string, error)
}

// Handler обрабатывает HTTP-запросы регистрации.
type Handler struct {
	log        *slog.Logger
	authClient Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, authClient Service) *Handler {
	return &Handler{log: log, authClient: authClient}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.SignUpRequest true "Почта и пароль"
// @Success 201 {object} response.Response "ID созданного пользователя"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 409 {object} response.ErrorResponse "Почта уже занята"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /auth/signup [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.auth.register")

	var req models.SignUpRequest
	if !request.Decode(w, r, log, &req) {
		return
	}

	userID, err := h.authClient.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}

	log.Info("user registered", slog.String("user_uid", userID))
	response.Created(w, r, map[string]any{
		"user_uid": userID,
		"email":    req.Email,
		"message":  "user created successfully",
	})
}
