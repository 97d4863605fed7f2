// Package login реализует HTTP-обработчик входа пользователя.
//
// Учётные данные проверяет сервис идентификации по gRPC, в ответ клиент получает
// JWT, который дальше передаётся в заголовке Authorization.
package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/PoorDoomer/gym-saas-sub000/internal/grpc/client"
	"github.com/PoorDoomer/gym-saas-sub000/internal/http/request"
	"github.com/PoorDoomer/gym-saas-sub000/internal/http/response"
	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
)

// Service описывает клиент сервиса идентификации.
type Service interface {
	Login(ctx context.Context, email, password string) (*models.Session, error)
}

// Handler обрабатывает HTTP-запросы входа.
type Handler struct {
	log        *slog.Logger
	authClient Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, authClient Service) *Handler {
	return &Handler{log: log, authClient: authClient}
}

// ServeHTTP godoc
// @Summary Вход пользователя
// @Description Проверяет почту и пароль, возвращает JWT и срок его действия.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Учетные данные пользователя"
// @Success 200 {object} response.Response{data=models.Session}
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.auth.login")

	var req models.LoginRequest
	if !request.Decode(w, r, log, &req) {
		return
	}

	session, err := h.authClient.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, client.ErrUnauthenticated) {
		log.Warn("invalid credentials")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("invalid credentials"))
		return
	}
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}

	log.Info("login success", slog.String("user_uid", session.UserUID))
	response.OK(w, r, session)
}
