// Package signout реализует HTTP-обработчик выхода: токен запроса попадает в чёрный список
// сервиса идентификации до окончания срока действия.
package signout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/PoorDoomer/gym-saas-sub000/internal/http/middlewarectx"
	"github.com/PoorDoomer/gym-saas-sub000/internal/http/request"
	"github.com/PoorDoomer/gym-saas-sub000/internal/http/response"
)

// Service описывает клиент сервиса идентификации.
type Service interface {
	SignOut(ctx context.Context, token string) error
}

// Handler обрабатывает выход пользователя.
type Handler struct {
	log        *slog.Logger
	authClient Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, authClient Service) *Handler {
	return &Handler{log: log, authClient: authClient}
}

// ServeHTTP godoc
// @Summary Выход
// @Tags Auth
// @Success 204
// @Failure 401 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /auth/signout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.auth.signout")

	if err := h.authClient.SignOut(r.Context(), middlewarectx.TokenFrom(r.Context())); err != nil {
		response.Fail(w, r, log, err)
		return
	}

	log.Info("user signed out", slog.String("user_uid", middlewarectx.UserFrom(r.Context())))
	w.WriteHeader(http.StatusNoContent)
}
