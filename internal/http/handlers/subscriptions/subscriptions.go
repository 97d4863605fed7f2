// Package subscriptions обработчики подписок участников на абонементы.
package subscriptions

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/PoorDoomer/gym-saas-sub000/internal/http/request"
	"github.com/PoorDoomer/gym-saas-sub000/internal/http/response"
	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
	"github.com/PoorDoomer/gym-saas-sub000/internal/tenant"
)

// Service операции над подписками.
type Service interface {
	Create(ctx context.Context, gymID string, req models.CreateSubscriptionRequest) (*models.Subscription, error)
	Get(ctx context.Context, gymID, id string) (*models.Subscription, error)
	List(ctx context.Context, gymID string) ([]*models.Subscription, error)
	Cancel(ctx context.Context, gymID, id string) (*models.Subscription, error)
}

// Handler обработчики /subscriptions.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// List godoc
// @Summary Подписки клуба
// @Tags Subscriptions
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Success 200 {object} response.Response{data=[]models.Subscription}
// @Security BearerAuth
// @Router /subscriptions [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.subscriptions.List")
	list, err := h.service.List(r.Context(), tenant.GymFrom(r.Context()))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, list)
}

// Get godoc
// @Summary Подписка
// @Tags Subscriptions
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Param id path string true "ID подписки"
// @Success 200 {object} response.Response{data=models.Subscription}
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /subscriptions/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.subscriptions.Get")
	s, err := h.service.Get(r.Context(), tenant.GymFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, s)
}

// Create godoc
// @Summary Оформить подписку
// @Description Конец периода считается по расчётному периоду абонемента. Пустая start_date означает сегодня.
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Param request body models.CreateSubscriptionRequest true "Участник и абонемент"
// @Success 201 {object} response.Response{data=models.Subscription}
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /subscriptions [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.subscriptions.Create")
	var req models.CreateSubscriptionRequest
	if !request.Decode(w, r, log, &req) {
		return
	}
	s, err := h.service.Create(r.Context(), tenant.GymFrom(r.Context()), req)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.Created(w, r, s)
}

// Cancel godoc
// @Summary Отменить подписку
// @Tags Subscriptions
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Param id path string true "ID подписки"
// @Success 200 {object} response.Response{data=models.Subscription}
// @Failure 409 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /subscriptions/{id}/cancel [post]
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.subscriptions.Cancel")
	s, err := h.service.Cancel(r.Context(), tenant.GymFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, s)
}
