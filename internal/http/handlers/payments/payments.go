// Package payments обработчики платежей: регистрация, список, смена статуса и сводка.
package payments

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

// Service операции над платежами.
type Service interface {
	Create(ctx context.Context, gymID string, req models.CreatePaymentRequest) (*models.Payment, error)
	Get(ctx context.Context, gymID, id string) (*models.Payment, error)
	List(ctx context.Context, gymID string) ([]*models.Payment, error)
	UpdateStatus(ctx context.Context, gymID, id string, req models.UpdatePaymentStatusRequest) (*models.Payment, error)
	Stats(ctx context.Context, gymID string) (models.PaymentStats, error)
}

// Handler обработчики /payments.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// List godoc
// @Summary Платежи клуба
// @Tags Payments
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Success 200 {object} response.Response{data=[]models.Payment}
// @Security BearerAuth
// @Router /payments [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.payments.List")
	list, err := h.service.List(r.Context(), tenant.GymFrom(r.Context()))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, list)
}

// Get godoc
// @Summary Платёж
// @Tags Payments
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Param id path string true "ID платежа"
// @Success 200 {object} response.Response{data=models.Payment}
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /payments/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.payments.Get")
	p, err := h.service.Get(r.Context(), tenant.GymFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, p)
}

// Create godoc
// @Summary Зарегистрировать платёж
// @Description Без статуса платёж считается проведённым. Валюта по умолчанию USD.
// @Tags Payments
// @Accept json
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Param request body models.CreatePaymentRequest true "Платёж"
// @Success 201 {object} response.Response{data=models.Payment}
// @Failure 422 {object} response.Response
// @Security BearerAuth
// @Router /payments [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.payments.Create")
	var req models.CreatePaymentRequest
	if !request.Decode(w, r, log, &req) {
		return
	}
	p, err := h.service.Create(r.Context(), tenant.GymFrom(r.Context()), req)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.Created(w, r, p)
}

// UpdateStatus godoc
// @Summary Сменить статус платежа
// @Description Возврат возможен только для проведённого платежа.
// @Tags Payments
// @Accept json
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Param id path string true "ID платежа"
// @Param request body models.UpdatePaymentStatusRequest true "Статус"
// @Success 200 {object} response.Response{data=models.Payment}
// @Failure 409 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /payments/{id}/status [put]
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.payments.UpdateStatus")
	var req models.UpdatePaymentStatusRequest
	if !request.Decode(w, r, log, &req) {
		return
	}
	p, err := h.service.UpdateStatus(r.Context(), tenant.GymFrom(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, p)
}

// Stats godoc
// @Summary Сводка по платежам
// @Tags Payments
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Success 200 {object} response.Response{data=models.PaymentStats}
// @Security BearerAuth
// @Router /payments/stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.payments.Stats")
	stats, err := h.service.Stats(r.Context(), tenant.GymFrom(r.Context()))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, stats)
}
