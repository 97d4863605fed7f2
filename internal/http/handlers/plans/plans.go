// Package plans обработчики абонементов клуба.
package plans

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

// Service операции над абонементами.
type Service interface {
	List(ctx context.Context, gymID string) ([]*models.MembershipPlan, error)
	Get(ctx context.Context, gymID, id string) (*models.MembershipPlan, error)
	Create(ctx context.Context, gymID string, req models.CreatePlanRequest) (*models.MembershipPlan, error)
	Update(ctx context.Context, gymID, id string, req models.UpdatePlanRequest) (*models.MembershipPlan, error)
	Delete(ctx context.Context, gymID, id string) error
}

// Handler обработчики /plans.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// List godoc
// @Summary Абонементы
// @Tags Plans
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Success 200 {object} response.Response{data=[]models.MembershipPlan}
// @Security BearerAuth
// @Router /plans [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.plans.List")
	list, err := h.service.List(r.Context(), tenant.GymFrom(r.Context()))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, list)
}

// Get godoc
// @Summary Абонемент
// @Tags Plans
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Param id path string true "ID абонемента"
// @Success 200 {object} response.Response{data=models.MembershipPlan}
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /plans/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.plans.Get")
	p, err := h.service.Get(r.Context(), tenant.GymFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, p)
}

// Create godoc
// @Summary Создать абонемент
// @Tags Plans
// @Accept json
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Param request body models.CreatePlanRequest true "Абонемент"
// @Success 201 {object} response.Response{data=models.MembershipPlan}
// @Failure 422 {object} response.Response
// @Security BearerAuth
// @Router /plans [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.plans.Create")
	var req models.CreatePlanRequest
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

// Update godoc
// @Summary Изменить абонемент
// @Tags Plans
// @Accept json
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Param id path string true "ID абонемента"
// @Param request body models.UpdatePlanRequest true "Изменения"
// @Success 200 {object} response.Response{data=models.MembershipPlan}
// @Security BearerAuth
// @Router /plans/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.plans.Update")
	var req models.UpdatePlanRequest
	if !request.Decode(w, r, log, &req) {
		return
	}
	p, err := h.service.Update(r.Context(), tenant.GymFrom(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, p)
}

// Delete godoc
// @Summary Деактивировать абонемент
// @Tags Plans
// @Param X-Gym-ID header string true "ID клуба"
// @Param id path string true "ID абонемента"
// @Success 204
// @Security BearerAuth
// @Router /plans/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.plans.Delete")
	if err := h.service.Delete(r.Context(), tenant.GymFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.Fail(w, r, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
