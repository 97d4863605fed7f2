// Package sports обработчики видов спорта. Список содержит виды спорта клуба и глобальные.
package sports

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

// Service операции над видами спорта.
type Service interface {
	List(ctx context.Context, gymID string) ([]*models.Sport, error)
	Get(ctx context.Context, gymID, id string) (*models.Sport, error)
	Create(ctx context.Context, gymID string, req models.CreateSportRequest) (*models.Sport, error)
	Update(ctx context.Context, gymID, id string, req models.UpdateSportRequest) (*models.Sport, error)
	Delete(ctx context.Context, gymID, id string) error
	Stats(ctx context.Context, gymID string) (models.SportStats, error)
}

// Handler обработчики /sports.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// List godoc
// @Summary Виды спорта
// @Tags Sports
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Success 200 {object} response.Response{data=[]models.Sport}
// @Security BearerAuth
// @Router /sports [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.sports.List")
	list, err := h.service.List(r.Context(), tenant.GymFrom(r.Context()))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, list)
}

// Get godoc
// @Summary Вид спорта
// @Tags Sports
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Param id path string true "ID вида спорта"
// @Success 200 {object} response.Response{data=models.Sport}
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /sports/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.sports.Get")
	s, err := h.service.Get(r.Context(), tenant.GymFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, s)
}

// Create godoc
// @Summary Добавить вид спорта
// @Tags Sports
// @Accept json
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Param request body models.CreateSportRequest true "Вид спорта"
// @Success 201 {object} response.Response{data=models.Sport}
// @Security BearerAuth
// @Router /sports [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.sports.Create")
	var req models.CreateSportRequest
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

// Update godoc
// @Summary Изменить вид спорта
// @Description Глобальные виды спорта изменить нельзя (403).
// @Tags Sports
// @Accept json
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Param id path string true "ID вида спорта"
// @Param request body models.UpdateSportRequest true "Изменения"
// @Success 200 {object} response.Response{data=models.Sport}
// @Failure 403 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /sports/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.sports.Update")
	var req models.UpdateSportRequest
	if !request.Decode(w, r, log, &req) {
		return
	}
	s, err := h.service.Update(r.Context(), tenant.GymFrom(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, s)
}

// Delete godoc
// @Summary Деактивировать вид спорта
// @Tags Sports
// @Param X-Gym-ID header string true "ID клуба"
// @Param id path string true "ID вида спорта"
// @Success 204
// @Failure 403 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /sports/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.sports.Delete")
	if err := h.service.Delete(r.Context(), tenant.GymFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.Fail(w, r, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Stats godoc
// @Summary Сводка по видам спорта
// @Tags Sports
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Success 200 {object} response.Response{data=models.SportStats}
// @Security BearerAuth
// @Router /sports/stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.sports.Stats")
	stats, err := h.service.Stats(r.Context(), tenant.GymFrom(r.Context()))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, stats)
}
