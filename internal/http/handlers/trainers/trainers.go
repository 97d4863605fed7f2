// Package trainers реализует HTTP-обработчики страницы тренеров и их видов спорта.
package trainers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"

	"github.com/PoorDoomer/gym-saas-sub000/internal/http/request"
	"github.com/PoorDoomer/gym-saas-sub000/internal/http/response"
	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/sl"
	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
	account "github.com/PoorDoomer/gym-saas-sub000/internal/services/account"
	"github.com/PoorDoomer/gym-saas-sub000/internal/tenant"
)

// Service операции над тренерами.
type Service interface {
	List(ctx context.Context, gymID string) ([]*models.Trainer, error)
	Get(ctx context.Context, gymID, id string) (*models.Trainer, error)
	Update(ctx context.Context, gymID, id string, req models.UpdateTrainerRequest) (*models.Trainer, error)
	Delete(ctx context.Context, gymID, id string) error
	Stats(ctx context.Context, gymID string) (models.TrainerStats, error)
	AssignSport(ctx context.Context, gymID, trainerID string, req models.AssignSportRequest) error
	RemoveSport(ctx context.Context, gymID, trainerID, sportID string) error
	ListSports(ctx context.Context, gymID, trainerID string) ([]models.TrainerSport, error)
}

// AccountService создание тренера вместе с учётной записью.
type AccountService interface {
	CreateTrainer(ctx context.Context, gymID string, req models.CreateTrainerRequest) (*account.Outcome, error)
}

// Handler обработчики /trainers.
type Handler struct {
	log      *slog.Logger
	service  Service
	accounts AccountService
}

// New создает Handler.
func New(log *slog.Logger, service Service, accounts AccountService) *Handler {
	return &Handler{log: log, service: service, accounts: accounts}
}

// List godoc
// @Summary Список тренеров
// @Tags Trainers
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Success 200 {object} response.Response{data=[]models.Trainer}
// @Security BearerAuth
// @Router /trainers [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.trainers.List")
	list, err := h.service.List(r.Context(), tenant.GymFrom(r.Context()))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, list)
}

// Get godoc
// @Summary Тренер
// @Tags Trainers
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Param id path string true "ID тренера"
// @Success 200 {object} response.Response{data=models.Trainer}
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /trainers/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.trainers.Get")
	t, err := h.service.Get(r.Context(), tenant.GymFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, t)
}

// Create godoc
// @Summary Добавить тренера
// @Description Создаёт учётную запись, тренера, роль trainer и связь. При ошибке учётная запись удаляется.
// @Tags Trainers
// @Accept json
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Param request body models.CreateTrainerRequest true "Тренер и пароль"
// @Success 201 {object} response.Response{data=account.Outcome}
// @Failure 409 {object} response.Response{data=account.Outcome}
// @Security BearerAuth
// @Router /trainers [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.trainers.Create")
	var req models.CreateTrainerRequest
	if !request.Decode(w, r, log, &req) {
		return
	}
	out, err := h.accounts.CreateTrainer(r.Context(), tenant.GymFrom(r.Context()), req)
	if err != nil {
		code, msg := response.StatusFor(err)
		log.Error("failed to create trainer account", slog.Int("status", code), sl.Err(err))
		render.Status(r, code)
		render.JSON(w, r, response.Response{Status: response.StatusError, Error: msg, Data: out})
		return
	}
	response.Created(w, r, out)
}

// Update godoc
// @Summary Изменить тренера
// @Tags Trainers
// @Accept json
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Param id path string true "ID тренера"
// @Param request body models.UpdateTrainerRequest true "Изменения"
// @Success 200 {object} response.Response{data=models.Trainer}
// @Security BearerAuth
// @Router /trainers/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.trainers.Update")
	var req models.UpdateTrainerRequest
	if !request.Decode(w, r, log, &req) {
		return
	}
	t, err := h.service.Update(r.Context(), tenant.GymFrom(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, t)
}

// Delete godoc
// @Summary Деактивировать тренера
// @Tags Trainers
// @Param X-Gym-ID header string true "ID клуба"
// @Param id path string true "ID тренера"
// @Success 204
// @Security BearerAuth
// @Router /trainers/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.trainers.Delete")
	if err := h.service.Delete(r.Context(), tenant.GymFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.Fail(w, r, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Stats godoc
// @Summary Сводка по тренерам
// @Tags Trainers
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Success 200 {object} response.Response{data=models.TrainerStats}
// @Security BearerAuth
// @Router /trainers/stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.trainers.Stats")
	stats, err := h.service.Stats(r.Context(), tenant.GymFrom(r.Context()))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, stats)
}

// ListSports godoc
// @Summary Виды спорта тренера
// @Tags Trainers
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Param id path string true "ID тренера"
// @Success 200 {object} response.Response{data=[]models.TrainerSport}
// @Security BearerAuth
// @Router /trainers/{id}/sports [get]
func (h *Handler) ListSports(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.trainers.ListSports")
	sports, err := h.service.ListSports(r.Context(), tenant.GymFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, sports)
}

// AssignSport godoc
// @Summary Привязать вид спорта
// @Tags Trainers
// @Accept json
// @Param X-Gym-ID header string true "ID клуба"
// @Param id path string true "ID тренера"
// @Param request body models.AssignSportRequest true "Вид спорта и уровень"
// @Success 204
// @Security BearerAuth
// @Router /trainers/{id}/sports [post]
func (h *Handler) AssignSport(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.trainers.AssignSport")
	var req models.AssignSportRequest
	if !request.Decode(w, r, log, &req) {
		return
	}
	if err := h.service.AssignSport(r.Context(), tenant.GymFrom(r.Context()), chi.URLParam(r, "id"), req); err != nil {
		response.Fail(w, r, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveSport godoc
// @Summary Отвязать вид спорта
// @Tags Trainers
// @Param X-Gym-ID header string true "ID клуба"
// @Param id path string true "ID тренера"
// @Param sportID path string true "ID вида спорта"
// @Success 204
// @Security BearerAuth
// @Router /trainers/{id}/sports/{sportID} [delete]
func (h *Handler) RemoveSport(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.trainers.RemoveSport")
	err := h.service.RemoveSport(r.Context(), tenant.GymFrom(r.Context()), chi.URLParam(r, "id"), chi.URLParam(r, "sportID"))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
