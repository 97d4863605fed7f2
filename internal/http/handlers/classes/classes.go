// Package classes реализует HTTP-обработчики страницы занятий: шаблоны занятий,
// расписание проведений и записи участников.
package classes

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/PoorDoomer/gym-saas-sub000/internal/http/request"
	"github.com/PoorDoomer/gym-saas-sub000/internal/http/response"
	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
	"github.com/PoorDoomer/gym-saas-sub000/internal/tenant"
)

// Service операции над занятиями.
type Service interface {
	List(ctx context.Context, gymID string) ([]*models.Class, error)
	Get(ctx context.Context, gymID, id string) (*models.Class, error)
	Create(ctx context.Context, gymID string, req models.CreateClassRequest) (*models.Class, error)
	Update(ctx context.Context, gymID, id string, req models.UpdateClassRequest) (*models.Class, error)
	Delete(ctx context.Context, gymID, id string) error
	Stats(ctx context.Context, gymID string) (models.ClassStats, error)
	CreateSchedule(ctx context.Context, gymID, classID string, req models.CreateScheduleRequest) (*models.ClassSchedule, error)
	ListSchedules(ctx context.Context, gymID string, from time.Time) ([]*models.ClassSchedule, error)
	CancelSchedule(ctx context.Context, gymID, scheduleID string) error
	ListEnrollments(ctx context.Context, gymID, scheduleID string) ([]*models.ClassEnrollment, error)
	Enroll(ctx context.Context, gymID, scheduleID string, req models.EnrollRequest) (*models.ClassEnrollment, error)
	UpdateEnrollmentStatus(ctx context.Context, gymID, enrollmentID string, req models.UpdateEnrollmentStatusRequest) (*models.ClassEnrollment, error)
}

// Handler обработчики /classes, /schedules и /enrollments.
type Handler struct {
	log     *slog.Logger
	service Service
	now     func() time.Time
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, now: time.Now}
}

// List godoc
// @Summary Список занятий
// @Tags Classes
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Success 200 {object} response.Response{data=[]models.Class}
// @Security BearerAuth
// @Router /classes [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.classes.List")
	list, err := h.service.List(r.Context(), tenant.GymFrom(r.Context()))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, list)
}

// Get godoc
// @Summary Занятие
// @Tags Classes
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Param id path string true "ID занятия"
// @Success 200 {object} response.Response{data=models.Class}
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /classes/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.classes.Get")
	c, err := h.service.Get(r.Context(), tenant.GymFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, c)
}

// Create godoc
// @Summary Создать занятие
// @Tags Classes
// @Accept json
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Param request body models.CreateClassRequest true "Занятие"
// @Success 201 {object} response.Response{data=models.Class}
// @Failure 422 {object} response.Response
// @Security BearerAuth
// @Router /classes [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.classes.Create")
	var req models.CreateClassRequest
	if !request.Decode(w, r, log, &req) {
		return
	}
	c, err := h.service.Create(r.Context(), tenant.GymFrom(r.Context()), req)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.Created(w, r, c)
}

// Update godoc
// @Summary Изменить занятие
// @Tags Classes
// @Accept json
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Param id path string true "ID занятия"
// @Param request body models.UpdateClassRequest true "Изменения"
// @Success 200 {object} response.Response{data=models.Class}
// @Security BearerAuth
// @Router /classes/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.classes.Update")
	var req models.UpdateClassRequest
	if !request.Decode(w, r, log, &req) {
		return
	}
	c, err := h.service.Update(r.Context(), tenant.GymFrom(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, c)
}

// Delete godoc
// @Summary Деактивировать занятие
// @Tags Classes
// @Param X-Gym-ID header string true "ID клуба"
// @Param id path string true "ID занятия"
// @Success 204
// @Security BearerAuth
// @Router /classes/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.classes.Delete")
	if err := h.service.Delete(r.Context(), tenant.GymFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.Fail(w, r, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Stats godoc
// @Summary Сводка по занятиям
// @Tags Classes
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Success 200 {object} response.Response{data=models.ClassStats}
// @Security BearerAuth
// @Router /classes/stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.classes.Stats")
	stats, err := h.service.Stats(r.Context(), tenant.GymFrom(r.Context()))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, stats)
}

// CreateSchedule godoc
// @Summary Запланировать проведение
// @Description Время окончания считается по длительности занятия.
// @Tags Classes
// @Accept json
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Param id path string true "ID занятия"
// @Param request body models.CreateScheduleRequest true "Начало и тренер"
// @Success 201 {object} response.Response{data=models.ClassSchedule}
// @Security BearerAuth
// @Router /classes/{id}/schedules [post]
func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.classes.CreateSchedule")
	var req models.CreateScheduleRequest
	if !request.Decode(w, r, log, &req) {
		return
	}
	s, err := h.service.CreateSchedule(r.Context(), tenant.GymFrom(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.Created(w, r, s)
}

// ListSchedules godoc
// @Summary Расписание
// @Description Проведения, начинающиеся не раньше from (по умолчанию сегодня).
// @Tags Classes
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Param from query string false "Дата YYYY-MM-DD"
// @Success 200 {object} response.Response{data=[]models.ClassSchedule}
// @Failure 400 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /schedules [get]
func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.classes.ListSchedules")
	from, err := request.Date(r, "from")
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	if from.IsZero() {
		y, m, d := h.now().Date()
		from = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	list, err := h.service.ListSchedules(r.Context(), tenant.GymFrom(r.Context()), from)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, list)
}

// CancelSchedule godoc
// @Summary Отменить проведение
// @Tags Classes
// @Param X-Gym-ID header string true "ID клуба"
// @Param id path string true "ID проведения"
// @Success 204
// @Security BearerAuth
// @Router /schedules/{id}/cancel [post]
func (h *Handler) CancelSchedule(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.classes.CancelSchedule")
	if err := h.service.CancelSchedule(r.Context(), tenant.GymFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.Fail(w, r, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListEnrollments godoc
// @Summary Записи на проведение
// @Tags Classes
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Param id path string true "ID проведения"
// @Success 200 {object} response.Response{data=[]models.ClassEnrollment}
// @Security BearerAuth
// @Router /schedules/{id}/enrollments [get]
func (h *Handler) ListEnrollments(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.classes.ListEnrollments")
	list, err := h.service.ListEnrollments(r.Context(), tenant.GymFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, list)
}

// Enroll godoc
// @Summary Записать участника
// @Description Запись получает статус approved, если есть места, иначе waitlist.
// @Tags Classes
// @Accept json
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Param id path string true "ID проведения"
// @Param request body models.EnrollRequest true "Участник"
// @Success 201 {object} response.Response{data=models.ClassEnrollment}
// @Failure 409 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /schedules/{id}/enrollments [post]
func (h *Handler) Enroll(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.classes.Enroll")
	var req models.EnrollRequest
	if !request.Decode(w, r, log, &req) {
		return
	}
	e, err := h.service.Enroll(r.Context(), tenant.GymFrom(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.Created(w, r, e)
}

// UpdateEnrollmentStatus godoc
// @Summary Сменить статус записи
// @Tags Classes
// @Accept json
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Param id path string true "ID записи"
// @Param request body models.UpdateEnrollmentStatusRequest true "Статус"
// @Success 200 {object} response.Response{data=models.ClassEnrollment}
// @Security BearerAuth
// @Router /enrollments/{id}/status [put]
func (h *Handler) UpdateEnrollmentStatus(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.classes.UpdateEnrollmentStatus")
	var req models.UpdateEnrollmentStatusRequest
	if !request.Decode(w, r, log, &req) {
		return
	}
	e, err := h.service.UpdateEnrollmentStatus(r.Context(), tenant.GymFrom(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, e)
}
