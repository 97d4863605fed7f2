// Package dashboard обработчики главной панели клуба и отчётов.
package dashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/PoorDoomer/gym-saas-sub000/internal/http/request"
	"github.com/PoorDoomer/gym-saas-sub000/internal/http/response"
	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
	"github.com/PoorDoomer/gym-saas-sub000/internal/tenant"
)

const (
	defaultMonths = 6
	maxMonths     = 24
	defaultDays   = 30
	maxDays       = 366
)

// Service аналитика клуба.
type Service interface {
	Analytics(ctx context.Context, gymID string) (*models.Analytics, error)
	RevenueReport(ctx context.Context, gymID string, months int) ([]models.RevenuePoint, error)
	CheckInReport(ctx context.Context, gymID string, days int) ([]models.CheckInPoint, error)
}

// Handler обработчики /dashboard и /reports.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// window значение параметра в пределах [1, limit], иначе def.
func window(r *http.Request, name string, def, limit int) int {
	n := request.Int(r, name, def)
	if n < 1 || n > limit {
		return def
	}
	return n
}

// Dashboard godoc
// @Summary Главная панель
// @Description Сводка по участникам, тренерам, занятиям и выручке. Значения best-effort: недоступный источник даёт нули.
// @Tags Dashboard
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Success 200 {object} response.Response{data=models.Analytics}
// @Failure 400 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /dashboard [get]
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.dashboard.Dashboard")
	a, err := h.service.Analytics(r.Context(), tenant.GymFrom(r.Context()))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, a)
}

// Revenue godoc
// @Summary Выручка по месяцам
// @Tags Reports
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Param months query int false "Количество месяцев (1-24, по умолчанию 6)"
// @Success 200 {object} response.Response{data=[]models.RevenuePoint}
// @Security BearerAuth
// @Router /reports/revenue [get]
func (h *Handler) Revenue(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.dashboard.Revenue")
	points, err := h.service.RevenueReport(r.Context(), tenant.GymFrom(r.Context()), window(r, "months", defaultMonths, maxMonths))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, points)
}

// CheckIns godoc
// @Summary Посещения по дням
// @Tags Reports
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Param days query int false "Количество дней (1-366, по умолчанию 30)"
// @Success 200 {object} response.Response{data=[]models.CheckInPoint}
// @Security BearerAuth
// @Router /reports/checkins [get]
func (h *Handler) CheckIns(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.dashboard.CheckIns")
	points, err := h.service.CheckInReport(r.Context(), tenant.GymFrom(r.Context()), window(r, "days", defaultDays, maxDays))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, points)
}
