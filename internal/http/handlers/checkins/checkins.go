// Package checkins обработчики посещений клуба: отметка вручную и по QR-коду,
// выход, журнал и сводка.
package checkins

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

// defaultDays глубина журнала, если since не передан.
const defaultDays = 7

// Service операции над посещениями.
type Service interface {
	CheckIn(ctx context.Context, gymID string, req models.CheckInRequest) (*models.CheckIn, error)
	CheckInByQR(ctx context.Context, gymID string, req models.QRCheckInRequest) (*models.CheckIn, error)
	CheckOut(ctx context.Context, gymID, id string) (*models.CheckIn, error)
	List(ctx context.Context, gymID string, since time.Time) ([]*models.CheckIn, error)
	Stats(ctx context.Context, gymID string) (models.CheckInStats, error)
}

// Handler обработчики /checkins.
type Handler struct {
	log     *slog.Logger
	service Service
	now     func() time.Time
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, now: time.Now}
}

// CheckIn godoc
// @Summary Отметить приход
// @Tags CheckIns
// @Accept json
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Param request body models.CheckInRequest true "Участник и способ отметки"
// @Success 201 {object} response.Response{data=models.CheckIn}
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} response.Response
// @Security BearerAuth
// @Router /checkins [post]
func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.checkins.CheckIn")
	var req models.CheckInRequest
	if !request.Decode(w, r, log, &req) {
		return
	}
	c, err := h.service.CheckIn(r.Context(), tenant.GymFrom(r.Context()), req)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.Created(w, r, c)
}

// CheckInByQR godoc
// @Summary Отметить приход по QR-коду
// @Description payload имеет вид MEMBER:<id>:<имя>. Подпись не проверяется.
// @Tags CheckIns
// @Accept json
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Param request body models.QRCheckInRequest true "Содержимое QR-кода"
// @Success 201 {object} response.Response{data=models.CheckIn}
// @Failure 400 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /checkins/qr [post]
func (h *Handler) CheckInByQR(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.checkins.CheckInByQR")
	var req models.QRCheckInRequest
	if !request.Decode(w, r, log, &req) {
		return
	}
	c, err := h.service.CheckInByQR(r.Context(), tenant.GymFrom(r.Context()), req)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.Created(w, r, c)
}

// CheckOut godoc
// @Summary Отметить уход
// @Tags CheckIns
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Param id path string true "ID посещения"
// @Success 200 {object} response.Response{data=models.CheckIn}
// @Failure 409 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /checkins/{id}/checkout [post]
func (h *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.checkins.CheckOut")
	c, err := h.service.CheckOut(r.Context(), tenant.GymFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, c)
}

// List godoc
// @Summary Журнал посещений
// @Description Посещения начиная с since, по умолчанию за последние 7 дней.
// @Tags CheckIns
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Param since query string false "Дата YYYY-MM-DD"
// @Success 200 {object} response.Response{data=[]models.CheckIn}
// @Security BearerAuth
// @Router /checkins [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.checkins.List")
	since, err := request.Date(r, "since")
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	if since.IsZero() {
		since = h.now().AddDate(0, 0, -defaultDays)
	}
	list, err := h.service.List(r.Context(), tenant.GymFrom(r.Context()), since)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, list)
}

// Stats godoc
// @Summary Сводка по посещениям
// @Tags CheckIns
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Success 200 {object} response.Response{data=models.CheckInStats}
// @Security BearerAuth
// @Router /checkins/stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.checkins.Stats")
	stats, err := h.service.Stats(r.Context(), tenant.GymFrom(r.Context()))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, stats)
}
