// Package gyms обработчики клубов пользователя, настроек выбранного клуба и тарифа SaaS.
package gyms

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/PoorDoomer/gym-saas-sub000/internal/http/middlewarectx"
	"github.com/PoorDoomer/gym-saas-sub000/internal/http/request"
	"github.com/PoorDoomer/gym-saas-sub000/internal/http/response"
	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
	"github.com/PoorDoomer/gym-saas-sub000/internal/tenant"
)

// Service операции над клубами.
type Service interface {
	Create(ctx context.Context, userID string, req models.CreateGymRequest) (*models.Gym, error)
	ListForUser(ctx context.Context, userID string) ([]*models.Gym, error)
	Get(ctx context.Context, gymID string) (*models.Gym, error)
	UpdateSettings(ctx context.Context, gymID string, req models.UpdateGymSettingsRequest) (*models.Gym, error)
	Tiers() []models.TierInfo
	ChangeTier(ctx context.Context, gymID string, req models.ChangeTierRequest) (*models.Gym, error)
}

// Handler обработчики /gyms, /settings и /billing.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// List godoc
// @Summary Клубы пользователя
// @Description Клубы, в которых у пользователя есть роль. Клиент выбирает один и передаёт его в X-Gym-ID.
// @Tags Gyms
// @Produce json
// @Success 200 {object} response.Response{data=[]models.Gym}
// @Failure 401 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /gyms [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.gyms.List")
	list, err := h.service.ListForUser(r.Context(), middlewarectx.UserFrom(r.Context()))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, list)
}

// Create godoc
// @Summary Создать клуб
// @Description Создатель становится администратором клуба. Новый клуб получает тариф starter.
// @Tags Gyms
// @Accept json
// @Produce json
// @Param request body models.CreateGymRequest true "Клуб"
// @Success 201 {object} response.Response{data=models.Gym}
// @Failure 409 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /gyms [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.gyms.Create")
	var req models.CreateGymRequest
	if !request.Decode(w, r, log, &req) {
		return
	}
	g, err := h.service.Create(r.Context(), middlewarectx.UserFrom(r.Context()), req)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.Created(w, r, g)
}

// Settings godoc
// @Summary Настройки клуба
// @Tags Settings
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Success 200 {object} response.Response{data=models.Gym}
// @Security BearerAuth
// @Router /settings [get]
func (h *Handler) Settings(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.gyms.Settings")
	g, err := h.service.Get(r.Context(), tenant.GymFrom(r.Context()))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, g)
}

// UpdateSettings godoc
// @Summary Изменить настройки клуба
// @Tags Settings
// @Accept json
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Param request body models.UpdateGymSettingsRequest true "Изменения"
// @Success 200 {object} response.Response{data=models.Gym}
// @Security BearerAuth
// @Router /settings [put]
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.gyms.UpdateSettings")
	var req models.UpdateGymSettingsRequest
	if !request.Decode(w, r, log, &req) {
		return
	}
	g, err := h.service.UpdateSettings(r.Context(), tenant.GymFrom(r.Context()), req)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, g)
}

// Tiers godoc
// @Summary Тарифы
// @Tags Billing
// @Produce json
// @Success 200 {object} response.Response{data=[]models.TierInfo}
// @Security BearerAuth
// @Router /billing/tiers [get]
func (h *Handler) Tiers(w http.ResponseWriter, r *http.Request) {
	response.OK(w, r, h.service.Tiers())
}

// ChangeTier godoc
// @Summary Сменить тариф
// @Description Понижение тарифа не удаляет участников сверх лимита, но блокирует добавление новых.
// @Tags Billing
// @Accept json
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Param request body models.ChangeTierRequest true "Тариф"
// @Success 200 {object} response.Response{data=models.Gym}
// @Security BearerAuth
// @Router /billing/tier [put]
func (h *Handler) ChangeTier(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.gyms.ChangeTier")
	var req models.ChangeTierRequest
	if !request.Decode(w, r, log, &req) {
		return
	}
	g, err := h.service.ChangeTier(r.Context(), tenant.GymFrom(r.Context()), req)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, g)
}
