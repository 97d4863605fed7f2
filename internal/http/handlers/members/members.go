// Package members реализует HTTP-обработчики страницы участников клуба:
// список с поиском, карточку, создание (с учётной записью или без), изменение,
// деактивацию, сводку и QR-код для входа.
package members

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"

	"github.com/PoorDoomer/gym-saas-sub000/internal/http/request"
	"github.com/PoorDoomer/gym-saas-sub000/internal/http/response"
	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/search"
	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/sl"
	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
	account "github.com/PoorDoomer/gym-saas-sub000/internal/services/account"
	"github.com/PoorDoomer/gym-saas-sub000/internal/tenant"
)

// Service операции над участниками.
type Service interface {
	List(ctx context.Context, gymID, query string, page search.Page) (*models.MemberListResult, error)
	Get(ctx context.Context, gymID, id string) (*models.Member, error)
	Create(ctx context.Context, gymID string, req models.CreateMemberRequest) (*models.Member, error)
	Update(ctx context.Context, gymID, id string, req models.UpdateMemberRequest) (*models.Member, error)
	Delete(ctx context.Context, gymID, id string) error
	Stats(ctx context.Context, gymID string) (models.MemberStats, error)
	QRCode(ctx context.Context, gymID, id string, size int) ([]byte, error)
}

// AccountService создание участника вместе с учётной записью.
type AccountService interface {
	CreateMemberWithAccount(ctx context.Context, gymID string, req models.CreateMemberAccountRequest) (*account.Outcome, error)
}

// Handler обработчики /members.
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
// @Summary Список участников
// @Description Участники выбранного клуба. q ищет подстроку в имени, фамилии, почте и телефоне без учёта регистра.
// @Tags Members
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Param q query string false "Поиск"
// @Param offset query int false "Смещение"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} response.Response{data=models.MemberListResult}
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /members [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.members.List")
	res, err := h.service.List(r.Context(), tenant.GymFrom(r.Context()), r.URL.Query().Get("q"), request.Page(r))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, res)
}

// Get godoc
// @Summary Участник
// @Tags Members
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Param id path string true "ID участника"
// @Success 200 {object} response.Response{data=models.Member}
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /members/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.members.Get")
	m, err := h.service.Get(r.Context(), tenant.GymFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, m)
}

// Create godoc
// @Summary Добавить участника
// @Description Создаёт участника без учётной записи. Пустой membership_plan_id означает «без абонемента».
// @Tags Members
// @Accept json
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Param request body models.CreateMemberRequest true "Участник"
// @Success 201 {object} response.Response{data=models.Member}
// @Failure 409 {object} response.ErrorResponse "Лимит тарифа"
// @Failure 422 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /members [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.members.Create")
	var req models.CreateMemberRequest
	if !request.Decode(w, r, log, &req) {
		return
	}
	m, err := h.service.Create(r.Context(), tenant.GymFrom(r.Context()), req)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	log.Info("member created", slog.String("member_id", m.ID))
	response.Created(w, r, m)
}

// CreateWithAccount godoc
// @Summary Добавить участника с учётной записью
// @Description Создаёт учётную запись, участника, роль member и связь. При ошибке учётная запись удаляется; шаги возвращаются в data.
// @Tags Members
// @Accept json
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Param request body models.CreateMemberAccountRequest true "Участник и пароль"
// @Success 201 {object} response.Response{data=account.Outcome}
// @Failure 409 {object} response.Response{data=account.Outcome}
// @Security BearerAuth
// @Router /members/accounts [post]
func (h *Handler) CreateWithAccount(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.members.CreateWithAccount")
	var req models.CreateMemberAccountRequest
	if !request.Decode(w, r, log, &req) {
		return
	}
	out, err := h.accounts.CreateMemberWithAccount(r.Context(), tenant.GymFrom(r.Context()), req)
	if err != nil {
		code, msg := response.StatusFor(err)
		log.Error("failed to create member account", slog.Int("status", code), sl.Err(err))
		render.Status(r, code)
		render.JSON(w, r, response.Response{Status: response.StatusError, Error: msg, Data: out})
		return
	}
	response.Created(w, r, out)
}

// Update godoc
// @Summary Изменить участника
// @Description Частичное обновление. Пустая строка в membership_plan_id или date_of_birth очищает поле.
// @Tags Members
// @Accept json
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Param id path string true "ID участника"
// @Param request body models.UpdateMemberRequest true "Изменения"
// @Success 200 {object} response.Response{data=models.Member}
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /members/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.members.Update")
	var req models.UpdateMemberRequest
	if !request.Decode(w, r, log, &req) {
		return
	}
	m, err := h.service.Update(r.Context(), tenant.GymFrom(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, m)
}

// Delete godoc
// @Summary Деактивировать участника
// @Tags Members
// @Param X-Gym-ID header string true "ID клуба"
// @Param id path string true "ID участника"
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /members/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.members.Delete")
	if err := h.service.Delete(r.Context(), tenant.GymFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.Fail(w, r, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Stats godoc
// @Summary Сводка по участникам
// @Tags Members
// @Produce json
// @Param X-Gym-ID header string true "ID клуба"
// @Success 200 {object} response.Response{data=models.MemberStats}
// @Security BearerAuth
// @Router /members/stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.members.Stats")
	stats, err := h.service.Stats(r.Context(), tenant.GymFrom(r.Context()))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.OK(w, r, stats)
}

// QRCode godoc
// @Summary QR-код участника
// @Description PNG с данными MEMBER:<id>:<имя> для отметки на входе.
// @Tags Members
// @Produce png
// @Param X-Gym-ID header string true "ID клуба"
// @Param id path string true "ID участника"
// @Param size query int false "Размер в пикселях" default(256)
// @Success 200 {file} binary
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /members/{id}/qr [get]
func (h *Handler) QRCode(w http.ResponseWriter, r *http.Request) {
	log := request.Logger(h.log, r, "handlers.members.QRCode")
	size := request.Int(r, "size", 256)
	png, err := h.service.QRCode(r.Context(), tenant.GymFrom(r.Context()), chi.URLParam(r, "id"), size)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(png); err != nil {
		log.Error("failed to write qr code", sl.Err(err))
	}
}
