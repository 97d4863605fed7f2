package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/PoorDoomer/gym-saas-sub000/internal/http/response"
	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/sl"
	"github.com/PoorDoomer/gym-saas-sub000/internal/tenant"
)

// GymHeader заголовок с выбранным клубом.
const GymHeader = "X-Gym-ID"

// TenantAccess проверяет, есть ли у пользователя роль в клубе.
type TenantAccess interface {
	HasGymAccess(ctx context.Context, userID, gymID string) (bool, error)
}

// GymFromRequest клуб из заголовка X-Gym-ID или параметра gym_id.
func GymFromRequest(r *http.Request) string {
	if id := r.Header.Get(GymHeader); id != "" {
		return id
	}
	return r.URL.Query().Get("gym_id")
}

// TenantMiddleware требует выбранный клуб и роль пользователя в нём.
// Без клуба отвечает 400, без доступа 403.
func TenantMiddleware(access TenantAccess, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.TenantMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			gymID := GymFromRequest(r)
			if err := tenant.Require(gymID); err != nil {
				log.Warn("gym is not selected")
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error(err.Error()))
				return
			}

			ok, err := access.HasGymAccess(r.Context(), UserFrom(r.Context()), gymID)
			if err != nil {
				log.Error("failed to check gym access", sl.Gym(gymID), sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal error"))
				return
			}
			if !ok {
				log.Warn("no access to gym", sl.Gym(gymID))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("no access to gym"))
				return
			}
			next.ServeHTTP(w, r.WithContext(tenant.WithGym(r.Context(), gymID)))
		})
	}
}
