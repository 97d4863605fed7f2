package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/PoorDoomer/gym-saas-sub000/internal/access"
	"github.com/PoorDoomer/gym-saas-sub000/internal/http/response"
	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/sl"
	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
	"github.com/PoorDoomer/gym-saas-sub000/internal/tenant"
)

// Gate решает, пускать ли пользователя на страницу.
type Gate interface {
	Evaluate(ctx context.Context, userID, gymID string, allowed []models.Role) (access.Decision, error)
}

// RoleMiddleware пропускает запрос, если основная роль пользователя в клубе входит в allowed.
// Неаутентифицированный пользователь получает 401, остальные отказы 403; в обоих случаях
// в теле есть redirect, куда клиенту перейти.
func RoleMiddleware(gate Gate, log *slog.Logger, allowed ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RoleMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			gymID := tenant.GymFrom(r.Context())
			decision, err := gate.Evaluate(r.Context(), UserFrom(r.Context()), gymID, allowed)
			if err != nil {
				log.Error("failed to evaluate access", sl.Gym(gymID), sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal error"))
				return
			}
			if !decision.Allowed() {
				code := http.StatusForbidden
				if decision.State == access.StateUnauthenticated {
					code = http.StatusUnauthorized
				}
				log.Warn("access denied", slog.String("state", string(decision.State)), slog.String("role", string(decision.Role)))
				render.Status(r, code)
				render.JSON(w, r, response.Redirect("access denied", decision.Redirect))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
