// Package middlewarectx содержит HTTP middleware API: проверку JWT через сервис идентификации,
// выбор клуба (тенанта), проверку ролей и ограничение частоты запросов.
//
// JWTMiddleware кладёт в контекст ID пользователя, его почту и сам токен,
// TenantMiddleware кладёт выбранный клуб через пакет tenant.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/PoorDoomer/gym-saas-sub000/internal/http/response"
	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/sl"
	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// UserUID ключ для ID пользователя в контексте
	UserUID Key = "user_uid"
	// Email ключ для почты пользователя в контексте
	Email Key = "email"
	// Token ключ для исходного токена, нужен для выхода из системы
	Token Key = "token"
)

// Service описывает интерфейс сервиса для валидации JWT токена.
type Service interface {
	ValidateToken(ctx context.Context, token string) (*models.Identity, error)
}

// UserFrom ID пользователя из контекста или пустая строка.
func UserFrom(ctx context.Context) string {
	id, _ := ctx.Value(UserUID).(string)
	return id
}

// TokenFrom токен запроса из контекста.
func TokenFrom(ctx context.Context) string {
	tok, _ := ctx.Value(Token).(string)
	return tok
}

// WithUser возвращает контекст с пользователем. Используется middleware и тестами обработчиков.
func WithUser(ctx context.Context, userID, email string) context.Context {
	ctx = context.WithValue(ctx, UserUID, userID)
	return context.WithValue(ctx, Email, email)
}

// JWTMiddleware возвращает HTTP middleware, который проверяет JWT в заголовке Authorization.
//
// Если токен валиден, добавляет пользователя и токен в контекст запроса,
// иначе возвращает ошибку с HTTP статусом 401 Unauthorized.
func JWTMiddleware(authClient Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Warn("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Redirect("missing or invalid authorization header", "/login"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			user, err := authClient.ValidateToken(r.Context(), tokenStr)
			if err != nil || user == nil || user.UUID == "" {
				log.Warn("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Redirect("invalid or expired token", "/login"))
				return
			}
			ctx := WithUser(r.Context(), user.UUID, user.Email)
			ctx = context.WithValue(ctx, Token, tokenStr)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
