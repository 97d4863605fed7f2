package gymapi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"

	"github.com/PoorDoomer/gym-saas-sub000/internal/http/handlers/health"
	"github.com/PoorDoomer/gym-saas-sub000/internal/metrics"
	gymdata "github.com/PoorDoomer/gym-saas-sub000/internal/services/gymdata"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func newTestRouter(checks map[string]health.Pinger) chi.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	RegisterRoutes(r, logger, Services{
		GymData:      gymdata.NewGymDataService(nil, nil, logger),
		Health:       checks,
		Metrics:      metrics.New(),
		RateLimitRPS: 100,
		RateBurst:    100,
	})
	return r
}

func TestRegisterRoutes(t *testing.T) {
	ok := pingFunc(func(context.Context) error { return nil })
	down := pingFunc(func(context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name           string
		checks         map[string]health.Pinger
		url            string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "health открыт без токена",
			checks:         map[string]health.Pinger{"postgres": ok},
			url:            "/api/v1/health",
			expectedStatus: http.StatusOK,
			expectedBody:   `"postgres":"ok"`,
		},
		{
			name:           "health при недоступной зависимости",
			checks:         map[string]health.Pinger{"redis": down},
			url:            "/api/v1/health",
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `"redis":"unavailable"`,
		},
		{
			name:           "данные клуба требуют токен",
			url:            "/api/v1/members",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"redirect":"/login"`,
		},
		{
			name:           "сводка клуба требует токен",
			url:            "/api/v1/dashboard",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "метрики",
			url:            "/metrics",
			expectedStatus: http.StatusOK,
			expectedBody:   "go_goroutines",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(tt.checks)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
		})
	}
}

func TestRegisterRoutes_MetricsCountRoutes(t *testing.T) {
	r := newTestRouter(map[string]health.Pinger{})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rr.Body.String(), `route="/api/v1/health"`)
}
