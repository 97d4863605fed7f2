package access

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	gate "github.com/PoorDoomer/gym-saas-sub000/internal/access"
	"github.com/PoorDoomer/gym-saas-sub000/internal/http/middlewarectx"
	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
)

type MockGate struct {
	mock.Mock
}

func (m *MockGate) Evaluate(ctx context.Context, userID, gymID string, allowed []models.Role) (gate.Decision, error) {
	args := m.Called(ctx, userID, gymID, allowed)
	return args.Get(0).(gate.Decision), args.Error(1)
}

func newHandler(g *MockGate) *Handler {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), g)
}

func withUser(r *http.Request, userID string) *http.Request {
	return r.WithContext(middlewarectx.WithUser(r.Context(), userID, "u@x.com"))
}

func TestHandler_Check(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		user           string
		setupMock      func(*MockGate)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "роль разрешена",
			url:  "/access?allow=admin,trainer",
			user: "user-1",
			setupMock: func(m *MockGate) {
				m.On("Evaluate", mock.Anything, "user-1", "gym-1", []models.Role{models.RoleAdmin, models.RoleTrainer}).
					Return(gate.Decision{State: gate.StateTrainer, Role: models.RoleTrainer}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"state":"role:trainer"`,
		},
		{
			name: "участник на странице администратора",
			url:  "/access?allow=admin",
			user: "user-2",
			setupMock: func(m *MockGate) {
				m.On("Evaluate", mock.Anything, "user-2", "gym-1", []models.Role{models.RoleAdmin}).
					Return(gate.Decision{State: gate.StateDenied, Role: models.RoleMember, Redirect: "/member-dashboard"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"redirect":"/member-dashboard"`,
		},
		{
			name:           "только неизвестные роли",
			url:            "/access?allow=owner",
			user:           "user-1",
			setupMock:      func(_ *MockGate) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "ошибка хранилища",
			url:  "/access",
			user: "user-1",
			setupMock: func(m *MockGate) {
				m.On("Evaluate", mock.Anything, "user-1", "gym-1", []models.Role(nil)).
					Return(gate.Decision{}, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := new(MockGate)
			tt.setupMock(g)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			req.Header.Set(middlewarectx.GymHeader, "gym-1")
			rr := httptest.NewRecorder()
			newHandler(g).Check(rr, withUser(req, tt.user))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, rr.Body.String(), tt.expectedBody)
			}
			g.AssertExpectations(t)
		})
	}
}

func TestHandler_Navigation(t *testing.T) {
	tests := []struct {
		name           string
		user           string
		decision       gate.Decision
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "администратор",
			user:           "user-1",
			decision:       gate.Decision{State: gate.StateAdmin, Role: models.RoleAdmin},
			expectedStatus: http.StatusOK,
			expectedBody:   `"home":"/dashboard"`,
		},
		{
			name:           "участник",
			user:           "user-2",
			decision:       gate.Decision{State: gate.StateMember, Role: models.RoleMember},
			expectedStatus: http.StatusOK,
			expectedBody:   `"path":"/my-qr"`,
		},
		{
			name:           "нет ролей в клубе",
			user:           "user-3",
			decision:       gate.Decision{State: gate.StateDenied, Redirect: gate.LoginPath},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `"redirect":"/login"`,
		},
		{
			name:           "без пользователя",
			user:           "",
			decision:       gate.Decision{State: gate.StateUnauthenticated, Redirect: gate.LoginPath},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := new(MockGate)
			g.On("Evaluate", mock.Anything, tt.user, "gym-1", []models.Role(nil)).Return(tt.decision, nil)

			req := httptest.NewRequest(http.MethodGet, "/me/navigation?gym_id=gym-1", nil)
			rr := httptest.NewRecorder()
			newHandler(g).Navigation(rr, withUser(req, tt.user))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, rr.Body.String(), tt.expectedBody)
			}
			g.AssertExpectations(t)
		})
	}
}
