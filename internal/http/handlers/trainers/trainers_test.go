package trainers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
	account "github.com/PoorDoomer/gym-saas-sub000/internal/services/account"
	"github.com/PoorDoomer/gym-saas-sub000/internal/storage"
	"github.com/PoorDoomer/gym-saas-sub000/internal/tenant"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, gymID string) ([]*models.Trainer, error) {
	args := m.Called(ctx, gymID)
	if res := args.Get(0); res != nil {
		return res.([]*models.Trainer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) Get(ctx context.Context, gymID, id string) (*models.Trainer, error) {
	args := m.Called(ctx, gymID, id)
	if res := args.Get(0); res != nil {
		return res.(*models.Trainer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) Update(ctx context.Context, gymID, id string, req models.UpdateTrainerRequest) (*models.Trainer, error) {
	args := m.Called(ctx, gymID, id, req)
	if res := args.Get(0); res != nil {
		return res.(*models.Trainer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, gymID, id string) error {
	return m.Called(ctx, gymID, id).Error(0)
}

func (m *MockService) Stats(ctx context.Context, gymID string) (models.TrainerStats, error) {
	args := m.Called(ctx, gymID)
	return args.Get(0).(models.TrainerStats), args.Error(1)
}

func (m *MockService) AssignSport(ctx context.Context, gymID, trainerID string, req models.AssignSportRequest) error {
	return m.Called(ctx, gymID, trainerID, req).Error(0)
}

func (m *MockService) RemoveSport(ctx context.Context, gymID, trainerID, sportID string) error {
	return m.Called(ctx, gymID, trainerID, sportID).Error(0)
}

func (m *MockService) ListSports(ctx context.Context, gymID, trainerID string) ([]models.TrainerSport, error) {
	args := m.Called(ctx, gymID, trainerID)
	if res := args.Get(0); res != nil {
		return res.([]models.TrainerSport), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockAccounts struct {
	mock.Mock
}

func (m *MockAccounts) CreateTrainer(ctx context.Context, gymID string, req models.CreateTrainerRequest) (*account.Outcome, error) {
	args := m.Called(ctx, gymID, req)
	if res := args.Get(0); res != nil {
		return res.(*account.Outcome), args.Error(1)
	}
	return nil, args.Error(1)
}

func newRouter(svc *MockService, acc *MockAccounts) http.Handler {
	h := New(slog.New(slog.NewTextHandler(io.Discard, nil)), svc, acc)
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(tenant.WithGym(r.Context(), "gym-1")))
		})
	})
	r.Get("/trainers", h.List)
	r.Post("/trainers", h.Create)
	r.Get("/trainers/stats", h.Stats)
	r.Get("/trainers/{id}", h.Get)
	r.Put("/trainers/{id}", h.Update)
	r.Delete("/trainers/{id}", h.Delete)
	r.Get("/trainers/{id}/sports", h.ListSports)
	r.Post("/trainers/{id}/sports", h.AssignSport)
	r.Delete("/trainers/{id}/sports/{sportID}", h.RemoveSport)
	return r
}

const sportID = "6f1c2d3e-4b5a-4c6d-8e7f-9a0b1c2d3e4f"

func TestTrainersHandler(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		url            string
		body           string
		setupMock      func(*MockService, *MockAccounts)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "список",
			method: http.MethodGet,
			url:    "/trainers",
			setupMock: func(m *MockService, _ *MockAccounts) {
				m.On("List", mock.Anything, "gym-1").Return([]*models.Trainer{{ID: "t-1", Specializations: []string{"yoga"}}}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"specializations":["yoga"]`,
		},
		{
			name:   "создание с учётной записью",
			method: http.MethodPost,
			url:    "/trainers",
			body:   `{"first_name":"Max","last_name":"Power","email":"max@x.com","password":"password123","hourly_rate":40}`,
			setupMock: func(_ *MockService, a *MockAccounts) {
				a.On("CreateTrainer", mock.Anything, "gym-1", mock.MatchedBy(func(req models.CreateTrainerRequest) bool {
					return req.Email == "max@x.com" && req.HourlyRate == 40
				})).Return(&account.Outcome{UserID: "user-1", Trainer: &models.Trainer{ID: "t-1"}}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"user_id":"user-1"`,
		},
		{
			name:           "отрицательная ставка",
			method:         http.MethodPost,
			url:            "/trainers",
			body:           `{"first_name":"Max","last_name":"Power","email":"max@x.com","password":"password123","hourly_rate":-1}`,
			setupMock:      func(_ *MockService, _ *MockAccounts) {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:   "привязка вида спорта",
			method: http.MethodPost,
			url:    "/trainers/t-1/sports",
			body:   `{"sport_id":"` + sportID + `","skill_level":"expert"}`,
			setupMock: func(m *MockService, _ *MockAccounts) {
				m.On("AssignSport", mock.Anything, "gym-1", "t-1",
					models.AssignSportRequest{SportID: sportID, SkillLevel: models.SkillExpert}).Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "неизвестный уровень",
			method:         http.MethodPost,
			url:            "/trainers/t-1/sports",
			body:           `{"sport_id":"` + sportID + `","skill_level":"guru"}`,
			setupMock:      func(_ *MockService, _ *MockAccounts) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field SkillLevel must be one of`,
		},
		{
			name:   "отвязка несуществующей связи",
			method: http.MethodDelete,
			url:    "/trainers/t-1/sports/" + sportID,
			setupMock: func(m *MockService, _ *MockAccounts) {
				m.On("RemoveSport", mock.Anything, "gym-1", "t-1", sportID).Return(storage.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, acc := new(MockService), new(MockAccounts)
			tt.setupMock(svc, acc)

			req := httptest.NewRequest(tt.method, tt.url, strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			newRouter(svc, acc).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, rr.Body.String(), tt.expectedBody)
			}
			svc.AssertExpectations(t)
			acc.AssertExpectations(t)
		})
	}
}
