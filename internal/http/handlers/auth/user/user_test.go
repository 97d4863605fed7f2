package user

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/PoorDoomer/gym-saas-sub000/internal/http/middlewarectx"
	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
	"github.com/PoorDoomer/gym-saas-sub000/internal/storage"
)

type AuthClientMock struct {
	mock.Mock
}

func (m *AuthClientMock) UpdateUser(ctx context.Context, userID, email, password string) (*models.Identity, error) {
	args := m.Called(ctx, userID, email, password)
	resp, _ := args.Get(0).(*models.Identity)
	return resp, args.Error(1)
}

func TestUserHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*AuthClientMock)
		wantStatusCode int
		wantBody       string
	}{
		{
			name: "change email",
			body: `{"email":"new@x.com"}`,
			setupMock: func(m *AuthClientMock) {
				m.On("UpdateUser", mock.Anything, "user-1", "new@x.com", "").
					Return(&models.Identity{UUID: "user-1", Email: "new@x.com"}, nil)
			},
			wantStatusCode: http.StatusOK,
			wantBody:       `"email":"new@x.com"`,
		},
		{
			name:           "empty update",
			body:           `{}`,
			setupMock:      func(_ *AuthClientMock) {},
			wantStatusCode: http.StatusBadRequest,
			wantBody:       `nothing to update`,
		},
		{
			name:           "short password",
			body:           `{"password":"123"}`,
			setupMock:      func(_ *AuthClientMock) {},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name: "email taken",
			body: `{"email":"taken@x.com"}`,
			setupMock: func(m *AuthClientMock) {
				m.On("UpdateUser", mock.Anything, "user-1", "taken@x.com", "").Return(nil, storage.ErrAlreadyExists)
			},
			wantStatusCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthClientMock)
			tt.setupMock(authMock)
			handler := New(slog.New(slog.NewTextHandler(io.Discard, nil)), authMock)

			req := httptest.NewRequest(http.MethodPut, "/auth/user", strings.NewReader(tt.body))
			req = req.WithContext(middlewarectx.WithUser(req.Context(), "user-1", "old@x.com"))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
			authMock.AssertExpectations(t)
		})
	}
}
