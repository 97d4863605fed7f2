package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreatePayment(ctx context.Context, p models.Payment) (*models.Payment, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *RepoMock) GetPayment(ctx context.Context, gymID, id string) (*models.Payment, error) {
	args := m.Called(ctx, gymID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *RepoMock) ListPayments(ctx context.Context, gymID string) ([]*models.Payment, error) {
	args := m.Called(ctx, gymID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Payment), args.Error(1)
}

func (m *RepoMock) UpdatePaymentStatus(ctx context.Context, gymID, id string, status models.PaymentStatus, paidAt *time.Time) error {
	return m.Called(ctx, gymID, id, status, paidAt).Error(0)
}

type AnalyticsMock struct{ mock.Mock }

func (m *AnalyticsMock) InvalidateAnalytics(ctx context.Context, gymID string) {
	m.Called(ctx, gymID)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newService(repo *RepoMock, now time.Time) *PaymentService {
	s := NewPaymentService(repo, nil, newNoopLogger())
	s.now = func() time.Time { return now }
	return s
}

func TestPaymentService_Create(t *testing.T) {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		setupMocks func(r *RepoMock)
		req        models.CreatePaymentRequest
		wantErr    error
	}{
		{
			name: "defaults to completed usd",
			setupMocks: func(r *RepoMock) {
				r.On("CreatePayment", mock.Anything, mock.MatchedBy(func(p models.Payment) bool {
					return p.Currency == "USD" && p.Status == models.PaymentCompleted &&
						p.PaidAt != nil && p.PaidAt.Equal(now) && p.SubscriptionID == nil
				})).Return(&models.Payment{ID: "pay-1", Status: models.PaymentCompleted}, nil).Once()
			},
			req: models.CreatePaymentRequest{MemberID: "m-1", Amount: 30, Method: models.PaymentCash},
		},
		{
			name: "pending has no paid_at",
			setupMocks: func(r *RepoMock) {
				r.On("CreatePayment", mock.Anything, mock.MatchedBy(func(p models.Payment) bool {
					return p.Currency == "EUR" && p.PaidAt == nil && p.SubscriptionID != nil
				})).Return(&models.Payment{ID: "pay-2", Status: models.PaymentPending}, nil).Once()
			},
			req: models.CreatePaymentRequest{
				MemberID: "m-1", Amount: 30, Method: models.PaymentOnline, Currency: "eur",
				Status: models.PaymentPending, SubscriptionID: "sub-1",
			},
		},
		{
			name:       "refunded on create",
			setupMocks: func(_ *RepoMock) {},
			req:        models.CreatePaymentRequest{MemberID: "m-1", Amount: 30, Method: models.PaymentCash, Status: models.PaymentRefunded},
			wantErr:    models.ErrInvalidStatus,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &RepoMock{}
			tt.setupMocks(repo)
			s := newService(repo, now)

			got, err := s.Create(context.Background(), "gym-1", tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
			repo.AssertExpectations(t)
		})
	}
}

func TestPaymentService_UpdateStatus(t *testing.T) {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	paid := now.Add(-time.Hour)

	tests := []struct {
		name       string
		current    models.Payment
		to         models.PaymentStatus
		wantPaidAt bool
		wantErr    error
	}{
		{name: "refund completed", current: models.Payment{Status: models.PaymentCompleted, PaidAt: &paid}, to: models.PaymentRefunded},
		{name: "complete pending sets paid_at", current: models.Payment{Status: models.PaymentPending}, to: models.PaymentCompleted, wantPaidAt: true},
		{name: "refund pending", current: models.Payment{Status: models.PaymentPending}, to: models.PaymentRefunded, wantErr: models.ErrInvalidStatus},
		{name: "reopen refunded", current: models.Payment{Status: models.PaymentRefunded}, to: models.PaymentCompleted, wantErr: models.ErrInvalidStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &RepoMock{}
			s := newService(repo, now)
			current := tt.current
			current.ID = "pay-1"
			repo.On("GetPayment", mock.Anything, "gym-1", "pay-1").Return(&current, nil).Once()
			if tt.wantErr == nil {
				repo.On("UpdatePaymentStatus", mock.Anything, "gym-1", "pay-1", tt.to,
					mock.MatchedBy(func(at *time.Time) bool { return (at != nil) == tt.wantPaidAt })).Return(nil).Once()
			}

			got, err := s.UpdateStatus(context.Background(), "gym-1", "pay-1", models.UpdatePaymentStatusRequest{Status: tt.to})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, got.Status)
			repo.AssertExpectations(t)
		})
	}
}

func TestPaymentService_Stats(t *testing.T) {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	inMonth := time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)
	before := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	repo := &RepoMock{}
	s := newService(repo, now)

	repo.On("ListPayments", mock.Anything, "gym-1").Return([]*models.Payment{
		{Amount: 100, Status: models.PaymentCompleted, PaidAt: &inMonth},
		{Amount: 40, Status: models.PaymentCompleted, PaidAt: &before},
		{Amount: 10, Status: models.PaymentPending, CreatedAt: inMonth},
		{Amount: 10, Status: models.PaymentFailed, CreatedAt: inMonth},
		{Amount: 70, Status: models.PaymentRefunded, CreatedAt: inMonth},
	}, nil).Once()
	repo.On("ListPayments", mock.Anything, "gym-2").Return(nil, errors.New("db down")).Once()

	stats, err := s.Stats(context.Background(), "gym-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStats{TotalRevenue: 140, MonthlyRevenue: 100, Completed: 2, Pending: 1, Failed: 1}, stats)

	stats, err = s.Stats(context.Background(), "gym-2")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStats{}, stats)
}

func TestPaymentService_InvalidatesAnalytics(t *testing.T) {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	repo, analytics := &RepoMock{}, &AnalyticsMock{}
	s := NewPaymentService(repo, analytics, newNoopLogger())
	s.now = func() time.Time { return now }

	repo.On("CreatePayment", mock.Anything, mock.Anything).
		Return(&models.Payment{ID: "pay-1", Status: models.PaymentCompleted}, nil).Once()
	repo.On("GetPayment", mock.Anything, "gym-1", "pay-1").
		Return(&models.Payment{ID: "pay-1", Status: models.PaymentCompleted, PaidAt: &now}, nil).Once()
	repo.On("UpdatePaymentStatus", mock.Anything, "gym-1", "pay-1", models.PaymentRefunded, (*time.Time)(nil)).
		Return(nil).Once()
	analytics.On("InvalidateAnalytics", mock.Anything, "gym-1").Return().Twice()

	_, err := s.Create(context.Background(), "gym-1", models.CreatePaymentRequest{MemberID: "m-1", Amount: 30, Method: models.PaymentCash})
	require.NoError(t, err)
	_, err = s.UpdateStatus(context.Background(), "gym-1", "pay-1", models.UpdatePaymentStatusRequest{Status: models.PaymentRefunded})
	require.NoError(t, err)

	repo.AssertExpectations(t)
	analytics.AssertExpectations(t)
}

func TestPaymentService_FailedCreateKeepsAnalytics(t *testing.T) {
	repo, analytics := &RepoMock{}, &AnalyticsMock{}
	s := NewPaymentService(repo, analytics, newNoopLogger())
	repo.On("CreatePayment", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()

	_, err := s.Create(context.Background(), "gym-1", models.CreatePaymentRequest{MemberID: "m-1", Amount: 30, Method: models.PaymentCash})
	require.Error(t, err)
	analytics.AssertNotCalled(t, "InvalidateAnalytics", mock.Anything, mock.Anything)
}
