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

	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/rabbitmq"
	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindSubscriptionsExpiringOn(ctx context.Context, day time.Time) ([]*models.ExpiringSubscription, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ExpiringSubscription), args.Error(1)
}

func (m *MockRepository) ExpireOverdueSubscriptions(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, message any) error {
	return m.Called(ctx, routingKey, message).Error(0)
}

type recorder struct {
	notifications map[string]int
	expired       int
}

func (r *recorder) Notification(kind, status string) {
	if r.notifications == nil {
		r.notifications = map[string]int{}
	}
	r.notifications[kind+":"+status]++
}

func (r *recorder) SubscriptionsExpired(n int) { r.expired += n }

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

var fixedNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newService(repo *MockRepository, pub *MockPublisher, rec *recorder) *SchedulerService {
	s := NewSchedulerService(repo, pub, rec, newNoopLogger())
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestSchedulerService_NotifyExpiring(t *testing.T) {
	tomorrow := fixedNow.AddDate(0, 0, 1)
	first := &models.ExpiringSubscription{SubscriptionID: "s-1", Email: "a@x.com"}
	second := &models.ExpiringSubscription{SubscriptionID: "s-2", Email: "b@x.com"}

	tests := []struct {
		name       string
		setupMocks func(r *MockRepository, p *MockPublisher)
		want       int
		wantErr    bool
		wantFailed int
	}{
		{
			name: "publishes every subscription",
			setupMocks: func(r *MockRepository, p *MockPublisher) {
				r.On("FindSubscriptionsExpiringOn", mock.Anything, tomorrow).
					Return([]*models.ExpiringSubscription{first, second}, nil).Once()
				p.On("Publish", mock.Anything, rabbitmq.RoutingKeyExpiring, first).Return(nil).Once()
				p.On("Publish", mock.Anything, rabbitmq.RoutingKeyExpiring, second).Return(nil).Once()
			},
			want: 2,
		},
		{
			name: "publish failure skips message",
			setupMocks: func(r *MockRepository, p *MockPublisher) {
				r.On("FindSubscriptionsExpiringOn", mock.Anything, tomorrow).
					Return([]*models.ExpiringSubscription{first, second}, nil).Once()
				p.On("Publish", mock.Anything, rabbitmq.RoutingKeyExpiring, first).Return(errors.New("closed")).Once()
				p.On("Publish", mock.Anything, rabbitmq.RoutingKeyExpiring, second).Return(nil).Once()
			},
			want:       1,
			wantFailed: 1,
		},
		{
			name: "nothing to notify",
			setupMocks: func(r *MockRepository, _ *MockPublisher) {
				r.On("FindSubscriptionsExpiringOn", mock.Anything, tomorrow).Return(nil, nil).Once()
			},
		},
		{
			name: "repository error",
			setupMocks: func(r *MockRepository, _ *MockPublisher) {
				r.On("FindSubscriptionsExpiringOn", mock.Anything, tomorrow).Return(nil, errors.New("db down")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, pub, rec := new(MockRepository), new(MockPublisher), &recorder{}
			tt.setupMocks(repo, pub)

			n, err := newService(repo, pub, rec).NotifyExpiring(context.Background())
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, n)
			assert.Equal(t, tt.wantFailed, rec.notifications["expiring:failed"])
			repo.AssertExpectations(t)
			pub.AssertExpectations(t)
		})
	}
}

func TestSchedulerService_ExpireOverdue(t *testing.T) {
	repo, rec := new(MockRepository), &recorder{}
	repo.On("ExpireOverdueSubscriptions", mock.Anything, fixedNow).Return(3, nil).Once()

	n, err := newService(repo, new(MockPublisher), rec).ExpireOverdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 3, rec.expired)
}

func TestSchedulerService_RunOverdue_StopsOnCancel(t *testing.T) {
	repo := new(MockRepository)
	called := make(chan struct{}, 1)
	repo.On("ExpireOverdueSubscriptions", mock.Anything, fixedNow).Return(0, nil).Run(func(mock.Arguments) {
		select {
		case called <- struct{}{}:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		newService(repo, new(MockPublisher), &recorder{}).RunOverdue(ctx, time.Hour)
		close(done)
	}()

	select {
	case <-called:
	case <-time.After(time.Second):
		t.Fatal("task was not run on start")
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}
}

func TestSchedulerService_WithoutRecorder(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ExpireOverdueSubscriptions", mock.Anything, fixedNow).Return(2, nil)

	s := NewSchedulerService(repo, new(MockPublisher), nil, newNoopLogger())
	s.now = func() time.Time { return fixedNow }

	var (
		n   int
		err error
	)
	require.NotPanics(t, func() { n, err = s.ExpireOverdue(context.Background()) })
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
