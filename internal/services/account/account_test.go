package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/rabbitmq"
	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
	"github.com/PoorDoomer/gym-saas-sub000/internal/storage"
	"github.com/PoorDoomer/gym-saas-sub000/internal/tenant"
)

type IdentityMock struct{ mock.Mock }

func (m *IdentityMock) AdminCreateUser(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *IdentityMock) AdminDeleteUser(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateMemberAccount(ctx context.Context, member models.Member, userID string) (*models.Member, error) {
	args := m.Called(ctx, member, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *RepoMock) CreateTrainerAccount(ctx context.Context, t models.Trainer, userID string) (*models.Trainer, error) {
	args := m.Called(ctx, t, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trainer), args.Error(1)
}

func (m *RepoMock) GetGym(ctx context.Context, gymID string) (*models.Gym, error) {
	args := m.Called(ctx, gymID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Gym), args.Error(1)
}

type CapacityMock struct{ mock.Mock }

func (m *CapacityMock) EnsureCapacity(ctx context.Context, gymID string) error {
	return m.Called(ctx, gymID).Error(0)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(ctx context.Context, routingKey string, message any) error {
	return m.Called(ctx, routingKey, message).Error(0)
}

type recorder struct{ outcomes []string }

func (r *recorder) AccountProvisioned(role, outcome string) {
	r.outcomes = append(r.outcomes, role+":"+outcome)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func memberRequest() models.CreateMemberAccountRequest {
	return models.CreateMemberAccountRequest{
		CreateMemberRequest: models.CreateMemberRequest{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane@x.com",
			Notes:     "<b>knee</b> injury",
		},
		Password: "password123",
	}
}

func TestAccountService_CreateMemberWithAccount_Success(t *testing.T) {
	idp, repo, capacity, pub, rec := new(IdentityMock), new(RepoMock), new(CapacityMock), new(PublisherMock), &recorder{}
	capacity.On("EnsureCapacity", mock.Anything, "gym-1").Return(nil).Once()
	idp.On("AdminCreateUser", mock.Anything, "jane@x.com", "password123").Return("user-1", nil).Once()
	repo.On("CreateMemberAccount", mock.Anything, mock.MatchedBy(func(m models.Member) bool {
		return m.GymID == "gym-1" && m.Notes == "knee injury" && m.IsActive
	}), "user-1").Return(&models.Member{ID: "m-1", GymID: "gym-1"}, nil).Once()
	repo.On("GetGym", mock.Anything, "gym-1").Return(&models.Gym{ID: "gym-1", Name: "Iron"}, nil).Once()
	pub.On("Publish", mock.Anything, rabbitmq.RoutingKeyWelcome, models.WelcomeNotification{
		Email: "jane@x.com", FirstName: "Jane", GymName: "Iron", Role: models.RoleMember,
	}).Return(nil).Once()

	svc := NewAccountService(idp, repo, capacity, pub, rec, newNoopLogger())
	out, err := svc.CreateMemberWithAccount(context.Background(), "gym-1", memberRequest())
	require.NoError(t, err)
	assert.Equal(t, "user-1", out.UserID)
	assert.Equal(t, "m-1", out.Member.ID)
	assert.Equal(t, StatusDone, out.Step(StepIdentity))
	assert.Equal(t, StatusDone, out.Step(StepRecord))
	assert.Equal(t, StatusDone, out.Step(StepWelcome))
	assert.Equal(t, []string{"member:created"}, rec.outcomes)
	mock.AssertExpectationsForObjects(t, idp, repo, capacity, pub)
}

func TestAccountService_CreateMemberWithAccount_Compensates(t *testing.T) {
	idp, repo := new(IdentityMock), new(RepoMock)
	idp.On("AdminCreateUser", mock.Anything, "jane@x.com", "password123").Return("user-1", nil).Once()
	repo.On("CreateMemberAccount", mock.Anything, mock.Anything, "user-1").Return(nil, storage.ErrAlreadyExists).Once()
	idp.On("AdminDeleteUser", mock.Anything, "user-1").Return(nil).Once()
	rec := &recorder{}

	svc := NewAccountService(idp, repo, nil, nil, rec, newNoopLogger())
	out, err := svc.CreateMemberWithAccount(context.Background(), "gym-1", memberRequest())
	require.ErrorIs(t, err, storage.ErrAlreadyExists)
	assert.Empty(t, out.UserID)
	assert.Equal(t, StatusFailed, out.Step(StepRecord))
	assert.Equal(t, StatusCompensated, out.Step(StepCompensate))
	assert.Equal(t, StepStatus(""), out.Step(StepWelcome))
	assert.Equal(t, []string{"member:compensated"}, rec.outcomes)
	idp.AssertExpectations(t)
}

func TestAccountService_CreateMemberWithAccount_CompensationFails(t *testing.T) {
	idp, repo := new(IdentityMock), new(RepoMock)
	idp.On("AdminCreateUser", mock.Anything, mock.Anything, mock.Anything).Return("user-1", nil).Once()
	repo.On("CreateMemberAccount", mock.Anything, mock.Anything, "user-1").Return(nil, errors.New("db down")).Once()
	idp.On("AdminDeleteUser", mock.Anything, "user-1").Return(errors.New("idp down")).Once()

	svc := NewAccountService(idp, repo, nil, nil, nil, newNoopLogger())
	out, err := svc.CreateMemberWithAccount(context.Background(), "gym-1", memberRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compensation failed")
	assert.Equal(t, "user-1", out.UserID)
	assert.Equal(t, StatusFailed, out.Step(StepCompensate))
}

func TestAccountService_CreateMemberWithAccount_IdentityFails(t *testing.T) {
	idp, repo := new(IdentityMock), new(RepoMock)
	idp.On("AdminCreateUser", mock.Anything, mock.Anything, mock.Anything).Return("", storage.ErrAlreadyExists).Once()

	svc := NewAccountService(idp, repo, nil, nil, nil, newNoopLogger())
	out, err := svc.CreateMemberWithAccount(context.Background(), "gym-1", memberRequest())
	require.ErrorIs(t, err, storage.ErrAlreadyExists)
	assert.Equal(t, StatusFailed, out.Step(StepIdentity))
	assert.Equal(t, StatusSkipped, out.Step(StepRecord))
	repo.AssertNotCalled(t, "CreateMemberAccount", mock.Anything, mock.Anything, mock.Anything)
}

func TestAccountService_CreateMemberWithAccount_Guards(t *testing.T) {
	idp := new(IdentityMock)
	capacity := new(CapacityMock)
	capacity.On("EnsureCapacity", mock.Anything, "gym-1").Return(models.ErrMemberLimitReached).Once()
	svc := NewAccountService(idp, new(RepoMock), capacity, nil, nil, newNoopLogger())

	_, err := svc.CreateMemberWithAccount(context.Background(), "", memberRequest())
	assert.ErrorIs(t, err, tenant.ErrNoGymSelected)

	_, err = svc.CreateMemberWithAccount(context.Background(), "gym-1", memberRequest())
	assert.ErrorIs(t, err, models.ErrMemberLimitReached)

	bad := memberRequest()
	bad.DateOfBirth = "31-12-1990"
	_, err = svc.CreateMemberWithAccount(context.Background(), "gym-1", bad)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	idp.AssertNotCalled(t, "AdminCreateUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestAccountService_CreateTrainer_WelcomeFailureIsNotFatal(t *testing.T) {
	idp, repo, pub := new(IdentityMock), new(RepoMock), new(PublisherMock)
	idp.On("AdminCreateUser", mock.Anything, "coach@x.com", "password123").Return("user-2", nil).Once()
	repo.On("CreateTrainerAccount", mock.Anything, mock.MatchedBy(func(tr models.Trainer) bool {
		return tr.GymID == "gym-1" && tr.Specializations != nil
	}), "user-2").Return(&models.Trainer{ID: "t-1"}, nil).Once()
	repo.On("GetGym", mock.Anything, "gym-1").Return(nil, storage.ErrNotFound).Once()
	pub.On("Publish", mock.Anything, rabbitmq.RoutingKeyWelcome, mock.Anything).Return(errors.New("broker down")).Once()

	svc := NewAccountService(idp, repo, nil, pub, nil, newNoopLogger())
	out, err := svc.CreateTrainer(context.Background(), "gym-1", models.CreateTrainerRequest{
		FirstName: "Max", LastName: "Power", Email: "coach@x.com", Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "t-1", out.Trainer.ID)
	assert.Equal(t, StatusFailed, out.Step(StepWelcome))
}
