package access

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
)

type MockRoleSource struct {
	mock.Mock
}

func (m *MockRoleSource) ListRoles(ctx context.Context, userID, gymID string) ([]models.UserRole, error) {
	args := m.Called(ctx, userID, gymID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserRole), args.Error(1)
}

func roles(rs ...models.Role) []models.UserRole {
	out := make([]models.UserRole, 0, len(rs))
	for _, r := range rs {
		out = append(out, models.UserRole{UserID: "u1", Role: r})
	}
	return out
}

func TestGate_Evaluate(t *testing.T) {
	tests := []struct {
		name    string
		userID  string
		roles   []models.UserRole
		allowed []models.Role
		want    Decision
	}{
		{
			name:   "no identity",
			userID: "",
			want:   Decision{State: StateUnauthenticated, Redirect: "/login"},
		},
		{
			name:   "no role rows",
			userID: "u1",
			roles:  []models.UserRole{},
			want:   Decision{State: StateDenied, Redirect: "/login"},
		},
		{
			name:    "admin wins over member",
			userID:  "u1",
			roles:   roles(models.RoleMember, models.RoleAdmin),
			allowed: []models.Role{models.RoleAdmin},
			want:    Decision{State: StateAdmin, Role: models.RoleAdmin},
		},
		{
			name:    "trainer on admin page goes home",
			userID:  "u1",
			roles:   roles(models.RoleTrainer),
			allowed: []models.Role{models.RoleAdmin},
			want:    Decision{State: StateDenied, Role: models.RoleTrainer, Redirect: "/trainer-dashboard"},
		},
		{
			name:    "member on trainer page goes home",
			userID:  "u1",
			roles:   roles(models.RoleMember),
			allowed: []models.Role{models.RoleAdmin, models.RoleTrainer},
			want:    Decision{State: StateDenied, Role: models.RoleMember, Redirect: "/member-dashboard"},
		},
		{
			name:    "admin and trainer on trainer page uses admin",
			userID:  "u1",
			roles:   roles(models.RoleTrainer, models.RoleAdmin),
			allowed: []models.Role{models.RoleTrainer},
			want:    Decision{State: StateDenied, Role: models.RoleAdmin, Redirect: "/dashboard"},
		},
		{
			name:   "empty allow list accepts any role",
			userID: "u1",
			roles:  roles(models.RoleMember),
			want:   Decision{State: StateMember, Role: models.RoleMember},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := new(MockRoleSource)
			if tt.userID != "" {
				src.On("ListRoles", mock.Anything, tt.userID, "gym-1").Return(tt.roles, nil).Once()
			}
			gate := NewGate(src)

			got, err := gate.Evaluate(context.Background(), tt.userID, "gym-1", tt.allowed)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Redirect == "", got.Allowed())
			src.AssertExpectations(t)
		})
	}
}

func TestGate_EvaluateRefetchesRoles(t *testing.T) {
	src := new(MockRoleSource)
	src.On("ListRoles", mock.Anything, "u1", "gym-1").Return(roles(models.RoleMember), nil).Once()
	src.On("ListRoles", mock.Anything, "u1", "gym-1").Return(roles(models.RoleAdmin), nil).Once()
	gate := NewGate(src)

	first, err := gate.Evaluate(context.Background(), "u1", "gym-1", nil)
	require.NoError(t, err)
	second, err := gate.Evaluate(context.Background(), "u1", "gym-1", nil)
	require.NoError(t, err)

	assert.Equal(t, models.RoleMember, first.Role)
	assert.Equal(t, models.RoleAdmin, second.Role)
	src.AssertNumberOfCalls(t, "ListRoles", 2)
}

func TestGate_EvaluateStorageError(t *testing.T) {
	src := new(MockRoleSource)
	src.On("ListRoles", mock.Anything, "u1", "").Return(nil, errors.New("db down"))

	_, err := NewGate(src).Evaluate(context.Background(), "u1", "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access.Evaluate")
}

func TestHomeAndSidebar(t *testing.T) {
	assert.Equal(t, "/dashboard", Home(models.RoleAdmin))
	assert.Equal(t, "/trainer-dashboard", Home(models.RoleTrainer))
	assert.Equal(t, "/member-dashboard", Home(models.RoleMember))
	assert.Equal(t, "/login", Home(models.Role("guest")))

	assert.Equal(t, "/dashboard", Sidebar(models.RoleAdmin)[0].Path)
	assert.Equal(t, "/trainer-dashboard", Sidebar(models.RoleTrainer)[0].Path)
	assert.Equal(t, "/member-dashboard", Sidebar(models.RoleMember)[0].Path)
	assert.Empty(t, Sidebar(models.Role("guest")))
	assert.Greater(t, len(Sidebar(models.RoleAdmin)), len(Sidebar(models.RoleMember)))
}

func TestParseRoles(t *testing.T) {
	assert.Equal(t, []models.Role{models.RoleAdmin, models.RoleMember},
		ParseRoles([]string{"admin", "owner", "member"}))
	assert.Nil(t, ParseRoles(nil))
}
