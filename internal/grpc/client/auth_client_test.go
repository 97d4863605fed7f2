package client

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/PoorDoomer/gym-saas-sub000/internal/grpc/authpb"
	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
	"github.com/PoorDoomer/gym-saas-sub000/internal/storage"
)

// fakeServer отвечает фиксированными данными и ошибками по почте.
type fakeServer struct {
	authpb.UnimplementedAuthServiceServer
	deleted []string
}

func (f *fakeServer) SignUp(_ context.Context, req *authpb.SignUpRequest) (*authpb.SignUpResponse, error) {
	if req.Email == "taken@gym.io" {
		return nil, status.Error(codes.AlreadyExists, "user already exists")
	}
	return &authpb.SignUpResponse{UserUid: "user-1"}, nil
}

func (f *fakeServer) Login(_ context.Context, req *authpb.LoginRequest) (*authpb.LoginResponse, error) {
	if req.Password != "password123" {
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}
	return &authpb.LoginResponse{Token: "tok", UserUid: "user-1", Email: req.Email, ExpiresAt: 1735732800}, nil
}

func (f *fakeServer) ValidateToken(_ context.Context, req *authpb.ValidateTokenRequest) (*authpb.ValidateTokenResponse, error) {
	if req.Token != "tok" {
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}
	return &authpb.ValidateTokenResponse{Valid: true, UserUid: "user-1", Email: "owner@gym.io"}, nil
}

func (f *fakeServer) AdminCreateUser(_ context.Context, _ *authpb.AdminCreateUserRequest) (*authpb.AdminCreateUserResponse, error) {
	return &authpb.AdminCreateUserResponse{UserUid: "user-2"}, nil
}

func (f *fakeServer) AdminDeleteUser(_ context.Context, req *authpb.AdminDeleteUserRequest) (*authpb.AdminDeleteUserResponse, error) {
	if req.UserUid == "ghost" {
		return nil, status.Error(codes.NotFound, "user not found")
	}
	f.deleted = append(f.deleted, req.UserUid)
	return &authpb.AdminDeleteUserResponse{}, nil
}

func newTestClient(t *testing.T, srv authpb.AuthServiceServer) *AuthClient {
	t.Helper()
	lis := bufconn.Listen(1024 * 1024)
	s := grpc.NewServer()
	authpb.RegisterAuthServiceServer(s, srv)
	go func() {
		_ = s.Serve(lis)
	}()
	t.Cleanup(s.Stop)

	c, err := NewAuthClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestAuthClient_RoundTrip(t *testing.T) {
	srv := &fakeServer{}
	c := newTestClient(t, srv)
	ctx := context.Background()

	id, err := c.SignUp(ctx, "owner@gym.io", "password123")
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)

	session, err := c.Login(ctx, "owner@gym.io", "password123")
	require.NoError(t, err)
	assert.Equal(t, "tok", session.Token)
	assert.Equal(t, time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC), session.ExpiresAt)

	user, err := c.ValidateToken(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, &models.Identity{UUID: "user-1", Email: "owner@gym.io"}, user)

	created, err := c.AdminCreateUser(ctx, "member@gym.io", "password123")
	require.NoError(t, err)
	require.NoError(t, c.AdminDeleteUser(ctx, created))
	assert.Equal(t, []string{"user-2"}, srv.deleted)
}

func TestAuthClient_ErrorMapping(t *testing.T) {
	c := newTestClient(t, &fakeServer{})
	ctx := context.Background()

	_, err := c.SignUp(ctx, "taken@gym.io", "password123")
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	_, err = c.Login(ctx, "owner@gym.io", "wrong")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = c.ValidateToken(ctx, "expired")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	err = c.AdminDeleteUser(ctx, "ghost")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = c.SignOut(ctx, "tok")
	require.Error(t, err, "unimplemented method must fail")
}
