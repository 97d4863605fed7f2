// Package client содержит gRPC-клиент сервиса идентификации для HTTP API.
package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/PoorDoomer/gym-saas-sub000/internal/grpc/authpb"
	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
	"github.com/PoorDoomer/gym-saas-sub000/internal/storage"
)

// ErrUnauthenticated неверные учётные данные или недействительный токен.
var ErrUnauthenticated = errors.New("unauthenticated")

const callTimeout = 5 * time.Second

// AuthClient обёртка над сгенерированным клиентом с доменными типами и ошибками.
type AuthClient struct {
	conn   *grpc.ClientConn
	client authpb.AuthServiceClient
}

// NewAuthClient подключается к сервису идентификации по адресу addr.
func NewAuthClient(addr string, opts ...grpc.DialOption) (*AuthClient, error) {
	const op = "grpc.client.NewAuthClient"
	if len(opts) == 0 {
		opts = []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	}
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &AuthClient{conn: conn, client: authpb.NewAuthServiceClient(conn)}, nil
}

// Close закрывает соединение.
func (a *AuthClient) Close() error {
	return a.conn.Close()
}

// fromStatus переводит gRPC статус в доменную ошибку.
func fromStatus(op string, err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("%s: %w", op, err)
	}
	switch st.Code() {
	case codes.Unauthenticated:
		return fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	case codes.AlreadyExists:
		return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
	case codes.NotFound:
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	case codes.InvalidArgument:
		return fmt.Errorf("%s: %w: %s", op, models.ErrInvalidInput, st.Message())
	}
	return fmt.Errorf("%s: %w", op, err)
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, callTimeout)
}

// SignUp регистрирует пользователя и возвращает его ID.
func (a *AuthClient) SignUp(ctx context.Context, email, password string) (string, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	resp, err := a.client.SignUp(ctx, &authpb.SignUpRequest{Email: email, Password: password})
	if err != nil {
		return "", fromStatus("grpc.client.SignUp", err)
	}
	return resp.UserUid, nil
}

// Login возвращает токен доступа.
func (a *AuthClient) Login(ctx context.Context, email, password string) (*models.Session, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	resp, err := a.client.Login(ctx, &authpb.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fromStatus("grpc.client.Login", err)
	}
	return &models.Session{
		Token:     resp.Token,
		UserUID:   resp.UserUid,
		Email:     resp.Email,
		ExpiresAt: time.Unix(resp.ExpiresAt, 0).UTC(),
	}, nil
}

// ValidateToken возвращает владельца действующего токена.
func (a *AuthClient) ValidateToken(ctx context.Context, token string) (*models.Identity, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	resp, err := a.client.ValidateToken(ctx, &authpb.ValidateTokenRequest{Token: token})
	if err != nil {
		return nil, fromStatus("grpc.client.ValidateToken", err)
	}
	if !resp.Valid {
		return nil, fmt.Errorf("grpc.client.ValidateToken: %w", ErrUnauthenticated)
	}
	return &models.Identity{UUID: resp.UserUid, Email: resp.Email}, nil
}

// UpdateUser меняет почту или пароль пользователя.
func (a *AuthClient) UpdateUser(ctx context.Context, userID, email, password string) (*models.Identity, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	resp, err := a.client.UpdateUser(ctx, &authpb.UpdateUserRequest{UserUid: userID, Email: email, Password: password})
	if err != nil {
		return nil, fromStatus("grpc.client.UpdateUser", err)
	}
	return &models.Identity{UUID: resp.UserUid, Email: resp.Email}, nil
}

// SignOut отзывает токен.
func (a *AuthClient) SignOut(ctx context.Context, token string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	if _, err := a.client.SignOut(ctx, &authpb.SignOutRequest{Token: token}); err != nil {
		return fromStatus("grpc.client.SignOut", err)
	}
	return nil
}

// AdminCreateUser создаёт учётную запись и возвращает её ID.
func (a *AuthClient) AdminCreateUser(ctx context.Context, email, password string) (string, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	resp, err := a.client.AdminCreateUser(ctx, &authpb.AdminCreateUserRequest{Email: email, Password: password})
	if err != nil {
		return "", fromStatus("grpc.client.AdminCreateUser", err)
	}
	return resp.UserUid, nil
}

// AdminDeleteUser удаляет учётную запись.
func (a *AuthClient) AdminDeleteUser(ctx context.Context, userID string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	if _, err := a.client.AdminDeleteUser(ctx, &authpb.AdminDeleteUserRequest{UserUid: userID}); err != nil {
		return fromStatus("grpc.client.AdminDeleteUser", err)
	}
	return nil
}
