// Package server реализует gRPC-сервер сервиса идентификации.
//
// AuthServer принимает запросы gym.auth.v1.AuthService, логирует операции
// и делегирует бизнес-логику AuthService, переводя доменные ошибки в gRPC-коды.
package server

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/PoorDoomer/gym-saas-sub000/internal/grpc/authpb"
	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/jwt"
	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/password"
	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/sl"
	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
	services "github.com/PoorDoomer/gym-saas-sub000/internal/services/auth"
	"github.com/PoorDoomer/gym-saas-sub000/internal/storage"
)

// AuthServiceInterface бизнес-логика, которую вызывает сервер.
type AuthServiceInterface interface {
	SignUp(ctx context.Context, email, rawPassword string) (string, error)
	Login(ctx context.Context, email, rawPassword string) (*models.Session, error)
	ValidateToken(ctx context.Context, token string) (*jwt.CustomClaims, error)
	UpdateUser(ctx context.Context, userID, email, rawPassword string) (*models.Identity, error)
	SignOut(ctx context.Context, token string) error
	AdminCreateUser(ctx context.Context, email, rawPassword string) (string, error)
	AdminDeleteUser(ctx context.Context, userID string) error
}

// AuthServer реализует gRPC-сервис идентификации.
type AuthServer struct {
	authpb.UnimplementedAuthServiceServer
	authService AuthServiceInterface
	log         *slog.Logger
}

// NewAuthServer создает новый экземпляр AuthServer с указанным сервисом аутентификации и логгером.
func NewAuthServer(authService AuthServiceInterface, logger *slog.Logger) *AuthServer {
	return &AuthServer{
		authService: authService,
		log:         logger,
	}
}

// toStatus переводит доменную ошибку в gRPC статус.
func (s *AuthServer) toStatus(method string, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, "invalid credentials")
	case errors.Is(err, services.ErrInvalidToken), errors.Is(err, services.ErrTokenRevoked):
		return status.Error(codes.Unauthenticated, "invalid token")
	case errors.Is(err, storage.ErrAlreadyExists):
		return status.Error(codes.AlreadyExists, "user already exists")
	case errors.Is(err, storage.ErrNotFound):
		return status.Error(codes.NotFound, "user not found")
	case errors.Is(err, password.ErrTooShort):
		return status.Error(codes.InvalidArgument, "password is too short")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")
	}
	s.log.Error("auth request failed", slog.String("method", method), sl.Err(err))
	return status.Error(codes.Internal, "internal error")
}

func required(fields ...string) error {
	for _, f := range fields {
		if f == "" {
			return status.Error(codes.InvalidArgument, "missing required field")
		}
	}
	return nil
}

// SignUp создает нового пользователя.
func (s *AuthServer) SignUp(ctx context.Context, req *authpb.SignUpRequest) (*authpb.SignUpResponse, error) {
	if err := required(req.Email, req.Password); err != nil {
		return nil, err
	}
	id, err := s.authService.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus("SignUp", err)
	}
	return &authpb.SignUpResponse{UserUid: id}, nil
}

// Login проверяет пользователя и выпускает JWT.
func (s *AuthServer) Login(ctx context.Context, req *authpb.LoginRequest) (*authpb.LoginResponse, error) {
	if err := required(req.Email, req.Password); err != nil {
		return nil, err
	}
	session, err := s.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus("Login", err)
	}
	return &authpb.LoginResponse{
		Token:     session.Token,
		UserUid:   session.UserUID,
		Email:     session.Email,
		ExpiresAt: session.ExpiresAt.Unix(),
	}, nil
}

// ValidateToken проверяет JWT и возвращает данные пользователя.
func (s *AuthServer) ValidateToken(ctx context.Context, req *authpb.ValidateTokenRequest) (*authpb.ValidateTokenResponse, error) {
	if err := required(req.Token); err != nil {
		return nil, err
	}
	claims, err := s.authService.ValidateToken(ctx, req.Token)
	if err != nil {
		return nil, s.toStatus("ValidateToken", err)
	}
	return &authpb.ValidateTokenResponse{Valid: true, UserUid: claims.UserUID, Email: claims.Email}, nil
}

// UpdateUser меняет почту или пароль.
func (s *AuthServer) UpdateUser(ctx context.Context, req *authpb.UpdateUserRequest) (*authpb.UpdateUserResponse, error) {
	if err := required(req.UserUid); err != nil {
		return nil, err
	}
	u, err := s.authService.UpdateUser(ctx, req.UserUid, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus("UpdateUser", err)
	}
	return &authpb.UpdateUserResponse{UserUid: u.UUID, Email: u.Email}, nil
}

// SignOut отзывает токен.
func (s *AuthServer) SignOut(ctx context.Context, req *authpb.SignOutRequest) (*authpb.SignOutResponse, error) {
	if err := required(req.Token); err != nil {
		return nil, err
	}
	if err := s.authService.SignOut(ctx, req.Token); err != nil {
		return nil, s.toStatus("SignOut", err)
	}
	return &authpb.SignOutResponse{}, nil
}

// AdminCreateUser создаёт учётную запись участника или тренера.
func (s *AuthServer) AdminCreateUser(ctx context.Context, req *authpb.AdminCreateUserRequest) (*authpb.AdminCreateUserResponse, error) {
	if err := required(req.Email, req.Password); err != nil {
		return nil, err
	}
	id, err := s.authService.AdminCreateUser(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus("AdminCreateUser", err)
	}
	return &authpb.AdminCreateUserResponse{UserUid: id}, nil
}

// AdminDeleteUser удаляет учётную запись.
func (s *AuthServer) AdminDeleteUser(ctx context.Context, req *authpb.AdminDeleteUserRequest) (*authpb.AdminDeleteUserResponse, error) {
	if err := required(req.UserUid); err != nil {
		return nil, err
	}
	if err := s.authService.AdminDeleteUser(ctx, req.UserUid); err != nil {
		return nil, s.toStatus("AdminDeleteUser", err)
	}
	return &authpb.AdminDeleteUserResponse{}, nil
}
