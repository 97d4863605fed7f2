// Package services содержит логику сервиса идентификации: регистрацию, вход,
// проверку и отзыв токенов, смену данных пользователя и административное управление учётными записями.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/jwt"
	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/password"
	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
	"github.com/PoorDoomer/gym-saas-sub000/internal/storage"
)

var (
	// ErrInvalidCredentials неверная почта или пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken токен не прошёл проверку подписи или срока.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenRevoked токен отозван при выходе из системы.
	ErrTokenRevoked = errors.New("token revoked")
)

// UserRepository описывает контракт для работы с учётными записями в базе данных.
type UserRepository interface {
	// CreateIdentity сохраняет новую учётную запись.
	CreateIdentity(ctx context.Context, u models.Identity) error
	// GetIdentityByEmail возвращает учётную запись по почте без учёта регистра.
	GetIdentityByEmail(ctx context.Context, email string) (*models.Identity, error)
	// GetIdentity возвращает учётную запись по ID.
	GetIdentity(ctx context.Context, userID string) (*models.Identity, error)
	// UpdateIdentity сохраняет почту и хэш пароля.
	UpdateIdentity(ctx context.Context, u models.Identity) error
	// DeleteIdentity удаляет учётную запись.
	DeleteIdentity(ctx context.Context, userID string) error
}

// TokenBlacklist хранилище отозванных токенов.
type TokenBlacklist interface {
	Blacklist(ctx context.Context, tokenID string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, tokenID string) (bool, error)
}

// AuthService отвечает за учётные записи и JWT.
type AuthService struct {
	users     UserRepository
	jwtMaker  jwt.Maker
	blacklist TokenBlacklist
	log       *slog.Logger
	now       func() time.Time
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, blacklist TokenBlacklist, log *slog.Logger) *AuthService {
	return &AuthService{
		users:     users,
		jwtMaker:  jwtMaker,
		blacklist: blacklist,
		log:       log,
		now:       time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) createIdentity(ctx context.Context, op, email, rawPassword string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	user := models.Identity{
		UUID:         uuid.NewString(),
		Email:        normalizeEmail(email),
		PasswordHash: hashed,
	}
	if err := s.users.CreateIdentity(ctx, user); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return user.UUID, nil
}

// SignUp регистрирует пользователя и возвращает его ID.
func (s *AuthService) SignUp(ctx context.Context, email, rawPassword string) (string, error) {
	const op = "services.auth.SignUp"
	id, err := s.createIdentity(ctx, op, email, rawPassword)
	if err != nil {
		return "", err
	}
	s.log.Info("user signed up", slog.String("user_uid", id))
	return id, nil
}

// Login проверяет пароль и выпускает токен доступа.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*models.Session, error) {
	const op = "services.auth.Login"
	user, err := s.users.GetIdentityByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	token, claims, err := s.jwtMaker.GenerateToken(user.UUID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &models.Session{
		Token:     token,
		UserUID:   user.UUID,
		Email:     user.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// ValidateToken проверяет подпись, срок и отзыв токена и возвращает его claims.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*jwt.CustomClaims, error) {
	const op = "services.auth.ValidateToken"
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrInvalidToken, err)
	}
	if s.blacklist != nil {
		revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if revoked {
			return nil, fmt.Errorf("%s: %w", op, ErrTokenRevoked)
		}
	}
	return claims, nil
}

// UpdateUser меняет почту и/или пароль пользователя. Пустые значения не меняются.
func (s *AuthService) UpdateUser(ctx context.Context, userID, email, rawPassword string) (*models.Identity, error) {
	const op = "services.auth.UpdateUser"
	user, err := s.users.GetIdentity(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if email != "" {
		user.Email = normalizeEmail(email)
	}
	if rawPassword != "" {
		hashed, err := password.GetHash(rawPassword)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		user.PasswordHash = hashed
	}
	if err := s.users.UpdateIdentity(ctx, *user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// SignOut отзывает токен до окончания его срока действия.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	const op = "services.auth.SignOut"
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrInvalidToken, err)
	}
	if s.blacklist == nil {
		return nil
	}
	if err := s.blacklist.Blacklist(ctx, claims.ID, claims.TTL(s.now())); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user signed out", slog.String("user_uid", claims.UserUID))
	return nil
}

// AdminCreateUser создаёт учётную запись от имени администратора клуба.
func (s *AuthService) AdminCreateUser(ctx context.Context, email, rawPassword string) (string, error) {
	const op = "services.auth.AdminCreateUser"
	id, err := s.createIdentity(ctx, op, email, rawPassword)
	if err != nil {
		return "", err
	}
	s.log.Info("user created by admin", slog.String("user_uid", id))
	return id, nil
}

// AdminDeleteUser удаляет учётную запись. Используется для отката неудачного создания аккаунта.
func (s *AuthService) AdminDeleteUser(ctx context.Context, userID string) error {
	const op = "services.auth.AdminDeleteUser"
	if err := s.users.DeleteIdentity(ctx, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user deleted by admin", slog.String("user_uid", userID))
	return nil
}
