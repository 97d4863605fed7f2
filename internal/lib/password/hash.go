// Package password реализует хеширование паролей учётных записей сотрудников и клиентов зала.
//
// GetHash создает bcrypt-хеш пароля для хранения в auth_users.
// CompareHash сравнивает хеш с введённым паролем и возвращает ErrMismatch при несовпадении.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MinLength минимальная длина пароля при регистрации и смене пароля.
const MinLength = 8

var (
	// ErrMismatch пароль не соответствует хешу.
	ErrMismatch = errors.New("password mismatch")
	// ErrTooShort пароль короче MinLength.
	ErrTooShort = errors.New("password is too short")
)

// GetHash принимает пароль пользователя и возвращает его bcrypt‑хэш.
func GetHash(password string) (string, error) {
	const op = "password.GetHash"
	if len(password) < MinLength {
		return "", fmt.Errorf("%s: %w", op, ErrTooShort)
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// CompareHash сравнивает bcrypt‑хэш с введённым паролем.
func CompareHash(originalHash, externalPassword string) error {
	const op = "password.CompareHash"
	err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return fmt.Errorf("%s: %w", op, ErrMismatch)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
