// Package storage содержит общие ошибки слоя хранения.
package storage

import "errors"

var (
	// ErrNotFound запись не найдена в выбранном клубе.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists нарушено ограничение уникальности.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrInvalidReference ссылка на несуществующую запись.
	ErrInvalidReference = errors.New("referenced record does not exist")
)
