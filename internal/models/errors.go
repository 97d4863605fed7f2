// Package models содержит доменные структуры клубов, участников, тренеров, занятий,
// посещений и платежей, DTO запросов с правилами валидации и доменные ошибки.
package models

import "errors"

var (
	// ErrInvalidInput некорректные данные, которые не ловит валидатор структуры.
	ErrInvalidInput = errors.New("invalid input")
	// ErrMemberLimitReached достигнут лимит активных участников для тарифа клуба.
	ErrMemberLimitReached = errors.New("member limit reached for gym tier")
	// ErrInvalidStatus недопустимый статус или переход статуса.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrScheduleClosed занятие отменено или уже прошло.
	ErrScheduleClosed = errors.New("class schedule is not open for enrollment")
	// ErrAlreadyCheckedOut посещение уже закрыто.
	ErrAlreadyCheckedOut = errors.New("check-in already closed")
	// ErrReadOnly запись нельзя менять из клуба, например глобальный вид спорта.
	ErrReadOnly = errors.New("record is read-only")
	// ErrInactive запись деактивирована.
	ErrInactive = errors.New("record is inactive")
)
