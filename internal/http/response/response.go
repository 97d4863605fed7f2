// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков: успешных ответов, ошибок,
// сообщений валидации и перевода доменных ошибок в HTTP-статусы.
package response

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/sl"
	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
	"github.com/PoorDoomer/gym-saas-sub000/internal/storage"
	"github.com/PoorDoomer/gym-saas-sub000/internal/tenant"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Status: статус запроса ("OK" или "Error").
// Поле Error: текст ошибки (опционально, при неуспехе).
// Поле Data: данные ответа (опционально, при успехе).
// Поле Redirect: куда перейти клиенту, если доступ к странице запрещён.
type Response struct {
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
	Data     any    `json:"data,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

// ErrorResponse структура ошибки для Swagger-документации.
// Используется в аннотациях @Failure как возвращаемый тип ошибки.
type ErrorResponse struct {
	Status   string `json:"status" example:"Error"`
	Error    string `json:"error" example:"invalid request body"`
	Redirect string `json:"redirect,omitempty" example:"/login"`
}

const (
	// StatusOK значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// StatusOKWithData возвращает успешный Response с переданными данными.
func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает ответ с ошибкой и переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

// Redirect ответ с ошибкой доступа и страницей для перехода.
func Redirect(msg, to string) ErrorResponse {
	return ErrorResponse{
		Status:   StatusError,
		Error:    msg,
		Redirect: to,
	}
}

// ValidationError формирует Response со статусом Error на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		field := err.Field()
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", field))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", field))
		case "uuid":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only uuid", field))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be at least %s", field, err.Param()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be at most %s", field, err.Param()))
		case "gte", "gt":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be %s %s", field, err.ActualTag(), err.Param()))
		case "oneof":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be one of [%s]", field, err.Param()))
		case "datetime":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a date in format %s", field, err.Param()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", field))
		}
	}
	return Response{
		Status: StatusError,
		Error:  strings.Join(errsMsgs, ", "),
	}
}

// StatusFor HTTP-статус и безопасное сообщение для доменной ошибки.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, tenant.ErrNoGymSelected):
		return http.StatusBadRequest, "no gym selected"
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, storage.ErrAlreadyExists):
		return http.StatusConflict, "already exists"
	case errors.Is(err, storage.ErrInvalidReference):
		return http.StatusBadRequest, "referenced record does not exist"
	case errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, models.ErrMemberLimitReached):
		return http.StatusConflict, models.ErrMemberLimitReached.Error()
	case errors.Is(err, models.ErrInvalidStatus):
		return http.StatusConflict, models.ErrInvalidStatus.Error()
	case errors.Is(err, models.ErrScheduleClosed):
		return http.StatusConflict, models.ErrScheduleClosed.Error()
	case errors.Is(err, models.ErrAlreadyCheckedOut):
		return http.StatusConflict, models.ErrAlreadyCheckedOut.Error()
	case errors.Is(err, models.ErrInactive):
		return http.StatusConflict, models.ErrInactive.Error()
	case errors.Is(err, models.ErrReadOnly):
		return http.StatusForbidden, models.ErrReadOnly.Error()
	}
	return http.StatusInternalServerError, "internal error"
}

// Fail пишет ошибку сервиса. Ошибки с кодом 500 логируются с подробностями, остальные как предупреждение.
func Fail(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	code, msg := StatusFor(err)
	if code >= http.StatusInternalServerError {
		log.Error("request failed", sl.Err(err))
	} else {
		log.Warn("request rejected", slog.Int("status", code), sl.Err(err))
	}
	render.Status(r, code)
	render.JSON(w, r, Error(msg))
}

// OK пишет успешный ответ с данными.
func OK(w http.ResponseWriter, r *http.Request, data any) {
	render.JSON(w, r, StatusOKWithData(data))
}

// Created пишет ответ 201 с данными.
func Created(w http.ResponseWriter, r *http.Request, data any) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, StatusOKWithData(data))
}

// BadRequest пишет 400 с сообщением.
func BadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, Error(msg))
}
