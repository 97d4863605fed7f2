// Package request разбирает тело и параметры HTTP-запросов: JSON с валидацией,
// параметры пагинации и поиска, даты в query.
package request

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/PoorDoomer/gym-saas-sub000/internal/http/response"
	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/search"
	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/sl"
	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
)

// MaxLimit наибольший размер страницы.
const MaxLimit = 200

var validate = newValidator()

// newValidator валидатор с правилом datetime=<layout>, которого нет в validator v9.
func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("datetime", isDateTime); err != nil {
		panic(err)
	}
	return v
}

// isDateTime проверяет, что строка разбирается по макету из параметра правила.
func isDateTime(fl validator.FieldLevel) bool {
	_, err := time.Parse(fl.Param(), fl.Field().String())
	return err == nil
}

// Decode читает JSON в dst и проверяет его правилами validate.
// При ошибке пишет ответ 400 или 422 и возвращает false.
func Decode(w http.ResponseWriter, r *http.Request, log *slog.Logger, dst any) bool {
	if err := render.DecodeJSON(r.Body, dst); err != nil {
		log.Warn("failed to decode request", sl.Err(err))
		response.BadRequest(w, r, "invalid request body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			log.Warn("validation failed", sl.Err(err))
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.ValidationError(verrs))
			return false
		}
		log.Error("validator failed", sl.Err(err))
		response.BadRequest(w, r, "invalid request body")
		return false
	}
	return true
}

// Int целое из query или def, если параметра нет или он некорректен.
func Int(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Page параметры offset и limit. limit ограничен MaxLimit.
func Page(r *http.Request) search.Page {
	p := search.Page{
		Offset: max(Int(r, "offset", 0), 0),
		Limit:  Int(r, "limit", 50),
	}
	if p.Limit <= 0 || p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Date дата YYYY-MM-DD из query. Отсутствующий параметр даёт нулевое время.
func Date(r *http.Request, name string) (time.Time, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(models.DateLayout, v)
	if err != nil {
		return time.Time{}, models.ErrInvalidInput
	}
	return t, nil
}

// Logger логгер обработчика с op и request_id.
func Logger(log *slog.Logger, r *http.Request, op string) *slog.Logger {
	return log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}
