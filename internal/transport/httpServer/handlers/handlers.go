package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"campusEvents/internal/auth"
	"campusEvents/internal/models/domain"
	"campusEvents/internal/utils"
	"campusEvents/internal/utils/logger/sl"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxBodyBytes = 1 << 20

var errInternal = errors.New("internal server error")

// statusFor сопоставляет ошибки сервисов с HTTP-статусами.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case domain.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyRegistered),
		errors.Is(err, domain.ErrEventFull),
		errors.Is(err, domain.ErrFeedbackExists),
		errors.Is(err, domain.ErrProfileExists),
		errors.Is(err, domain.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotRegistered),
		errors.Is(err, domain.ErrNoFeedback),
		errors.Is(err, domain.ErrEventNotEnded):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrAIUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError логирует err и отдаёт его клиенту. Текст серверных ошибок
// клиенту не показывается.
func respondError(log *slog.Logger, err error, w http.ResponseWriter, status int) {
	if status >= http.StatusInternalServerError {
		log.Error("handler error", sl.Err(err))
		err = errInternal
	} else {
		log.Warn("request rejected", slog.Int("status", status), sl.Err(err))
	}
	if httpErr := utils.Err(w, status, err); httpErr != nil {
		log.Error("error sending http response", sl.Err(httpErr))
	}
}

// respondServiceError выбирает статус по самой ошибке.
func respondServiceError(log *slog.Logger, err error, w http.ResponseWriter) {
	respondError(log, err, w, statusFor(err))
}

// respond пишет v в ответ как JSON.
func respond(log *slog.Logger, w http.ResponseWriter, status int, v any) {
	if err := utils.Json(w, status, v); err != nil {
		log.Error("error encoding response", sl.Err(err))
	}
}

// decode читает JSON-тело запроса размером не больше 1MB.
func decode(r *http.Request, w http.ResponseWriter, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("cannot decode json: %w", err)
	}
	return nil
}

// uuidParam разбирает UUID из параметра пути.
func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return uuid.Nil, fmt.Errorf("empty %s", name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return id, nil
}

// actor возвращает аутентифицированного пользователя. Если его нет, пишет 401
// и возвращает false.
func actor(log *slog.Logger, w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := auth.UserID(r.Context())
	if err != nil {
		respondError(log, err, w, http.StatusUnauthorized)
		return uuid.Nil, false
	}
	return id, true
}
