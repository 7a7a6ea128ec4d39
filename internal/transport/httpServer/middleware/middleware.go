package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"campusEvents/internal/auth"
	"campusEvents/internal/utils"
	"campusEvents/internal/utils/logger/sl"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// LoggerMiddleware пишет одну строку лога на запрос после ответа.
func LoggerMiddleware(log *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		log := log.With(slog.String("component", "middleware/logger"))

		fn := func(w http.ResponseWriter, r *http.Request) {
			entry := log.With(
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			start := time.Now()
			defer func() {
				entry.Info("request completed",
					slog.Int("status", ww.Status()),
					slog.Int("bytes", ww.BytesWritten()),
					slog.String("duration", time.Since(start).String()),
				)
			}()

			next.ServeHTTP(ww, r)
		}

		return http.HandlerFunc(fn)
	}
}

// TokenParser превращает bearer-токен в ID пользователя.
type TokenParser interface {
	Parse(token string) (uuid.UUID, error)
}

// Authenticate требует валидный bearer-токен и кладёт ID пользователя в
// контекст запроса.
func Authenticate(log *slog.Logger, tokens TokenParser) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
				unauthorized(log, w, "missing bearer token")
				return
			}

			userID, err := tokens.Parse(strings.TrimSpace(token))
			if err != nil {
				log.Debug("token rejected", sl.Err(err))
				unauthorized(log, w, "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
		}

		return http.HandlerFunc(fn)
	}
}

// unauthorized отвечает 401 с JSON-ошибкой.
func unauthorized(log *slog.Logger, w http.ResponseWriter, msg string) {
	if err := utils.Json(w, http.StatusUnauthorized, map[string]string{"error": msg}); err != nil {
		log.Error("error sending http response", sl.Err(err))
	}
}
