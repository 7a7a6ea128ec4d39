package httpServer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"campusEvents/internal/config"
	"campusEvents/internal/utils/logger/sl"

	"github.com/go-chi/chi/v5"
)

// Mounter регистрирует маршруты в роутере.
type Mounter interface {
	Mount(mux *chi.Mux)
}

// HttpServer — HTTP-сервер API.
type HttpServer struct {
	log    *slog.Logger
	server *http.Server
}

// NewHttpServer создаёт сервер с таймаутами из конфига.
func NewHttpServer(log *slog.Logger, router Mounter, cfg *config.Config) *HttpServer {
	mux := chi.NewRouter()
	router.Mount(mux)

	return &HttpServer{
		log: log,
		server: &http.Server{
			Addr:              net.JoinHostPort(cfg.HttpServer.Address, cfg.HttpServer.Port),
			Handler:           mux,
			ReadHeaderTimeout: 3 * time.Second,
			ReadTimeout:       cfg.HttpServer.Timeout,
			// AI-эндпоинты ждут ответа API генерации
			WriteTimeout:   cfg.HttpServer.Timeout + cfg.AI.GetTimeout(),
			IdleTimeout:    60 * time.Second,
			MaxHeaderBytes: 1 << 20,
		},
	}
}

// Listen блокируется до остановки сервера.
func (s *HttpServer) Listen() {
	op := "HttpServer.Listen()"
	log := s.log.With(slog.String("op", op))

	log.Info("http server started", slog.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("http server stopped", sl.Err(err))
	}
}

// Shutdown корректно завершает работу сервера.
func (s *HttpServer) Shutdown(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("HttpServer.Shutdown(): %w", err)
	}
	return nil
}
