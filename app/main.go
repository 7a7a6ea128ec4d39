package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"campusEvents/internal/assistant"
	"campusEvents/internal/auth"
	"campusEvents/internal/config"
	"campusEvents/internal/graceful"
	"campusEvents/internal/halls"
	"campusEvents/internal/openrouter"
	"campusEvents/internal/orchestrator"
	"campusEvents/internal/repositories"
	"campusEvents/internal/services"
	telegramBot "campusEvents/internal/telegram"
	"campusEvents/internal/transport/httpServer"
	"campusEvents/internal/transport/httpServer/handlers"
	"campusEvents/internal/transport/httpServer/routers"
	"campusEvents/internal/utils/logger/handlers/slogpretty"
	"campusEvents/internal/utils/logger/sl"

	"github.com/google/uuid"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

var Version = "0.1"

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	if err := cfg.ReadPromptFromFile(); err != nil {
		log.Warn("system prompt file not loaded, using inline prompt", sl.Err(err))
	}

	log.Info(
		"starting campus events",
		slog.String("env", cfg.Env),
		slog.String("version", Version),
	)

	repositoryService := repositories.New(log, cfg)
	aiService := openrouter.NewClient(log, cfg)
	hallSelector := halls.NewSelector(log, aiService)
	assistantService := assistant.New(log, aiService)
	orchestratorService := orchestrator.New(log, cfg, repositoryService, hallSelector, assistantService)
	tokens := auth.NewTokens(cfg.HttpServer.Secret, cfg.HttpServer.TokenTTL)

	profileService := services.NewProfileService(log, repositoryService, tokens, cfg.Bootstrap)
	proposalService := services.NewProposalService(log, repositoryService, orchestratorService)
	eventService := services.NewEventService(log, repositoryService)
	registrationService := services.NewRegistrationService(log, repositoryService)
	sessionService := services.NewSessionService(log, repositoryService)
	feedbackService := services.NewFeedbackService(log, repositoryService, assistantService)
	recommendationService := services.NewRecommendationService(log, repositoryService, assistantService)

	// решения из telegram записываются от имени bootstrap-администратора
	reviewerID := uuid.Nil
	bootCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := profileService.EnsureAdmin(bootCtx); err != nil {
		log.Error("cannot create bootstrap admin profile", sl.Err(err))
	} else if cfg.Bootstrap.Enabled() {
		reviewerID = auth.BootstrapAdminID(cfg.Bootstrap.AdminUsername)
	}
	cancel()
	if reviewerID == uuid.Nil {
		log.Warn("bootstrap admin unavailable, telegram approve/reject buttons are disabled")
	}

	tgBot := telegramBot.New(log, cfg, proposalService, aiService, reviewerID)
	orchestratorService.SetNotifier(tgBot)

	// HTTP Server
	router := routers.NewRouter(log, tokens, routers.Handlers{
		Profile:      handlers.NewProfileHandler(log, profileService),
		Proposal:     handlers.NewProposalHandler(log, proposalService),
		Event:        handlers.NewEventHandler(log, eventService),
		Registration: handlers.NewRegistrationHandler(log, registrationService),
		Session:      handlers.NewSessionHandler(log, sessionService),
		Feedback:     handlers.NewFeedbackHandler(log, feedbackService),
		AI:           handlers.NewAIHandler(log, assistantService, hallSelector, recommendationService),
	})
	httpSrv := httpServer.NewHttpServer(log, router, cfg)

	maxSecond := 15 * time.Second
	waitShutdown := graceful.GracefulShutdown(
		context.Background(),
		maxSecond,
		map[string]graceful.Operation{
			"AI service": func(ctx context.Context) error {
				return aiService.Shutdown(ctx)
			},
			"Repository service": func(ctx context.Context) error {
				return repositoryService.Shutdown(ctx)
			},
			"Telegram bot": func(ctx context.Context) error {
				return tgBot.Shutdown(ctx)
			},
			"Orchestrator service": func(ctx context.Context) error {
				return orchestratorService.Shutdown(ctx)
			},
			"HTTP server": func(ctx context.Context) error {
				return httpSrv.Shutdown(ctx)
			},
		},
		log,
	)

	go orchestratorService.Start()
	go tgBot.Start(30)
	go httpSrv.Listen()

	<-waitShutdown
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog(slog.LevelDebug)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = setupPrettySlog(slog.LevelInfo)
	default: // unknown env gets prod settings
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}

func setupPrettySlog(level slog.Level) *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: level,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
