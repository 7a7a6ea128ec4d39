package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"sync"
	"time"

	"campusEvents/internal/config"
	"campusEvents/internal/models/domain"
	"campusEvents/internal/utils"
	"campusEvents/internal/utils/logger/sl"

	openrouter "github.com/revrost/go-openrouter"
	"github.com/revrost/go-openrouter/jsonschema"
)

const (
	// retryCount - число попыток при rate limit и обрыве соединения.
	retryCount int = 5
	// retryDuration - пауза между попытками.
	retryDuration time.Duration = 5 * time.Second

	defaultSystemPrompt = "You are an assistant for a university event management system. Answer concisely and professionally."
)

// Openrouter — клиент chat completion API OpenRouter.
type Openrouter struct {
	logger          *slog.Logger
	cfg             *config.Config
	Client          *openrouter.Client
	mu              sync.RWMutex
	model           string
	shutdownChannel chan struct{}
	shutdownOnce    sync.Once
}

// NewClient возвращает указатель на инициализированный Openrouter.
func NewClient(logger *slog.Logger, cfg *config.Config) *Openrouter {
	op := "Openrouter.NewClient()"
	log := logger.With(slog.String("op", op))

	var client *openrouter.Client
	if cfg.AI.AIApiToken != "" {
		client = openrouter.NewClient(cfg.AI.AIApiToken)
		log.Info("creating openrouter client", slog.String("model", cfg.AI.ModelName))
	} else {
		log.Warn("AI token is empty, generators will use templated fallbacks")
	}

	return &Openrouter{
		logger:          logger,
		cfg:             cfg,
		Client:          client,
		model:           cfg.AI.ModelName,
		shutdownChannel: make(chan struct{}),
	}
}

// Enabled сообщает, задан ли токен.
func (s *Openrouter) Enabled() bool {
	return s.Client != nil
}

// Model возвращает текущую модель.
func (s *Openrouter) Model() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model
}

// SetModel переключает модель для следующих запросов.
func (s *Openrouter) SetModel(name string) {
	s.mu.Lock()
	s.model = name
	s.mu.Unlock()
}

// Complete отправляет один промпт и возвращает сгенерированный текст.
func (s *Openrouter) Complete(ctx context.Context, prompt string) (string, error) {
	op := "Openrouter.Complete()"

	resp, err := s.createCompletion(ctx, prompt, nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return resp, nil
}

// CompleteStructured запрашивает JSON по схеме out и декодирует ответ в out.
// out должен быть указателем на структуру.
func (s *Openrouter) CompleteStructured(ctx context.Context, prompt string, schemaName string, out any) error {
	op := "Openrouter.CompleteStructured()"
	log := s.logger.With(slog.String("op", op), slog.String("schema", schemaName))

	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%s: out must be a non-nil pointer", op)
	}

	schema, err := jsonschema.GenerateSchemaForType(rv.Elem().Interface())
	if err != nil {
		log.Error("GenerateSchemaForType error", sl.Err(err))
		return fmt.Errorf("%s: GenerateSchemaForType error: %w", op, err)
	}

	format := &openrouter.ChatCompletionResponseFormat{
		Type: "json_schema",
		JSONSchema: &openrouter.ChatCompletionResponseFormatJSONSchema{
			Name:   schemaName,
			Strict: true,
			Schema: schema,
		},
	}

	text, err := s.createCompletion(ctx, prompt, format)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	cleaned := utils.CleanJSON(text)
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		log.Error("error unmarshal response", sl.Err(err), slog.String("response", cleaned))
		return fmt.Errorf("%s: unmarshal error: %w", op, err)
	}

	return nil
}

// createCompletion выполняет запрос с повторами при rate limit и обрыве соединения.
func (s *Openrouter) createCompletion(ctx context.Context, prompt string, format *openrouter.ChatCompletionResponseFormat) (string, error) {
	log := s.logger.With(slog.String("op", "Openrouter.createCompletion()"))

	if !s.Enabled() {
		return "", domain.ErrAIUnavailable
	}

	systemPrompt := s.cfg.AI.SystemRolePrompt
	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = defaultSystemPrompt
	}

	request := openrouter.ChatCompletionRequest{
		Model: s.Model(),
		Messages: []openrouter.ChatCompletionMessage{
			openrouter.SystemMessage(systemPrompt),
			openrouter.UserMessage(prompt),
		},
		MaxTokens:      s.cfg.AI.MaxTokens,
		Temperature:    s.cfg.AI.Temperature,
		ResponseFormat: format,
	}

	var (
		resp openrouter.ChatCompletionResponse
		err  error
	)

	for retry := range retryCount {
		resp, err = s.Client.CreateChatCompletion(ctx, request)
		if err == nil || !(isRateLimitError(err) || isEOFError(err)) {
			break
		}

		log.Error("AI completion error", sl.Err(err), slog.Int("retry", retry))

		select {
		case <-s.shutdownChannel:
			return "", fmt.Errorf("shutdown openrouter client")
		case <-ctx.Done():
			return "", fmt.Errorf("AI completion aborted: %w", ctx.Err())
		case <-time.After(retryDuration):
		}
	}

	if err != nil {
		return "", fmt.Errorf("AI completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty AI response")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content.Text)
	if text == "" {
		return "", fmt.Errorf("empty AI response")
	}

	return text, nil
}

// isRateLimitError ищет HTTP 429 в тексте ошибки.
func isRateLimitError(err error) bool {
	if err != nil {
		return strings.Contains(err.Error(), "429")
	}
	return false
}

// isEOFError распознаёт оборванное соединение.
func isEOFError(err error) bool {
	if err != nil {
		return errors.Is(err, io.EOF) || strings.Contains(err.Error(), "EOF")
	}
	return false
}

// Shutdown прерывает ожидающие циклы повторов.
func (s *Openrouter) Shutdown(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("force exit AI client: %w", ctx.Err())
	default:
		s.shutdownOnce.Do(func() { close(s.shutdownChannel) })
		return nil
	}
}
