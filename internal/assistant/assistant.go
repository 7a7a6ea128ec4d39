package assistant

import (
	"context"
	"log/slog"

	"campusEvents/internal/models/domain"
	"campusEvents/internal/utils/logger/sl"
)

// Completer — бэкенд генерации текста. CompleteStructured декодирует JSON-ответ в out.
type Completer interface {
	Enabled() bool
	Complete(ctx context.Context, prompt string) (string, error)
	CompleteStructured(ctx context.Context, prompt string, schemaName string, out any) error
}

// Assistant пишет описания, теги, посты и сводки. У каждого генератора есть
// шаблонный fallback на случай, когда completer не настроен.
type Assistant struct {
	log       *slog.Logger
	completer Completer
}

// New создаёт новый экземпляр Assistant.
func New(log *slog.Logger, completer Completer) *Assistant {
	return &Assistant{
		log:       log,
		completer: completer,
	}
}

// enabled сообщает, настроен ли completer.
func (a *Assistant) enabled() bool {
	return a.completer != nil && a.completer.Enabled()
}

// generate прогоняет prompt через completer или рендерит fallback, если
// completer выключен. Ошибка completer даёт неуспешный ответ с текстом failure.
func (a *Assistant) generate(ctx context.Context, op, prompt, failure string, fallback func() string) domain.GeneratedContent {
	log := a.log.With(slog.String("op", op))

	if !a.enabled() {
		return domain.GeneratedContent{Success: true, Content: fallback()}
	}

	text, err := a.completer.Complete(ctx, prompt)
	if err != nil {
		log.Error("text generation failed", sl.Err(err))
		return domain.GeneratedContent{Success: false, Error: failure}
	}

	return domain.GeneratedContent{Success: true, Content: text}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
