package telegramBot

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"campusEvents/internal/config"
	"campusEvents/internal/models/domain"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
}

func (s *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, c)
	return tgbotapi.Message{}, nil
}

func (s *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (s *fakeSender) messages() []tgbotapi.MessageConfig {
	var out []tgbotapi.MessageConfig
	for _, c := range s.sent {
		if m, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, m)
		}
	}
	return out
}

func (s *fakeSender) alerts() []string {
	var out []string
	for _, c := range s.requests {
		if cb, ok := c.(tgbotapi.CallbackConfig); ok && cb.Text != "" {
			out = append(out, cb.Text)
		}
	}
	return out
}

type decision struct {
	actor  uuid.UUID
	id     uuid.UUID
	status domain.ProposalStatus
}

type fakeModerator struct {
	decisions []decision
	err       error
	pending   []domain.ProposalWithOrganizer
}

func (m *fakeModerator) UpdateStatus(_ context.Context, actor, id uuid.UUID, status domain.ProposalStatus, _ string) (domain.Proposal, error) {
	if m.err != nil {
		return domain.Proposal{}, m.err
	}
	m.decisions = append(m.decisions, decision{actor: actor, id: id, status: status})
	return domain.Proposal{ID: id, Status: status}, nil
}

func (m *fakeModerator) PendingProposals(context.Context) ([]domain.ProposalWithOrganizer, error) {
	return m.pending, nil
}

type fakeModels struct {
	model string
}

func (m *fakeModels) Model() string        { return m.model }
func (m *fakeModels) SetModel(name string) { m.model = name }

func newTestBot(moderator Moderator) (*Bot, *fakeSender, *fakeModels) {
	sender := &fakeSender{}
	models := &fakeModels{model: "openai/gpt-4.1-nano"}
	cfg := &config.Config{
		BotConfig: config.BotConfig{
			Admins:     []string{"boss"},
			ChannelIDs: []int64{-100, -200},
		},
	}
	bot := &Bot{
		log:             slog.New(slog.DiscardHandler),
		cfg:             cfg,
		tgbot:           sender,
		moderator:       moderator,
		models:          models,
		adminID:         uuid.New(),
		persist:         func() error { return nil },
		shutdownChannel: make(chan struct{}),
	}
	return bot, sender, models
}

func commandUpdate(user, text string) *tgbotapi.Update {
	cmd, _, _ := strings.Cut(text, " ")
	return &tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{UserName: user},
		Chat:      &tgbotapi.Chat{ID: 42},
		Text:      text,
		Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}},
	}}
}

func callbackUpdate(user, data string) *tgbotapi.Update {
	return &tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb-1",
		From:    &tgbotapi.User{UserName: user},
		Data:    data,
		Message: &tgbotapi.Message{MessageID: 7, Chat: &tgbotapi.Chat{ID: -100}},
	}}
}

func reviewedProposal() domain.Proposal {
	p := domain.NewProposal(uuid.New(), uuid.New(), domain.ProposalInput{
		Title:             "AI <Ethics> Panel",
		Description:       "Debate",
		Category:          "Seminar",
		ExpectedAttendees: 90,
		PreferredDate:     time.Date(2026, 11, 20, 10, 0, 0, 0, time.UTC),
		DurationHours:     2,
	}, time.Now())
	_ = p.CompleteWorkflow(&domain.HallAvailability{
		RecommendedHall:      &domain.HallRecommendation{SelectedHall: "Nehru Hall", MatchScore: 85},
		HallSelectionSuccess: true,
	}, &domain.AISummary{Success: true, Summary: strings.Repeat("a", 700)}, time.Now())
	return p
}

func TestNotifyProposal(t *testing.T) {
	bot, sender, _ := newTestBot(&fakeModerator{})
	p := reviewedProposal()

	bot.NotifyProposal(context.Background(), p)

	msgs := sender.messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, int64(-100), msgs[0].ChatID)
	assert.Equal(t, int64(-200), msgs[1].ChatID)

	text := msgs[0].Text
	assert.Contains(t, text, "<b>AI &lt;Ethics&gt; Panel</b>")
	assert.Contains(t, text, "Nehru Hall (85% match)")
	assert.Contains(t, text, "20.11.2026 10:00 (2h)")
	assert.Contains(t, text, "<b>Workflow:</b> completed")
	assert.Contains(t, text, strings.Repeat("a", 600)+"…")

	keyboard, ok := msgs[0].ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, keyboard.InlineKeyboard[0], 2)
	assert.Equal(t, "approve_"+p.ID.String(), *keyboard.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "reject_"+p.ID.String(), *keyboard.InlineKeyboard[0][1].CallbackData)
}

func TestNotifyDecidedProposalHasNoButtons(t *testing.T) {
	bot, sender, _ := newTestBot(&fakeModerator{})
	p := reviewedProposal()
	require.NoError(t, p.Decide(domain.ProposalStatusApproved, uuid.New(), "", time.Now()))

	bot.NotifyProposal(context.Background(), p)

	for _, m := range sender.messages() {
		assert.Nil(t, m.ReplyMarkup)
	}
}

func TestDisabledBotIsNoop(t *testing.T) {
	bot := New(slog.New(slog.DiscardHandler), &config.Config{}, &fakeModerator{}, &fakeModels{}, uuid.New())
	assert.False(t, bot.Enabled())

	bot.NotifyProposal(context.Background(), reviewedProposal())
	bot.Start(1)
	assert.NoError(t, bot.Shutdown(context.Background()))
}

func TestApprovalCallback(t *testing.T) {
	moderator := &fakeModerator{}
	bot, sender, _ := newTestBot(moderator)
	id := uuid.New()

	bot.handleUpdate(context.Background(), callbackUpdate("boss", "approve_"+id.String()))

	require.Len(t, moderator.decisions, 1)
	assert.Equal(t, decision{actor: bot.adminID, id: id, status: domain.ProposalStatusApproved}, moderator.decisions[0])
	assert.Contains(t, sender.alerts(), "✅ Proposal approved")

	var edited bool
	for _, c := range sender.sent {
		if _, ok := c.(tgbotapi.EditMessageReplyMarkupConfig); ok {
			edited = true
		}
	}
	assert.True(t, edited, "keyboard removed")
}

func TestCallbackRejections(t *testing.T) {
	t.Run("non admin", func(t *testing.T) {
		moderator := &fakeModerator{}
		bot, sender, _ := newTestBot(moderator)

		bot.handleUpdate(context.Background(), callbackUpdate("mallory", "reject_"+uuid.NewString()))

		assert.Empty(t, moderator.decisions)
		assert.Contains(t, sender.alerts(), "⛔ Only admins can review proposals")
	})

	t.Run("already decided", func(t *testing.T) {
		moderator := &fakeModerator{err: domain.ErrInvalidState}
		bot, sender, _ := newTestBot(moderator)

		bot.handleUpdate(context.Background(), callbackUpdate("boss", "reject_"+uuid.NewString()))

		assert.Contains(t, sender.alerts(), "ℹ️ Proposal was already reviewed")
	})

	t.Run("store failure", func(t *testing.T) {
		moderator := &fakeModerator{err: errors.New("db down")}
		bot, sender, _ := newTestBot(moderator)

		bot.handleUpdate(context.Background(), callbackUpdate("boss", "approve_"+uuid.NewString()))

		assert.Contains(t, sender.alerts(), "❌ Failed to record the decision")
	})

	t.Run("bad id", func(t *testing.T) {
		moderator := &fakeModerator{}
		bot, sender, _ := newTestBot(moderator)

		bot.handleUpdate(context.Background(), callbackUpdate("boss", "approve_nope"))

		assert.Empty(t, moderator.decisions)
		assert.Contains(t, sender.alerts(), "❌ Unknown proposal")
	})
}

func TestCommands(t *testing.T) {
	ctx := context.Background()

	t.Run("model switch", func(t *testing.T) {
		bot, sender, models := newTestBot(&fakeModerator{})

		bot.handleUpdate(ctx, commandUpdate("boss", "/setmodel anthropic/claude-3.5-haiku"))
		assert.Equal(t, "anthropic/claude-3.5-haiku", models.model)
		assert.Equal(t, "anthropic/claude-3.5-haiku", bot.cfg.AI.ModelName)

		bot.handleUpdate(ctx, commandUpdate("boss", "/getmodel"))
		msgs := sender.messages()
		require.Len(t, msgs, 2)
		assert.Equal(t, "👍 Model changed 👍", msgs[0].Text)
		assert.Equal(t, "anthropic/claude-3.5-haiku", msgs[1].Text)
	})

	t.Run("model switch by non admin", func(t *testing.T) {
		bot, sender, models := newTestBot(&fakeModerator{})

		bot.handleUpdate(ctx, commandUpdate("mallory", "/setmodel evil/model"))
		assert.Equal(t, "openai/gpt-4.1-nano", models.model)
		assert.Empty(t, sender.messages())
	})

	t.Run("pending queue", func(t *testing.T) {
		p := reviewedProposal()
		moderator := &fakeModerator{pending: []domain.ProposalWithOrganizer{{Proposal: p, OrganizerName: "Ada Lovelace"}}}
		bot, sender, _ := newTestBot(moderator)

		bot.handleUpdate(ctx, commandUpdate("boss", "/pending"))
		msgs := sender.messages()
		require.Len(t, msgs, 1)
		assert.Contains(t, msgs[0].Text, "<b>Organizer:</b> Ada Lovelace")
		assert.NotNil(t, msgs[0].ReplyMarkup)
	})

	t.Run("empty queue", func(t *testing.T) {
		bot, sender, _ := newTestBot(&fakeModerator{})

		bot.handleUpdate(ctx, commandUpdate("boss", "/pending"))
		msgs := sender.messages()
		require.Len(t, msgs, 1)
		assert.Equal(t, "No proposals waiting for review", msgs[0].Text)
	})

	t.Run("unknown", func(t *testing.T) {
		bot, sender, _ := newTestBot(&fakeModerator{})

		bot.handleUpdate(ctx, commandUpdate("anyone", "/dance"))
		msgs := sender.messages()
		require.Len(t, msgs, 1)
		assert.Equal(t, "I don't know this command", msgs[0].Text)
	})
}

func TestReviewsDisabledWithoutAdmin(t *testing.T) {
	p := reviewedProposal()
	moderator := &fakeModerator{pending: []domain.ProposalWithOrganizer{{Proposal: p}}}
	bot, sender, _ := newTestBot(moderator)
	bot.adminID = uuid.Nil

	bot.NotifyProposal(context.Background(), p)
	bot.handleUpdate(context.Background(), commandUpdate("boss", "/pending"))

	msgs := sender.messages()
	require.Len(t, msgs, 3)
	for _, m := range msgs {
		assert.Nil(t, m.ReplyMarkup)
	}

	bot.handleUpdate(context.Background(), callbackUpdate("boss", "approve_"+p.ID.String()))

	assert.Empty(t, moderator.decisions)
	assert.Contains(t, sender.alerts(), "⚠️ Reviews from Telegram are disabled, use the web console")
}
