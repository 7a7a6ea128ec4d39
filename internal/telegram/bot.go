package telegramBot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"campusEvents/internal/config"
	"campusEvents/internal/models/domain"
	"campusEvents/internal/utils/logger/sl"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
)

// Moderator применяет решения администратора, пришедшие из Telegram.
type Moderator interface {
	UpdateStatus(ctx context.Context, actor, proposalID uuid.UUID, status domain.ProposalStatus, comments string) (domain.Proposal, error)
	PendingProposals(ctx context.Context) ([]domain.ProposalWithOrganizer, error)
}

// ModelSwitcher даёт доступ к модели генерации для /getmodel и /setmodel.
type ModelSwitcher interface {
	Model() string
	SetModel(name string)
}

// sender — часть Bot API, которую используют хендлеры.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot публикует карточки предложений в каналы модерации и обрабатывает
// команды администраторов. Без токена все методы ничего не делают.
type Bot struct {
	log       *slog.Logger
	cfg       *config.Config
	api       *tgbotapi.BotAPI
	tgbot     sender
	moderator Moderator
	models    ModelSwitcher
	adminID   uuid.UUID
	persist   func() error

	shutdownChannel chan struct{}
	shutdownOnce    sync.Once
	wg              sync.WaitGroup
}

// New подключается к Bot API. Без токена или при ошибке подключения бот
// выключен. С пустым adminID карточки уходят без кнопок Approve/Reject.
func New(log *slog.Logger, cfg *config.Config, moderator Moderator, models ModelSwitcher, adminID uuid.UUID) *Bot {
	op := "bot.New()"
	l := log.With(slog.String("op", op))

	bot := &Bot{
		log:             log,
		cfg:             cfg,
		moderator:       moderator,
		models:          models,
		adminID:         adminID,
		persist:         cfg.Write,
		shutdownChannel: make(chan struct{}),
	}

	if cfg.BotConfig.TgbotApiToken == "" {
		l.Warn("telegram token is empty, bot disabled")
		return bot
	}
	if adminID == uuid.Nil {
		l.Warn("no admin profile to act as, proposal reviews from telegram are disabled")
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotConfig.TgbotApiToken)
	if err != nil {
		l.Error("failed to connect to telegram, bot disabled", sl.Err(err))
		return bot
	}

	bot.api = api
	bot.tgbot = api
	l.Info("authorized on telegram", slog.String("account", api.Self.UserName))
	return bot
}

// Enabled сообщает, подключён ли бот к Bot API.
func (bot *Bot) Enabled() bool {
	return bot.tgbot != nil
}

// canReview сообщает, можно ли записывать решения от имени администратора.
func (bot *Bot) canReview() bool {
	return bot.adminID != uuid.Nil
}

// Start получает апдейты до вызова Shutdown. timeout — таймаут long polling
// в секундах.
func (bot *Bot) Start(timeout int) {
	op := "bot.Start()"
	log := bot.log.With(slog.String("op", op))

	if bot.api == nil {
		return
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeout
	updates := bot.api.GetUpdatesChan(u)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Info("telegram bot started")

	for {
		select {
		case <-bot.shutdownChannel:
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			bot.wg.Add(1)
			go func() {
				defer bot.wg.Done()
				bot.handleUpdate(ctx, &update)
			}()
		}
	}
}

// handleUpdate направляет апдейт в обработчик команд или callback-кнопок.
func (bot *Bot) handleUpdate(ctx context.Context, update *tgbotapi.Update) {
	op := "bot.handleUpdate()"
	log := bot.log.With(slog.String("op", op))

	switch {
	case update.CallbackQuery != nil:
		bot.handleCallbackQuery(ctx, update)
	case update.Message != nil && update.Message.IsCommand():
		if err := bot.commandHandler(ctx, update, bot.sendReplyMessage); err != nil {
			log.Error("command failed", slog.String("command", update.Message.Command()), sl.Err(err))
		}
	}
}

// Shutdown корректно завершает работу бота.
func (bot *Bot) Shutdown(ctx context.Context) error {
	op := "bot.Shutdown()"

	bot.shutdownOnce.Do(func() {
		close(bot.shutdownChannel)
		if bot.api != nil {
			bot.api.StopReceivingUpdates()
		}
	})

	done := make(chan struct{})
	go func() {
		bot.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	}
}

// isAdmin проверяет, что автор сообщения — администратор бота.
func (bot *Bot) isAdmin(msg *tgbotapi.Message) (bool, error) {
	if msg == nil || msg.From == nil {
		return false, errors.New("message has no sender")
	}
	return bot.isAdminUser(msg.From), nil
}

// isAdminUser сверяет username с BotConfig.Admins.
func (bot *Bot) isAdminUser(user *tgbotapi.User) bool {
	return user != nil && user.UserName != "" && slices.Contains(bot.cfg.BotConfig.Admins, user.UserName)
}

// sendReplyMessage отвечает на сообщение в том же чате.
func (bot *Bot) sendReplyMessage(inputMsg *tgbotapi.Message, replyText string) error {
	msg := tgbotapi.NewMessage(inputMsg.Chat.ID, replyText)
	msg.ReplyToMessageID = inputMsg.MessageID

	if _, err := bot.tgbot.Send(msg); err != nil {
		return fmt.Errorf("bot.sendReplyMessage(): %w", err)
	}
	return nil
}

// NotifyProposal отправляет карточку предложения во все каналы модерации.
// Нерассмотренные предложения получают кнопки Approve/Reject.
func (bot *Bot) NotifyProposal(ctx context.Context, p domain.Proposal) {
	op := "bot.NotifyProposal()"
	log := bot.log.With(slog.String("op", op), slog.String("proposal", p.ID.String()))

	if !bot.Enabled() {
		return
	}

	text := formatProposalMessage(domain.ProposalWithOrganizer{Proposal: p})
	for _, channelID := range bot.cfg.BotConfig.ChannelIDs {
		if ctx.Err() != nil {
			return
		}

		msg := tgbotapi.NewMessage(channelID, text)
		msg.ParseMode = tgbotapi.ModeHTML
		if p.CanDecide() && bot.canReview() {
			msg.ReplyMarkup = createApprovalKeyboard(p.ID.String())
		}

		if _, err := bot.tgbot.Send(msg); err != nil {
			log.Error("failed to send proposal to channel", slog.Int64("channelID", channelID), sl.Err(err))
			continue
		}
		log.Debug("proposal sent to channel", slog.Int64("channelID", channelID))
	}
}
