package telegramBot

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"campusEvents/internal/models/domain"
	"campusEvents/internal/utils/logger/sl"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
)

const (
	approvePrefix = "approve_"
	rejectPrefix  = "reject_"

	decisionTimeout = 10 * time.Second
	summaryExcerpt  = 600
)

// sendFunction отправляет текстовый ответ на сообщение.
type sendFunction func(inputMsg *tgbotapi.Message, replyText string) error

// commandHandler обрабатывает команды /start, /pending, /getmodel и /setmodel.
func (bot *Bot) commandHandler(ctx context.Context, update *tgbotapi.Update, sendFunc sendFunction) error {
	op := "bot.commandHandler()"
	log := bot.log.With(
		slog.String("op", op),
	)

	msg := update.Message

	switch msg.Command() {
	case "start":
		name := "there"
		if msg.From != nil && msg.From.UserName != "" {
			name = msg.From.UserName
		}
		replyText := fmt.Sprintf("Hi, %s! I post new event proposals for review. Send /pending to see the queue.", name)
		if err := sendFunc(msg, replyText); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

	case "pending":
		isAdmin, err := bot.isAdmin(msg)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		log.Debug("pending",
			slog.String("user name", msg.From.UserName),
			slog.String("is admin", strconv.FormatBool(isAdmin)),
		)
		if !isAdmin {
			return nil
		}

		proposals, err := bot.moderator.PendingProposals(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if len(proposals) == 0 {
			if err := sendFunc(msg, "No proposals waiting for review"); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
			return nil
		}

		for _, p := range proposals {
			card := tgbotapi.NewMessage(msg.Chat.ID, formatProposalMessage(p))
			card.ParseMode = tgbotapi.ModeHTML
			if bot.canReview() {
				card.ReplyMarkup = createApprovalKeyboard(p.ID.String())
			}
			if _, err := bot.tgbot.Send(card); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
		}

	case "setmodel":
		isAdmin, err := bot.isAdmin(msg)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		log.Debug("setmodel",
			slog.String("user name", msg.From.UserName),
			slog.String("message", msg.Text),
			slog.String("is admin", strconv.FormatBool(isAdmin)),
		)
		if !isAdmin {
			return nil
		}

		model := strings.TrimSpace(msg.CommandArguments())
		if model == "" {
			if err := sendFunc(msg, "Usage: /setmodel <provider/model>"); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
			return nil
		}

		bot.models.SetModel(model)
		bot.cfg.AI.ModelName = model

		replyText := "👍 Model changed 👍"
		if err := bot.persist(); err != nil {
			log.Error("model changed but config not saved", sl.Err(err))
			replyText = "Model changed, but the config file was not updated"
		}
		log.Info("model changed", slog.String("model", model), slog.String("user", msg.From.UserName))

		if err := sendFunc(msg, replyText); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

	case "getmodel":
		isAdmin, err := bot.isAdmin(msg)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if !isAdmin {
			return nil
		}

		if err := sendFunc(msg, bot.models.Model()); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

	default:
		if err := sendFunc(msg, "I don't know this command"); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil
}

// handleCallbackQuery обрабатывает нажатия кнопок Approve/Reject.
func (bot *Bot) handleCallbackQuery(ctx context.Context, update *tgbotapi.Update) {
	op := "bot.handleCallbackQuery()"
	log := bot.log.With(
		slog.String("op", op),
	)

	callback := update.CallbackQuery
	if callback == nil {
		log.Error("callback query is nil")
		return
	}

	// отвечаем сразу, чтобы остановить спиннер на кнопке
	if _, err := bot.tgbot.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		log.Error("failed to send callback response", sl.Err(err))
	}

	if !bot.isAdminUser(callback.From) {
		log.Warn("decision from non-admin ignored")
		bot.sendCallbackResponse(callback, "⛔ Only admins can review proposals")
		return
	}

	if after, ok := strings.CutPrefix(callback.Data, approvePrefix); ok {
		bot.handleDecision(ctx, callback, after, domain.ProposalStatusApproved)
		return
	}
	if after, ok := strings.CutPrefix(callback.Data, rejectPrefix); ok {
		bot.handleDecision(ctx, callback, after, domain.ProposalStatusRejected)
		return
	}

	log.Warn("unknown callback data", slog.String("data", callback.Data))
}

// handleDecision записывает решение от имени bootstrap-администратора.
func (bot *Bot) handleDecision(ctx context.Context, callback *tgbotapi.CallbackQuery, rawID string, status domain.ProposalStatus) {
	op := "bot.handleDecision()"
	log := bot.log.With(
		slog.String("op", op),
		slog.String("proposal", rawID),
		slog.String("status", string(status)),
	)

	if !bot.canReview() {
		log.Warn("decision ignored, no admin profile configured")
		bot.sendCallbackResponse(callback, "⚠️ Reviews from Telegram are disabled, use the web console")
		bot.removeApprovalKeyboard(callback)
		return
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		log.Error("failed to parse proposal ID", sl.Err(err))
		bot.sendCallbackResponse(callback, "❌ Unknown proposal")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, decisionTimeout)
	defer cancel()

	comments := "Reviewed via Telegram by @" + callback.From.UserName
	_, err = bot.moderator.UpdateStatus(ctx, bot.adminID, id, status, comments)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrInvalidState):
		bot.sendCallbackResponse(callback, "ℹ️ Proposal was already reviewed")
		bot.removeApprovalKeyboard(callback)
		return
	default:
		log.Error("failed to record decision", sl.Err(err))
		bot.sendCallbackResponse(callback, "❌ Failed to record the decision")
		return
	}

	log.Info("proposal decided", slog.String("user", callback.From.UserName))
	if status == domain.ProposalStatusApproved {
		bot.sendCallbackResponse(callback, "✅ Proposal approved")
	} else {
		bot.sendCallbackResponse(callback, "❌ Proposal rejected")
	}
	bot.removeApprovalKeyboard(callback)
}

// formatProposalMessage форматирует предложение в HTML-текст для Telegram.
func formatProposalMessage(p domain.ProposalWithOrganizer) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "<b>%s</b>\n", html.EscapeString(p.Title))
	fmt.Fprintf(&sb, "🏷 %s\n\n", html.EscapeString(p.Category))

	if p.OrganizerName != "" {
		fmt.Fprintf(&sb, "👤 <b>Organizer:</b> %s\n", html.EscapeString(p.OrganizerName))
	}
	fmt.Fprintf(&sb, "👥 <b>Expected attendees:</b> %d\n", p.ExpectedAttendees)
	fmt.Fprintf(&sb, "📅 <b>Date:</b> %s (%dh)\n", p.PreferredDate.Format("02.01.2006 15:04"), p.DurationHours)

	if p.HallAvailability != nil && p.HallAvailability.RecommendedHall != nil {
		rec := p.HallAvailability.RecommendedHall
		fmt.Fprintf(&sb, "🏛 <b>Recommended hall:</b> %s (%d%% match)\n", html.EscapeString(rec.SelectedHall), rec.MatchScore)
	}

	fmt.Fprintf(&sb, "⚙️ <b>Workflow:</b> %s\n", p.WorkflowStatus)
	if p.WorkflowError != "" {
		fmt.Fprintf(&sb, "⚠️ %s\n", html.EscapeString(p.WorkflowError))
	}

	if p.AISummary != nil && p.AISummary.Summary != "" {
		fmt.Fprintf(&sb, "\n%s\n", html.EscapeString(excerpt(p.AISummary.Summary, summaryExcerpt)))
	}

	return sb.String()
}

// excerpt обрезает s до n рун.
func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

// createApprovalKeyboard создаёт inline keyboard для модерации предложения.
func createApprovalKeyboard(proposalID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Approve", approvePrefix+proposalID),
			tgbotapi.NewInlineKeyboardButtonData("❌ Reject", rejectPrefix+proposalID),
		),
	)
}

// sendCallbackResponse отправляет всплывающее уведомление в ответ на callback.
func (bot *Bot) sendCallbackResponse(callback *tgbotapi.CallbackQuery, text string) {
	callbackConfig := tgbotapi.NewCallback(callback.ID, text)
	callbackConfig.ShowAlert = true
	_, _ = bot.tgbot.Request(callbackConfig)
}

// removeApprovalKeyboard удаляет inline keyboard из сообщения после модерации.
func (bot *Bot) removeApprovalKeyboard(callback *tgbotapi.CallbackQuery) {
	if callback.Message == nil {
		return
	}

	editMsg := tgbotapi.NewEditMessageReplyMarkup(
		callback.Message.Chat.ID,
		callback.Message.MessageID,
		tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}},
	)
	_, _ = bot.tgbot.Send(editMsg)
}
