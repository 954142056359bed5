package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/praneeshadilushi-max/qr-code-generator-bot/internal/domain"
	"github.com/praneeshadilushi-max/qr-code-generator-bot/internal/qr"
	"github.com/praneeshadilushi-max/qr-code-generator-bot/internal/ratelimit"
)

// captionLen bounds the text echoed back in the photo caption.
const captionLen = 200

// --- Core commands ---

func (r *Router) handleStart(msg *tgbotapi.Message) {
	r.sendWithKeyboard(msg.Chat.ID, startText, mainMenuKeyboard())
}

func (r *Router) handleMenu(msg *tgbotapi.Message) {
	r.sendWithKeyboard(msg.Chat.ID, menuText, mainMenuKeyboard())
}

func (r *Router) handleGenerate(msg *tgbotapi.Message) {
	r.setActive(msg.From.ID, true)
	r.reply(msg, generateStartText)
}

func (r *Router) handleStop(msg *tgbotapi.Message) {
	if !r.isActive(msg.From.ID) {
		r.reply(msg, notGeneratingText)
		return
	}
	r.setActive(msg.From.ID, false)
	r.reply(msg, stopText)
}

// handleBack leaves generation mode and returns to the main menu.
func (r *Router) handleBack(msg *tgbotapi.Message) {
	r.setActive(msg.From.ID, false)
	r.handleMenu(msg)
}

func (r *Router) handleHistory(ctx context.Context, msg *tgbotapi.Message) {
	count := r.limiter.TodayCount(ctx, msg.From.ID)
	r.reply(msg, fmt.Sprintf(historyCountFmt, count, r.limiter.DailyLimit()))
}

// --- Generation flow ---

// handleFreeText is the terminal route: text that matched no command or
// menu label. Outside generation mode it only prompts; inside it runs
// moderation, both rate-limit gates, the encoder and the history append.
func (r *Router) handleFreeText(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	text := msg.Text

	if !r.isActive(userID) {
		r.reply(msg, promptStartText)
		return
	}

	if blocked, reason := r.filter.Classify(text); blocked {
		if !r.isAdmin(userID) {
			r.alertAdmin(userID, displayName(msg.From), string(reason), text)
		}
		r.reply(msg, rejectionText)
		return
	}

	decision := r.limiter.Check(ctx, userID)
	if !decision.Allowed {
		switch decision.Reason {
		case ratelimit.ReasonCooldown:
			remain := int(decision.RetryAfter.Seconds())
			r.replyWithKeyboard(msg, fmt.Sprintf(cooldownWaitFmt, remain), whyLimitKeyboard("cooldown"))
		default:
			r.replyWithKeyboard(msg, fmt.Sprintf(dailyLimitFmt, r.limiter.DailyLimit()), whyLimitKeyboard("daily"))
		}
		return
	}

	if err := r.limiter.Record(ctx, userID); err != nil {
		// Fail closed: without a recorded increment the grant does not stand.
		r.log.Warn("quota increment failed", zap.Int64("userID", userID), zap.Error(err))
		r.reply(msg, storeFailedText)
		return
	}

	png, err := qr.Encode(text)
	if err != nil {
		r.log.Error("qr encode failed", zap.Int64("userID", userID), zap.Error(err))
		r.reply(msg, encodeFailedText)
		return
	}

	status, statusErr := r.bot.Send(tgbotapi.NewMessage(msg.Chat.ID, generatingText))

	photo := tgbotapi.NewPhoto(msg.Chat.ID, tgbotapi.FileBytes{Name: "qrcode.png", Bytes: png})
	caption := text
	if c := domain.TruncateContent(text, captionLen); c != text {
		caption = c + "..."
	}
	photo.Caption = fmt.Sprintf(qrCaptionFmt, caption)
	if _, err := r.bot.Send(photo); err != nil {
		r.log.Error("send photo failed", zap.Int64("chatID", msg.Chat.ID), zap.Error(err))
	}

	if statusErr == nil {
		_, _ = r.bot.Request(tgbotapi.NewDeleteMessage(msg.Chat.ID, status.MessageID))
	}

	// History is best-effort: a storage failure never blocks the user flow.
	if err := r.repo.AppendHistory(ctx, userID, displayName(msg.From), text); err != nil {
		r.log.Warn("history append failed", zap.Int64("userID", userID), zap.Error(err))
	}

	go r.runCountdown(msg.Chat.ID)
}

func (r *Router) replyWithKeyboard(msg *tgbotapi.Message, text string, kb tgbotapi.InlineKeyboardMarkup) {
	out := tgbotapi.NewMessage(msg.Chat.ID, text)
	out.ReplyToMessageID = msg.MessageID
	out.ReplyMarkup = kb
	_, _ = r.bot.Send(out)
}

// alertAdmin notifies the admin channel about a blocked attempt.
func (r *Router) alertAdmin(userID int64, name, reason, text string) {
	if r.adminID == 0 {
		return
	}
	r.sendText(r.adminID, fmt.Sprintf(alertFmt, userID, name, reason,
		domain.TruncateContent(text, domain.MaxContentLen)))
}

func (r *Router) handleWhyCallback(cb *tgbotapi.CallbackQuery) {
	r.answerCallback(cb.ID, "")
	if cb.Message == nil {
		return
	}
	switch cb.Data {
	case "why:cooldown":
		r.sendText(cb.Message.Chat.ID, fmt.Sprintf(whyCooldownFmt, r.limiter.CooldownSeconds()))
	case "why:daily":
		r.sendText(cb.Message.Chat.ID, fmt.Sprintf(whyDailyFmt, r.limiter.DailyLimit()))
	}
}

func displayName(u *tgbotapi.User) string {
	if u.UserName != "" {
		return u.UserName
	}
	return u.FirstName
}
