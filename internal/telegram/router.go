package telegram

import (
	"context"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/praneeshadilushi-max/qr-code-generator-bot/internal/moderation"
	"github.com/praneeshadilushi-max/qr-code-generator-bot/internal/ratelimit"
	"github.com/praneeshadilushi-max/qr-code-generator-bot/internal/store"
)

// Router wires Telegram updates to handlers. It owns the set of users
// currently in QR generation mode; the cooldown clock lives in the limiter.
type Router struct {
	bot     *tgbotapi.BotAPI
	log     *zap.Logger
	repo    store.Repo
	limiter *ratelimit.Limiter
	filter  *moderation.Filter
	adminID int64

	mu     sync.RWMutex
	active map[int64]struct{} // userID -> in generation mode
}

// NewRouter creates a new Telegram router.
func NewRouter(bot *tgbotapi.BotAPI, log *zap.Logger, repo store.Repo, limiter *ratelimit.Limiter, filter *moderation.Filter, adminID int64) *Router {
	return &Router{
		bot:     bot,
		log:     log,
		repo:    repo,
		limiter: limiter,
		filter:  filter,
		adminID: adminID,
		active:  make(map[int64]struct{}),
	}
}

// setActive toggles a user's generation mode (non-persistent, in-memory).
func (r *Router) setActive(userID int64, on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if on {
		r.active[userID] = struct{}{}
	} else {
		delete(r.active, userID)
	}
}

// isActive reports whether a user is in generation mode.
func (r *Router) isActive(userID int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.active[userID]
	return ok
}

func (r *Router) isAdmin(userID int64) bool {
	return r.adminID != 0 && userID == r.adminID
}

// HandleUpdate routes a single update to the appropriate handler.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message != nil && upd.Message.From != nil {
		msg := upd.Message
		text := strings.TrimSpace(msg.Text)

		switch {
		case strings.HasPrefix(text, "/start"):
			r.handleStart(msg)
		case text == "/menu":
			r.handleMenu(msg)
		case text == "/generate", text == btnGenerate:
			r.handleGenerate(msg)
		case text == "/stop":
			r.handleStop(msg)
		case text == "/history", text == btnHistory:
			r.handleHistory(ctx, msg)
		case text == "/about", text == btnAbout:
			r.sendWithKeyboard(msg.Chat.ID, aboutText(r.limiter.CooldownSeconds(), r.limiter.DailyLimit()), backButtonKeyboard())
		case text == "/privacy", text == btnPrivacy:
			r.sendWithKeyboard(msg.Chat.ID, privacyText(r.limiter.CooldownSeconds(), r.limiter.DailyLimit()), backButtonKeyboard())
		case text == "/contact", text == btnContact:
			r.sendWithKeyboard(msg.Chat.ID, contactText, backButtonKeyboard())
		case text == "/help", text == btnHelp:
			r.sendWithKeyboard(msg.Chat.ID, helpText, backButtonKeyboard())
		case text == "/download":
			r.sendWithKeyboard(msg.Chat.ID, downloadText, backButtonKeyboard())
		case text == btnBack:
			r.handleBack(msg)
		case text == "/adminhistory":
			r.handleAdminHistory(ctx, msg)
		case strings.HasPrefix(text, "/adminhistory_clean"):
			r.handleAdminPurge(msg, text)
		default:
			r.handleFreeText(ctx, msg)
		}
		return
	}

	if upd.CallbackQuery != nil {
		cb := upd.CallbackQuery
		switch {
		case strings.HasPrefix(cb.Data, "purge:"):
			r.handlePurgeCallback(ctx, cb)
		case strings.HasPrefix(cb.Data, "why:"):
			r.handleWhyCallback(cb)
		default:
			// Unknown callback — ignore silently
		}
	}
}

// --- Generic helpers ---

func (r *Router) sendText(chatID int64, text string) {
	_, _ = r.bot.Send(tgbotapi.NewMessage(chatID, text))
}

func (r *Router) sendWithKeyboard(chatID int64, text string, kb interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	_, _ = r.bot.Send(msg)
}

func (r *Router) reply(msg *tgbotapi.Message, text string) {
	out := tgbotapi.NewMessage(msg.Chat.ID, text)
	out.ReplyToMessageID = msg.MessageID
	_, _ = r.bot.Send(out)
}

func (r *Router) answerCallback(id, text string) {
	_, _ = r.bot.Request(tgbotapi.NewCallback(id, text))
}

func (r *Router) editText(chatID int64, messageID int, text string) {
	_, _ = r.bot.Send(tgbotapi.NewEditMessageText(chatID, messageID, text))
}
