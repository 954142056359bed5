package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/praneeshadilushi-max/qr-code-generator-bot/internal/domain"
)

var errInvalidPurge = errors.New("invalid purge command")

// parsePurgeCommand maps "/adminhistory_clean" to a full purge and
// "/adminhistory_clean_NN" to a percentage purge. Only the percentages the
// bot advertises are accepted.
func parsePurgeCommand(text string) (percent int, all bool, err error) {
	if text == "/adminhistory_clean" {
		return 0, true, nil
	}
	rest, ok := strings.CutPrefix(text, "/adminhistory_clean_")
	if !ok {
		return 0, false, errInvalidPurge
	}
	p, err := strconv.Atoi(strings.TrimSuffix(rest, "%"))
	if err != nil {
		return 0, false, errInvalidPurge
	}
	switch p {
	case 25, 50, 75, 90:
		return p, false, nil
	}
	return 0, false, errInvalidPurge
}

// renderSummary builds the per-user daily report for /adminhistory.
func renderSummary(now time.Time, counts []domain.UserCount) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 User QR summary for %s\n\n", domain.Today(now))
	for _, c := range counts {
		name := "no username"
		if c.Username != "" {
			name = "@" + c.Username
		}
		fmt.Fprintf(&b, "👤 %s | 🆔 %d\nQR codes: %d\n\n", name, c.UserID, c.Count)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *Router) handleAdminHistory(ctx context.Context, msg *tgbotapi.Message) {
	if !r.isAdmin(msg.From.ID) {
		r.reply(msg, notAdminText)
		return
	}

	recs, err := r.repo.TodayHistory(ctx)
	if err != nil {
		r.log.Error("today history read failed", zap.Error(err))
		r.sendText(msg.Chat.ID, historyReadFailText)
		return
	}
	if len(recs) == 0 {
		r.sendText(msg.Chat.ID, noHistoryTodayText)
		return
	}
	r.sendText(msg.Chat.ID, renderSummary(time.Now(), domain.SummarizeByUser(recs)))
}

// handleAdminPurge asks for inline confirmation; nothing is deleted until
// the confirm callback arrives.
func (r *Router) handleAdminPurge(msg *tgbotapi.Message, text string) {
	if !r.isAdmin(msg.From.ID) {
		r.reply(msg, notAdminText)
		return
	}

	percent, all, err := parsePurgeCommand(text)
	if err != nil {
		r.reply(msg, invalidPurgeText)
		return
	}

	if all {
		r.sendWithKeyboard(msg.Chat.ID, purgeAllPromptText, purgeConfirmKeyboard("all"))
		return
	}
	r.sendWithKeyboard(msg.Chat.ID,
		fmt.Sprintf(purgePercentPromptFmt, percent),
		purgeConfirmKeyboard(strconv.Itoa(percent)))
}

func (r *Router) handlePurgeCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// Re-check authorization: callback buttons can be pressed by anyone
	// who sees the message.
	if !r.isAdmin(cb.From.ID) {
		r.answerCallback(cb.ID, notAuthorizedText)
		return
	}
	r.answerCallback(cb.ID, "")
	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID

	target := strings.TrimPrefix(cb.Data, "purge:")
	switch target {
	case "cancel":
		r.editText(chatID, messageID, purgeCancelledText)

	case "all":
		if err := r.repo.PurgeAllHistory(ctx); err != nil {
			r.log.Error("purge all failed", zap.Error(err))
			r.editText(chatID, messageID, purgeFailedText)
			return
		}
		r.editText(chatID, messageID, purgeAllDoneText)

	default:
		percent, err := strconv.Atoi(target)
		if err != nil {
			r.editText(chatID, messageID, purgeFailedText)
			return
		}
		r.editText(chatID, messageID, fmt.Sprintf(purgeRunningFmt, percent))
		deleted, err := r.repo.PurgeOldestPercent(ctx, percent)
		if err != nil {
			r.log.Error("purge percent failed", zap.Int("percent", percent), zap.Error(err))
			r.editText(chatID, messageID, purgeFailedText)
			return
		}
		r.editText(chatID, messageID, fmt.Sprintf(purgePercentDoneFmt, percent, deleted))
	}
}
