package telegram

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// runCountdown posts a live cooldown counter and edits it once per second
// until the window elapses. It runs detached, holds nothing but the chat and
// message IDs, and stops quietly on any transport error — the user may have
// deleted the message, and a stale countdown is not worth a retry.
func (r *Router) runCountdown(chatID int64) {
	secs := r.limiter.CooldownSeconds()
	msg, err := r.bot.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf(countdownFmt, secs)))
	if err != nil {
		return
	}

	for i := secs - 1; i > 0; i-- {
		time.Sleep(time.Second)
		if _, err := r.bot.Send(tgbotapi.NewEditMessageText(chatID, msg.MessageID, fmt.Sprintf(countdownFmt, i))); err != nil {
			return
		}
	}
	time.Sleep(time.Second)

	_, _ = r.bot.Send(tgbotapi.NewEditMessageText(chatID, msg.MessageID, countdownDoneText))
}
