// Package notify sends admin notifications for new submissions.
package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// Telegram posts submission notices to a staff chat. A nil *Telegram
// is a no-op, so the feature stays optional.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegram connects the bot. Returns nil when no token is
// configured.
func NewTelegram(botToken string, chatID int64) (*Telegram, error) {
	if botToken == "" || chatID == 0 {
		return nil, nil
	}

	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("connect telegram bot: %w", err)
	}

	return &Telegram{bot: bot, chatID: chatID}, nil
}

// SubmissionReceived announces a stored status update. Failures are
// logged, never surfaced to the submitting caller.
func (t *Telegram) SubmissionReceived(leaderLabel, tokenCode string) {
	if t == nil {
		return
	}

	text := fmt.Sprintf("New status update from %s", leaderLabel)
	if tokenCode != "" {
		text += fmt.Sprintf(" (token %s)", tokenCode)
	}

	if _, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, text)); err != nil {
		log.Warn().Err(err).Msg("send telegram notification")
	}
}
