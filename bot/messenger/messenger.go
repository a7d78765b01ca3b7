// Package messenger adapts the Telegram transport to the dialog.Messenger
// capability: one bounded delivery attempt per greeting, no retries.
package messenger

import (
	"context"
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/greetbot/bot/dialog"
	"github.com/m3rciful/greetbot/core/logger"
)

// Telegram delivers greetings through a live bot instance. The attempt is
// bounded by the bot's HTTP client timeout; any failure is converted into a
// single DeliveryError kind regardless of the transport-level cause.
type Telegram struct {
	bot *tele.Bot
}

// NewTelegram wraps the bot as a dialog.Messenger.
func NewTelegram(bot *tele.Bot) *Telegram {
	return &Telegram{bot: bot}
}

// Send delivers the text to the recipient by id. Fails when the recipient
// never initialized contact with the bot or blocked it.
func (m *Telegram) Send(ctx context.Context, recipientID int64, text string) error {
	_, err := m.bot.Send(&tele.User{ID: recipientID}, text, &tele.SendOptions{ParseMode: tele.ModeMarkdown})
	if err != nil {
		logger.Warn(ctx, "tg", "deliver.send.fail",
			slog.Int64("recipient_id", recipientID),
			slog.String("err", err.Error()),
		)
		return &dialog.DeliveryError{RecipientID: recipientID, Err: err}
	}
	return nil
}
