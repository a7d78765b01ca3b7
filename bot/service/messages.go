package service

import (
	"context"
	"log/slog"

	"github.com/m3rciful/greetbot/bot/storage"
	"github.com/m3rciful/greetbot/core/logger"
)

// Messages is the append-only ledger of delivered greetings, backed by the
// messages repository. It implements dialog.Ledger.
type Messages struct {
	repo *storage.MessageRepo
}

// NewMessages constructs the message ledger service.
func NewMessages(repo *storage.MessageRepo) *Messages {
	return &Messages{repo: repo}
}

// Record appends one delivered greeting. Called exactly once per successful
// delivery.
func (s *Messages) Record(ctx context.Context, senderID, recipientID int64, text string, anonymous bool) error {
	id, err := s.repo.Record(ctx, senderID, recipientID, text, anonymous)
	if err != nil {
		logger.Error(ctx, "service.messages", "record.fail",
			slog.Int64("sender_id", senderID),
			slog.Int64("recipient_id", recipientID),
			slog.String("err", err.Error()),
		)
		return err
	}
	logger.Info(ctx, "service.messages", "record.ok",
		slog.String("status", "ok"),
		slog.Int64("message_id", id),
		slog.Int64("sender_id", senderID),
		slog.Int64("recipient_id", recipientID),
		slog.Bool("anonymous", anonymous),
	)
	return nil
}

// Count returns the number of delivered greetings.
func (s *Messages) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
