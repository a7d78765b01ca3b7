package service

import (
	"context"
	"log/slog"

	"github.com/m3rciful/greetbot/bot/dialog"
	"github.com/m3rciful/greetbot/bot/storage"
	"github.com/m3rciful/greetbot/core/logger"
	"github.com/m3rciful/greetbot/core/telegram/format"
)

// Users is the directory of registered identities, backed by the users
// repository. It implements dialog.Directory.
type Users struct {
	repo *storage.UserRepo
}

// NewUsers constructs the user directory service.
func NewUsers(repo *storage.UserRepo) *Users {
	return &Users{repo: repo}
}

// Register upserts the sender; registered_at is preserved across repeated
// registrations. Reports whether this was a first-time registration.
func (s *Users) Register(ctx context.Context, sender dialog.Sender) (bool, error) {
	u := storage.User{ID: sender.ID, FirstName: sender.DisplayName}
	if sender.Handle != "" {
		handle := sender.Handle
		u.Username = &handle
	}

	created, err := s.repo.Upsert(ctx, u)
	if err != nil {
		logger.Error(ctx, "service.users", "register.fail",
			slog.Int64("user_id", sender.ID),
			slog.String("err", err.Error()),
		)
		return false, err
	}
	logger.Debug(ctx, "service.users", "register.ok",
		slog.String("status", "ok"),
		slog.Int64("user_id", sender.ID),
		slog.String("username", logger.SanitizeLimit(format.DerefString(u.Username, ""), 64)),
		slog.Bool("created", created),
	)
	return created, nil
}

// ResolveHandle looks up the id registered under the handle.
func (s *Users) ResolveHandle(ctx context.Context, handle string) (int64, bool, error) {
	id, found, err := s.repo.ResolveHandle(ctx, handle)
	if err != nil {
		logger.Error(ctx, "service.users", "resolve.fail",
			slog.String("username", logger.SanitizeLimit(handle, 64)),
			slog.String("err", err.Error()),
		)
		return 0, false, err
	}
	status := "ok"
	if !found {
		status = "skip"
	}
	logger.Debug(ctx, "service.users", "resolve",
		slog.String("status", status),
		slog.String("username", logger.SanitizeLimit(handle, 64)),
	)
	return id, found, nil
}

// Count returns the number of registered users.
func (s *Users) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
