// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/naka-gawa/github-activity/internal/domain"
	"github.com/naka-gawa/github-activity/internal/gateway"
)

// Reporter is the use case for summarizing a user's recent activity.
// It fetches the event feed and collapses every fetch failure into an empty feed.
type Reporter struct {
	fetcher gateway.Fetcher
	logger  *zap.Logger
}

// NewReporter creates a new Reporter instance.
func NewReporter(fetcher gateway.Fetcher, logger *zap.Logger) *Reporter {
	return &Reporter{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Events returns the user's events in feed order, or nil if they could not be fetched.
// The failure is logged with its cause; callers cannot tell it apart from an empty feed.
func (r *Reporter) Events(ctx context.Context, username string) []domain.Event {
	events, err := r.fetcher.FetchEvents(ctx, username)
	if err != nil {
		fields := []zap.Field{zap.String("user", username), zap.Error(err)}
		var fetchErr *gateway.FetchError
		if errors.As(err, &fetchErr) {
			fields = append(fields, zap.Stringer("kind", fetchErr.Kind))
			if fetchErr.StatusCode != 0 {
				fields = append(fields, zap.Int("status", fetchErr.StatusCode))
			}
		}
		r.logger.Error("failed to fetch activity", fields...)
		return nil
	}
	r.logger.Debug("fetched activity", zap.String("user", username), zap.Int("events", len(events)))
	return events
}

// Lines fetches the feed and renders it as text lines.
func (r *Reporter) Lines(ctx context.Context, username string) []string {
	return Lines(r.Events(ctx, username))
}

// Activities fetches the feed and renders it as structured records.
func (r *Reporter) Activities(ctx context.Context, username string) []domain.Activity {
	return Render(r.Events(ctx, username))
}
