package simplefeeds

import (
	"context"
	"log/slog"
)

// NoopPublisher is a no-operation implementation of Publisher.
// Useful when no downstream subscribers exist or for testing.
type NoopPublisher struct{}

// NewNoopPublisher creates a new no-operation publisher
func NewNoopPublisher() Publisher {
	return &NoopPublisher{}
}

// Publish does nothing and returns nil
func (n *NoopPublisher) Publish(ctx context.Context, _ Notification) error {
	return nil
}

// LoggingPublisher logs notifications but takes no other action.
// Useful for development and debugging.
type LoggingPublisher struct {
	logger *slog.Logger
}

// NewLoggingPublisher creates a publisher that logs each notification
func NewLoggingPublisher(logger *slog.Logger) Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingPublisher{logger: logger}
}

// Publish logs the notification and returns nil
func (l *LoggingPublisher) Publish(ctx context.Context, n Notification) error {
	l.logger.Info("Feed notification", "feed_id", n.FeedID, "user_id", n.UserID, "message", n.Message)
	return nil
}
