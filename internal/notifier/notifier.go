// Package notifier turns reconciliation events into user-visible
// notifications and webhook deliveries.
package notifier

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Notification describes a local user-facing notification.
type Notification struct {
	ID      string
	Title   string
	Message string
	Actions []string
}

// Notifier shows local notifications. Failures are logged by callers and
// never abort a poll cycle.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// LogNotifier writes notification intents to the log. It stands in for a
// real desktop/push channel during tests and bootstrap.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a log-only notifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &LogNotifier{logger: logger}
}

// Notify records the notification request.
func (s *LogNotifier) Notify(ctx context.Context, n Notification) error {
	if strings.TrimSpace(n.Title) == "" {
		return fmt.Errorf("notification title is required")
	}
	s.logger.InfoContext(ctx, "notification", "id", n.ID, "title", n.Title, "message", n.Message)
	return nil
}
