package notification

import (
	"context"
	"strings"

	"github.com/Jowenthebui/PO-Tracking/internal/application/port"
	"go.uber.org/zap"
)

// LogNotifier writes reminder digests to the application log.
// It stands in for the chat notifier when Lark is disabled.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a new log-only notifier
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify implements port.Notifier
func (n *LogNotifier) Notify(ctx context.Context, message string) error {
	lines := strings.Split(strings.TrimSpace(message), "\n")
	n.logger.Info("Reminder digest",
		zap.Int("lines", len(lines)),
		zap.Strings("digest", lines))
	return nil
}

var _ port.Notifier = (*LogNotifier)(nil)
