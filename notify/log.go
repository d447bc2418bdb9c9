package notify

import (
	"context"

	"github.com/AntonStoeckl/library-lending-go/lending"
)

// LogNotifier delivers notifications as structured info log records, e.g. to an OpenTelemetry
// log pipeline via oteladapters.NewSlogBridgeLogger. *slog.Logger can be used directly.
type LogNotifier struct {
	logger  lending.ContextualLogger
	channel string
}

// NewLogNotifier creates a LogNotifier which tags its records with the given channel name.
func NewLogNotifier(logger lending.ContextualLogger, channel string) (*LogNotifier, error) {
	if logger == nil {
		return nil, ErrNilLogger
	}

	return &LogNotifier{logger: logger, channel: channel}, nil
}

// Notify logs the notification. A nil *LogNotifier drops it.
func (n *LogNotifier) Notify(ctx context.Context, recipient, subject, message string) {
	if n == nil {
		return
	}

	n.logger.InfoContext(ctx, LogMsgNotificationSent,
		LogAttrChannel, n.channel,
		LogAttrRecipient, recipient,
		LogAttrSubject, subject,
		LogAttrMessage, message,
	)
}

var _ lending.Notifier = (*LogNotifier)(nil)
