package notify

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-lending-go/lending"
)

var (
	// ErrNilWriter is returned when a console sink is created without an io.Writer.
	ErrNilWriter = errors.New("writer must not be nil")

	// ErrNilLogger is returned when a LogNotifier is created without a logger.
	ErrNilLogger = errors.New("logger must not be nil")

	// ErrNilSender is returned when a TelegramNotifier is created without a sender.
	ErrNilSender = errors.New("telegram sender must not be nil")

	// ErrInvalidChatID is returned for a zero Telegram chat ID.
	ErrInvalidChatID = errors.New("telegram chat id must not be zero")
)

const (
	// LogMsgNotificationSent is logged by LogNotifier for every notification.
	LogMsgNotificationSent = "notification sent"

	// LogMsgNotificationFailed is logged when a sink could not deliver a notification.
	LogMsgNotificationFailed = "notification failed"

	// LogMsgUnknownRecipient is logged when TelegramNotifier has no chat for a recipient.
	LogMsgUnknownRecipient = "no telegram chat for recipient"

	// LogAttrChannel names the delivery channel, e.g. "email" or "sms".
	LogAttrChannel = "channel"

	// LogAttrRecipient identifies the recipient of a notification.
	LogAttrRecipient = "recipient"

	// LogAttrSubject contains the notification subject.
	LogAttrSubject = "subject"

	// LogAttrMessage contains the notification message.
	LogAttrMessage = "message"

	// LogAttrError contains the delivery error.
	LogAttrError = "error"

	// ChannelEmail is the channel name of EmailNotifier.
	ChannelEmail = "email"

	// ChannelSMS is the channel name of SMSNotifier.
	ChannelSMS = "sms"

	// ChannelTelegram is the channel name of TelegramNotifier.
	ChannelTelegram = "telegram"
)

// Option defines a functional option for configuring a sink.
type Option func(*config) error

type config struct {
	logger           lending.Logger
	contextualLogger lending.ContextualLogger
	fallbackChatID   int64
}

func newConfig(options []Option) (config, error) {
	c := config{}

	for _, option := range options {
		if err := option(&c); err != nil {
			return config{}, err
		}
	}

	return c, nil
}

// WithLogger sets the logger which receives delivery failures.
func WithLogger(logger lending.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger which receives delivery failures.
func WithContextualLogger(logger lending.ContextualLogger) Option {
	return func(c *config) error {
		c.contextualLogger = logger
		return nil
	}
}

// WithFallbackChatID sets the Telegram chat which receives notifications for recipients without
// their own chat. It is ignored by the other sinks.
func WithFallbackChatID(chatID int64) Option {
	return func(c *config) error {
		if chatID == 0 {
			return ErrInvalidChatID
		}

		c.fallbackChatID = chatID

		return nil
	}
}

func (c config) logWarn(ctx context.Context, msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}

	if c.contextualLogger != nil {
		c.contextualLogger.WarnContext(ctx, msg, args...)
	}
}

func (c config) logError(ctx context.Context, msg string, args ...any) {
	if c.logger != nil {
		c.logger.Error(msg, args...)
	}

	if c.contextualLogger != nil {
		c.contextualLogger.ErrorContext(ctx, msg, args...)
	}
}
