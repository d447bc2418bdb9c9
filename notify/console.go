package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/AntonStoeckl/library-lending-go/lending"
)

const (
	emailLineFormat = "[Email] To: %s | Subject: %s | Message: %s\n"
	smsLineFormat   = "[SMS] To: %s | Message: %s\n"
)

// lineWriter serializes lines written by concurrent Notify calls.
type lineWriter struct {
	out    io.Writer
	config config
	mu     sync.Mutex
}

func (w *lineWriter) writeLine(ctx context.Context, channel, recipient, format string, args ...any) {
	w.mu.Lock()
	_, err := fmt.Fprintf(w.out, format, args...)
	w.mu.Unlock()

	if err != nil {
		w.config.logError(ctx, LogMsgNotificationFailed,
			LogAttrChannel, channel,
			LogAttrRecipient, recipient,
			LogAttrError, err.Error(),
		)
	}
}

// EmailNotifier is the email-like sink: it writes one line per notification,
// e.g. "[Email] To: Alice | Subject: Late fine | Message: Late fine of 2.00".
type EmailNotifier struct {
	writer *lineWriter
}

// NewEmailNotifier creates an EmailNotifier which writes to out, typically os.Stdout.
func NewEmailNotifier(out io.Writer, options ...Option) (*EmailNotifier, error) {
	if out == nil {
		return nil, ErrNilWriter
	}

	c, err := newConfig(options)
	if err != nil {
		return nil, err
	}

	return &EmailNotifier{writer: &lineWriter{out: out, config: c}}, nil
}

// Notify writes the notification as one line. A nil *EmailNotifier drops it.
func (n *EmailNotifier) Notify(ctx context.Context, recipient, subject, message string) {
	if n == nil {
		return
	}

	n.writer.writeLine(ctx, ChannelEmail, recipient, emailLineFormat, recipient, subject, message)
}

// SMSNotifier is the SMS-like sink: it writes one line per notification and drops the subject,
// e.g. "[SMS] To: Alice | Message: You borrowed: Clean Code".
type SMSNotifier struct {
	writer *lineWriter
}

// NewSMSNotifier creates an SMSNotifier which writes to out, typically os.Stdout.
func NewSMSNotifier(out io.Writer, options ...Option) (*SMSNotifier, error) {
	if out == nil {
		return nil, ErrNilWriter
	}

	c, err := newConfig(options)
	if err != nil {
		return nil, err
	}

	return &SMSNotifier{writer: &lineWriter{out: out, config: c}}, nil
}

// Notify writes the notification as one line. The subject is not part of an SMS.
// A nil *SMSNotifier drops it.
func (n *SMSNotifier) Notify(ctx context.Context, recipient, _ string, message string) {
	if n == nil {
		return
	}

	n.writer.writeLine(ctx, ChannelSMS, recipient, smsLineFormat, recipient, message)
}

var (
	_ lending.Notifier = (*EmailNotifier)(nil)
	_ lending.Notifier = (*SMSNotifier)(nil)
)
