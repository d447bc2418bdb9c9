package notify

import (
	"context"

	"github.com/AntonStoeckl/library-lending-go/lending"
)

// Fanout forwards each notification to all of its sinks, in order. Nil sinks are skipped.
//
// Only untyped nil interface values are detected. A typed nil pointer, e.g. a nil
// *TelegramNotifier, is kept; the sinks of this package drop notifications on a nil receiver,
// other Notifier implementations must do the same or must not be passed as typed nil.
type Fanout []lending.Notifier

// NewFanout creates a Fanout over the given sinks.
func NewFanout(notifiers ...lending.Notifier) Fanout {
	fanout := make(Fanout, 0, len(notifiers))

	for _, notifier := range notifiers {
		if notifier != nil {
			fanout = append(fanout, notifier)
		}
	}

	return fanout
}

// Notify forwards the notification to every sink.
func (f Fanout) Notify(ctx context.Context, recipient, subject, message string) {
	for _, notifier := range f {
		if notifier == nil {
			continue
		}

		notifier.Notify(ctx, recipient, subject, message)
	}
}

var _ lending.Notifier = Fanout(nil)
