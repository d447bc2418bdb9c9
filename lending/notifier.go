package lending

import (
	"context"
)

// Notifier delivers a (recipient, subject, message) notification.
//
// There is no error channel: implementations accept the call synchronously and deal with
// their own delivery failures (log, queue, drop).
type Notifier interface {
	Notify(ctx context.Context, recipient string, subject string, message string)
}
