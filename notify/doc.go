// Package notify provides lending.Notifier implementations.
//
// EmailNotifier and SMSNotifier render each notification as one line on an io.Writer,
// LogNotifier emits a structured log record, TelegramNotifier delivers through the Telegram Bot API
// and Fanout forwards one notification to several sinks. The Postgres-backed queued sink lives in
// the outbox subpackage.
//
// All sinks honor the Notifier contract: Notify never fails observably. Delivery problems are
// logged through the optional logger set with WithLogger or WithContextualLogger.
// All sinks in this package are safe for concurrent use.
package notify
