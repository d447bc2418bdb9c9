// Package outbox provides a queued lending.Notifier backed by a PostgreSQL table.
//
// Each notification becomes one row in the outbox table (see schema.sql) instead of being delivered
// right away. A relay reads the pending rows of a channel, hands them to the real sink and marks them
// delivered; DeliverPending does this for any lending.Notifier.
//
// The Outbox works with pgxpool.Pool, sql.DB (lib/pq) or sqlx.DB and is safe for concurrent use.
// SQL is built with goqu, payloads are encoded with json-iterator and transient database errors
// are retried with exponential backoff.
package outbox
