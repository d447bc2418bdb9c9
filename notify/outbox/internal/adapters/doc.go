// Package adapters lets the outbox run on pgxpool.Pool, sql.DB or sqlx.DB behind one DBAdapter interface.
package adapters
