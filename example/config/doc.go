// Package config provides connection and observability setup for the library lending demo.
//
// It contains factory functions for PostgreSQL connections with the three drivers the
// notification outbox supports (pgxpool.Pool, sql.DB, sqlx.DB), each with pool tuning defaults,
// and the OpenTelemetry providers which export traces and metrics via OTLP gRPC.
package config
