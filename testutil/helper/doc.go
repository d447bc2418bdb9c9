// Package helper provides test doubles for the lending packages.
//
// It contains spies for the notification sink and for the dependency-free observability
// interfaces (Logger, ContextualLogger, MetricsCollector, TracingCollector), plus a controllable
// clock for driving loan and return timestamps in tests.
package helper
