// Package oteladapters provides OpenTelemetry adapters for the lending observability interfaces.
//
// The adapters satisfy lending.ContextualLogger, lending.ContextualMetricsCollector and
// lending.TracingCollector, so a Ledger (and the notification outbox, which shares the interfaces)
// can be wired to an OpenTelemetry SDK without implementing the interfaces by hand:
//
//	ledger, err := lending.NewLedger(email, sms,
//		lending.WithContextualLogger(oteladapters.NewSlogBridgeLogger("library-lending")),
//		lending.WithMetrics(oteladapters.NewMetricsCollector(meterProvider.Meter("library-lending"))),
//		lending.WithTracing(oteladapters.NewTracingCollector(tracerProvider.Tracer("library-lending"))),
//	)
package oteladapters
