package outbox

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/AntonStoeckl/library-lending-go/internal/retry"
	"github.com/AntonStoeckl/library-lending-go/lending"
)

const (
	// OperationDurationMetric tracks outbox operation durations, labeled by operation and status.
	OperationDurationMetric = "outbox_operation_duration_seconds"

	// OperationsMetric counts outbox operations, labeled by operation and status.
	OperationsMetric = "outbox_operations_total"

	// RetriesMetric counts retried database attempts, labeled by operation and error_type.
	RetriesMetric = "outbox_retries_total"

	// PendingMetric records how many pending notifications the last Pending call returned.
	PendingMetric = "outbox_pending_messages"

	// SpanNameEnqueue is the tracing span name for Enqueue.
	SpanNameEnqueue = "outbox.enqueue"

	// SpanNamePending is the tracing span name for Pending.
	SpanNamePending = "outbox.pending"

	// SpanNameMarkDelivered is the tracing span name for MarkDelivered.
	SpanNameMarkDelivered = "outbox.mark_delivered"

	// OperationEnqueue labels Enqueue.
	OperationEnqueue = "enqueue"

	// OperationPending labels Pending.
	OperationPending = "pending"

	// OperationMarkDelivered labels MarkDelivered.
	OperationMarkDelivered = "mark_delivered"

	// StatusSuccess indicates a successful operation.
	StatusSuccess = "success"

	// StatusError indicates a failed operation.
	StatusError = "error"

	logMsgSQLExecuted         = "executed sql for: "
	logMsgEnqueued            = "notification enqueued"
	logMsgDelivered           = "notifications marked delivered"
	logMsgOperationFailed     = "outbox operation failed"
	logMsgCloseRowsFailed     = "failed to close database rows"
	logMsgNotificationDropped = "notification dropped"

	logAttrOperation  = "operation"
	logAttrStatus     = "status"
	logAttrChannel    = "channel"
	logAttrMessageID  = "message_id"
	logAttrRecipient  = "recipient"
	logAttrCount      = "count"
	logAttrAttempts   = "attempts"
	logAttrErrorType  = "error_type"
	logAttrError      = "error"
	logAttrQuery      = "query"
	logAttrDurationMS = "duration_ms"
)

func (o *Outbox) startSpan(ctx context.Context, name string) (context.Context, lending.SpanContext) {
	if o.tracingCollector == nil {
		return ctx, nil
	}

	return o.tracingCollector.StartSpan(ctx, name, map[string]string{
		logAttrChannel: o.channel,
		"table":        o.tableName,
	})
}

func (o *Outbox) finishSpan(span lending.SpanContext, status string, duration time.Duration, attrs map[string]string) {
	if o.tracingCollector == nil || span == nil {
		return
	}

	if attrs == nil {
		attrs = map[string]string{}
	}

	attrs[logAttrDurationMS] = strconv.FormatFloat(toMilliseconds(duration), 'f', 3, 64)

	o.tracingCollector.FinishSpan(span, status, attrs)
}

// recordOperation records the duration and count of one operation.
func (o *Outbox) recordOperation(ctx context.Context, operation, status string, duration time.Duration) {
	if o.metricsCollector == nil {
		return
	}

	labels := map[string]string{logAttrOperation: operation, logAttrStatus: status, logAttrChannel: o.channel}

	if contextualCollector, ok := o.metricsCollector.(lending.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, OperationDurationMetric, duration, labels)
		contextualCollector.IncrementCounterContext(ctx, OperationsMetric, labels)
	} else {
		o.metricsCollector.RecordDuration(OperationDurationMetric, duration, labels)
		o.metricsCollector.IncrementCounter(OperationsMetric, labels)
	}
}

// recordRetries counts the attempts beyond the first one.
func (o *Outbox) recordRetries(ctx context.Context, operation string, meta retry.Meta) {
	if o.metricsCollector == nil || meta.Attempts <= 1 {
		return
	}

	labels := map[string]string{logAttrOperation: operation, logAttrErrorType: meta.LastErrorType}

	for i := 1; i < meta.Attempts; i++ {
		if contextualCollector, ok := o.metricsCollector.(lending.ContextualMetricsCollector); ok {
			contextualCollector.IncrementCounterContext(ctx, RetriesMetric, labels)
		} else {
			o.metricsCollector.IncrementCounter(RetriesMetric, labels)
		}
	}
}

func (o *Outbox) recordValue(ctx context.Context, metric string, value float64) {
	if o.metricsCollector == nil {
		return
	}

	labels := map[string]string{logAttrChannel: o.channel}

	if contextualCollector, ok := o.metricsCollector.(lending.ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(ctx, metric, value, labels)
	} else {
		o.metricsCollector.RecordValue(metric, value, labels)
	}
}

func (o *Outbox) logSQL(ctx context.Context, operation, sqlQuery string, duration time.Duration) {
	args := []any{logAttrQuery, sqlQuery, logAttrDurationMS, toMilliseconds(duration)}

	if o.logger != nil {
		o.logger.Debug(logMsgSQLExecuted+operation, args...)
	}

	if o.contextualLogger != nil {
		o.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+operation, args...)
	}
}

func (o *Outbox) logInfo(ctx context.Context, msg string, args ...any) {
	if o.logger != nil {
		o.logger.Info(msg, args...)
	}

	if o.contextualLogger != nil {
		o.contextualLogger.InfoContext(ctx, msg, args...)
	}
}

func (o *Outbox) logWarn(ctx context.Context, msg string, args ...any) {
	if o.logger != nil {
		o.logger.Warn(msg, args...)
	}

	if o.contextualLogger != nil {
		o.contextualLogger.WarnContext(ctx, msg, args...)
	}
}

func (o *Outbox) logError(ctx context.Context, msg string, args ...any) {
	if o.logger != nil {
		o.logger.Error(msg, args...)
	}

	if o.contextualLogger != nil {
		o.contextualLogger.ErrorContext(ctx, msg, args...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
