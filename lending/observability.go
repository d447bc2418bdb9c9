package lending

import (
	"context"
	"time"
)

// Logger interface for operational logging, warnings, and error reporting.
// *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// ContextualLogger interface for context-aware logging with automatic trace correlation.
// *slog.Logger satisfies it, see also the oteladapters package.
type ContextualLogger interface {
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

// MetricsCollector interface for collecting Ledger performance and operational metrics.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
	RecordValue(metric string, value float64, labels map[string]string)
}

// ContextualMetricsCollector extends MetricsCollector with context-aware methods for trace correlation.
// It is optional: the Ledger uses the context-aware methods when available and falls back to
// the base MetricsCollector interface otherwise.
type ContextualMetricsCollector interface {
	MetricsCollector
	RecordDurationContext(ctx context.Context, metric string, duration time.Duration, labels map[string]string)
	IncrementCounterContext(ctx context.Context, metric string, labels map[string]string)
	RecordValueContext(ctx context.Context, metric string, value float64, labels map[string]string)
}

// SpanContext represents an active tracing span that can be finished and updated with attributes.
type SpanContext interface {
	SetStatus(status string)
	AddAttribute(key, value string)
}

// TracingCollector interface for collecting distributed tracing information from Ledger operations.
// It is dependency-free, so any tracing backend can be plugged in by implementing it.
type TracingCollector interface {
	StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, SpanContext)
	FinishSpan(spanCtx SpanContext, status string, attrs map[string]string)
}

const (
	// RequestLoanDurationMetric tracks RequestLoan execution duration.
	RequestLoanDurationMetric = "ledger_request_loan_duration_seconds"

	// CloseLoanDurationMetric tracks CloseLoan execution duration.
	CloseLoanDurationMetric = "ledger_close_loan_duration_seconds"

	// LoanRequestsMetric counts loan requests by status.
	LoanRequestsMetric = "ledger_loan_requests_total"

	// LoanClosesMetric counts close requests by status.
	LoanClosesMetric = "ledger_loan_closes_total"

	// FineAmountMetric records assessed fines greater than zero.
	FineAmountMetric = "ledger_fine_amount"

	// OpenLoansMetric records the number of open loans after each state change.
	OpenLoansMetric = "ledger_open_loans"

	// SpanNameRequestLoan is the tracing span name for RequestLoan.
	SpanNameRequestLoan = "ledger.request_loan"

	// SpanNameCloseLoan is the tracing span name for CloseLoan.
	SpanNameCloseLoan = "ledger.close_loan"

	// StatusSuccess indicates a loan was created or closed.
	StatusSuccess = "success"

	// StatusBookUnavailable indicates a loan request for a book that is not available.
	StatusBookUnavailable = "book_unavailable"

	// StatusNoOpenLoan indicates a close request without a matching open loan.
	StatusNoOpenLoan = "no_open_loan"

	// StatusInvalidRequest indicates a request or close call without a book or patron.
	StatusInvalidRequest = "invalid_request"

	// LogMsgLoanCreated is logged when a loan was created.
	LogMsgLoanCreated = "loan created"

	// LogMsgLoanClosed is logged when a loan was closed.
	LogMsgLoanClosed = "loan closed"

	// LogMsgLateFineAssessed is logged when closing a loan resulted in a fine.
	LogMsgLateFineAssessed = "late fine assessed"

	// LogMsgLoanRequestRejected is logged when a loan request was rejected.
	LogMsgLoanRequestRejected = "loan request rejected"

	// LogMsgNoOpenLoan is logged when there was no open loan to close.
	LogMsgNoOpenLoan = "no open loan to close"

	// LogAttrISBN identifies the book in logs, metrics labels and span attributes.
	LogAttrISBN = "isbn"

	// LogAttrPatronID identifies the patron.
	LogAttrPatronID = "patron_id"

	// LogAttrLoanID identifies the loan.
	LogAttrLoanID = "loan_id"

	// LogAttrDueAt contains the due date of a loan.
	LogAttrDueAt = "due_at"

	// LogAttrFine contains the fine amount.
	LogAttrFine = "fine"

	// LogAttrDaysLate contains the number of whole days a return was late.
	LogAttrDaysLate = "days_late"

	// LogAttrReason indicates the reason for a rejection.
	LogAttrReason = "reason"

	// LogAttrStatus indicates the operation status.
	LogAttrStatus = "status"

	// LogAttrDurationMS indicates the processing duration in milliseconds.
	LogAttrDurationMS = "duration_ms"
)
