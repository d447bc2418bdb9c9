package lending

import (
	"context"
	"math"
	"strconv"
	"time"
)

// startSpan starts a tracing span if the tracing collector is configured.
func (l *Ledger) startSpan(ctx context.Context, name string, book *Book, patron *Patron) (context.Context, SpanContext) {
	if l.tracingCollector == nil {
		return ctx, nil
	}

	attrs := map[string]string{}

	if book != nil {
		attrs[LogAttrISBN] = book.ISBN
	}

	if patron != nil {
		attrs[LogAttrPatronID] = strconv.Itoa(patron.ID)
	}

	return l.tracingCollector.StartSpan(ctx, name, attrs)
}

// finishSpan finishes a tracing span if the tracing collector is configured.
func (l *Ledger) finishSpan(span SpanContext, status string, duration time.Duration, attrs map[string]string) {
	if l.tracingCollector == nil || span == nil {
		return
	}

	if attrs == nil {
		attrs = map[string]string{}
	}

	attrs[LogAttrDurationMS] = strconv.FormatFloat(toMilliseconds(duration), 'f', 3, 64)

	l.tracingCollector.FinishSpan(span, status, attrs)
}

func (l *Ledger) recordLoanCreated(ctx context.Context, span SpanContext, loan *Loan, duration time.Duration) {
	l.recordDuration(ctx, RequestLoanDurationMetric, duration, StatusSuccess)
	l.incrementCounter(ctx, LoanRequestsMetric, StatusSuccess)
	l.recordValue(ctx, OpenLoansMetric, float64(l.countOpenLoans()), StatusSuccess)

	l.finishSpan(span, StatusSuccess, duration, map[string]string{
		LogAttrLoanID: loan.ID.String(),
		LogAttrDueAt:  loan.DueAt.UTC().Format(time.RFC3339),
	})

	l.logInfo(ctx, LogMsgLoanCreated,
		LogAttrLoanID, loan.ID.String(),
		LogAttrISBN, loan.Book.ISBN,
		LogAttrPatronID, loan.Patron.ID,
		LogAttrDueAt, loan.DueAt,
	)
}

func (l *Ledger) recordLoanRequestRejected(
	ctx context.Context,
	span SpanContext,
	book *Book,
	patron *Patron,
	status string,
	reason string,
	duration time.Duration,
) {

	l.recordDuration(ctx, RequestLoanDurationMetric, duration, status)
	l.incrementCounter(ctx, LoanRequestsMetric, status)
	l.finishSpan(span, status, duration, map[string]string{LogAttrReason: reason})
	l.logInfo(ctx, LogMsgLoanRequestRejected, identityArgs(book, patron, LogAttrReason, reason)...)
}

func (l *Ledger) recordLoanClosed(ctx context.Context, span SpanContext, loan *Loan, fine float64, duration time.Duration) {
	l.recordDuration(ctx, CloseLoanDurationMetric, duration, StatusSuccess)
	l.incrementCounter(ctx, LoanClosesMetric, StatusSuccess)
	l.recordValue(ctx, OpenLoansMetric, float64(l.countOpenLoans()), StatusSuccess)

	l.finishSpan(span, StatusSuccess, duration, map[string]string{
		LogAttrLoanID: loan.ID.String(),
		LogAttrFine:   FormatFine(fine),
	})

	l.logInfo(ctx, LogMsgLoanClosed,
		LogAttrLoanID, loan.ID.String(),
		LogAttrISBN, loan.Book.ISBN,
		LogAttrPatronID, loan.Patron.ID,
		LogAttrFine, fine,
	)

	if fine > 0 {
		l.recordValue(ctx, FineAmountMetric, fine, StatusSuccess)
		l.logInfo(ctx, LogMsgLateFineAssessed,
			LogAttrLoanID, loan.ID.String(),
			LogAttrDaysLate, DaysLate(loan),
			LogAttrFine, fine,
		)
	}
}

func (l *Ledger) recordNoOpenLoan(
	ctx context.Context,
	span SpanContext,
	book *Book,
	patron *Patron,
	status string,
	reason string,
	duration time.Duration,
) {

	l.recordDuration(ctx, CloseLoanDurationMetric, duration, status)
	l.incrementCounter(ctx, LoanClosesMetric, status)
	l.finishSpan(span, status, duration, map[string]string{LogAttrReason: reason})
	l.logInfo(ctx, LogMsgNoOpenLoan, identityArgs(book, patron, LogAttrReason, reason)...)
}

// recordDuration records a duration metric, with context if the collector supports it.
func (l *Ledger) recordDuration(ctx context.Context, metric string, duration time.Duration, status string) {
	if l.metricsCollector == nil {
		return
	}

	labels := map[string]string{LogAttrStatus: status}

	if contextualCollector, ok := l.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metric, duration, labels)
	} else {
		l.metricsCollector.RecordDuration(metric, duration, labels)
	}
}

// incrementCounter increments a counter metric, with context if the collector supports it.
func (l *Ledger) incrementCounter(ctx context.Context, metric string, status string) {
	if l.metricsCollector == nil {
		return
	}

	labels := map[string]string{LogAttrStatus: status}

	if contextualCollector, ok := l.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metric, labels)
	} else {
		l.metricsCollector.IncrementCounter(metric, labels)
	}
}

// recordValue records a value metric, with context if the collector supports it.
func (l *Ledger) recordValue(ctx context.Context, metric string, value float64, status string) {
	if l.metricsCollector == nil {
		return
	}

	labels := map[string]string{LogAttrStatus: status}

	if contextualCollector, ok := l.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(ctx, metric, value, labels)
	} else {
		l.metricsCollector.RecordValue(metric, value, labels)
	}
}

// logInfo logs to both the basic and the contextual logger, whichever are configured.
func (l *Ledger) logInfo(ctx context.Context, msg string, args ...any) {
	if l.logger != nil {
		l.logger.Info(msg, args...)
	}

	if l.contextualLogger != nil {
		l.contextualLogger.InfoContext(ctx, msg, args...)
	}
}

func identityArgs(book *Book, patron *Patron, args ...any) []any {
	identity := make([]any, 0, 4+len(args))

	if book != nil {
		identity = append(identity, LogAttrISBN, book.ISBN)
	}

	if patron != nil {
		identity = append(identity, LogAttrPatronID, patron.ID)
	}

	return append(identity, args...)
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
