package lending_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/lending"
	. "github.com/AntonStoeckl/library-lending-go/testutil/helper" //nolint:revive
)

func Test_Observability_Ledger_WithMetrics_RecordsSuccessfulLoanAndClose(t *testing.T) {
	// setup
	metricsSpy := NewMetricsCollectorSpy(true)
	f := givenLedger(t, lending.WithMetrics(metricsSpy))

	// act
	require.True(t, f.ledger.RequestLoan(context.Background(), f.book, f.patron, 7))
	f.clock.AdvanceDays(9)
	f.ledger.CloseLoan(context.Background(), f.book, f.patron)

	// assert
	assert.True(t, metricsSpy.HasDurationRecordForMetric(lending.RequestLoanDurationMetric).
		WithStatus(lending.StatusSuccess).Assert())
	assert.True(t, metricsSpy.HasCounterRecordForMetric(lending.LoanRequestsMetric).
		WithStatus(lending.StatusSuccess).Assert())
	assert.True(t, metricsSpy.HasDurationRecordForMetric(lending.CloseLoanDurationMetric).
		WithStatus(lending.StatusSuccess).Assert())
	assert.True(t, metricsSpy.HasCounterRecordForMetric(lending.LoanClosesMetric).
		WithStatus(lending.StatusSuccess).Assert())
	assert.True(t, metricsSpy.HasValueRecordForMetric(lending.FineAmountMetric).WithValue(2).Assert())
	assert.True(t, metricsSpy.HasValueRecordForMetric(lending.OpenLoansMetric).WithValue(0).Assert())
	assert.Equal(t, 2, metricsSpy.CountValueRecordsForMetric(lending.OpenLoansMetric))
}

func Test_Observability_Ledger_WithMetrics_RecordsRejections(t *testing.T) {
	// setup
	metricsSpy := NewMetricsCollectorSpy(true)
	f := givenLedger(t, lending.WithMetrics(metricsSpy))
	f.book.Available = false

	// act
	f.ledger.RequestLoan(context.Background(), f.book, f.patron, 7)
	f.ledger.CloseLoan(context.Background(), f.book, f.patron)

	// assert
	assert.True(t, metricsSpy.HasCounterRecordForMetric(lending.LoanRequestsMetric).
		WithStatus(lending.StatusBookUnavailable).Assert())
	assert.True(t, metricsSpy.HasCounterRecordForMetric(lending.LoanClosesMetric).
		WithStatus(lending.StatusNoOpenLoan).Assert())
	assert.Zero(t, metricsSpy.CountValueRecordsForMetric(lending.FineAmountMetric))
	assert.Zero(t, metricsSpy.CountValueRecordsForMetric(lending.OpenLoansMetric))
}

func Test_Observability_Ledger_WithMetrics_SeparatesInvalidRequests(t *testing.T) {
	// setup
	metricsSpy := NewMetricsCollectorSpy(true)
	f := givenLedger(t, lending.WithMetrics(metricsSpy))

	// act
	f.ledger.RequestLoan(context.Background(), nil, f.patron, 7)
	f.ledger.CloseLoan(context.Background(), f.book, nil)

	// assert
	assert.True(t, metricsSpy.HasCounterRecordForMetric(lending.LoanRequestsMetric).
		WithStatus(lending.StatusInvalidRequest).Assert())
	assert.False(t, metricsSpy.HasCounterRecordForMetric(lending.LoanRequestsMetric).
		WithStatus(lending.StatusBookUnavailable).Assert())
	assert.True(t, metricsSpy.HasCounterRecordForMetric(lending.LoanClosesMetric).
		WithStatus(lending.StatusInvalidRequest).Assert())
	assert.False(t, metricsSpy.HasCounterRecordForMetric(lending.LoanClosesMetric).
		WithStatus(lending.StatusNoOpenLoan).Assert())
	assert.True(t, metricsSpy.HasDurationRecordForMetric(lending.RequestLoanDurationMetric).
		WithStatus(lending.StatusInvalidRequest).Assert())
}

func Test_Observability_Ledger_WithMetrics_RecordsNoFineValue_ForOnTimeReturn(t *testing.T) {
	// setup
	metricsSpy := NewMetricsCollectorSpy(true)
	f := givenLedger(t, lending.WithMetrics(metricsSpy))

	// act
	f.ledger.RequestLoan(context.Background(), f.book, f.patron, 7)
	f.ledger.CloseLoan(context.Background(), f.book, f.patron)

	// assert
	assert.Equal(t, 1, metricsSpy.CountCounterRecordsForMetric(lending.LoanClosesMetric))
	assert.Zero(t, metricsSpy.CountValueRecordsForMetric(lending.FineAmountMetric))
}

func Test_Observability_Ledger_WithTracing_RecordsSpans(t *testing.T) {
	// setup
	tracingSpy := NewTracingCollectorSpy(true)
	f := givenLedger(t, lending.WithTracing(tracingSpy))

	// act
	f.ledger.RequestLoan(context.Background(), f.book, f.patron, 7)
	f.clock.AdvanceDays(9)
	f.ledger.CloseLoan(context.Background(), f.book, f.patron)

	// assert
	loanID := f.ledger.Loans()[0].ID.String()

	assert.True(t, tracingSpy.HasSpan(lending.SpanNameRequestLoan).
		WithStatus(lending.StatusSuccess).
		WithStartAttribute(lending.LogAttrISBN, "978-0132350884").
		WithStartAttribute(lending.LogAttrPatronID, "1").
		WithEndAttribute(lending.LogAttrLoanID, loanID).
		WithEndAttributeKey(lending.LogAttrDueAt).
		WithEndAttributeKey(lending.LogAttrDurationMS).
		Assert())

	assert.True(t, tracingSpy.HasSpan(lending.SpanNameCloseLoan).
		WithStatus(lending.StatusSuccess).
		WithEndAttribute(lending.LogAttrLoanID, loanID).
		WithEndAttribute(lending.LogAttrFine, "2.00").
		Assert())
}

func Test_Observability_Ledger_WithTracing_RecordsRejectedSpans(t *testing.T) {
	// setup
	tracingSpy := NewTracingCollectorSpy(true)
	f := givenLedger(t, lending.WithTracing(tracingSpy))

	// act
	f.ledger.RequestLoan(context.Background(), nil, f.patron, 7)
	f.ledger.CloseLoan(context.Background(), f.book, f.patron)

	// assert
	assert.True(t, tracingSpy.HasSpan(lending.SpanNameRequestLoan).
		WithStatus(lending.StatusInvalidRequest).
		WithStartAttribute(lending.LogAttrPatronID, "1").
		WithEndAttributeKey(lending.LogAttrReason).
		Assert())
	assert.True(t, tracingSpy.HasSpan(lending.SpanNameCloseLoan).
		WithStatus(lending.StatusNoOpenLoan).
		Assert())
}

func Test_Observability_Ledger_WithLoggers_LogsLoanLifecycle(t *testing.T) {
	// setup
	loggerSpy := NewLoggerSpy(true)
	contextualLoggerSpy := NewLoggerSpy(true)
	f := givenLedger(t, lending.WithLogger(loggerSpy), lending.WithContextualLogger(contextualLoggerSpy))

	// act
	f.ledger.RequestLoan(context.Background(), f.book, f.patron, 7)
	f.clock.AdvanceDays(10)
	f.ledger.CloseLoan(context.Background(), f.book, f.patron)

	// assert
	for _, spy := range []*LoggerSpy{loggerSpy, contextualLoggerSpy} {
		assert.True(t, spy.HasInfoLog(lending.LogMsgLoanCreated))
		assert.True(t, spy.HasInfoLog(lending.LogMsgLoanClosed))

		record, found := spy.FindRecord(lending.LogMsgLateFineAssessed)
		require.True(t, found)

		daysLate, _ := record.Attr(lending.LogAttrDaysLate)
		fine, _ := record.Attr(lending.LogAttrFine)
		assert.Equal(t, 3, daysLate)
		assert.Equal(t, 3.0, fine)
	}

	record, _ := contextualLoggerSpy.FindRecord(lending.LogMsgLoanCreated)
	assert.NotNil(t, record.Context, "contextual logger must receive the operation context")
}

func Test_Observability_Ledger_WithLogger_LogsRejections(t *testing.T) {
	// setup
	loggerSpy := NewLoggerSpy(true)
	f := givenLedger(t, lending.WithLogger(loggerSpy))
	f.book.Available = false

	// act
	f.ledger.RequestLoan(context.Background(), f.book, f.patron, 7)
	f.ledger.CloseLoan(context.Background(), f.book, f.patron)

	// assert
	rejected, found := loggerSpy.FindRecord(lending.LogMsgLoanRequestRejected)
	require.True(t, found)
	isbn, _ := rejected.Attr(lending.LogAttrISBN)
	assert.Equal(t, "978-0132350884", isbn)

	assert.True(t, loggerSpy.HasInfoLog(lending.LogMsgNoOpenLoan))
	assert.False(t, loggerSpy.HasInfoLog(lending.LogMsgLateFineAssessed))
}

func Test_Observability_Ledger_WithoutRecording_StillWorks(t *testing.T) {
	// setup
	f := givenLedger(t,
		lending.WithMetrics(NewMetricsCollectorSpy(false)),
		lending.WithTracing(NewTracingCollectorSpy(false)),
		lending.WithLogger(NewLoggerSpy(false)),
	)

	// act
	ok := f.ledger.RequestLoan(context.Background(), f.book, f.patron, 7)
	fine := f.ledger.CloseLoan(context.Background(), f.book, f.patron)

	// assert
	assert.True(t, ok)
	assert.Equal(t, 0.0, fine)
}
