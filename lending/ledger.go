package lending

import (
	"context"
	"time"
)

const (
	// SubjectLoanCreated is the subject of the email notification sent for a new loan.
	SubjectLoanCreated = "Loan created"

	// SubjectLateFine is the subject of the email notification sent for a late return.
	SubjectLateFine = "Late fine"

	failureReasonBookUnavailable     = "book is not available"
	failureReasonBookOrPatronMissing = "book or patron is missing"
	failureReasonNoOpenLoan          = "no open loan for book and patron"
)

// Ledger records loans and orchestrates lending and returning of books.
//
// It owns an append-only sequence of loans and notifies patrons through two sinks:
// the email-like sink on loan creation and on late fines, the SMS-like sink on loan creation only.
//
// A Ledger is not safe for concurrent use.
type Ledger struct {
	loans            Loans
	emailNotifier    Notifier
	smsNotifier      Notifier
	clock            Clock
	logger           Logger
	contextualLogger ContextualLogger
	metricsCollector MetricsCollector
	tracingCollector TracingCollector
}

// NewLedger creates an empty Ledger with the given notification sinks and optional configuration.
//
// It returns ErrNilNotifier for an untyped nil sink. A typed nil pointer wrapped in the
// Notifier interface is not detected, so sinks should be built with their package's constructors.
func NewLedger(emailNotifier Notifier, smsNotifier Notifier, options ...Option) (*Ledger, error) {
	if emailNotifier == nil || smsNotifier == nil {
		return nil, ErrNilNotifier
	}

	l := &Ledger{
		loans:         make(Loans, 0),
		emailNotifier: emailNotifier,
		smsNotifier:   smsNotifier,
		clock:         time.Now,
	}

	for _, option := range options {
		if err := option(l); err != nil {
			return nil, err
		}
	}

	return l, nil
}

// RequestLoan lends the book to the patron for durationDays days, starting now.
//
// It returns false without any change or notification if the book is not available.
// On success the book becomes unavailable, a new open Loan is appended, and the patron is notified
// through both sinks.
//
// durationDays is not validated: zero or negative values create a loan which is already due.
func (l *Ledger) RequestLoan(ctx context.Context, book *Book, patron *Patron, durationDays int) bool {
	start := time.Now()
	ctx, span := l.startSpan(ctx, SpanNameRequestLoan, book, patron)

	if book == nil || patron == nil {
		l.recordLoanRequestRejected(ctx, span, book, patron, StatusInvalidRequest, failureReasonBookOrPatronMissing, time.Since(start))
		return false
	}

	if !book.Available {
		l.recordLoanRequestRejected(ctx, span, book, patron, StatusBookUnavailable, failureReasonBookUnavailable, time.Since(start))
		return false
	}

	book.Available = false
	loan := buildLoan(book, patron, l.clock(), durationDays)
	l.loans = append(l.loans, loan)

	l.emailNotifier.Notify(ctx, patron.Name, SubjectLoanCreated, "Book: "+book.Title)
	l.smsNotifier.Notify(ctx, patron.Name, "", "You borrowed: "+book.Title)

	l.recordLoanCreated(ctx, span, loan, time.Since(start))

	return true
}

// CloseLoan records the return of the book by the patron and returns the late fine.
//
// It closes the earliest-created open loan for the book's ISBN and the patron's ID.
// If there is none, it returns NoOpenLoan (-1) without any change or notification.
// Otherwise the book becomes available again and, if the fine is greater than zero,
// the patron is notified through the email-like sink.
//
// A fine of 0 is a legitimate result, only a negative result signals "no open loan".
//
// Loans are matched by ISBN and patron ID, but availability is set on the passed book.
// Passing a different Book value with the same ISBN leaves the loaned Book unavailable,
// so callers should pass the instance found in the Catalog.
func (l *Ledger) CloseLoan(ctx context.Context, book *Book, patron *Patron) float64 {
	start := time.Now()
	ctx, span := l.startSpan(ctx, SpanNameCloseLoan, book, patron)

	if book == nil || patron == nil {
		l.recordNoOpenLoan(ctx, span, book, patron, StatusInvalidRequest, failureReasonBookOrPatronMissing, time.Since(start))
		return NoOpenLoan
	}

	loan := l.findOpenLoan(book.ISBN, patron.ID)
	if loan == nil {
		l.recordNoOpenLoan(ctx, span, book, patron, StatusNoOpenLoan, failureReasonNoOpenLoan, time.Since(start))
		return NoOpenLoan
	}

	loan.close(l.clock())
	book.Available = true

	fine := CalculateFine(loan)
	if fine > 0 {
		l.emailNotifier.Notify(ctx, patron.Name, SubjectLateFine, "Late fine of "+FormatFine(fine))
	}

	l.recordLoanClosed(ctx, span, loan, fine, time.Since(start))

	return fine
}

// Loans returns the live ledger in insertion order, not a copy.
func (l *Ledger) Loans() Loans {
	return l.loans
}

// OpenLoans returns the loans which are not closed yet, in insertion order.
func (l *Ledger) OpenLoans() Loans {
	open := make(Loans, 0)

	for _, loan := range l.loans {
		if loan.IsOpen() {
			open = append(open, loan)
		}
	}

	return open
}

// findOpenLoan scans the ledger in insertion order, so the earliest open loan of the pair wins.
func (l *Ledger) findOpenLoan(isbn ISBNString, patronID PatronIDInt) *Loan {
	for _, loan := range l.loans {
		if loan.matches(isbn, patronID) {
			return loan
		}
	}

	return nil
}

func (l *Ledger) countOpenLoans() int {
	count := 0

	for _, loan := range l.loans {
		if loan.IsOpen() {
			count++
		}
	}

	return count
}
