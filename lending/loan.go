package lending

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// LoanStatus is the state of a Loan: open until it is closed, closed forever after.
type LoanStatus int

const (
	// LoanOpen means the book has not been returned yet.
	LoanOpen LoanStatus = iota

	// LoanClosed means the book was returned. This is terminal.
	LoanClosed
)

// String provides a string representation of LoanStatus for logging and debugging.
func (s LoanStatus) String() string {
	switch s {
	case LoanOpen:
		return "open"
	case LoanClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Loans is an alias type for a slice of Loan pointers.
type Loans = []*Loan

// Loan links one Book and one Patron over a time interval.
//
// ReturnedAt is nil while the loan is open. Once set it never changes.
// Loans are only created and closed by the Ledger.
type Loan struct {
	ID         uuid.UUID
	Book       *Book
	Patron     *Patron
	LoanedAt   time.Time
	DueAt      time.Time
	ReturnedAt *time.Time
}

func buildLoan(book *Book, patron *Patron, loanedAt time.Time, durationDays int) *Loan {
	return &Loan{
		ID:       uuid.New(),
		Book:     book,
		Patron:   patron,
		LoanedAt: loanedAt,
		DueAt:    addDays(loanedAt, durationDays),
	}
}

const (
	secondsPerDay = int64(day / time.Second)

	// maxDurationDays is the largest number of days a time.Duration can hold.
	maxDurationDays = int(math.MaxInt64 / int64(day))

	// maxLoanDays bounds the offset so that seconds since the Unix epoch stay within int64.
	maxLoanDays = int(math.MaxInt64 / secondsPerDay / 2)
)

// addDays moves t by the given number of 24h days. Offsets beyond time.Duration are
// computed in whole seconds and saturate at maxLoanDays, so the sign of the offset is kept.
func addDays(t time.Time, days int) time.Time {
	if days >= -maxDurationDays && days <= maxDurationDays {
		return t.Add(time.Duration(days) * day)
	}

	days = max(-maxLoanDays, min(days, maxLoanDays))

	return time.Unix(t.Unix()+int64(days)*secondsPerDay, int64(t.Nanosecond())).In(t.Location())
}

// IsOpen reports whether the book of this loan has not been returned yet.
func (l *Loan) IsOpen() bool {
	return l.ReturnedAt == nil
}

// Status returns LoanOpen or LoanClosed.
func (l *Loan) Status() LoanStatus {
	if l.IsOpen() {
		return LoanOpen
	}

	return LoanClosed
}

// matches reports whether this loan is still open for the given book and patron identifiers.
func (l *Loan) matches(isbn ISBNString, patronID PatronIDInt) bool {
	return l.IsOpen() && l.Book.ISBN == isbn && l.Patron.ID == patronID
}

// close records the return time. A closed loan is never reopened or re-closed.
func (l *Loan) close(returnedAt time.Time) bool {
	if !l.IsOpen() {
		return false
	}

	l.ReturnedAt = &returnedAt

	return true
}
