package lending

import (
	"errors"
	"time"
)

var ErrNilNotifier = errors.New("notifier must not be nil")
var ErrNilClock = errors.New("clock must not be nil")

// NoOpenLoan is returned by Ledger.CloseLoan when no matching open loan exists.
// Legitimate fines are never negative.
const NoOpenLoan = -1.0

// ISBNString is a type alias for string, representing the unique identifier of a Book.
type ISBNString = string

// PatronIDInt is a type alias for int, representing the unique identifier of a Patron.
type PatronIDInt = int

// Clock returns the current time. Ledgers use time.Now unless configured otherwise.
type Clock = func() time.Time
