package lending

import (
	"fmt"
	"time"
)

const (
	// FineRatePerDay is the penalty per whole day of lateness, in the library's currency.
	FineRatePerDay = 1.0

	day = 24 * time.Hour
)

// CalculateFine maps a returned Loan to its late-return penalty.
//
// Only whole days count: a return 3 days and 23 hours after the due date costs 3 * FineRatePerDay.
// Open loans, returns on or before the due date and a nil loan cost nothing.
func CalculateFine(loan *Loan) float64 {
	return float64(DaysLate(loan)) * FineRatePerDay
}

// DaysLate returns the number of whole days between the due date and the return of the loan.
// It is 0 for open loans and on-time returns.
func DaysLate(loan *Loan) int {
	if loan == nil || loan.ReturnedAt == nil {
		return 0
	}

	if !loan.ReturnedAt.After(loan.DueAt) {
		return 0
	}

	return wholeDaysBetween(loan.DueAt, *loan.ReturnedAt)
}

// wholeDaysBetween counts whole days from from to a later to.
// It works in seconds because time.Sub saturates at about 292 years.
func wholeDaysBetween(from, to time.Time) int {
	seconds := to.Unix() - from.Unix()
	if to.Nanosecond() < from.Nanosecond() {
		seconds--
	}

	return int(seconds / secondsPerDay)
}

// FormatFine renders a fine amount with two decimal places, e.g. "2.00".
func FormatFine(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}
