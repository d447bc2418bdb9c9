package lending_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-lending-go/lending"
)

func givenReturnedLoan(dueAt time.Time, returnedAfterDue time.Duration) *lending.Loan {
	returnedAt := dueAt.Add(returnedAfterDue)

	return &lending.Loan{
		Book:       lending.BuildBook("Clean Code", "Robert C. Martin", "978-0132350884"),
		Patron:     lending.BuildPatron("Alice", 1),
		LoanedAt:   dueAt.Add(-7 * 24 * time.Hour),
		DueAt:      dueAt,
		ReturnedAt: &returnedAt,
	}
}

func Test_CalculateFine(t *testing.T) {
	dueAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name             string
		returnedAfterDue time.Duration
		expectedFine     float64
		expectedDaysLate int
	}{
		{name: "returned one day early", returnedAfterDue: -24 * time.Hour, expectedFine: 0, expectedDaysLate: 0},
		{name: "returned exactly at due date", returnedAfterDue: 0, expectedFine: 0, expectedDaysLate: 0},
		{name: "returned less than one day late", returnedAfterDue: 23*time.Hour + 59*time.Minute, expectedFine: 0, expectedDaysLate: 0},
		{name: "returned exactly one day late", returnedAfterDue: 24 * time.Hour, expectedFine: 1, expectedDaysLate: 1},
		{name: "returned two days late", returnedAfterDue: 48 * time.Hour, expectedFine: 2, expectedDaysLate: 2},
		{name: "partial days are truncated", returnedAfterDue: 3*24*time.Hour + time.Hour, expectedFine: 3, expectedDaysLate: 3},
		{name: "almost four days late", returnedAfterDue: 4*24*time.Hour - time.Nanosecond, expectedFine: 3, expectedDaysLate: 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			loan := givenReturnedLoan(dueAt, tc.returnedAfterDue)

			// act
			fine := lending.CalculateFine(loan)
			daysLate := lending.DaysLate(loan)

			// assert
			assert.Equal(t, tc.expectedFine, fine)
			assert.Equal(t, tc.expectedDaysLate, daysLate)
		})
	}
}

func Test_CalculateFine_CountsDaysBeyondDurationRange(t *testing.T) {
	// arrange
	dueAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	returnedAt := dueAt.AddDate(0, 0, 200000).Add(time.Hour)
	loan := &lending.Loan{
		Book:       lending.BuildBook("Clean Code", "Robert C. Martin", "978-0132350884"),
		Patron:     lending.BuildPatron("Alice", 1),
		LoanedAt:   dueAt.Add(-7 * 24 * time.Hour),
		DueAt:      dueAt,
		ReturnedAt: &returnedAt,
	}

	// act
	daysLate := lending.DaysLate(loan)

	// assert
	assert.Equal(t, 200000, daysLate)
	assert.Equal(t, 200000.0, lending.CalculateFine(loan))
}

func Test_CalculateFine_IsZero_ForOpenLoan(t *testing.T) {
	// arrange
	loan := &lending.Loan{
		Book:     lending.BuildBook("Clean Code", "Robert C. Martin", "978-0132350884"),
		Patron:   lending.BuildPatron("Alice", 1),
		LoanedAt: time.Unix(0, 0).UTC(),
		DueAt:    time.Unix(0, 0).UTC().Add(-30 * 24 * time.Hour),
	}

	// act
	fine := lending.CalculateFine(loan)

	// assert
	assert.Equal(t, 0.0, fine)
}

func Test_CalculateFine_IsZero_ForNilLoan(t *testing.T) {
	// act
	fine := lending.CalculateFine(nil)

	// assert
	assert.Equal(t, 0.0, fine)
	assert.Equal(t, 0, lending.DaysLate(nil))
}

func Test_FormatFine(t *testing.T) {
	assert.Equal(t, "0.00", lending.FormatFine(0))
	assert.Equal(t, "2.00", lending.FormatFine(2))
	assert.Equal(t, "12.50", lending.FormatFine(12.5))
}
