package notify_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-lending-go/lending"
	"github.com/AntonStoeckl/library-lending-go/notify"
	. "github.com/AntonStoeckl/library-lending-go/testutil/helper" //nolint:revive
)

func Test_Fanout_ForwardsToAllSinks_SkippingNil(t *testing.T) {
	// arrange
	first := NewNotifierSpy()
	second := NewNotifierSpy()
	fanout := notify.NewFanout(first, nil, second)

	// act
	fanout.Notify(context.Background(), "Alice", "Loan created", "Book: Clean Code")

	// assert
	assert.Len(t, fanout, 2)
	expected := []SpyNotification{{Recipient: "Alice", Subject: "Loan created", Message: "Book: Clean Code"}}
	assert.Equal(t, expected, first.Notifications())
	assert.Equal(t, expected, second.Notifications())
}

func Test_Fanout_CanBeUsedAsLedgerSink(t *testing.T) {
	// arrange
	audit := NewNotifierSpy()
	email := NewNotifierSpy()
	ledger, err := lending.NewLedger(notify.NewFanout(email, audit), NewNotifierSpy())
	assert.NoError(t, err)

	book := lending.BuildBook("Clean Code", "Robert C. Martin", "978-0132350884")
	patron := lending.BuildPatron("Alice", 1)

	// act
	ledger.RequestLoan(context.Background(), book, patron, 7)

	// assert
	assert.Equal(t, 1, email.Count())
	assert.Equal(t, 1, audit.Count())
}

func Test_Fanout_TypedNilSinks_DropNotifications(t *testing.T) {
	// arrange
	spy := NewNotifierSpy()
	fanout := notify.NewFanout(
		(*notify.TelegramNotifier)(nil),
		(*notify.EmailNotifier)(nil),
		(*notify.SMSNotifier)(nil),
		(*notify.LogNotifier)(nil),
		spy,
	)

	// act
	assert.NotPanics(t, func() {
		fanout.Notify(context.Background(), "Alice", "Late fine", "Late fine of 2.00")
	})

	// assert
	assert.Equal(t, 1, spy.Count())
}

func Test_Ledger_WithTypedNilSink_DoesNotPanic(t *testing.T) {
	// arrange
	var telegram *notify.TelegramNotifier
	sms := NewNotifierSpy()
	ledger, err := lending.NewLedger(telegram, sms)
	assert.NoError(t, err)

	book := lending.BuildBook("Clean Code", "Robert C. Martin", "978-0132350884")
	patron := lending.BuildPatron("Alice", 1)

	// act
	var ok bool
	assert.NotPanics(t, func() {
		ok = ledger.RequestLoan(context.Background(), book, patron, 7)
	})

	// assert
	assert.True(t, ok)
	assert.Equal(t, 1, sms.Count())
}
