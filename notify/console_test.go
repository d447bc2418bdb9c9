package notify_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/notify"
	. "github.com/AntonStoeckl/library-lending-go/testutil/helper" //nolint:revive
)

func Test_EmailNotifier_WritesOneLine(t *testing.T) {
	// arrange
	var out bytes.Buffer
	notifier, err := notify.NewEmailNotifier(&out)
	require.NoError(t, err)

	// act
	notifier.Notify(context.Background(), "Alice", "Late fine", "Late fine of 2.00")

	// assert
	assert.Equal(t, "[Email] To: Alice | Subject: Late fine | Message: Late fine of 2.00\n", out.String())
}

func Test_SMSNotifier_WritesOneLine_WithoutSubject(t *testing.T) {
	// arrange
	var out bytes.Buffer
	notifier, err := notify.NewSMSNotifier(&out)
	require.NoError(t, err)

	// act
	notifier.Notify(context.Background(), "Alice", "ignored", "You borrowed: Clean Code")

	// assert
	assert.Equal(t, "[SMS] To: Alice | Message: You borrowed: Clean Code\n", out.String())
}

func Test_ConsoleNotifiers_ShouldFail_WithNilWriter(t *testing.T) {
	_, emailErr := notify.NewEmailNotifier(nil)
	_, smsErr := notify.NewSMSNotifier(nil)

	assert.ErrorIs(t, emailErr, notify.ErrNilWriter)
	assert.ErrorIs(t, smsErr, notify.ErrNilWriter)
}

func Test_EmailNotifier_LogsWriteErrors(t *testing.T) {
	// arrange
	loggerSpy := NewLoggerSpy(true)
	notifier, err := notify.NewEmailNotifier(failingWriter{}, notify.WithLogger(loggerSpy))
	require.NoError(t, err)

	// act
	assert.NotPanics(t, func() {
		notifier.Notify(context.Background(), "Alice", "Loan created", "Book: Clean Code")
	})

	// assert
	record, found := loggerSpy.FindRecord(notify.LogMsgNotificationFailed)
	require.True(t, found)
	assert.Equal(t, "error", record.Level)

	channel, _ := record.Attr(notify.LogAttrChannel)
	assert.Equal(t, notify.ChannelEmail, channel)
}

func Test_SMSNotifier_IsSafeForConcurrentUse(t *testing.T) {
	// arrange
	var out bytes.Buffer
	notifier, err := notify.NewSMSNotifier(&out)
	require.NoError(t, err)

	// act
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			notifier.Notify(context.Background(), "Alice", "", "You borrowed: Clean Code")
		}()
	}
	wg.Wait()

	// assert
	assert.Equal(t, 20, bytes.Count(out.Bytes(), []byte("[SMS] To: Alice | Message: You borrowed: Clean Code\n")))
}

type failingWriter struct{}

func (failingWriter) Write(_ []byte) (int, error) {
	return 0, errors.New("disk full")
}
