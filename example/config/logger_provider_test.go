package config_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"github.com/AntonStoeckl/library-lending-go/example/config"
	"github.com/AntonStoeckl/library-lending-go/lending"
	"github.com/AntonStoeckl/library-lending-go/lending/oteladapters"
)

// logExporterSpy keeps the bodies of exported log records.
type logExporterSpy struct {
	bodies []string
	mu     sync.Mutex
}

func (e *logExporterSpy) Export(_ context.Context, records []sdklog.Record) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, record := range records {
		e.bodies = append(e.bodies, record.Body().AsString())
	}

	return nil
}

func (e *logExporterSpy) Shutdown(context.Context) error { return nil }

func (e *logExporterSpy) ForceFlush(context.Context) error { return nil }

func (e *logExporterSpy) Bodies() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return append([]string(nil), e.bodies...)
}

func Test_NewLoggerProvider_ReceivesSlogBridgeRecords(t *testing.T) {
	// arrange
	ctx := context.Background()
	res, err := config.NewResource(ctx, "library-lending-demo", "test")
	require.NoError(t, err)

	exporter := &logExporterSpy{}
	loggerProvider := config.NewLoggerProvider(res, exporter)
	t.Cleanup(func() { _ = loggerProvider.Shutdown(ctx) })

	logger := oteladapters.NewSlogBridgeLogger("library-lending-demo")

	// act
	logger.InfoContext(ctx, lending.LogMsgLoanCreated, lending.LogAttrISBN, "978-0132350884")
	require.NoError(t, loggerProvider.ForceFlush(ctx))

	// assert
	assert.Contains(t, exporter.Bodies(), lending.LogMsgLoanCreated)
}
