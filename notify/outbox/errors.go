package outbox

import "errors"

var (
	// ErrNilDatabaseConnection is returned when a nil database connection is passed to a constructor.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrEmptyChannel is returned when an Outbox is created without a channel name.
	ErrEmptyChannel = errors.New("channel must not be empty")

	// ErrEmptyTableName is returned when an empty table name is provided to WithTableName.
	ErrEmptyTableName = errors.New("table name must not be empty")

	// ErrNonPositiveTimeout is returned when a zero or negative timeout is provided to WithTimeout.
	ErrNonPositiveTimeout = errors.New("timeout must be positive")

	// ErrNilClock is returned when a nil clock is provided to WithClock.
	ErrNilClock = errors.New("clock must not be nil")

	// ErrNilNotifier is returned when DeliverPending is called without a target sink.
	ErrNilNotifier = errors.New("notifier must not be nil")

	// ErrEncodingPayloadFailed is returned when a notification can not be encoded as JSON.
	ErrEncodingPayloadFailed = errors.New("encoding notification payload failed")

	// ErrDecodingPayloadFailed is returned when a stored payload can not be decoded.
	ErrDecodingPayloadFailed = errors.New("decoding notification payload failed")

	// ErrBuildingQueryFailed is returned when goqu fails to render a statement.
	ErrBuildingQueryFailed = errors.New("building query failed")

	// ErrEnqueueFailed is returned when inserting a notification failed.
	ErrEnqueueFailed = errors.New("enqueueing notification failed")

	// ErrQueryingPendingFailed is returned when reading pending notifications failed.
	ErrQueryingPendingFailed = errors.New("querying pending notifications failed")

	// ErrScanningRowFailed is returned when a pending row can not be scanned.
	ErrScanningRowFailed = errors.New("scanning outbox row failed")

	// ErrMarkingDeliveredFailed is returned when marking notifications as delivered failed.
	ErrMarkingDeliveredFailed = errors.New("marking notifications delivered failed")
)
