package outbox

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/library-lending-go/internal/retry"
	"github.com/AntonStoeckl/library-lending-go/lending"
	"github.com/AntonStoeckl/library-lending-go/notify/outbox/internal/adapters"
)

const (
	// DefaultTableName is the outbox table created by schema.sql.
	DefaultTableName = "notification_outbox"

	defaultTimeout = 5 * time.Second

	dialectPostgres = "postgres"
	colMessageID    = "message_id"
	colChannel      = "channel"
	colPayload      = "payload"
	colCreatedAt    = "created_at"
	colDeliveredAt  = "delivered_at"
	castJsonb       = "?::jsonb"
	castTimestamp   = "?::timestamp with time zone"
	castTypeText    = "TEXT"
)

// Outbox is a lending.Notifier which stores notifications of one channel in a PostgreSQL table.
type Outbox struct {
	db               adapters.DBAdapter
	channel          string
	tableName        string
	timeout          time.Duration
	clock            lending.Clock
	retryOptions     []retry.Option
	logger           lending.Logger
	contextualLogger lending.ContextualLogger
	metricsCollector lending.MetricsCollector
	tracingCollector lending.TracingCollector
}

// NewOutboxFromPGXPool creates an Outbox for the given channel on a pgx pool.
func NewOutboxFromPGXPool(db *pgxpool.Pool, channel string, options ...Option) (*Outbox, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newOutbox(adapters.NewPGXAdapter(db), channel, options...)
}

// NewOutboxFromSQLDB creates an Outbox for the given channel on a sql.DB.
func NewOutboxFromSQLDB(db *sql.DB, channel string, options ...Option) (*Outbox, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newOutbox(adapters.NewSQLAdapter(db), channel, options...)
}

// NewOutboxFromSQLX creates an Outbox for the given channel on a sqlx.DB.
func NewOutboxFromSQLX(db *sqlx.DB, channel string, options ...Option) (*Outbox, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newOutbox(adapters.NewSQLXAdapter(db), channel, options...)
}

func newOutbox(db adapters.DBAdapter, channel string, options ...Option) (*Outbox, error) {
	if channel == "" {
		return nil, ErrEmptyChannel
	}

	o := &Outbox{
		db:        db,
		channel:   channel,
		tableName: DefaultTableName,
		timeout:   defaultTimeout,
		clock:     time.Now,
	}

	for _, option := range options {
		if err := option(o); err != nil {
			return nil, err
		}
	}

	if err := retry.Validate(o.retryOptions...); err != nil {
		return nil, err
	}

	return o, nil
}

// Channel returns the channel name this Outbox writes and reads.
func (o *Outbox) Channel() string {
	return o.channel
}

// Notify enqueues the notification. Failures are logged, the Notifier contract has no error channel.
// A nil *Outbox drops the notification.
func (o *Outbox) Notify(ctx context.Context, recipient, subject, message string) {
	if o == nil {
		return
	}

	if _, err := o.Enqueue(ctx, recipient, subject, message); err != nil {
		o.logWarn(ctx, logMsgNotificationDropped, logAttrChannel, o.channel, logAttrRecipient, recipient)
	}
}

// Enqueue stores one notification and returns its message ID.
func (o *Outbox) Enqueue(ctx context.Context, recipient, subject, message string) (uuid.UUID, error) {
	start := time.Now()
	ctx, span := o.startSpan(ctx, SpanNameEnqueue)

	payloadJSON, encodeErr := encodePayload(recipient, subject, message)
	if encodeErr != nil {
		err := errors.Join(ErrEncodingPayloadFailed, encodeErr)
		o.fail(ctx, span, OperationEnqueue, err, time.Since(start))

		return uuid.Nil, err
	}

	id := uuid.New()

	sqlQuery, buildErr := o.buildInsertQuery(id, payloadJSON, o.clock())
	if buildErr != nil {
		o.fail(ctx, span, OperationEnqueue, buildErr, time.Since(start))
		return uuid.Nil, buildErr
	}

	if _, execErr := o.exec(ctx, OperationEnqueue, sqlQuery); execErr != nil {
		err := errors.Join(ErrEnqueueFailed, execErr)
		o.fail(ctx, span, OperationEnqueue, err, time.Since(start))

		return uuid.Nil, err
	}

	o.succeed(ctx, span, OperationEnqueue, time.Since(start), map[string]string{logAttrMessageID: id.String()})
	o.logInfo(ctx, logMsgEnqueued, logAttrChannel, o.channel, logAttrMessageID, id.String(), logAttrRecipient, recipient)

	return id, nil
}

// Pending returns up to limit undelivered notifications of this channel, oldest first.
// A limit of 0 returns all of them.
func (o *Outbox) Pending(ctx context.Context, limit uint) ([]Message, error) {
	start := time.Now()
	ctx, span := o.startSpan(ctx, SpanNamePending)

	sqlQuery, buildErr := o.buildSelectPendingQuery(limit)
	if buildErr != nil {
		o.fail(ctx, span, OperationPending, buildErr, time.Since(start))
		return nil, buildErr
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	var rows adapters.DBRows

	meta, queryErr := retry.Do(ctx, func(ctx context.Context) error {
		queryStart := time.Now()
		r, err := o.db.Query(ctx, sqlQuery)
		o.logSQL(ctx, OperationPending, sqlQuery, time.Since(queryStart))

		if err != nil {
			return err
		}

		rows = r

		return nil
	}, o.retryOptionsWithPredicate()...)
	o.recordRetries(ctx, OperationPending, meta)

	if queryErr != nil {
		err := errors.Join(ErrQueryingPendingFailed, queryErr)
		o.fail(ctx, span, OperationPending, err, time.Since(start))

		return nil, err
	}

	defer o.closeRows(ctx, rows)

	messages, scanErr := o.scanMessages(rows)
	if scanErr != nil {
		o.fail(ctx, span, OperationPending, scanErr, time.Since(start))
		return nil, scanErr
	}

	o.recordValue(ctx, PendingMetric, float64(len(messages)))
	o.succeed(ctx, span, OperationPending, time.Since(start), nil)

	return messages, nil
}

// MarkDelivered sets delivered_at for the given messages of this channel.
// Messages which are already delivered keep their first delivery time.
func (o *Outbox) MarkDelivered(ctx context.Context, ids ...uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	start := time.Now()
	ctx, span := o.startSpan(ctx, SpanNameMarkDelivered)

	sqlQuery, buildErr := o.buildMarkDeliveredQuery(ids, o.clock())
	if buildErr != nil {
		o.fail(ctx, span, OperationMarkDelivered, buildErr, time.Since(start))
		return buildErr
	}

	rowsAffected, execErr := o.exec(ctx, OperationMarkDelivered, sqlQuery)
	if execErr != nil {
		err := errors.Join(ErrMarkingDeliveredFailed, execErr)
		o.fail(ctx, span, OperationMarkDelivered, err, time.Since(start))

		return err
	}

	o.succeed(ctx, span, OperationMarkDelivered, time.Since(start), nil)
	o.logInfo(ctx, logMsgDelivered, logAttrChannel, o.channel, logAttrCount, rowsAffected)

	return nil
}

// DeliverPending hands up to limit pending notifications to target, oldest first, and marks them delivered.
// Delivery is at-least-once: if marking fails, the notifications are delivered again by the next call.
func (o *Outbox) DeliverPending(ctx context.Context, target lending.Notifier, limit uint) (int, error) {
	if target == nil {
		return 0, ErrNilNotifier
	}

	messages, err := o.Pending(ctx, limit)
	if err != nil {
		return 0, err
	}

	ids := make([]uuid.UUID, 0, len(messages))

	for _, message := range messages {
		target.Notify(ctx, message.Recipient, message.Subject, message.Body)
		ids = append(ids, message.ID)
	}

	if err := o.MarkDelivered(ctx, ids...); err != nil {
		return 0, err
	}

	return len(messages), nil
}

// exec runs a statement with retries for transient errors, bounded by the outbox timeout.
func (o *Outbox) exec(ctx context.Context, operation, sqlQuery string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	var rowsAffected int64

	meta, err := retry.Do(ctx, func(ctx context.Context) error {
		execStart := time.Now()
		result, execErr := o.db.Exec(ctx, sqlQuery)
		o.logSQL(ctx, operation, sqlQuery, time.Since(execStart))

		if execErr != nil {
			return execErr
		}

		affected, rowsAffectedErr := result.RowsAffected()
		if rowsAffectedErr != nil {
			return rowsAffectedErr
		}

		rowsAffected = affected

		return nil
	}, o.retryOptionsWithPredicate()...)
	o.recordRetries(ctx, operation, meta)

	return rowsAffected, err
}

func (o *Outbox) retryOptionsWithPredicate() []retry.Option {
	options := make([]retry.Option, 0, len(o.retryOptions)+1)
	options = append(options, o.retryOptions...)

	return append(options, retry.WithRetryable(isTransient))
}

func (o *Outbox) scanMessages(rows adapters.DBRows) ([]Message, error) {
	messages := make([]Message, 0)

	for rows.Next() {
		var (
			idText      string
			channel     string
			payloadJSON []byte
			createdAt   time.Time
		)

		if err := rows.Scan(&idText, &channel, &payloadJSON, &createdAt); err != nil {
			return nil, errors.Join(ErrScanningRowFailed, err)
		}

		id, parseErr := uuid.Parse(idText)
		if parseErr != nil {
			return nil, errors.Join(ErrScanningRowFailed, parseErr)
		}

		p, decodeErr := decodePayload(payloadJSON)
		if decodeErr != nil {
			return nil, errors.Join(ErrDecodingPayloadFailed, decodeErr)
		}

		messages = append(messages, Message{
			ID:        id,
			Channel:   channel,
			Recipient: p.Recipient,
			Subject:   p.Subject,
			Body:      p.Message,
			CreatedAt: createdAt,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrScanningRowFailed, err)
	}

	return messages, nil
}

func (o *Outbox) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		o.logWarn(ctx, logMsgCloseRowsFailed, logAttrError, closeErr.Error())
	}
}

func (o *Outbox) buildInsertQuery(id uuid.UUID, payloadJSON []byte, createdAt time.Time) (string, error) {
	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(o.tableName).
		Rows(goqu.Record{
			colMessageID: id.String(),
			colChannel:   o.channel,
			colPayload:   goqu.L(castJsonb, string(payloadJSON)),
			colCreatedAt: goqu.L(castTimestamp, createdAt.UTC()),
		})

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (o *Outbox) buildSelectPendingQuery(limit uint) (string, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(o.tableName).
		Select(
			goqu.Cast(goqu.C(colMessageID), castTypeText),
			goqu.C(colChannel),
			goqu.C(colPayload),
			goqu.C(colCreatedAt),
		).
		Where(
			goqu.C(colChannel).Eq(o.channel),
			goqu.C(colDeliveredAt).IsNull(),
		).
		Order(goqu.C(colCreatedAt).Asc(), goqu.C(colMessageID).Asc())

	if limit > 0 {
		selectStmt = selectStmt.Limit(limit)
	}

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (o *Outbox) buildMarkDeliveredQuery(ids []uuid.UUID, deliveredAt time.Time) (string, error) {
	idTexts := make([]string, 0, len(ids))
	for _, id := range ids {
		idTexts = append(idTexts, id.String())
	}

	updateStmt := goqu.Dialect(dialectPostgres).
		Update(o.tableName).
		Set(goqu.Record{colDeliveredAt: goqu.L(castTimestamp, deliveredAt.UTC())}).
		Where(
			goqu.C(colChannel).Eq(o.channel),
			goqu.C(colMessageID).In(idTexts),
			goqu.C(colDeliveredAt).IsNull(),
		)

	sqlQuery, _, toSQLErr := updateStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (o *Outbox) succeed(ctx context.Context, span lending.SpanContext, operation string, duration time.Duration, attrs map[string]string) {
	o.recordOperation(ctx, operation, StatusSuccess, duration)
	o.finishSpan(span, StatusSuccess, duration, attrs)
}

func (o *Outbox) fail(ctx context.Context, span lending.SpanContext, operation string, err error, duration time.Duration) {
	o.recordOperation(ctx, operation, StatusError, duration)
	o.finishSpan(span, StatusError, duration, map[string]string{logAttrError: err.Error()})
	o.logError(ctx, logMsgOperationFailed,
		logAttrOperation, operation,
		logAttrChannel, o.channel,
		logAttrError, err.Error(),
	)
}

var _ lending.Notifier = (*Outbox)(nil)
