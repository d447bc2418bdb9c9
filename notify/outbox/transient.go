package outbox

import (
	"database/sql/driver"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const (
	sqlStateClassConnectionException = "08"
	sqlStateSerializationFailure     = "40001"
	sqlStateDeadlockDetected         = "40P01"
)

// isTransient reports whether a database error is worth retrying:
// lost connections, serialization failures and deadlocks, for pgx as well as lib/pq.
func isTransient(err error) bool {
	if err == nil {
		return false
	}

	if pgconn.SafeToRetry(err) || errors.Is(err, driver.ErrBadConn) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return isTransientSQLState(pgErr.Code)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return isTransientSQLState(string(pqErr.Code))
	}

	return false
}

func isTransientSQLState(code string) bool {
	if len(code) >= 2 && code[:2] == sqlStateClassConnectionException {
		return true
	}

	return code == sqlStateSerializationFailure || code == sqlStateDeadlockDetected
}
