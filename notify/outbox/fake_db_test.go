package outbox

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/AntonStoeckl/library-lending-go/notify/outbox/internal/adapters"
)

// fakeDB records statements and replays canned results.
type fakeDB struct {
	execQueries  []string
	queryQueries []string
	execErrs     []error
	queryErrs    []error
	rowsAffected int64
	rows         [][]any
	mu           sync.Mutex
}

func (f *fakeDB) Exec(_ context.Context, query string) (adapters.DBResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.execQueries = append(f.execQueries, query)

	if err := popErr(&f.execErrs); err != nil {
		return nil, err
	}

	return fakeResult{rowsAffected: f.rowsAffected}, nil
}

func (f *fakeDB) Query(_ context.Context, query string) (adapters.DBRows, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.queryQueries = append(f.queryQueries, query)

	if err := popErr(&f.queryErrs); err != nil {
		return nil, err
	}

	return &fakeRows{rows: f.rows, index: -1}, nil
}

func popErr(errs *[]error) error {
	if len(*errs) == 0 {
		return nil
	}

	err := (*errs)[0]
	*errs = (*errs)[1:]

	return err
}

type fakeResult struct {
	rowsAffected int64
}

func (r fakeResult) RowsAffected() (int64, error) {
	return r.rowsAffected, nil
}

type fakeRows struct {
	rows   [][]any
	index  int
	closed bool
}

func (r *fakeRows) Next() bool {
	r.index++
	return r.index < len(r.rows)
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.index]
	if len(row) != len(dest) {
		return errors.New("column count mismatch")
	}

	for i, value := range row {
		switch d := dest[i].(type) {
		case *string:
			*d = value.(string)
		case *[]byte:
			*d = []byte(value.(string))
		case *time.Time:
			*d = value.(time.Time)
		default:
			return errors.New("unsupported scan destination")
		}
	}

	return nil
}

func (r *fakeRows) Err() error {
	return nil
}

func (r *fakeRows) Close() error {
	r.closed = true
	return nil
}
