// Package store wraps the planning database's stored calls. Every
// tenant-owned procedure takes the tenant id as its first argument, so
// row visibility and mutation eligibility are enforced at the storage
// boundary rather than filtered after the fact.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

var (
	// ErrDuplicateEntry maps MySQL 1062 (unique constraint).
	ErrDuplicateEntry = errors.New("duplicate entry")
	// ErrReferentialIntegrity maps MySQL 1452; with tenant-composite
	// foreign keys this is what a cross-tenant reference trips.
	ErrReferentialIntegrity = errors.New("referential integrity violation")
	// ErrStorage is the generic failure surfaced for connectivity and
	// other driver errors. Details are logged, not returned, so the
	// response body never carries connection information.
	ErrStorage = errors.New("storage call failed")
	// ErrValidation marks bad caller input (unknown enum value, invalid
	// column filter) and maps to a 400.
	ErrValidation = errors.New("validation")
)

// Row is a single result row keyed by column name, as returned by the
// view procedures. Typed records are built from Rows at this boundary;
// nothing above the store operates on raw maps.
type Row map[string]any

// Store executes stored calls on the shared connection pool.
type Store struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

func New(db *sql.DB, log *zap.SugaredLogger) *Store {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Store{db: db, log: log}
}

func callStmt(proc string, argc int) string {
	if argc == 0 {
		return "CALL " + proc + "()"
	}
	return "CALL " + proc + "(?" + strings.Repeat(", ?", argc-1) + ")"
}

// callRows runs a stored call and materializes its result set. The rows
// handle is always closed before returning, on success and error alike,
// so the pooled connection cannot leak.
func (s *Store) callRows(ctx context.Context, proc string, args ...any) ([]Row, error) {
	rows, err := s.db.QueryContext(ctx, callStmt(proc, len(args)), args...)
	if err != nil {
		return nil, s.classify(proc, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, s.classify(proc, err)
	}

	var out []Row
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, s.classify(proc, err)
		}
		r := make(Row, len(cols))
		for i, c := range cols {
			if b, ok := vals[i].([]byte); ok {
				r[c] = string(b)
			} else {
				r[c] = vals[i]
			}
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, s.classify(proc, err)
	}
	return out, nil
}

// callID runs an insert procedure and returns the new surrogate id, which
// the procedures report as a one-row, one-column result set.
func (s *Store) callID(ctx context.Context, proc string, args ...any) (uint64, error) {
	rows, err := s.callRows(ctx, proc, args...)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("%w: %s returned no id", ErrStorage, proc)
	}
	for _, v := range rows[0] {
		if id, ok := toUint64(v); ok {
			return id, nil
		}
	}
	return 0, fmt.Errorf("%w: %s returned no id", ErrStorage, proc)
}

// callExec runs a procedure for its side effect, draining any result set
// it reports.
func (s *Store) callExec(ctx context.Context, proc string, args ...any) error {
	_, err := s.callRows(ctx, proc, args...)
	return err
}

// classify converts driver errors into the store's sentinel errors. The
// raw error is logged with the procedure name only; DSNs and credentials
// never appear in the log or the returned error.
func (s *Store) classify(proc string, err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case 1062:
			return fmt.Errorf("%s: %w", proc, ErrDuplicateEntry)
		case 1452:
			return fmt.Errorf("%s: %w", proc, ErrReferentialIntegrity)
		}
	}
	s.log.Errorw("stored call failed", "proc", proc, "err", err)
	return fmt.Errorf("%s: %w", proc, ErrStorage)
}

func toUint64(v any) (uint64, bool) {
	switch t := v.(type) {
	case int64:
		if t >= 0 {
			return uint64(t), true
		}
	case uint64:
		return t, true
	case string:
		var n uint64
		if _, err := fmt.Sscan(t, &n); err == nil {
			return n, true
		}
	}
	return 0, false
}
