package store

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// ViewQuery narrows a view call. Columns and IDs travel to the procedure
// as comma-separated strings because the CALL convention cannot bind
// them as parameters; that is exactly why they are validated and escaped
// here instead of being interpolated raw.
type ViewQuery struct {
	Columns []string // projection, allow-listed column names
	Limit   int      // max rows, <=0 means no limit
	IDs     []string // row identifier filter, numeric or string keys
}

// columnPattern is the allow-list for column filters: identifiers only,
// no quoting, spacing, or punctuation that could smuggle SQL into the
// procedure's dynamic projection.
var columnPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

var numericPattern = regexp.MustCompile(`^[0-9]+$`)

// colsArg validates and joins the projection list. Returns nil when no
// projection was requested so the procedure selects all columns.
func colsArg(columns []string) (any, error) {
	if len(columns) == 0 {
		return nil, nil
	}
	for _, c := range columns {
		if !columnPattern.MatchString(c) {
			return nil, fmt.Errorf("%w: invalid column name %q", ErrValidation, c)
		}
	}
	return strings.Join(columns, ", "), nil
}

// limitArg normalizes the row cap; non-positive means unlimited.
func limitArg(limit int) any {
	if limit <= 0 {
		return nil
	}
	return limit
}

// idsArg builds the identifier filter. Numeric ids pass through bare;
// string-valued keys (product codes) are single-quoted with quote and
// backslash escaping before joining.
func idsArg(ids []string) (any, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("%w: empty id in filter", ErrValidation)
		}
		if numericPattern.MatchString(id) {
			parts = append(parts, id)
			continue
		}
		parts = append(parts, quoteString(id))
	}
	return strings.Join(parts, ","), nil
}

// quoteString escapes backslashes and single quotes, then wraps the
// value in single quotes.
func quoteString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}

// callView runs a view procedure with the standard
// (tenant, columns, limit, ids) argument shape.
func (s *Store) callView(ctx context.Context, proc string, tenantID uint64, q ViewQuery) ([]Row, error) {
	cols, err := colsArg(q.Columns)
	if err != nil {
		return nil, err
	}
	ids, err := idsArg(q.IDs)
	if err != nil {
		return nil, err
	}
	return s.callRows(ctx, proc, tenantID, cols, limitArg(q.Limit), ids)
}
