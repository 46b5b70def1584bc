// Package sink publishes number/words rows into tabular destinations:
// local workbooks, Google Sheets and object storage.
package sink

import (
	"context"
	"errors"
	"fmt"

	"github.com/orayew2002/rast-words/domain"
	"github.com/orayew2002/rast-words/excel"
)

// MaxRows is the last addressable row of an xlsx sheet or a Google sheet grid.
const MaxRows = 1048576

// ErrUnavailable matches every failure reported by a Sink: authentication,
// network, invalid range or local I/O.
var ErrUnavailable = errors.New("external sink unavailable")

// Sink persists rows into the addressed range.
type Sink interface {
	Persist(ctx context.Context, rng Range, rows []domain.Row) error
}

// Error is the concrete error returned by sinks. It matches ErrUnavailable
// and unwraps to the underlying cause.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Op, ErrUnavailable, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{ErrUnavailable, e.Err}
}

func unavailable(op string, err error) error {
	return &Error{Op: op, Err: err}
}

// Range addresses two columns (number, words) on rows Start..End of Sheet.
// Row numbers are 1-based, so a row's number doubles as its sheet row.
type Range struct {
	Sheet string
	Start int
	End   int
}

// A1 returns the range in A1 notation, e.g. 'Sheet1'!A1:B100.
func (r Range) A1() string {
	return excel.RangeName(r.Sheet, r.Start-1, 0, r.End-1, 1)
}

// Len is the number of rows the range spans.
func (r Range) Len() int {
	return r.End - r.Start + 1
}

// Validate checks that the range is addressable and fits exactly len(rows).
func (r Range) Validate(rows []domain.Row) error {
	switch {
	case r.Sheet == "":
		return unavailable("validate range", errors.New("sheet name is empty"))
	case r.Start < 1:
		return unavailable("validate range", fmt.Errorf("start row %d is below 1", r.Start))
	case r.End < r.Start:
		return unavailable("validate range", fmt.Errorf("end row %d is before start row %d", r.End, r.Start))
	case r.End > MaxRows:
		return unavailable("validate range", fmt.Errorf("end row %d exceeds %d", r.End, MaxRows))
	case r.Len() != len(rows):
		return unavailable("validate range", fmt.Errorf("range %s spans %d rows, got %d", r.A1(), r.Len(), len(rows)))
	}
	return nil
}

// values converts rows into the [][]any layout spreadsheet APIs expect.
func values(rows []domain.Row) [][]any {
	out := make([][]any, len(rows))
	for i, r := range rows {
		out[i] = []any{r.Number, r.Words}
	}
	return out
}
