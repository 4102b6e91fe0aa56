// Package sheets is the spreadsheet boundary: reading input keys from a
// column range and writing extracted values back to fixed cells. Two
// backends implement it, the Google Sheets API and a local xlsx workbook.
package sheets

import (
	"context"
	"errors"
)

// ErrSourceUnavailable marks a failure to read the input range. It is fatal
// to the whole run since no rows can be processed without input.
var ErrSourceUnavailable = errors.New("source unavailable")

// ErrSinkWrite marks a failed cell write. It is logged by the caller and
// never aborts the batch.
var ErrSinkWrite = errors.New("sink write failed")

// InputRow is one unit of work: a key cell's value plus its original
// spreadsheet row number, so output lands back on the same row.
type InputRow struct {
	// Index is the 1-based spreadsheet row number.
	Index int
	// Key is a parcel ID, owner name or pre-built URL.
	Key string
	// Check holds the value of the check column for this row, when the
	// source was read with one. A non-empty check means the row was
	// already processed by an earlier run.
	Check string
}

// Cell addresses one output cell by row number and column letter.
type Cell struct {
	Row    int
	Column string
	Value  string
}

// Source reads an ordered sequence of input rows from a column range such
// as "A2:A". Blank and whitespace-only cells are dropped without shifting
// the row numbering of the cells that follow. checkRange may be empty.
type Source interface {
	Read(ctx context.Context, keyRange, checkRange string) ([]InputRow, error)
}

// Sink writes cells with overwrite-raw semantics. Implementations coalesce
// the given cells into a single batched update where the backend supports
// it; per-cell and batched writes must produce identical final contents.
type Sink interface {
	Write(ctx context.Context, cells []Cell) error
}
