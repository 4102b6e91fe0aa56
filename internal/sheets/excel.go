package sheets

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Excel is a local xlsx workbook backend implementing Source and Sink. It
// exists for offline runs and for exercising the pipeline without Sheets
// API credentials.
type Excel struct {
	file      *excelize.File
	path      string
	sheetName string
}

// OpenExcel opens an existing workbook.
func OpenExcel(path, sheetName string) (*Excel, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open workbook %s: %v", ErrSourceUnavailable, path, err)
	}
	idx, err := f.GetSheetIndex(sheetName)
	if err != nil || idx < 0 {
		f.Close()
		return nil, fmt.Errorf("%w: sheet %q not found in %s", ErrSourceUnavailable, sheetName, path)
	}
	return &Excel{file: f, path: path, sheetName: sheetName}, nil
}

// Close releases the underlying file handle.
func (e *Excel) Close() error {
	return e.file.Close()
}

// Read fetches keyRange (and optionally checkRange) and pairs them up by
// original row number, dropping blank keys.
func (e *Excel) Read(_ context.Context, keyRange, checkRange string) ([]InputRow, error) {
	startRow, keys, err := e.readColumn(keyRange)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	var checks []string
	if checkRange != "" {
		_, checks, err = e.readColumn(checkRange)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
		}
	}

	return pairRows(keys, checks, startRow), nil
}

func (e *Excel) readColumn(rng string) (int, []string, error) {
	column, startRow, endRow, err := ParseColumnRange(rng)
	if err != nil {
		return 0, nil, err
	}
	if endRow == 0 {
		rows, err := e.file.GetRows(e.sheetName)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to read sheet %s: %w", e.sheetName, err)
		}
		endRow = len(rows)
	}

	var values []string
	for row := startRow; row <= endRow; row++ {
		v, err := e.file.GetCellValue(e.sheetName, CellRef(column, row))
		if err != nil {
			return 0, nil, fmt.Errorf("failed to read cell %s: %w", CellRef(column, row), err)
		}
		values = append(values, v)
	}
	return startRow, values, nil
}

// Write sets every cell and saves the workbook once per batch.
func (e *Excel) Write(_ context.Context, cells []Cell) error {
	if len(cells) == 0 {
		return nil
	}
	for _, c := range cells {
		if err := e.file.SetCellValue(e.sheetName, CellRef(c.Column, c.Row), c.Value); err != nil {
			return fmt.Errorf("%w: cell %s: %v", ErrSinkWrite, CellRef(c.Column, c.Row), err)
		}
	}
	if err := e.file.Save(); err != nil {
		return fmt.Errorf("%w: failed to save %s: %v", ErrSinkWrite, e.path, err)
	}
	return nil
}
