package sheets

import (
	"fmt"
	"strconv"
	"strings"
)

// ColumnLetter converts a 0-based column index to its letter form
// (0 -> A, 25 -> Z, 26 -> AA).
func ColumnLetter(index int) string {
	letters := ""
	for index >= 0 {
		letters = string(rune('A'+index%26)) + letters
		index = index/26 - 1
	}
	return letters
}

// ColumnIndex converts a column letter to its 0-based index (A -> 0).
func ColumnIndex(column string) int {
	index := 0
	for _, r := range strings.ToUpper(column) {
		index = index*26 + int(r-'A') + 1
	}
	return index - 1
}

// CellRef builds an A1 cell reference like "C5".
func CellRef(column string, row int) string {
	return fmt.Sprintf("%s%d", column, row)
}

// ParseColumnRange splits an open or bounded single-column range such as
// "A2:A" or "G2:G500" into its column letter, start row, and end row
// (0 when the range is open-ended).
func ParseColumnRange(rng string) (column string, startRow, endRow int, err error) {
	parts := strings.SplitN(rng, ":", 2)
	if len(parts) != 2 {
		return "", 0, 0, fmt.Errorf("invalid range %q: expected COL<row>:COL", rng)
	}
	column, startRow, err = splitCellRef(parts[0])
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid range %q: %w", rng, err)
	}
	endColumn, end, err := splitCellRef(parts[1])
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid range %q: %w", rng, err)
	}
	if endColumn != column {
		return "", 0, 0, fmt.Errorf("invalid range %q: spans multiple columns", rng)
	}
	return column, startRow, end, nil
}

// splitCellRef splits "A2" into ("A", 2). A bare column like "A" yields
// row 0.
func splitCellRef(ref string) (string, int, error) {
	i := 0
	for i < len(ref) && ref[i] >= 'A' && ref[i] <= 'Z' {
		i++
	}
	if i == 0 {
		return "", 0, fmt.Errorf("missing column letter in %q", ref)
	}
	if i == len(ref) {
		return ref, 0, nil
	}
	row, err := strconv.Atoi(ref[i:])
	if err != nil || row < 1 {
		return "", 0, fmt.Errorf("bad row number in %q", ref)
	}
	return ref[:i], row, nil
}
