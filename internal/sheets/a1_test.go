package sheets

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestColumnLetter(t *testing.T) {
	require.Equal(t, "A", ColumnLetter(0))
	require.Equal(t, "C", ColumnLetter(2))
	require.Equal(t, "Z", ColumnLetter(25))
	require.Equal(t, "AA", ColumnLetter(26))
	require.Equal(t, "AB", ColumnLetter(27))
	require.Equal(t, "AZ", ColumnLetter(51))
	require.Equal(t, "BA", ColumnLetter(52))
	require.Equal(t, "ZZ", ColumnLetter(701))
	require.Equal(t, "AAA", ColumnLetter(702))
}

func TestColumnIndexRoundTrip(t *testing.T) {
	for i := 0; i < 1000; i++ {
		require.Equal(t, i, ColumnIndex(ColumnLetter(i)))
	}
	require.Equal(t, 19, ColumnIndex("T"))
}

func TestCellRef(t *testing.T) {
	require.Equal(t, "C5", CellRef("C", 5))
	require.Equal(t, "AA102", CellRef("AA", 102))
}

func TestParseColumnRange(t *testing.T) {
	col, start, end, err := ParseColumnRange("A2:A")
	require.NoError(t, err)
	require.Equal(t, "A", col)
	require.Equal(t, 2, start)
	require.Equal(t, 0, end)

	col, start, end, err = ParseColumnRange("G2:G500")
	require.NoError(t, err)
	require.Equal(t, "G", col)
	require.Equal(t, 2, start)
	require.Equal(t, 500, end)

	_, _, _, err = ParseColumnRange("A2")
	require.Error(t, err)

	_, _, _, err = ParseColumnRange("A2:B")
	require.Error(t, err)

	_, _, _, err = ParseColumnRange("2:A")
	require.Error(t, err)
}

func TestPairRows(t *testing.T) {
	keys := []string{"1234567", "", "  ", "7654321"}
	checks := []string{"", "x"}

	rows := pairRows(keys, checks, 2)
	require.Len(t, rows, 2)
	require.Equal(t, InputRow{Index: 2, Key: "1234567"}, rows[0])
	// Blank keys are dropped without shifting the numbering of later rows.
	require.Equal(t, InputRow{Index: 5, Key: "7654321"}, rows[1])
}
