package xl

import (
	"strconv"
)

// MaxRowCount is the number of rows a worksheet can hold.
const MaxRowCount = 1_048_576

// newRow appends the next numbered <row> to sheetData. The counter only
// advances when the row is actually created.
func (ws *Worksheet) newRow() (*Element, int, error) {
	if ws.nextRowNumber > MaxRowCount {
		return nil, 0, ErrTooManyRows
	}
	n := ws.nextRowNumber
	row, err := ws.doc.Append("row", map[string]string{"r": strconv.Itoa(n)}, ws.sheetData)
	if err != nil {
		return nil, 0, err
	}
	ws.nextRowNumber++
	ws.logger.Debug("row", "r", n)
	return row, n, nil
}

// ColumnName returns the letters of the 1-based column n: 1 is "A",
// 27 is "AA".
func ColumnName(n int) string {
	if n < 1 {
		panic("invalid column number")
	}
	var b []byte
	for ; n > 0; n = (n - 1) / 26 {
		b = append(b, byte('A'+(n-1)%26))
	}
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// CellRef returns the A1-style reference of the cell at col, row (both 1-based).
func CellRef(col, row int) string {
	if row < 1 {
		panic("invalid row number")
	}
	return ColumnName(col) + strconv.Itoa(row)
}
