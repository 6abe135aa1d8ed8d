package export

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidCellRef is returned when a reference is not in A1 notation.
var ErrInvalidCellRef = errors.New("invalid cell reference")

// ColumnName returns the spreadsheet letters for a 1-based column index:
// 1 → A, 26 → Z, 27 → AA, 52 → AZ, 53 → BA.
func ColumnName(col int) string {
	if col < 1 {
		return ""
	}
	var letters []byte
	for col > 0 {
		col--
		letters = append(letters, byte('A'+col%26))
		col /= 26
	}
	for i, j := 0, len(letters)-1; i < j; i, j = i+1, j-1 {
		letters[i], letters[j] = letters[j], letters[i]
	}
	return string(letters)
}

// CellRef returns the A1-style reference for a 1-based row and column.
func CellRef(row, col int) string {
	return ColumnName(col) + strconv.Itoa(row)
}

// ParseCellRef is the inverse of CellRef.
func ParseCellRef(ref string) (row, col int, err error) {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	i := 0
	for i < len(ref) && ref[i] >= 'A' && ref[i] <= 'Z' {
		col = col*26 + int(ref[i]-'A'+1)
		i++
	}
	if i == 0 || i == len(ref) {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidCellRef, ref)
	}
	row, err = strconv.Atoi(ref[i:])
	if err != nil || row < 1 || ref[i] == '+' {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidCellRef, ref)
	}
	return row, col, nil
}
