package database

import (
	"fmt"
	"regexp"
	"strconv"
)

var trailingDigits = regexp.MustCompile(`\d+$`)

// Pad formats n zero-padded to at least width digits ("7" -> "007", 1000 -> "1000").
func Pad(n, width int) string {
	return fmt.Sprintf("%0*d", width, n)
}

// NextSequential derives the next id for a sheet as prefix + zero-padded counter.
func (w *Workbook) NextSequential(sheet, idField, prefix string) (string, error) {
	return w.NextSequentialFrom(sheet, idField, prefix, 1)
}

// NextSequentialFrom is NextSequential with an explicit start value for an
// empty sheet (Note_Number_Start for transactions).
//
// The counter is derived from the trailing digit run of the last record's id
// in load order, not the maximum: the sheet is append-only, so the last row
// carries the highest suffix. Note types share this one counter, which is why
// credit and debit numbering interleaves. An id without trailing digits falls
// back to rowCount+1.
func (w *Workbook) NextSequentialFrom(sheet, idField, prefix string, start int) (string, error) {
	rows, err := w.Load(sheet)
	if err != nil {
		return "", err
	}
	if start < 1 {
		start = 1
	}
	if len(rows) == 0 {
		return prefix + Pad(start, 3), nil
	}
	last := rows[len(rows)-1][idField]
	if last == "" {
		return prefix + Pad(start, 3), nil
	}
	if digits := trailingDigits.FindString(last); digits != "" {
		if n, err := strconv.Atoi(digits); err == nil {
			return prefix + Pad(n+1, 3), nil
		}
	}
	return prefix + Pad(len(rows)+1, 3), nil
}
