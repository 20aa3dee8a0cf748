package models

import (
	"fmt"
	"time"

	"notenledger-backend/database"
)

// findRow returns the index of the first row whose field equals id, or -1.
func findRow(rows []database.Row, field, id string) int {
	for i, r := range rows {
		if r[field] == id {
			return i
		}
	}
	return -1
}

// applyPatch overlays the supplied fields onto a stored row. Values are
// coerced to strings, matching what the workbook hands back.
func applyPatch(r database.Row, updates map[string]any) {
	for k, v := range updates {
		r[k] = fmt.Sprint(v)
	}
}

func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
