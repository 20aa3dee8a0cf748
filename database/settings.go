package database

import (
	"strconv"
	"strings"
)

const settingsSheet = "Settings"

// Setting looks up a key in the Settings sheet, returning fallback when the
// key is absent or blank.
func (w *Workbook) Setting(name, fallback string) (string, error) {
	rows, err := w.Load(settingsSheet)
	if err != nil {
		return "", err
	}
	for _, r := range rows {
		if strings.EqualFold(strings.TrimSpace(r["Setting_Name"]), name) {
			if v := strings.TrimSpace(r["Value"]); v != "" {
				return v, nil
			}
		}
	}
	return fallback, nil
}

// SettingInt is Setting with a numeric parse; a non-numeric value yields fallback.
func (w *Workbook) SettingInt(name string, fallback int) (int, error) {
	v, err := w.Setting(name, "")
	if err != nil {
		return 0, err
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	return fallback, nil
}
