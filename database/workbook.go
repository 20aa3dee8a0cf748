package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// ErrStoreUnavailable is returned when the backing workbook cannot be read or written.
// A missing sheet is not an error; a missing or corrupt file is.
var ErrStoreUnavailable = errors.New("store unavailable")

// Row is one record of a sheet, keyed by header name. All values are strings:
// the workbook normalizes every scalar to text on the way back.
type Row map[string]string

type sheetSchema struct {
	Name    string
	Headers []string
}

// defaultSheets is the bootstrap schema: one sheet per collection, header row first.
var defaultSheets = []sheetSchema{
	{"Companies", []string{"Company_ID", "Company_Name", "Address", "GSTIN", "Email", "Phone", "Created_At"}},
	{"Vendors", []string{"Vendor_ID", "Vendor_Name", "Address", "GSTIN", "Contact_Person", "Email", "Phone", "Linked_Company", "Created_At"}},
	{"Transactions", []string{"Transaction_ID", "Type", "Date", "Company_ID", "Vendor_ID", "Reference_No", "Reason", "Total_Amount", "Status", "Created_By", "Created_At", "Updated_By", "Updated_At", "Approved_By"}},
	{"Items", []string{"Item_ID", "Transaction_ID", "Particular", "Remarks", "Quantity", "Rate", "Tax_Percentage", "Tax_Amount", "Total_Amount"}},
	{"Settings", []string{"Setting_Name", "Value"}},
	{"Users", []string{"User_ID", "Name", "Email", "Role", "Active", "Password"}},
}

var defaultSettings = [][2]string{
	{"Debit_Prefix", "DBN"},
	{"Credit_Prefix", "CRN"},
	{"Financial_Year", "2025-26"},
	{"Default_Tax", "18"},
	{"Note_Number_Start", "001"},
}

// Headers returns the canonical header row for a sheet, matched case-insensitively.
func Headers(sheet string) []string {
	want := strings.TrimSpace(sheet)
	for _, s := range defaultSheets {
		if strings.EqualFold(s.Name, want) {
			return s.Headers
		}
	}
	return nil
}

// Workbook is the tabular store: a single .xlsx file holding one sheet per
// collection. Every mutation re-reads the file and rewrites it in full; the
// rewrite goes through a temp file + rename so readers see either the old or
// the new contents, never a partial write.
type Workbook struct {
	path string
	mu   sync.Mutex
}

// Open returns a store backed by the workbook at path, bootstrapping the file
// with the default schema and settings if it does not exist yet.
func Open(path string) (*Workbook, error) {
	w := &Workbook{path: path}
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.ensure(); err != nil {
		return nil, err
	}
	return w, nil
}

// Path returns the location of the backing file.
func (w *Workbook) Path() string {
	return w.path
}

func (w *Workbook) ensure() error {
	if _, err := os.Stat(w.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("%w: stat %s: %v", ErrStoreUnavailable, w.path, err)
	}
	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: creating %s: %v", ErrStoreUnavailable, dir, err)
		}
	}

	f := excelize.NewFile()
	defer f.Close()
	for i, s := range defaultSheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.Name); err != nil {
				return fmt.Errorf("%w: bootstrap: %v", ErrStoreUnavailable, err)
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			return fmt.Errorf("%w: bootstrap: %v", ErrStoreUnavailable, err)
		}
		if err := f.SetSheetRow(s.Name, "A1", toCells(s.Headers)); err != nil {
			return fmt.Errorf("%w: bootstrap: %v", ErrStoreUnavailable, err)
		}
	}
	for i, kv := range defaultSettings {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow("Settings", cell, toCells(kv[:])); err != nil {
			return fmt.Errorf("%w: bootstrap: %v", ErrStoreUnavailable, err)
		}
	}
	return w.writeAtomic(f)
}

// Load returns all records of the named sheet in storage order. The sheet name
// is matched case-insensitively with surrounding whitespace trimmed; an absent
// sheet yields an empty result.
func (w *Workbook) Load(sheet string) ([]Row, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.loadLocked(sheet)
}

func (w *Workbook) loadLocked(sheet string) ([]Row, error) {
	if err := w.ensure(); err != nil {
		return nil, err
	}
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrStoreUnavailable, w.path, err)
	}
	defer f.Close()

	name := resolveSheet(f, sheet)
	if name == "" {
		return nil, nil
	}
	raw, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("%w: reading sheet %s: %v", ErrStoreUnavailable, name, err)
	}
	if len(raw) < 2 {
		return nil, nil
	}
	headers := raw[0]
	out := make([]Row, 0, len(raw)-1)
	for _, cells := range raw[1:] {
		r := make(Row, len(headers))
		blank := true
		for i, h := range headers {
			if h == "" {
				continue
			}
			v := ""
			if i < len(cells) {
				v = cells[i]
			}
			if v != "" {
				blank = false
			}
			r[h] = v
		}
		if !blank {
			out = append(out, r)
		}
	}
	return out, nil
}

// Save replaces the entire contents of the named sheet with the given records,
// written in header order, then rewrites the whole backing file.
func (w *Workbook) Save(sheet string, headers []string, rows []Row) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.saveLocked(sheet, headers, rows)
}

func (w *Workbook) saveLocked(sheet string, headers []string, rows []Row) error {
	if err := w.ensure(); err != nil {
		return err
	}
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %v", ErrStoreUnavailable, w.path, err)
	}
	defer f.Close()

	name := resolveSheet(f, sheet)
	if name == "" {
		name = strings.TrimSpace(sheet)
	} else {
		// Recreating the sheet drops stale rows beyond the new length.
		if err := f.DeleteSheet(name); err != nil {
			return fmt.Errorf("%w: replacing sheet %s: %v", ErrStoreUnavailable, name, err)
		}
	}
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("%w: replacing sheet %s: %v", ErrStoreUnavailable, name, err)
	}
	if err := f.SetSheetRow(name, "A1", toCells(headers)); err != nil {
		return fmt.Errorf("%w: writing sheet %s: %v", ErrStoreUnavailable, name, err)
	}
	for i, r := range rows {
		cells := make([]interface{}, len(headers))
		for j, h := range headers {
			cells[j] = r[h]
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(name, cell, &cells); err != nil {
			return fmt.Errorf("%w: writing sheet %s: %v", ErrStoreUnavailable, name, err)
		}
	}
	return w.writeAtomic(f)
}

// Append loads the sheet, appends one record and saves it back, returning the
// stored record.
func (w *Workbook) Append(sheet string, headers []string, row Row) (Row, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	rows, err := w.loadLocked(sheet)
	if err != nil {
		return nil, err
	}
	rows = append(rows, row)
	if err := w.saveLocked(sheet, headers, rows); err != nil {
		return nil, err
	}
	return row, nil
}

func (w *Workbook) writeAtomic(f *excelize.File) error {
	// SaveAs validates the target extension, so the temp name has to keep .xlsx.
	tmp := fmt.Sprintf("%s.%s.tmp.xlsx", w.path, uuid.NewString())
	if err := f.SaveAs(tmp); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: writing %s: %v", ErrStoreUnavailable, w.path, err)
	}
	if err := os.Rename(tmp, w.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: writing %s: %v", ErrStoreUnavailable, w.path, err)
	}
	return nil
}

func resolveSheet(f *excelize.File, sheet string) string {
	want := strings.TrimSpace(sheet)
	for _, s := range f.GetSheetList() {
		if strings.EqualFold(strings.TrimSpace(s), want) {
			return s
		}
	}
	return ""
}

func toCells(values []string) *[]interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return &cells
}
