package models

import (
	"fmt"
	"strings"

	"notenledger-backend/database"
	"notenledger-backend/utils"
)

const (
	vendorSheet   = "Vendors"
	vendorIDField = "Vendor_ID"
	vendorPrefix  = "VND"
)

type Vendor struct {
	VendorID      string `json:"Vendor_ID"`
	VendorName    string `json:"Vendor_Name"`
	Address       string `json:"Address"`
	GSTIN         string `json:"GSTIN"`
	ContactPerson string `json:"Contact_Person"`
	Email         string `json:"Email"`
	Phone         string `json:"Phone"`
	LinkedCompany string `json:"Linked_Company"`
	CreatedAt     string `json:"Created_At"`
}

func vendorFromRow(r database.Row) Vendor {
	return Vendor{
		VendorID:      r["Vendor_ID"],
		VendorName:    r["Vendor_Name"],
		Address:       r["Address"],
		GSTIN:         r["GSTIN"],
		ContactPerson: r["Contact_Person"],
		Email:         r["Email"],
		Phone:         r["Phone"],
		LinkedCompany: r["Linked_Company"],
		CreatedAt:     r["Created_At"],
	}
}

func (v Vendor) row() database.Row {
	return database.Row{
		"Vendor_ID":      v.VendorID,
		"Vendor_Name":    v.VendorName,
		"Address":        v.Address,
		"GSTIN":          v.GSTIN,
		"Contact_Person": v.ContactPerson,
		"Email":          v.Email,
		"Phone":          v.Phone,
		"Linked_Company": v.LinkedCompany,
		"Created_At":     v.CreatedAt,
	}
}

type VendorInput struct {
	VendorName    string `json:"Vendor_Name" validate:"required"`
	Address       string `json:"Address"`
	GSTIN         string `json:"GSTIN"`
	ContactPerson string `json:"Contact_Person"`
	Email         string `json:"Email" validate:"omitempty,email"`
	Phone         string `json:"Phone"`
	// Weak reference to a Company id; deliberately unvalidated.
	LinkedCompany string `json:"Linked_Company"`
}

type VendorPatch struct {
	VendorName    *string `json:"Vendor_Name"`
	Address       *string `json:"Address"`
	GSTIN         *string `json:"GSTIN"`
	ContactPerson *string `json:"Contact_Person"`
	Email         *string `json:"Email"`
	Phone         *string `json:"Phone"`
	LinkedCompany *string `json:"Linked_Company"`
}

type VendorRepo struct {
	DB *database.Workbook
}

func (r VendorRepo) List() ([]Vendor, error) {
	rows, err := r.DB.Load(vendorSheet)
	if err != nil {
		return nil, err
	}
	out := make([]Vendor, 0, len(rows))
	for _, row := range rows {
		out = append(out, vendorFromRow(row))
	}
	return out, nil
}

func (r VendorRepo) Get(id string) (Vendor, error) {
	rows, err := r.DB.Load(vendorSheet)
	if err != nil {
		return Vendor{}, err
	}
	idx := findRow(rows, vendorIDField, id)
	if idx < 0 {
		return Vendor{}, fmt.Errorf("%w: vendor %s", ErrNotFound, id)
	}
	return vendorFromRow(rows[idx]), nil
}

func (r VendorRepo) Create(in VendorInput) (Vendor, error) {
	if strings.TrimSpace(in.VendorName) == "" {
		return Vendor{}, fmt.Errorf("%w: Vendor_Name is required", ErrValidation)
	}
	id, err := r.DB.NextSequential(vendorSheet, vendorIDField, vendorPrefix)
	if err != nil {
		return Vendor{}, err
	}
	v := Vendor{
		VendorID:      id,
		VendorName:    in.VendorName,
		Address:       in.Address,
		GSTIN:         in.GSTIN,
		ContactPerson: in.ContactPerson,
		Email:         in.Email,
		Phone:         in.Phone,
		LinkedCompany: in.LinkedCompany,
		CreatedAt:     nowStamp(),
	}
	if _, err := r.DB.Append(vendorSheet, database.Headers(vendorSheet), v.row()); err != nil {
		return Vendor{}, err
	}
	return v, nil
}

func (r VendorRepo) Update(actor Actor, id string, patch VendorPatch) (Vendor, error) {
	if !actor.IsAdmin() {
		return Vendor{}, fmt.Errorf("%w: admin role required", ErrPermissionDenied)
	}
	rows, err := r.DB.Load(vendorSheet)
	if err != nil {
		return Vendor{}, err
	}
	idx := findRow(rows, vendorIDField, id)
	if idx < 0 {
		return Vendor{}, fmt.Errorf("%w: vendor %s", ErrNotFound, id)
	}
	applyPatch(rows[idx], utils.UpdatesFromPtrDTO(&patch, nil))
	if err := r.DB.Save(vendorSheet, database.Headers(vendorSheet), rows); err != nil {
		return Vendor{}, err
	}
	return vendorFromRow(rows[idx]), nil
}

func (r VendorRepo) Remove(actor Actor, id string) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("%w: admin role required", ErrPermissionDenied)
	}
	rows, err := r.DB.Load(vendorSheet)
	if err != nil {
		return err
	}
	idx := findRow(rows, vendorIDField, id)
	if idx < 0 {
		return fmt.Errorf("%w: vendor %s", ErrNotFound, id)
	}
	rows = append(rows[:idx], rows[idx+1:]...)
	return r.DB.Save(vendorSheet, database.Headers(vendorSheet), rows)
}
