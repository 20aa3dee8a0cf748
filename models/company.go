package models

import (
	"fmt"
	"strings"

	"notenledger-backend/database"
	"notenledger-backend/utils"
)

const (
	companySheet   = "Companies"
	companyIDField = "Company_ID"
	companyPrefix  = "CMP"
)

type Company struct {
	CompanyID   string `json:"Company_ID"`
	CompanyName string `json:"Company_Name"`
	Address     string `json:"Address"`
	GSTIN       string `json:"GSTIN"`
	Email       string `json:"Email"`
	Phone       string `json:"Phone"`
	CreatedAt   string `json:"Created_At"`
}

func companyFromRow(r database.Row) Company {
	return Company{
		CompanyID:   r["Company_ID"],
		CompanyName: r["Company_Name"],
		Address:     r["Address"],
		GSTIN:       r["GSTIN"],
		Email:       r["Email"],
		Phone:       r["Phone"],
		CreatedAt:   r["Created_At"],
	}
}

func (c Company) row() database.Row {
	return database.Row{
		"Company_ID":   c.CompanyID,
		"Company_Name": c.CompanyName,
		"Address":      c.Address,
		"GSTIN":        c.GSTIN,
		"Email":        c.Email,
		"Phone":        c.Phone,
		"Created_At":   c.CreatedAt,
	}
}

type CompanyInput struct {
	CompanyName string `json:"Company_Name" validate:"required"`
	Address     string `json:"Address"`
	GSTIN       string `json:"GSTIN"`
	Email       string `json:"Email" validate:"omitempty,email"`
	Phone       string `json:"Phone"`
}

// CompanyPatch carries a partial update; nil fields keep the stored value.
type CompanyPatch struct {
	CompanyName *string `json:"Company_Name"`
	Address     *string `json:"Address"`
	GSTIN       *string `json:"GSTIN"`
	Email       *string `json:"Email"`
	Phone       *string `json:"Phone"`
}

type CompanyRepo struct {
	DB *database.Workbook
}

func (r CompanyRepo) List() ([]Company, error) {
	rows, err := r.DB.Load(companySheet)
	if err != nil {
		return nil, err
	}
	out := make([]Company, 0, len(rows))
	for _, row := range rows {
		out = append(out, companyFromRow(row))
	}
	return out, nil
}

func (r CompanyRepo) Get(id string) (Company, error) {
	rows, err := r.DB.Load(companySheet)
	if err != nil {
		return Company{}, err
	}
	idx := findRow(rows, companyIDField, id)
	if idx < 0 {
		return Company{}, fmt.Errorf("%w: company %s", ErrNotFound, id)
	}
	return companyFromRow(rows[idx]), nil
}

// Create is open to any authenticated caller.
func (r CompanyRepo) Create(in CompanyInput) (Company, error) {
	if strings.TrimSpace(in.CompanyName) == "" {
		return Company{}, fmt.Errorf("%w: Company_Name is required", ErrValidation)
	}
	id, err := r.DB.NextSequential(companySheet, companyIDField, companyPrefix)
	if err != nil {
		return Company{}, err
	}
	c := Company{
		CompanyID:   id,
		CompanyName: in.CompanyName,
		Address:     in.Address,
		GSTIN:       in.GSTIN,
		Email:       in.Email,
		Phone:       in.Phone,
		CreatedAt:   nowStamp(),
	}
	if _, err := r.DB.Append(companySheet, database.Headers(companySheet), c.row()); err != nil {
		return Company{}, err
	}
	return c, nil
}

func (r CompanyRepo) Update(actor Actor, id string, patch CompanyPatch) (Company, error) {
	if !actor.IsAdmin() {
		return Company{}, fmt.Errorf("%w: admin role required", ErrPermissionDenied)
	}
	rows, err := r.DB.Load(companySheet)
	if err != nil {
		return Company{}, err
	}
	idx := findRow(rows, companyIDField, id)
	if idx < 0 {
		return Company{}, fmt.Errorf("%w: company %s", ErrNotFound, id)
	}
	applyPatch(rows[idx], utils.UpdatesFromPtrDTO(&patch, nil))
	if err := r.DB.Save(companySheet, database.Headers(companySheet), rows); err != nil {
		return Company{}, err
	}
	return companyFromRow(rows[idx]), nil
}

func (r CompanyRepo) Remove(actor Actor, id string) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("%w: admin role required", ErrPermissionDenied)
	}
	rows, err := r.DB.Load(companySheet)
	if err != nil {
		return err
	}
	idx := findRow(rows, companyIDField, id)
	if idx < 0 {
		return fmt.Errorf("%w: company %s", ErrNotFound, id)
	}
	rows = append(rows[:idx], rows[idx+1:]...)
	return r.DB.Save(companySheet, database.Headers(companySheet), rows)
}
