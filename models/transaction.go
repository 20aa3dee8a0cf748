package models

import (
	"fmt"
	"strconv"
	"strings"

	"notenledger-backend/database"
	"notenledger-backend/utils"

	"github.com/shopspring/decimal"
)

const (
	transactionSheet   = "Transactions"
	transactionIDField = "Transaction_ID"
	itemSheet          = "Items"
	itemIDField        = "Item_ID"

	TypeCredit = "Credit"
	TypeDebit  = "Debit"

	StatusDraft    = "Draft"
	StatusCreated  = "Created"
	StatusApproved = "Approved"
)

// validStatus reports membership in the recognized status set. Any member is
// accepted on update regardless of the current state; there is no adjacency
// check beyond that.
func validStatus(s string) bool {
	return s == StatusDraft || s == StatusCreated || s == StatusApproved
}

// Transaction is a debit or credit note. Total_Amount is the sum of the owned
// items' totals as of the last write; it is not recomputed on read.
type Transaction struct {
	TransactionID string          `json:"Transaction_ID"`
	Type          string          `json:"Type"`
	Date          string          `json:"Date"`
	CompanyID     string          `json:"Company_ID"`
	VendorID      string          `json:"Vendor_ID"`
	ReferenceNo   string          `json:"Reference_No"`
	Reason        string          `json:"Reason"`
	TotalAmount   decimal.Decimal `json:"Total_Amount"`
	Status        string          `json:"Status"`
	CreatedBy     string          `json:"Created_By"`
	CreatedAt     string          `json:"Created_At"`
	UpdatedBy     string          `json:"Updated_By"`
	UpdatedAt     string          `json:"Updated_At"`
	ApprovedBy    string          `json:"Approved_By"`
}

// Item is a line exclusively owned by one transaction. Tax_Amount and
// Total_Amount are derived from quantity, rate and tax percentage on every
// write and never trusted from caller input.
type Item struct {
	ItemID        string          `json:"Item_ID"`
	TransactionID string          `json:"Transaction_ID"`
	Particular    string          `json:"Particular"`
	Remarks       string          `json:"Remarks"`
	Quantity      decimal.Decimal `json:"Quantity"`
	Rate          decimal.Decimal `json:"Rate"`
	TaxPercentage decimal.Decimal `json:"Tax_Percentage"`
	TaxAmount     decimal.Decimal `json:"Tax_Amount"`
	TotalAmount   decimal.Decimal `json:"Total_Amount"`
}

func transactionFromRow(r database.Row) Transaction {
	return Transaction{
		TransactionID: r["Transaction_ID"],
		Type:          r["Type"],
		Date:          r["Date"],
		CompanyID:     r["Company_ID"],
		VendorID:      r["Vendor_ID"],
		ReferenceNo:   r["Reference_No"],
		Reason:        r["Reason"],
		TotalAmount:   utils.ParseAmount(r["Total_Amount"]),
		Status:        r["Status"],
		CreatedBy:     r["Created_By"],
		CreatedAt:     r["Created_At"],
		UpdatedBy:     r["Updated_By"],
		UpdatedAt:     r["Updated_At"],
		ApprovedBy:    r["Approved_By"],
	}
}

func (t Transaction) row() database.Row {
	return database.Row{
		"Transaction_ID": t.TransactionID,
		"Type":           t.Type,
		"Date":           t.Date,
		"Company_ID":     t.CompanyID,
		"Vendor_ID":      t.VendorID,
		"Reference_No":   t.ReferenceNo,
		"Reason":         t.Reason,
		"Total_Amount":   t.TotalAmount.StringFixed(2),
		"Status":         t.Status,
		"Created_By":     t.CreatedBy,
		"Created_At":     t.CreatedAt,
		"Updated_By":     t.UpdatedBy,
		"Updated_At":     t.UpdatedAt,
		"Approved_By":    t.ApprovedBy,
	}
}

func itemFromRow(r database.Row) Item {
	return Item{
		ItemID:        r["Item_ID"],
		TransactionID: r["Transaction_ID"],
		Particular:    r["Particular"],
		Remarks:       r["Remarks"],
		Quantity:      utils.ParseAmount(r["Quantity"]),
		Rate:          utils.ParseAmount(r["Rate"]),
		TaxPercentage: utils.ParseAmount(r["Tax_Percentage"]),
		TaxAmount:     utils.ParseAmount(r["Tax_Amount"]),
		TotalAmount:   utils.ParseAmount(r["Total_Amount"]),
	}
}

func (it Item) row() database.Row {
	return database.Row{
		"Item_ID":        it.ItemID,
		"Transaction_ID": it.TransactionID,
		"Particular":     it.Particular,
		"Remarks":        it.Remarks,
		"Quantity":       it.Quantity.String(),
		"Rate":           it.Rate.String(),
		"Tax_Percentage": it.TaxPercentage.String(),
		"Tax_Amount":     it.TaxAmount.StringFixed(2),
		"Total_Amount":   it.TotalAmount.StringFixed(2),
	}
}

type ItemInput struct {
	Particular    string   `json:"Particular"`
	Remarks       string   `json:"Remarks"`
	Quantity      float64  `json:"Quantity" validate:"min=0"`
	Rate          float64  `json:"Rate"`
	TaxPercentage *float64 `json:"Tax_Percentage" validate:"omitempty,min=0,max=100"`
}

type TransactionInput struct {
	// Type is classified case-insensitively; anything that is not credit counts as debit.
	Type        string      `json:"Type"`
	Date        string      `json:"Date"`
	CompanyID   string      `json:"Company_ID"`
	VendorID    string      `json:"Vendor_ID"`
	ReferenceNo string      `json:"Reference_No"`
	Reason      string      `json:"Reason"`
	Status      string      `json:"Status"`
	Items       []ItemInput `json:"Items"`
}

// TransactionPatch overlays supplied fields; a nil Items slice leaves the item
// set untouched, a non-nil slice replaces it wholesale.
type TransactionPatch struct {
	Type        *string     `json:"Type"`
	Date        *string     `json:"Date"`
	CompanyID   *string     `json:"Company_ID"`
	VendorID    *string     `json:"Vendor_ID"`
	ReferenceNo *string     `json:"Reference_No"`
	Reason      *string     `json:"Reason"`
	Status      *string     `json:"Status"`
	Items       []ItemInput `json:"Items"`
}

// TransactionRepo coordinates the Transactions and Items sheets as one logical
// unit. The two sheets are written separately; if the second write fails the
// pair can be left inconsistent, a known limit of the workbook store.
type TransactionRepo struct {
	DB *database.Workbook
}

func (r TransactionRepo) prefixFor(typ string) (string, error) {
	if strings.EqualFold(typ, TypeCredit) {
		return r.DB.Setting("Credit_Prefix", "CRN")
	}
	return r.DB.Setting("Debit_Prefix", "DBN")
}

func (r TransactionRepo) defaultTax() (decimal.Decimal, error) {
	v, err := r.DB.Setting("Default_Tax", "18")
	if err != nil {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil {
		return decimal.NewFromInt(18), nil
	}
	return d, nil
}

// buildItem derives the tax and total fields for one line.
func buildItem(itemID, txID string, in ItemInput, defaultTax decimal.Decimal) Item {
	qty := decimal.NewFromFloat(in.Quantity)
	rate := decimal.NewFromFloat(in.Rate)
	tax := defaultTax
	if in.TaxPercentage != nil {
		tax = decimal.NewFromFloat(*in.TaxPercentage)
	}
	base := qty.Mul(rate)
	taxAmount := base.Mul(tax).Div(decimal.NewFromInt(100))
	return Item{
		ItemID:        itemID,
		TransactionID: txID,
		Particular:    in.Particular,
		Remarks:       in.Remarks,
		Quantity:      qty,
		Rate:          rate,
		TaxPercentage: tax,
		TaxAmount:     taxAmount,
		TotalAmount:   base.Add(taxAmount),
	}
}

func itemID(txID string, seq int) string {
	return fmt.Sprintf("%s-ITM%s", txID, database.Pad(seq, 3))
}

// itemSeq extracts the numeric sequence after "ITM" in an item id, 0 if absent.
func itemSeq(id string) int {
	_, after, ok := strings.Cut(id, "ITM")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(after)
	if err != nil {
		return 0
	}
	return n
}

func (r TransactionRepo) List() ([]Transaction, error) {
	rows, err := r.DB.Load(transactionSheet)
	if err != nil {
		return nil, err
	}
	out := make([]Transaction, 0, len(rows))
	for _, row := range rows {
		out = append(out, transactionFromRow(row))
	}
	return out, nil
}

func (r TransactionRepo) Get(id string) (Transaction, []Item, error) {
	rows, err := r.DB.Load(transactionSheet)
	if err != nil {
		return Transaction{}, nil, err
	}
	idx := findRow(rows, transactionIDField, id)
	if idx < 0 {
		return Transaction{}, nil, fmt.Errorf("%w: transaction %s", ErrNotFound, id)
	}
	items, err := r.itemsOf(id)
	if err != nil {
		return Transaction{}, nil, err
	}
	return transactionFromRow(rows[idx]), items, nil
}

func (r TransactionRepo) itemsOf(txID string) ([]Item, error) {
	rows, err := r.DB.Load(itemSheet)
	if err != nil {
		return nil, err
	}
	var items []Item
	for _, row := range rows {
		if row["Transaction_ID"] == txID {
			items = append(items, itemFromRow(row))
		}
	}
	return items, nil
}

// ListItems exposes the Items sheet read-only; items are only ever written
// through their owning transaction.
func (r TransactionRepo) ListItems() ([]Item, error) {
	rows, err := r.DB.Load(itemSheet)
	if err != nil {
		return nil, err
	}
	out := make([]Item, 0, len(rows))
	for _, row := range rows {
		out = append(out, itemFromRow(row))
	}
	return out, nil
}

func (r TransactionRepo) GetItem(id string) (Item, error) {
	rows, err := r.DB.Load(itemSheet)
	if err != nil {
		return Item{}, err
	}
	idx := findRow(rows, itemIDField, id)
	if idx < 0 {
		return Item{}, fmt.Errorf("%w: item %s", ErrNotFound, id)
	}
	return itemFromRow(rows[idx]), nil
}

// Create assigns the note id (prefix chosen by type, one counter shared across
// both prefixes), derives every item's fields, sums the transaction total and
// persists the pair.
func (r TransactionRepo) Create(actor Actor, in TransactionInput) (Transaction, []Item, error) {
	typ := in.Type
	if typ == "" {
		typ = TypeDebit
	}
	prefix, err := r.prefixFor(typ)
	if err != nil {
		return Transaction{}, nil, err
	}
	start, err := r.DB.SettingInt("Note_Number_Start", 1)
	if err != nil {
		return Transaction{}, nil, err
	}
	id, err := r.DB.NextSequentialFrom(transactionSheet, transactionIDField, prefix, start)
	if err != nil {
		return Transaction{}, nil, err
	}
	defTax, err := r.defaultTax()
	if err != nil {
		return Transaction{}, nil, err
	}

	items := make([]Item, 0, len(in.Items))
	total := decimal.Zero
	for i, it := range in.Items {
		item := buildItem(itemID(id, i+1), id, it, defTax)
		total = total.Add(item.TotalAmount)
		items = append(items, item)
	}

	status := StatusDraft
	if validStatus(in.Status) {
		status = in.Status
	}
	createdBy := actor.Name
	if createdBy == "" {
		createdBy = "Unknown User"
	}
	now := nowStamp()
	date := in.Date
	if date == "" {
		date = now
	}

	tx := Transaction{
		TransactionID: id,
		Type:          typ,
		Date:          date,
		CompanyID:     in.CompanyID,
		VendorID:      in.VendorID,
		ReferenceNo:   in.ReferenceNo,
		Reason:        in.Reason,
		TotalAmount:   total,
		Status:        status,
		CreatedBy:     createdBy,
		CreatedAt:     now,
	}
	if _, err := r.DB.Append(transactionSheet, database.Headers(transactionSheet), tx.row()); err != nil {
		return Transaction{}, nil, err
	}

	itemRows, err := r.DB.Load(itemSheet)
	if err != nil {
		return Transaction{}, nil, err
	}
	for _, it := range items {
		itemRows = append(itemRows, it.row())
	}
	if err := r.DB.Save(itemSheet, database.Headers(itemSheet), itemRows); err != nil {
		return Transaction{}, nil, err
	}
	return tx, items, nil
}

// Update overlays the supplied fields. A status outside the recognized set
// keeps the previous status; any recognized value is accepted. Updated_At/By
// are refreshed only on Draft->Created, on entering Approved from a
// non-Approved state, or when a non-empty item list was supplied. A non-nil
// item list replaces the transaction's item set wholesale: positions with an
// existing item reuse its id, extra positions continue the ITM sequence from
// the highest existing number, and omitted items are dropped.
func (r TransactionRepo) Update(actor Actor, id string, patch TransactionPatch) (Transaction, []Item, error) {
	rows, err := r.DB.Load(transactionSheet)
	if err != nil {
		return Transaction{}, nil, err
	}
	idx := findRow(rows, transactionIDField, id)
	if idx < 0 {
		return Transaction{}, nil, fmt.Errorf("%w: transaction %s", ErrNotFound, id)
	}

	prevStatus := rows[idx]["Status"]
	cleanStatus := prevStatus
	if patch.Status != nil && validStatus(*patch.Status) {
		cleanStatus = *patch.Status
	}

	updates := utils.UpdatesFromPtrDTO(&patch, nil)
	delete(updates, "Status")
	applyPatch(rows[idx], updates)
	rows[idx]["Status"] = cleanStatus

	shouldStamp := (cleanStatus == StatusCreated && prevStatus == StatusDraft) ||
		(cleanStatus == StatusApproved && prevStatus != StatusApproved) ||
		len(patch.Items) > 0
	if shouldStamp {
		name := actor.Name
		if name == "" {
			name = "Unknown User"
		}
		rows[idx]["Updated_At"] = nowStamp()
		rows[idx]["Updated_By"] = name
	}

	var newItems []Item
	if patch.Items != nil {
		defTax, err := r.defaultTax()
		if err != nil {
			return Transaction{}, nil, err
		}
		allItems, err := r.DB.Load(itemSheet)
		if err != nil {
			return Transaction{}, nil, err
		}
		var current []Item
		var otherRows []database.Row
		for _, row := range allItems {
			if row["Transaction_ID"] == id {
				current = append(current, itemFromRow(row))
			} else {
				otherRows = append(otherRows, row)
			}
		}
		nextSeq := 1
		for _, it := range current {
			if n := itemSeq(it.ItemID); n >= nextSeq {
				nextSeq = n + 1
			}
		}

		total := decimal.Zero
		newItems = make([]Item, 0, len(patch.Items))
		for i, in := range patch.Items {
			var iid string
			if i < len(current) {
				iid = current[i].ItemID
			} else {
				iid = itemID(id, nextSeq)
				nextSeq++
			}
			item := buildItem(iid, id, in, defTax)
			total = total.Add(item.TotalAmount)
			newItems = append(newItems, item)
		}
		rows[idx]["Total_Amount"] = total.StringFixed(2)

		if err := r.DB.Save(transactionSheet, database.Headers(transactionSheet), rows); err != nil {
			return Transaction{}, nil, err
		}
		for _, it := range newItems {
			otherRows = append(otherRows, it.row())
		}
		if err := r.DB.Save(itemSheet, database.Headers(itemSheet), otherRows); err != nil {
			return Transaction{}, nil, err
		}
		return transactionFromRow(rows[idx]), newItems, nil
	}

	if err := r.DB.Save(transactionSheet, database.Headers(transactionSheet), rows); err != nil {
		return Transaction{}, nil, err
	}
	items, err := r.itemsOf(id)
	if err != nil {
		return Transaction{}, nil, err
	}
	return transactionFromRow(rows[idx]), items, nil
}

// Approve sets Status to Approved unconditionally and stamps Approved_By.
// Unlike Update, no membership check is applied on this entry point.
func (r TransactionRepo) Approve(actor Actor, id string) (Transaction, error) {
	rows, err := r.DB.Load(transactionSheet)
	if err != nil {
		return Transaction{}, err
	}
	idx := findRow(rows, transactionIDField, id)
	if idx < 0 {
		return Transaction{}, fmt.Errorf("%w: transaction %s", ErrNotFound, id)
	}
	name := actor.Name
	if name == "" {
		name = "system"
	}
	rows[idx]["Status"] = StatusApproved
	rows[idx]["Approved_By"] = name
	if err := r.DB.Save(transactionSheet, database.Headers(transactionSheet), rows); err != nil {
		return Transaction{}, err
	}
	return transactionFromRow(rows[idx]), nil
}
