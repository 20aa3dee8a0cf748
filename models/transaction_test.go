package models_test

import (
	"errors"
	"path/filepath"
	"testing"

	"notenledger-backend/database"
	"notenledger-backend/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

func newWorkbook(t *testing.T) *database.Workbook {
	t.Helper()
	wb, err := database.Open(filepath.Join(t.TempDir(), "database.xlsx"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return wb
}

func f64(v float64) *float64 { return &v }

func str(v string) *string { return &v }

var (
	admin  = models.Actor{ID: "USR001", Name: "Asha", Email: "asha@example.com", Role: models.RoleAdmin}
	viewer = models.Actor{ID: "USR002", Name: "Vik", Email: "vik@example.com", Role: models.RoleViewer}
)

func mustEqual(t *testing.T, got decimal.Decimal, want string, label string) {
	t.Helper()
	w, err := decimal.NewFromString(want)
	if err != nil {
		t.Fatalf("bad want %q: %v", want, err)
	}
	if !got.Equal(w) {
		t.Fatalf("%s = %s, want %s", label, got.String(), want)
	}
}

func TestCreateCreditNote(t *testing.T) {
	repo := models.TransactionRepo{DB: newWorkbook(t)}

	tx, items, err := repo.Create(admin, models.TransactionInput{
		Type:      "Credit",
		CompanyID: "CMP001",
		Items: []models.ItemInput{
			{Particular: "Freight adjustment", Quantity: 2, Rate: 100, TaxPercentage: f64(18)},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if tx.TransactionID != "CRN001" {
		t.Errorf("Transaction_ID = %q, want CRN001", tx.TransactionID)
	}
	if tx.Status != models.StatusDraft {
		t.Errorf("Status = %q, want Draft", tx.Status)
	}
	if tx.CreatedBy != "Asha" {
		t.Errorf("Created_By = %q, want Asha", tx.CreatedBy)
	}
	mustEqual(t, tx.TotalAmount, "236", "Total_Amount")

	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].ItemID != "CRN001-ITM001" {
		t.Errorf("Item_ID = %q, want CRN001-ITM001", items[0].ItemID)
	}
	mustEqual(t, items[0].TaxAmount, "36", "Tax_Amount")
	mustEqual(t, items[0].TotalAmount, "236", "item Total_Amount")

	stored, storedItems, err := repo.Get("CRN001")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	mustEqual(t, stored.TotalAmount, "236", "stored Total_Amount")
	if len(storedItems) != 1 || storedItems[0].ItemID != "CRN001-ITM001" {
		t.Fatalf("stored items = %+v", storedItems)
	}
}

func TestCreateInterleavesNoteNumbers(t *testing.T) {
	repo := models.TransactionRepo{DB: newWorkbook(t)}

	debit, _, err := repo.Create(admin, models.TransactionInput{Type: "Debit"})
	if err != nil {
		t.Fatalf("Create debit: %v", err)
	}
	credit, _, err := repo.Create(admin, models.TransactionInput{Type: "Credit"})
	if err != nil {
		t.Fatalf("Create credit: %v", err)
	}

	if debit.TransactionID != "DBN001" {
		t.Errorf("debit id = %q, want DBN001", debit.TransactionID)
	}
	if credit.TransactionID != "CRN002" {
		t.Errorf("credit id = %q, want CRN002", credit.TransactionID)
	}
}

func TestCreateClassifiesTypeCaseInsensitively(t *testing.T) {
	repo := models.TransactionRepo{DB: newWorkbook(t)}

	in := models.TransactionInput{Type: "CREDIT"}
	if err := validator.New().Struct(in); err != nil {
		t.Fatalf("uppercase type rejected by validation: %v", err)
	}

	tx, _, err := repo.Create(admin, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if tx.TransactionID != "CRN001" {
		t.Errorf("id = %q, want CRN001 (CREDIT classified as credit)", tx.TransactionID)
	}

	// Anything that is not credit falls back to the debit prefix.
	tx, _, err = repo.Create(admin, models.TransactionInput{Type: "adjustment"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if tx.TransactionID != "DBN002" {
		t.Errorf("id = %q, want DBN002", tx.TransactionID)
	}
}

func TestCreateDefaultsTaxFromSettings(t *testing.T) {
	repo := models.TransactionRepo{DB: newWorkbook(t)}

	_, items, err := repo.Create(admin, models.TransactionInput{
		Type:  "Credit",
		Items: []models.ItemInput{{Particular: "Line", Quantity: 1, Rate: 100}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	mustEqual(t, items[0].TaxPercentage, "18", "Tax_Percentage")
	mustEqual(t, items[0].TotalAmount, "118", "Total_Amount")
}

func TestCreateAcceptsRecognizedStatusOnly(t *testing.T) {
	repo := models.TransactionRepo{DB: newWorkbook(t)}

	tx, _, err := repo.Create(admin, models.TransactionInput{Type: "Credit", Status: "Created"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if tx.Status != models.StatusCreated {
		t.Errorf("Status = %q, want Created", tx.Status)
	}

	tx, _, err = repo.Create(admin, models.TransactionInput{Type: "Credit", Status: "Shipped"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if tx.Status != models.StatusDraft {
		t.Errorf("unrecognized status stored as %q, want Draft", tx.Status)
	}
}

func TestUpdateIgnoresBogusStatus(t *testing.T) {
	repo := models.TransactionRepo{DB: newWorkbook(t)}
	tx, _, err := repo.Create(admin, models.TransactionInput{Type: "Credit", Status: "Created"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, _, err := repo.Update(admin, tx.TransactionID, models.TransactionPatch{Status: str("Bogus")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != models.StatusCreated {
		t.Errorf("Status = %q, want Created (bogus value ignored)", updated.Status)
	}
}

func TestUpdateStampsOnlyOnAuditedTransitions(t *testing.T) {
	repo := models.TransactionRepo{DB: newWorkbook(t)}
	tx, _, err := repo.Create(admin, models.TransactionInput{Type: "Credit"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Plain field edit on a Draft does not touch the audit trail.
	updated, _, err := repo.Update(admin, tx.TransactionID, models.TransactionPatch{Reason: str("price revision")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.UpdatedAt != "" || updated.UpdatedBy != "" {
		t.Fatalf("plain edit stamped Updated_At=%q Updated_By=%q", updated.UpdatedAt, updated.UpdatedBy)
	}

	// Draft -> Approved stamps.
	updated, _, err = repo.Update(admin, tx.TransactionID, models.TransactionPatch{Status: str("Approved")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.UpdatedAt == "" || updated.UpdatedBy != "Asha" {
		t.Fatalf("transition to Approved did not stamp: Updated_At=%q Updated_By=%q", updated.UpdatedAt, updated.UpdatedBy)
	}

	// Approved -> Approved again, by someone else, must not re-stamp.
	updated, _, err = repo.Update(viewer, tx.TransactionID, models.TransactionPatch{Status: str("Approved")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.UpdatedBy != "Asha" {
		t.Fatalf("repeated Approved re-stamped Updated_By = %q, want Asha", updated.UpdatedBy)
	}
}

func TestUpdateStampsDraftToCreated(t *testing.T) {
	repo := models.TransactionRepo{DB: newWorkbook(t)}
	tx, _, err := repo.Create(admin, models.TransactionInput{Type: "Debit"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, _, err := repo.Update(viewer, tx.TransactionID, models.TransactionPatch{Status: str("Created")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != models.StatusCreated {
		t.Errorf("Status = %q, want Created", updated.Status)
	}
	if updated.UpdatedBy != "Vik" || updated.UpdatedAt == "" {
		t.Errorf("Draft->Created did not stamp: Updated_By=%q Updated_At=%q", updated.UpdatedBy, updated.UpdatedAt)
	}
}

func TestUpdateReplacesItemSet(t *testing.T) {
	repo := models.TransactionRepo{DB: newWorkbook(t)}
	tx, _, err := repo.Create(admin, models.TransactionInput{
		Type: "Credit",
		Items: []models.ItemInput{
			{Particular: "A", Quantity: 1, Rate: 100, TaxPercentage: f64(0)},
			{Particular: "B", Quantity: 1, Rate: 200, TaxPercentage: f64(0)},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	other, _, err := repo.Create(admin, models.TransactionInput{
		Type:  "Debit",
		Items: []models.ItemInput{{Particular: "Untouched", Quantity: 1, Rate: 50, TaxPercentage: f64(0)}},
	})
	if err != nil {
		t.Fatalf("Create other: %v", err)
	}

	// Three supplied lines against two existing: positions 1 and 2 reuse their
	// ids, the third continues the sequence.
	updated, items, err := repo.Update(admin, tx.TransactionID, models.TransactionPatch{
		Items: []models.ItemInput{
			{Particular: "A2", Quantity: 2, Rate: 100, TaxPercentage: f64(0)},
			{Particular: "B2", Quantity: 1, Rate: 200, TaxPercentage: f64(0)},
			{Particular: "C", Quantity: 1, Rate: 300, TaxPercentage: f64(0)},
		},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	wantIDs := []string{
		tx.TransactionID + "-ITM001",
		tx.TransactionID + "-ITM002",
		tx.TransactionID + "-ITM003",
	}
	for i, want := range wantIDs {
		if items[i].ItemID != want {
			t.Errorf("item %d id = %q, want %q", i, items[i].ItemID, want)
		}
	}
	mustEqual(t, updated.TotalAmount, "700", "Total_Amount after replace")

	// Shrink to one line: the rest are dropped.
	_, items, err = repo.Update(admin, tx.TransactionID, models.TransactionPatch{
		Items: []models.ItemInput{{Particular: "Only", Quantity: 1, Rate: 10, TaxPercentage: f64(0)}},
	})
	if err != nil {
		t.Fatalf("Update shrink: %v", err)
	}
	if len(items) != 1 || items[0].ItemID != tx.TransactionID+"-ITM001" {
		t.Fatalf("shrink left %+v", items)
	}

	// Items of other transactions survive the rewrite.
	_, otherItems, err := repo.Get(other.TransactionID)
	if err != nil {
		t.Fatalf("Get other: %v", err)
	}
	if len(otherItems) != 1 || otherItems[0].Particular != "Untouched" {
		t.Fatalf("other transaction's items disturbed: %+v", otherItems)
	}
}

func TestUpdateWithoutItemsKeepsTotal(t *testing.T) {
	repo := models.TransactionRepo{DB: newWorkbook(t)}
	tx, _, err := repo.Create(admin, models.TransactionInput{
		Type:  "Credit",
		Items: []models.ItemInput{{Particular: "A", Quantity: 2, Rate: 100, TaxPercentage: f64(18)}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, items, err := repo.Update(admin, tx.TransactionID, models.TransactionPatch{Reason: str("rate dispute")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	mustEqual(t, updated.TotalAmount, "236", "Total_Amount")
	if len(items) != 1 {
		t.Fatalf("item set changed: %+v", items)
	}
	if updated.Reason != "rate dispute" {
		t.Errorf("Reason = %q", updated.Reason)
	}
}

func TestUpdateMissingTransaction(t *testing.T) {
	repo := models.TransactionRepo{DB: newWorkbook(t)}
	if _, _, err := repo.Update(admin, "CRN999", models.TransactionPatch{}); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("Update missing = %v, want ErrNotFound", err)
	}
}

func TestApproveBypassesStatusCheck(t *testing.T) {
	repo := models.TransactionRepo{DB: newWorkbook(t)}
	tx, _, err := repo.Create(admin, models.TransactionInput{Type: "Credit"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	approved, err := repo.Approve(viewer, tx.TransactionID)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if approved.Status != models.StatusApproved {
		t.Errorf("Status = %q, want Approved", approved.Status)
	}
	if approved.ApprovedBy != "Vik" {
		t.Errorf("Approved_By = %q, want Vik", approved.ApprovedBy)
	}

	// Approving an already approved note is accepted and re-attributes it.
	approved, err = repo.Approve(models.Actor{}, tx.TransactionID)
	if err != nil {
		t.Fatalf("Approve again: %v", err)
	}
	if approved.ApprovedBy != "system" {
		t.Errorf("anonymous approval Approved_By = %q, want system", approved.ApprovedBy)
	}
}

func TestApproveMissingTransaction(t *testing.T) {
	repo := models.TransactionRepo{DB: newWorkbook(t)}
	if _, err := repo.Approve(admin, "DBN404"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("Approve missing = %v, want ErrNotFound", err)
	}
}

func TestItemReadSurface(t *testing.T) {
	repo := models.TransactionRepo{DB: newWorkbook(t)}
	tx, _, err := repo.Create(admin, models.TransactionInput{
		Type:  "Credit",
		Items: []models.ItemInput{{Particular: "A", Quantity: 3, Rate: 10, TaxPercentage: f64(0)}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	all, err := repo.ListItems()
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("ListItems returned %d items", len(all))
	}

	item, err := repo.GetItem(tx.TransactionID + "-ITM001")
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	mustEqual(t, item.TotalAmount, "30", "item Total_Amount")

	if _, err := repo.GetItem("CRN001-ITM999"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("GetItem missing = %v, want ErrNotFound", err)
	}
}
