package models_test

import (
	"testing"

	"notenledger-backend/models"

	"github.com/shopspring/decimal"
)

func amount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		{TransactionID: "CRN001", Type: "Credit", TotalAmount: amount("236.00"), Status: "Approved", CreatedBy: "Asha", ApprovedBy: "Asha", CreatedAt: "2025-06-01T10:00:00Z"},
		{TransactionID: "DBN002", Type: "Debit", TotalAmount: amount("100.00"), Status: "Draft", CreatedBy: "Vik", CreatedAt: "2025-06-02T10:00:00Z"},
		{TransactionID: "CRN003", Type: "credit note", TotalAmount: amount("64.00"), Status: "Pending Review", CreatedBy: "Asha", CreatedAt: "2025-06-03T10:00:00Z"},
		{TransactionID: "DBN004", Type: "DEBIT", TotalAmount: amount("50.00"), Status: "Created", CreatedBy: "Meera", ApprovedBy: "vik", CreatedAt: "2025-06-04T10:00:00Z"},
	}
}

func TestSummarizeAdminSeesEverything(t *testing.T) {
	s := models.Summarize(sampleTransactions(), admin, 10)

	if s.TotalCredit != 2 || s.TotalDebit != 2 {
		t.Errorf("counts = %d credit / %d debit, want 2/2", s.TotalCredit, s.TotalDebit)
	}
	if !s.TotalCreditAmount.Equal(amount("300.00")) {
		t.Errorf("TotalCreditAmount = %s, want 300.00", s.TotalCreditAmount)
	}
	if !s.TotalDebitAmount.Equal(amount("150.00")) {
		t.Errorf("TotalDebitAmount = %s, want 150.00", s.TotalDebitAmount)
	}
	if !s.NetBalance.Equal(amount("150.00")) {
		t.Errorf("NetBalance = %s, want 150.00", s.NetBalance)
	}
	// Draft and Pending Review both count as pending.
	if s.Pending != 2 {
		t.Errorf("Pending = %d, want 2", s.Pending)
	}
	if len(s.Recent) != 4 || s.Recent[0].TransactionID != "DBN004" || s.Recent[3].TransactionID != "CRN001" {
		t.Errorf("Recent not newest-first: %+v", ids(s.Recent))
	}
}

func TestSummarizeScopesNonAdminByName(t *testing.T) {
	s := models.Summarize(sampleTransactions(), viewer, 10)

	// Vik authored DBN002 and approved DBN004 (case-insensitive match).
	if s.TotalDebit != 2 || s.TotalCredit != 0 {
		t.Errorf("counts = %d credit / %d debit, want 0/2", s.TotalCredit, s.TotalDebit)
	}
	if !s.TotalDebitAmount.Equal(amount("150.00")) {
		t.Errorf("TotalDebitAmount = %s, want 150.00", s.TotalDebitAmount)
	}
	if s.Pending != 1 {
		t.Errorf("Pending = %d, want 1", s.Pending)
	}
	got := ids(s.Recent)
	if len(got) != 2 || got[0] != "DBN004" || got[1] != "DBN002" {
		t.Errorf("Recent = %v, want [DBN004 DBN002]", got)
	}
}

func TestSummarizeRecentLimit(t *testing.T) {
	s := models.Summarize(sampleTransactions(), admin, 2)
	got := ids(s.Recent)
	if len(got) != 2 || got[0] != "DBN004" || got[1] != "CRN003" {
		t.Errorf("Recent = %v, want [DBN004 CRN003]", got)
	}
}

func TestSummarizeEmptyInput(t *testing.T) {
	s := models.Summarize(nil, admin, 5)
	if s.TotalCredit != 0 || s.TotalDebit != 0 || s.Pending != 0 {
		t.Errorf("empty summary = %+v", s)
	}
	if !s.NetBalance.Equal(decimal.Zero) {
		t.Errorf("NetBalance = %s, want 0", s.NetBalance)
	}
	if s.Recent == nil || len(s.Recent) != 0 {
		t.Errorf("Recent should be an empty slice, got %v", s.Recent)
	}
}

func ids(ts []models.Transaction) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.TransactionID)
	}
	return out
}
