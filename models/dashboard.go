package models

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummary is the read-only reduction over the Transactions collection.
type DashboardSummary struct {
	TotalCredit       int             `json:"totalCredit"`
	TotalDebit        int             `json:"totalDebit"`
	TotalCreditAmount decimal.Decimal `json:"totalCreditAmount"`
	TotalDebitAmount  decimal.Decimal `json:"totalDebitAmount"`
	NetBalance        decimal.Decimal `json:"netBalance"`
	Pending           int             `json:"pending"`
	Recent            []Transaction   `json:"recent"`
}

// Summarize reduces the transactions visible to the acting user. Admins see
// everything; everyone else sees notes they authored or approved, matched on
// display name case-insensitively. Classification is a case-insensitive
// substring match on Type, and pending means a status starting with "pending"
// or "draft". Recent is the newest records by Created_At, at most recentLimit.
func Summarize(all []Transaction, actor Actor, recentLimit int) DashboardSummary {
	scoped := all
	if !actor.IsAdmin() {
		scoped = nil
		for _, t := range all {
			if strings.EqualFold(strings.TrimSpace(t.CreatedBy), strings.TrimSpace(actor.Name)) ||
				strings.EqualFold(strings.TrimSpace(t.ApprovedBy), strings.TrimSpace(actor.Name)) {
				scoped = append(scoped, t)
			}
		}
	}

	s := DashboardSummary{
		TotalCreditAmount: decimal.Zero,
		TotalDebitAmount:  decimal.Zero,
		Recent:            []Transaction{},
	}
	for _, t := range scoped {
		typ := strings.ToLower(t.Type)
		switch {
		case strings.Contains(typ, "credit"):
			s.TotalCredit++
			s.TotalCreditAmount = s.TotalCreditAmount.Add(t.TotalAmount)
		case strings.Contains(typ, "debit"):
			s.TotalDebit++
			s.TotalDebitAmount = s.TotalDebitAmount.Add(t.TotalAmount)
		}
		status := strings.ToLower(strings.TrimSpace(t.Status))
		if strings.HasPrefix(status, "pending") || strings.HasPrefix(status, "draft") {
			s.Pending++
		}
	}
	s.NetBalance = s.TotalCreditAmount.Sub(s.TotalDebitAmount)

	recent := make([]Transaction, 0, len(scoped))
	for _, t := range scoped {
		if t.TransactionID != "" {
			recent = append(recent, t)
		}
	}
	sort.SliceStable(recent, func(i, j int) bool {
		return createdAt(recent[i]).After(createdAt(recent[j]))
	})
	if recentLimit >= 0 && len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	s.Recent = recent
	return s
}

func createdAt(t Transaction) time.Time {
	ts, err := time.Parse(time.RFC3339, t.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return ts
}
