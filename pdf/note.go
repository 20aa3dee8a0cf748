// Package pdf renders a debit or credit note as an A4 document.
package pdf

import (
	"fmt"
	"io"
	"strings"

	"notenledger-backend/models"
	"notenledger-backend/utils"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

type column struct {
	label string
	width float64
	right bool
}

var itemColumns = []column{
	{"S. No.", 12, false},
	{"Particular", 55, false},
	{"Remarks", 33, false},
	{"Quantity", 20, true},
	{"Rate", 20, true},
	{"Tax Amt", 22, true},
	{"Total Amount", 28, true},
}

// RenderNote writes the formatted note to w. Company and vendor may be zero
// values when the weak references do not resolve.
func RenderNote(w io.Writer, tx models.Transaction, items []models.Item, company models.Company, vendor models.Vendor, financialYear string) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(12, 12, 12)
	doc.AddPage()

	title := "DEBIT NOTE"
	if strings.EqualFold(tx.Type, models.TypeCredit) {
		title = "CREDIT NOTE"
	}
	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, 12, title, "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(110, 5, "FROM : "+orDefault(company.CompanyName, "COMPANY NAME"), "", 0, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 5, "Credit/Debit Note No.: "+tx.TransactionID, "", 1, "L", false, 0, "")
	doc.MultiCell(110, 5, company.Address, "", "L", false)
	doc.CellFormat(110, 5, "PHONE : "+company.Phone, "", 0, "L", false, 0, "")
	doc.CellFormat(0, 5, "Date: "+tx.Date, "", 1, "L", false, 0, "")
	doc.CellFormat(110, 5, "GSTIN : "+company.GSTIN, "", 0, "L", false, 0, "")
	doc.CellFormat(0, 5, "Original Invoice No.: "+tx.ReferenceNo, "", 1, "L", false, 0, "")
	if financialYear != "" {
		doc.CellFormat(110, 5, "", "", 0, "L", false, 0, "")
		doc.CellFormat(0, 5, "Financial Year: "+financialYear, "", 1, "L", false, 0, "")
	}
	doc.Ln(4)

	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(0, 5, "TO : "+orDefault(vendor.VendorName, "VENDOR NAME"), "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.MultiCell(110, 5, vendor.Address, "", "L", false)
	doc.CellFormat(0, 5, "GSTIN : "+vendor.GSTIN, "", 1, "L", false, 0, "")
	doc.CellFormat(0, 5, "PHONE : "+vendor.Phone, "", 1, "L", false, 0, "")
	doc.Ln(6)

	doc.SetFont("Helvetica", "B", 10)
	for _, col := range itemColumns {
		doc.CellFormat(col.width, 7, col.label, "1", 0, "C", false, 0, "")
	}
	doc.Ln(-1)

	subtotal := decimal.Zero
	taxTotal := decimal.Zero
	grandTotal := decimal.Zero
	doc.SetFont("Helvetica", "", 10)
	for i, it := range items {
		subtotal = subtotal.Add(it.Quantity.Mul(it.Rate))
		taxTotal = taxTotal.Add(it.TaxAmount)
		grandTotal = grandTotal.Add(it.TotalAmount)

		cells := []string{
			fmt.Sprint(i + 1),
			it.Particular,
			it.Remarks,
			it.Quantity.String(),
			it.Rate.StringFixed(2),
			it.TaxAmount.StringFixed(2),
			it.TotalAmount.StringFixed(2),
		}
		for j, col := range itemColumns {
			align := "L"
			if col.right {
				align = "R"
			}
			doc.CellFormat(col.width, 6, cells[j], "1", 0, align, false, 0, "")
		}
		doc.Ln(-1)
	}
	doc.Ln(4)

	y := doc.GetY()
	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(40, 5, "AMOUNT IN WORDS :", "", 0, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.MultiCell(85, 5, strings.ToUpper(utils.AmountInWords(grandTotal)), "", "L", false)

	doc.SetXY(140, y)
	doc.Rect(140, y, 58, 18, "D")
	totalRow(doc, "Taxable Amount :", subtotal)
	totalRow(doc, "Tax Amount :", taxTotal)
	totalRow(doc, "Total Amount :", grandTotal)

	doc.SetY(y + 40)
	doc.CellFormat(0, 5, "for "+orDefault(company.CompanyName, "COMPANY NAME"), "", 1, "R", false, 0, "")
	doc.Ln(14)
	doc.CellFormat(0, 5, "Authorized Signature", "", 1, "R", false, 0, "")

	return doc.Output(w)
}

func totalRow(doc *fpdf.Fpdf, label string, amount decimal.Decimal) {
	doc.SetX(142)
	doc.CellFormat(32, 6, label, "", 0, "L", false, 0, "")
	doc.CellFormat(22, 6, amount.StringFixed(2), "", 1, "R", false, 0, "")
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
