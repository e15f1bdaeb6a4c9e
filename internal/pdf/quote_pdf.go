package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/steelstack/crm-api/internal/domain"
)

// QuoteRenderer produces printable PDF documents for quotes
type QuoteRenderer struct {
	companyName string
}

// NewQuoteRenderer creates a renderer branded with the given company name
func NewQuoteRenderer(companyName string) *QuoteRenderer {
	return &QuoteRenderer{companyName: companyName}
}

// Render lays out a quote as a single-currency US letter document
func (r *QuoteRenderer) Render(quote *domain.Quote) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// Header
	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(100, 10, r.companyName)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "QUOTE", "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(100, 5, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 5, quote.QuoteNumber, "", 1, "R", false, 0, "")
	if quote.QuoteDate != nil {
		pdf.CellFormat(100, 5, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 5, "Date: "+quote.QuoteDate.Format("January 2, 2006"), "", 1, "R", false, 0, "")
	}
	if quote.ExpiryDate != nil {
		pdf.CellFormat(100, 5, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 5, "Valid until: "+quote.ExpiryDate.Format("January 2, 2006"), "", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	// Customer and salesperson blocks
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(95, 6, "Prepared for")
	pdf.CellFormat(0, 6, "Prepared by", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	left := []string{quote.CustomerName, quote.CustomerCompany, quote.CustomerEmail, quote.CustomerPhone}
	right := []string{quote.SalespersonName, quote.SalespersonEmail, quote.SalespersonPhone}
	for i := 0; i < 4; i++ {
		l, rr := "", ""
		if i < len(left) {
			l = left[i]
		}
		if i < len(right) {
			rr = right[i]
		}
		if l == "" && rr == "" {
			continue
		}
		pdf.Cell(95, 5, l)
		pdf.CellFormat(0, 5, rr, "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	if quote.Title != "" {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 7, quote.Title, "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}

	// Line item table
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(40, 40, 40)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(80, 7, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 7, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 7, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(20, 7, "Disc %", "1", 0, "R", true, 0, "")
	pdf.CellFormat(0, 7, "Total", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	for _, item := range quote.Items {
		name := item.ProductName
		if item.ProductSKU != "" {
			name = fmt.Sprintf("%s (%s)", name, item.ProductSKU)
		}
		pdf.CellFormat(80, 6, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, item.Quantity.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, money(item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 6, item.DiscountPercent.StringFixed(1), "1", 0, "R", false, 0, "")
		pdf.CellFormat(0, 6, money(item.LineTotal), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(3)

	// Totals
	totalRow := func(label, value string, bold bool) {
		if bold {
			pdf.SetFont("Helvetica", "B", 10)
		} else {
			pdf.SetFont("Helvetica", "", 10)
		}
		pdf.CellFormat(130, 6, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(0, 6, value, "", 1, "R", false, 0, "")
	}
	totalRow("Subtotal", money(quote.Subtotal), false)
	if quote.DiscountAmount.IsPositive() {
		totalRow(fmt.Sprintf("Discount (%s%%)", quote.DiscountPercent.StringFixed(1)), "-"+money(quote.DiscountAmount), false)
	}
	if quote.TaxAmount.IsPositive() {
		totalRow(fmt.Sprintf("Tax (%s%%)", quote.TaxPercent.StringFixed(1)), money(quote.TaxAmount), false)
	}
	totalRow("Total", money(quote.Total), true)
	pdf.Ln(6)

	if quote.Notes != "" {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 6, "Notes", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(0, 5, quote.Notes, "", "L", false)
		pdf.Ln(3)
	}
	if quote.Terms != "" {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 6, "Terms & Conditions", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 8)
		pdf.MultiCell(0, 4, quote.Terms, "", "L", false)
	}

	pdf.SetY(-20)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 5, fmt.Sprintf("Generated %s", time.Now().UTC().Format("2006-01-02")), "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render quote pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func money(v decimal.Decimal) string {
	return "$" + v.StringFixed(2)
}
