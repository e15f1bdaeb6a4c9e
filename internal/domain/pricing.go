package domain

import "github.com/shopspring/decimal"

var oneHundred = decimal.NewFromInt(100)

// LineTotal computes a line item's total:
// quantity x unit_price x (1 - discount_percent/100), rounded to 2 decimals.
// Rounding happens exactly once, here; callers must not round again.
func LineTotal(quantity, unitPrice, discountPercent decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(discountPercent.Div(oneHundred))
	return quantity.Mul(unitPrice).Mul(factor).Round(2)
}

// QuoteTotals holds the derived money fields of a quote.
type QuoteTotals struct {
	Subtotal        decimal.Decimal
	DiscountPercent decimal.Decimal
	DiscountAmount  decimal.Decimal
	TaxAmount       decimal.Decimal
	Total           decimal.Decimal
}

// ComputeQuoteTotals derives subtotal, discount, tax and total from the
// given line items and header percentages. It is a pure function: the quote
// is not touched.
//
// Order of operations:
//  1. subtotal = sum of item line totals (already rounded per item)
//  2. discount_amount = subtotal x discount_percent/100, rounded once.
//     An absolute discountAmount, when supplied, is taken verbatim instead
//     and the percent is back-computed for display only
//  3. tax_amount = (subtotal - discount_amount) x tax_percent/100, rounded once
//  4. total = subtotal - discount_amount + tax_amount (exact, no rounding)
func ComputeQuoteTotals(items []QuoteItem, discountPercent, taxPercent decimal.Decimal, discountAmount *decimal.Decimal) QuoteTotals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal)
	}

	var discount decimal.Decimal
	pct := discountPercent
	if discountAmount != nil {
		discount = discountAmount.Round(2)
		if subtotal.IsPositive() {
			pct = discount.Div(subtotal).Mul(oneHundred).Round(2)
		}
	} else {
		discount = subtotal.Mul(discountPercent).Div(oneHundred).Round(2)
	}

	taxable := subtotal.Sub(discount)
	tax := taxable.Mul(taxPercent).Div(oneHundred).Round(2)

	return QuoteTotals{
		Subtotal:        subtotal,
		DiscountPercent: pct,
		DiscountAmount:  discount,
		TaxAmount:       tax,
		Total:           subtotal.Sub(discount).Add(tax),
	}
}

// Recalculate recomputes every line total and the quote's derived money
// fields in place. Called on every mutation of items or header discount/tax;
// stored totals are never trusted.
func (q *Quote) Recalculate() {
	for i := range q.Items {
		q.Items[i].LineTotal = LineTotal(q.Items[i].Quantity, q.Items[i].UnitPrice, q.Items[i].DiscountPercent)
	}
	totals := ComputeQuoteTotals(q.Items, q.DiscountPercent, q.TaxPercent, nil)
	q.Subtotal = totals.Subtotal
	q.DiscountPercent = totals.DiscountPercent
	q.DiscountAmount = totals.DiscountAmount
	q.TaxAmount = totals.TaxAmount
	q.Total = totals.Total
}
