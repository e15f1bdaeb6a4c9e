package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name            string
		quantity        string
		unitPrice       string
		discountPercent string
		want            string
	}{
		{"no discount", "2", "100.00", "0", "200"},
		{"half off", "1", "50.00", "50", "25"},
		{"fractional quantity", "2.5", "10.00", "0", "25"},
		{"rounds half up once", "3", "33.335", "0", "100.01"},
		{"discount produces repeating decimal", "1", "100.00", "33.33", "66.67"},
		{"zero quantity", "0", "99.99", "10", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LineTotal(d(tt.quantity), d(tt.unitPrice), d(tt.discountPercent))
			assert.True(t, d(tt.want).Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestComputeQuoteTotals_PercentDiscount(t *testing.T) {
	items := []QuoteItem{
		{LineTotal: d("100.00")},
		{LineTotal: d("50.55")},
	}

	totals := ComputeQuoteTotals(items, d("10"), d("8.25"), nil)

	assert.True(t, d("150.55").Equal(totals.Subtotal), "subtotal %s", totals.Subtotal)
	// 150.55 * 10% = 15.055 -> 15.06 after a single round
	assert.True(t, d("15.06").Equal(totals.DiscountAmount), "discount %s", totals.DiscountAmount)
	// (150.55 - 15.06) * 8.25% = 11.177925 -> 11.18
	assert.True(t, d("11.18").Equal(totals.TaxAmount), "tax %s", totals.TaxAmount)
	assert.True(t, d("146.67").Equal(totals.Total), "total %s", totals.Total)
}

func TestComputeQuoteTotals_AbsoluteDiscountOverridesPercent(t *testing.T) {
	items := []QuoteItem{{LineTotal: d("200.00")}}
	amount := d("25.00")

	totals := ComputeQuoteTotals(items, d("99"), d("0"), &amount)

	assert.True(t, d("25.00").Equal(totals.DiscountAmount))
	// percent is back-computed for display: 25/200 = 12.5%
	assert.True(t, d("12.5").Equal(totals.DiscountPercent), "percent %s", totals.DiscountPercent)
	assert.True(t, d("175.00").Equal(totals.Total))
}

func TestComputeQuoteTotals_AbsoluteDiscountOnZeroSubtotal(t *testing.T) {
	amount := d("10.00")
	totals := ComputeQuoteTotals(nil, d("0"), d("0"), &amount)

	assert.True(t, d("10.00").Equal(totals.DiscountAmount))
	assert.True(t, d("-10.00").Equal(totals.Total))
	// no division by zero; percent stays at the header value
	assert.True(t, d("0").Equal(totals.DiscountPercent))
}

func TestQuoteRecalculate(t *testing.T) {
	quote := &Quote{
		DiscountPercent: d("5"),
		TaxPercent:      d("10"),
		Items: []QuoteItem{
			{Quantity: d("3"), UnitPrice: d("19.99"), DiscountPercent: d("0")},
			{Quantity: d("1"), UnitPrice: d("100.00"), DiscountPercent: d("25")},
		},
	}

	quote.Recalculate()

	assert.True(t, d("59.97").Equal(quote.Items[0].LineTotal))
	assert.True(t, d("75.00").Equal(quote.Items[1].LineTotal))
	assert.True(t, d("134.97").Equal(quote.Subtotal))
	// 134.97 * 5% = 6.7485 -> 6.75
	assert.True(t, d("6.75").Equal(quote.DiscountAmount))
	// (134.97 - 6.75) * 10% = 12.822 -> 12.82
	assert.True(t, d("12.82").Equal(quote.TaxAmount))
	assert.True(t, d("141.04").Equal(quote.Total))
}

func TestQuoteRecalculate_TotalsNeverTrustStoredValues(t *testing.T) {
	quote := &Quote{
		Subtotal: d("9999"),
		Total:    d("9999"),
		Items: []QuoteItem{
			{Quantity: d("1"), UnitPrice: d("10.00"), LineTotal: d("555")},
		},
	}

	quote.Recalculate()

	assert.True(t, d("10").Equal(quote.Items[0].LineTotal))
	assert.True(t, d("10").Equal(quote.Subtotal))
	assert.True(t, d("10").Equal(quote.Total))
}

func TestContactHasAttribution(t *testing.T) {
	assert.False(t, (&Contact{}).HasAttribution())
	assert.True(t, (&Contact{UTMSource: "google"}).HasAttribution())
	assert.True(t, (&Contact{UTMContent: "banner-a"}).HasAttribution())
	// landing page and referrer alone do not count as attribution
	assert.False(t, (&Contact{LandingPage: "/pricing", Referrer: "https://x.test"}).HasAttribution())
}
