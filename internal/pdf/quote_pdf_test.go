package pdf

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/steelstack/crm-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderQuote(t *testing.T) {
	quoteDate := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	expiry := quoteDate.AddDate(0, 0, 30)

	quote := &domain.Quote{
		QuoteNumber:      "Q-2025-0042",
		Title:            "Steel beams for warehouse build",
		CustomerName:     "Ana Lopez",
		CustomerCompany:  "Acme Steel",
		CustomerEmail:    "ana@acme.test",
		SalespersonName:  "Pat Rep",
		SalespersonEmail: "pat@steelstack.test",
		Subtotal:         decimal.RequireFromString("1150.00"),
		TaxPercent:       decimal.RequireFromString("10"),
		TaxAmount:        decimal.RequireFromString("115.00"),
		Total:            decimal.RequireFromString("1265.00"),
		QuoteDate:        &quoteDate,
		ExpiryDate:       &expiry,
		Notes:            "Delivery within 3 weeks of acceptance.",
		Terms:            "Net 30.",
		Items: []domain.QuoteItem{
			{
				ProductName: "I-Beam 12ft",
				ProductSKU:  "IB-12",
				Quantity:    decimal.RequireFromString("10"),
				UnitPrice:   decimal.RequireFromString("115.00"),
				LineTotal:   decimal.RequireFromString("1150.00"),
			},
		},
	}

	out, err := NewQuoteRenderer("SteelStack").Render(quote)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRenderQuote_NoOptionalSections(t *testing.T) {
	quote := &domain.Quote{
		QuoteNumber: "Q-2025-0001",
		Title:       "Bare quote",
	}

	out, err := NewQuoteRenderer("SteelStack").Render(quote)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}
