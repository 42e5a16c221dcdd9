package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPricing_Totals(t *testing.T) {
	p := DefaultPricing()

	t.Run("Reference basket", func(t *testing.T) {
		s := EmptyState()
		s, _ = Apply(s, AddItem{Item: menuItem("a", "r1", "100")})
		s, _ = Apply(s, AddItem{Item: menuItem("a", "r1", "100")})
		s, _ = Apply(s, AddItem{Item: menuItem("b", "r1", "50")})

		totals := p.Totals(s)

		assert.Equal(t, "250.00", totals.Subtotal.StringFixed(2))
		assert.Equal(t, "2.99", totals.DeliveryFee.StringFixed(2))
		assert.Equal(t, "12.50", totals.Tax.StringFixed(2))
		assert.Equal(t, "265.49", totals.Total.StringFixed(2))
		assert.Equal(t, 3, totals.ItemCount)
	})

	t.Run("Empty cart has no fee", func(t *testing.T) {
		totals := p.Totals(EmptyState())

		assert.True(t, totals.Subtotal.IsZero())
		assert.True(t, totals.DeliveryFee.IsZero())
		assert.True(t, totals.Tax.IsZero())
		assert.True(t, totals.Total.IsZero())
	})

	t.Run("Tax is rounded to cents", func(t *testing.T) {
		totals := p.TotalsFor([]LineItem{{ID: "a", Price: decimal.RequireFromString("10.33"), Quantity: 1}})

		// 10.33 * 0.05 = 0.5165
		assert.Equal(t, "0.52", totals.Tax.String())
		assert.Equal(t, "13.84", totals.Total.StringFixed(2))
	})

	t.Run("Fixed point sums", func(t *testing.T) {
		totals := p.TotalsFor([]LineItem{
			{ID: "a", Price: decimal.RequireFromString("0.10"), Quantity: 1},
			{ID: "b", Price: decimal.RequireFromString("0.20"), Quantity: 1},
		})
		assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString("0.3")))
	})

	t.Run("Custom pricing", func(t *testing.T) {
		custom := Pricing{
			DeliveryFee:    decimal.NewFromInt(40),
			TaxRate:        decimal.RequireFromString("0.18"),
			CurrencySymbol: "$",
		}
		totals := custom.TotalsFor([]LineItem{{ID: "a", Price: decimal.NewFromInt(100), Quantity: 2}})

		assert.Equal(t, "36.00", totals.Tax.StringFixed(2))
		assert.Equal(t, "276.00", totals.Total.StringFixed(2))
	})
}

func TestPricing_Format(t *testing.T) {
	p := DefaultPricing()

	tests := []struct {
		amount string
		want   string
	}{
		{"12.5", "₹12.50"},
		{"0", "₹0.00"},
		{"265.49", "₹265.49"},
		{"1234.567", "₹1234.57"},
		{"-3.2", "-₹3.20"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Format(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestPricing_FormatTotals(t *testing.T) {
	p := DefaultPricing()
	f := p.FormatTotals(p.TotalsFor([]LineItem{{ID: "a", Price: decimal.NewFromInt(250), Quantity: 1}}))

	assert.Equal(t, FormattedTotals{
		Subtotal:    "₹250.00",
		DeliveryFee: "₹2.99",
		Tax:         "₹12.50",
		Total:       "₹265.49",
	}, f)
}
