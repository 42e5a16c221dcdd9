package cart

import (
	"github.com/shopspring/decimal"
)

const moneyPlaces = 2

var (
	DefaultDeliveryFee    = decimal.RequireFromString("2.99")
	DefaultTaxRate        = decimal.RequireFromString("0.05")
	DefaultCurrencySymbol = "₹"
)

// Pricing holds the constants used to derive cart totals.
type Pricing struct {
	DeliveryFee    decimal.Decimal
	TaxRate        decimal.Decimal
	CurrencySymbol string
}

func DefaultPricing() Pricing {
	return Pricing{
		DeliveryFee:    DefaultDeliveryFee,
		TaxRate:        DefaultTaxRate,
		CurrencySymbol: DefaultCurrencySymbol,
	}
}

// Totals are derived from the cart's line items and never stored.
type Totals struct {
	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal
	ItemCount   int
}

// Totals computes subtotal, delivery fee, tax and total for s.
func (p Pricing) Totals(s State) Totals {
	return p.TotalsFor(s.Items)
}

// TotalsFor computes totals for an arbitrary list of line items.
func (p Pricing) TotalsFor(items []LineItem) Totals {
	subtotal := decimal.Zero
	count := 0
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal())
		count += it.Quantity
	}

	fee := decimal.Zero
	if subtotal.IsPositive() {
		fee = p.DeliveryFee
	}

	tax := subtotal.Mul(p.TaxRate).Round(moneyPlaces)

	return Totals{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Tax:         tax,
		Total:       subtotal.Add(fee).Add(tax),
		ItemCount:   count,
	}
}

// Format renders an amount for display, e.g. "₹12.50".
func (p Pricing) Format(amount decimal.Decimal) string {
	symbol := p.CurrencySymbol
	if amount.IsNegative() {
		return "-" + symbol + amount.Abs().StringFixed(moneyPlaces)
	}
	return symbol + amount.StringFixed(moneyPlaces)
}

// FormattedTotals is the display form of Totals.
type FormattedTotals struct {
	Subtotal    string
	DeliveryFee string
	Tax         string
	Total       string
}

func (p Pricing) FormatTotals(t Totals) FormattedTotals {
	return FormattedTotals{
		Subtotal:    p.Format(t.Subtotal),
		DeliveryFee: p.Format(t.DeliveryFee),
		Tax:         p.Format(t.Tax),
		Total:       p.Format(t.Total),
	}
}
