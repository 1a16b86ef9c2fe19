package quote

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// LineItem is one product/price/VAT entry in a quote.
// VATPrice is derived from UnitPrice and VATRate on every create/update and is
// never stored independently of its inputs.
type LineItem struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"` // VAT-exclusive, 2 decimal places
	VATRate   decimal.Decimal `json:"vat_rate"`   // percentage in [0,100]
	VATPrice  decimal.Decimal `json:"vat_price"`  // VAT-inclusive, 2 decimal places
}

// NewLineItem validates the inputs and computes the VAT-inclusive price.
func NewLineItem(name string, unitPrice decimal.Decimal, vatRate decimal.Decimal) (LineItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return LineItem{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if unitPrice.IsNegative() {
		return LineItem{}, &ValidationError{Field: "unit_price", Reason: "must not be negative"}
	}
	if vatRate.IsNegative() || vatRate.GreaterThan(hundred) {
		return LineItem{}, &ValidationError{Field: "vat_rate", Reason: "must be between 0 and 100"}
	}
	unitPrice = unitPrice.Round(2) // currency minor-unit precision
	return LineItem{
		Name:      name,
		UnitPrice: unitPrice,
		VATRate:   vatRate,
		VATPrice:  VATInclusivePrice(unitPrice, vatRate),
	}, nil
}

// VATInclusivePrice computes unitPrice * (1 + vatRate/100) as
// unitPrice * (100 + vatRate) / 100 rounded to 2 places, so rates with up to
// two decimals stay exact.
func VATInclusivePrice(unitPrice decimal.Decimal, vatRate decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(hundred.Add(vatRate)).DivRound(hundred, 2)
}
