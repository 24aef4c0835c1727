// Package pricing derives booking totals. Every function here is pure.
package pricing

import "github.com/fjod/go_travel/checkout-service/domain"

// TaxPercent is the flat tax applied on the subtotal.
const TaxPercent = 12

// Compute derives the full breakdown for a package price, traveler count and
// customization total.
func Compute(pricePerPerson int64, travelers int, customizationTotal int64) domain.Totals {
	base := pricePerPerson * int64(travelers)
	subtotal := base + customizationTotal
	tax := Tax(subtotal)
	return domain.Totals{
		PricePerPerson:     pricePerPerson,
		Travelers:          travelers,
		BasePrice:          base,
		CustomizationTotal: customizationTotal,
		Subtotal:           subtotal,
		Tax:                tax,
		Total:              subtotal + tax,
	}
}

// Tax rounds subtotal*12% half up, in integer arithmetic. Subtotals are
// never negative.
func Tax(subtotal int64) int64 {
	return (subtotal*TaxPercent + 50) / 100
}

// CustomizationTotal recomputes the add-on total from scratch.
func CustomizationTotal(options []domain.CustomizationOption) int64 {
	var total int64
	for _, o := range options {
		total += o.LineTotal()
	}
	return total
}
