// Package pricing computes quote totals. Every function is pure and
// recomputes from scratch; nothing here caches, rounds, or mutates.
package pricing

import (
	"math"

	"github.com/proposalforge/agency-api/internal/domain/entity"
	"github.com/proposalforge/agency-api/internal/domain/enum"
)

// Breakdown contains the derived money values for a quote.
type Breakdown struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// ItemTotal returns quantity × unit price less the item-level discount.
// Malformed numeric input (NaN from blank form fields) is coerced to zero
// before it reaches the arithmetic.
func ItemTotal(item entity.QuoteItem) float64 {
	qty := coerce(item.Quantity)
	price := coerce(item.UnitPrice)
	discount := coerce(item.Discount)
	return qty * price * (1 - discount/100)
}

// Subtotal sums the item totals. Every item contributes regardless of its
// Taxable flag; tax is applied against the whole subtotal, not per item.
func Subtotal(items []entity.QuoteItem) float64 {
	var sum float64
	for _, item := range items {
		sum += ItemTotal(item)
	}
	return sum
}

// Discount returns the global discount amount. A percentage discount is a
// share of the subtotal; a fixed discount is taken at face value and is
// deliberately not clamped to the subtotal, so an oversized fixed discount
// drives the total negative.
func Discount(subtotal float64, discountType enum.DiscountType, value float64) float64 {
	value = coerce(value)
	if discountType == enum.DiscountTypeFixed {
		return value
	}
	return subtotal * value / 100
}

// Tax applies the flat tax rate to the discounted subtotal.
func Tax(subtotal, discount, rate float64) float64 {
	return (subtotal - discount) * coerce(rate) / 100
}

// Total composes the final amount from the three derived values.
func Total(subtotal, discount, tax float64) float64 {
	return subtotal - discount + tax
}

// Calculate derives the full breakdown for a quote document.
func Calculate(q entity.QuoteData) Breakdown {
	subtotal := Subtotal(q.Items)
	discount := Discount(subtotal, q.DiscountType, q.DiscountValue)
	tax := Tax(subtotal, discount, q.TaxRate)
	return Breakdown{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Total:    Total(subtotal, discount, tax),
	}
}

// PaymentAmount returns the money value of one payment term against the
// grand total.
func PaymentAmount(total float64, term entity.PaymentTerm) float64 {
	return total * coerce(term.Percentage) / 100
}

// MilestoneAmount returns the cost share allocated to one milestone.
func MilestoneAmount(total float64, m entity.Milestone) float64 {
	return total * coerce(m.Percentage) / 100
}

// MilestonePercentTotal reports the sum of milestone percentages. The sum
// is advisory only; drafts are accepted whether or not it reaches 100.
func MilestonePercentTotal(milestones []entity.Milestone) float64 {
	var sum float64
	for _, m := range milestones {
		sum += coerce(m.Percentage)
	}
	return sum
}

// PaymentPercentTotal reports the sum of payment term percentages,
// advisory only.
func PaymentPercentTotal(terms []entity.PaymentTerm) float64 {
	var sum float64
	for _, t := range terms {
		sum += coerce(t.Percentage)
	}
	return sum
}

// coerce maps NaN and infinities to zero so that unparsed form input can
// never poison a total.
func coerce(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
