package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proposalforge/agency-api/internal/domain/entity"
	"github.com/proposalforge/agency-api/internal/domain/enum"
)

func TestItemTotal(t *testing.T) {
	item := entity.QuoteItem{Quantity: 2, UnitPrice: 500, Discount: 10}
	assert.InDelta(t, 900, ItemTotal(item), 1e-9)
}

func TestItemTotal_ZeroDiscount(t *testing.T) {
	item := entity.QuoteItem{Quantity: 3, UnitPrice: 150}
	assert.InDelta(t, 450, ItemTotal(item), 1e-9)
}

func TestCalculate_ReferenceScenario(t *testing.T) {
	q := entity.QuoteData{
		Items: []entity.QuoteItem{
			{Quantity: 2, UnitPrice: 500, Discount: 10, Taxable: true},
		},
		DiscountType:  enum.DiscountTypePercentage,
		DiscountValue: 5,
		TaxRate:       8,
	}

	b := Calculate(q)

	assert.InDelta(t, 900, b.Subtotal, 1e-9)
	assert.InDelta(t, 45, b.Discount, 1e-9)
	assert.InDelta(t, 68.4, b.Tax, 1e-9)
	assert.InDelta(t, 923.4, b.Total, 1e-9)
}

func TestCalculate_EmptyItems(t *testing.T) {
	q := entity.QuoteData{
		DiscountType:  enum.DiscountTypePercentage,
		DiscountValue: 20,
		TaxRate:       16,
	}

	b := Calculate(q)

	assert.Zero(t, b.Subtotal)
	assert.Zero(t, b.Discount)
	assert.Zero(t, b.Tax)
	assert.Zero(t, b.Total)
}

func TestCalculate_FixedDiscountUnclamped(t *testing.T) {
	// An oversized fixed discount is taken at face value; the total goes
	// negative rather than being clamped.
	q := entity.QuoteData{
		Items:         []entity.QuoteItem{{Quantity: 1, UnitPrice: 500}},
		DiscountType:  enum.DiscountTypeFixed,
		DiscountValue: 1000,
	}

	b := Calculate(q)

	assert.InDelta(t, 500, b.Subtotal, 1e-9)
	assert.InDelta(t, 1000, b.Discount, 1e-9)
	assert.InDelta(t, -500, b.Total, 1e-9)
}

func TestSubtotal_IgnoresTaxableFlag(t *testing.T) {
	taxable := []entity.QuoteItem{
		{Quantity: 1, UnitPrice: 100, Taxable: true},
		{Quantity: 1, UnitPrice: 200, Taxable: true},
	}
	mixed := []entity.QuoteItem{
		{Quantity: 1, UnitPrice: 100, Taxable: true},
		{Quantity: 1, UnitPrice: 200, Taxable: false},
	}

	assert.Equal(t, Subtotal(taxable), Subtotal(mixed))
}

func TestSubtotal_OrderIndependent(t *testing.T) {
	a := entity.QuoteItem{Quantity: 2, UnitPrice: 75, Discount: 5}
	b := entity.QuoteItem{Quantity: 1, UnitPrice: 1200}
	c := entity.QuoteItem{Quantity: 10, UnitPrice: 9.99}

	assert.InDelta(t,
		Subtotal([]entity.QuoteItem{a, b, c}),
		Subtotal([]entity.QuoteItem{c, a, b}),
		1e-9)
}

func TestDiscount_Monotonic(t *testing.T) {
	q := entity.QuoteData{
		Items:        []entity.QuoteItem{{Quantity: 4, UnitPrice: 250}},
		DiscountType: enum.DiscountTypePercentage,
		TaxRate:      10,
	}

	prevTotal := math.Inf(1)
	for _, value := range []float64{0, 5, 10, 25, 50, 100} {
		q.DiscountValue = value
		total := Calculate(q).Total
		assert.LessOrEqual(t, total, prevTotal, "discount %v should not raise the total", value)
		prevTotal = total
	}
}

func TestTax_AppliesPostDiscount(t *testing.T) {
	subtotal := 1000.0
	discount := 100.0

	assert.InDelta(t, 90, Tax(subtotal, discount, 10), 1e-9)

	// Changing the rate must not touch subtotal or discount.
	q := entity.QuoteData{
		Items:         []entity.QuoteItem{{Quantity: 1, UnitPrice: 1000}},
		DiscountType:  enum.DiscountTypePercentage,
		DiscountValue: 10,
	}
	q.TaxRate = 0
	low := Calculate(q)
	q.TaxRate = 25
	high := Calculate(q)

	assert.Equal(t, low.Subtotal, high.Subtotal)
	assert.Equal(t, low.Discount, high.Discount)
}

func TestTotal_Composition(t *testing.T) {
	for _, tc := range []struct {
		name     string
		items    []entity.QuoteItem
		dtype    enum.DiscountType
		dvalue   float64
		taxRate  float64
	}{
		{"plain", []entity.QuoteItem{{Quantity: 1, UnitPrice: 100}}, enum.DiscountTypePercentage, 0, 0},
		{"discount and tax", []entity.QuoteItem{{Quantity: 3, UnitPrice: 40, Discount: 25}}, enum.DiscountTypePercentage, 10, 16},
		{"fixed discount", []entity.QuoteItem{{Quantity: 2, UnitPrice: 60}}, enum.DiscountTypeFixed, 30, 8},
		{"empty", nil, enum.DiscountTypePercentage, 50, 20},
	} {
		t.Run(tc.name, func(t *testing.T) {
			b := Calculate(entity.QuoteData{
				Items:         tc.items,
				DiscountType:  tc.dtype,
				DiscountValue: tc.dvalue,
				TaxRate:       tc.taxRate,
			})
			assert.InDelta(t, b.Subtotal-b.Discount+b.Tax, b.Total, 1e-9)
		})
	}
}

func TestCalculate_CoercesNaN(t *testing.T) {
	q := entity.QuoteData{
		Items: []entity.QuoteItem{
			{Quantity: math.NaN(), UnitPrice: 100},
			{Quantity: 2, UnitPrice: 50},
		},
		DiscountType:  enum.DiscountTypePercentage,
		DiscountValue: math.NaN(),
		TaxRate:       math.Inf(1),
	}

	b := Calculate(q)

	require.False(t, math.IsNaN(b.Total))
	assert.InDelta(t, 100, b.Subtotal, 1e-9)
	assert.InDelta(t, 100, b.Total, 1e-9)
}

func TestPaymentAmount(t *testing.T) {
	term := entity.PaymentTerm{Percentage: 40}
	assert.InDelta(t, 400, PaymentAmount(1000, term), 1e-9)
}

func TestPercentTotals_Advisory(t *testing.T) {
	milestones := []entity.Milestone{{Percentage: 30}, {Percentage: 30}, {Percentage: 25}}
	terms := []entity.PaymentTerm{{Percentage: 50}, {Percentage: 60}}

	// Sums short of or past 100 are reported, never rejected.
	assert.InDelta(t, 85, MilestonePercentTotal(milestones), 1e-9)
	assert.InDelta(t, 110, PaymentPercentTotal(terms), 1e-9)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "$923.40", Format(923.4, "USD"))
	assert.Equal(t, "€0.00", Format(0, "EUR"))
	assert.Equal(t, "-$500.00", Format(-500, "USD"))
	assert.Equal(t, "XTS 12.50", Format(12.5, "XTS"))
}
