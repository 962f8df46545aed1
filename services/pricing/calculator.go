package pricing

import (
	"errors"
	"fmt"

	"salesnav/models"
)

// ErrDiscountOutOfRange is returned when a discount falls outside [0, max].
var ErrDiscountOutOfRange = errors.New("discount out of range")

// Calculator prices a service selection at a fixed regional tax rate.
type Calculator struct {
	TaxRate     float64
	MaxDiscount float64
}

// NewCalculator builds a Calculator. maxDiscount is a percentage.
func NewCalculator(taxRate, maxDiscount float64) *Calculator {
	return &Calculator{TaxRate: taxRate, MaxDiscount: maxDiscount}
}

// Calculate derives the full breakdown. Setup and monthly fees are discounted
// and taxed as separate buckets; waiving setup fees zeroes the setup bucket
// before the discount.
func (c *Calculator) Calculate(services []models.Service, discountPercent float64, waiveSetupFees bool) (models.PricingBreakdown, error) {
	if discountPercent < 0 || discountPercent > c.MaxDiscount {
		return models.PricingBreakdown{}, fmt.Errorf("%w: %.2f not in [0, %.2f]", ErrDiscountOutOfRange, discountPercent, c.MaxDiscount)
	}

	var setup, monthly float64
	for _, s := range services {
		setup += s.SetupFee
		monthly += s.MonthlyFee
	}

	effectiveSetup := setup
	if waiveSetupFees {
		effectiveSetup = 0
	}

	rate := discountPercent / 100
	b := models.PricingBreakdown{
		DiscountPercent:        discountPercent,
		WaiveSetupFees:         waiveSetupFees,
		TaxRate:                c.TaxRate,
		SetupSubtotal:          setup,
		MonthlySubtotal:        monthly,
		EffectiveSetupSubtotal: effectiveSetup,
		SetupDiscount:          effectiveSetup * rate,
		MonthlyDiscount:        monthly * rate,
	}
	b.SetupAfterDiscount = effectiveSetup - b.SetupDiscount
	b.MonthlyAfterDiscount = monthly - b.MonthlyDiscount
	b.SetupTax = b.SetupAfterDiscount * c.TaxRate
	b.MonthlyTax = b.MonthlyAfterDiscount * c.TaxRate
	b.TotalDueToday = b.SetupAfterDiscount + b.SetupTax
	b.MonthlyRecurring = b.MonthlyAfterDiscount + b.MonthlyTax
	return b, nil
}
