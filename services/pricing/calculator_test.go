package pricing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesnav/models"
)

const ohioTax = 0.0575

func TestCalculate_SingleServiceWithDiscount(t *testing.T) {
	c := NewCalculator(ohioTax, 30)
	b, err := c.Calculate([]models.Service{{SetupFee: 400, MonthlyFee: 100}}, 10, false)
	require.NoError(t, err)

	assert.InDelta(t, 400, b.SetupSubtotal, 1e-9)
	assert.InDelta(t, 360, b.SetupAfterDiscount, 1e-9)
	assert.InDelta(t, 20.70, b.SetupTax, 1e-9)
	assert.InDelta(t, 380.70, b.TotalDueToday, 1e-9)

	assert.InDelta(t, 100, b.MonthlySubtotal, 1e-9)
	assert.InDelta(t, 90, b.MonthlyAfterDiscount, 1e-9)
	assert.InDelta(t, 5.175, b.MonthlyTax, 1e-9)
	assert.InDelta(t, 95.175, b.MonthlyRecurring, 1e-9)
}

func TestCalculate_TaxPerBucket(t *testing.T) {
	c := NewCalculator(ohioTax, 30)
	services := []models.Service{
		{SetupFee: 400, MonthlyFee: 100},
		{SetupFee: 1600, MonthlyFee: 400},
		{SetupFee: 150, MonthlyFee: 0},
	}
	for d := 0.0; d <= 30; d += 2.5 {
		b, err := c.Calculate(services, d, false)
		require.NoError(t, err)
		assert.InDelta(t, 2150*(1-d/100)*(1+ohioTax), b.TotalDueToday, 1e-9, "discount %v", d)
		assert.InDelta(t, 500*(1-d/100)*(1+ohioTax), b.MonthlyRecurring, 1e-9, "discount %v", d)
	}
}

func TestCalculate_WaiveSetupFees(t *testing.T) {
	c := NewCalculator(ohioTax, 30)
	for _, d := range []float64{0, 15, 30} {
		b, err := c.Calculate([]models.Service{{SetupFee: 400, MonthlyFee: 100}}, d, true)
		require.NoError(t, err)
		assert.Equal(t, 400.0, b.SetupSubtotal)
		assert.Zero(t, b.EffectiveSetupSubtotal)
		assert.Zero(t, b.SetupTax)
		assert.Zero(t, b.TotalDueToday)
		assert.InDelta(t, 100*(1-d/100)*(1+ohioTax), b.MonthlyRecurring, 1e-9)
	}
}

func TestCalculate_RejectsDiscountOutOfRange(t *testing.T) {
	c := NewCalculator(ohioTax, 30)
	for _, d := range []float64{-1, 30.01, 50} {
		_, err := c.Calculate(nil, d, false)
		assert.True(t, errors.Is(err, ErrDiscountOutOfRange), "discount %v", d)
	}
}

func TestCalculate_EmptySelection(t *testing.T) {
	b, err := NewCalculator(ohioTax, 30).Calculate(nil, 0, false)
	require.NoError(t, err)
	assert.Zero(t, b.TotalDueToday)
	assert.Zero(t, b.MonthlyRecurring)
}
