package models

// PricingBreakdown is the derived proposal math. Setup and monthly buckets are
// discounted and taxed independently.
type PricingBreakdown struct {
	DiscountPercent        float64 `json:"discountPercent"`
	WaiveSetupFees         bool    `json:"waiveSetupFees"`
	TaxRate                float64 `json:"taxRate"`
	SetupSubtotal          float64 `json:"setupSubtotal"`
	MonthlySubtotal        float64 `json:"monthlySubtotal"`
	EffectiveSetupSubtotal float64 `json:"effectiveSetupSubtotal"`
	SetupDiscount          float64 `json:"setupDiscount"`
	MonthlyDiscount        float64 `json:"monthlyDiscount"`
	SetupAfterDiscount     float64 `json:"setupAfterDiscount"`
	MonthlyAfterDiscount   float64 `json:"monthlyAfterDiscount"`
	SetupTax               float64 `json:"setupTax"`
	MonthlyTax             float64 `json:"monthlyTax"`
	TotalDueToday          float64 `json:"totalDueToday"`
	MonthlyRecurring       float64 `json:"monthlyRecurring"`
}

// QuoteRequest asks for pricing of an explicit service selection.
type QuoteRequest struct {
	ServiceIDs      []string `json:"serviceIds"`
	DiscountPercent float64  `json:"discountPercent"`
	WaiveSetupFees  bool     `json:"waiveSetupFees"`
}
