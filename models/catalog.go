package models

// Priority tags shown next to each catalog entry.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
	PriorityTest   = "test"
)

// Service is one sellable catalog entry.
type Service struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	SetupFee        float64          `json:"setupFee"`
	MonthlyFee      float64          `json:"monthlyFee"`
	Priority        string           `json:"priority"`
	Description     string           `json:"description"`
	Reason          string           `json:"reason"`
	IsTestPackage   bool             `json:"isTestPackage,omitempty"`
	CRMSubAccount   string           `json:"ghlSubAccount,omitempty"`
	BillingSchedule *BillingSchedule `json:"billingSchedule,omitempty"`
}

// PackageView is the package step: the catalog tailored to the answers and the
// current selection.
type PackageView struct {
	Services      []Service `json:"services"`
	Selected      []string  `json:"selected"`
	Recommended   []string  `json:"recommended"`
	SetupTotal    float64   `json:"setupTotal"`
	MonthlyTotal  float64   `json:"monthlyTotal"`
	SelectedCount int       `json:"selectedCount"`
}
