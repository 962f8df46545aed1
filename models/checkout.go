package models

import "time"

// ClientInfo identifies the buyer.
type ClientInfo struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	BusinessName string `json:"businessName"`
	Industry     string `json:"industry,omitempty"`
	Role         string `json:"role,omitempty"`
}

// PackageService is a purchased catalog entry as sent by the wizard.
type PackageService struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	SetupFee    float64 `json:"setupFee"`
	MonthlyFee  float64 `json:"monthlyFee"`
	Description string  `json:"description,omitempty"`
}

// PackageDetails carries the purchased services and their priced totals.
type PackageDetails struct {
	Services []PackageService `json:"services"`
	Pricing  PricingBreakdown `json:"pricing"`
}

// PaymentAuthorization carries the card collected by the hosted payment element.
type PaymentAuthorization struct {
	PaymentMethodID string `json:"paymentMethodId"`
	StripeAccountID string `json:"stripeAccountId,omitempty"`
}

// BillingSchedule is informational and passed through untouched.
type BillingSchedule struct {
	SetupImmediate  bool    `json:"setupImmediate"`
	RecurringDelay  string  `json:"recurringDelay"`
	RecurringAmount float64 `json:"recurringAmount"`
}

// ProcessPaymentRequest is the consolidated checkout payload.
type ProcessPaymentRequest struct {
	ClientInfo           ClientInfo             `json:"clientInfo"`
	PackageDetails       PackageDetails         `json:"packageDetails"`
	PaymentAuthorization PaymentAuthorization   `json:"paymentAuthorization"`
	InterviewResponses   map[string]interface{} `json:"interviewResponses,omitempty"`
	InterviewData        map[string]interface{} `json:"interviewData,omitempty"`
	BillingSchedule      *BillingSchedule       `json:"billingSchedule,omitempty"`
	CRMSubAccount        string                 `json:"ghlSubAccount,omitempty"`
	TestMode             bool                   `json:"testMode,omitempty"`
}

// PackageName is the name of the first purchased service.
func (r ProcessPaymentRequest) PackageName() string {
	if len(r.PackageDetails.Services) == 0 || r.PackageDetails.Services[0].Name == "" {
		return "Unknown Package"
	}
	return r.PackageDetails.Services[0].Name
}

// CheckoutResult aggregates the ids produced by a successful checkout.
type CheckoutResult struct {
	PaymentIntentID string    `json:"paymentIntentId"`
	SubscriptionID  string    `json:"subscriptionId"`
	CustomerID      string    `json:"customerId"`
	ContactID       *string   `json:"contactId"`
	SetupFee        float64   `json:"setupFee"`
	MonthlyFee      float64   `json:"monthlyFee"`
	NextBillingDate time.Time `json:"nextBillingDate"`
}

// ProcessPaymentResponse is the success payload of the checkout endpoint.
type ProcessPaymentResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    *CheckoutResult `json:"data"`
}

// Checkout record statuses.
const (
	CheckoutSucceeded = "succeeded"
	CheckoutFailed    = "failed"
)

// CheckoutRecord is the audit entry written for every checkout attempt.
type CheckoutRecord struct {
	ID              string    `bson:"id" json:"id"`
	Status          string    `bson:"status" json:"status"`
	ClientName      string    `bson:"client_name" json:"clientName"`
	ClientEmail     string    `bson:"client_email" json:"clientEmail"`
	PackageName     string    `bson:"package_name" json:"packageName"`
	SetupFee        float64   `bson:"setup_fee" json:"setupFee"`
	MonthlyFee      float64   `bson:"monthly_fee" json:"monthlyFee"`
	CustomerID      string    `bson:"customer_id,omitempty" json:"customerId,omitempty"`
	PaymentIntentID string    `bson:"payment_intent_id,omitempty" json:"paymentIntentId,omitempty"`
	SubscriptionID  string    `bson:"subscription_id,omitempty" json:"subscriptionId,omitempty"`
	ContactID       string    `bson:"contact_id,omitempty" json:"contactId,omitempty"`
	Warnings        []string  `bson:"warnings,omitempty" json:"warnings,omitempty"`
	Error           string    `bson:"error,omitempty" json:"error,omitempty"`
	CreatedAt       time.Time `bson:"created_at" json:"createdAt"`
}

// SessionCheckoutRequest starts checkout from a signed discovery session.
type SessionCheckoutRequest struct {
	PaymentMethodID string `json:"paymentMethodId"`
}
