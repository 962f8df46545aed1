package models

// Customer is the payment platform's customer record.
type Customer struct {
	ID    string
	Email string
	Name  string
}

// CustomerParams creates or updates a customer.
type CustomerParams struct {
	Email       string
	Name        string
	PackageName string
}

// ChargeRequest is an immediate, auto-confirmed one-time charge.
type ChargeRequest struct {
	CustomerID      string
	PaymentMethodID string
	AmountCents     int64
	Currency        string
	Description     string
	IdempotencyKey  string
	Metadata        map[string]string
}

// Charge is the outcome of a ChargeRequest.
type Charge struct {
	ID          string
	Status      string
	AmountCents int64
}

// ChargeSucceeded is the only settled charge status.
const ChargeSucceeded = "succeeded"

// SubscriptionRequest creates a monthly subscription on an existing price.
type SubscriptionRequest struct {
	CustomerID         string
	PriceID            string
	BillingCycleAnchor int64
	Metadata           map[string]string
}
