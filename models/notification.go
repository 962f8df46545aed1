package models

import "time"

// Notification kinds.
const (
	NotifyClient = "client"
	NotifySales  = "sales"
)

// PaymentNotification carries everything the post-payment emails render.
type PaymentNotification struct {
	Kind            string     `json:"kind"`
	ContactID       string     `json:"contactId,omitempty"`
	Client          ClientInfo `json:"client"`
	PackageName     string     `json:"packageName"`
	SetupFee        float64    `json:"setupFee"`
	MonthlyFee      float64    `json:"monthlyFee"`
	NextBillingDate time.Time  `json:"nextBillingDate"`
	PaymentIntentID string     `json:"paymentIntentId"`
	SubscriptionID  string     `json:"subscriptionId"`
	CustomerID      string     `json:"customerId"`
}
