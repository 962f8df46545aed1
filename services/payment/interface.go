package payment

import (
	"context"

	"salesnav/models"
)

// Gateway is the payment platform surface the checkout needs.
type Gateway interface {
	// PaymentMethodCustomer returns the customer the method is attached to, or "".
	PaymentMethodCustomer(ctx context.Context, paymentMethodID string) (string, error)
	GetCustomer(ctx context.Context, customerID string) (*models.Customer, error)
	CreateCustomer(ctx context.Context, p models.CustomerParams) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, customerID string, p models.CustomerParams) (*models.Customer, error)
	AttachPaymentMethod(ctx context.Context, paymentMethodID, customerID string) error
	Charge(ctx context.Context, req models.ChargeRequest) (*models.Charge, error)
	SetDefaultPaymentMethod(ctx context.Context, customerID, paymentMethodID string) error
	CreateMonthlyPrice(ctx context.Context, productName string, amountCents int64, currency string) (string, error)
	CreateSubscription(ctx context.Context, req models.SubscriptionRequest) (string, error)
}
