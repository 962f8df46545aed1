package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"

	"salesnav/models"
)

// StripeGateway talks to Stripe with automatic network retries disabled, so
// every platform call happens at most once per checkout.
type StripeGateway struct {
	api    *client.API
	logger *zap.Logger
}

// NewStripeGateway builds a gateway. apiURL overrides the Stripe endpoint and
// is empty in production.
func NewStripeGateway(secretKey, apiURL string, timeout time.Duration, logger *zap.Logger) (*StripeGateway, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("stripe gateway initialization error: secret key is empty")
	}
	if logger == nil {
		return nil, fmt.Errorf("stripe gateway initialization error: logger is nil")
	}
	cfg := &stripe.BackendConfig{
		HTTPClient:        &http.Client{Timeout: timeout},
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelError},
	}
	if apiURL != "" {
		cfg.URL = stripe.String(apiURL)
	}
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, cfg)
	api := client.New(secretKey, &stripe.Backends{API: backend, Connect: backend, Uploads: backend})
	return &StripeGateway{api: api, logger: logger}, nil
}

func (g *StripeGateway) PaymentMethodCustomer(ctx context.Context, paymentMethodID string) (string, error) {
	params := &stripe.PaymentMethodParams{}
	params.Context = ctx
	pm, err := g.api.PaymentMethods.Get(paymentMethodID, params)
	if err != nil {
		return "", gatewayError("retrieve payment method", err)
	}
	if pm.Customer == nil {
		return "", nil
	}
	return pm.Customer.ID, nil
}

func (g *StripeGateway) GetCustomer(ctx context.Context, customerID string) (*models.Customer, error) {
	params := &stripe.CustomerParams{}
	params.Context = ctx
	c, err := g.api.Customers.Get(customerID, params)
	if err != nil {
		return nil, gatewayError("retrieve customer", err)
	}
	return toCustomer(c), nil
}

func (g *StripeGateway) CreateCustomer(ctx context.Context, p models.CustomerParams) (*models.Customer, error) {
	params := customerParams(ctx, p)
	c, err := g.api.Customers.New(params)
	if err != nil {
		return nil, gatewayError("create customer", err)
	}
	g.logger.Info("Stripe customer created", zap.String("customerId", c.ID))
	return toCustomer(c), nil
}

func (g *StripeGateway) UpdateCustomer(ctx context.Context, customerID string, p models.CustomerParams) (*models.Customer, error) {
	params := customerParams(ctx, p)
	c, err := g.api.Customers.Update(customerID, params)
	if err != nil {
		return nil, gatewayError("update customer", err)
	}
	return toCustomer(c), nil
}

func (g *StripeGateway) AttachPaymentMethod(ctx context.Context, paymentMethodID, customerID string) error {
	params := &stripe.PaymentMethodAttachParams{Customer: stripe.String(customerID)}
	params.Context = ctx
	if _, err := g.api.PaymentMethods.Attach(paymentMethodID, params); err != nil {
		return gatewayError("attach payment method", err)
	}
	return nil
}

// Charge creates and confirms a card-only payment intent in one call.
func (g *StripeGateway) Charge(ctx context.Context, req models.ChargeRequest) (*models.Charge, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(req.AmountCents),
		Currency:      stripe.String(req.Currency),
		Customer:      stripe.String(req.CustomerID),
		PaymentMethod: stripe.String(req.PaymentMethodID),
		Confirm:       stripe.Bool(true),
		Description:   stripe.String(req.Description),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	params.Context = ctx
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, gatewayError("create payment intent", err)
	}
	return &models.Charge{ID: pi.ID, Status: string(pi.Status), AmountCents: pi.Amount}, nil
}

func (g *StripeGateway) SetDefaultPaymentMethod(ctx context.Context, customerID, paymentMethodID string) error {
	params := &stripe.CustomerParams{
		InvoiceSettings: &stripe.CustomerInvoiceSettingsParams{
			DefaultPaymentMethod: stripe.String(paymentMethodID),
		},
	}
	params.Context = ctx
	if _, err := g.api.Customers.Update(customerID, params); err != nil {
		return gatewayError("set default payment method", err)
	}
	return nil
}

func (g *StripeGateway) CreateMonthlyPrice(ctx context.Context, productName string, amountCents int64, currency string) (string, error) {
	params := &stripe.PriceParams{
		UnitAmount: stripe.Int64(amountCents),
		Currency:   stripe.String(currency),
		Recurring: &stripe.PriceRecurringParams{
			Interval: stripe.String(string(stripe.PriceRecurringIntervalMonth)),
		},
		ProductData: &stripe.PriceProductDataParams{
			Name: stripe.String(productName),
		},
	}
	params.Context = ctx
	p, err := g.api.Prices.New(params)
	if err != nil {
		return "", gatewayError("create price", err)
	}
	return p.ID, nil
}

func (g *StripeGateway) CreateSubscription(ctx context.Context, req models.SubscriptionRequest) (string, error) {
	params := &stripe.SubscriptionParams{
		Customer:           stripe.String(req.CustomerID),
		Items:              []*stripe.SubscriptionItemsParams{{Price: stripe.String(req.PriceID)}},
		BillingCycleAnchor: stripe.Int64(req.BillingCycleAnchor),
		ProrationBehavior:  stripe.String("none"),
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	sub, err := g.api.Subscriptions.New(params)
	if err != nil {
		return "", gatewayError("create subscription", err)
	}
	return sub.ID, nil
}

func customerParams(ctx context.Context, p models.CustomerParams) *stripe.CustomerParams {
	params := &stripe.CustomerParams{
		Email: stripe.String(p.Email),
		Name:  stripe.String(p.Name),
	}
	params.Context = ctx
	if p.PackageName != "" {
		params.AddMetadata("package_name", p.PackageName)
	}
	return params
}

func toCustomer(c *stripe.Customer) *models.Customer {
	return &models.Customer{ID: c.ID, Email: c.Email, Name: c.Name}
}

// GatewayError carries the platform's human-readable message, which is what
// checkout callers report to the client.
type GatewayError struct {
	Op  string
	Msg string
	Err error
}

func (e *GatewayError) Error() string { return e.Msg }

func (e *GatewayError) Unwrap() error { return e.Err }

func gatewayError(op string, err error) error {
	msg := err.Error()
	var se *stripe.Error
	if errors.As(err, &se) && se.Msg != "" {
		msg = se.Msg
	}
	return &GatewayError{Op: op, Msg: msg, Err: err}
}
