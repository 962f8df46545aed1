package checkout

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"salesnav/models"
	"salesnav/services/crm"
	"salesnav/services/notification"
	"salesnav/services/payment"
	"salesnav/utils"
)

// billingDelay is how long after the setup charge the first monthly cycle starts.
const billingDelay = 24 * time.Hour

// AuditLog stores one record per checkout that reached the charge step.
type AuditLog interface {
	Create(ctx context.Context, rec *models.CheckoutRecord) error
}

// Settings are the fixed identifiers the checkout writes into external systems.
type Settings struct {
	Currency   string
	LocationID string
	PipelineID string
	StageID    string
	Business   models.BusinessDetails
}

// CheckoutService runs the payment and CRM sequence for a signed proposal.
type CheckoutService interface {
	ProcessPayment(ctx context.Context, req models.ProcessPaymentRequest, idempotencyKey string) (*models.CheckoutResult, error)
}

// Orchestrator is a fixed, linear sequence. Everything up to the subscription
// is fatal; everything after it is best effort and only logged.
type Orchestrator struct {
	gateway  payment.Gateway
	crm      crm.Client
	notifier notification.NotificationService
	guard    Guard
	audit    AuditLog
	settings Settings
	logger   *zap.Logger
	now      func() time.Time
}

func NewOrchestrator(
	gateway payment.Gateway,
	crmClient crm.Client,
	notifier notification.NotificationService,
	guard Guard,
	audit AuditLog,
	settings Settings,
	logger *zap.Logger,
) (*Orchestrator, error) {
	if gateway == nil || crmClient == nil || notifier == nil || logger == nil {
		return nil, fmt.Errorf("checkout orchestrator initialization error: gateway, crm, notifier or logger is nil")
	}
	return &Orchestrator{
		gateway:  gateway,
		crm:      crmClient,
		notifier: notifier,
		guard:    guard,
		audit:    audit,
		settings: settings,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// ProcessPayment charges the setup fee, starts the subscription and then
// records the sale in the CRM. An empty idempotencyKey is derived from the request.
func (o *Orchestrator) ProcessPayment(ctx context.Context, req models.ProcessPaymentRequest, idempotencyKey string) (res *models.CheckoutResult, err error) {
	pmID := req.PaymentAuthorization.PaymentMethodID
	if pmID == "" {
		return nil, ErrMissingPaymentMethod
	}

	client := req.ClientInfo
	packageName := req.PackageName()
	setupFee := req.PackageDetails.Pricing.TotalDueToday
	monthlyFee := req.PackageDetails.Pricing.MonthlyRecurring
	setupCents := utils.ToCents(setupFee)
	if setupCents < 0 || monthlyFee < 0 {
		return nil, fmt.Errorf("%w: totalDueToday=%.2f monthlyRecurring=%.2f", ErrNegativeAmount, setupFee, monthlyFee)
	}

	log := o.logger.With(zap.String("client", client.Name), zap.String("package", packageName))
	log.Info("Payment processing started",
		zap.Float64("setupFee", setupFee),
		zap.Float64("monthlyFee", monthlyFee),
		zap.String("paymentMethodId", pmID))

	if idempotencyKey == "" {
		idempotencyKey = IdempotencyKey(pmID, setupCents, client.Email)
	}
	charged := false
	if o.guard != nil {
		ok, gerr := o.guard.Acquire(ctx, idempotencyKey)
		if gerr != nil {
			log.Warn("Idempotency guard unavailable, continuing without it", zap.Error(gerr))
		} else if !ok {
			return nil, ErrDuplicateSubmission
		} else {
			defer func() {
				if err != nil && !charged {
					if rerr := o.guard.Release(context.WithoutCancel(ctx), idempotencyKey); rerr != nil {
						log.Warn("Failed to release idempotency guard", zap.Error(rerr))
					}
				}
			}()
		}
	}

	// Step 1: customer.
	customer, err := o.resolveCustomer(ctx, pmID, models.CustomerParams{
		Email:       client.Email,
		Name:        client.Name,
		PackageName: packageName,
	})
	if err != nil {
		return nil, &StepError{Step: StepCustomer, Err: err}
	}

	rec := &models.CheckoutRecord{
		ID:          uuid.New().String(),
		ClientName:  client.Name,
		ClientEmail: client.Email,
		PackageName: packageName,
		SetupFee:    setupFee,
		MonthlyFee:  monthlyFee,
		CustomerID:  customer.ID,
		CreatedAt:   o.now(),
	}
	defer func() {
		if err != nil {
			rec.Status = models.CheckoutFailed
			rec.Error = err.Error()
		} else {
			rec.Status = models.CheckoutSucceeded
		}
		o.record(context.WithoutCancel(ctx), rec)
	}()

	// Step 2: setup fee.
	var paymentIntentID string
	if setupCents > 0 {
		charge, cerr := o.gateway.Charge(ctx, models.ChargeRequest{
			CustomerID:      customer.ID,
			PaymentMethodID: pmID,
			AmountCents:     setupCents,
			Currency:        o.settings.Currency,
			Description:     "Setup fee for " + packageName,
			IdempotencyKey:  idempotencyKey,
			Metadata: map[string]string{
				"client_name":  client.Name,
				"client_email": client.Email,
				"package_name": packageName,
			},
		})
		if cerr != nil {
			return nil, &StepError{Step: StepCharge, Err: cerr}
		}
		if charge.Status != models.ChargeSucceeded {
			return nil, &StepError{Step: StepCharge, Err: fmt.Errorf("payment failed: %s", charge.Status)}
		}
		paymentIntentID = charge.ID
		rec.PaymentIntentID = charge.ID
		log.Info("Payment succeeded", zap.String("paymentIntentId", charge.ID), zap.String("amount", utils.FormatUSD(utils.FromCents(charge.AmountCents))))
	} else {
		log.Info("No setup amount due, skipping charge")
	}
	charged = true

	// The card has been charged; later steps must not be cut short by the caller going away.
	ctx = context.WithoutCancel(ctx)

	// Step 3: subscription.
	nextBilling := o.now().Add(billingDelay)
	subscriptionID, err := o.subscribe(ctx, customer.ID, pmID, packageName, client.Name, monthlyFee, nextBilling)
	if err != nil {
		log.Error("Subscription failed after payment", zap.String("paymentIntentId", paymentIntentID), zap.Error(err))
		return nil, &StepError{Step: StepSubscription, Err: err}
	}
	rec.SubscriptionID = subscriptionID
	log.Info("Subscription created", zap.String("subscriptionId", subscriptionID), zap.Time("nextBilling", nextBilling))

	// Step 4 onwards: best effort.
	contactID, cerr := o.crm.UpsertContact(ctx, models.ContactInput{
		LocationID:  o.settings.LocationID,
		Email:       client.Email,
		Name:        client.Name,
		Phone:       client.Phone,
		CompanyName: client.BusinessName,
		CustomFields: map[string]string{
			"business_name":          client.BusinessName,
			"package_selected":       packageName,
			"setup_fee":              strconv.FormatFloat(setupFee, 'f', -1, 64),
			"monthly_fee":            strconv.FormatFloat(monthlyFee, 'f', -1, 64),
			"stripe_customer_id":     customer.ID,
			"stripe_subscription_id": subscriptionID,
		},
	})
	if cerr != nil {
		o.warn(rec, "CRM contact creation failed, but payment succeeded", cerr)
		contactID = ""
	} else {
		rec.ContactID = contactID
		log.Info("CRM contact created", zap.String("contactId", contactID))
	}

	note := models.PaymentNotification{
		ContactID:       contactID,
		Client:          client,
		PackageName:     packageName,
		SetupFee:        setupFee,
		MonthlyFee:      monthlyFee,
		NextBillingDate: nextBilling,
		PaymentIntentID: paymentIntentID,
		SubscriptionID:  subscriptionID,
		CustomerID:      customer.ID,
	}

	if contactID != "" {
		o.createOpportunity(ctx, rec, contactID, client, packageName, monthlyFee)
		o.createInvoiceSchedule(ctx, rec, contactID, client, packageName, monthlyFee, nextBilling)
		if nerr := o.notifier.NotifyClient(ctx, note); nerr != nil {
			o.warn(rec, "Client confirmation email failed", nerr)
		}
	}
	if nerr := o.notifier.NotifySales(ctx, note); nerr != nil {
		o.warn(rec, "Sales team notification failed", nerr)
	}

	log.Info("Payment processing complete")

	res = &models.CheckoutResult{
		PaymentIntentID: paymentIntentID,
		SubscriptionID:  subscriptionID,
		CustomerID:      customer.ID,
		SetupFee:        setupFee,
		MonthlyFee:      monthlyFee,
		NextBillingDate: nextBilling,
	}
	if contactID != "" {
		res.ContactID = &contactID
	}
	return res, nil
}

// resolveCustomer reuses the customer a payment method is already attached to,
// refreshing its email and name when they differ. Otherwise it creates one
// and attaches the method.
func (o *Orchestrator) resolveCustomer(ctx context.Context, pmID string, p models.CustomerParams) (*models.Customer, error) {
	existingID, err := o.gateway.PaymentMethodCustomer(ctx, pmID)
	if err != nil {
		return nil, err
	}
	if existingID != "" {
		c, err := o.gateway.GetCustomer(ctx, existingID)
		if err != nil {
			return nil, err
		}
		o.logger.Info("Using existing customer", zap.String("customerId", c.ID))
		if c.Email != p.Email || c.Name != p.Name {
			return o.gateway.UpdateCustomer(ctx, c.ID, p)
		}
		return c, nil
	}

	c, err := o.gateway.CreateCustomer(ctx, p)
	if err != nil {
		return nil, err
	}
	if err := o.gateway.AttachPaymentMethod(ctx, pmID, c.ID); err != nil {
		return nil, err
	}
	return c, nil
}

func (o *Orchestrator) subscribe(ctx context.Context, customerID, pmID, packageName, clientName string, monthlyFee float64, anchor time.Time) (string, error) {
	if err := o.gateway.SetDefaultPaymentMethod(ctx, customerID, pmID); err != nil {
		return "", err
	}
	priceID, err := o.gateway.CreateMonthlyPrice(ctx, packageName+" - Monthly Service", utils.ToCents(monthlyFee), o.settings.Currency)
	if err != nil {
		return "", err
	}
	return o.gateway.CreateSubscription(ctx, models.SubscriptionRequest{
		CustomerID:         customerID,
		PriceID:            priceID,
		BillingCycleAnchor: anchor.Unix(),
		Metadata: map[string]string{
			"client_name":  clientName,
			"package_name": packageName,
		},
	})
}

func (o *Orchestrator) createOpportunity(ctx context.Context, rec *models.CheckoutRecord, contactID string, client models.ClientInfo, packageName string, monthlyFee float64) {
	id, err := o.crm.CreateOpportunity(ctx, models.Opportunity{
		PipelineID:      o.settings.PipelineID,
		LocationID:      o.settings.LocationID,
		Name:            packageName + " - " + client.Name,
		PipelineStageID: o.settings.StageID,
		Status:          "open",
		ContactID:       contactID,
		MonetaryValue:   monthlyFee,
	})
	if err != nil {
		o.warn(rec, "CRM opportunity creation failed", err)
		return
	}
	o.logger.Info("CRM opportunity created", zap.String("opportunityId", id))
}

func (o *Orchestrator) createInvoiceSchedule(ctx context.Context, rec *models.CheckoutRecord, contactID string, client models.ClientInfo, packageName string, monthlyFee float64, start time.Time) {
	id, err := o.crm.CreateInvoiceSchedule(ctx, models.InvoiceSchedule{
		LocationID:   o.settings.LocationID,
		Name:         packageName + " - Recurring",
		Contact:      client,
		ContactID:    contactID,
		StartDate:    start.UTC().Format("2006-01-02"),
		StartTime:    "09:00:00",
		Currency:     "USD",
		ItemName:     packageName,
		ItemDesc:     "Monthly subscription fee",
		Amount:       monthlyFee,
		Business:     o.settings.Business,
		NumberPrefix: "REC-",
	})
	if err != nil {
		o.warn(rec, "CRM recurring invoice schedule creation failed", err)
		return
	}
	o.logger.Info("CRM recurring invoice schedule created", zap.String("scheduleId", id), zap.String("amount", utils.FormatUSD(monthlyFee)))
}

func (o *Orchestrator) warn(rec *models.CheckoutRecord, msg string, err error) {
	o.logger.Warn(msg, zap.Error(err))
	rec.Warnings = append(rec.Warnings, fmt.Sprintf("%s: %v", msg, err))
}

func (o *Orchestrator) record(ctx context.Context, rec *models.CheckoutRecord) {
	if o.audit == nil {
		return
	}
	if err := o.audit.Create(ctx, rec); err != nil {
		o.logger.Warn("Failed to record checkout", zap.String("checkoutId", rec.ID), zap.Error(err))
	}
}
