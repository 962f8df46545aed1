package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"salesnav/models"
)

func newTestGateway(t *testing.T, h http.HandlerFunc) *StripeGateway {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	g, err := NewStripeGateway("sk_test_123", srv.URL, 5*time.Second, zap.NewNop())
	require.NoError(t, err)
	return g
}

func TestNewStripeGateway_RequiresKey(t *testing.T) {
	_, err := NewStripeGateway("", "", time.Second, zap.NewNop())
	assert.Error(t, err)
}

func TestCharge_SendsConfirmedCardOnlyIntent(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "38070", r.PostForm.Get("amount"))
		assert.Equal(t, "usd", r.PostForm.Get("currency"))
		assert.Equal(t, "true", r.PostForm.Get("confirm"))
		assert.Equal(t, "never", r.PostForm.Get("automatic_payment_methods[allow_redirects]"))
		assert.Equal(t, "Test Business Inc", r.PostForm.Get("metadata[client_name]"))
		assert.Equal(t, "idem-1", r.Header.Get("Idempotency-Key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pi_1","object":"payment_intent","status":"succeeded","amount":38070}`))
	})

	charge, err := g.Charge(context.Background(), models.ChargeRequest{
		CustomerID:      "cus_1",
		PaymentMethodID: "pm_1",
		AmountCents:     38070,
		Currency:        "usd",
		Description:     "Setup fee for Automated Appointment Booking",
		IdempotencyKey:  "idem-1",
		Metadata:        map[string]string{"client_name": "Test Business Inc"},
	})
	require.NoError(t, err)
	assert.Equal(t, "pi_1", charge.ID)
	assert.Equal(t, models.ChargeSucceeded, charge.Status)
	assert.Equal(t, int64(38070), charge.AmountCents)
}

func TestCharge_DoesNotRetryOnServerError(t *testing.T) {
	var calls int32
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"type":"api_error","message":"boom"}}`))
	})

	_, err := g.Charge(context.Background(), models.ChargeRequest{AmountCents: 100, Currency: "usd"})
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCharge_DeclineSurfacesStripeMessage(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"type":"card_error","code":"card_declined","message":"Your card was declined."}}`))
	})

	_, err := g.Charge(context.Background(), models.ChargeRequest{AmountCents: 100, Currency: "usd"})
	require.Error(t, err)
	assert.Equal(t, "Your card was declined.", err.Error())

	var gerr *GatewayError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "create payment intent", gerr.Op)
}

func TestPaymentMethodCustomer(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/payment_methods/pm_attached":
			_, _ = w.Write([]byte(`{"id":"pm_attached","object":"payment_method","customer":"cus_9"}`))
		default:
			_, _ = w.Write([]byte(`{"id":"pm_new","object":"payment_method","customer":null}`))
		}
	})

	id, err := g.PaymentMethodCustomer(context.Background(), "pm_attached")
	require.NoError(t, err)
	assert.Equal(t, "cus_9", id)

	id, err = g.PaymentMethodCustomer(context.Background(), "pm_new")
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestCreateSubscription_AnchorsWithoutProration(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/subscriptions", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "price_1", r.PostForm.Get("items[0][price]"))
		assert.Equal(t, "1700000000", r.PostForm.Get("billing_cycle_anchor"))
		assert.Equal(t, "none", r.PostForm.Get("proration_behavior"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"sub_1","object":"subscription"}`))
	})

	id, err := g.CreateSubscription(context.Background(), models.SubscriptionRequest{
		CustomerID:         "cus_1",
		PriceID:            "price_1",
		BillingCycleAnchor: 1700000000,
	})
	require.NoError(t, err)
	assert.Equal(t, "sub_1", id)
}
