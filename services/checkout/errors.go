package checkout

import "errors"

var (
	// ErrMissingPaymentMethod rejects a request with no card to charge.
	ErrMissingPaymentMethod = errors.New("paymentMethodId is required")
	// ErrNegativeAmount rejects a setup or monthly amount below zero.
	ErrNegativeAmount = errors.New("pricing amounts must not be negative")
	// ErrDuplicateSubmission rejects a checkout already in flight or completed.
	ErrDuplicateSubmission = errors.New("duplicate submission")
)

// StepError marks the checkout step that aborted the request. Its message is
// the underlying error's, which is what callers show.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string { return e.Err.Error() }

func (e *StepError) Unwrap() error { return e.Err }

// Checkout steps.
const (
	StepCustomer     = "customer"
	StepCharge       = "charge"
	StepSubscription = "subscription"
)
