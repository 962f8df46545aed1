package proposal

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"salesnav/models"
	"salesnav/services/catalog"
	"salesnav/services/checkout"
	"salesnav/services/copywriter"
	"salesnav/services/discovery"
	"salesnav/services/pricing"
	"salesnav/services/storage"
)

var (
	ErrPackageNotReady   = errors.New("package not generated yet")
	ErrNoServices        = errors.New("no services selected")
	ErrNoProposal        = errors.New("proposal not generated yet")
	ErrNotSigned         = errors.New("proposal not signed")
	ErrAlreadyPaid       = errors.New("proposal already paid")
	ErrProposalStale     = errors.New("selection changed since the proposal was priced")
	ErrStorageDisabled   = errors.New("signature storage is not configured")
	ErrMissingPaymentRef = errors.New("payment method is required")
)

// ProposalService takes a session from a chosen package to a paid proposal.
type ProposalService interface {
	Quote(req models.QuoteRequest) (*models.PricingBreakdown, error)
	Propose(ctx context.Context, sessionID string, discountPercent float64, waiveSetupFees bool) (*models.ProposalTerms, error)
	Sign(ctx context.Context, sessionID, dataURL string) (*models.Signature, error)
	Checkout(ctx context.Context, sessionID, paymentMethodID, idempotencyKey string) (*models.CheckoutResult, error)
	DraftEmail(ctx context.Context, sessionID, emailType string) (*models.EmailDraft, error)
}

type DefaultProposalService struct {
	store      discovery.SessionStore
	calculator *pricing.Calculator
	storage    storage.StorageService
	checkout   checkout.CheckoutService
	writer     *copywriter.Writer
	logger     *zap.Logger
	now        func() time.Time
}

// NewDefaultProposalService accepts a nil storage; signing then fails with
// ErrStorageDisabled.
func NewDefaultProposalService(
	store discovery.SessionStore,
	calculator *pricing.Calculator,
	storageService storage.StorageService,
	checkoutService checkout.CheckoutService,
	writer *copywriter.Writer,
	logger *zap.Logger,
) (*DefaultProposalService, error) {
	if store == nil || calculator == nil || checkoutService == nil || writer == nil || logger == nil {
		return nil, fmt.Errorf("proposal service initialization error: a required dependency is nil")
	}
	return &DefaultProposalService{
		store:      store,
		calculator: calculator,
		storage:    storageService,
		checkout:   checkoutService,
		writer:     writer,
		logger:     logger,
		now:        time.Now,
	}, nil
}

// Quote prices an explicit selection against the untailored catalog.
func (s *DefaultProposalService) Quote(req models.QuoteRequest) (*models.PricingBreakdown, error) {
	services, err := catalog.Lookup(models.AnswerSet{}, req.ServiceIDs)
	if err != nil {
		return nil, err
	}
	b, err := s.calculator.Calculate(services, req.DiscountPercent, req.WaiveSetupFees)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Propose prices the current selection. New terms need a new signature, so
// any existing one is dropped and its image deleted.
func (s *DefaultProposalService) Propose(ctx context.Context, sessionID string, discountPercent float64, waiveSetupFees bool) (*models.ProposalTerms, error) {
	var (
		terms   *models.ProposalTerms
		dropped *models.Signature
	)
	_, err := s.store.Update(ctx, sessionID, func(sess *models.DiscoverySession) error {
		dropped = nil
		if !sess.PackageReady {
			return ErrPackageNotReady
		}
		if len(sess.SelectedServices) == 0 {
			return ErrNoServices
		}
		if sess.Checkout != nil {
			return ErrAlreadyPaid
		}
		services, err := catalog.Lookup(sess.Answers, sess.SelectedServices)
		if err != nil {
			return err
		}
		breakdown, err := s.calculator.Calculate(services, discountPercent, waiveSetupFees)
		if err != nil {
			return err
		}
		terms = &models.ProposalTerms{
			ServiceIDs:      slices.Clone(sess.SelectedServices),
			DiscountPercent: discountPercent,
			WaiveSetupFees:  waiveSetupFees,
			Pricing:         breakdown,
		}
		dropped = sess.Signature
		sess.Proposal = terms
		sess.Signature = nil
		sess.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if dropped != nil {
		storage.Discard(context.WithoutCancel(ctx), s.storage, dropped.PublicID, s.logger)
	}
	return terms, nil
}

func (s *DefaultProposalService) Sign(ctx context.Context, sessionID, dataURL string) (*models.Signature, error) {
	if s.storage == nil {
		return nil, ErrStorageDisabled
	}
	if err := storage.ValidateDataURL(dataURL); err != nil {
		return nil, err
	}
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Proposal == nil {
		return nil, ErrNoProposal
	}

	signedAt := s.now()
	file, err := s.storage.UploadDataURL(ctx, dataURL, fmt.Sprintf("signature-%s-%d", sessionID, signedAt.Unix()))
	if err != nil {
		return nil, fmt.Errorf("failed to store signature: %w", err)
	}
	sig := &models.Signature{URL: file.URL, PublicID: file.PublicID, SignedAt: signedAt}

	var replaced *models.Signature
	_, err = s.store.Update(ctx, sessionID, func(sess *models.DiscoverySession) error {
		replaced = nil
		if sess.Checkout != nil {
			return ErrAlreadyPaid
		}
		if sess.Proposal == nil {
			return ErrNoProposal
		}
		replaced = sess.Signature
		sess.Signature = sig
		sess.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		storage.Discard(context.WithoutCancel(ctx), s.storage, file.PublicID, s.logger)
		return nil, err
	}
	if replaced != nil && replaced.PublicID != sig.PublicID {
		storage.Discard(context.WithoutCancel(ctx), s.storage, replaced.PublicID, s.logger)
	}
	s.logger.Info("Proposal signed", zap.String("sessionId", sessionID))
	return sig, nil
}

// Checkout builds the process-payment payload from the signed session and
// runs it. The result is kept on the session.
func (s *DefaultProposalService) Checkout(ctx context.Context, sessionID, paymentMethodID, idempotencyKey string) (*models.CheckoutResult, error) {
	if paymentMethodID == "" {
		return nil, ErrMissingPaymentRef
	}
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Checkout != nil {
		return nil, ErrAlreadyPaid
	}
	if sess.Proposal == nil {
		return nil, ErrNoProposal
	}
	if sess.Signature == nil {
		return nil, ErrNotSigned
	}
	if !slices.Equal(sess.Proposal.ServiceIDs, sess.SelectedServices) {
		return nil, ErrProposalStale
	}

	req, err := BuildPaymentRequest(sess, paymentMethodID)
	if err != nil {
		return nil, err
	}
	res, err := s.checkout.ProcessPayment(ctx, req, idempotencyKey)
	if err != nil {
		return nil, err
	}

	// Only the result is written back; anything else changed during the
	// checkout is kept.
	_, err = s.store.Update(context.WithoutCancel(ctx), sessionID, func(sess *models.DiscoverySession) error {
		sess.Checkout = res
		sess.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		// The payment went through; losing the session copy is not fatal.
		s.logger.Error("Failed to store checkout result on session",
			zap.String("sessionId", sessionID), zap.String("paymentIntentId", res.PaymentIntentID), zap.Error(err))
	}
	return res, nil
}

func (s *DefaultProposalService) DraftEmail(ctx context.Context, sessionID, emailType string) (*models.EmailDraft, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.writer.Draft(ctx, emailType, copywriter.BusinessInfo{
		Name:         sess.Answers.Text("name"),
		BusinessName: sess.Answers.Text("businessName"),
		Industry:     sess.Answers.Text("industry"),
	})
}
