package proposal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"salesnav/models"
	"salesnav/services/catalog"
	"salesnav/services/copywriter"
	"salesnav/services/discovery"
	"salesnav/services/pricing"
	"salesnav/services/storage"
)

const pngDataURL = "data:image/png;base64,iVBORw0KGgo="

type fakeStorage struct {
	uploads []string
	deleted []string
	err     error
}

func (f *fakeStorage) UploadDataURL(_ context.Context, _ string, name string) (*storage.StoredFile, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.uploads = append(f.uploads, name)
	return &storage.StoredFile{URL: "https://cdn.test/" + name + ".png", PublicID: name}, nil
}

func (f *fakeStorage) DeleteFile(_ context.Context, publicID string) error {
	f.deleted = append(f.deleted, publicID)
	return nil
}

type fakeCheckout struct {
	got    models.ProcessPaymentRequest
	key    string
	err    error
	during func()
}

func (f *fakeCheckout) ProcessPayment(_ context.Context, req models.ProcessPaymentRequest, key string) (*models.CheckoutResult, error) {
	f.got = req
	f.key = key
	if f.during != nil {
		f.during()
	}
	if f.err != nil {
		return nil, f.err
	}
	return &models.CheckoutResult{PaymentIntentID: "pi_1", SubscriptionID: "sub_1", CustomerID: "cus_1"}, nil
}

type fixture struct {
	svc      *DefaultProposalService
	store    *discovery.MemoryStore
	storage  *fakeStorage
	checkout *fakeCheckout
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:    discovery.NewMemoryStore(),
		storage:  &fakeStorage{},
		checkout: &fakeCheckout{},
	}
	svc, err := NewDefaultProposalService(f.store, pricing.NewCalculator(0.0575, 30), f.storage, f.checkout,
		copywriter.NewWriter(nil, zap.NewNop()), zap.NewNop())
	require.NoError(t, err)
	svc.now = func() time.Time { return time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC) }
	f.svc = svc
	return f
}

func (f *fixture) seed(t *testing.T, sess *models.DiscoverySession) {
	t.Helper()
	if sess.Answers == nil {
		sess.Answers = models.AnswerSet{}
	}
	require.NoError(t, f.store.Save(context.Background(), sess))
}

func readySession() *models.DiscoverySession {
	return &models.DiscoverySession{
		ID:           "s1",
		PackageReady: true,
		Answers: models.AnswerSet{
			"name":           models.TextAnswer("Jane Doe"),
			"email":          models.TextAnswer("jane@acme.test"),
			"phone":          models.TextAnswer("555-0100"),
			"businessName":   models.TextAnswer("Acme Dental"),
			"successMetrics": models.MultiAnswer("More calls/inquiries"),
		},
		SelectedServices: []string{"w001"},
	}
}

func TestQuote(t *testing.T) {
	f := newFixture(t)

	b, err := f.svc.Quote(models.QuoteRequest{ServiceIDs: []string{"w001"}, DiscountPercent: 10})
	require.NoError(t, err)
	assert.InDelta(t, 380.70, b.TotalDueToday, 0.001)
	assert.InDelta(t, 95.175, b.MonthlyRecurring, 0.001)

	_, err = f.svc.Quote(models.QuoteRequest{ServiceIDs: []string{"w007"}})
	assert.ErrorIs(t, err, catalog.ErrUnknownService)

	_, err = f.svc.Quote(models.QuoteRequest{ServiceIDs: []string{"w001"}, DiscountPercent: 45})
	assert.ErrorIs(t, err, pricing.ErrDiscountOutOfRange)
}

func TestPropose(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seed(t, &models.DiscoverySession{ID: "early", SelectedServices: []string{"w001"}})
	_, err := f.svc.Propose(ctx, "early", 0, false)
	assert.ErrorIs(t, err, ErrPackageNotReady)

	f.seed(t, &models.DiscoverySession{ID: "empty", PackageReady: true})
	_, err = f.svc.Propose(ctx, "empty", 0, false)
	assert.ErrorIs(t, err, ErrNoServices)

	sess := readySession()
	sess.Signature = &models.Signature{URL: "old"}
	f.seed(t, sess)
	terms, err := f.svc.Propose(ctx, "s1", 0, true)
	require.NoError(t, err)
	assert.True(t, terms.WaiveSetupFees)
	assert.Equal(t, 0.0, terms.Pricing.TotalDueToday)

	stored, err := f.store.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, stored.Proposal)
	assert.Nil(t, stored.Signature)
}

func TestSign(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, readySession())

	_, err := f.svc.Sign(ctx, "s1", pngDataURL)
	assert.ErrorIs(t, err, ErrNoProposal)

	_, err = f.svc.Propose(ctx, "s1", 0, false)
	require.NoError(t, err)

	_, err = f.svc.Sign(ctx, "s1", "data:text/plain;base64,aGk=")
	assert.ErrorIs(t, err, storage.ErrInvalidImage)

	sig, err := f.svc.Sign(ctx, "s1", pngDataURL)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/signature-s1-1741341600.png", sig.URL)
	assert.Equal(t, []string{"signature-s1-1741341600"}, f.storage.uploads)

	stored, err := f.store.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, stored.Signature)
	assert.Equal(t, "signature-s1-1741341600", stored.Signature.PublicID)
	assert.Empty(t, f.storage.deleted)
}

func TestSign_ReplacingDiscardsOldImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, readySession())
	_, err := f.svc.Propose(ctx, "s1", 0, false)
	require.NoError(t, err)

	_, err = f.svc.Sign(ctx, "s1", pngDataURL)
	require.NoError(t, err)
	f.svc.now = func() time.Time { return time.Date(2025, 3, 7, 10, 5, 0, 0, time.UTC) }
	_, err = f.svc.Sign(ctx, "s1", pngDataURL)
	require.NoError(t, err)

	assert.Equal(t, []string{"signature-s1-1741341600"}, f.storage.deleted)
}

func TestPropose_DiscardsSignatureImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, readySession())
	_, err := f.svc.Propose(ctx, "s1", 0, false)
	require.NoError(t, err)
	sig, err := f.svc.Sign(ctx, "s1", pngDataURL)
	require.NoError(t, err)

	terms, err := f.svc.Propose(ctx, "s1", 10, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"w001"}, terms.ServiceIDs)
	assert.Equal(t, []string{sig.PublicID}, f.storage.deleted)
}

func TestSign_StorageDisabled(t *testing.T) {
	f := newFixture(t)
	f.svc.storage = nil
	_, err := f.svc.Sign(context.Background(), "s1", pngDataURL)
	assert.ErrorIs(t, err, ErrStorageDisabled)
}

func TestCheckout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, readySession())

	_, err := f.svc.Checkout(ctx, "s1", "", "")
	assert.ErrorIs(t, err, ErrMissingPaymentRef)

	_, err = f.svc.Propose(ctx, "s1", 0, false)
	require.NoError(t, err)
	_, err = f.svc.Checkout(ctx, "s1", "pm_1", "")
	assert.ErrorIs(t, err, ErrNotSigned)

	_, err = f.svc.Sign(ctx, "s1", pngDataURL)
	require.NoError(t, err)

	res, err := f.svc.Checkout(ctx, "s1", "pm_1", "key-1")
	require.NoError(t, err)
	assert.Equal(t, "pi_1", res.PaymentIntentID)
	assert.Equal(t, "key-1", f.checkout.key)

	got := f.checkout.got
	assert.Equal(t, "Jane Doe", got.ClientInfo.Name)
	assert.Equal(t, "jane@acme.test", got.ClientInfo.Email)
	assert.Equal(t, "pm_1", got.PaymentAuthorization.PaymentMethodID)
	require.Len(t, got.PackageDetails.Services, 1)
	assert.Equal(t, "Automated Appointment Booking", got.PackageName())
	assert.InDelta(t, 423.0, got.PackageDetails.Pricing.TotalDueToday, 0.001)
	assert.Equal(t, []string{"More calls/inquiries"}, got.InterviewResponses["successMetrics"])
	assert.False(t, got.TestMode)

	stored, err := f.store.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, stored.Checkout)

	_, err = f.svc.Checkout(ctx, "s1", "pm_1", "")
	assert.ErrorIs(t, err, ErrAlreadyPaid)
}

func TestCheckout_RegeneratedPackageRefused(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ds, err := discovery.NewDefaultDiscoveryService(f.store, f.storage, zap.NewNop())
	require.NoError(t, err)

	sess, err := ds.Create(ctx)
	require.NoError(t, err)
	_, err = ds.TestMode(ctx, sess.ID)
	require.NoError(t, err)
	_, err = ds.SelectServices(ctx, sess.ID, []string{"w009", "w010"})
	require.NoError(t, err)
	_, err = f.svc.Propose(ctx, sess.ID, 0, false)
	require.NoError(t, err)
	sig, err := f.svc.Sign(ctx, sess.ID, pngDataURL)
	require.NoError(t, err)

	// Next on a ready package changes nothing.
	got, err := ds.Next(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"w009", "w010"}, got.SelectedServices)
	require.NotNil(t, got.Signature)

	// Going back and forward regenerates the package and voids the terms.
	_, err = ds.Back(ctx, sess.ID)
	require.NoError(t, err)
	_, err = ds.Next(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{sig.PublicID}, f.storage.deleted)

	_, err = f.svc.Checkout(ctx, sess.ID, "pm_1", "")
	assert.ErrorIs(t, err, ErrNoProposal)
	assert.Empty(t, f.checkout.got.PaymentAuthorization.PaymentMethodID)
}

func TestCheckout_StaleProposalRefused(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess := readySession()
	sess.SelectedServices = []string{"w001", "w002"}
	sess.Proposal = &models.ProposalTerms{ServiceIDs: []string{"w009", "w010"}}
	sess.Signature = &models.Signature{PublicID: "signature-s1-1"}
	f.seed(t, sess)

	_, err := f.svc.Checkout(ctx, "s1", "pm_1", "")
	assert.ErrorIs(t, err, ErrProposalStale)
	assert.Empty(t, f.checkout.got.PaymentAuthorization.PaymentMethodID)
}

func TestCheckout_KeepsConcurrentSessionChanges(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, readySession())
	_, err := f.svc.Propose(ctx, "s1", 0, false)
	require.NoError(t, err)
	_, err = f.svc.Sign(ctx, "s1", pngDataURL)
	require.NoError(t, err)

	f.checkout.during = func() {
		_, err := f.store.Update(ctx, "s1", func(sess *models.DiscoverySession) error {
			sess.Assets = map[string]bool{"logo": true}
			return nil
		})
		require.NoError(t, err)
	}
	_, err = f.svc.Checkout(ctx, "s1", "pm_1", "")
	require.NoError(t, err)

	stored, err := f.store.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, stored.Checkout)
	assert.True(t, stored.Assets["logo"])
}

func TestCheckout_FailureLeavesSessionUnpaid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, readySession())
	_, err := f.svc.Propose(ctx, "s1", 0, false)
	require.NoError(t, err)
	_, err = f.svc.Sign(ctx, "s1", pngDataURL)
	require.NoError(t, err)

	f.checkout.err = errors.New("card declined")
	_, err = f.svc.Checkout(ctx, "s1", "pm_1", "")
	assert.EqualError(t, err, "card declined")

	stored, err := f.store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, stored.Checkout)
}

func TestBuildPaymentRequest_TestPackage(t *testing.T) {
	sess := readySession()
	sess.SelectedServices = []string{catalog.TestPackageID}
	sess.Proposal = &models.ProposalTerms{}

	req, err := BuildPaymentRequest(sess, "pm_1")
	require.NoError(t, err)
	assert.True(t, req.TestMode)
	assert.Equal(t, "crossoveraix", req.CRMSubAccount)
}

func TestDraftEmail_FallsBackWithoutGenerator(t *testing.T) {
	f := newFixture(t)
	f.seed(t, readySession())

	draft, err := f.svc.DraftEmail(context.Background(), "s1", copywriter.TypeWelcome)
	require.NoError(t, err)
	assert.False(t, draft.Generated)
	assert.NotEmpty(t, draft.Content)

	_, err = f.svc.DraftEmail(context.Background(), "s1", "birthday")
	assert.ErrorIs(t, err, copywriter.ErrUnknownEmailType)
}
