package discovery

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"salesnav/models"
	"salesnav/services/catalog"
	"salesnav/services/storage"
)

// DiscoveryService drives the wizard and the package step for stored sessions.
type DiscoveryService interface {
	Create(ctx context.Context) (*models.DiscoverySession, error)
	Get(ctx context.Context, id string) (*models.DiscoverySession, error)
	Answer(ctx context.Context, id, questionID string, value models.Answer) (*models.DiscoverySession, error)
	Next(ctx context.Context, id string) (*models.DiscoverySession, error)
	Back(ctx context.Context, id string) (*models.DiscoverySession, error)
	TestMode(ctx context.Context, id string) (*models.DiscoverySession, error)
	Package(ctx context.Context, id string) (*models.PackageView, error)
	SelectServices(ctx context.Context, id string, serviceIDs []string) (*models.PackageView, error)
	RemovalWarning(ctx context.Context, id, serviceID string) (string, error)
}

// DefaultDiscoveryService is the production implementation.
type DefaultDiscoveryService struct {
	store  SessionStore
	files  storage.StorageService
	logger *zap.Logger
	now    func() time.Time
}

// NewDefaultDiscoveryService accepts a nil files service; dropped signatures
// are then left where they are.
func NewDefaultDiscoveryService(store SessionStore, files storage.StorageService, logger *zap.Logger) (*DefaultDiscoveryService, error) {
	if store == nil || logger == nil {
		return nil, fmt.Errorf("discovery service initialization error: store or logger is nil")
	}
	return &DefaultDiscoveryService{store: store, files: files, logger: logger, now: time.Now}, nil
}

func (s *DefaultDiscoveryService) Create(ctx context.Context) (*models.DiscoverySession, error) {
	now := s.now()
	sess := &models.DiscoverySession{
		ID:               uuid.New().String(),
		Answers:          models.AnswerSet{},
		SelectedServices: []string{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	s.logger.Info("Discovery session created", zap.String("sessionId", sess.ID))
	return sess, nil
}

func (s *DefaultDiscoveryService) Get(ctx context.Context, id string) (*models.DiscoverySession, error) {
	return s.store.Get(ctx, id)
}

func (s *DefaultDiscoveryService) Answer(ctx context.Context, id, questionID string, value models.Answer) (*models.DiscoverySession, error) {
	return s.mutate(ctx, id, func(sess *models.DiscoverySession) error {
		return SetAnswer(sess, questionID, value)
	})
}

func (s *DefaultDiscoveryService) Next(ctx context.Context, id string) (*models.DiscoverySession, error) {
	var generated bool
	sess, err := s.mutate(ctx, id, func(sess *models.DiscoverySession) error {
		wasReady := sess.PackageReady
		if err := Advance(sess); err != nil {
			return err
		}
		generated = !wasReady && sess.PackageReady
		return nil
	})
	if err != nil {
		return nil, err
	}
	if generated {
		s.logger.Info("Package generated",
			zap.String("sessionId", sess.ID),
			zap.Strings("recommended", sess.SelectedServices))
	}
	return sess, nil
}

func (s *DefaultDiscoveryService) Back(ctx context.Context, id string) (*models.DiscoverySession, error) {
	return s.mutate(ctx, id, func(sess *models.DiscoverySession) error {
		Retreat(sess)
		return nil
	})
}

func (s *DefaultDiscoveryService) TestMode(ctx context.Context, id string) (*models.DiscoverySession, error) {
	return s.mutate(ctx, id, func(sess *models.DiscoverySession) error {
		ApplyTestMode(sess)
		return nil
	})
}

func (s *DefaultDiscoveryService) Package(ctx context.Context, id string) (*models.PackageView, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	view, err := catalog.Package(sess.Answers, sess.SelectedServices)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *DefaultDiscoveryService) SelectServices(ctx context.Context, id string, serviceIDs []string) (*models.PackageView, error) {
	var view models.PackageView
	_, err := s.mutate(ctx, id, func(sess *models.DiscoverySession) error {
		v, err := catalog.Package(sess.Answers, serviceIDs)
		if err != nil {
			return err
		}
		sess.SelectedServices = v.Selected
		// A changed selection invalidates previously priced and signed terms.
		sess.Proposal = nil
		sess.Signature = nil
		view = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *DefaultDiscoveryService) RemovalWarning(ctx context.Context, id, serviceID string) (string, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return catalog.RemovalWarning(sess.Answers, serviceID)
}

// mutate applies fn atomically and deletes the stored signature image when
// fn dropped the signature.
func (s *DefaultDiscoveryService) mutate(ctx context.Context, id string, fn UpdateFunc) (*models.DiscoverySession, error) {
	var dropped *models.Signature
	sess, err := s.store.Update(ctx, id, func(sess *models.DiscoverySession) error {
		dropped = nil
		prev := sess.Signature
		if err := fn(sess); err != nil {
			return err
		}
		if prev != nil && sess.Signature == nil {
			dropped = prev
		}
		sess.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if dropped != nil {
		storage.Discard(context.WithoutCancel(ctx), s.files, dropped.PublicID, s.logger)
	}
	return sess, nil
}
