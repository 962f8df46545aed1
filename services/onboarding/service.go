package onboarding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"salesnav/models"
	"salesnav/services/discovery"
)

var (
	ErrUnknownStep  = errors.New("unknown onboarding step")
	ErrUnknownAsset = errors.New("unknown asset")
)

// OnboardingService tracks the TOM checklist and asset collection per session.
type OnboardingService interface {
	Checklist(ctx context.Context, sessionID string) (*models.TOMChecklist, error)
	UpdateStep(ctx context.Context, sessionID string, stepID int, status models.StepStatus) (*models.TOMChecklist, error)
	Assets(ctx context.Context, sessionID string) (*models.AssetChecklist, error)
	UpdateAsset(ctx context.Context, sessionID, assetID string, provided bool) (*models.AssetChecklist, error)
}

type DefaultOnboardingService struct {
	store  discovery.SessionStore
	logger *zap.Logger
	now    func() time.Time
}

func NewDefaultOnboardingService(store discovery.SessionStore, logger *zap.Logger) (*DefaultOnboardingService, error) {
	if store == nil || logger == nil {
		return nil, fmt.Errorf("onboarding service initialization error: store or logger is nil")
	}
	return &DefaultOnboardingService{store: store, logger: logger, now: time.Now}, nil
}

func (s *DefaultOnboardingService) Checklist(ctx context.Context, sessionID string) (*models.TOMChecklist, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.checklist(sess), nil
}

// UpdateStep records a step's status. Completing a step clears its flag.
func (s *DefaultOnboardingService) UpdateStep(ctx context.Context, sessionID string, stepID int, status models.StepStatus) (*models.TOMChecklist, error) {
	if !knownStep(stepID) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStep, stepID)
	}
	if status.Completed {
		status.Flagged = false
	}
	sess, err := s.store.Update(ctx, sessionID, func(sess *models.DiscoverySession) error {
		if sess.TOMSteps == nil {
			sess.TOMSteps = map[int]models.StepStatus{}
		}
		sess.TOMSteps[stepID] = status
		sess.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if status.Flagged {
		s.logger.Warn("Onboarding step flagged", zap.String("sessionId", sessionID), zap.Int("stepId", stepID))
	}
	return s.checklist(sess), nil
}

func (s *DefaultOnboardingService) Assets(ctx context.Context, sessionID string) (*models.AssetChecklist, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return assets(sess), nil
}

func (s *DefaultOnboardingService) UpdateAsset(ctx context.Context, sessionID, assetID string, provided bool) (*models.AssetChecklist, error) {
	if !knownAsset(assetID) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAsset, assetID)
	}
	sess, err := s.store.Update(ctx, sessionID, func(sess *models.DiscoverySession) error {
		if sess.Assets == nil {
			sess.Assets = map[string]bool{}
		}
		sess.Assets[assetID] = provided
		sess.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return assets(sess), nil
}

func (s *DefaultOnboardingService) checklist(sess *models.DiscoverySession) *models.TOMChecklist {
	today := s.now()
	out := &models.TOMChecklist{Total: len(setupSteps)}
	for _, def := range setupSteps {
		st := sess.TOMSteps[def.id]
		out.Steps = append(out.Steps, models.TOMStep{
			ID:          def.id,
			Name:        def.name,
			Prompt:      def.prompt(sess.Answers, today),
			ManualSteps: def.manualSteps,
			Completed:   st.Completed,
			Flagged:     st.Flagged,
		})
		if st.Completed {
			out.Completed++
		}
	}
	return out
}

func assets(sess *models.DiscoverySession) *models.AssetChecklist {
	out := &models.AssetChecklist{RequiredComplete: true}
	for _, a := range assetChecklist {
		a.Provided = sess.Assets[a.ID]
		if a.Required && !a.Provided {
			out.RequiredComplete = false
		}
		out.Assets = append(out.Assets, a)
	}
	return out
}

func knownStep(id int) bool {
	for _, def := range setupSteps {
		if def.id == id {
			return true
		}
	}
	return false
}

func knownAsset(id string) bool {
	for _, a := range assetChecklist {
		if a.ID == id {
			return true
		}
	}
	return false
}
