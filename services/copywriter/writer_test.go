package copywriter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type generatorFunc func(ctx context.Context, prompt string) (string, error)

func (f generatorFunc) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

var info = BusinessInfo{Name: "John Smith", BusinessName: "Test Business Inc", Industry: "Real Estate"}

func TestDraft_UsesGenerator(t *testing.T) {
	var gotPrompt string
	w := NewWriter(generatorFunc(func(_ context.Context, prompt string) (string, error) {
		gotPrompt = prompt
		return "Subject: Hello", nil
	}), zap.NewNop())

	d, err := w.Draft(context.Background(), TypeWelcome, info)
	require.NoError(t, err)
	assert.True(t, d.Generated)
	assert.Equal(t, "Subject: Hello", d.Content)
	assert.Contains(t, gotPrompt, "Test Business Inc, a Real Estate business")
}

func TestDraft_FallsBackOnError(t *testing.T) {
	w := NewWriter(generatorFunc(func(context.Context, string) (string, error) {
		return "", errors.New("quota exceeded")
	}), zap.NewNop())

	d, err := w.Draft(context.Background(), TypeReview, info)
	require.NoError(t, err)
	assert.False(t, d.Generated)
	assert.Contains(t, d.Content, "Subject: We'd Love Your Feedback!")
	assert.Contains(t, d.Content, "Hi John Smith,")
}

func TestDraft_NoGenerator(t *testing.T) {
	d, err := NewWriter(nil, zap.NewNop()).Draft(context.Background(), TypeOnboarding, info)
	require.NoError(t, err)
	assert.Contains(t, d.Content, "The Test Business Inc Team")
}

func TestDraft_UnknownType(t *testing.T) {
	_, err := NewWriter(nil, zap.NewNop()).Draft(context.Background(), "sms", info)
	assert.ErrorIs(t, err, ErrUnknownEmailType)
}

func TestTemplatesCoverEveryType(t *testing.T) {
	for _, typ := range []string{TypeWelcome, TypeOnboarding, TypeFollowup, TypeNurture, TypeReview} {
		assert.Contains(t, prompts, typ)
		assert.Contains(t, fallbacks, typ)
	}
}
