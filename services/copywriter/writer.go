package copywriter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"salesnav/models"
)

// Email types.
const (
	TypeWelcome    = "welcome"
	TypeOnboarding = "onboarding"
	TypeFollowup   = "followup"
	TypeNurture    = "nurture"
	TypeReview     = "review"
)

// ErrUnknownEmailType is returned for types without a prompt.
var ErrUnknownEmailType = errors.New("unknown email type")

// BusinessInfo is what the copy is written about.
type BusinessInfo struct {
	Name         string
	BusinessName string
	Industry     string
}

// TextGenerator produces text for a prompt.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// GeminiClient wraps a Gemini model.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.7)
	model.SetMaxOutputTokens(500)
	model.SystemInstruction = genai.NewUserContent(genai.Text(systemPrompt))
	return &GeminiClient{client: client, model: model}, nil
}

func (g *GeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

// Writer drafts client emails. It never fails for a known type: without a
// generator, or when generation fails, it returns the fixed template.
type Writer struct {
	gen    TextGenerator
	logger *zap.Logger
}

// NewWriter accepts a nil generator, in which case only templates are used.
func NewWriter(gen TextGenerator, logger *zap.Logger) *Writer {
	return &Writer{gen: gen, logger: logger}
}

func (w *Writer) Draft(ctx context.Context, emailType string, info BusinessInfo) (*models.EmailDraft, error) {
	prompt, ok := prompts[emailType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEmailType, emailType)
	}
	if w.gen != nil {
		content, err := w.gen.GenerateContent(ctx, execute(prompt, info))
		if err == nil && strings.TrimSpace(content) != "" {
			return &models.EmailDraft{Type: emailType, Content: content, Generated: true}, nil
		}
		w.logger.Warn("Email generation failed, using template", zap.String("type", emailType), zap.Error(err))
	}
	return &models.EmailDraft{Type: emailType, Content: execute(fallbacks[emailType], info)}, nil
}
