package gemini

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/careerpilot/backend/internal/app/service/content"
	cfgpkg "github.com/careerpilot/backend/pkg/config"
)

// Client adapts the Gemini SDK to the content.Generator contract.
type Client struct {
	genai *genai.Client
	model string
	log   *zap.SugaredLogger
}

func NewGenerator(cfg *cfgpkg.Config, log *zap.SugaredLogger) (content.Generator, error) {
	gc, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Client{genai: gc, model: cfg.Gemini.Model, log: log}, nil
}

// Generate sends the prompt and returns the raw response text. The caller
// bounds the call through ctx; no retries happen here.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("generate content: %w", content.ErrGenerationFailed)
	}
	return text, nil
}

var Module = fx.Options(
	fx.Provide(NewGenerator),
)
