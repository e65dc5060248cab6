package llm

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"golf-caddy/internal/domain"
)

// GeminiClient implementa LLMClient con el SDK oficial google.golang.org/genai.
type GeminiClient struct {
	apiKey string
	model  string
	logger *zap.Logger

	once    sync.Once
	client  *genai.Client
	initErr error
}

// NewGeminiClient no abre conexiones; el cliente del SDK se crea en la primera llamada.
func NewGeminiClient(apiKey, model string, logger *zap.Logger) *GeminiClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	warnIfMissingKey(logger, "gemini", apiKey)
	return &GeminiClient{
		apiKey: strings.TrimSpace(apiKey),
		model:  model,
		logger: logger,
	}
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string, params DecodingParams) (string, error) {
	const op = "gemini generate"
	if c.apiKey == "" {
		return "", missingCredentialError(op)
	}

	client, err := c.sdkClient(ctx)
	if err != nil {
		return "", translateUpstreamError(op, err)
	}

	cfg := &genai.GenerateContentConfig{
		Temperature: params.Temperature,
		TopP:        params.TopP,
		TopK:        params.TopK,
	}
	if params.JSONResponse {
		cfg.ResponseMIMEType = "application/json"
	}

	resp, err := client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		c.logger.Error("gemini generate failed", zap.Error(err), zap.String("model", c.model))
		return "", translateUpstreamError(op, err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		c.logger.Error("gemini response contained no text", zap.String("model", c.model))
		return "", domain.NewError(domain.KindUpstream, op, "response contained no text data")
	}
	return text, nil
}

func (c *GeminiClient) sdkClient(ctx context.Context) (*genai.Client, error) {
	c.once.Do(func() {
		c.client, c.initErr = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  c.apiKey,
			Backend: genai.BackendGeminiAPI,
		})
	})
	return c.client, c.initErr
}
