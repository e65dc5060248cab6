package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"golf-caddy/internal/domain"
)

// HTTPClient implementa LLMClient usando la API de OpenAI-compatible.
type HTTPClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPClient construye un cliente HTTP apuntando a la API de chat completions.
// Sin timeout propio: la cancelación viene del ctx del caller.
func NewHTTPClient(baseURL, apiKey, model string, logger *zap.Logger) *HTTPClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	warnIfMissingKey(logger, "openai", apiKey)
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  strings.TrimSpace(apiKey),
		model:   model,
		client:  &http.Client{},
		logger:  logger,
	}
}

func (c *HTTPClient) Generate(ctx context.Context, prompt string, params DecodingParams) (string, error) {
	const op = "openai generate"
	if c.apiKey == "" {
		return "", missingCredentialError(op)
	}

	// top_k no existe en chat completions; se ignora.
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: params.Temperature,
		TopP:        params.TopP,
	}
	if params.JSONResponse {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", translateUpstreamError(op, fmt.Errorf("do request: %w", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", translateUpstreamError(op, fmt.Errorf("read response: %w", err))
	}

	var cr chatResponse
	decodeErr := json.Unmarshal(respBody, &cr)

	if resp.StatusCode >= 400 {
		c.logger.Error("llm error status", zap.Int("status", resp.StatusCode), zap.String("body", string(respBody)))
		if decodeErr == nil && cr.Error != nil {
			return "", translateUpstreamError(op, fmt.Errorf("llm http error: status=%d: %s", resp.StatusCode, cr.Error.Message))
		}
		return "", translateUpstreamError(op, fmt.Errorf("llm http error: status=%d", resp.StatusCode))
	}

	if decodeErr != nil {
		return "", translateUpstreamError(op, fmt.Errorf("unmarshal response: %w", decodeErr))
	}

	if cr.Error != nil {
		return "", translateUpstreamError(op, fmt.Errorf("llm api error: %s", cr.Error.Message))
	}

	if len(cr.Choices) == 0 || strings.TrimSpace(cr.Choices[0].Message.Content) == "" {
		return "", domain.NewError(domain.KindUpstream, op, "response contained no text data")
	}

	return cr.Choices[0].Message.Content, nil
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    *float32        `json:"temperature,omitempty"`
	TopP           *float32        `json:"top_p,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}
