package llm

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// LLMClient define la interfaz para generar texto con un servicio generativo externo.
// Un solo intento por llamada: sin reintentos ni timeout propio (el ctx del caller manda).
type LLMClient interface {
	Generate(ctx context.Context, prompt string, params DecodingParams) (string, error)
}

// DecodingParams son fijos por punto de llamada. Los nil quedan en el default del proveedor.
type DecodingParams struct {
	Temperature  *float32
	TopP         *float32
	TopK         *float32
	JSONResponse bool
}

// Float32 devuelve un puntero a v, para armar DecodingParams literales.
func Float32(v float32) *float32 {
	return &v
}

func warnIfMissingKey(logger *zap.Logger, provider, apiKey string) {
	if logger == nil || strings.TrimSpace(apiKey) != "" {
		return
	}
	logger.Warn("API_KEY environment variable is not set; generative calls will fail",
		zap.String("provider", provider))
}
