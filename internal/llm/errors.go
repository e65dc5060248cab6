package llm

import (
	"strings"

	"golf-caddy/internal/domain"
)

// invalidCredentialMarkers son fragmentos de texto con los que los proveedores reportan una key inválida.
// El contrato de error upstream no es estructurado; si aparece un código estable, reemplazar aquí.
var invalidCredentialMarkers = []string{
	"API key not valid",
	"API_KEY_INVALID",
	"Incorrect API key",
	"invalid_api_key",
}

// translateUpstreamError es el único punto que clasifica fallos del proveedor.
func translateUpstreamError(op string, err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	for _, marker := range invalidCredentialMarkers {
		if strings.Contains(msg, marker) {
			return domain.WrapError(domain.KindAuthConfiguration, op, "generative service rejected the api key", err)
		}
	}
	return domain.WrapError(domain.KindUpstream, op, "generative service call failed", err)
}

func missingCredentialError(op string) error {
	return domain.NewError(domain.KindConfiguration, op, "API_KEY is not configured")
}
