package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"golf-caddy/internal/domain"
)

var statusByKind = map[domain.ErrorKind]int{
	domain.KindValidation:        http.StatusBadRequest,
	domain.KindAuth:              http.StatusUnauthorized,
	domain.KindConflict:          http.StatusConflict,
	domain.KindConfiguration:     http.StatusServiceUnavailable,
	domain.KindAuthConfiguration: http.StatusServiceUnavailable,
	domain.KindUpstream:          http.StatusBadGateway,
	domain.KindParse:             http.StatusBadGateway,
	domain.KindSchema:            http.StatusBadGateway,
}

// respondError escribe {"error", "kind"} con el mensaje localizado.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	kind := domain.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		status = http.StatusInternalServerError
		kind = "internal"
	}
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": domain.UserMessage(err), "kind": kind})
}

func respondInvalidRequest(c *gin.Context, logger *zap.Logger, op string, err error) {
	logger.Warn("invalid request body", zap.String("op", op), zap.Error(err))
	respondError(c, logger, domain.WrapError(domain.KindValidation, op, "", err))
}
