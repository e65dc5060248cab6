package http

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"golf-caddy/internal/domain"
	"golf-caddy/internal/service"
)

const sessionUserKey = "session_user"

// SessionAuthMiddleware exige el token de la sesión activa como Bearer.
func SessionAuthMiddleware(logger *zap.Logger, accounts *service.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if accounts == nil {
			respondError(c, logger, errors.New("session service not configured"))
			c.Abort()
			return
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			respondError(c, logger, domain.NewError(domain.KindAuth, "session", domain.MsgLoginRequired))
			c.Abort()
			return
		}

		token := strings.TrimSpace(header[len("Bearer "):])
		user, err := accounts.VerifySessionToken(token)
		if err != nil {
			respondError(c, logger, err)
			c.Abort()
			return
		}

		c.Set(sessionUserKey, user)
		c.Next()
	}
}

// GetSessionUser obtiene el usuario autenticado desde el contexto.
func GetSessionUser(c *gin.Context) (domain.User, bool) {
	val, ok := c.Get(sessionUserKey)
	if !ok {
		return domain.User{}, false
	}
	user, ok := val.(domain.User)
	return user, ok
}
