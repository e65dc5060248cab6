package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"golf-caddy/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	accounts *service.AccountService,
	accountH *AccountHandler,
	caddyH *CaddyHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares básicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	auth := r.Group("/auth")
	auth.POST("/register", accountH.Register)
	auth.POST("/login", accountH.Login)
	auth.POST("/logout", accountH.Logout)

	me := r.Group("/me", SessionAuthMiddleware(logger, accounts))
	me.GET("", accountH.Me)
	me.PATCH("/preferences", accountH.UpdatePreferences)

	r.GET("/courses", caddyH.Courses)
	r.POST("/courses/nearby", caddyH.NearbyCourses)
	r.POST("/suggestions", caddyH.Suggest)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
