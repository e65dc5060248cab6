package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"golf-caddy/internal/domain"
	"golf-caddy/internal/service"
)

// AccountHandler expone la cuenta local y la sesión activa.
type AccountHandler struct {
	logger   *zap.Logger
	accounts *service.AccountService
}

func NewAccountHandler(logger *zap.Logger, accounts *service.AccountService) *AccountHandler {
	return &AccountHandler{
		logger:   logger,
		accounts: accounts,
	}
}

type sessionResponse struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

// Register maneja POST /auth/register.
func (h *AccountHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(c, h.logger, "register", err)
		return
	}

	user, err := h.accounts.Register(c.Request.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, sessionResponse{User: user, Token: h.accounts.SessionToken()})
}

// Login maneja POST /auth/login.
func (h *AccountHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(c, h.logger, "login", err)
		return
	}

	user, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, sessionResponse{User: user, Token: h.accounts.SessionToken()})
}

// Logout maneja POST /auth/logout. Es idempotente.
func (h *AccountHandler) Logout(c *gin.Context) {
	if err := h.accounts.Logout(c.Request.Context()); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged_out"})
}

// Me maneja GET /me.
func (h *AccountHandler) Me(c *gin.Context) {
	user, ok := GetSessionUser(c)
	if !ok {
		respondError(c, h.logger, domain.NewError(domain.KindAuth, "me", domain.MsgLoginRequired))
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdatePreferences maneja PATCH /me/preferences con un merge superficial.
func (h *AccountHandler) UpdatePreferences(c *gin.Context) {
	var patch domain.PreferencesPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondInvalidRequest(c, h.logger, "update preferences", err)
		return
	}
	if patch.IsEmpty() {
		respondError(c, h.logger, domain.NewError(domain.KindValidation, "update preferences", "更新する項目がありません。"))
		return
	}

	user, err := h.accounts.UpdatePreferences(c.Request.Context(), patch)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
