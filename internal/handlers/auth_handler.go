package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rohanbuilds/jobprep/internal/auth"
	"github.com/rohanbuilds/jobprep/internal/dtos"
	"github.com/rohanbuilds/jobprep/internal/services"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	Users  *services.UserService
	Tokens *auth.TokenService
	Logger *zap.Logger
}

func NewAuthHandler(users *services.UserService, tokens *auth.TokenService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{Users: users, Tokens: tokens, Logger: logger}
}

// Register creates a new account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dtos.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON format: "+err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	hash, err := h.Tokens.HashPassword(req.Password)
	if err != nil {
		h.Logger.Error("hash password failed", zap.Error(err))
		internal(c)
		return
	}

	user, err := h.Users.Create(c.Request.Context(), email, strings.TrimSpace(req.Name), hash)
	if err == services.ErrEmailTaken {
		respondError(c, http.StatusConflict, "Email already registered")
		return
	}
	if err != nil {
		h.Logger.Error("create user failed", zap.Error(err))
		internal(c)
		return
	}

	h.Logger.Info("user registered", zap.String("user_id", user.ID))
	c.JSON(http.StatusCreated, user)
}

// Login verifies credentials and issues a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON format: "+err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.Users.ByEmail(c.Request.Context(), email)
	if err == services.ErrUserNotFound || (err == nil && !h.Tokens.CheckPassword(req.Password, user.PasswordHash)) {
		unauthorized(c)
		return
	}
	if err != nil {
		h.Logger.Error("login lookup failed", zap.Error(err))
		internal(c)
		return
	}

	token, err := h.Tokens.GenerateToken(user.Email)
	if err != nil {
		h.Logger.Error("sign token failed", zap.Error(err))
		internal(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   int(h.Tokens.TokenTTL().Seconds()),
		"user":         user,
	})
}
