package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rohanbuilds/jobprep/internal/auth"
	"github.com/rohanbuilds/jobprep/internal/models"
	"github.com/rohanbuilds/jobprep/internal/services"
)

func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

func unauthorized(c *gin.Context)           { respondError(c, http.StatusUnauthorized, "Unauthorized") }
func badRequest(c *gin.Context, msg string) { respondError(c, http.StatusBadRequest, msg) }
func forbidden(c *gin.Context, msg string)  { respondError(c, http.StatusForbidden, msg) }
func notFound(c *gin.Context, msg string)   { respondError(c, http.StatusNotFound, msg) }

func internal(c *gin.Context) {
	respondError(c, http.StatusInternalServerError, "Internal server error")
}

// resolveUser maps the session email to an account, writing the terminal
// response on failure. The pipeline's first two steps live here.
func resolveUser(c *gin.Context, users *services.UserService) (*models.User, bool) {
	email, ok := auth.EmailFromContext(c)
	if !ok {
		unauthorized(c)
		return nil, false
	}

	user, err := users.ByEmail(c.Request.Context(), email)
	if err == services.ErrUserNotFound {
		notFound(c, "User not found")
		return nil, false
	}
	if err != nil {
		internal(c)
		return nil, false
	}
	return user, true
}

// HealthCheck reports service liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
