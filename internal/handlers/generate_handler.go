package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rohanbuilds/jobprep/internal/metrics"
	"github.com/rohanbuilds/jobprep/internal/models"
	"github.com/rohanbuilds/jobprep/internal/services"
)

// GenerateHandler serves the three content-generation endpoints. All of them
// follow the same pipeline: session, user, ownership, cache, AI with
// deterministic fallback, persist.
type GenerateHandler struct {
	Users      *services.UserService
	Jobs       *services.JobService
	Generation *services.GenerationService

	// RequirePremium gates all three endpoints on the premium flag.
	RequirePremium bool
	// APIKeyConfigured is echoed in metadata and headers so clients can tell
	// whether the completion API path was even possible.
	APIKeyConfigured bool
	Environment      string

	Logger *zap.Logger
}

func NewGenerateHandler(users *services.UserService, jobs *services.JobService, generation *services.GenerationService, requirePremium, apiKeyConfigured bool, environment string, logger *zap.Logger) *GenerateHandler {
	return &GenerateHandler{
		Users:            users,
		Jobs:             jobs,
		Generation:       generation,
		RequirePremium:   requirePremium,
		APIKeyConfigured: apiKeyConfigured,
		Environment:      environment,
		Logger:           logger,
	}
}

// Questions is POST /jobs/:id/generate-questions.
func (h *GenerateHandler) Questions(c *gin.Context) {
	h.generate(c, "questions", "Interview questions generated successfully",
		"Interview questions already generated",
		func(ctx context.Context, job *models.JobApplication, _ *models.User) (*services.GenerationResult, error) {
			return h.Generation.Questions(ctx, job)
		})
}

// Research is POST /jobs/:id/company-research.
func (h *GenerateHandler) Research(c *gin.Context) {
	h.generate(c, "research", "Company research completed successfully",
		"Company research already completed",
		func(ctx context.Context, job *models.JobApplication, _ *models.User) (*services.GenerationResult, error) {
			return h.Generation.Research(ctx, job)
		})
}

// Prep is POST /jobs/:id/personalized-prep.
func (h *GenerateHandler) Prep(c *gin.Context) {
	h.generate(c, "prep", "Personalized interview preparation created successfully",
		"Personalized prep already created",
		func(ctx context.Context, job *models.JobApplication, user *models.User) (*services.GenerationResult, error) {
			return h.Generation.Prep(ctx, job, user)
		})
}

type generateFn func(ctx context.Context, job *models.JobApplication, user *models.User) (*services.GenerationResult, error)

func (h *GenerateHandler) generate(c *gin.Context, key, message, cachedMessage string, run generateFn) {
	user, ok := resolveUser(c, h.Users)
	if !ok {
		return
	}

	if h.RequirePremium && !user.IsPremium {
		forbidden(c, "Premium feature. Upgrade to access AI-powered interview prep.")
		return
	}

	job, err := h.Jobs.GetOwned(c.Request.Context(), c.Param("id"), user.ID)
	if err == services.ErrJobNotFound {
		notFound(c, "Job application not found")
		return
	}
	if err != nil {
		h.Logger.Error("resolve job failed", zap.Error(err))
		internal(c)
		return
	}

	result, err := run(c.Request.Context(), job, user)
	if err != nil {
		h.Logger.Error("generation failed", zap.String("kind", key), zap.Error(err))
		internal(c)
		return
	}

	metrics.ObserveGeneration(key, string(result.Source))

	apiKeyStatus := "missing"
	if h.APIKeyConfigured {
		apiKeyStatus = "configured"
	}

	cached := result.Source == services.SourceCache
	// isAIGenerated is unknown for cached documents; the origin was not
	// recorded when they were first stored.
	var isAIGenerated *bool
	if !cached {
		v := result.Source == services.SourceAI
		isAIGenerated = &v
	}

	msg := message
	if cached {
		msg = cachedMessage
	}

	metadata := gin.H{
		"isAIGenerated": isAIGenerated,
		"source":        result.Source,
		"generatedAt":   time.Now().UTC().Format(time.RFC3339),
		"apiKeyStatus":  apiKeyStatus,
		"environment":   h.Environment,
		"cached":        cached,
	}
	if result.ErrorDetails != "" {
		metadata["errorDetails"] = result.ErrorDetails
	}

	c.Header("X-AI-Status", string(result.Source))
	c.Header("X-API-Key-Status", map[bool]string{true: "present", false: "missing"}[h.APIKeyConfigured])

	c.JSON(http.StatusOK, gin.H{
		"message":        msg,
		key:              result.Document,
		"jobApplication": result.Application,
		"metadata":       metadata,
	})
}
