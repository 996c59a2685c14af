package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rohanbuilds/jobprep/internal/ai"
	"github.com/rohanbuilds/jobprep/internal/auth"
	"github.com/rohanbuilds/jobprep/internal/config"
	"github.com/rohanbuilds/jobprep/internal/content"
	"github.com/rohanbuilds/jobprep/internal/metrics"
	"github.com/rohanbuilds/jobprep/internal/services"
)

// NewRouter wires services, middleware and routes.
func NewRouter(cfg *config.Config, db *gorm.DB, tokens *auth.TokenService, logger *zap.Logger) *gin.Engine {
	generator := content.NewGenerator()

	// The completion client only exists when a key is configured; without it
	// the pipeline goes straight to the deterministic generator.
	var client services.ContentClient
	if cfg.AI.APIKey != "" {
		client = ai.NewClient(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.Model, generator, logger)
	}

	users := services.NewUserService(db)
	jobs := services.NewJobService(db, cfg.AI.FreeTierJobLimit)
	generation := services.NewGenerationService(db, client, generator, cfg.API.IsDevelopment(), logger)

	authHandler := NewAuthHandler(users, tokens, logger)
	jobHandler := NewJobHandler(users, jobs, logger)
	generateHandler := NewGenerateHandler(users, jobs, generation,
		cfg.AI.RequirePremium, cfg.AI.APIKey != "", cfg.API.Environment, logger)

	r := gin.New()
	r.Use(gin.Recovery(), metrics.GinMiddleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.API.CORSOrigins
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.GET("/health", HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		jobsGroup := api.Group("/jobs")
		jobsGroup.Use(auth.Middleware(tokens))
		{
			jobsGroup.GET("", jobHandler.List)
			jobsGroup.POST("", jobHandler.Create)
			jobsGroup.GET("/:id", jobHandler.Get)
			jobsGroup.PUT("/:id", jobHandler.Update)
			jobsGroup.DELETE("/:id", jobHandler.Delete)

			jobsGroup.POST("/:id/generate-questions", generateHandler.Questions)
			jobsGroup.POST("/:id/company-research", generateHandler.Research)
			jobsGroup.POST("/:id/personalized-prep", generateHandler.Prep)
		}
	}

	return r
}
