package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rohanbuilds/jobprep/internal/dtos"
	"github.com/rohanbuilds/jobprep/internal/models"
	"github.com/rohanbuilds/jobprep/internal/services"
)

// JobHandler handles CRUD on job applications.
type JobHandler struct {
	Users  *services.UserService
	Jobs   *services.JobService
	Logger *zap.Logger
}

func NewJobHandler(users *services.UserService, jobs *services.JobService, logger *zap.Logger) *JobHandler {
	return &JobHandler{Users: users, Jobs: jobs, Logger: logger}
}

// List is GET /jobs: the caller's applications, newest first.
func (h *JobHandler) List(c *gin.Context) {
	user, ok := resolveUser(c, h.Users)
	if !ok {
		return
	}

	jobs, err := h.Jobs.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		h.Logger.Error("list jobs failed", zap.Error(err))
		internal(c)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// Create is POST /jobs.
func (h *JobHandler) Create(c *gin.Context) {
	user, ok := resolveUser(c, h.Users)
	if !ok {
		return
	}

	var req dtos.JobCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON format: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Company) == "" {
		badRequest(c, "Company name is required")
		return
	}
	if strings.TrimSpace(req.Position) == "" {
		badRequest(c, "Position is required")
		return
	}

	job, err := h.Jobs.Create(c.Request.Context(), user, &req)
	if err == services.ErrFreeTierLimit {
		forbidden(c, fmt.Sprintf("Free tier limit reached. Upgrade to premium to track more than %d applications.",
			h.Jobs.FreeTierLimit))
		return
	}
	if err != nil {
		h.Logger.Error("create job failed", zap.Error(err))
		internal(c)
		return
	}
	c.JSON(http.StatusCreated, job)
}

// Get is GET /jobs/:id, ownership-checked.
func (h *JobHandler) Get(c *gin.Context) {
	user, ok := resolveUser(c, h.Users)
	if !ok {
		return
	}

	job, err := h.Jobs.GetOwned(c.Request.Context(), c.Param("id"), user.ID)
	if err == services.ErrJobNotFound {
		notFound(c, "Job application not found")
		return
	}
	if err != nil {
		h.Logger.Error("get job failed", zap.Error(err))
		internal(c)
		return
	}
	c.JSON(http.StatusOK, job)
}

// Update is PUT /jobs/:id: any subset of fields.
func (h *JobHandler) Update(c *gin.Context) {
	user, ok := resolveUser(c, h.Users)
	if !ok {
		return
	}

	var req dtos.JobUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON format: "+err.Error())
		return
	}

	if req.Company != nil && strings.TrimSpace(*req.Company) == "" {
		badRequest(c, "Company name cannot be empty")
		return
	}
	if req.Position != nil && strings.TrimSpace(*req.Position) == "" {
		badRequest(c, "Position cannot be empty")
		return
	}
	if req.Status != nil && !models.IsValidStatus(*req.Status) {
		badRequest(c, "Invalid status. Must be one of: "+models.ValidStatusList())
		return
	}

	job, err := h.Jobs.Update(c.Request.Context(), c.Param("id"), user.ID, &req)
	if err == services.ErrJobNotFound {
		notFound(c, "Job application not found")
		return
	}
	if err != nil {
		h.Logger.Error("update job failed", zap.Error(err))
		internal(c)
		return
	}
	c.JSON(http.StatusOK, job)
}

// Delete is DELETE /jobs/:id.
func (h *JobHandler) Delete(c *gin.Context) {
	user, ok := resolveUser(c, h.Users)
	if !ok {
		return
	}

	err := h.Jobs.Delete(c.Request.Context(), c.Param("id"), user.ID)
	if err == services.ErrJobNotFound {
		notFound(c, "Job application not found")
		return
	}
	if err != nil {
		h.Logger.Error("delete job failed", zap.Error(err))
		internal(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job application deleted successfully"})
}
