package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/rohanbuilds/jobprep/internal/dtos"
	"github.com/rohanbuilds/jobprep/internal/models"
)

// ErrJobNotFound covers both a truly absent application and one owned by a
// different user; callers must not be able to tell the two apart.
var ErrJobNotFound = errors.New("job application not found")

// ErrFreeTierLimit is returned when a non-premium user is at their
// application cap.
var ErrFreeTierLimit = errors.New("free tier limit reached, upgrade to premium to track more applications")

// JobService owns CRUD on job applications. Every query filters on the
// owner's id.
type JobService struct {
	DB            *gorm.DB
	FreeTierLimit int
}

func NewJobService(db *gorm.DB, freeTierLimit int) *JobService {
	return &JobService{DB: db, FreeTierLimit: freeTierLimit}
}

// ListByUser returns the caller's applications, newest first.
func (s *JobService) ListByUser(ctx context.Context, userID string) ([]models.JobApplication, error) {
	var jobs []models.JobApplication
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// Create stores a new application for the user. Non-premium users are capped
// at FreeTierLimit applications.
func (s *JobService) Create(ctx context.Context, user *models.User, req *dtos.JobCreationRequest) (*models.JobApplication, error) {
	if !user.IsPremium && s.FreeTierLimit > 0 {
		var count int64
		if err := s.DB.WithContext(ctx).
			Model(&models.JobApplication{}).
			Where("user_id = ?", user.ID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count >= int64(s.FreeTierLimit) {
			return nil, ErrFreeTierLimit
		}
	}

	job := &models.JobApplication{
		UserID:       user.ID,
		Company:      strings.TrimSpace(req.Company),
		Position:     strings.TrimSpace(req.Position),
		JobURL:       req.JobURL,
		SalaryRange:  req.SalaryRange,
		Location:     req.Location,
		JobType:      req.JobType,
		Status:       models.StatusApplied,
		Notes:        req.Notes,
		CompanyNotes: req.CompanyNotes,
	}
	if err := s.DB.WithContext(ctx).Create(job).Error; err != nil {
		return nil, err
	}
	return job, nil
}

// GetOwned fetches one application, verifying ownership.
func (s *JobService) GetOwned(ctx context.Context, id, userID string) (*models.JobApplication, error) {
	var job models.JobApplication
	err := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// Update applies the subset of fields present in the request to an owned
// application. Field validation happens at the handler.
func (s *JobService) Update(ctx context.Context, id, userID string, req *dtos.JobUpdateRequest) (*models.JobApplication, error) {
	job, err := s.GetOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Company != nil {
		updates["company"] = strings.TrimSpace(*req.Company)
	}
	if req.Position != nil {
		updates["position"] = strings.TrimSpace(*req.Position)
	}
	if req.JobURL != nil {
		updates["job_url"] = *req.JobURL
	}
	if req.SalaryRange != nil {
		updates["salary_range"] = *req.SalaryRange
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.JobType != nil {
		updates["job_type"] = *req.JobType
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.CompanyNotes != nil {
		updates["company_notes"] = *req.CompanyNotes
	}
	if req.InterviewNotes != nil {
		updates["interview_notes"] = *req.InterviewNotes
	}
	if len(updates) == 0 {
		return job, nil
	}

	if err := s.DB.WithContext(ctx).Model(job).Updates(updates).Error; err != nil {
		return nil, err
	}
	return job, nil
}

// Delete removes an owned application. Deleting an id that is absent (or not
// owned) returns ErrJobNotFound.
func (s *JobService) Delete(ctx context.Context, id, userID string) error {
	result := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.JobApplication{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}
