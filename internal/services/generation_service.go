package services

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/rohanbuilds/jobprep/internal/ai"
	"github.com/rohanbuilds/jobprep/internal/content"
	"github.com/rohanbuilds/jobprep/internal/models"
)

// Source records which path produced the content of a generation response.
type Source string

const (
	SourceAI       Source = "ai"
	SourceFallback Source = "fallback"
	SourceCache    Source = "cache"
)

// ContentClient is the slice of the AI client the pipeline needs. Provider
// errors returned here are absorbed by the fallback generator, never
// surfaced to the end user.
type ContentClient interface {
	Questions(ctx context.Context, p ai.QuestionsParams) (content.InterviewQuestions, error)
	Research(ctx context.Context, p ai.ResearchParams) (content.CompanyResearch, error)
	Prep(ctx context.Context, p ai.PrepParams) (content.PersonalizedPrep, error)
}

// GenerationResult is the outcome of one content-generation request.
type GenerationResult struct {
	Document    json.RawMessage
	Source      Source
	Application *models.JobApplication
	// ErrorDetails holds the provider failure message when the fallback ran;
	// empty otherwise. Informational only, the request still succeeds.
	ErrorDetails string
}

// GenerationService runs the content part of the request pipeline: cache
// check, AI attempt with deterministic fallback, persist.
//
// Two concurrent requests for the same application may both miss the cache
// and both persist; the second write wins. That race is accepted for this
// user-scoped data and deliberately not locked.
type GenerationService struct {
	DB        *gorm.DB
	Client    ContentClient
	Generator *content.Generator
	// BypassCache disables the cached-content short-circuit (development mode).
	BypassCache bool
	Logger      *zap.Logger
}

func NewGenerationService(db *gorm.DB, client ContentClient, generator *content.Generator, bypassCache bool, logger *zap.Logger) *GenerationService {
	return &GenerationService{
		DB:          db,
		Client:      client,
		Generator:   generator,
		BypassCache: bypassCache,
		Logger:      logger,
	}
}

func contentJob(job *models.JobApplication) content.Job {
	return content.Job{
		Company:     job.Company,
		Position:    job.Position,
		Location:    job.Location,
		JobType:     job.JobType,
		SalaryRange: job.SalaryRange,
		Notes:       job.Notes,
	}
}

// aiEnabled reports whether the completion API path is configured at all.
func (s *GenerationService) aiEnabled() bool {
	return s.Client != nil
}

// Questions returns interview questions for the application, from cache, the
// completion API, or the deterministic generator, in that order.
func (s *GenerationService) Questions(ctx context.Context, job *models.JobApplication) (*GenerationResult, error) {
	if cached := s.cached(job.AIQuestions); cached != nil {
		return &GenerationResult{Document: cached, Source: SourceCache, Application: job}, nil
	}

	var (
		doc     content.InterviewQuestions
		source  = SourceFallback
		details string
	)
	if s.aiEnabled() {
		generated, err := s.Client.Questions(ctx, ai.QuestionsParams{
			Company:        job.Company,
			Position:       job.Position,
			JobDescription: job.Notes,
			JobType:        job.JobType,
		})
		if err != nil {
			details = err.Error()
			s.Logger.Warn("question generation fell back",
				zap.String("job_id", job.ID), zap.Error(err))
		} else {
			doc = generated
			source = SourceAI
		}
	}
	if source == SourceFallback {
		doc = s.Generator.Questions(contentJob(job))
	}

	raw, err := s.persist(ctx, job, "ai_questions", doc)
	if err != nil {
		return nil, err
	}
	job.AIQuestions = datatypes.JSON(raw)
	return &GenerationResult{Document: raw, Source: source, Application: job, ErrorDetails: details}, nil
}

// Research returns company research for the application.
func (s *GenerationService) Research(ctx context.Context, job *models.JobApplication) (*GenerationResult, error) {
	if cached := s.cached(job.CompanyResearch); cached != nil {
		return &GenerationResult{Document: cached, Source: SourceCache, Application: job}, nil
	}

	var (
		doc     content.CompanyResearch
		source  = SourceFallback
		details string
	)
	if s.aiEnabled() {
		generated, err := s.Client.Research(ctx, ai.ResearchParams{
			Company:  job.Company,
			Position: job.Position,
		})
		if err != nil {
			details = err.Error()
			s.Logger.Warn("company research fell back",
				zap.String("job_id", job.ID), zap.Error(err))
		} else {
			doc = generated
			source = SourceAI
		}
	}
	if source == SourceFallback {
		doc = s.Generator.Research(contentJob(job))
	}

	raw, err := s.persist(ctx, job, "company_research", doc)
	if err != nil {
		return nil, err
	}
	job.CompanyResearch = datatypes.JSON(raw)
	return &GenerationResult{Document: raw, Source: source, Application: job, ErrorDetails: details}, nil
}

// Prep returns personalized prep for the application. The owner's name seeds
// the user-background part of the prompt.
func (s *GenerationService) Prep(ctx context.Context, job *models.JobApplication, user *models.User) (*GenerationResult, error) {
	if cached := s.cached(job.PersonalizedPrep); cached != nil {
		return &GenerationResult{Document: cached, Source: SourceCache, Application: job}, nil
	}

	background := user.Name
	if background == "" {
		background = "candidate"
	}

	var (
		doc     content.PersonalizedPrep
		source  = SourceFallback
		details string
	)
	if s.aiEnabled() {
		generated, err := s.Client.Prep(ctx, ai.PrepParams{
			Company:        job.Company,
			Position:       job.Position,
			UserBackground: background,
			JobDescription: job.Notes,
		})
		if err != nil {
			details = err.Error()
			s.Logger.Warn("personalized prep fell back",
				zap.String("job_id", job.ID), zap.Error(err))
		} else {
			doc = generated
			source = SourceAI
		}
	}
	if source == SourceFallback {
		doc = s.Generator.Prep(contentJob(job))
	}

	raw, err := s.persist(ctx, job, "personalized_prep", doc)
	if err != nil {
		return nil, err
	}
	job.PersonalizedPrep = datatypes.JSON(raw)
	return &GenerationResult{Document: raw, Source: source, Application: job, ErrorDetails: details}, nil
}

// cached returns the stored document unless the cache is bypassed.
func (s *GenerationService) cached(field datatypes.JSON) json.RawMessage {
	if s.BypassCache || len(field) == 0 {
		return nil
	}
	return json.RawMessage(field)
}

// persist writes the generated document into its column, full overwrite.
func (s *GenerationService) persist(ctx context.Context, job *models.JobApplication, column string, doc any) (json.RawMessage, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal %s document: %w", column, err)
	}
	if err := s.DB.WithContext(ctx).
		Model(job).
		Update(column, datatypes.JSON(raw)).Error; err != nil {
		return nil, fmt.Errorf("persist %s: %w", column, err)
	}
	return raw, nil
}
