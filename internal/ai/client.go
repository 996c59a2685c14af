package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/rohanbuilds/jobprep/internal/content"
)

// Client wraps the chat-completions API for the three generation tasks. It
// makes exactly one completion attempt per call, performs no caching and no
// retries; those concerns belong to the pipeline.
//
// A provider failure (quota, credentials, outage, empty answer) is returned
// as an error. A completion that comes back but cannot be parsed as JSON is
// NOT an error: the client silently substitutes the deterministic document
// for the task, so the caller still gets usable content.
type Client struct {
	apiKey  string
	baseURL string
	model   string

	httpClient *http.Client
	fallback   *content.Generator
	logger     *zap.Logger
}

// NewClient builds a client against the given completion endpoint.
func NewClient(apiKey, baseURL, model string, fallback *content.Generator, logger *zap.Logger) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{},
		fallback:   fallback,
		logger:     logger,
	}
}

// QuestionsParams are the inputs for interview-question generation.
type QuestionsParams struct {
	Company        string
	Position       string
	JobDescription string
	JobType        string
}

// ResearchParams are the inputs for company research.
type ResearchParams struct {
	Company  string
	Position string
}

// PrepParams are the inputs for personalized prep.
type PrepParams struct {
	Company        string
	Position       string
	UserBackground string
	JobDescription string
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// complete performs the single round-trip and classifies provider failures.
func (c *Client) complete(ctx context.Context, system, user string, temperature float64, maxTokens int, jsonMode bool) (string, error) {
	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
	if jsonMode {
		req.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("call completion API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", classifyStatus(resp.StatusCode)
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if len(cr.Choices) == 0 || strings.TrimSpace(cr.Choices[0].Message.Content) == "" {
		return "", ErrNoContent
	}
	return cr.Choices[0].Message.Content, nil
}

// extractJSON trims any prose around the outermost JSON object.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start != -1 && end != -1 && end > start {
		return s[start : end+1]
	}
	return s
}

// Questions generates the interview-questions document.
func (c *Client) Questions(ctx context.Context, p QuestionsParams) (content.InterviewQuestions, error) {
	raw, err := c.complete(ctx, questionsSystemPrompt, questionsUserPrompt(p), 0.7, 2500, true)
	if err != nil {
		return content.InterviewQuestions{}, err
	}

	var parsed struct {
		Behavioral   []string                 `json:"behavioral"`
		Technical    content.TechnicalSection `json:"technical"`
		RoleSpecific []string                 `json:"roleSpecific"`
		RoleSnake    []string                 `json:"role_specific"`
		Company      []string                 `json:"company"`
	}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &parsed); err != nil {
		c.logger.Warn("questions response was not valid JSON, using generated document",
			zap.String("company", p.Company), zap.Error(err))
		return c.fallback.Questions(jobFromQuestions(p)), nil
	}

	doc := content.InterviewQuestions{
		SchemaVersion: content.SchemaVersion,
		Behavioral:    parsed.Behavioral,
		Technical:     parsed.Technical,
		RoleSpecific:  parsed.RoleSpecific,
		Company:       parsed.Company,
	}
	if doc.Behavioral == nil {
		doc.Behavioral = []string{}
	}
	if doc.RoleSpecific == nil {
		doc.RoleSpecific = parsed.RoleSnake
	}
	if doc.RoleSpecific == nil {
		doc.RoleSpecific = []string{}
	}
	if doc.Company == nil {
		doc.Company = []string{}
	}
	if doc.Technical.IsZero() {
		doc.Technical = content.TechnicalSection{Guide: &content.TechnicalGuide{
			FocusAreas:          []string{"algorithms", "problem solving"},
			KeyTopics:           []string{"data structures", "coding fundamentals"},
			InterviewStyle:      []string{"whiteboard coding", "behavioral discussion"},
			CompanyValues:       []string{"clean code", "clear communication"},
			PrepRecommendations: []string{"Practice coding problems", "Review CS fundamentals"},
		}}
	}
	return doc, nil
}

// Research generates the company-research document.
func (c *Client) Research(ctx context.Context, p ResearchParams) (content.CompanyResearch, error) {
	raw, err := c.complete(ctx, researchSystemPrompt, researchUserPrompt(p), 0.6, 1000, true)
	if err != nil {
		return content.CompanyResearch{}, err
	}

	var parsed struct {
		Industry          string   `json:"industry"`
		Size              string   `json:"size"`
		Founded           string   `json:"founded"`
		Headquarters      string   `json:"headquarters"`
		Description       string   `json:"description"`
		Values            []string `json:"values"`
		WorkCulture       string   `json:"work_culture"`
		InterviewRounds   []string `json:"interview_rounds"`
		InterviewTimeline string   `json:"interview_timeline"`
		RecentNews        []string `json:"recent_news"`
		EmployeePros      []string `json:"employee_pros"`
		EmployeeCons      []string `json:"employee_cons"`
	}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &parsed); err != nil {
		c.logger.Warn("research response was not valid JSON, using generated document",
			zap.String("company", p.Company), zap.Error(err))
		return c.fallback.Research(content.Job{Company: p.Company, Position: p.Position}), nil
	}

	// Per-field defaults for a structurally valid but incomplete answer.
	doc := content.CompanyResearch{
		SchemaVersion: content.SchemaVersion,
		Overview: content.CompanyOverview{
			Industry:     orDefault(parsed.Industry, "Technology"),
			Size:         orDefault(parsed.Size, "Unknown"),
			Founded:      orDefault(parsed.Founded, "Unknown"),
			Headquarters: orDefault(parsed.Headquarters, "Unknown"),
			Description:  orDefault(parsed.Description, fmt.Sprintf("%s is a company in the industry.", p.Company)),
		},
		Culture: content.CompanyCulture{
			Values:          orDefaultList(parsed.Values, []string{"Innovation", "Excellence", "Collaboration"}),
			WorkEnvironment: orDefault(parsed.WorkCulture, "Professional work environment focused on results."),
		},
		InterviewProcess: content.InterviewProcess{
			Rounds:   orDefaultList(parsed.InterviewRounds, []string{"Phone Screen", "Technical Interview", "Final Round"}),
			Timeline: orDefault(parsed.InterviewTimeline, "2-4 weeks"),
		},
		RecentNews: orDefaultList(parsed.RecentNews, []string{
			fmt.Sprintf("%s continues to grow in the market", p.Company),
			"Recent strategic initiatives show strong performance",
			"Company maintains competitive position in industry",
		}),
		Glassdoor: content.GlassdoorInsights{
			Pros: orDefaultList(parsed.EmployeePros, []string{"Good compensation", "Interesting work", "Professional growth"}),
			Cons: orDefaultList(parsed.EmployeeCons, []string{"Fast-paced environment", "High expectations"}),
		},
	}
	return doc, nil
}

// Prep generates the personalized-prep document.
func (c *Client) Prep(ctx context.Context, p PrepParams) (content.PersonalizedPrep, error) {
	raw, err := c.complete(ctx, prepSystemPrompt, prepUserPrompt(p), 0.7, 1500, false)
	if err != nil {
		return content.PersonalizedPrep{}, err
	}

	var parsed struct {
		TellMeAboutYourself []string `json:"tell_me_about_yourself_tips"`
		WhyThisCompany      []string `json:"why_this_company_tips"`
		Strength            []string `json:"strength_tips"`
		Weakness            []string `json:"weakness_tips"`
		QuestionsToAsk      []string `json:"questions_to_ask"`
		SalaryNegotiation   []string `json:"salary_negotiation_tips"`
	}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &parsed); err != nil {
		c.logger.Warn("prep response was not valid JSON, using generated document",
			zap.String("company", p.Company), zap.Error(err))
		return c.fallback.Prep(content.Job{Company: p.Company, Position: p.Position}), nil
	}

	doc := content.PersonalizedPrep{
		SchemaVersion: content.SchemaVersion,
		TellMeAboutYourself: orDefaultList(parsed.TellMeAboutYourself, []string{
			"Highlight relevant experience", "Connect background to role", "Show enthusiasm for opportunity",
		}),
		WhyThisCompany: orDefaultList(parsed.WhyThisCompany, []string{
			"Mention specific company research", "Align with company values", "Explain role fit",
		}),
		Strength: orDefaultList(parsed.Strength, []string{
			"Choose role-relevant strength", "Provide concrete example", "Show measurable impact",
		}),
		Weakness: orDefaultList(parsed.Weakness, []string{
			"Share honest weakness", "Explain improvement plan", "Demonstrate growth mindset",
		}),
		QuestionsToAsk: orDefaultList(parsed.QuestionsToAsk, []string{
			"What does success look like in this role?",
			"Can you tell me about the team I'd be working with?",
			"What are the biggest challenges facing the team right now?",
			"How does this role contribute to the company's goals?",
			"What opportunities are there for professional development?",
		}),
		SalaryNegotiation: orDefaultList(parsed.SalaryNegotiation, []string{
			"Research market rates", "Wait for appropriate timing", "Focus on total compensation package",
		}),
	}
	return doc, nil
}

func jobFromQuestions(p QuestionsParams) content.Job {
	return content.Job{
		Company:  p.Company,
		Position: p.Position,
		JobType:  p.JobType,
		Notes:    p.JobDescription,
	}
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func orDefaultList(v, def []string) []string {
	if len(v) == 0 {
		return def
	}
	return v
}
