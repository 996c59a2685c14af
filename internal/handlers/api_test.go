package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rohanbuilds/jobprep/internal/ai"
	"github.com/rohanbuilds/jobprep/internal/auth"
	"github.com/rohanbuilds/jobprep/internal/content"
	"github.com/rohanbuilds/jobprep/internal/database"
	"github.com/rohanbuilds/jobprep/internal/models"
	"github.com/rohanbuilds/jobprep/internal/services"
)

type failingClient struct{ err error }

func (f failingClient) Questions(context.Context, ai.QuestionsParams) (content.InterviewQuestions, error) {
	return content.InterviewQuestions{}, f.err
}

func (f failingClient) Research(context.Context, ai.ResearchParams) (content.CompanyResearch, error) {
	return content.CompanyResearch{}, f.err
}

func (f failingClient) Prep(context.Context, ai.PrepParams) (content.PersonalizedPrep, error) {
	return content.PersonalizedPrep{}, f.err
}

type apiFixture struct {
	router *gin.Engine
	db     *gorm.DB
	tokens *auth.TokenService
}

type apiOptions struct {
	client         services.ContentClient
	requirePremium bool
	bypassCache    bool
	freeTierLimit  int
}

// newTestAPI assembles the full route tree against an in-memory database,
// mirroring the production wiring.
func newTestAPI(t *testing.T, opts apiOptions) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	tokens, err := auth.NewTokenService("test-secret", time.Hour)
	require.NoError(t, err)

	log := zap.NewNop()
	generator := content.NewGeneratorWithRand(rand.New(rand.NewSource(1)))

	if opts.freeTierLimit == 0 {
		opts.freeTierLimit = 10
	}

	users := services.NewUserService(db)
	jobs := services.NewJobService(db, opts.freeTierLimit)
	generation := services.NewGenerationService(db, opts.client, generator, opts.bypassCache, log)

	authHandler := NewAuthHandler(users, tokens, log)
	jobHandler := NewJobHandler(users, jobs, log)
	generateHandler := NewGenerateHandler(users, jobs, generation,
		opts.requirePremium, opts.client != nil, "test", log)

	r := gin.New()
	api := r.Group("/api/v1")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	jobsGroup := api.Group("/jobs")
	jobsGroup.Use(auth.Middleware(tokens))
	jobsGroup.GET("", jobHandler.List)
	jobsGroup.POST("", jobHandler.Create)
	jobsGroup.GET("/:id", jobHandler.Get)
	jobsGroup.PUT("/:id", jobHandler.Update)
	jobsGroup.DELETE("/:id", jobHandler.Delete)
	jobsGroup.POST("/:id/generate-questions", generateHandler.Questions)
	jobsGroup.POST("/:id/company-research", generateHandler.Research)
	jobsGroup.POST("/:id/personalized-prep", generateHandler.Prep)

	return &apiFixture{router: r, db: db, tokens: tokens}
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

// signup creates an account directly and returns a session token for it.
func (f *apiFixture) signup(t *testing.T, email string, premium bool) string {
	t.Helper()
	hash, err := f.tokens.HashPassword("password123")
	require.NoError(t, err)
	user := &models.User{Email: email, Name: "Test User", PasswordHash: hash, IsPremium: premium}
	require.NoError(t, f.db.Create(user).Error)

	token, err := f.tokens.GenerateToken(email)
	require.NoError(t, err)
	return token
}

func (f *apiFixture) createJob(t *testing.T, token string, body gin.H) string {
	t.Helper()
	w := f.do(t, http.MethodPost, "/api/v1/jobs", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var job models.JobApplication
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &job))
	return job.ID
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRegisterAndLoginFlow(t *testing.T) {
	f := newTestAPI(t, apiOptions{})

	w := f.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":    "New@Example.com",
		"name":     "New User",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	registered := decodeBody(t, w)
	// Email is normalized and the hash never leaves the server.
	assert.Equal(t, "new@example.com", registered["email"])
	assert.NotContains(t, w.Body.String(), "password")

	w = f.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":    "new@example.com",
		"password": "password456",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = f.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "new@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	login := decodeBody(t, w)
	token, _ := login["access_token"].(string)
	require.NotEmpty(t, token)
	assert.Equal(t, "Bearer", login["token_type"])

	w = f.do(t, http.MethodGet, "/api/v1/jobs", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "new@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJobRoutesRequireAuth(t *testing.T) {
	f := newTestAPI(t, apiOptions{})

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/jobs"},
		{http.MethodPost, "/api/v1/jobs"},
		{http.MethodGet, "/api/v1/jobs/some-id"},
		{http.MethodPut, "/api/v1/jobs/some-id"},
		{http.MethodDelete, "/api/v1/jobs/some-id"},
		{http.MethodPost, "/api/v1/jobs/some-id/generate-questions"},
		{http.MethodPost, "/api/v1/jobs/some-id/company-research"},
		{http.MethodPost, "/api/v1/jobs/some-id/personalized-prep"},
	}
	for _, p := range paths {
		w := f.do(t, p.method, p.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", p.method, p.path)
	}
}

func TestTokenForDeletedUser(t *testing.T) {
	f := newTestAPI(t, apiOptions{})
	token := f.signup(t, "gone@example.com", false)

	require.NoError(t, f.db.Where("email = ?", "gone@example.com").Delete(&models.User{}).Error)

	w := f.do(t, http.MethodGet, "/api/v1/jobs", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", decodeBody(t, w)["error"])
}

func TestCreateJobValidation(t *testing.T) {
	f := newTestAPI(t, apiOptions{})
	token := f.signup(t, "a@example.com", false)

	w := f.do(t, http.MethodPost, "/api/v1/jobs", token, gin.H{"position": "Engineer"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/api/v1/jobs", token, gin.H{"company": "Acme", "position": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Position is required", decodeBody(t, w)["error"])
}

func TestUpdateStatusValidation(t *testing.T) {
	f := newTestAPI(t, apiOptions{})
	token := f.signup(t, "a@example.com", false)
	id := f.createJob(t, token, gin.H{"company": "Acme", "position": "Engineer"})

	w := f.do(t, http.MethodPut, "/api/v1/jobs/"+id, token, gin.H{"status": "Ghosted"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t,
		"Invalid status. Must be one of: Applied, Phone Screen, Interview, Final Round, Offer, Rejected, Withdrawn",
		decodeBody(t, w)["error"])

	w = f.do(t, http.MethodPut, "/api/v1/jobs/"+id, token, gin.H{"status": "Phone Screen"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Phone Screen", decodeBody(t, w)["status"])
}

func TestOwnershipReturnsNotFound(t *testing.T) {
	f := newTestAPI(t, apiOptions{})
	owner := f.signup(t, "owner@example.com", false)
	intruder := f.signup(t, "intruder@example.com", false)
	id := f.createJob(t, owner, gin.H{"company": "Acme", "position": "Engineer"})

	paths := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/api/v1/jobs/" + id, nil},
		{http.MethodPut, "/api/v1/jobs/" + id, gin.H{"notes": "x"}},
		{http.MethodDelete, "/api/v1/jobs/" + id, nil},
		{http.MethodPost, "/api/v1/jobs/" + id + "/generate-questions", nil},
	}
	for _, p := range paths {
		w := f.do(t, p.method, p.path, intruder, p.body)
		assert.Equal(t, http.StatusNotFound, w.Code, "%s %s", p.method, p.path)
		assert.Equal(t, "Job application not found", decodeBody(t, w)["error"])
	}

	// The owner still sees it.
	w := f.do(t, http.MethodGet, "/api/v1/jobs/"+id, owner, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFreeTierLimitResponse(t *testing.T) {
	f := newTestAPI(t, apiOptions{freeTierLimit: 2})
	token := f.signup(t, "free@example.com", false)

	f.createJob(t, token, gin.H{"company": "Acme", "position": "Engineer"})
	f.createJob(t, token, gin.H{"company": "Globex", "position": "Engineer"})

	w := f.do(t, http.MethodPost, "/api/v1/jobs", token, gin.H{"company": "Initech", "position": "Engineer"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t,
		"Free tier limit reached. Upgrade to premium to track more than 2 applications.",
		decodeBody(t, w)["error"])
}

func TestDeleteJob(t *testing.T) {
	f := newTestAPI(t, apiOptions{})
	token := f.signup(t, "a@example.com", false)
	id := f.createJob(t, token, gin.H{"company": "Acme", "position": "Engineer"})

	w := f.do(t, http.MethodDelete, "/api/v1/jobs/"+id, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Job application deleted successfully", decodeBody(t, w)["message"])

	w = f.do(t, http.MethodDelete, "/api/v1/jobs/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGenerateQuestionsFallbackResponse(t *testing.T) {
	f := newTestAPI(t, apiOptions{})
	token := f.signup(t, "a@example.com", false)
	id := f.createJob(t, token, gin.H{"company": "Acme", "position": "Software Engineer"})

	w := f.do(t, http.MethodPost, "/api/v1/jobs/"+id+"/generate-questions", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "fallback", w.Header().Get("X-AI-Status"))
	assert.Equal(t, "missing", w.Header().Get("X-API-Key-Status"))

	body := decodeBody(t, w)
	assert.Equal(t, "Interview questions generated successfully", body["message"])
	require.Contains(t, body, "questions")
	require.Contains(t, body, "jobApplication")

	metadata, _ := body["metadata"].(map[string]any)
	require.NotNil(t, metadata)
	assert.Equal(t, false, metadata["isAIGenerated"])
	assert.Equal(t, "fallback", metadata["source"])
	assert.Equal(t, "missing", metadata["apiKeyStatus"])
	assert.Equal(t, false, metadata["cached"])
	assert.NotContains(t, metadata, "errorDetails")
}

func TestGenerateCachedOnSecondCall(t *testing.T) {
	f := newTestAPI(t, apiOptions{})
	token := f.signup(t, "a@example.com", false)
	id := f.createJob(t, token, gin.H{"company": "Acme", "position": "Software Engineer"})

	first := f.do(t, http.MethodPost, "/api/v1/jobs/"+id+"/company-research", token, nil)
	require.Equal(t, http.StatusOK, first.Code)

	second := f.do(t, http.MethodPost, "/api/v1/jobs/"+id+"/company-research", token, nil)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "cache", second.Header().Get("X-AI-Status"))

	body := decodeBody(t, second)
	assert.Equal(t, "Company research already completed", body["message"])

	metadata, _ := body["metadata"].(map[string]any)
	require.NotNil(t, metadata)
	assert.Equal(t, "cache", metadata["source"])
	assert.Equal(t, true, metadata["cached"])
	// The origin of a cached document is unknown.
	assert.Nil(t, metadata["isAIGenerated"])

	assert.JSONEq(t,
		string(mustRaw(t, decodeBody(t, first)["research"])),
		string(mustRaw(t, body["research"])))
}

func mustRaw(t *testing.T, v any) []byte {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func TestGenerateProviderFailureStillSucceeds(t *testing.T) {
	f := newTestAPI(t, apiOptions{client: failingClient{err: ai.ErrQuotaExceeded}})
	token := f.signup(t, "a@example.com", false)
	id := f.createJob(t, token, gin.H{"company": "Acme", "position": "Software Engineer"})

	w := f.do(t, http.MethodPost, "/api/v1/jobs/"+id+"/personalized-prep", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "fallback", w.Header().Get("X-AI-Status"))
	assert.Equal(t, "present", w.Header().Get("X-API-Key-Status"))

	metadata, _ := decodeBody(t, w)["metadata"].(map[string]any)
	require.NotNil(t, metadata)
	assert.Equal(t, "fallback", metadata["source"])
	assert.Equal(t, "configured", metadata["apiKeyStatus"])
	assert.Equal(t, ai.ErrQuotaExceeded.Error(), metadata["errorDetails"])
}

func TestGeneratePremiumGate(t *testing.T) {
	f := newTestAPI(t, apiOptions{requirePremium: true})
	free := f.signup(t, "free@example.com", false)
	premium := f.signup(t, "premium@example.com", true)

	freeJob := f.createJob(t, free, gin.H{"company": "Acme", "position": "Engineer"})
	premiumJob := f.createJob(t, premium, gin.H{"company": "Acme", "position": "Engineer"})

	w := f.do(t, http.MethodPost, "/api/v1/jobs/"+freeJob+"/generate-questions", free, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Premium feature. Upgrade to access AI-powered interview prep.", decodeBody(t, w)["error"])

	w = f.do(t, http.MethodPost, "/api/v1/jobs/"+premiumJob+"/generate-questions", premium, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
