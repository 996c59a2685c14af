package content

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(seed int64) *Generator {
	return NewGeneratorWithRand(rand.New(rand.NewSource(seed)))
}

func TestClassifyStartup(t *testing.T) {
	cases := []struct {
		company string
		startup bool
	}{
		{"AI Labs", true},                // substring match, length irrelevant
		{"Global Enterprises Corp", false},
		{"Initech", true},               // shorter than 10 characters
		{"Stripe Payments Inc", false},
		{"DataDog Labs International", true}, // "labs" despite the long name
		{"Octagon.io Systems", true},
		{"Hartwell Dunmore Group", false},
	}
	for _, tc := range cases {
		p := classify(Job{Company: tc.company, Position: "Accountant"})
		assert.Equal(t, tc.startup, p.Startup, "company %q", tc.company)
	}
}

func TestClassifyRole(t *testing.T) {
	p := classify(Job{Company: "Example Corporation", Position: "Senior Software Engineer"})
	assert.True(t, p.Technical)
	assert.True(t, p.Senior)
	assert.False(t, p.Manager)
	assert.False(t, p.Design)

	p = classify(Job{Company: "Example Corporation", Position: "Engineering Manager"})
	assert.True(t, p.Manager)
	// "engineering" contains "engineer", so the manager is also technical
	assert.True(t, p.Technical)

	p = classify(Job{Company: "Example Corporation", Position: "Product Designer"})
	assert.True(t, p.Design)
	assert.False(t, p.Technical)
}

func TestClassifyRemote(t *testing.T) {
	assert.True(t, classify(Job{Company: "Example Corporation", Position: "Writer", JobType: "Remote"}).Remote)
	assert.True(t, classify(Job{Company: "Example Corporation", Position: "Writer", Location: "Remote (US)"}).Remote)
	assert.False(t, classify(Job{Company: "Example Corporation", Position: "Writer", Location: "Austin, TX"}).Remote)
}

func TestResearchStartupVsEstablished(t *testing.T) {
	g := newTestGenerator(1)

	startup := g.Research(Job{Company: "AI Labs", Position: "Software Engineer"})
	assert.Equal(t, "50-200 employees", startup.Overview.Size)
	assert.Contains(t, startup.Overview.Description, "fast-growing startup")
	assert.Contains(t, startup.Culture.Values, "Move Fast")
	assert.Contains(t, startup.InterviewProcess.Timeline, "1-2 weeks")

	established := g.Research(Job{Company: "Global Enterprises Corp", Position: "Software Engineer"})
	assert.Equal(t, "5000+ employees", established.Overview.Size)
	assert.Contains(t, established.Overview.Description, "well-established company")
	assert.Contains(t, established.Culture.Values, "Integrity")
	assert.Contains(t, established.InterviewProcess.Timeline, "2-4 weeks")
}

func TestResearchIsFullyPopulated(t *testing.T) {
	g := newTestGenerator(7)
	doc := g.Research(Job{Company: "Quiet Harbor Consulting Group", Position: "Account Executive"})

	assert.Equal(t, SchemaVersion, doc.SchemaVersion)
	assert.NotEmpty(t, doc.Overview.Industry)
	assert.NotEmpty(t, doc.Overview.Size)
	assert.NotEmpty(t, doc.Overview.Founded)
	assert.Equal(t, "Multiple locations", doc.Overview.Headquarters)
	assert.NotEmpty(t, doc.Culture.Values)
	assert.NotEmpty(t, doc.Culture.Benefits)
	assert.Len(t, doc.RecentNews, 4)
	assert.NotEmpty(t, doc.InterviewProcess.Rounds)
	assert.Len(t, doc.InterviewProcess.Tips, 5)
	assert.NotEmpty(t, doc.Glassdoor.Rating)
	assert.NotEmpty(t, doc.Glassdoor.Pros)
	assert.NotEmpty(t, doc.Glassdoor.Cons)
}

func TestRandomnessIsCosmeticOnly(t *testing.T) {
	job := Job{Company: "AI Labs", Position: "Software Engineer", Location: "Berlin"}

	a := newTestGenerator(1).Research(job)
	b := newTestGenerator(99).Research(job)

	// Branch-dependent text is identical across seeds.
	assert.Equal(t, a.Overview.Size, b.Overview.Size)
	assert.Equal(t, a.Overview.Description, b.Overview.Description)
	assert.Equal(t, a.Culture, b.Culture)
	assert.Equal(t, a.InterviewProcess, b.InterviewProcess)
	assert.Equal(t, a.Glassdoor.Pros, b.Glassdoor.Pros)
	assert.Equal(t, a.Glassdoor.Cons, b.Glassdoor.Cons)

	// Only founded year, news figures and rating may differ.
	assert.True(t, strings.HasPrefix(a.Overview.Founded, "20"))
	assert.True(t, strings.HasPrefix(b.Overview.Founded, "20"))
}

func TestQuestionsTechnicalRoleGetsGuide(t *testing.T) {
	g := newTestGenerator(3)
	doc := g.Questions(Job{Company: "Globex Corporation", Position: "Backend Developer"})

	require.NotNil(t, doc.Technical.Guide)
	assert.Empty(t, doc.Technical.Questions)
	assert.NotEmpty(t, doc.Technical.Guide.FocusAreas)
	assert.NotEmpty(t, doc.Technical.Guide.PrepRecommendations)
	assert.Len(t, doc.Behavioral, 5)
	assert.Len(t, doc.RoleSpecific, 5)
	assert.Len(t, doc.Company, 5)
}

func TestQuestionsNonTechnicalRoleGetsQuestionList(t *testing.T) {
	g := newTestGenerator(3)

	design := g.Questions(Job{Company: "Globex Corporation", Position: "UX Designer"})
	require.Nil(t, design.Technical.Guide)
	assert.NotEmpty(t, design.Technical.Questions)
	assert.Contains(t, design.Technical.Questions[0], "design process")

	manager := g.Questions(Job{Company: "Globex Corporation", Position: "Sales Director"})
	require.Nil(t, manager.Technical.Guide)
	assert.Contains(t, manager.Technical.Questions[0], "priorities for your team")
	// Managers get an extra behavioral question.
	assert.Len(t, manager.Behavioral, 6)
}

func TestQuestionsStartupCompanySet(t *testing.T) {
	g := newTestGenerator(3)
	doc := g.Questions(Job{Company: "AI Labs", Position: "Software Engineer"})

	joined := strings.Join(doc.Company, " ")
	assert.Contains(t, joined, "growth trajectory")
	assert.Contains(t, joined, "funding")
}

func TestPrepSeniorityChangesExperience(t *testing.T) {
	g := newTestGenerator(5)

	senior := g.Prep(Job{Company: "Globex Corporation", Position: "Senior Software Engineer"})
	assert.Contains(t, senior.TellMeAboutYourself[0], "5+ years")

	junior := g.Prep(Job{Company: "Globex Corporation", Position: "Software Engineer"})
	assert.Contains(t, junior.TellMeAboutYourself[0], "3-5 years")
}

func TestPrepUsesSalaryRangeAndLocation(t *testing.T) {
	g := newTestGenerator(5)

	doc := g.Prep(Job{
		Company:     "Globex Corporation",
		Position:    "Marketing Manager",
		Location:    "Chicago, IL",
		SalaryRange: "$90k-$110k",
	})
	assert.Contains(t, doc.SalaryNegotiation[0], "Chicago, IL")
	assert.Contains(t, doc.SalaryNegotiation[0], "$90k-$110k")

	defaulted := g.Prep(Job{Company: "Globex Corporation", Position: "Marketing Manager"})
	assert.Contains(t, defaulted.SalaryNegotiation[0], "this area")
	assert.Contains(t, defaulted.SalaryNegotiation[0], "$80k-$120k")
}

func TestPrepAlwaysFullyPopulated(t *testing.T) {
	g := newTestGenerator(5)
	doc := g.Prep(Job{Company: "X", Position: "Y"})

	assert.Equal(t, SchemaVersion, doc.SchemaVersion)
	assert.NotEmpty(t, doc.TellMeAboutYourself)
	assert.NotEmpty(t, doc.WhyThisCompany)
	assert.NotEmpty(t, doc.Strength)
	assert.NotEmpty(t, doc.Weakness)
	assert.Len(t, doc.QuestionsToAsk, 7)
	assert.NotEmpty(t, doc.SalaryNegotiation)
}
