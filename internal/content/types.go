package content

import (
	"bytes"
	"encoding/json"
	"errors"
)

// SchemaVersion tags every generated document so stored shapes stay
// distinguishable if they evolve.
const SchemaVersion = 1

// Job carries the application fields the generators read. It is a plain value
// so the package stays free of persistence concerns.
type Job struct {
	Company     string
	Position    string
	Location    string
	JobType     string
	SalaryRange string
	Notes       string
}

// TechnicalGuide is the object form of the technical section: study guidance
// rather than literal questions.
type TechnicalGuide struct {
	FocusAreas          []string `json:"focus_areas"`
	KeyTopics           []string `json:"key_topics"`
	InterviewStyle      []string `json:"interview_style"`
	CompanyValues       []string `json:"company_values"`
	PrepRecommendations []string `json:"prep_recommendations"`
}

// TechnicalSection is the technical part of an interview-questions document.
// On the wire it is either a plain array of questions or a TechnicalGuide
// object; exactly one of the two fields is set.
type TechnicalSection struct {
	Questions []string
	Guide     *TechnicalGuide
}

// MarshalJSON emits the array form when Questions is set, the object form
// otherwise.
func (t TechnicalSection) MarshalJSON() ([]byte, error) {
	if t.Guide != nil {
		return json.Marshal(t.Guide)
	}
	if t.Questions == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(t.Questions)
}

// UnmarshalJSON accepts both wire shapes.
func (t *TechnicalSection) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*t = TechnicalSection{}
		return nil
	}
	switch trimmed[0] {
	case '[':
		var qs []string
		if err := json.Unmarshal(trimmed, &qs); err != nil {
			return err
		}
		*t = TechnicalSection{Questions: qs}
		return nil
	case '{':
		var guide TechnicalGuide
		if err := json.Unmarshal(trimmed, &guide); err != nil {
			return err
		}
		*t = TechnicalSection{Guide: &guide}
		return nil
	default:
		return errors.New("technical section must be an array or an object")
	}
}

// IsZero reports whether the section carries no content at all.
func (t TechnicalSection) IsZero() bool {
	return t.Guide == nil && len(t.Questions) == 0
}

// InterviewQuestions is the document stored in JobApplication.AIQuestions.
type InterviewQuestions struct {
	SchemaVersion int              `json:"schema_version"`
	Behavioral    []string         `json:"behavioral"`
	Technical     TechnicalSection `json:"technical"`
	RoleSpecific  []string         `json:"roleSpecific"`
	Company       []string         `json:"company"`
}

// CompanyOverview summarizes the employer.
type CompanyOverview struct {
	Industry     string `json:"industry"`
	Size         string `json:"size"`
	Founded      string `json:"founded"`
	Headquarters string `json:"headquarters"`
	Description  string `json:"description"`
}

// CompanyCulture describes values and working style.
type CompanyCulture struct {
	Values          []string `json:"values"`
	WorkEnvironment string   `json:"workEnvironment"`
	Benefits        []string `json:"benefits,omitempty"`
}

// InterviewProcess describes the expected rounds.
type InterviewProcess struct {
	Rounds   []string `json:"rounds"`
	Timeline string   `json:"timeline"`
	Tips     []string `json:"tips,omitempty"`
}

// GlassdoorInsights carries the review-style summary.
type GlassdoorInsights struct {
	Rating string   `json:"rating,omitempty"`
	Pros   []string `json:"pros"`
	Cons   []string `json:"cons"`
}

// CompanyResearch is the document stored in JobApplication.CompanyResearch.
type CompanyResearch struct {
	SchemaVersion    int               `json:"schema_version"`
	Overview         CompanyOverview   `json:"overview"`
	Culture          CompanyCulture    `json:"culture"`
	InterviewProcess InterviewProcess  `json:"interviewProcess"`
	RecentNews       []string          `json:"recentNews"`
	Glassdoor        GlassdoorInsights `json:"glassdoorInsights"`
}

// PersonalizedPrep is the document stored in JobApplication.PersonalizedPrep.
// Every answer area is a list of talking points, never a scripted paragraph.
type PersonalizedPrep struct {
	SchemaVersion       int      `json:"schema_version"`
	TellMeAboutYourself []string `json:"tellMeAboutYourself"`
	WhyThisCompany      []string `json:"whyThisCompany"`
	Strength            []string `json:"strength"`
	Weakness            []string `json:"weakness"`
	QuestionsToAsk      []string `json:"questionsToAsk"`
	SalaryNegotiation   []string `json:"salaryNegotiation"`
}
