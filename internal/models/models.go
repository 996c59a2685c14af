package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User is an account that owns job applications. Sessions resolve to a User
// by email.
type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Name         string `json:"name"`
	PasswordHash string `gorm:"size:255" json:"-"`
	IsPremium    bool   `gorm:"default:false" json:"is_premium"`
}

// BeforeCreate assigns an opaque id.
func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Valid application statuses. There is no transition graph: any status may be
// set from any other.
const (
	StatusApplied     = "Applied"
	StatusPhoneScreen = "Phone Screen"
	StatusInterview   = "Interview"
	StatusFinalRound  = "Final Round"
	StatusOffer       = "Offer"
	StatusRejected    = "Rejected"
	StatusWithdrawn   = "Withdrawn"
)

// ValidStatuses lists the accepted status values in display order.
var ValidStatuses = []string{
	StatusApplied,
	StatusPhoneScreen,
	StatusInterview,
	StatusFinalRound,
	StatusOffer,
	StatusRejected,
	StatusWithdrawn,
}

// IsValidStatus reports whether s is one of the seven accepted statuses.
func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ValidStatusList renders the accepted statuses for validation messages.
func ValidStatusList() string {
	return strings.Join(ValidStatuses, ", ")
}

// JobApplication is one user's application to one role. Every read and write
// filters on UserID, so an application is never visible outside its owner.
//
// The three JSON columns hold generated prep content and double as a cache:
// once populated they suppress regeneration unless the server runs in
// development mode.
type JobApplication struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID string `gorm:"index;not null" json:"user_id"`

	Company  string `gorm:"not null" json:"company"`
	Position string `gorm:"not null" json:"position"`

	JobURL      string `json:"job_url"`
	SalaryRange string `json:"salary_range"`
	Location    string `json:"location"`
	JobType     string `json:"job_type"`

	Status string `gorm:"default:'Applied'" json:"status"`

	Notes          string `gorm:"type:text" json:"notes"`
	CompanyNotes   string `gorm:"type:text" json:"company_notes"`
	InterviewNotes string `gorm:"type:text" json:"interview_notes"`

	AIQuestions      datatypes.JSON `gorm:"type:jsonb" json:"ai_questions,omitempty"`
	CompanyResearch  datatypes.JSON `gorm:"type:jsonb" json:"company_research,omitempty"`
	PersonalizedPrep datatypes.JSON `gorm:"type:jsonb" json:"personalized_prep,omitempty"`

	AppliedDate time.Time `json:"applied_date"`
}

// BeforeCreate assigns an opaque id and stamps the applied date.
func (j *JobApplication) BeforeCreate(*gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	if j.AppliedDate.IsZero() {
		j.AppliedDate = time.Now()
	}
	return nil
}
