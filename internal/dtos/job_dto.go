package dtos

// JobCreationRequest is the body for POST /jobs. Company and position are the
// only required fields; both are trimmed before validation.
type JobCreationRequest struct {
	Company  string `json:"company" binding:"required"`
	Position string `json:"position" binding:"required"`

	// Optional fields
	JobURL       string `json:"job_url"`
	SalaryRange  string `json:"salary_range"`
	Location     string `json:"location"`
	JobType      string `json:"job_type"`
	Notes        string `json:"notes"`
	CompanyNotes string `json:"company_notes"`
}

// JobUpdateRequest is the body for PUT /jobs/:id. Every field is optional;
// only the fields present in the JSON are applied. Pointers distinguish
// "absent" from "set to empty".
type JobUpdateRequest struct {
	Company      *string `json:"company"`
	Position     *string `json:"position"`
	JobURL       *string `json:"job_url"`
	SalaryRange  *string `json:"salary_range"`
	Location     *string `json:"location"`
	JobType      *string `json:"job_type"`
	Status       *string `json:"status"`
	Notes        *string `json:"notes"`
	CompanyNotes *string `json:"company_notes"`

	InterviewNotes *string `json:"interview_notes"`
}

// RegisterRequest is the body for POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
