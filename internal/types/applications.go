package types

import "strings"

// DefaultApplicationStatus is used when the form leaves status blank.
const DefaultApplicationStatus = "Applied"

// ApplicationStatuses are the choices offered by the tracker form.
var ApplicationStatuses = []string{"Applied", "Interviewing", "Offer", "Rejected", "Withdrawn"}

// ApplicationRequest is the job application tracker form.
type ApplicationRequest struct {
	Company string `form:"company" validate:"required,max=200"`
	Role    string `form:"role" validate:"required,max=200"`
	Status  string `form:"status" validate:"max=50"`
	JobLink string `form:"job_link" validate:"omitempty,url,max=500"`
	Notes   string `form:"notes" validate:"max=2000"`
}

// Normalize trims every field and applies the default status.
func (r *ApplicationRequest) Normalize() {
	r.Company = strings.TrimSpace(r.Company)
	r.Role = strings.TrimSpace(r.Role)
	r.Status = strings.TrimSpace(r.Status)
	r.JobLink = strings.TrimSpace(r.JobLink)
	r.Notes = strings.TrimSpace(r.Notes)
	if r.Status == "" {
		r.Status = DefaultApplicationStatus
	}
}

// Validate validates the ApplicationRequest using the validator.
func (r *ApplicationRequest) Validate() error {
	return validate.Struct(r)
}

// OptionalString maps "" to nil for nullable columns.
func OptionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
