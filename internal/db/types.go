package db

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is a registered account. The same email may exist once per role.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"` // Never serialize to JSON
	LinkedInURL  *string   `json:"linkedin_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// LinkedIn returns the profile URL or "".
func (u *User) LinkedIn() string {
	if u == nil || u.LinkedInURL == nil {
		return ""
	}
	return *u.LinkedInURL
}

// UserCreateInput holds the fields for a new account.
type UserCreateInput struct {
	Email        string
	Role         string
	PasswordHash string
	LinkedInURL  *string
}

// Analysis is one persisted match result. Skill lists are stored comma-space joined.
type Analysis struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	Score         int       `json:"score"`
	MatchedSkills string    `json:"matched_skills"`
	MissingSkills string    `json:"missing_skills"`
	CreatedAt     time.Time `json:"created_at"`
}

// Matched splits MatchedSkills back into a list.
func (a *Analysis) Matched() []string {
	return SplitSkills(a.MatchedSkills)
}

// Missing splits MissingSkills back into a list.
func (a *Analysis) Missing() []string {
	return SplitSkills(a.MissingSkills)
}

// AnalysisCreateInput holds the fields for a new analysis record.
type AnalysisCreateInput struct {
	UserID        uuid.UUID
	Score         int
	MatchedSkills []string
	MissingSkills []string
}

// JoinSkills joins skills with ", ".
func JoinSkills(skills []string) string {
	return strings.Join(skills, ", ")
}

// SplitSkills reverses JoinSkills. An empty string yields an empty list.
func SplitSkills(joined string) []string {
	out := []string{}
	for _, s := range strings.Split(joined, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Application is a tracked job application.
type Application struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Company   string    `json:"company"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	JobLink   *string   `json:"job_link,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ApplicationCreateInput holds the fields for a new application.
type ApplicationCreateInput struct {
	UserID  uuid.UUID
	Company string
	Role    string
	Status  string
	JobLink *string
	Notes   *string
}

// Artifact kinds kept per session.
const (
	ArtifactReport      = "report"
	ArtifactATSResume   = "ats_resume"
	ArtifactCoverLetter = "cover_letter"
)

// Artifact is the latest generated document of one kind for a session.
type Artifact struct {
	SessionID uuid.UUID `json:"session_id"`
	Kind      string    `json:"kind"`
	Filename  string    `json:"filename"`
	Text      string    `json:"text"`
	UpdatedAt time.Time `json:"updated_at"`
}
