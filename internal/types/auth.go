// Package types provides the request and domain value types shared by the
// server, the store and the CLI.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Role is the account type a user registers and logs in with.
type Role string

const (
	RoleJobSeeker Role = "job_seeker"
	RoleHR        Role = "hr"
)

// Roles lists every role in display order.
var Roles = []Role{RoleJobSeeker, RoleHR}

// ErrInvalidLinkedIn is returned for profile URLs outside linkedin.com.
var ErrInvalidLinkedIn = errors.New("invalid linkedin url")

// MessageInvalidLinkedIn is shown when ErrInvalidLinkedIn is returned.
const MessageInvalidLinkedIn = "Enter a valid LinkedIn URL"

// Label is the human-readable role name.
func (r Role) Label() string {
	switch r {
	case RoleJobSeeker:
		return "Job Seeker"
	case RoleHR:
		return "HR"
	default:
		return string(r)
	}
}

// Slug is the role's URL path segment, e.g. "job-seeker".
func (r Role) Slug() string {
	return strings.ReplaceAll(string(r), "_", "-")
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleJobSeeker || r == RoleHR
}

// ParseRole accepts either the stored value ("job_seeker") or the URL slug ("job-seeker").
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	return r, r.Valid()
}

// RegisterRequest is the registration form.
type RegisterRequest struct {
	Email       string `form:"email" validate:"required,email,max=255"`
	Password    string `form:"password" validate:"required,min=8,max=128"`
	LinkedInURL string `form:"linkedin_url" validate:"max=500"`
}

// LoginRequest is the login form.
type LoginRequest struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// ProfileRequest is the profile update form.
type ProfileRequest struct {
	LinkedInURL string `form:"linkedin_url" validate:"max=500"`
}

var validate = validator.New()

// Normalize trims and lower-cases the email.
func (r *RegisterRequest) Normalize() {
	r.Email = NormalizeEmail(r.Email)
	r.LinkedInURL = strings.TrimSpace(r.LinkedInURL)
}

// Validate validates the RegisterRequest using the validator.
func (r *RegisterRequest) Validate() error {
	return validate.Struct(r)
}

// Normalize trims and lower-cases the email.
func (r *LoginRequest) Normalize() {
	r.Email = NormalizeEmail(r.Email)
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the ProfileRequest using the validator.
func (r *ProfileRequest) Validate() error {
	return validate.Struct(r)
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeLinkedInURL returns "" for empty input, rejects URLs that do not
// mention linkedin.com and prefixes https:// when no scheme is given.
func NormalizeLinkedInURL(raw string) (string, error) {
	url := strings.TrimSpace(raw)
	if url == "" {
		return "", nil
	}
	if !strings.Contains(strings.ToLower(url), "linkedin.com") {
		return "", ErrInvalidLinkedIn
	}
	lower := strings.ToLower(url)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		url = "https://" + url
	}
	return url, nil
}
