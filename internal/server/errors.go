// Package server provides the resume analyzer web application.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// ErrEmailAlreadyExists indicates the email is already registered for the role
type ErrEmailAlreadyExists struct {
	Email string
	Role  types.Role
}

func (e *ErrEmailAlreadyExists) Error() string {
	return "User already exists. Please login."
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct {
	Role types.Role
}

func (e *ErrInvalidCredentials) Error() string {
	return fmt.Sprintf("Invalid credentials for %s account", e.Role.Label())
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrValidation indicates form validation failure. Message is shown to the user.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		exists   *ErrEmailAlreadyExists
		creds    *ErrInvalidCredentials
		notFound *ErrUserNotFound
		invalid  *ErrValidation
	)
	switch {
	case errors.As(err, &exists):
		return http.StatusConflict
	case errors.As(err, &creds):
		return http.StatusUnauthorized
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &invalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fieldMessages are the user-facing texts for validator tags.
var fieldMessages = map[string]string{
	"Email/required":    "Email is required",
	"Email/email":       "Enter a valid email address",
	"Password/required": "Password is required",
	"Password/min":      "Password must be at least 8 characters",
	"Password/max":      "Password is too long",
	"Company/required":  "Company is required",
	"Role/required":     "Role is required",
	"JobLink/url":       "Enter a valid job link URL",
	"FullName/required": "Full name is required",
}

// validationError converts validator output into an ErrValidation for the first failing field.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ErrValidation{Message: "Invalid form submission"}
	}
	fe := verrs[0]
	msg, ok := fieldMessages[fe.Field()+"/"+fe.Tag()]
	if !ok {
		msg = fmt.Sprintf("%s is invalid", fe.Field())
	}
	return &ErrValidation{Field: fe.Field(), Message: msg}
}
