package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/db"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// UserService provides business logic for account operations
type UserService struct {
	store          Store
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(store Store, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		store:          store,
		passwordConfig: passwordConfig,
	}
}

// Register creates an account for role. The request is normalized in place.
func (s *UserService) Register(ctx context.Context, role types.Role, req *types.RegisterRequest) (*db.User, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, validationError(err)
	}
	linkedIn, err := types.NormalizeLinkedInURL(req.LinkedInURL)
	if err != nil {
		return nil, &ErrValidation{Field: "LinkedInURL", Message: types.MessageInvalidLinkedIn}
	}

	existing, err := s.store.GetUserByEmailAndRole(ctx, req.Email, string(role))
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if existing != nil {
		return nil, &ErrEmailAlreadyExists{Email: req.Email, Role: role}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, db.UserCreateInput{
		Email:        req.Email,
		Role:         string(role),
		PasswordHash: passwordHash,
		LinkedInURL:  types.OptionalString(linkedIn),
	})
	if err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, db.ErrUserExists) {
			return nil, &ErrEmailAlreadyExists{Email: req.Email, Role: role}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login authenticates an email and password against the account for role.
func (s *UserService) Login(ctx context.Context, role types.Role, req *types.LoginRequest) (*db.User, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, &ErrInvalidCredentials{Role: role}
	}

	user, err := s.store.GetUserByEmailAndRole(ctx, req.Email, string(role))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil || !s.passwordConfig.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, &ErrInvalidCredentials{Role: role}
	}
	return user, nil
}

// UpdateLinkedIn normalizes and stores a profile URL, returning the stored value.
func (s *UserService) UpdateLinkedIn(ctx context.Context, userID uuid.UUID, req *types.ProfileRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", validationError(err)
	}
	linkedIn, err := types.NormalizeLinkedInURL(req.LinkedInURL)
	if err != nil {
		return "", &ErrValidation{Field: "LinkedInURL", Message: types.MessageInvalidLinkedIn}
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return "", &ErrUserNotFound{UserID: userID}
	}

	if err := s.store.UpdateLinkedInURL(ctx, userID, types.OptionalString(linkedIn)); err != nil {
		return "", fmt.Errorf("failed to update profile: %w", err)
	}
	return linkedIn, nil
}
