// Package middleware provides HTTP middleware for session authentication and authorization.
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// CookieName is the session cookie.
const CookieName = "ra_session"

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

const requestContextKey ContextKey = "requestContext"

// RequestContext is the authenticated session carried with a request.
type RequestContext struct {
	SessionID   uuid.UUID
	UserID      uuid.UUID
	Email       string
	Role        types.Role
	LinkedInURL string
}

// IsJobSeeker reports whether the session belongs to a job seeker account.
func (rc *RequestContext) IsJobSeeker() bool {
	return rc != nil && rc.Role == types.RoleJobSeeker
}

// SessionParser validates a session token.
type SessionParser interface {
	ParseSession(token string) (*RequestContext, error)
}

// WithRequestContext returns ctx carrying rc.
func WithRequestContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey, rc)
}

// FromContext returns the session attached by Session, if any.
func FromContext(ctx context.Context) (*RequestContext, bool) {
	rc, ok := ctx.Value(requestContextKey).(*RequestContext)
	return rc, ok && rc != nil
}

// Session attaches the RequestContext from a valid session cookie. Requests
// without a valid cookie pass through unauthenticated.
func Session(parser SessionParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			rc, err := parser.ParseSession(cookie.Value)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithRequestContext(r.Context(), rc)))
		})
	}
}

// RequireUser redirects unauthenticated requests to loginPath.
func RequireUser(loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := FromContext(r.Context()); !ok {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole redirects sessions of any other role to fallbackPath.
// It must run after RequireUser.
func RequireRole(role types.Role, fallbackPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rc, ok := FromContext(r.Context())
			if !ok || rc.Role != role {
				http.Redirect(w, r, fallbackPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
