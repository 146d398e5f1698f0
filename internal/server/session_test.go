package server

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/server/middleware"
	"github.com/jonathan/resume-analyzer/internal/server/ratelimit"
	"github.com/jonathan/resume-analyzer/internal/types"
)

func newTestLimiter(t *testing.T) *ratelimit.Limiter {
	t.Helper()
	l := ratelimit.NewLimiter(ratelimit.NewConfig(true, 1000, time.Minute, nil))
	t.Cleanup(l.Stop)
	return l
}

func newTestSessions(secret string) *SessionService {
	return NewSessionService(&config.SessionConfig{Secret: secret, TTL: time.Hour})
}

func TestSessionService_IssueAndParse(t *testing.T) {
	s := newTestSessions("0123456789abcdef-test")
	rc := &middleware.RequestContext{
		UserID:      uuid.New(),
		Email:       "jane@example.com",
		Role:        types.RoleJobSeeker,
		LinkedInURL: "https://linkedin.com/in/jane",
	}

	token, expiresAt, err := s.Issue(rc)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, rc.SessionID, "Issue assigns a session ID")
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	got, err := s.ParseSession(token)
	require.NoError(t, err)
	assert.Equal(t, *rc, *got)

	t.Run("existing session ID is kept", func(t *testing.T) {
		sessionID := rc.SessionID
		token, _, err := s.Issue(rc)
		require.NoError(t, err)
		got, err := s.ParseSession(token)
		require.NoError(t, err)
		assert.Equal(t, sessionID, got.SessionID)
	})
}

func TestSessionService_RejectsBadTokens(t *testing.T) {
	s := newTestSessions("0123456789abcdef-test")
	rc := &middleware.RequestContext{UserID: uuid.New(), Email: "a@b.co", Role: types.RoleHR}

	t.Run("empty", func(t *testing.T) {
		_, err := s.ParseSession("")
		assert.Error(t, err)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := s.ParseSession("not.a.jwt")
		assert.ErrorContains(t, err, "malformed")
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, _, err := newTestSessions("another-secret-0123456789").Issue(rc)
		require.NoError(t, err)
		_, err = s.ParseSession(token)
		assert.ErrorContains(t, err, "signature")
	})

	t.Run("expired", func(t *testing.T) {
		old := newTestSessions("0123456789abcdef-test")
		old.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, _, err := old.Issue(rc)
		require.NoError(t, err)
		_, err = s.ParseSession(token)
		assert.ErrorContains(t, err, "expired")
	})

	t.Run("unknown role", func(t *testing.T) {
		claims := &Claims{
			SessionID: uuid.New(),
			UserID:    uuid.New(),
			Role:      "admin",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("0123456789abcdef-test"))
		require.NoError(t, err)
		_, err = s.ParseSession(token)
		assert.ErrorContains(t, err, "missing session fields")
	})

	t.Run("none algorithm", func(t *testing.T) {
		claims := &Claims{SessionID: uuid.New(), UserID: uuid.New(), Role: string(types.RoleHR)}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = s.ParseSession(token)
		assert.Error(t, err)
	})
}

func TestSessionService_Cookies(t *testing.T) {
	s := NewSessionService(&config.SessionConfig{Secret: "0123456789abcdef-test", TTL: 2 * time.Hour, CookieSecure: true})

	rec := httptest.NewRecorder()
	s.SetCookie(rec, "token-value", time.Now().Add(2*time.Hour))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, middleware.CookieName, c.Name)
	assert.Equal(t, "token-value", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, 7200, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)

	rec = httptest.NewRecorder()
	s.ClearCookie(rec)
	cookies = rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Empty(t, cookies[0].Value)
}
