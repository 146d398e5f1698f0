package ratelimit

import (
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(cfg *Config) (*Limiter, *fakeClock) {
	cfg.CleanupInterval = 0
	l := NewLimiter(cfg)
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	l.now = clock.now
	return l, clock
}

func TestTokenBucket(t *testing.T) {
	start := time.Now()
	b := newTokenBucket(3, 1.0, start)

	for i := 0; i < 3; i++ {
		ok, _, _ := b.take(start)
		assert.True(t, ok, "request %d", i+1)
	}
	ok, remaining, reset := b.take(start)
	assert.False(t, ok)
	assert.Equal(t, 0, remaining)
	assert.Equal(t, start.Add(3*time.Second), reset)

	ok, _, _ = b.take(start.Add(1100 * time.Millisecond))
	assert.True(t, ok, "one token refilled")
}

func TestLimiter_DefaultLimit(t *testing.T) {
	l, clock := newTestLimiter(NewConfig(true, 5, time.Minute, nil))
	defer l.Stop()

	for i := 0; i < 5; i++ {
		allowed, info := l.Allow("10.0.0.1", "/dashboard", http.MethodGet)
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 5, info.Limit)
		assert.Equal(t, 4-i, info.Remaining)
	}

	allowed, info := l.Allow("10.0.0.1", "/dashboard", http.MethodGet)
	assert.False(t, allowed)
	assert.Equal(t, 12*time.Second, info.RetryAfter)

	// other clients have their own bucket
	allowed, _ = l.Allow("10.0.0.2", "/dashboard", http.MethodGet)
	assert.True(t, allowed)

	clock.advance(12 * time.Second)
	allowed, _ = l.Allow("10.0.0.1", "/dashboard", http.MethodGet)
	assert.True(t, allowed)
}

func TestLimiter_EndpointTierSharedAcrossPaths(t *testing.T) {
	l, _ := newTestLimiter(NewConfig(true, 1000, time.Minute, nil))
	defer l.Stop()

	// /register/ allows a burst of 3, shared by both role paths
	for _, path := range []string{"/register/job-seeker", "/register/hr", "/register/job-seeker"} {
		allowed, info := l.Allow("1.2.3.4", path, http.MethodPost)
		require.True(t, allowed, path)
		assert.Equal(t, 5, info.Limit)
	}
	allowed, _ := l.Allow("1.2.3.4", "/register/hr", http.MethodPost)
	assert.False(t, allowed)

	// GET on the same path uses the default tier
	allowed, info := l.Allow("1.2.3.4", "/register/hr", http.MethodGet)
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestLimiter_WhitelistBlacklistDisabled(t *testing.T) {
	cfg := NewConfig(true, 1, time.Minute, []string{" 127.0.0.1 ", ""})
	cfg.Blacklist["6.6.6.6"] = true
	l, _ := newTestLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("127.0.0.1", "/upload", http.MethodGet)
		assert.True(t, allowed)
	}
	allowed, _ := l.Allow("6.6.6.6", "/upload", http.MethodGet)
	assert.False(t, allowed)

	off, _ := newTestLimiter(NewConfig(false, 1, time.Minute, nil))
	for i := 0; i < 5; i++ {
		allowed, _ := off.Allow("1.1.1.1", "/upload", http.MethodGet)
		assert.True(t, allowed)
	}
}

func TestLimiter_RemoveIdle(t *testing.T) {
	l, clock := newTestLimiter(NewConfig(true, 10, time.Minute, nil))
	defer l.Stop()

	l.Allow("a", "/upload", http.MethodGet)
	clock.advance(2 * time.Hour)
	l.Allow("b", "/upload", http.MethodGet)

	assert.Equal(t, 1, l.removeIdle(clock.now().Add(-idleBucketTTL)))
	assert.Len(t, l.buckets, 1)
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(NewConfig(true, 50, time.Hour, nil))
	defer l.Stop()

	var allowedCount atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("client", "/dashboard", http.MethodGet); ok {
				allowedCount.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(50), allowedCount.Load())
}

func TestLimiter_StopTwice(t *testing.T) {
	l := NewLimiter(nil)
	assert.NotPanics(t, func() {
		l.Stop()
		l.Stop()
	})
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	tests := []struct {
		path, method string
		wantPath     string
		wantNil      bool
	}{
		{"/login/hr", "POST", "/login/", false},
		{"/analyze/", "POST", "/analyze/", false},
		{"/download-ats-resume-pdf", "GET", "/download-", false},
		{"/ats-resume", "POST", "/ats-resume", false},
		{"/ats-resume/extra", "POST", "", true},
		{"/dashboard", "GET", "", true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s %s", tt.method, tt.path), func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantPath, got.Path)
		})
	}

	for _, p := range []string{"/health", "/metrics"} {
		got := MatchEndpoint(p, "GET", configs)
		require.NotNil(t, got)
		assert.Equal(t, 0, got.Limit)
	}
}
