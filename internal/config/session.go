package config

import (
	"fmt"
	"time"
)

// minSessionSecretLen is the shortest accepted HMAC secret.
const minSessionSecretLen = 16

// SessionConfig holds configuration for signed session cookies.
type SessionConfig struct {
	Secret       string
	TTL          time.Duration
	CookieSecure bool
}

// SessionConfig returns the session settings of c.
func (c *Config) SessionConfig() (*SessionConfig, error) {
	sc := &SessionConfig{
		Secret:       c.SessionSecret,
		TTL:          time.Duration(c.SessionTTLHours) * time.Hour,
		CookieSecure: c.CookieSecure,
	}
	if err := sc.normalize(); err != nil {
		return nil, err
	}
	return sc, nil
}

// normalize validates the configuration.
func (c *SessionConfig) normalize() error {
	if len(c.Secret) < minSessionSecretLen {
		return fmt.Errorf("session secret must be at least %d characters", minSessionSecretLen)
	}
	if c.TTL < time.Hour {
		return fmt.Errorf("session TTL must be at least 1 hour, got: %s", c.TTL)
	}
	return nil
}
