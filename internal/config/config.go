package config

import (
	"os"
	"time"
)

// Session cookie settings
const (
	SessionCookieName = "qid"
	SessionMaxAge     = 10 * 365 * 24 * int(time.Hour/time.Second) // seconds
)

// Password reset tokens
const (
	ForgetPasswordKeyPrefix = "forget-password:"
	ForgetPasswordTokenTTL  = 3 * 24 * time.Hour
)

// Feed pagination limits
const (
	MinPostsQueryLimit     = 1
	DefaultPostsQueryLimit = 5
	MaxPostsQueryLimit     = 50
)

// Registration validation
const (
	MinUsernameLength = 3
	MinPasswordLength = 4
)

// Getenv returns the value of an environment variable, or fallback when unset.
func Getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
