package domain

import (
	"regexp"
	"time"
)

var businessCodePattern = regexp.MustCompile(`^[a-z0-9-]{3,64}$`)

// Business is the emprendedor account that owns services, schedule and appointments.
// Clients reach it through its public code.
type Business struct {
	ID       int64
	Code     string
	Name     string
	Location *time.Location // nil = default time zone from config
}

// IsValidBusinessCode checks the public link code format
func IsValidBusinessCode(code string) bool {
	return businessCodePattern.MatchString(code)
}

// LocationOr returns the business time zone or the fallback when unset
func (b *Business) LocationOr(fallback *time.Location) *time.Location {
	if b == nil || b.Location == nil {
		return fallback
	}
	return b.Location
}
