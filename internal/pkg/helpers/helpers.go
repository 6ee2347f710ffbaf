package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string, returns the default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// NullableString converts an empty string to a nil pointer, anything else to
// a pointer to the value. Used when binding optional form fields to nullable
// columns.
func NullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
