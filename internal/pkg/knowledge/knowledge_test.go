package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "how to register", Normalize("  How To Register  "))
	assert.Equal(t, "", Normalize("   "))
	assert.Equal(t, "what is the registration deadline", Normalize("What is the REGISTRATION deadline"))
}

func TestLookup(t *testing.T) {
	answer, ok := Lookup("how do i reset my password")
	assert.True(t, ok)
	assert.Contains(t, answer, "Forgot Password")

	_, ok = Lookup("can i pay in installments")
	assert.False(t, ok)

	// Lookup expects normalized input; raw questions miss
	_, ok = Lookup("How do I reset my password")
	assert.False(t, ok)
}

func TestIsFallback(t *testing.T) {
	assert.True(t, IsFallback(FallbackAnswer))
	assert.True(t, IsFallback("I'm Not Sure about that"))
	assert.False(t, IsFallback("Registration closes at the end of Week 2 each semester."))
}
