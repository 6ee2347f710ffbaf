// Package knowledge holds the chatbot's static question/answer table and the
// canonical fallback used when a question cannot be answered.
package knowledge

import (
	"strings"
)

// FallbackAnswer is returned when no stored or predefined answer matches.
// Questions answered this way are flagged for admin review.
const FallbackAnswer = "I'm not sure about that — your question will be reviewed by an admin."

// FallbackMarker identifies fallback answers when listing unanswered
// questions for curation.
const FallbackMarker = "not sure"

// predefined is the canonical FAQ table. Keys are normalized questions.
var predefined = map[string]string{
	"how do i reset my password":        "Click 'Forgot Password' on the login page to reset your password.",
	"how to register":                   "Use your student ID to sign up on the registration page and create your password.",
	"where can i see my grades":         "Go to your student dashboard and click 'Results'.",
	"what is the registration deadline": "Registration closes at the end of Week 2 each semester.",
	"who do i contact for help":         "You can reach the student support team via email at support@cavendish.edu.zm.",
	"where is the finance office":       "The finance office is located on the main campus, ground floor, next to admissions.",
}

// Normalize trims surrounding whitespace and case-folds a question into the
// lookup key form under which answers are stored.
func Normalize(question string) string {
	return strings.ToLower(strings.TrimSpace(question))
}

// Lookup returns the predefined answer for a normalized question, if any.
func Lookup(normalized string) (string, bool) {
	answer, ok := predefined[normalized]
	return answer, ok
}

// IsFallback reports whether an answer is (or contains) the fallback text.
func IsFallback(answer string) bool {
	return strings.Contains(strings.ToLower(answer), FallbackMarker)
}
