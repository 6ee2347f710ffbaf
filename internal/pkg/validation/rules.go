package validation

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// Student number pattern - 4 to 20 alphanumeric characters
	StudentNumberPattern = `^[A-Za-z0-9]{4,20}$`

	// Password min length
	PasswordMinLength = 8
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email         *regexp.Regexp
	StudentNumber *regexp.Regexp
}{
	Email:         regexp.MustCompile(EmailPattern),
	StudentNumber: regexp.MustCompile(StudentNumberPattern),
}

// allowedUploadExtensions lists the accepted payment slip file types
var allowedUploadExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".pdf":  true,
}

// IsAllowedUploadFile reports whether the filename carries an accepted
// extension for payment slip uploads.
func IsAllowedUploadFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return allowedUploadExtensions[ext]
}

// IsValidStudentNumber reports whether the value matches the student number
// format.
func IsValidStudentNumber(value string) bool {
	return CompiledPatterns.StudentNumber.MatchString(value)
}

// IsValidEmail reports whether the value looks like an email address.
func IsValidEmail(value string) bool {
	return CompiledPatterns.Email.MatchString(strings.ToLower(value))
}
