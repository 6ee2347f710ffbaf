package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAllowedUploadFile(t *testing.T) {
	assert.True(t, IsAllowedUploadFile("slip.pdf"))
	assert.True(t, IsAllowedUploadFile("PHOTO.JPG"))
	assert.True(t, IsAllowedUploadFile("receipt.jpeg"))
	assert.True(t, IsAllowedUploadFile("scan.png"))
	assert.True(t, IsAllowedUploadFile("scan.gif"))

	assert.False(t, IsAllowedUploadFile("malware.exe"))
	assert.False(t, IsAllowedUploadFile("archive.pdf.zip"))
	assert.False(t, IsAllowedUploadFile("noextension"))
	assert.False(t, IsAllowedUploadFile(""))
}

func TestIsValidStudentNumber(t *testing.T) {
	assert.True(t, IsValidStudentNumber("20230145"))
	assert.True(t, IsValidStudentNumber("CAV2023"))
	assert.True(t, IsValidStudentNumber("abcd"))

	assert.False(t, IsValidStudentNumber("abc"))
	assert.False(t, IsValidStudentNumber("has space"))
	assert.False(t, IsValidStudentNumber("with-dash"))
	assert.False(t, IsValidStudentNumber(""))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("student@cavendish.ac.zm"))
	assert.True(t, IsValidEmail("First.Last@example.com"))

	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("missing@domain"))
}
