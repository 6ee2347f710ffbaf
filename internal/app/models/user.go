package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID               int64      `json:"id" db:"id" example:"1"`                                  // Unique identifier for the user
	Username         string     `json:"username" db:"username" example:"20230145"`               // Unique login name (students use their student number)
	Email            string     `json:"email" db:"email" example:"20230145@cavendish.ac.zm"`     // User's email address
	Password         string     `json:"-" db:"password"`                                         // User's hashed password (excluded from JSON)
	RoleType         RoleType   `json:"roleType" db:"role_type" example:"student"`               // User's role (student or admin)
	StudentID        *int64     `json:"studentId,omitempty" db:"student_id"`                     // Linked student profile (only when role=student)
	ResetToken       *string    `json:"-" db:"reset_token"`                                      // Active password reset token (nullable)
	ResetTokenExpiry *time.Time `json:"-" db:"reset_token_expiry"`                               // Expiry of the reset token (nullable)
	CreatedAt        time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`
	LastLoginAt      *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
}
