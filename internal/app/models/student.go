package models

import (
	"time"
)

// Student defines the student model based on the 'students' table
type Student struct {
	ID            int64     `json:"id" db:"id" example:"1"`                             // Unique identifier for the student record
	StudentNumber string    `json:"studentNumber" db:"student_number" example:"20230145"` // Student's unique registration number
	Name          string    `json:"name" db:"name" example:"Chileshe Mwila"`            // Full name
	Email         *string   `json:"email,omitempty" db:"email"`                         // Contact email (nullable)
	Phone         *string   `json:"phone,omitempty" db:"phone"`                         // Contact phone (nullable)
	Program       *string   `json:"program,omitempty" db:"program"`                     // Enrolled program (nullable)
	Faculty       *string   `json:"faculty,omitempty" db:"faculty"`                     // Faculty name (nullable)
	IntakeYear    *int      `json:"intakeYear,omitempty" db:"intake_year"`              // Year of intake (nullable)
	YearOfStudy   *int      `json:"yearOfStudy,omitempty" db:"year_of_study"`           // Current year of study (nullable)
	Semester      *string   `json:"semester,omitempty" db:"semester"`                   // Current semester (nullable)
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}
