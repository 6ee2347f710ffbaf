package models

import (
	"time"
)

// Registration defines the registration model based on the 'registrations' table.
// At most one is_registered=true row exists per student; approval of further
// payments re-activates the existing row instead of inserting another.
type Registration struct {
	ID               int64     `json:"id" db:"id" example:"1"`
	StudentID        int64     `json:"studentId" db:"student_id" example:"5"`
	Semester         string    `json:"semester" db:"semester" example:"Current Semester"`
	AcademicYear     *string   `json:"academicYear,omitempty" db:"academic_year"`
	RegistrationDate time.Time `json:"registrationDate" db:"registration_date"`
	IsRegistered     bool      `json:"isRegistered" db:"is_registered" example:"true"`
}

// RegistrationSlip defines the slip model based on the 'registration_slips' table.
// Issued at most once per student, only after an approved payment exists.
type RegistrationSlip struct {
	ID           int64     `json:"id" db:"id" example:"1"`
	SlipNumber   string    `json:"slipNumber" db:"slip_number" example:"RS000005"` // Derived from the student id
	StudentID    int64     `json:"studentId" db:"student_id" example:"5"`
	IssueDate    time.Time `json:"issueDate" db:"issue_date"`
	PDFFilename  *string   `json:"pdfFilename,omitempty" db:"pdf_filename"`
	CreatedBy    *string   `json:"createdBy,omitempty" db:"created_by"`
	CreatedDate  time.Time `json:"createdDate" db:"created_date"`
	AcademicYear *string   `json:"academicYear,omitempty" db:"academic_year"`
	Semester     *string   `json:"semester,omitempty" db:"semester"`
	ProgramName  *string   `json:"programName,omitempty" db:"program_name"`
	FacultyName  *string   `json:"facultyName,omitempty" db:"faculty_name"`

	Student *Student `json:"student,omitempty"` // Relation, no db tag
}
