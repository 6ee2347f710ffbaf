package dto

import (
	"time"

	"github.com/mwila/registra/internal/app/models"
)

// RegistrationSlipResponse represents an issued registration slip
type RegistrationSlipResponse struct {
	ID           int64     `json:"id" example:"1"`
	SlipNumber   string    `json:"slipNumber" example:"RS000005"`
	StudentID    int64     `json:"studentId" example:"5"`
	StudentName  string    `json:"studentName,omitempty"`
	IssueDate    time.Time `json:"issueDate"`
	CreatedBy    *string   `json:"createdBy,omitempty"`
	AcademicYear *string   `json:"academicYear,omitempty"`
	Semester     *string   `json:"semester,omitempty"`
}

// NewRegistrationSlipResponse maps a slip model to its API representation
func NewRegistrationSlipResponse(slip *models.RegistrationSlip) RegistrationSlipResponse {
	resp := RegistrationSlipResponse{
		ID:           slip.ID,
		SlipNumber:   slip.SlipNumber,
		StudentID:    slip.StudentID,
		IssueDate:    slip.IssueDate,
		CreatedBy:    slip.CreatedBy,
		AcademicYear: slip.AcademicYear,
		Semester:     slip.Semester,
	}
	if slip.Student != nil {
		resp.StudentName = slip.Student.Name
	}
	return resp
}

// StudentDetailResponse is the admin view of one student with history
type StudentDetailResponse struct {
	Student          *models.Student           `json:"student"`
	Payments         []PaymentResponse         `json:"payments"`
	Registration     *models.Registration      `json:"registration,omitempty"`
	RegistrationSlip *RegistrationSlipResponse `json:"registrationSlip,omitempty"`
}
