package dto

import (
	"time"

	"github.com/mwila/registra/internal/app/models"
)

// UploadPaymentRequest represents the multipart form fields accompanying a
// payment slip upload. The file itself arrives as form field "payment_slip".
type UploadPaymentRequest struct {
	StudentNumber string   `form:"student_number" binding:"required" example:"20230145"`
	Name          string   `form:"name" binding:"required" example:"Chileshe Mwila"`
	Description   string   `form:"description"`
	Amount        *float64 `form:"amount"`
	Method        string   `form:"method" example:"bank deposit"`
	Reference     string   `form:"reference" example:"DEP-99812"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID            int64      `json:"id" example:"1"`
	StudentID     int64      `json:"studentId" example:"5"`
	SlipFilename  string     `json:"slipFilename"`
	Status        string     `json:"status" example:"pending"`
	Description   *string    `json:"description,omitempty"`
	SubmittedDate time.Time  `json:"submittedDate"`
	ApprovedDate  *time.Time `json:"approvedDate,omitempty"`
	Amount        *float64   `json:"amount,omitempty"`
	Method        *string    `json:"method,omitempty"`
	Reference     *string    `json:"reference,omitempty"`
}

// NewPaymentResponse maps a payment model to its API representation
func NewPaymentResponse(p *models.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		StudentID:     p.StudentID,
		SlipFilename:  p.SlipFilename,
		Status:        string(p.Status),
		Description:   p.Description,
		SubmittedDate: p.SubmittedDate,
		ApprovedDate:  p.ApprovedDate,
		Amount:        p.Amount,
		Method:        p.Method,
		Reference:     p.Reference,
	}
}

// NewPaymentResponseList maps a slice of payments
func NewPaymentResponseList(payments []*models.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, NewPaymentResponse(p))
	}
	return out
}

// AdminDashboardResponse groups payments by status alongside all students
type AdminDashboardResponse struct {
	PendingPayments  []PaymentResponse `json:"pendingPayments"`
	ApprovedPayments []PaymentResponse `json:"approvedPayments"`
	RejectedPayments []PaymentResponse `json:"rejectedPayments"`
	Students         []*models.Student `json:"students"`
}
