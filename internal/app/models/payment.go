package models

import (
	"time"
)

// Payment defines the payment model based on the 'payments' table.
// Status moves pending -> approved or pending -> rejected; both are terminal.
type Payment struct {
	ID            int64         `json:"id" db:"id" example:"1"`
	StudentID     int64         `json:"studentId" db:"student_id" example:"5"`
	SlipFilename  string        `json:"slipFilename" db:"slip_filename" example:"3f1c9a2e.pdf"` // Stored filename of the uploaded proof
	Status        PaymentStatus `json:"status" db:"status" example:"pending"`
	Description   *string       `json:"description,omitempty" db:"description"`
	SubmittedDate time.Time     `json:"submittedDate" db:"submitted_date"`
	ApprovedDate  *time.Time    `json:"approvedDate,omitempty" db:"approved_date"` // Set only when the payment is approved
	Amount        *float64      `json:"amount,omitempty" db:"amount"`
	Method        *string       `json:"method,omitempty" db:"method"`
	Reference     *string       `json:"reference,omitempty" db:"reference"` // Bank reference, unique when present
	ReceiptImage  *string       `json:"receiptImage,omitempty" db:"receipt_image"`

	Student *Student `json:"student,omitempty"` // Relation, no db tag
}
