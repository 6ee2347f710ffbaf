package models

import (
	"time"
)

// SystemLog defines an append-only audit record based on the 'system_logs'
// table. Rows are only ever inserted.
type SystemLog struct {
	ID          int64     `json:"id" db:"id" example:"1"`
	AdminID     *int64    `json:"adminId,omitempty" db:"admin_id"` // Acting admin user (nullable)
	Action      string    `json:"action" db:"action" example:"approve_payment"`
	Description *string   `json:"description,omitempty" db:"description"`
	IPAddress   *string   `json:"ipAddress,omitempty" db:"ip_address"`
	UserAgent   *string   `json:"userAgent,omitempty" db:"user_agent"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
