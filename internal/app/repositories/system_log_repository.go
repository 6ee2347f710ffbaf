package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mwila/registra/internal/app/models"
)

// ISystemLogRepository defines the interface for audit log operations
type ISystemLogRepository interface {
	Insert(ctx context.Context, entry *models.SystemLog) error
	List(ctx context.Context, limit int) ([]*models.SystemLog, error)
}

// SystemLogRepository handles database operations for the audit log
type SystemLogRepository struct {
	db *pgxpool.Pool
}

// NewSystemLogRepository creates a new SystemLogRepository
func NewSystemLogRepository(db *pgxpool.Pool) *SystemLogRepository {
	return &SystemLogRepository{db: db}
}

// Insert appends an audit entry
func (r *SystemLogRepository) Insert(ctx context.Context, entry *models.SystemLog) error {
	query := `
		INSERT INTO system_logs (admin_id, action, description, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		entry.AdminID,
		entry.Action,
		entry.Description,
		entry.IPAddress,
		entry.UserAgent,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting system log: %w", err)
	}
	return nil
}

// List retrieves the most recent audit entries
func (r *SystemLogRepository) List(ctx context.Context, limit int) ([]*models.SystemLog, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, admin_id, action, description, ip_address, user_agent, created_at
		FROM system_logs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing system logs: %w", err)
	}
	defer rows.Close()

	var entries []*models.SystemLog
	for rows.Next() {
		var e models.SystemLog
		err := rows.Scan(&e.ID, &e.AdminID, &e.Action, &e.Description, &e.IPAddress, &e.UserAgent, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning system log: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
