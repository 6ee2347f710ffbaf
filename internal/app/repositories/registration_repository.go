package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mwila/registra/internal/app/models"
)

// IRegistrationRepository defines the interface for registration reads
type IRegistrationRepository interface {
	GetByStudentID(ctx context.Context, studentID int64) (*models.Registration, error)
}

// RegistrationRepository handles database operations for registrations.
// Registration writes happen inside the payment approval transaction
// (PaymentRepository.ApproveAndRegister); this repository covers reads.
type RegistrationRepository struct {
	db *pgxpool.Pool
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(db *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// GetByStudentID retrieves a student's registration record, or nil when the
// student has never been registered.
func (r *RegistrationRepository) GetByStudentID(ctx context.Context, studentID int64) (*models.Registration, error) {
	query := `
		SELECT id, student_id, semester, academic_year, registration_date, is_registered
		FROM registrations
		WHERE student_id = $1
		ORDER BY id
		LIMIT 1
	`

	var reg models.Registration
	err := r.db.QueryRow(ctx, query, studentID).Scan(
		&reg.ID,
		&reg.StudentID,
		&reg.Semester,
		&reg.AcademicYear,
		&reg.RegistrationDate,
		&reg.IsRegistered,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving registration: %w", err)
	}
	return &reg, nil
}
