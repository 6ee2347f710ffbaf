package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mwila/registra/internal/app/models"
	"github.com/mwila/registra/internal/pkg/apperrors"
	"github.com/mwila/registra/internal/pkg/dberrors"
)

// ISlipRepository defines the interface for registration slip operations
type ISlipRepository interface {
	Create(ctx context.Context, slip *models.RegistrationSlip) (int64, error)
	GetByStudentID(ctx context.Context, studentID int64) (*models.RegistrationSlip, error)
	GetAll(ctx context.Context) ([]*models.RegistrationSlip, error)
}

// SlipRepository handles database operations for registration slips
type SlipRepository struct {
	db *pgxpool.Pool
}

// NewSlipRepository creates a new SlipRepository
func NewSlipRepository(db *pgxpool.Pool) *SlipRepository {
	return &SlipRepository{db: db}
}

const slipColumns = `
	id, slip_number, student_id, issue_date, pdf_filename, created_by,
	created_date, academic_year, semester, program_name, faculty_name`

func scanSlip(row pgx.Row) (*models.RegistrationSlip, error) {
	var s models.RegistrationSlip
	err := row.Scan(
		&s.ID,
		&s.SlipNumber,
		&s.StudentID,
		&s.IssueDate,
		&s.PDFFilename,
		&s.CreatedBy,
		&s.CreatedDate,
		&s.AcademicYear,
		&s.Semester,
		&s.ProgramName,
		&s.FacultyName,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new registration slip. The per-student unique constraint
// backs the at-most-one-slip invariant under concurrent requests.
func (r *SlipRepository) Create(ctx context.Context, slip *models.RegistrationSlip) (int64, error) {
	query := `
		INSERT INTO registration_slips (
			slip_number, student_id, issue_date, created_by,
			academic_year, semester, program_name, faculty_name
		)
		VALUES ($1, $2, NOW(), $3, $4, $5, $6, $7)
		RETURNING id, issue_date, created_date
	`

	err := r.db.QueryRow(ctx, query,
		slip.SlipNumber,
		slip.StudentID,
		slip.CreatedBy,
		slip.AcademicYear,
		slip.Semester,
		slip.ProgramName,
		slip.FacultyName,
	).Scan(&slip.ID, &slip.IssueDate, &slip.CreatedDate)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "registration_slips_student_id_key") ||
			dberrors.IsDuplicateConstraintError(err, "registration_slips_slip_number_key") {
			return 0, apperrors.ErrSlipAlreadyExists
		}
		return 0, fmt.Errorf("error creating registration slip: %w", err)
	}

	return slip.ID, nil
}

// GetByStudentID retrieves a student's slip, or nil when none has been issued
func (r *SlipRepository) GetByStudentID(ctx context.Context, studentID int64) (*models.RegistrationSlip, error) {
	query := `SELECT` + slipColumns + ` FROM registration_slips WHERE student_id = $1`

	slip, err := scanSlip(r.db.QueryRow(ctx, query, studentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving registration slip: %w", err)
	}
	return slip, nil
}

// GetAll retrieves all slips with their students' names, newest first
func (r *SlipRepository) GetAll(ctx context.Context) ([]*models.RegistrationSlip, error) {
	query := `
		SELECT
			rs.id, rs.slip_number, rs.student_id, rs.issue_date, rs.pdf_filename,
			rs.created_by, rs.created_date, rs.academic_year, rs.semester,
			rs.program_name, rs.faculty_name,
			s.student_number, s.name
		FROM registration_slips rs
		JOIN students s ON rs.student_id = s.id
		ORDER BY rs.issue_date DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing registration slips: %w", err)
	}
	defer rows.Close()

	var slips []*models.RegistrationSlip
	for rows.Next() {
		var s models.RegistrationSlip
		var student models.Student
		err := rows.Scan(
			&s.ID,
			&s.SlipNumber,
			&s.StudentID,
			&s.IssueDate,
			&s.PDFFilename,
			&s.CreatedBy,
			&s.CreatedDate,
			&s.AcademicYear,
			&s.Semester,
			&s.ProgramName,
			&s.FacultyName,
			&student.StudentNumber,
			&student.Name,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning registration slip: %w", err)
		}
		student.ID = s.StudentID
		s.Student = &student
		slips = append(slips, &s)
	}
	return slips, rows.Err()
}
