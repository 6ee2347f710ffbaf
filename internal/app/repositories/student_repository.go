package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mwila/registra/internal/app/models"
	"github.com/mwila/registra/internal/pkg/apperrors"
)

// IStudentRepository defines the interface for student-related database operations
type IStudentRepository interface {
	EnsureStudent(ctx context.Context, studentNumber, name string) (*models.Student, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByStudentNumber(ctx context.Context, studentNumber string) (*models.Student, error)
	GetAll(ctx context.Context) ([]*models.Student, error)
}

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentColumns = `
	id, student_number, name, email, phone, program, faculty,
	intake_year, year_of_study, semester, created_at`

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.ID,
		&s.StudentNumber,
		&s.Name,
		&s.Email,
		&s.Phone,
		&s.Program,
		&s.Faculty,
		&s.IntakeYear,
		&s.YearOfStudy,
		&s.Semester,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// EnsureStudent creates a student row for the given student number if none
// exists yet and returns the row either way. The upsert is keyed on the
// natural student_number key so concurrent callers converge on one row.
func (r *StudentRepository) EnsureStudent(ctx context.Context, studentNumber, name string) (*models.Student, error) {
	insert := `
		INSERT INTO students (student_number, name)
		VALUES ($1, $2)
		ON CONFLICT ON CONSTRAINT students_student_number_key DO NOTHING
		RETURNING` + studentColumns

	student, err := scanStudent(r.db.QueryRow(ctx, insert, studentNumber, name))
	if err == nil {
		return student, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("error ensuring student: %w", err)
	}

	// Row already existed; the insert returned nothing.
	return r.GetByStudentNumber(ctx, studentNumber)
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `SELECT` + studentColumns + ` FROM students WHERE id = $1`

	student, err := scanStudent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

// GetByStudentNumber retrieves a student by their student number
func (r *StudentRepository) GetByStudentNumber(ctx context.Context, studentNumber string) (*models.Student, error) {
	query := `SELECT` + studentColumns + ` FROM students WHERE student_number = $1`

	student, err := scanStudent(r.db.QueryRow(ctx, query, studentNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

// GetAll retrieves all students ordered by student number
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	query, args, err := squirrel.Select(
		"id", "student_number", "name", "email", "phone", "program", "faculty",
		"intake_year", "year_of_study", "semester", "created_at",
	).
		From("students").
		OrderBy("student_number ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building students query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student: %w", err)
		}
		students = append(students, student)
	}
	return students, rows.Err()
}
