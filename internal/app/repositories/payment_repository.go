package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mwila/registra/internal/app/models"
	"github.com/mwila/registra/internal/db"
	"github.com/mwila/registra/internal/pkg/apperrors"
	"github.com/mwila/registra/internal/pkg/dberrors"
)

// IPaymentRepository defines the interface for payment-related database operations
type IPaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Payment, error)
	GetByStudentID(ctx context.Context, studentID int64) ([]*models.Payment, error)
	GetByStatus(ctx context.Context, status models.PaymentStatus) ([]*models.Payment, error)
	Delete(ctx context.Context, id int64) error
	ApproveAndRegister(ctx context.Context, id int64) (*models.Payment, error)
	Reject(ctx context.Context, id int64) (*models.Payment, error)
	HasApprovedPayment(ctx context.Context, studentID int64) (bool, error)
}

// PaymentRepository handles database operations for payments
type PaymentRepository struct {
	db *pgxpool.Pool
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{db: db}
}

const paymentColumns = `
	id, student_id, slip_filename, status, description, submitted_date,
	approved_date, amount, method, reference, receipt_image`

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var p models.Payment
	err := row.Scan(
		&p.ID,
		&p.StudentID,
		&p.SlipFilename,
		&p.Status,
		&p.Description,
		&p.SubmittedDate,
		&p.ApprovedDate,
		&p.Amount,
		&p.Method,
		&p.Reference,
		&p.ReceiptImage,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new pending payment
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) (int64, error) {
	query := `
		INSERT INTO payments (
			student_id, slip_filename, status, description, amount, method, reference
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, submitted_date
	`

	err := r.db.QueryRow(ctx, query,
		payment.StudentID,
		payment.SlipFilename,
		models.PaymentPending,
		payment.Description,
		payment.Amount,
		payment.Method,
		payment.Reference,
	).Scan(&payment.ID, &payment.SubmittedDate)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "payments_reference_key") {
			return 0, apperrors.ErrReferenceAlreadyUsed
		}
		return 0, fmt.Errorf("error creating payment: %w", err)
	}

	payment.Status = models.PaymentPending
	return payment.ID, nil
}

// GetByID retrieves a payment by ID
func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*models.Payment, error) {
	query := `SELECT` + paymentColumns + ` FROM payments WHERE id = $1`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("error retrieving payment: %w", err)
	}
	return payment, nil
}

// GetByStudentID retrieves a student's payments, newest first
func (r *PaymentRepository) GetByStudentID(ctx context.Context, studentID int64) ([]*models.Payment, error) {
	query := `SELECT` + paymentColumns + ` FROM payments WHERE student_id = $1 ORDER BY submitted_date DESC`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing payments: %w", err)
	}
	defer rows.Close()

	return collectPayments(rows)
}

// GetByStatus retrieves all payments in a given status, newest first
func (r *PaymentRepository) GetByStatus(ctx context.Context, status models.PaymentStatus) ([]*models.Payment, error) {
	query, args, err := squirrel.Select(
		"id", "student_id", "slip_filename", "status", "description", "submitted_date",
		"approved_date", "amount", "method", "reference", "receipt_image",
	).
		From("payments").
		Where("status = ?", status).
		OrderBy("submitted_date DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building payments query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing payments: %w", err)
	}
	defer rows.Close()

	return collectPayments(rows)
}

func collectPayments(rows pgx.Rows) ([]*models.Payment, error) {
	var payments []*models.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning payment: %w", err)
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

// Delete removes a payment row
func (r *PaymentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPaymentNotFound
	}
	return nil
}

// ApproveAndRegister transitions a pending payment to approved and activates
// the student's registration in the same transaction. The status update is
// conditioned on the payment still being pending, so two admins racing on the
// same payment cannot both approve it. The registration upsert keeps exactly
// one row per student: a second approval re-activates the existing row.
func (r *PaymentRepository) ApproveAndRegister(ctx context.Context, id int64) (*models.Payment, error) {
	var payment *models.Payment

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		update := `
			UPDATE payments
			SET status = $1, approved_date = NOW()
			WHERE id = $2 AND status = $3
			RETURNING` + paymentColumns

		p, err := scanPayment(tx.QueryRow(ctx, update, models.PaymentApproved, id, models.PaymentPending))
		if err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("error approving payment: %w", err)
			}
			// Either the payment does not exist or it already left pending.
			var exists bool
			if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM payments WHERE id = $1)`, id).Scan(&exists); err != nil {
				return fmt.Errorf("error checking payment existence: %w", err)
			}
			if !exists {
				return apperrors.ErrPaymentNotFound
			}
			return apperrors.ErrPaymentNotPending
		}
		payment = p

		var registrationID int64
		err = tx.QueryRow(ctx,
			`SELECT id FROM registrations WHERE student_id = $1 ORDER BY id LIMIT 1`,
			p.StudentID).Scan(&registrationID)
		switch {
		case err == nil:
			if _, err := tx.Exec(ctx,
				`UPDATE registrations SET is_registered = TRUE WHERE id = $1`, registrationID); err != nil {
				return fmt.Errorf("error activating registration: %w", err)
			}
		case errors.Is(err, pgx.ErrNoRows):
			if _, err := tx.Exec(ctx,
				`INSERT INTO registrations (student_id, is_registered) VALUES ($1, TRUE)`, p.StudentID); err != nil {
				return fmt.Errorf("error creating registration: %w", err)
			}
		default:
			return fmt.Errorf("error looking up registration: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return payment, nil
}

// Reject transitions a pending payment to rejected. Like approval, the update
// is conditioned on the payment still being pending.
func (r *PaymentRepository) Reject(ctx context.Context, id int64) (*models.Payment, error) {
	update := `
		UPDATE payments
		SET status = $1
		WHERE id = $2 AND status = $3
		RETURNING` + paymentColumns

	payment, err := scanPayment(r.db.QueryRow(ctx, update, models.PaymentRejected, id, models.PaymentPending))
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("error rejecting payment: %w", err)
		}
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM payments WHERE id = $1)`, id).Scan(&exists); err != nil {
			return nil, fmt.Errorf("error checking payment existence: %w", err)
		}
		if !exists {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, apperrors.ErrPaymentNotPending
	}

	return payment, nil
}

// HasApprovedPayment reports whether a student has at least one approved payment
func (r *PaymentRepository) HasApprovedPayment(ctx context.Context, studentID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM payments WHERE student_id = $1 AND status = $2)`,
		studentID, models.PaymentApproved).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking approved payment: %w", err)
	}
	return exists, nil
}
