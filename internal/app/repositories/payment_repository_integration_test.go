//go:build integration

package repositories

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwila/registra/internal/app/migrations"
	"github.com/mwila/registra/internal/app/models"
	"github.com/mwila/registra/internal/pkg/apperrors"
)

// These tests run against a real database so the SQL side of the approval
// state machine is exercised, not just the service layer over fakes.
// Run with: go test -tags integration ./internal/app/repositories/ \
// with TEST_DATABASE_URL pointing at a disposable database.

func integrationPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, migrations.NewMigrator(pool).MigrateFromDirectory("../../../migrations"))

	// Child tables first so the foreign keys allow the deletes
	for _, table := range []string{
		"system_logs", "refresh_tokens", "registration_slips", "registrations",
		"payments", "chatbot_messages", "users", "students",
	} {
		_, err := pool.Exec(context.Background(), "DELETE FROM "+table)
		require.NoError(t, err)
	}

	return pool
}

func createTestPayment(t *testing.T, repo *PaymentRepository, studentID int64) *models.Payment {
	t.Helper()
	payment := &models.Payment{
		StudentID:    studentID,
		SlipFilename: "proof.pdf",
	}
	_, err := repo.Create(context.Background(), payment)
	require.NoError(t, err)
	return payment
}

func registrationRows(t *testing.T, pool *pgxpool.Pool, studentID int64) (count int, registered bool) {
	t.Helper()
	err := pool.QueryRow(context.Background(),
		`SELECT COUNT(*), COALESCE(BOOL_OR(is_registered), FALSE) FROM registrations WHERE student_id = $1`,
		studentID).Scan(&count, &registered)
	require.NoError(t, err)
	return count, registered
}

func TestApproveAndRegisterSQL(t *testing.T) {
	pool := integrationPool(t)
	ctx := context.Background()

	student, err := NewStudentRepository(pool).EnsureStudent(ctx, "20230901", "Integration Test")
	require.NoError(t, err)

	repo := NewPaymentRepository(pool)
	payment := createTestPayment(t, repo, student.ID)

	approved, err := repo.ApproveAndRegister(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentApproved, approved.Status)
	require.NotNil(t, approved.ApprovedDate)

	count, registered := registrationRows(t, pool, student.ID)
	assert.Equal(t, 1, count)
	assert.True(t, registered)

	// The conditional update makes a second approval a no-op failure
	_, err = repo.ApproveAndRegister(ctx, payment.ID)
	assert.True(t, errors.Is(err, apperrors.ErrPaymentNotPending))
}

func TestApproveSecondPaymentReusesRegistrationSQL(t *testing.T) {
	pool := integrationPool(t)
	ctx := context.Background()

	student, err := NewStudentRepository(pool).EnsureStudent(ctx, "20230902", "Integration Test")
	require.NoError(t, err)

	repo := NewPaymentRepository(pool)
	first := createTestPayment(t, repo, student.ID)
	second := createTestPayment(t, repo, student.ID)

	_, err = repo.ApproveAndRegister(ctx, first.ID)
	require.NoError(t, err)
	_, err = repo.ApproveAndRegister(ctx, second.ID)
	require.NoError(t, err)

	count, registered := registrationRows(t, pool, student.ID)
	assert.Equal(t, 1, count, "approvals converge on a single registration row")
	assert.True(t, registered)
}

func TestRejectSQL(t *testing.T) {
	pool := integrationPool(t)
	ctx := context.Background()

	student, err := NewStudentRepository(pool).EnsureStudent(ctx, "20230903", "Integration Test")
	require.NoError(t, err)

	repo := NewPaymentRepository(pool)
	payment := createTestPayment(t, repo, student.ID)

	rejected, err := repo.Reject(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentRejected, rejected.Status)

	// Rejection never touches registrations
	count, _ := registrationRows(t, pool, student.ID)
	assert.Equal(t, 0, count)

	// Rejected is terminal for both transitions
	_, err = repo.Reject(ctx, payment.ID)
	assert.True(t, errors.Is(err, apperrors.ErrPaymentNotPending))
	_, err = repo.ApproveAndRegister(ctx, payment.ID)
	assert.True(t, errors.Is(err, apperrors.ErrPaymentNotPending))
}

func TestApproveUnknownPaymentSQL(t *testing.T) {
	pool := integrationPool(t)

	repo := NewPaymentRepository(pool)
	_, err := repo.ApproveAndRegister(context.Background(), 999999)
	assert.True(t, errors.Is(err, apperrors.ErrPaymentNotFound))
}
