package services

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwila/registra/internal/app/models"
	"github.com/mwila/registra/internal/app/models/dto"
	"github.com/mwila/registra/internal/pkg/apperrors"
)

type paymentFixture struct {
	svc      *PaymentService
	payments *fakePaymentRepo
	students *fakeStudentRepo
	audits   *fakeSystemLogRepo
	storage  *fakeStorage
}

func newPaymentFixture() *paymentFixture {
	payments := newFakePaymentRepo()
	students := newFakeStudentRepo()
	audits := &fakeSystemLogRepo{}
	storage := newFakeStorage()
	return &paymentFixture{
		svc:      NewPaymentService(payments, students, audits, storage, zerolog.Nop()),
		payments: payments,
		students: students,
		audits:   audits,
		storage:  storage,
	}
}

func uploadRequest() *dto.UploadPaymentRequest {
	return &dto.UploadPaymentRequest{
		StudentNumber: "20230145",
		Name:          "Chileshe Mwila",
		Description:   "Semester one tuition",
		Method:        "bank deposit",
		Reference:     "DEP-99812",
	}
}

func TestUploadCreatesPendingPayment(t *testing.T) {
	f := newPaymentFixture()

	payment, err := f.svc.Upload(context.Background(), uploadRequest(),
		&multipart.FileHeader{Filename: "proof.pdf"})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentPending, payment.Status)
	assert.Nil(t, payment.ApprovedDate)
	assert.True(t, f.storage.Exists(payment.SlipFilename))

	student, err := f.students.GetByStudentNumber(context.Background(), "20230145")
	require.NoError(t, err)
	assert.Equal(t, student.ID, payment.StudentID)
}

func TestUploadRejectsUnsupportedFileType(t *testing.T) {
	f := newPaymentFixture()

	_, err := f.svc.Upload(context.Background(), uploadRequest(),
		&multipart.FileHeader{Filename: "proof.exe"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidFileType))
	assert.Empty(t, f.payments.payments)
}

func TestUploadRequiresFile(t *testing.T) {
	f := newPaymentFixture()

	_, err := f.svc.Upload(context.Background(), uploadRequest(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrBadRequest))
}

func TestUploadReusesExistingStudentProfile(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()

	first, err := f.svc.Upload(ctx, uploadRequest(), &multipart.FileHeader{Filename: "a.png"})
	require.NoError(t, err)

	req := uploadRequest()
	req.Reference = "DEP-99813"
	second, err := f.svc.Upload(ctx, req, &multipart.FileHeader{Filename: "b.png"})
	require.NoError(t, err)

	assert.Equal(t, first.StudentID, second.StudentID)
	assert.Len(t, f.students.students, 1)
}

func TestApproveActivatesRegistration(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()

	payment, err := f.svc.Upload(ctx, uploadRequest(), &multipart.FileHeader{Filename: "proof.jpg"})
	require.NoError(t, err)

	approved, err := f.svc.Approve(ctx, payment.ID, AuditContext{AdminID: 9})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentApproved, approved.Status)
	require.NotNil(t, approved.ApprovedDate)
	assert.True(t, f.payments.registrations[payment.StudentID], "approval must activate the registration")

	require.Len(t, f.audits.entries, 1)
	assert.Equal(t, "approve_payment", f.audits.entries[0].Action)
	assert.Equal(t, int64(9), *f.audits.entries[0].AdminID)
}

func TestApproveIsTerminal(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()

	payment, err := f.svc.Upload(ctx, uploadRequest(), &multipart.FileHeader{Filename: "proof.jpg"})
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, payment.ID, AuditContext{AdminID: 9})
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, payment.ID, AuditContext{AdminID: 9})
	assert.True(t, errors.Is(err, apperrors.ErrPaymentNotPending))

	_, err = f.svc.Reject(ctx, payment.ID, AuditContext{AdminID: 9})
	assert.True(t, errors.Is(err, apperrors.ErrPaymentNotPending))
}

func TestRejectHasNoRegistrationSideEffect(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()

	payment, err := f.svc.Upload(ctx, uploadRequest(), &multipart.FileHeader{Filename: "proof.gif"})
	require.NoError(t, err)

	rejected, err := f.svc.Reject(ctx, payment.ID, AuditContext{AdminID: 4})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentRejected, rejected.Status)
	assert.Nil(t, rejected.ApprovedDate)
	assert.False(t, f.payments.registrations[payment.StudentID])

	require.Len(t, f.audits.entries, 1)
	assert.Equal(t, "reject_payment", f.audits.entries[0].Action)
}

func TestApproveMissingPayment(t *testing.T) {
	f := newPaymentFixture()

	_, err := f.svc.Approve(context.Background(), 42, AuditContext{AdminID: 1})
	assert.True(t, errors.Is(err, apperrors.ErrPaymentNotFound))
	assert.Empty(t, f.audits.entries, "failed decisions leave no audit entry")
}

func TestDeleteOwnRemovesFile(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()

	payment, err := f.svc.Upload(ctx, uploadRequest(), &multipart.FileHeader{Filename: "proof.png"})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteOwn(ctx, payment.StudentID, payment.ID))
	assert.False(t, f.storage.Exists(payment.SlipFilename))

	_, err = f.payments.GetByID(ctx, payment.ID)
	assert.True(t, errors.Is(err, apperrors.ErrPaymentNotFound))
}

func TestDeleteOwnRejectsForeignPayment(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()

	payment, err := f.svc.Upload(ctx, uploadRequest(), &multipart.FileHeader{Filename: "proof.png"})
	require.NoError(t, err)

	err = f.svc.DeleteOwn(ctx, payment.StudentID+1, payment.ID)
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))
	assert.True(t, f.storage.Exists(payment.SlipFilename))
}

func TestResolveStudentFile(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()

	payment, err := f.svc.Upload(ctx, uploadRequest(), &multipart.FileHeader{Filename: "proof.png"})
	require.NoError(t, err)

	path, err := f.svc.ResolveStudentFile(ctx, payment.StudentID, payment.SlipFilename)
	require.NoError(t, err)
	assert.Contains(t, path, payment.SlipFilename)

	_, err = f.svc.ResolveStudentFile(ctx, payment.StudentID+1, payment.SlipFilename)
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))
}
