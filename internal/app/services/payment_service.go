package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mwila/registra/internal/app/models"
	"github.com/mwila/registra/internal/app/models/dto"
	"github.com/mwila/registra/internal/app/repositories"
	"github.com/mwila/registra/internal/pkg/apperrors"
	"github.com/mwila/registra/internal/pkg/filestorage"
	"github.com/mwila/registra/internal/pkg/helpers"
	"github.com/mwila/registra/internal/pkg/validation"
)

// AuditContext carries the acting admin's identity for audit entries
type AuditContext struct {
	AdminID   int64
	IPAddress string
	UserAgent string
}

// PaymentService handles payment submission and the approval workflow
type PaymentService struct {
	paymentRepo   repositories.IPaymentRepository
	studentRepo   repositories.IStudentRepository
	systemLogRepo repositories.ISystemLogRepository
	storage       filestorage.FileStorage
	logger        zerolog.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo repositories.IPaymentRepository,
	studentRepo repositories.IStudentRepository,
	systemLogRepo repositories.ISystemLogRepository,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo:   paymentRepo,
		studentRepo:   studentRepo,
		systemLogRepo: systemLogRepo,
		storage:       storage,
		logger:        logger,
	}
}

// Upload stores a payment proof file and records a pending payment.
// The student profile is created on first contact if it does not exist yet.
func (s *PaymentService) Upload(ctx context.Context, req *dto.UploadPaymentRequest, file *multipart.FileHeader) (*models.Payment, error) {
	if file == nil || file.Filename == "" {
		return nil, apperrors.NewBadRequestError("A payment slip file is required")
	}
	if !validation.IsAllowedUploadFile(file.Filename) {
		return nil, apperrors.ErrInvalidFileType
	}

	studentNumber := strings.TrimSpace(req.StudentNumber)
	if !validation.IsValidStudentNumber(studentNumber) {
		return nil, apperrors.ErrInvalidStudentNumber
	}

	student, err := s.studentRepo.EnsureStudent(ctx, studentNumber, strings.TrimSpace(req.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to ensure student profile: %w", err)
	}

	storedName, err := s.storage.SaveFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to store payment slip: %w", err)
	}

	payment := &models.Payment{
		StudentID:    student.ID,
		SlipFilename: storedName,
		Status:       models.PaymentPending,
		Description:  helpers.NullableString(strings.TrimSpace(req.Description)),
		Amount:       req.Amount,
		Method:       helpers.NullableString(strings.TrimSpace(req.Method)),
		Reference:    helpers.NullableString(strings.TrimSpace(req.Reference)),
	}

	if _, err := s.paymentRepo.Create(ctx, payment); err != nil {
		if delErr := s.storage.DeleteFile(storedName); delErr != nil {
			s.logger.Warn().Err(delErr).Str("file", storedName).Msg("Failed to remove orphaned upload")
		}
		return nil, err
	}

	s.logger.Info().
		Int64("paymentId", payment.ID).
		Str("studentNumber", studentNumber).
		Msg("Payment slip uploaded")

	return payment, nil
}

// ListByStudent returns a student's own payments, newest first
func (s *PaymentService) ListByStudent(ctx context.Context, studentID int64) ([]*models.Payment, error) {
	return s.paymentRepo.GetByStudentID(ctx, studentID)
}

// DeleteOwn removes a student's payment record along with its uploaded file
func (s *PaymentService) DeleteOwn(ctx context.Context, studentID, paymentID int64) error {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return err
	}
	if payment.StudentID != studentID {
		return apperrors.ErrPermissionDenied
	}

	if err := s.paymentRepo.Delete(ctx, paymentID); err != nil {
		return err
	}

	if err := s.storage.DeleteFile(payment.SlipFilename); err != nil {
		s.logger.Warn().Err(err).Str("file", payment.SlipFilename).Msg("Failed to remove payment slip file")
	}

	s.logger.Info().Int64("paymentId", paymentID).Int64("studentId", studentID).Msg("Payment deleted by student")
	return nil
}

// Approve marks a pending payment approved and activates the student's
// registration in the same transaction
func (s *PaymentService) Approve(ctx context.Context, paymentID int64, audit AuditContext) (*models.Payment, error) {
	payment, err := s.paymentRepo.ApproveAndRegister(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, audit, "approve_payment",
		fmt.Sprintf("Approved payment %d for student %d", payment.ID, payment.StudentID))

	s.logger.Info().
		Int64("paymentId", payment.ID).
		Int64("studentId", payment.StudentID).
		Int64("adminId", audit.AdminID).
		Msg("Payment approved")

	return payment, nil
}

// Reject marks a pending payment rejected. Rejection has no side effects on
// registrations or slips.
func (s *PaymentService) Reject(ctx context.Context, paymentID int64, audit AuditContext) (*models.Payment, error) {
	payment, err := s.paymentRepo.Reject(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, audit, "reject_payment",
		fmt.Sprintf("Rejected payment %d for student %d", payment.ID, payment.StudentID))

	s.logger.Info().
		Int64("paymentId", payment.ID).
		Int64("studentId", payment.StudentID).
		Int64("adminId", audit.AdminID).
		Msg("Payment rejected")

	return payment, nil
}

// ResolveStudentFile checks that the named upload belongs to one of the
// student's payments before handing back its storage path
func (s *PaymentService) ResolveStudentFile(ctx context.Context, studentID int64, filename string) (string, error) {
	payments, err := s.paymentRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return "", err
	}
	for _, p := range payments {
		if p.SlipFilename == filename {
			return s.storage.FullPath(filename), nil
		}
		if p.ReceiptImage != nil && *p.ReceiptImage == filename {
			return s.storage.FullPath(filename), nil
		}
	}
	return "", apperrors.ErrResourceNotFound
}

// ResolveFile hands back the storage path of any upload. Admin use only.
func (s *PaymentService) ResolveFile(_ context.Context, filename string) (string, error) {
	if !s.storage.Exists(filename) {
		return "", apperrors.ErrResourceNotFound
	}
	return s.storage.FullPath(filename), nil
}

// recordAudit appends an audit entry. Failures are logged, not propagated;
// the decision itself has already been committed.
func (s *PaymentService) recordAudit(ctx context.Context, audit AuditContext, action, description string) {
	entry := &models.SystemLog{
		AdminID:     &audit.AdminID,
		Action:      action,
		Description: helpers.NullableString(description),
		IPAddress:   helpers.NullableString(audit.IPAddress),
		UserAgent:   helpers.NullableString(audit.UserAgent),
	}
	if err := s.systemLogRepo.Insert(ctx, entry); err != nil {
		s.logger.Error().Err(err).Str("action", action).Msg("Failed to record audit entry")
	}
}
