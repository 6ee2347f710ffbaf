package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mwila/registra/internal/app/models"
	"github.com/mwila/registra/internal/app/repositories"
	"github.com/mwila/registra/internal/pkg/apperrors"
	"github.com/mwila/registra/internal/pkg/helpers"
)

// RegistrationService handles registration slip issuance
type RegistrationService struct {
	slipRepo         repositories.ISlipRepository
	paymentRepo      repositories.IPaymentRepository
	studentRepo      repositories.IStudentRepository
	registrationRepo repositories.IRegistrationRepository
	systemLogRepo    repositories.ISystemLogRepository
	logger           zerolog.Logger
}

// NewRegistrationService creates a new RegistrationService
func NewRegistrationService(
	slipRepo repositories.ISlipRepository,
	paymentRepo repositories.IPaymentRepository,
	studentRepo repositories.IStudentRepository,
	registrationRepo repositories.IRegistrationRepository,
	systemLogRepo repositories.ISystemLogRepository,
	logger zerolog.Logger,
) *RegistrationService {
	return &RegistrationService{
		slipRepo:         slipRepo,
		paymentRepo:      paymentRepo,
		studentRepo:      studentRepo,
		registrationRepo: registrationRepo,
		systemLogRepo:    systemLogRepo,
		logger:           logger,
	}
}

// SlipNumber derives the slip number from the student id
func SlipNumber(studentID int64) string {
	return fmt.Sprintf("RS%06d", studentID)
}

// IssueSlip creates a registration slip for a student who has at least one
// approved payment. Issuing twice is not an error; the existing slip comes
// back with created=false so callers can report it as already issued.
func (s *RegistrationService) IssueSlip(ctx context.Context, studentID int64, audit AuditContext) (*models.RegistrationSlip, bool, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, false, err
	}

	approved, err := s.paymentRepo.HasApprovedPayment(ctx, studentID)
	if err != nil {
		return nil, false, err
	}
	if !approved {
		return nil, false, apperrors.ErrNoApprovedPayment
	}

	existing, err := s.slipRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	var academicYear, semester *string
	reg, err := s.registrationRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, false, err
	}
	if reg != nil {
		academicYear = reg.AcademicYear
		semester = helpers.NullableString(reg.Semester)
	}

	createdBy := fmt.Sprintf("admin:%d", audit.AdminID)
	slip := &models.RegistrationSlip{
		SlipNumber:   SlipNumber(studentID),
		StudentID:    studentID,
		CreatedBy:    &createdBy,
		AcademicYear: academicYear,
		Semester:     semester,
		ProgramName:  student.Program,
		FacultyName:  student.Faculty,
	}

	if _, err := s.slipRepo.Create(ctx, slip); err != nil {
		if errors.Is(err, apperrors.ErrSlipAlreadyExists) {
			// Lost a race with a concurrent issue; hand back the winner
			winner, getErr := s.slipRepo.GetByStudentID(ctx, studentID)
			if getErr == nil && winner != nil {
				return winner, false, nil
			}
		}
		return nil, false, err
	}

	s.recordAudit(ctx, audit, "issue_slip",
		fmt.Sprintf("Issued registration slip %s for student %d", slip.SlipNumber, studentID))

	s.logger.Info().
		Str("slipNumber", slip.SlipNumber).
		Int64("studentId", studentID).
		Msg("Registration slip issued")

	return slip, true, nil
}

// ListSlips returns all issued slips with their students' names
func (s *RegistrationService) ListSlips(ctx context.Context) ([]*models.RegistrationSlip, error) {
	return s.slipRepo.GetAll(ctx)
}

// GetStudentSlip returns a student's slip, or nil when none has been issued
func (s *RegistrationService) GetStudentSlip(ctx context.Context, studentID int64) (*models.RegistrationSlip, error) {
	return s.slipRepo.GetByStudentID(ctx, studentID)
}

func (s *RegistrationService) recordAudit(ctx context.Context, audit AuditContext, action, description string) {
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
