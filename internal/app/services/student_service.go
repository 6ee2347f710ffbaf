package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mwila/registra/internal/app/models"
	"github.com/mwila/registra/internal/app/models/dto"
	"github.com/mwila/registra/internal/app/repositories"
)

// StudentService serves the admin views over students and their history
type StudentService struct {
	studentRepo      repositories.IStudentRepository
	paymentRepo      repositories.IPaymentRepository
	registrationRepo repositories.IRegistrationRepository
	slipRepo         repositories.ISlipRepository
	systemLogRepo    repositories.ISystemLogRepository
	logger           zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(
	studentRepo repositories.IStudentRepository,
	paymentRepo repositories.IPaymentRepository,
	registrationRepo repositories.IRegistrationRepository,
	slipRepo repositories.ISlipRepository,
	systemLogRepo repositories.ISystemLogRepository,
	logger zerolog.Logger,
) *StudentService {
	return &StudentService{
		studentRepo:      studentRepo,
		paymentRepo:      paymentRepo,
		registrationRepo: registrationRepo,
		slipRepo:         slipRepo,
		systemLogRepo:    systemLogRepo,
		logger:           logger,
	}
}

// Dashboard assembles the admin overview: payments grouped by status plus
// the full student roster
func (s *StudentService) Dashboard(ctx context.Context) (*dto.AdminDashboardResponse, error) {
	pending, err := s.paymentRepo.GetByStatus(ctx, models.PaymentPending)
	if err != nil {
		return nil, err
	}
	approved, err := s.paymentRepo.GetByStatus(ctx, models.PaymentApproved)
	if err != nil {
		return nil, err
	}
	rejected, err := s.paymentRepo.GetByStatus(ctx, models.PaymentRejected)
	if err != nil {
		return nil, err
	}
	students, err := s.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.AdminDashboardResponse{
		PendingPayments:  dto.NewPaymentResponseList(pending),
		ApprovedPayments: dto.NewPaymentResponseList(approved),
		RejectedPayments: dto.NewPaymentResponseList(rejected),
		Students:         students,
	}, nil
}

// ListStudents returns all student profiles
func (s *StudentService) ListStudents(ctx context.Context) ([]*models.Student, error) {
	return s.studentRepo.GetAll(ctx)
}

// StudentDetail assembles one student's profile, payment history,
// registration state and slip
func (s *StudentService) StudentDetail(ctx context.Context, studentID int64) (*dto.StudentDetailResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	registration, err := s.registrationRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	slip, err := s.slipRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	detail := &dto.StudentDetailResponse{
		Student:      student,
		Payments:     dto.NewPaymentResponseList(payments),
		Registration: registration,
	}
	if slip != nil {
		resp := dto.NewRegistrationSlipResponse(slip)
		detail.RegistrationSlip = &resp
	}
	return detail, nil
}

// AuditTrail returns the most recent admin actions, newest first
func (s *StudentService) AuditTrail(ctx context.Context, limit int) ([]*models.SystemLog, error) {
	return s.systemLogRepo.List(ctx, limit)
}
