package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mwila/registra/internal/app/models/dto"
	"github.com/mwila/registra/internal/app/services"
	"github.com/mwila/registra/internal/middleware"
	"github.com/mwila/registra/internal/pkg/apperrors"
)

// AdminController handles the admin review and reporting endpoints
type AdminController struct {
	paymentService      *services.PaymentService
	registrationService *services.RegistrationService
	studentService      *services.StudentService
	logger              zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(
	paymentService *services.PaymentService,
	registrationService *services.RegistrationService,
	studentService *services.StudentService,
	logger zerolog.Logger,
) *AdminController {
	return &AdminController{
		paymentService:      paymentService,
		registrationService: registrationService,
		studentService:      studentService,
		logger:              logger,
	}
}

func (c *AdminController) auditContext(ctx *gin.Context) services.AuditContext {
	adminID, _ := middleware.GetUserID(ctx)
	return services.AuditContext{
		AdminID:   adminID,
		IPAddress: ctx.ClientIP(),
		UserAgent: ctx.Request.UserAgent(),
	}
}

func parseIDParam(ctx *gin.Context, name string) (int64, error) {
	return strconv.ParseInt(ctx.Param(name), 10, 64)
}

// Dashboard returns payments grouped by status plus the student roster
// @Summary Admin dashboard
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AdminDashboardResponse} "Dashboard data"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/dashboard [get]
func (c *AdminController) Dashboard(ctx *gin.Context) {
	dashboard, err := c.studentService.Dashboard(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to assemble admin dashboard")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dashboard,
		Timestamp: time.Now(),
	})
}

// ApprovePayment approves a pending payment
// @Summary Approve a payment
// @Description Marks a pending payment approved and activates the student's registration
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Success 200 {object} dto.APIResponse{data=dto.PaymentResponse} "Payment approved"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Failure 409 {object} dto.ErrorResponse "Payment already decided"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/payments/{id}/approve [post]
func (c *AdminController) ApprovePayment(ctx *gin.Context) {
	paymentID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.ErrPaymentNotFound)
		return
	}

	payment, err := c.paymentService.Approve(ctx.Request.Context(), paymentID, c.auditContext(ctx))
	if err != nil {
		c.logger.Warn().Err(err).Int64("paymentId", paymentID).Msg("Payment approval failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.NewPaymentResponse(payment),
		Message:   "Payment approved.",
		Timestamp: time.Now(),
	})
}

// RejectPayment rejects a pending payment
// @Summary Reject a payment
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Success 200 {object} dto.APIResponse{data=dto.PaymentResponse} "Payment rejected"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Failure 409 {object} dto.ErrorResponse "Payment already decided"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/payments/{id}/reject [post]
func (c *AdminController) RejectPayment(ctx *gin.Context) {
	paymentID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.ErrPaymentNotFound)
		return
	}

	payment, err := c.paymentService.Reject(ctx.Request.Context(), paymentID, c.auditContext(ctx))
	if err != nil {
		c.logger.Warn().Err(err).Int64("paymentId", paymentID).Msg("Payment rejection failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.NewPaymentResponse(payment),
		Message:   "Payment rejected.",
		Timestamp: time.Now(),
	})
}

// IssueSlip creates a registration slip for a student
// @Summary Issue a registration slip
// @Description Issues a slip for a student with an approved payment. Issuing twice returns the existing slip.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.RegistrationSlipResponse} "Slip already issued"
// @Success 201 {object} dto.APIResponse{data=dto.RegistrationSlipResponse} "Slip issued"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 412 {object} dto.ErrorResponse "Student has no approved payment"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/students/{id}/slip [post]
func (c *AdminController) IssueSlip(ctx *gin.Context) {
	studentID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.ErrStudentNotFound)
		return
	}

	slip, created, err := c.registrationService.IssueSlip(ctx.Request.Context(), studentID, c.auditContext(ctx))
	if err != nil {
		c.logger.Warn().Err(err).Int64("studentId", studentID).Msg("Slip issuance failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	status := http.StatusCreated
	message := "Registration slip issued."
	if !created {
		status = http.StatusOK
		message = "Registration slip was already issued."
	}

	ctx.JSON(status, dto.APIResponse{
		Data:      dto.NewRegistrationSlipResponse(slip),
		Message:   message,
		Timestamp: time.Now(),
	})
}

// ListSlips lists all issued registration slips
// @Summary List registration slips
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.RegistrationSlipResponse} "Issued slips"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/slips [get]
func (c *AdminController) ListSlips(ctx *gin.Context) {
	slips, err := c.registrationService.ListSlips(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list registration slips")
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.RegistrationSlipResponse, 0, len(slips))
	for _, slip := range slips {
		responses = append(responses, dto.NewRegistrationSlipResponse(slip))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      responses,
		Timestamp: time.Now(),
	})
}

// ListStudents lists all student profiles
// @Summary List students
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Student profiles"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/students [get]
func (c *AdminController) ListStudents(ctx *gin.Context) {
	students, err := c.studentService.ListStudents(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list students")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      students,
		Timestamp: time.Now(),
	})
}

// StudentDetail returns one student's profile with payment history and slip
// @Summary Student detail
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentDetailResponse} "Student detail"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/students/{id} [get]
func (c *AdminController) StudentDetail(ctx *gin.Context) {
	studentID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.ErrStudentNotFound)
		return
	}

	detail, err := c.studentService.StudentDetail(ctx.Request.Context(), studentID)
	if err != nil {
		c.logger.Warn().Err(err).Int64("studentId", studentID).Msg("Failed to load student detail")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      detail,
		Timestamp: time.Now(),
	})
}

// Logs lists recent admin actions from the audit trail
// @Summary List audit log entries
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum entries to return" default(100)
// @Success 200 {object} dto.APIResponse "Audit entries, newest first"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/logs [get]
func (c *AdminController) Logs(ctx *gin.Context) {
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "100"))
	if err != nil || limit < 1 {
		limit = 100
	}

	entries, err := c.studentService.AuditTrail(ctx.Request.Context(), limit)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list audit log entries")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      entries,
		Timestamp: time.Now(),
	})
}

// GetFile serves any uploaded file
// @Summary Fetch an uploaded file
// @Tags admin
// @Produce octet-stream
// @Security BearerAuth
// @Param filename path string true "Stored filename"
// @Success 200 {file} file "File contents"
// @Failure 404 {object} dto.ErrorResponse "File not found"
// @Router /admin/files/{filename} [get]
func (c *AdminController) GetFile(ctx *gin.Context) {
	path, err := c.paymentService.ResolveFile(ctx.Request.Context(), ctx.Param("filename"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.File(path)
}
