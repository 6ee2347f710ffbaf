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

// StudentController handles the student-facing endpoints
type StudentController struct {
	paymentService      *services.PaymentService
	registrationService *services.RegistrationService
	logger              zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(
	paymentService *services.PaymentService,
	registrationService *services.RegistrationService,
	logger zerolog.Logger,
) *StudentController {
	return &StudentController{
		paymentService:      paymentService,
		registrationService: registrationService,
		logger:              logger,
	}
}

// studentID reads the caller's student profile id, aborting with 403 when
// the token carries no student link
func (c *StudentController) studentID(ctx *gin.Context) (int64, bool) {
	id, ok := middleware.GetStudentID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "No student profile linked to this account")
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// Dashboard lists the caller's payments and registration slip
// @Summary Student dashboard
// @Description Returns the caller's payment history and registration slip, if issued
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Dashboard data"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student/dashboard [get]
func (c *StudentController) Dashboard(ctx *gin.Context) {
	studentID, ok := c.studentID(ctx)
	if !ok {
		return
	}

	payments, err := c.paymentService.ListByStudent(ctx.Request.Context(), studentID)
	if err != nil {
		c.logger.Error().Err(err).Int64("studentId", studentID).Msg("Failed to list payments")
		middleware.HandleAPIError(ctx, err)
		return
	}

	slip, err := c.registrationService.GetStudentSlip(ctx.Request.Context(), studentID)
	if err != nil {
		c.logger.Error().Err(err).Int64("studentId", studentID).Msg("Failed to load registration slip")
		middleware.HandleAPIError(ctx, err)
		return
	}

	data := gin.H{"payments": dto.NewPaymentResponseList(payments)}
	if slip != nil {
		data["registrationSlip"] = dto.NewRegistrationSlipResponse(slip)
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      data,
		Timestamp: time.Now(),
	})
}

// UploadPayment accepts a payment proof upload
// @Summary Upload a payment slip
// @Description Stores the uploaded proof file and records a pending payment
// @Tags student
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param payment_slip formData file true "Payment proof file (png, jpg, jpeg, gif or pdf)"
// @Param student_number formData string true "Student number"
// @Param name formData string true "Student full name"
// @Param description formData string false "Payment description"
// @Param amount formData number false "Amount paid"
// @Param method formData string false "Payment method"
// @Param reference formData string false "Bank reference"
// @Success 201 {object} dto.APIResponse{data=dto.PaymentResponse} "Payment recorded"
// @Failure 400 {object} dto.ErrorResponse "Missing file or unsupported file type"
// @Failure 409 {object} dto.ErrorResponse "Reference already used"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student/payments [post]
func (c *StudentController) UploadPayment(ctx *gin.Context) {
	var req dto.UploadPaymentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	file, err := ctx.FormFile("payment_slip")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "A payment slip file is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	payment, err := c.paymentService.Upload(ctx.Request.Context(), &req, file)
	if err != nil {
		c.logger.Error().Err(err).Str("studentNumber", req.StudentNumber).Msg("Payment upload failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.NewPaymentResponse(payment),
		Message:   "Payment slip uploaded. It will be reviewed by the finance office.",
		Timestamp: time.Now(),
	})
}

// DeletePayment removes one of the caller's own payments
// @Summary Delete own payment
// @Description Deletes a payment record along with its uploaded file
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Success 200 {object} dto.APIResponse "Payment deleted"
// @Failure 403 {object} dto.ErrorResponse "Payment belongs to another student"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student/payments/{id} [delete]
func (c *StudentController) DeletePayment(ctx *gin.Context) {
	studentID, ok := c.studentID(ctx)
	if !ok {
		return
	}

	paymentID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.ErrPaymentNotFound)
		return
	}

	if err := c.paymentService.DeleteOwn(ctx.Request.Context(), studentID, paymentID); err != nil {
		c.logger.Warn().Err(err).Int64("paymentId", paymentID).Msg("Payment deletion failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Message:   "Payment deleted.",
		Timestamp: time.Now(),
	})
}

// GetFile serves one of the caller's own uploaded files
// @Summary Fetch own uploaded file
// @Tags student
// @Produce octet-stream
// @Security BearerAuth
// @Param filename path string true "Stored filename"
// @Success 200 {file} file "File contents"
// @Failure 404 {object} dto.ErrorResponse "No such file among the caller's uploads"
// @Router /student/files/{filename} [get]
func (c *StudentController) GetFile(ctx *gin.Context) {
	studentID, ok := c.studentID(ctx)
	if !ok {
		return
	}

	path, err := c.paymentService.ResolveStudentFile(ctx.Request.Context(), studentID, ctx.Param("filename"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.File(path)
}
