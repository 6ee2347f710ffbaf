package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mwila/registra/internal/app/models/dto"
	"github.com/mwila/registra/internal/app/services"
	"github.com/mwila/registra/internal/middleware"
)

// ChatbotController handles the FAQ chatbot endpoints
type ChatbotController struct {
	chatbotService *services.ChatbotService
	logger         zerolog.Logger
}

// NewChatbotController creates a new ChatbotController
func NewChatbotController(chatbotService *services.ChatbotService, logger zerolog.Logger) *ChatbotController {
	return &ChatbotController{
		chatbotService: chatbotService,
		logger:         logger,
	}
}

// Ask answers a question
// @Summary Ask the FAQ chatbot
// @Description Answers from previously stored entries first, then the static knowledge base. Unanswerable questions are flagged for admin review.
// @Tags chatbot
// @Accept json
// @Produce json
// @Param request body dto.AskRequest true "Question"
// @Success 200 {object} dto.AskResponse "Answer"
// @Failure 400 {object} dto.ErrorResponse "Empty message"
// @Failure 500 {object} dto.ErrorResponse "Database issue"
// @Router /chatbot/ask [post]
func (c *ChatbotController) Ask(ctx *gin.Context) {
	var req dto.AskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Message is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	answer, err := c.chatbotService.Ask(ctx.Request.Context(), req.Message)
	if err != nil {
		c.logger.Error().Err(err).Msg("Chatbot resolution failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	// The chat UI consumes the answer payload directly, without the envelope
	ctx.JSON(http.StatusOK, answer)
}

// Unanswered lists questions awaiting an admin-provided answer
// @Summary List unanswered questions
// @Tags chatbot
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.UnansweredQuestion} "Flagged questions"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /chatbot/unanswered [get]
func (c *ChatbotController) Unanswered(ctx *gin.Context) {
	messages, err := c.chatbotService.ListUnanswered(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list unanswered questions")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.NewUnansweredQuestionList(messages),
		Timestamp: time.Now(),
	})
}
