package dto

import (
	"time"

	"github.com/mwila/registra/internal/app/models"
)

// AskRequest represents a message sent from the chatbot UI
type AskRequest struct {
	Message string `json:"message" binding:"required" example:"how do i reset my password"`
}

// AskResponse represents the chatbot's answer.
// Known is true only when the answer came from a previously stored entry.
type AskResponse struct {
	Response string `json:"response"`
	Known    bool   `json:"known"`
}

// UnansweredQuestion represents a question the bot could not answer,
// flagged for admin review
type UnansweredQuestion struct {
	ID        int64     `json:"id" example:"7"`
	Question  string    `json:"question" example:"can i pay in installments"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUnansweredQuestionList maps stored messages to their review representation
func NewUnansweredQuestionList(messages []*models.ChatbotMessage) []UnansweredQuestion {
	out := make([]UnansweredQuestion, 0, len(messages))
	for _, m := range messages {
		out = append(out, UnansweredQuestion{
			ID:        m.ID,
			Question:  m.Question,
			CreatedAt: m.CreatedAt,
		})
	}
	return out
}
