package models

import (
	"time"
)

// ChatbotMessage defines a stored question/answer pair based on the
// 'chatbot_messages' table. Question is stored lower-cased and acts as the
// exact-match lookup key for the resolver.
type ChatbotMessage struct {
	ID              int64     `json:"id" db:"id" example:"1"`
	Question        string    `json:"question" db:"question" example:"how do i reset my password"`
	Answer          string    `json:"answer" db:"answer"`
	Category        string    `json:"category" db:"category" example:"unknown"`
	IsKnownResponse bool      `json:"isKnownResponse" db:"is_known_response"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}
