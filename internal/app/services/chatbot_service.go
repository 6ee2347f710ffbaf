package services

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/mwila/registra/internal/app/models"
	"github.com/mwila/registra/internal/app/models/dto"
	"github.com/mwila/registra/internal/app/repositories"
	"github.com/mwila/registra/internal/pkg/apperrors"
	"github.com/mwila/registra/internal/pkg/dberrors"
	"github.com/mwila/registra/internal/pkg/knowledge"
)

// ChatbotService answers FAQ questions with a two-tier resolver:
// previously stored answers first, then the static knowledge base,
// then a fallback that flags the question for admin review.
type ChatbotService struct {
	chatbotRepo repositories.IChatbotRepository
	logger      zerolog.Logger

	// retry intervals for message persistence, overridable in tests
	retryInitialInterval time.Duration
	retryMaxInterval     time.Duration
}

// NewChatbotService creates a new ChatbotService
func NewChatbotService(chatbotRepo repositories.IChatbotRepository, logger zerolog.Logger) *ChatbotService {
	return &ChatbotService{
		chatbotRepo:          chatbotRepo,
		logger:               logger,
		retryInitialInterval: time.Second,
		retryMaxInterval:     10 * time.Second,
	}
}

// Ask resolves a question and returns the answer together with whether it
// came from a previously stored entry. Every unseen question is persisted,
// including ones that only got the fallback, so repeats of an unanswerable
// question read back as known.
func (s *ChatbotService) Ask(ctx context.Context, message string) (*dto.AskResponse, error) {
	question := knowledge.Normalize(message)
	if question == "" {
		return nil, apperrors.NewBadRequestError("Message cannot be empty")
	}

	stored, err := s.chatbotRepo.GetByQuestion(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("failed to look up question: %w", err)
	}
	if stored != nil {
		return &dto.AskResponse{Response: stored.Answer, Known: true}, nil
	}

	answer, matched := knowledge.Lookup(question)
	category := "faq"
	if !matched {
		answer = knowledge.FallbackAnswer
		category = "unknown"
	}

	msg := &models.ChatbotMessage{
		Question:        question,
		Answer:          answer,
		Category:        category,
		IsKnownResponse: matched,
	}
	if err := s.persist(ctx, msg); err != nil {
		s.logger.Error().Err(err).Str("question", question).Msg("Failed to store chatbot message")
		return nil, apperrors.ErrDatabase
	}

	return &dto.AskResponse{Response: answer, Known: false}, nil
}

// ListUnanswered returns the questions that only received the fallback answer
func (s *ChatbotService) ListUnanswered(ctx context.Context) ([]*models.ChatbotMessage, error) {
	return s.chatbotRepo.ListUnanswered(ctx)
}

// persist writes the message, retrying transient failures with randomized
// exponential backoff before giving up. Statement-level rejections are not
// retried; they fail identically on every attempt.
func (s *ChatbotService) persist(ctx context.Context, msg *models.ChatbotMessage) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = s.retryInitialInterval
	policy.MaxInterval = s.retryMaxInterval

	attempts := backoff.WithContext(backoff.WithMaxRetries(policy, 2), ctx)
	return backoff.Retry(func() error {
		_, err := s.chatbotRepo.Create(ctx, msg)
		if err != nil && !dberrors.IsTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}, attempts)
}
