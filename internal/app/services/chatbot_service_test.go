package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwila/registra/internal/pkg/apperrors"
	"github.com/mwila/registra/internal/pkg/knowledge"
)

func newChatbotService(repo *fakeChatbotRepo) *ChatbotService {
	svc := NewChatbotService(repo, zerolog.Nop())
	svc.retryInitialInterval = time.Millisecond
	svc.retryMaxInterval = 5 * time.Millisecond
	return svc
}

func TestChatbotAskEmptyMessage(t *testing.T) {
	svc := newChatbotService(newFakeChatbotRepo())

	_, err := svc.Ask(context.Background(), "   ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrBadRequest))
}

func TestChatbotAskPredefinedQuestion(t *testing.T) {
	repo := newFakeChatbotRepo()
	svc := newChatbotService(repo)

	resp, err := svc.Ask(context.Background(), "  How Do I Reset My Password  ")
	require.NoError(t, err)
	assert.Contains(t, resp.Response, "Forgot Password")
	assert.False(t, resp.Known, "first sighting comes from the static table, not storage")

	stored := repo.messages["how do i reset my password"]
	require.NotNil(t, stored, "question should be persisted under its normalized form")
	assert.True(t, stored.IsKnownResponse)
	assert.Equal(t, "faq", stored.Category)
}

func TestChatbotAskRepeatIsKnown(t *testing.T) {
	repo := newFakeChatbotRepo()
	svc := newChatbotService(repo)

	first, err := svc.Ask(context.Background(), "where is the finance office")
	require.NoError(t, err)
	assert.False(t, first.Known)

	second, err := svc.Ask(context.Background(), "Where IS the Finance Office?  ")
	require.NoError(t, err)
	assert.False(t, second.Known, "trailing punctuation makes a different normalized key")

	third, err := svc.Ask(context.Background(), "where is the finance office")
	require.NoError(t, err)
	assert.True(t, third.Known)
	assert.Equal(t, first.Response, third.Response)
}

func TestChatbotAskUnknownQuestionGetsFallbackAndIsCached(t *testing.T) {
	repo := newFakeChatbotRepo()
	svc := newChatbotService(repo)

	resp, err := svc.Ask(context.Background(), "can i pay in installments")
	require.NoError(t, err)
	assert.Equal(t, knowledge.FallbackAnswer, resp.Response)
	assert.False(t, resp.Known)

	stored := repo.messages["can i pay in installments"]
	require.NotNil(t, stored)
	assert.False(t, stored.IsKnownResponse)
	assert.Equal(t, "unknown", stored.Category)

	// The fallback itself is cached, so the repeat reads back as known
	repeat, err := svc.Ask(context.Background(), "can i pay in installments")
	require.NoError(t, err)
	assert.True(t, repeat.Known)
	assert.Equal(t, knowledge.FallbackAnswer, repeat.Response)
}

func TestChatbotAskPersistenceFailure(t *testing.T) {
	repo := newFakeChatbotRepo()
	repo.createErr = errors.New("connection refused")
	svc := newChatbotService(repo)

	_, err := svc.Ask(context.Background(), "how to register")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrDatabase))
	assert.Equal(t, 3, repo.createCalls, "connection failures are retried twice")
}

func TestChatbotAskPersistenceStatementErrorNotRetried(t *testing.T) {
	repo := newFakeChatbotRepo()
	repo.createErr = &pgconn.PgError{Code: "23514", Message: "check constraint violated"}
	svc := newChatbotService(repo)

	_, err := svc.Ask(context.Background(), "how to register")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrDatabase))
	assert.Equal(t, 1, repo.createCalls, "statement rejections fail the same way every attempt")
}

func TestChatbotListUnanswered(t *testing.T) {
	repo := newFakeChatbotRepo()
	svc := newChatbotService(repo)

	_, err := svc.Ask(context.Background(), "how to register")
	require.NoError(t, err)
	_, err = svc.Ask(context.Background(), "is there a hostel on campus")
	require.NoError(t, err)

	unanswered, err := svc.ListUnanswered(context.Background())
	require.NoError(t, err)
	require.Len(t, unanswered, 1)
	assert.Equal(t, "is there a hostel on campus", unanswered[0].Question)
}
