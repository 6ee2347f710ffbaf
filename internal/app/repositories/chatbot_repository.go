package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mwila/registra/internal/app/models"
	"github.com/mwila/registra/internal/pkg/knowledge"
)

// IChatbotRepository defines the interface for chatbot message operations
type IChatbotRepository interface {
	GetByQuestion(ctx context.Context, question string) (*models.ChatbotMessage, error)
	Create(ctx context.Context, msg *models.ChatbotMessage) (int64, error)
	ListUnanswered(ctx context.Context) ([]*models.ChatbotMessage, error)
}

// ChatbotRepository handles database operations for chatbot messages
type ChatbotRepository struct {
	db *pgxpool.Pool
}

// NewChatbotRepository creates a new ChatbotRepository
func NewChatbotRepository(db *pgxpool.Pool) *ChatbotRepository {
	return &ChatbotRepository{db: db}
}

const chatbotColumns = `id, question, answer, category, is_known_response, created_at`

func scanChatbotMessage(row pgx.Row) (*models.ChatbotMessage, error) {
	var m models.ChatbotMessage
	err := row.Scan(
		&m.ID,
		&m.Question,
		&m.Answer,
		&m.Category,
		&m.IsKnownResponse,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetByQuestion looks up a stored answer by exact question text, or nil when
// the question has not been seen before. Callers pass normalized questions.
func (r *ChatbotRepository) GetByQuestion(ctx context.Context, question string) (*models.ChatbotMessage, error) {
	query := `SELECT ` + chatbotColumns + ` FROM chatbot_messages WHERE question = $1 ORDER BY id LIMIT 1`

	msg, err := scanChatbotMessage(r.db.QueryRow(ctx, query, question))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving chatbot message: %w", err)
	}
	return msg, nil
}

// Create stores a new question/answer pair
func (r *ChatbotRepository) Create(ctx context.Context, msg *models.ChatbotMessage) (int64, error) {
	query := `
		INSERT INTO chatbot_messages (question, answer, category, is_known_response)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		msg.Question,
		msg.Answer,
		msg.Category,
		msg.IsKnownResponse,
	).Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("error creating chatbot message: %w", err)
	}
	return msg.ID, nil
}

// ListUnanswered retrieves stored messages whose answer was the fallback,
// newest first. These are the questions awaiting an admin-provided answer.
func (r *ChatbotRepository) ListUnanswered(ctx context.Context) ([]*models.ChatbotMessage, error) {
	query, args, err := sq.Select("id", "question", "answer", "category", "is_known_response", "created_at").
		From("chatbot_messages").
		Where(sq.ILike{"answer": "%" + knowledge.FallbackMarker + "%"}).
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building unanswered query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing unanswered questions: %w", err)
	}
	defer rows.Close()

	var messages []*models.ChatbotMessage
	for rows.Next() {
		msg, err := scanChatbotMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning chatbot message: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
