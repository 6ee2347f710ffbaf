package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mwila/registra/internal/pkg/apperrors"
	"github.com/mwila/registra/internal/pkg/dberrors"
)

// ITokenRepository defines the interface for refresh token operations
type ITokenRepository interface {
	Create(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetByValue(ctx context.Context, token string) (userID int64, expiryDate time.Time, err error)
	Revoke(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID int64) error
}

// TokenRepository handles database operations for refresh tokens
type TokenRepository struct {
	db *pgxpool.Pool
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{db: db}
}

// Create stores a refresh token for a user
func (r *TokenRepository) Create(ctx context.Context, token string, userID int64, expiryDate time.Time) error {
	query := `
		INSERT INTO refresh_tokens (token, user_id, expiry_date)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.Exec(ctx, query, token, userID, expiryDate)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "refresh_tokens_token_key") {
			return apperrors.ErrTokenInvalid
		}
		return fmt.Errorf("error storing refresh token: %w", err)
	}
	return nil
}

// GetByValue looks up an active refresh token. Revoked tokens surface as
// ErrTokenRevoked and expired ones as ErrTokenExpired so callers can
// distinguish replay from staleness.
func (r *TokenRepository) GetByValue(ctx context.Context, token string) (int64, time.Time, error) {
	query := `SELECT user_id, expiry_date, is_revoked FROM refresh_tokens WHERE token = $1`

	var userID int64
	var expiryDate time.Time
	var isRevoked bool
	err := r.db.QueryRow(ctx, query, token).Scan(&userID, &expiryDate, &isRevoked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, time.Time{}, apperrors.ErrTokenNotFound
		}
		return 0, time.Time{}, fmt.Errorf("error retrieving refresh token: %w", err)
	}

	if isRevoked {
		return 0, time.Time{}, apperrors.ErrTokenRevoked
	}
	if expiryDate.Before(time.Now()) {
		return 0, time.Time{}, apperrors.ErrTokenExpired
	}

	return userID, expiryDate, nil
}

// Revoke marks a refresh token as no longer usable
func (r *TokenRepository) Revoke(ctx context.Context, token string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE refresh_tokens SET is_revoked = TRUE WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("error revoking refresh token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTokenNotFound
	}
	return nil
}

// RevokeAllForUser revokes every active refresh token of a user. A user
// with no active tokens is not an error.
func (r *TokenRepository) RevokeAllForUser(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE refresh_tokens SET is_revoked = TRUE WHERE user_id = $1 AND is_revoked = FALSE`, userID)
	if err != nil {
		return fmt.Errorf("error revoking user refresh tokens: %w", err)
	}
	return nil
}
