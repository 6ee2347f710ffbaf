package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mwila/registra/internal/app/models"
	"github.com/mwila/registra/internal/app/models/dto"
	"github.com/mwila/registra/internal/app/repositories"
	"github.com/mwila/registra/internal/pkg/apperrors"
	"github.com/mwila/registra/internal/pkg/auth"
	"github.com/mwila/registra/internal/pkg/email"
	"github.com/mwila/registra/internal/pkg/validation"
)

const resetTokenTTL = time.Hour

// AuthService handles account registration and authentication
type AuthService struct {
	userRepo     repositories.IUserRepository
	studentRepo  repositories.IStudentRepository
	tokenRepo    repositories.ITokenRepository
	jwtService   *auth.JWTService
	emailService email.EmailService
	logger       zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	studentRepo repositories.IStudentRepository,
	tokenRepo repositories.ITokenRepository,
	jwtService *auth.JWTService,
	emailService email.EmailService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		studentRepo:  studentRepo,
		tokenRepo:    tokenRepo,
		jwtService:   jwtService,
		emailService: emailService,
		logger:       logger,
	}
}

// RegisterStudent creates a student profile and its login account.
// The student number doubles as the username.
func (s *AuthService) RegisterStudent(ctx context.Context, req *dto.RegisterStudentRequest) (*models.User, error) {
	studentNumber := strings.TrimSpace(req.StudentNumber)
	if !validation.IsValidStudentNumber(studentNumber) {
		return nil, apperrors.ErrInvalidStudentNumber
	}

	student, err := s.studentRepo.EnsureStudent(ctx, studentNumber, strings.TrimSpace(req.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to ensure student profile: %w", err)
	}

	_, err = s.userRepo.GetStudentUser(ctx, student.ID)
	if err == nil {
		return nil, apperrors.ErrStudentAlreadyExists
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userEmail := strings.TrimSpace(strings.ToLower(req.Email))
	if userEmail == "" {
		// Account email falls back to the institutional address
		userEmail = strings.ToLower(studentNumber) + "@students.cavendish.ac.zm"
	}

	user := &models.User{
		Username:  studentNumber,
		Email:     userEmail,
		Password:  hashedPassword,
		RoleType:  models.RoleStudent,
		StudentID: &student.ID,
	}

	if _, err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("studentNumber", studentNumber).
		Int64("userId", user.ID).
		Msg("Student account registered")

	return user, nil
}

// Login authenticates a user and issues a token pair
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	tokens, err := s.generateTokenResponse(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		// Login still succeeds; the timestamp is informational
		s.logger.Warn().Err(err).Int64("userId", user.ID).Msg("Failed to update last login time")
	}

	s.logger.Info().
		Str("username", user.Username).
		Str("role", string(user.RoleType)).
		Msg("User logged in")

	return tokens, nil
}

// RefreshToken exchanges a stored refresh token for a new token pair.
// The presented token is revoked before the new pair is issued, so each
// refresh token can only be redeemed once.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	userID, _, err := s.tokenRepo.GetByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account for token: %w", err)
	}

	if err := s.tokenRepo.Revoke(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return s.generateTokenResponse(ctx, user)
}

// generateTokenResponse issues a token pair and stores the refresh half
func (s *AuthService) generateTokenResponse(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.tokenRepo.Create(ctx, refreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
		TokenType:        "Bearer",
		Role:             string(user.RoleType),
		UserID:           user.ID,
	}, nil
}

// ForgotPassword issues a reset token and emails it to the account holder.
// Unknown emails return success so the endpoint cannot be used to probe
// which addresses have accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(emailAddr)))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.logger.Debug().Str("email", emailAddr).Msg("Password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("failed to look up account: %w", err)
	}

	token, err := generateResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	if err := s.userRepo.SetResetToken(ctx, user.ID, token, time.Now().Add(resetTokenTTL)); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	name := user.Username
	if err := s.emailService.SendPasswordResetEmail(user.Email, name, token); err != nil {
		s.logger.Error().Err(err).Int64("userId", user.ID).Msg("Failed to send password reset email")
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	return nil
}

// ResetPassword completes a password reset started by ForgotPassword
func (s *AuthService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	user, err := s.userRepo.GetByResetToken(ctx, req.Token)
	if err != nil {
		return apperrors.ErrInvalidPasswordResetToken
	}

	if user.ResetTokenExpiry == nil || time.Now().After(*user.ResetTokenExpiry) {
		return apperrors.ErrInvalidPasswordResetToken
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	// A password reset invalidates every outstanding session
	if err := s.tokenRepo.RevokeAllForUser(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userId", user.ID).Msg("Failed to revoke refresh tokens after password reset")
	}

	s.logger.Info().Int64("userId", user.ID).Msg("Password reset completed")
	return nil
}

func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
