package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwila/registra/internal/app/models/dto"
	"github.com/mwila/registra/internal/pkg/apperrors"
	"github.com/mwila/registra/internal/pkg/auth"
)

type authFixture struct {
	svc      *AuthService
	users    *fakeUserRepo
	students *fakeStudentRepo
	tokens   *fakeTokenRepo
	email    *fakeEmailService
}

func newAuthFixture() *authFixture {
	users := newFakeUserRepo()
	students := newFakeStudentRepo()
	tokens := newFakeTokenRepo()
	emailSvc := &fakeEmailService{}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "registra-test",
	})
	return &authFixture{
		svc:      NewAuthService(users, students, tokens, jwtService, emailSvc, zerolog.Nop()),
		users:    users,
		students: students,
		tokens:   tokens,
		email:    emailSvc,
	}
}

func registerRequest() *dto.RegisterStudentRequest {
	return &dto.RegisterStudentRequest{
		StudentNumber:   "20230145",
		Name:            "Chileshe Mwila",
		Email:           "chileshe@example.com",
		Password:        "s3cretPassw0rd",
		ConfirmPassword: "s3cretPassw0rd",
	}
}

func TestRegisterStudent(t *testing.T) {
	f := newAuthFixture()

	user, err := f.svc.RegisterStudent(context.Background(), registerRequest())
	require.NoError(t, err)

	assert.Equal(t, "20230145", user.Username, "student number doubles as username")
	require.NotNil(t, user.StudentID)
	assert.NotEqual(t, "s3cretPassw0rd", user.Password, "password must be stored hashed")

	student, err := f.students.GetByStudentNumber(context.Background(), "20230145")
	require.NoError(t, err)
	assert.Equal(t, student.ID, *user.StudentID)
}

func TestRegisterStudentTwice(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	_, err := f.svc.RegisterStudent(ctx, registerRequest())
	require.NoError(t, err)

	_, err = f.svc.RegisterStudent(ctx, registerRequest())
	assert.True(t, errors.Is(err, apperrors.ErrStudentAlreadyExists))
}

func TestRegisterStudentInvalidNumber(t *testing.T) {
	f := newAuthFixture()

	req := registerRequest()
	req.StudentNumber = "no spaces allowed"
	_, err := f.svc.RegisterStudent(context.Background(), req)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidStudentNumber))
}

func TestLogin(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	_, err := f.svc.RegisterStudent(ctx, registerRequest())
	require.NoError(t, err)

	tokens, err := f.svc.Login(ctx, &dto.LoginRequest{Username: "20230145", Password: "s3cretPassw0rd"})
	require.NoError(t, err)

	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, "student", tokens.Role)
	assert.Equal(t, "Bearer", tokens.TokenType)

	user, err := f.users.GetByUsername(ctx, "20230145")
	require.NoError(t, err)
	assert.NotNil(t, user.LastLoginAt)

	// The refresh token must be redeemable later, so login stores it
	storedUserID, _, err := f.tokens.GetByValue(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, storedUserID)
}

func TestRefreshTokenRotation(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	_, err := f.svc.RegisterStudent(ctx, registerRequest())
	require.NoError(t, err)

	first, err := f.svc.Login(ctx, &dto.LoginRequest{Username: "20230145", Password: "s3cretPassw0rd"})
	require.NoError(t, err)

	second, err := f.svc.RefreshToken(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, second.AccessToken)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.Equal(t, first.UserID, second.UserID)

	// The redeemed token was revoked, so replaying it fails
	_, err = f.svc.RefreshToken(ctx, first.RefreshToken)
	assert.True(t, errors.Is(err, apperrors.ErrTokenRevoked))

	// The replacement still works
	_, err = f.svc.RefreshToken(ctx, second.RefreshToken)
	assert.NoError(t, err)
}

func TestRefreshTokenUnknown(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.RefreshToken(context.Background(), "never-issued")
	assert.True(t, errors.Is(err, apperrors.ErrTokenNotFound))
}

func TestRefreshTokenExpired(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	user, err := f.svc.RegisterStudent(ctx, registerRequest())
	require.NoError(t, err)

	require.NoError(t, f.tokens.Create(ctx, "stale-refresh", user.ID, time.Now().Add(-time.Minute)))

	_, err = f.svc.RefreshToken(ctx, "stale-refresh")
	assert.True(t, errors.Is(err, apperrors.ErrTokenExpired))
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	_, err := f.svc.RegisterStudent(ctx, registerRequest())
	require.NoError(t, err)

	_, err = f.svc.Login(ctx, &dto.LoginRequest{Username: "20230145", Password: "wrong"})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))
}

func TestLoginUnknownUser(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.Login(context.Background(), &dto.LoginRequest{Username: "ghost", Password: "whatever"})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))
}

func TestPasswordResetFlow(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	_, err := f.svc.RegisterStudent(ctx, registerRequest())
	require.NoError(t, err)

	require.NoError(t, f.svc.ForgotPassword(ctx, "chileshe@example.com"))
	require.Len(t, f.email.sentTokens, 1)
	token := f.email.sentTokens[0]

	err = f.svc.ResetPassword(ctx, &dto.ResetPasswordRequest{
		Token:           token,
		Password:        "newPassword123",
		ConfirmPassword: "newPassword123",
	})
	require.NoError(t, err)

	_, err = f.svc.Login(ctx, &dto.LoginRequest{Username: "20230145", Password: "newPassword123"})
	assert.NoError(t, err)

	// The token is single-use
	err = f.svc.ResetPassword(ctx, &dto.ResetPasswordRequest{
		Token:           token,
		Password:        "anotherPassword1",
		ConfirmPassword: "anotherPassword1",
	})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidPasswordResetToken))
}

func TestResetPasswordRevokesRefreshTokens(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	_, err := f.svc.RegisterStudent(ctx, registerRequest())
	require.NoError(t, err)

	tokens, err := f.svc.Login(ctx, &dto.LoginRequest{Username: "20230145", Password: "s3cretPassw0rd"})
	require.NoError(t, err)

	require.NoError(t, f.svc.ForgotPassword(ctx, "chileshe@example.com"))
	require.Len(t, f.email.sentTokens, 1)

	err = f.svc.ResetPassword(ctx, &dto.ResetPasswordRequest{
		Token:           f.email.sentTokens[0],
		Password:        "newPassword123",
		ConfirmPassword: "newPassword123",
	})
	require.NoError(t, err)

	_, err = f.svc.RefreshToken(ctx, tokens.RefreshToken)
	assert.True(t, errors.Is(err, apperrors.ErrTokenRevoked), "old sessions must not survive a password reset")
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	f := newAuthFixture()

	// Unknown addresses succeed silently so accounts cannot be probed
	require.NoError(t, f.svc.ForgotPassword(context.Background(), "nobody@example.com"))
	assert.Empty(t, f.email.sentTo)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	user, err := f.svc.RegisterStudent(ctx, registerRequest())
	require.NoError(t, err)

	require.NoError(t, f.users.SetResetToken(ctx, user.ID, "stale-token", time.Now().Add(-time.Minute)))

	err = f.svc.ResetPassword(ctx, &dto.ResetPasswordRequest{
		Token:           "stale-token",
		Password:        "newPassword123",
		ConfirmPassword: "newPassword123",
	})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidPasswordResetToken))
}
