package dto

// RegisterStudentRequest represents a student self-registration request
type RegisterStudentRequest struct {
	StudentNumber   string `json:"studentNumber" binding:"required" example:"20230145"`
	Name            string `json:"name" binding:"required" example:"Chileshe Mwila"`
	Email           string `json:"email,omitempty" binding:"omitempty,email" example:"chileshe@example.com"`
	Password        string `json:"password" binding:"required,min=8" example:"s3cretPassw0rd"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password" example:"s3cretPassw0rd"`
}

// LoginRequest represents a login request for both students and admins
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"20230145"`
	Password string `json:"password" binding:"required" example:"s3cretPassw0rd"`
}

// TokenResponse represents the token pair returned after authentication
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresIn        int    `json:"expiresIn" example:"3600"`
	RefreshExpiresIn int    `json:"refreshExpiresIn" example:"2592000"`
	TokenType        string `json:"tokenType" example:"Bearer"`
	Role             string `json:"role" example:"student"`
	UserID           int64  `json:"userId" example:"1"`
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// ForgotPasswordRequest represents a password reset initiation request
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email" example:"20230145@cavendish.ac.zm"`
}

// ResetPasswordRequest represents a password reset completion request
type ResetPasswordRequest struct {
	Token           string `json:"token" binding:"required"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
}
