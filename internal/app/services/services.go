package services

import (
	"github.com/rs/zerolog"

	"github.com/mwila/registra/internal/app/repositories"
	"github.com/mwila/registra/internal/pkg/auth"
	"github.com/mwila/registra/internal/pkg/email"
	"github.com/mwila/registra/internal/pkg/filestorage"
)

// Services bundles all services for dependency injection
type Services struct {
	Auth         *AuthService
	Payment      *PaymentService
	Registration *RegistrationService
	Student      *StudentService
	Chatbot      *ChatbotService
}

// NewServices wires all services over the given repositories
func NewServices(
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	emailService email.EmailService,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) *Services {
	return &Services{
		Auth:         NewAuthService(repos.Users, repos.Students, repos.Tokens, jwtService, emailService, logger),
		Payment:      NewPaymentService(repos.Payments, repos.Students, repos.SystemLogs, storage, logger),
		Registration: NewRegistrationService(repos.Slips, repos.Payments, repos.Students, repos.Registrations, repos.SystemLogs, logger),
		Student:      NewStudentService(repos.Students, repos.Payments, repos.Registrations, repos.Slips, repos.SystemLogs, logger),
		Chatbot:      NewChatbotService(repos.Chatbot, logger),
	}
}
