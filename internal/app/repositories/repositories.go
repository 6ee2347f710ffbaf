package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles all repositories for dependency injection
type Repositories struct {
	Users         IUserRepository
	Students      IStudentRepository
	Payments      IPaymentRepository
	Registrations IRegistrationRepository
	Slips         ISlipRepository
	Chatbot       IChatbotRepository
	SystemLogs    ISystemLogRepository
	Tokens        ITokenRepository
}

// NewRepositories creates all repositories backed by the given pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(db),
		Students:      NewStudentRepository(db),
		Payments:      NewPaymentRepository(db),
		Registrations: NewRegistrationRepository(db),
		Slips:         NewSlipRepository(db),
		Chatbot:       NewChatbotRepository(db),
		SystemLogs:    NewSystemLogRepository(db),
		Tokens:        NewTokenRepository(db),
	}
}
