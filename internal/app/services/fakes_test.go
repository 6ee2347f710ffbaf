package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/mwila/registra/internal/app/models"
	"github.com/mwila/registra/internal/pkg/apperrors"
)

// In-memory repository fakes used across the service tests.

type fakeStudentRepo struct {
	students map[string]*models.Student
	nextID   int64
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: make(map[string]*models.Student), nextID: 1}
}

func (f *fakeStudentRepo) EnsureStudent(_ context.Context, studentNumber, name string) (*models.Student, error) {
	if s, ok := f.students[studentNumber]; ok {
		return s, nil
	}
	s := &models.Student{
		ID:            f.nextID,
		StudentNumber: studentNumber,
		Name:          name,
		CreatedAt:     time.Now(),
	}
	f.nextID++
	f.students[studentNumber] = s
	return s, nil
}

func (f *fakeStudentRepo) GetByID(_ context.Context, id int64) (*models.Student, error) {
	for _, s := range f.students {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStudentRepo) GetByStudentNumber(_ context.Context, studentNumber string) (*models.Student, error) {
	if s, ok := f.students[studentNumber]; ok {
		return s, nil
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStudentRepo) GetAll(_ context.Context) ([]*models.Student, error) {
	var out []*models.Student
	for _, s := range f.students {
		out = append(out, s)
	}
	return out, nil
}

type fakeUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*models.User), nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) (int64, error) {
	for _, u := range f.users {
		if u.Username == user.Username {
			return 0, apperrors.ErrUsernameAlreadyExists
		}
		if u.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	f.nextID++
	f.users[user.ID] = user
	return user.ID, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) GetStudentUser(_ context.Context, studentID int64) (*models.User, error) {
	for _, u := range f.users {
		if u.RoleType == models.RoleStudent && u.StudentID != nil && *u.StudentID == studentID {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) UpdateLastLogin(_ context.Context, userID int64) error {
	if u, ok := f.users[userID]; ok {
		now := time.Now()
		u.LastLoginAt = &now
	}
	return nil
}

func (f *fakeUserRepo) SetResetToken(_ context.Context, userID int64, token string, expiry time.Time) error {
	u, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.ResetToken = &token
	u.ResetTokenExpiry = &expiry
	return nil
}

func (f *fakeUserRepo) GetByResetToken(_ context.Context, token string) (*models.User, error) {
	for _, u := range f.users {
		if u.ResetToken != nil && *u.ResetToken == token {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, userID int64, passwordHash string) error {
	u, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.Password = passwordHash
	u.ResetToken = nil
	u.ResetTokenExpiry = nil
	return nil
}

type fakePaymentRepo struct {
	payments      map[int64]*models.Payment
	registrations map[int64]bool // studentID -> is_registered
	nextID        int64
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{
		payments:      make(map[int64]*models.Payment),
		registrations: make(map[int64]bool),
		nextID:        1,
	}
}

func (f *fakePaymentRepo) Create(_ context.Context, payment *models.Payment) (int64, error) {
	if payment.Reference != nil {
		for _, p := range f.payments {
			if p.Reference != nil && *p.Reference == *payment.Reference {
				return 0, apperrors.ErrReferenceAlreadyUsed
			}
		}
	}
	payment.ID = f.nextID
	payment.SubmittedDate = time.Now()
	f.nextID++
	f.payments[payment.ID] = payment
	return payment.ID, nil
}

func (f *fakePaymentRepo) GetByID(_ context.Context, id int64) (*models.Payment, error) {
	if p, ok := f.payments[id]; ok {
		return p, nil
	}
	return nil, apperrors.ErrPaymentNotFound
}

func (f *fakePaymentRepo) GetByStudentID(_ context.Context, studentID int64) ([]*models.Payment, error) {
	var out []*models.Payment
	for _, p := range f.payments {
		if p.StudentID == studentID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) GetByStatus(_ context.Context, status models.PaymentStatus) ([]*models.Payment, error) {
	var out []*models.Payment
	for _, p := range f.payments {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.payments[id]; !ok {
		return apperrors.ErrPaymentNotFound
	}
	delete(f.payments, id)
	return nil
}

func (f *fakePaymentRepo) ApproveAndRegister(_ context.Context, id int64) (*models.Payment, error) {
	p, ok := f.payments[id]
	if !ok {
		return nil, apperrors.ErrPaymentNotFound
	}
	if p.Status != models.PaymentPending {
		return nil, apperrors.ErrPaymentNotPending
	}
	now := time.Now()
	p.Status = models.PaymentApproved
	p.ApprovedDate = &now
	f.registrations[p.StudentID] = true
	return p, nil
}

func (f *fakePaymentRepo) Reject(_ context.Context, id int64) (*models.Payment, error) {
	p, ok := f.payments[id]
	if !ok {
		return nil, apperrors.ErrPaymentNotFound
	}
	if p.Status != models.PaymentPending {
		return nil, apperrors.ErrPaymentNotPending
	}
	p.Status = models.PaymentRejected
	return p, nil
}

func (f *fakePaymentRepo) HasApprovedPayment(_ context.Context, studentID int64) (bool, error) {
	for _, p := range f.payments {
		if p.StudentID == studentID && p.Status == models.PaymentApproved {
			return true, nil
		}
	}
	return false, nil
}

type fakeRegistrationRepo struct {
	registrations map[int64]*models.Registration
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{registrations: make(map[int64]*models.Registration)}
}

func (f *fakeRegistrationRepo) GetByStudentID(_ context.Context, studentID int64) (*models.Registration, error) {
	return f.registrations[studentID], nil
}

type fakeSlipRepo struct {
	slips  map[int64]*models.RegistrationSlip // keyed by studentID
	nextID int64
}

func newFakeSlipRepo() *fakeSlipRepo {
	return &fakeSlipRepo{slips: make(map[int64]*models.RegistrationSlip), nextID: 1}
}

func (f *fakeSlipRepo) Create(_ context.Context, slip *models.RegistrationSlip) (int64, error) {
	if _, ok := f.slips[slip.StudentID]; ok {
		return 0, apperrors.ErrSlipAlreadyExists
	}
	slip.ID = f.nextID
	slip.IssueDate = time.Now()
	slip.CreatedDate = slip.IssueDate
	f.nextID++
	f.slips[slip.StudentID] = slip
	return slip.ID, nil
}

func (f *fakeSlipRepo) GetByStudentID(_ context.Context, studentID int64) (*models.RegistrationSlip, error) {
	return f.slips[studentID], nil
}

func (f *fakeSlipRepo) GetAll(_ context.Context) ([]*models.RegistrationSlip, error) {
	var out []*models.RegistrationSlip
	for _, s := range f.slips {
		out = append(out, s)
	}
	return out, nil
}

type storedToken struct {
	userID  int64
	expiry  time.Time
	revoked bool
}

type fakeTokenRepo struct {
	tokens map[string]*storedToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*storedToken)}
}

func (f *fakeTokenRepo) Create(_ context.Context, token string, userID int64, expiryDate time.Time) error {
	if _, ok := f.tokens[token]; ok {
		return apperrors.ErrTokenInvalid
	}
	f.tokens[token] = &storedToken{userID: userID, expiry: expiryDate}
	return nil
}

func (f *fakeTokenRepo) GetByValue(_ context.Context, token string) (int64, time.Time, error) {
	t, ok := f.tokens[token]
	if !ok {
		return 0, time.Time{}, apperrors.ErrTokenNotFound
	}
	if t.revoked {
		return 0, time.Time{}, apperrors.ErrTokenRevoked
	}
	if t.expiry.Before(time.Now()) {
		return 0, time.Time{}, apperrors.ErrTokenExpired
	}
	return t.userID, t.expiry, nil
}

func (f *fakeTokenRepo) Revoke(_ context.Context, token string) error {
	t, ok := f.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	t.revoked = true
	return nil
}

func (f *fakeTokenRepo) RevokeAllForUser(_ context.Context, userID int64) error {
	for _, t := range f.tokens {
		if t.userID == userID {
			t.revoked = true
		}
	}
	return nil
}

type fakeChatbotRepo struct {
	messages    map[string]*models.ChatbotMessage
	createErr   error
	createCalls int
	nextID      int64
}

func newFakeChatbotRepo() *fakeChatbotRepo {
	return &fakeChatbotRepo{messages: make(map[string]*models.ChatbotMessage), nextID: 1}
}

func (f *fakeChatbotRepo) GetByQuestion(_ context.Context, question string) (*models.ChatbotMessage, error) {
	return f.messages[question], nil
}

func (f *fakeChatbotRepo) Create(_ context.Context, msg *models.ChatbotMessage) (int64, error) {
	f.createCalls++
	if f.createErr != nil {
		return 0, f.createErr
	}
	msg.ID = f.nextID
	msg.CreatedAt = time.Now()
	f.nextID++
	f.messages[msg.Question] = msg
	return msg.ID, nil
}

func (f *fakeChatbotRepo) ListUnanswered(_ context.Context) ([]*models.ChatbotMessage, error) {
	var out []*models.ChatbotMessage
	for _, m := range f.messages {
		if !m.IsKnownResponse {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeSystemLogRepo struct {
	entries []*models.SystemLog
}

func (f *fakeSystemLogRepo) Insert(_ context.Context, entry *models.SystemLog) error {
	entry.ID = int64(len(f.entries) + 1)
	entry.CreatedAt = time.Now()
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeSystemLogRepo) List(_ context.Context, _ int) ([]*models.SystemLog, error) {
	return f.entries, nil
}

type fakeStorage struct {
	files  map[string]bool
	nextID int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: make(map[string]bool)}
}

func (f *fakeStorage) SaveFile(fileHeader *multipart.FileHeader) (string, error) {
	f.nextID++
	name := fmt.Sprintf("stored-%d%s", f.nextID, fileExt(fileHeader.Filename))
	f.files[name] = true
	return name, nil
}

func fileExt(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[i:]
		}
	}
	return ""
}

func (f *fakeStorage) DeleteFile(filename string) error {
	delete(f.files, filename)
	return nil
}

func (f *fakeStorage) FullPath(filename string) string {
	return "/tmp/uploads/" + filename
}

func (f *fakeStorage) Exists(filename string) bool {
	return f.files[filename]
}

type fakeEmailService struct {
	sentTo     []string
	sentTokens []string
}

func (f *fakeEmailService) SendPasswordResetEmail(toEmail, _, token string) error {
	f.sentTo = append(f.sentTo, toEmail)
	f.sentTokens = append(f.sentTokens, token)
	return nil
}
