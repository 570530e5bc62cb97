package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/onedayhr/crm-api/internal/entity"
	"github.com/onedayhr/crm-api/internal/infra/queue"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) TouchLastLogin(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepository) CreateWithInvite(ctx context.Context, user *entity.User, inviteID int64) error {
	return m.Called(ctx, user, inviteID).Error(0)
}

func (m *MockUserRepository) ResetPassword(ctx context.Context, userID int64, passwordHash, token string) error {
	return m.Called(ctx, userID, passwordHash, token).Error(0)
}

type MockInviteRepository struct {
	mock.Mock
}

func (m *MockInviteRepository) FindByToken(ctx context.Context, token string) (*entity.Invite, error) {
	args := m.Called(ctx, token)
	i, _ := args.Get(0).(*entity.Invite)
	return i, args.Error(1)
}

func (m *MockInviteRepository) Create(ctx context.Context, invite *entity.Invite) error {
	return m.Called(ctx, invite).Error(0)
}

func (m *MockInviteRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockResetRepository struct {
	mock.Mock
}

func (m *MockResetRepository) Create(ctx context.Context, token *entity.PasswordResetToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockResetRepository) FindByToken(ctx context.Context, token string) (*entity.PasswordResetToken, error) {
	args := m.Called(ctx, token)
	t, _ := args.Get(0).(*entity.PasswordResetToken)
	return t, args.Error(1)
}

func (m *MockResetRepository) PurgeStale(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	return m.Called(ctx, lead).Error(0)
}

func (m *MockLeadRepository) CreateOnFirstStage(ctx context.Context, lead *entity.Lead) error {
	return m.Called(ctx, lead).Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id int64) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*entity.Lead)
	return l, args.Error(1)
}

func (m *MockLeadRepository) FindIDByPhone(ctx context.Context, phone string) (int64, error) {
	args := m.Called(ctx, phone)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]entity.Lead, error) {
	args := m.Called(ctx, filter)
	l, _ := args.Get(0).([]entity.Lead)
	return l, args.Error(1)
}

func (m *MockLeadRepository) Replace(ctx context.Context, lead *entity.Lead) error {
	return m.Called(ctx, lead).Error(0)
}

func (m *MockLeadRepository) Patch(ctx context.Context, id int64, patch entity.LeadPatch) error {
	return m.Called(ctx, id, patch).Error(0)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishLeadCaptured(ctx context.Context, payload queue.LeadCapturedPayload) error {
	return m.Called(ctx, payload).Error(0)
}

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (fakeHasher) Verify(hash, password string) bool  { return hash == "hashed:"+password }

type fixedTokens string

func (t fixedTokens) Generate() (string, error) { return string(t), nil }

type recordingMailer struct {
	to, link string
	err      error
}

func (m *recordingMailer) SendPasswordReset(to, link string) error {
	m.to, m.link = to, link
	return m.err
}
