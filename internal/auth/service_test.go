package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateUser(ctx context.Context, user *User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func newTestAuthService(repo Repository) *Service {
	return NewService(repo, zap.NewNop(), "test-secret", time.Hour)
}

func TestRegisterHashesPasswordAndIssuesToken(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestAuthService(mockRepo)

	ctx := context.Background()
	mockRepo.On("GetUserByEmail", ctx, "maya@example.com").Return(nil, ErrNotFound)

	var saved *User
	mockRepo.On("CreateUser", ctx, mock.AnythingOfType("*auth.User")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*User) }).Return(nil)

	resp, err := service.Register(ctx, &RegisterRequest{
		Email:       "Maya@Example.com ",
		Password:    "correct horse",
		DisplayName: "Maya",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	if assert.NotNil(t, saved) {
		assert.Equal(t, "maya@example.com", saved.Email)
		assert.NotEqual(t, "correct horse", saved.PasswordHash)
		assert.NotEmpty(t, saved.PasswordHash)
	}

	// The issued token round-trips through verification.
	userID, err := service.VerifyToken(resp.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, saved.ID, userID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestAuthService(mockRepo)

	ctx := context.Background()
	mockRepo.On("GetUserByEmail", ctx, "taken@example.com").Return(&User{ID: uuid.New()}, nil)

	_, err := service.Register(ctx, &RegisterRequest{
		Email:       "taken@example.com",
		Password:    "irrelevant",
		DisplayName: "Someone",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
	mockRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestLoginWrongPassword(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestAuthService(mockRepo)

	ctx := context.Background()
	mockRepo.On("GetUserByEmail", ctx, "maya@example.com").Return(nil, ErrNotFound)

	_, err := service.Login(ctx, &LoginRequest{Email: "maya@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRoundTrip(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestAuthService(mockRepo)

	ctx := context.Background()
	mockRepo.On("GetUserByEmail", ctx, "maya@example.com").Return(nil, ErrNotFound).Once()
	mockRepo.On("CreateUser", ctx, mock.Anything).Return(nil)

	reg, err := service.Register(ctx, &RegisterRequest{
		Email:       "maya@example.com",
		Password:    "correct horse",
		DisplayName: "Maya",
	})
	assert.NoError(t, err)

	mockRepo.On("GetUserByEmail", ctx, "maya@example.com").Return(reg.User, nil)

	resp, err := service.Login(ctx, &LoginRequest{Email: "maya@example.com", Password: "correct horse"})
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = service.Login(ctx, &LoginRequest{Email: "maya@example.com", Password: "wrong horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyTokenRejectsGarbageAndForeignKeys(t *testing.T) {
	service := newTestAuthService(new(MockRepository))

	_, err := service.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewService(new(MockRepository), zap.NewNop(), "other-secret", time.Hour)
	resp, err := other.issueToken(&User{ID: uuid.New()})
	assert.NoError(t, err)

	_, err = service.VerifyToken(resp.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
