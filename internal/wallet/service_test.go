package wallet

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateTransaction(ctx context.Context, tx *Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockRepository) LifetimeCoins(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) ListTransactions(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]Transaction, int, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]Transaction), args.Int(1), args.Error(2)
}

func (m *MockRepository) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]LeaderboardEntry), args.Error(1)
}

func TestLevelThresholds(t *testing.T) {
	assert.Equal(t, 0, CoinsForLevel(1))
	assert.Equal(t, 100, CoinsForLevel(2))
	assert.Equal(t, 300, CoinsForLevel(3))
	assert.Equal(t, 600, CoinsForLevel(4))
	assert.Equal(t, 1000, CoinsForLevel(5))

	assert.Equal(t, 1, LevelForCoins(0))
	assert.Equal(t, 1, LevelForCoins(99))
	assert.Equal(t, 2, LevelForCoins(100))
	assert.Equal(t, 2, LevelForCoins(299))
	assert.Equal(t, 3, LevelForCoins(300))
	assert.Equal(t, 5, LevelForCoins(1200))
}

func TestCreditAppendsAndReportsLevel(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, zap.NewNop())

	ctx := context.Background()
	userID := uuid.New()

	var saved *Transaction
	mockRepo.On("CreateTransaction", ctx, mock.AnythingOfType("*wallet.Transaction")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*Transaction) }).Return(nil)
	mockRepo.On("LifetimeCoins", ctx, userID).Return(305, nil)

	level, err := service.Credit(ctx, userID, 9, SourceVerification, nil, "Verified charger")

	assert.NoError(t, err)
	assert.Equal(t, 3, level)
	if assert.NotNil(t, saved) {
		assert.Equal(t, 9, saved.Amount)
		assert.Equal(t, SourceVerification, saved.Source)
		assert.NotEqual(t, uuid.Nil, saved.ID)
	}
	mockRepo.AssertExpectations(t)
}

func TestCreditRejectsNonPositiveAmounts(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, zap.NewNop())

	_, err := service.Credit(context.Background(), uuid.New(), 0, SourceAdjustment, nil, "noop")
	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "CreateTransaction", mock.Anything, mock.Anything)
}

func TestSummary(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, zap.NewNop())

	ctx := context.Background()
	userID := uuid.New()
	mockRepo.On("LifetimeCoins", ctx, userID).Return(450, nil)

	summary, err := service.Summary(ctx, userID)

	assert.NoError(t, err)
	assert.Equal(t, 450, summary.Balance)
	assert.Equal(t, 3, summary.Level)
	assert.Equal(t, 300, summary.LevelFloor)
	assert.Equal(t, 600, summary.NextLevelAt)
}

func TestLeaderboardFillsRanksAndLevels(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, zap.NewNop())

	ctx := context.Background()
	mockRepo.On("Leaderboard", ctx, 20).Return([]LeaderboardEntry{
		{UserID: uuid.New(), DisplayName: "maya", Coins: 720},
		{UserID: uuid.New(), DisplayName: "jon", Coins: 150},
	}, nil)

	entries, err := service.Leaderboard(ctx, 0)

	assert.NoError(t, err)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 4, entries[0].Level)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, 2, entries[1].Level)
}
