package wallet

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service provides business logic for the coin ledger.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new wallet service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Credit appends a ledger entry and returns the user's level after the
// credit. The ledger is the authority for balances; nothing is cached.
func (s *Service) Credit(ctx context.Context, userID uuid.UUID, amount int, source TransactionSource, referenceID *uuid.UUID, description string) (newLevel int, err error) {
	if amount <= 0 {
		return 0, fmt.Errorf("credit amount must be positive, got %d", amount)
	}

	tx := &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      amount,
		Source:      source,
		ReferenceID: referenceID,
		Description: description,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return 0, fmt.Errorf("failed to credit wallet: %w", err)
	}

	total, err := s.repo.LifetimeCoins(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to read lifetime coins: %w", err)
	}

	level := LevelForCoins(total)
	s.logger.Info("Wallet credited",
		zap.String("user_id", userID.String()),
		zap.Int("amount", amount),
		zap.String("source", string(source)),
		zap.Int("lifetime_coins", total),
		zap.Int("level", level))

	return level, nil
}

// Summary returns the wallet view for a user.
func (s *Service) Summary(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	total, err := s.repo.LifetimeCoins(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read lifetime coins: %w", err)
	}
	level := LevelForCoins(total)
	return &Summary{
		Balance:     total,
		Level:       level,
		LevelFloor:  CoinsForLevel(level),
		NextLevelAt: CoinsForLevel(level + 1),
	}, nil
}

// Transactions returns a page of the user's ledger, newest first.
func (s *Service) Transactions(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]Transaction, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.repo.ListTransactions(ctx, userID, page, pageSize)
}

// Leaderboard returns the top earners with ranks and levels filled in.
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	entries, err := s.repo.Leaderboard(ctx, limit)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Rank = i + 1
		entries[i].Level = LevelForCoins(entries[i].Coins)
	}
	return entries, nil
}
