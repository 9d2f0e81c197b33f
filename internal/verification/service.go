package verification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sharaspot/backend/internal/chargers"
	"sharaspot/backend/internal/notifications"
	"sharaspot/backend/internal/wallet"
)

// ErrInvalidSubmission wraps validation failures so the handler can answer
// with a 400 instead of a 500.
var ErrInvalidSubmission = errors.New("invalid submission")

// Service provides business logic for charger verification.
type Service struct {
	repo      Repository
	chargers  *chargers.Service
	wallet    *wallet.Service
	publisher notifications.Publisher
	logger    *zap.Logger
}

// NewService creates a new verification service.
func NewService(repo Repository, chargerSvc *chargers.Service, walletSvc *wallet.Service, publisher notifications.Publisher, logger *zap.Logger) *Service {
	return &Service{
		repo:      repo,
		chargers:  chargerSvc,
		wallet:    walletSvc,
		publisher: publisher,
		logger:    logger,
	}
}

// Submit accepts a station-condition report: it validates the payload,
// recomputes the reward server-side (client totals are advisory), persists
// the record together with its wallet credit in one transaction, and folds
// the report into the charger's status and trust score.
func (s *Service) Submit(ctx context.Context, userID, chargerID uuid.UUID, sub *Submission) (*Result, error) {
	sub.Normalize()
	if err := sub.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSubmission, err)
	}

	// 404 before accepting coins for a charger that does not exist.
	if _, err := s.chargers.Get(ctx, chargerID); err != nil {
		return nil, err
	}

	reward := CalculateReward(sub)

	now := time.Now()
	rec := &Record{
		ID:          uuid.New(),
		ChargerID:   chargerID,
		UserID:      userID,
		Submission:  *sub,
		CoinsEarned: reward.Total,
		CreatedAt:   now,
	}

	// Record and credit commit together: a failure leaves neither behind, so
	// resubmitting cannot double-count the report or the coins.
	recRef := rec.ID
	credit := &wallet.Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      reward.Total,
		Source:      wallet.SourceVerification,
		ReferenceID: &recRef,
		Description: "Verified charger",
		CreatedAt:   now,
	}
	if err := s.repo.CreateRecord(ctx, rec, credit); err != nil {
		return nil, err
	}

	summary, err := s.wallet.Summary(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read wallet after credit: %w", err)
	}
	newLevel := summary.Level

	if err := s.chargers.RecordVerification(ctx, chargerID); err != nil {
		// The reporter keeps their coins; the roll-up catches up on the
		// next scheduled recompute.
		s.logger.Error("Failed to fold verification into charger state",
			zap.Error(err),
			zap.String("charger_id", chargerID.String()))
	}

	s.publisher.Publish(notifications.Event{
		Type:   notifications.EventCoinsAwarded,
		Target: userID.String(),
		Data: map[string]interface{}{
			"coins_earned":  reward.Total,
			"bonus_coins":   reward.Bonus,
			"bonus_reasons": reward.Reasons,
			"new_level":     newLevel,
		},
	})

	s.logger.Info("Verification accepted",
		zap.String("verification_id", rec.ID.String()),
		zap.String("charger_id", chargerID.String()),
		zap.String("user_id", userID.String()),
		zap.String("action", string(sub.Action)),
		zap.Int("coins_earned", reward.Total))

	reasons := reward.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	return &Result{
		CoinsEarned:  reward.Total,
		BonusCoins:   reward.Bonus,
		BonusReasons: reasons,
		NewLevel:     newLevel,
	}, nil
}

// Recent returns the latest reports for a charger.
func (s *Service) Recent(ctx context.Context, chargerID uuid.UUID, limit int) ([]Record, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}
	return s.repo.ListByCharger(ctx, chargerID, limit)
}

// ContributionCount returns how many verifications a user has submitted,
// shown on their profile as a contribution stat.
func (s *Service) ContributionCount(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.CountByUser(ctx, userID)
}
