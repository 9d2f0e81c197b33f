package chargers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sharaspot/backend/internal/notifications"
	"sharaspot/backend/internal/wallet"
)

const (
	// AddChargerReward is the flat coin reward for contributing a charger.
	AddChargerReward = 15
	// trustWindow bounds how far back verifications feed the trust score.
	trustWindow = 90 * 24 * time.Hour
)

// Service provides business logic for the charger registry.
type Service struct {
	repo      Repository
	wallet    *wallet.Service
	publisher notifications.Publisher
	cache     *NearbyCache
	logger    *zap.Logger
}

// NewService creates a new charger service.
func NewService(repo Repository, walletSvc *wallet.Service, publisher notifications.Publisher, cache *NearbyCache, logger *zap.Logger) *Service {
	return &Service{
		repo:      repo,
		wallet:    walletSvc,
		publisher: publisher,
		cache:     cache,
		logger:    logger,
	}
}

// Create registers a new charger and credits the contributor.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req *CreateChargerRequest) (*Charger, error) {
	now := time.Now()
	charger := &Charger{
		ID:         uuid.New(),
		Name:       req.Name,
		Address:    req.Address,
		Latitude:   *req.Latitude,
		Longitude:  *req.Longitude,
		Status:     StatusUnverified,
		TrustScore: neutralTrust,
		AddedBy:    userID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, c := range req.Connectors {
		charger.Connectors = append(charger.Connectors, Connector{
			ID:         uuid.New(),
			ChargerID:  charger.ID,
			PortType:   c.PortType,
			MaxPowerKW: c.MaxPowerKW,
			Count:      c.Count,
		})
	}

	if err := s.repo.CreateCharger(ctx, charger); err != nil {
		return nil, err
	}

	chargerRef := charger.ID
	if _, err := s.wallet.Credit(ctx, userID, AddChargerReward, wallet.SourceChargerAdded, &chargerRef, "Added charger "+charger.Name); err != nil {
		// The charger exists; a failed credit is reconciled by support, not
		// by rolling back the contribution.
		s.logger.Error("Failed to credit add-charger reward",
			zap.Error(err),
			zap.String("charger_id", charger.ID.String()),
			zap.String("user_id", userID.String()))
	}

	s.cache.Clear()
	s.publisher.Publish(notifications.Event{
		Type: notifications.EventChargerAdded,
		Data: map[string]interface{}{
			"charger_id": charger.ID.String(),
			"name":       charger.Name,
			"latitude":   charger.Latitude,
			"longitude":  charger.Longitude,
		},
	})

	s.logger.Info("Charger created",
		zap.String("charger_id", charger.ID.String()),
		zap.String("added_by", userID.String()))

	return charger, nil
}

// Get loads a charger with its connectors.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Charger, error) {
	return s.repo.GetCharger(ctx, id)
}

// List returns a page of chargers.
func (s *Service) List(ctx context.Context, filters *Filters) ([]Charger, int, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 || filters.PageSize > 100 {
		filters.PageSize = 20
	}
	return s.repo.ListChargers(ctx, filters)
}

// Nearby returns chargers within the query radius, cached briefly.
func (s *Service) Nearby(ctx context.Context, q NearbyQuery) ([]NearbyCharger, error) {
	if q.RadiusKM <= 0 || q.RadiusKM > 100 {
		return nil, fmt.Errorf("radius_km must be between 0 and 100")
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 50
	}

	key := s.cache.Key(q)
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	results, err := s.repo.Nearby(ctx, q)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, results)
	return results, nil
}

// RecordVerification folds a fresh verification into the charger's rolled-up
// status and trust score. Called inline on every accepted submission.
func (s *Service) RecordVerification(ctx context.Context, chargerID uuid.UUID) error {
	now := time.Now()
	samples, err := s.repo.TrustSamples(ctx, chargerID, now.Add(-trustWindow))
	if err != nil {
		return err
	}

	status, trust := ComputeTrust(samples, now)
	if err := s.repo.UpdateVerificationState(ctx, chargerID, status, trust, now); err != nil {
		return err
	}

	s.cache.Clear()
	s.publisher.Publish(notifications.Event{
		Type: notifications.EventChargerStatus,
		Data: map[string]interface{}{
			"charger_id":  chargerID.String(),
			"status":      string(status),
			"trust_score": trust,
		},
	})
	return nil
}

// RefreshTrust recomputes one charger's trust from scratch. Used by the
// scheduled recompute so scores decay even when no one submits.
func (s *Service) RefreshTrust(ctx context.Context, chargerID uuid.UUID) error {
	now := time.Now()
	samples, err := s.repo.TrustSamples(ctx, chargerID, now.Add(-trustWindow))
	if err != nil {
		return err
	}

	status, trust := ComputeTrust(samples, now)
	return s.repo.UpdateTrust(ctx, chargerID, status, trust)
}

// RefreshAllTrust recomputes every charger's trust score.
func (s *Service) RefreshAllTrust(ctx context.Context) (int, error) {
	ids, err := s.repo.ListChargerIDs(ctx)
	if err != nil {
		return 0, err
	}

	refreshed := 0
	for _, id := range ids {
		if err := s.RefreshTrust(ctx, id); err != nil {
			s.logger.Error("Failed to refresh trust score",
				zap.Error(err),
				zap.String("charger_id", id.String()))
			continue
		}
		refreshed++
	}
	s.cache.Clear()
	return refreshed, nil
}
