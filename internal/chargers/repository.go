package chargers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when a charger does not exist.
var ErrNotFound = errors.New("charger not found")

// Repository defines the interface for charger data access.
type Repository interface {
	CreateCharger(ctx context.Context, charger *Charger) error
	GetCharger(ctx context.Context, id uuid.UUID) (*Charger, error)
	ListChargers(ctx context.Context, filters *Filters) ([]Charger, int, error)
	Nearby(ctx context.Context, q NearbyQuery) ([]NearbyCharger, error)
	ListChargerIDs(ctx context.Context) ([]uuid.UUID, error)
	TrustSamples(ctx context.Context, chargerID uuid.UUID, since time.Time) ([]TrustSample, error)
	UpdateVerificationState(ctx context.Context, id uuid.UUID, status Status, trust float64, verifiedAt time.Time) error
	UpdateTrust(ctx context.Context, id uuid.UUID, status Status, trust float64) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL charger repository.
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateCharger(ctx context.Context, charger *Charger) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO chargers (
			id, name, address, latitude, longitude, status, trust_score,
			verification_count, added_by, last_verified_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = tx.ExecContext(ctx, query,
		charger.ID, charger.Name, charger.Address, charger.Latitude, charger.Longitude,
		charger.Status, charger.TrustScore, charger.VerificationCount, charger.AddedBy,
		charger.LastVerifiedAt, charger.CreatedAt, charger.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create charger: %w", err)
	}

	connQuery := `
		INSERT INTO connectors (id, charger_id, port_type, max_power_kw, count)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, conn := range charger.Connectors {
		if _, err := tx.ExecContext(ctx, connQuery,
			conn.ID, conn.ChargerID, conn.PortType, conn.MaxPowerKW, conn.Count,
		); err != nil {
			return fmt.Errorf("failed to create connector: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit charger: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetCharger(ctx context.Context, id uuid.UUID) (*Charger, error) {
	query := `
		SELECT id, name, address, latitude, longitude, status, trust_score,
			   verification_count, added_by, last_verified_at, created_at, updated_at
		FROM chargers
		WHERE id = $1
	`
	var charger Charger
	if err := r.db.GetContext(ctx, &charger, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get charger: %w", err)
	}

	if err := r.loadConnectors(ctx, &charger); err != nil {
		return nil, err
	}
	return &charger, nil
}

func (r *PostgresRepository) ListChargers(ctx context.Context, filters *Filters) ([]Charger, int, error) {
	where := ""
	args := []interface{}{}
	if filters.Status != nil {
		where = "WHERE status = $1"
		args = append(args, *filters.Status)
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM chargers %s", where)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count chargers: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, address, latitude, longitude, status, trust_score,
			   verification_count, added_by, last_verified_at, created_at, updated_at
		FROM chargers %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, filters.PageSize, (filters.Page-1)*filters.PageSize)

	chargers := []Charger{}
	if err := r.db.SelectContext(ctx, &chargers, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list chargers: %w", err)
	}
	return chargers, total, nil
}

// Nearby runs a haversine radius query. Fine for the row counts a single
// metro area produces; PostGIS would replace this at scale.
func (r *PostgresRepository) Nearby(ctx context.Context, q NearbyQuery) ([]NearbyCharger, error) {
	query := `
		SELECT id, name, address, latitude, longitude, status, trust_score,
			   verification_count, added_by, last_verified_at, created_at, updated_at,
			   6371 * 2 * asin(sqrt(
				   power(sin(radians(latitude - $1) / 2), 2) +
				   cos(radians($1)) * cos(radians(latitude)) *
				   power(sin(radians(longitude - $2) / 2), 2)
			   )) AS distance_km
		FROM chargers
		WHERE 6371 * 2 * asin(sqrt(
				   power(sin(radians(latitude - $1) / 2), 2) +
				   cos(radians($1)) * cos(radians(latitude)) *
				   power(sin(radians(longitude - $2) / 2), 2)
			   )) <= $3
		ORDER BY distance_km ASC
		LIMIT $4
	`
	results := []NearbyCharger{}
	if err := r.db.SelectContext(ctx, &results, query, q.Latitude, q.Longitude, q.RadiusKM, q.Limit); err != nil {
		return nil, fmt.Errorf("failed to query nearby chargers: %w", err)
	}
	return results, nil
}

func (r *PostgresRepository) ListChargerIDs(ctx context.Context) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	if err := r.db.SelectContext(ctx, &ids, `SELECT id FROM chargers`); err != nil {
		return nil, fmt.Errorf("failed to list charger ids: %w", err)
	}
	return ids, nil
}

func (r *PostgresRepository) TrustSamples(ctx context.Context, chargerID uuid.UUID, since time.Time) ([]TrustSample, error) {
	query := `
		SELECT action, photo_url IS NOT NULL AS has_photo, created_at
		FROM verifications
		WHERE charger_id = $1 AND created_at >= $2
		ORDER BY created_at DESC
	`
	samples := []TrustSample{}
	if err := r.db.SelectContext(ctx, &samples, query, chargerID, since); err != nil {
		return nil, fmt.Errorf("failed to load trust samples: %w", err)
	}
	return samples, nil
}

func (r *PostgresRepository) UpdateVerificationState(ctx context.Context, id uuid.UUID, status Status, trust float64, verifiedAt time.Time) error {
	query := `
		UPDATE chargers
		SET status = $2,
			trust_score = $3,
			verification_count = verification_count + 1,
			last_verified_at = $4,
			updated_at = $4
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id, status, trust, verifiedAt)
	if err != nil {
		return fmt.Errorf("failed to update charger verification state: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateTrust rewrites the rolled-up status and trust score without touching
// the verification counter. Used by the scheduled recompute.
func (r *PostgresRepository) UpdateTrust(ctx context.Context, id uuid.UUID, status Status, trust float64) error {
	query := `
		UPDATE chargers
		SET status = $2, trust_score = $3, updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id, status, trust)
	if err != nil {
		return fmt.Errorf("failed to update charger trust: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) loadConnectors(ctx context.Context, charger *Charger) error {
	query := `
		SELECT id, charger_id, port_type, max_power_kw, count
		FROM connectors
		WHERE charger_id = $1
	`
	connectors := []Connector{}
	if err := r.db.SelectContext(ctx, &connectors, query, charger.ID); err != nil {
		return fmt.Errorf("failed to load connectors: %w", err)
	}
	charger.Connectors = connectors
	return nil
}
