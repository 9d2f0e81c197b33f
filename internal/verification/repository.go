package verification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"sharaspot/backend/internal/wallet"
)

// Repository defines the interface for verification data access.
type Repository interface {
	CreateRecord(ctx context.Context, rec *Record, credit *wallet.Transaction) error
	ListByCharger(ctx context.Context, chargerID uuid.UUID, limit int) ([]Record, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL verification repository.
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateRecord persists a verification and its coin credit in one transaction.
// A resubmission after a failure can never double-insert the record while the
// reward is missing, or the other way around.
func (r *PostgresRepository) CreateRecord(ctx context.Context, rec *Record, credit *wallet.Transaction) error {
	payload, err := json.Marshal(rec.Submission)
	if err != nil {
		return fmt.Errorf("failed to marshal submission: %w", err)
	}
	rec.Payload = payload

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO verifications (id, charger_id, user_id, action, photo_url, payload, coins_earned, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if _, err := tx.ExecContext(ctx, query,
		rec.ID, rec.ChargerID, rec.UserID, rec.Submission.Action, rec.Submission.PhotoURL,
		rec.Payload, rec.CoinsEarned, rec.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to create verification: %w", err)
	}

	if err := wallet.InsertTransaction(ctx, tx, credit); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit verification: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByCharger(ctx context.Context, chargerID uuid.UUID, limit int) ([]Record, error) {
	query := `
		SELECT id, charger_id, user_id, payload, coins_earned, created_at
		FROM verifications
		WHERE charger_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	records := []Record{}
	if err := r.db.SelectContext(ctx, &records, query, chargerID, limit); err != nil {
		return nil, fmt.Errorf("failed to list verifications: %w", err)
	}
	for i := range records {
		if err := json.Unmarshal(records[i].Payload, &records[i].Submission); err != nil {
			return nil, fmt.Errorf("failed to unmarshal submission: %w", err)
		}
	}
	return records, nil
}

func (r *PostgresRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM verifications WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("failed to count verifications: %w", err)
	}
	return count, nil
}
