package wallet

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines the interface for wallet data access.
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	LifetimeCoins(ctx context.Context, userID uuid.UUID) (int, error)
	ListTransactions(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]Transaction, int, error)
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL wallet repository.
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateTransaction(ctx context.Context, tx *Transaction) error {
	return InsertTransaction(ctx, r.db, tx)
}

// InsertTransaction appends a ledger entry through the given executor. Other
// repositories use it to credit coins inside their own database transactions,
// so a reward is never written without the row that earned it.
func InsertTransaction(ctx context.Context, ext sqlx.ExtContext, tx *Transaction) error {
	query := `
		INSERT INTO coin_transactions (id, user_id, amount, source, reference_id, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := ext.ExecContext(ctx, query,
		tx.ID, tx.UserID, tx.Amount, tx.Source, tx.ReferenceID, tx.Description, tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create coin transaction: %w", err)
	}
	return nil
}

func (r *PostgresRepository) LifetimeCoins(ctx context.Context, userID uuid.UUID) (int, error) {
	var total int
	query := `SELECT COALESCE(SUM(amount), 0) FROM coin_transactions WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &total, query, userID); err != nil {
		return 0, fmt.Errorf("failed to sum coin transactions: %w", err)
	}
	return total, nil
}

func (r *PostgresRepository) ListTransactions(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]Transaction, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM coin_transactions WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, 0, fmt.Errorf("failed to count coin transactions: %w", err)
	}

	query := `
		SELECT id, user_id, amount, source, reference_id, description, created_at
		FROM coin_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	txs := []Transaction{}
	offset := (page - 1) * pageSize
	if err := r.db.SelectContext(ctx, &txs, query, userID, pageSize, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list coin transactions: %w", err)
	}
	return txs, total, nil
}

func (r *PostgresRepository) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	query := `
		SELECT t.user_id, u.display_name, COALESCE(SUM(t.amount), 0) AS coins
		FROM coin_transactions t
		JOIN users u ON u.id = t.user_id
		GROUP BY t.user_id, u.display_name
		ORDER BY coins DESC
		LIMIT $1
	`
	entries := []LeaderboardEntry{}
	if err := r.db.SelectContext(ctx, &entries, query, limit); err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	return entries, nil
}
