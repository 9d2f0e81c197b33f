package wallet

import (
	"time"

	"github.com/google/uuid"
)

// TransactionSource identifies what earned (or adjusted) the coins.
type TransactionSource string

const (
	SourceVerification TransactionSource = "verification"
	SourceChargerAdded TransactionSource = "charger_added"
	SourceAdjustment   TransactionSource = "adjustment"
)

// Transaction is one append-only ledger entry. Balances are never stored;
// they are always the sum of a user's transactions.
type Transaction struct {
	ID          uuid.UUID         `db:"id" json:"id"`
	UserID      uuid.UUID         `db:"user_id" json:"user_id"`
	Amount      int               `db:"amount" json:"amount"`
	Source      TransactionSource `db:"source" json:"source"`
	ReferenceID *uuid.UUID        `db:"reference_id" json:"reference_id,omitempty"`
	Description string            `db:"description" json:"description"`
	CreatedAt   time.Time         `db:"created_at" json:"created_at"`
}

// Summary is the wallet view returned to the client.
type Summary struct {
	Balance     int `json:"balance"`
	Level       int `json:"level"`
	LevelFloor  int `json:"level_floor"`
	NextLevelAt int `json:"next_level_at"`
}

// LeaderboardEntry is one row of the top-earners board.
type LeaderboardEntry struct {
	Rank        int       `db:"-" json:"rank"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	DisplayName string    `db:"display_name" json:"display_name"`
	Coins       int       `db:"coins" json:"coins"`
	Level       int       `db:"-" json:"level"`
}

// CoinsForLevel returns the lifetime-coin floor of a level. Level 1 starts at
// zero and each level costs 100 more coins than the one before it, so the
// floor of level n is 100 * (n-1) * n / 2.
func CoinsForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return 100 * (level - 1) * level / 2
}

// LevelForCoins maps lifetime coins to a level.
func LevelForCoins(coins int) int {
	level := 1
	for CoinsForLevel(level+1) <= coins {
		level++
	}
	return level
}
