package service

import (
	"context"
	"time"
)

// UserBattleStats is a user's battle record
type UserBattleStats struct {
	UserID          int64     `json:"user_id"`
	Wins            int       `json:"wins"`
	Losses          int       `json:"losses"`
	Draws           int       `json:"draws"`
	Belts           int       `json:"belts"`
	BattlesFinished int       `json:"battles_finished"`
	ComputedAt      time.Time `json:"computed_at"`
}

// StatsCache caches computed user battle stats
type StatsCache interface {
	// Get returns the cached stats, nil on a miss
	Get(ctx context.Context, userID int64) (*UserBattleStats, error)

	// Set stores stats for the configured TTL. Stats computed before the
	// last Invalidate of the same user are dropped.
	Set(ctx context.Context, stats *UserBattleStats) error

	// Invalidate drops cached stats for the given users
	Invalidate(ctx context.Context, userIDs ...int64) error
}
