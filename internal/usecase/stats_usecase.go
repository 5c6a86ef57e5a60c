package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/domain/entity"
	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/domain/repository"
	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/domain/scoring"
	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/domain/service"
	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/infrastructure/metrics"
)

// AccuracyOutput is a user's combo accuracy over a period
type AccuracyOutput struct {
	UserID   int64     `json:"user_id"`
	Since    time.Time `json:"since"`
	Sessions int       `json:"sessions"`
	Reps     int       `json:"reps"`
}

// StatsUsecase defines the interface for user battle statistics
type StatsUsecase interface {
	GetUserStats(ctx context.Context, userID int64) (*service.UserBattleStats, error)
	GetAccuracy(ctx context.Context, userID int64, since time.Time) (*AccuracyOutput, error)
}

type statsUsecase struct {
	battleRepo  repository.BattleRepository
	sessionRepo repository.SessionRepository
	expander    *scoring.Expander
	cache       service.StatsCache
	metrics     *metrics.Metrics
	log         *zap.Logger
	now         func() time.Time
}

// NewStatsUsecase creates a new stats usecase
func NewStatsUsecase(
	battleRepo repository.BattleRepository,
	sessionRepo repository.SessionRepository,
	comboRepo repository.ComboRepository,
	cache service.StatsCache,
	m *metrics.Metrics,
	log *zap.Logger,
) StatsUsecase {
	return &statsUsecase{
		battleRepo:  battleRepo,
		sessionRepo: sessionRepo,
		expander:    scoring.NewExpander(comboRepo, scoring.AccuracyCatalog),
		cache:       cache,
		metrics:     m,
		log:         log,
		now:         time.Now,
	}
}

func (u *statsUsecase) GetUserStats(ctx context.Context, userID int64) (*service.UserBattleStats, error) {
	if userID <= 0 {
		return nil, ErrInvalidRequest
	}

	cached, err := u.cache.Get(ctx, userID)
	if err != nil {
		u.log.Warn("stats cache read failed", zap.Int64("user_id", userID), zap.Error(err))
	}
	if cached != nil {
		u.metrics.ObserveStatsCache(true)
		return cached, nil
	}
	u.metrics.ObserveStatsCache(false)

	// Taken before the read so a finalization that lands during it wins.
	computedAt := u.now().UTC()
	battles, err := u.battleRepo.ListFinalizedByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list battles of user %d: %w", userID, err)
	}

	results := make([]scoring.BattleResult, len(battles))
	for i, b := range battles {
		results[i] = b.Result()
	}

	wins := scoring.CountWins(userID, results)
	losses := scoring.CountLosses(userID, results)
	stats := &service.UserBattleStats{
		UserID:          userID,
		Wins:            wins,
		Losses:          losses,
		Draws:           len(results) - wins - losses,
		Belts:           scoring.BeltCount(userID, results),
		BattlesFinished: len(results),
		ComputedAt:      computedAt,
	}

	if err := u.cache.Set(ctx, stats); err != nil {
		u.log.Warn("stats cache write failed", zap.Int64("user_id", userID), zap.Error(err))
	}

	return stats, nil
}

func (u *statsUsecase) GetAccuracy(ctx context.Context, userID int64, since time.Time) (*AccuracyOutput, error) {
	if userID <= 0 {
		return nil, ErrInvalidRequest
	}

	sessions, err := u.sessionRepo.ListByUserSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions of user %d: %w", userID, err)
	}

	attempts, err := u.attempts(ctx, sessions)
	if err != nil {
		return nil, err
	}

	return &AccuracyOutput{
		UserID:   userID,
		Since:    since,
		Sessions: len(attempts),
		Reps:     scoring.AccuracyTotal(scoring.AccuracyCatalog, attempts),
	}, nil
}

// attempts pairs each session that has a round with its plan's expected
// labels. Plans shared by several sessions are expanded once.
func (u *statsUsecase) attempts(ctx context.Context, sessions []*entity.Session) ([]scoring.Attempt, error) {
	type planKey struct {
		id  int64
		typ scoring.PlanType
	}
	plans := make(map[planKey][]scoring.Label)

	attempts := make([]scoring.Attempt, 0, len(sessions))
	for _, s := range sessions {
		punches, ok := s.Punches()
		if !ok {
			continue
		}

		key := planKey{id: s.PlanID, typ: s.PlanType()}
		expected, seen := plans[key]
		if !seen {
			var err error
			expected, err = u.expander.Expand(ctx, s.PlanID, s.PlanType())
			if err != nil {
				return nil, fmt.Errorf("failed to expand plan %d of session %d: %w", s.PlanID, s.ID, err)
			}
			plans[key] = expected
		}

		attempts = append(attempts, scoring.Attempt{
			Expected: expected,
			Punches:  entity.ToScoringPunches(punches),
		})
	}
	return attempts, nil
}
