package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/domain/entity"
	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/domain/repository"
	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/domain/scoring"
	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/domain/service"
	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/infrastructure/metrics"
)

// Error definitions for battle usecase
var (
	ErrBattleNotFound    = errors.New("battle not found")
	ErrBattleNotFinished = errors.New("battle not finished by both users")
	ErrInvalidRequest    = errors.New("invalid request")
)

// MarkFinishedInput represents the input for marking a side finished
type MarkFinishedInput struct {
	UserID int64 `json:"user_id" binding:"required"`
}

// ScoreOutput summarizes one competitor's match score
type ScoreOutput struct {
	CorrectCount int     `json:"correct_count"`
	AverageSpeed float64 `json:"average_speed"`
	PeakForce    float64 `json:"peak_force"`
	Punches      int     `json:"punches"`
	NoData       bool    `json:"no_data"`
}

// BattleOutput represents the output for battle operations
type BattleOutput struct {
	BattleID         int64        `json:"battle_id"`
	UserID           int64        `json:"user_id"`
	OpponentUserID   int64        `json:"opponent_user_id"`
	PlanID           int64        `json:"plan_id"`
	PlanType         string       `json:"plan_type"`
	UserFinished     bool         `json:"user_finished"`
	OpponentFinished bool         `json:"opponent_finished"`
	Finalized        bool         `json:"finalized"`
	WinnerUserID     *int64       `json:"winner_user_id"`
	FinalizedAt      *time.Time   `json:"finalized_at,omitempty"`
	DecidedBy        scoring.Tier `json:"decided_by,omitempty"`
	UserScore        *ScoreOutput `json:"user_score,omitempty"`
	OpponentScore    *ScoreOutput `json:"opponent_score,omitempty"`
}

// BattleUsecase defines the interface for battle business logic
type BattleUsecase interface {
	MarkFinished(ctx context.Context, battleID int64, input *MarkFinishedInput) (*BattleOutput, error)
	FinalizeBattle(ctx context.Context, battleID int64) (*BattleOutput, error)
	FinalizePending(ctx context.Context, limit int) (int, error)
	GetResult(ctx context.Context, battleID int64) (*BattleOutput, error)
	Compare(ctx context.Context, input *CompareInput) (*CompareOutput, error)
}

type battleUsecase struct {
	battleRepo  repository.BattleRepository
	sessionRepo repository.SessionRepository
	expander    *scoring.Expander
	statsCache  service.StatsCache
	metrics     *metrics.Metrics
	log         *zap.Logger
	now         func() time.Time
}

// NewBattleUsecase creates a new battle usecase
func NewBattleUsecase(
	battleRepo repository.BattleRepository,
	sessionRepo repository.SessionRepository,
	comboRepo repository.ComboRepository,
	statsCache service.StatsCache,
	m *metrics.Metrics,
	log *zap.Logger,
) BattleUsecase {
	return &battleUsecase{
		battleRepo:  battleRepo,
		sessionRepo: sessionRepo,
		expander:    scoring.NewExpander(comboRepo, scoring.BattleCatalog),
		statsCache:  statsCache,
		metrics:     m,
		log:         log,
		now:         time.Now,
	}
}

func (u *battleUsecase) MarkFinished(ctx context.Context, battleID int64, input *MarkFinishedInput) (*BattleOutput, error) {
	if input == nil || input.UserID <= 0 {
		return nil, ErrInvalidRequest
	}

	battle, err := u.getBattle(ctx, battleID)
	if err != nil {
		return nil, err
	}

	if err := battle.MarkFinished(input.UserID, u.now()); err != nil {
		return nil, err
	}

	if err := u.battleRepo.Update(ctx, battle); err != nil {
		return nil, err
	}

	return toBattleOutput(battle), nil
}

func (u *battleUsecase) FinalizeBattle(ctx context.Context, battleID int64) (*BattleOutput, error) {
	battle, err := u.getBattle(ctx, battleID)
	if err != nil {
		return nil, err
	}
	return u.finalize(ctx, battle)
}

func (u *battleUsecase) FinalizePending(ctx context.Context, limit int) (int, error) {
	battles, err := u.battleRepo.ListPendingFinalization(ctx, limit)
	if err != nil {
		return 0, fmt.Errorf("failed to list pending battles: %w", err)
	}

	finalized := 0
	for _, battle := range battles {
		if err := ctx.Err(); err != nil {
			return finalized, err
		}
		_, err := u.finalize(ctx, battle)
		if isUnscorable(err) {
			// Plan errors are permanent; close the battle so it leaves the queue.
			err = u.closeUnscorable(ctx, battle, err)
		}
		if err != nil {
			u.log.Warn("failed to finalize battle",
				zap.Int64("battle_id", battle.ID),
				zap.Error(err),
			)
			continue
		}
		finalized++
	}

	return finalized, nil
}

// closeUnscorable stores an undecided verdict for a battle whose plan can
// never be scored
func (u *battleUsecase) closeUnscorable(ctx context.Context, battle *entity.Battle, cause error) error {
	at := u.now()
	stored, err := u.battleRepo.SaveVerdict(ctx, battle.ID, scoring.Verdict{DecidedBy: scoring.TierUnscorable}, at)
	if err != nil {
		return fmt.Errorf("failed to save verdict: %w", err)
	}
	if !wroteVerdict(stored, at) {
		return nil
	}

	u.metrics.ObserveVerdict(string(scoring.TierUnscorable), battle.PlanType().String())
	u.log.Warn("battle closed without a winner",
		zap.Int64("battle_id", battle.ID),
		zap.String("plan_type", battle.PlanType().String()),
		zap.Error(cause),
	)
	u.invalidateStats(ctx, battle)
	return nil
}

func (u *battleUsecase) GetResult(ctx context.Context, battleID int64) (*BattleOutput, error) {
	battle, err := u.getBattle(ctx, battleID)
	if err != nil {
		return nil, err
	}
	return toBattleOutput(battle), nil
}

func (u *battleUsecase) getBattle(ctx context.Context, battleID int64) (*entity.Battle, error) {
	if battleID <= 0 {
		return nil, ErrInvalidRequest
	}
	battle, err := u.battleRepo.GetByID(ctx, battleID)
	if err != nil {
		return nil, err
	}
	if battle == nil {
		return nil, ErrBattleNotFound
	}
	return battle, nil
}

func (u *battleUsecase) finalize(ctx context.Context, battle *entity.Battle) (*BattleOutput, error) {
	if battle.IsFinalized() {
		return toBattleOutput(battle), nil
	}
	if !battle.IsFinished() {
		return nil, ErrBattleNotFinished
	}

	start := u.now()
	out, err := u.score(ctx, battle)
	if err != nil {
		u.metrics.ObserveFinalizeError(finalizeErrorReason(err))
		return nil, err
	}
	u.metrics.ObserveFinalizeDuration(u.now().Sub(start))

	u.invalidateStats(ctx, battle)
	return out, nil
}

func (u *battleUsecase) invalidateStats(ctx context.Context, battle *entity.Battle) {
	if err := u.statsCache.Invalidate(ctx, battle.UserID, battle.OpponentUserID); err != nil {
		u.log.Warn("failed to invalidate stats cache",
			zap.Int64("battle_id", battle.ID),
			zap.Error(err),
		)
	}
}

func (u *battleUsecase) score(ctx context.Context, battle *entity.Battle) (*BattleOutput, error) {
	expected, err := u.expander.Expand(ctx, battle.PlanID, battle.PlanType())
	if err != nil {
		return nil, fmt.Errorf("failed to expand plan %d: %w", battle.PlanID, err)
	}

	var userScore, opponentScore scoring.MatchScore
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := u.loadScore(gctx, battle.ID, battle.UserID, expected)
		userScore = s
		return err
	})
	g.Go(func() error {
		s, err := u.loadScore(gctx, battle.ID, battle.OpponentUserID, expected)
		opponentScore = s
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	verdict := scoring.Decide(userScore, opponentScore, battle.UserID, battle.OpponentUserID)

	at := u.now()
	stored, err := u.battleRepo.SaveVerdict(ctx, battle.ID, verdict, at)
	if err != nil {
		return nil, fmt.Errorf("failed to save verdict: %w", err)
	}

	// Another worker stored its verdict first; report that one as is.
	if !wroteVerdict(stored, at) {
		return toBattleOutput(stored), nil
	}

	u.metrics.ObserveVerdict(string(verdict.DecidedBy), battle.PlanType().String())
	u.log.Info("battle finalized",
		zap.Int64("battle_id", battle.ID),
		zap.String("decided_by", string(verdict.DecidedBy)),
		zap.Int64p("winner_user_id", stored.WinnerUserID),
		zap.Int("user_correct", userScore.CorrectCount),
		zap.Int("opponent_correct", opponentScore.CorrectCount),
	)

	out := toBattleOutput(stored)
	out.DecidedBy = verdict.DecidedBy
	out.UserScore = toScoreOutput(userScore)
	out.OpponentScore = toScoreOutput(opponentScore)
	return out, nil
}

// loadScore scores one side of the battle. A user without a session or round
// gets the no-data score.
func (u *battleUsecase) loadScore(ctx context.Context, battleID, userID int64, expected []scoring.Label) (scoring.MatchScore, error) {
	session, err := u.sessionRepo.GetBattleSession(ctx, battleID, userID)
	if err != nil {
		return scoring.MatchScore{}, fmt.Errorf("failed to load session of user %d: %w", userID, err)
	}
	if session == nil {
		return scoring.NoDataScore(), nil
	}

	punches, ok := session.Punches()
	if !ok {
		return scoring.NoDataScore(), nil
	}

	return scoring.Score(scoring.BattleCatalog, expected, entity.ToScoringPunches(punches)), nil
}

// wroteVerdict reports whether stored carries the verdict saved at at rather
// than one stored earlier by another worker
func wroteVerdict(stored *entity.Battle, at time.Time) bool {
	return stored.FinalizedAt != nil && stored.FinalizedAt.Equal(at)
}

// isUnscorable reports whether err means the battle plan can never be scored
func isUnscorable(err error) bool {
	return errors.Is(err, scoring.ErrUnsupportedPlanType) ||
		errors.Is(err, scoring.ErrUnknownPunchCode) ||
		errors.Is(err, repository.ErrPlanNotFound)
}

func finalizeErrorReason(err error) string {
	switch {
	case errors.Is(err, scoring.ErrUnknownPunchCode):
		return "unknown_punch_code"
	case errors.Is(err, scoring.ErrUnsupportedPlanType):
		return "unsupported_plan_type"
	case errors.Is(err, repository.ErrPlanNotFound):
		return "plan_not_found"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "storage"
	}
}

func toBattleOutput(b *entity.Battle) *BattleOutput {
	return &BattleOutput{
		BattleID:         b.ID,
		UserID:           b.UserID,
		OpponentUserID:   b.OpponentUserID,
		PlanID:           b.PlanID,
		PlanType:         b.PlanType().String(),
		UserFinished:     b.UserFinished,
		OpponentFinished: b.OpponentFinished,
		Finalized:        b.IsFinalized(),
		WinnerUserID:     b.WinnerUserID,
		FinalizedAt:      b.FinalizedAt,
	}
}

func toScoreOutput(s scoring.MatchScore) *ScoreOutput {
	out := &ScoreOutput{
		CorrectCount: s.CorrectCount,
		Punches:      len(s.AllSpeeds),
		NoData:       s.NoData,
	}
	if len(s.CorrectSpeeds) > 0 {
		var sum float64
		for _, v := range s.CorrectSpeeds {
			sum += v
		}
		out.AverageSpeed = sum / float64(len(s.CorrectSpeeds))
	}
	for _, f := range s.CorrectForces {
		out.PeakForce = max(out.PeakForce, f)
	}
	return out
}
