package repository

import (
	"context"
	"errors"
	"time"

	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/domain/entity"
	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/domain/scoring"
)

// ErrPlanNotFound is returned when a battle references a combo or combo set that does not exist
var ErrPlanNotFound = errors.New("plan not found")

// BattleRepository defines the interface for battle data operations
type BattleRepository interface {
	// GetByID retrieves a battle by its ID, nil if it does not exist
	GetByID(ctx context.Context, id int64) (*entity.Battle, error)

	// Update updates a battle
	Update(ctx context.Context, battle *entity.Battle) error

	// SaveVerdict locks the battle row and stores the verdict unless the
	// battle was already finalized. It returns the battle as stored.
	SaveVerdict(ctx context.Context, battleID int64, verdict scoring.Verdict, at time.Time) (*entity.Battle, error)

	// ListPendingFinalization retrieves finished battles without a verdict, oldest first
	ListPendingFinalization(ctx context.Context, limit int) ([]*entity.Battle, error)

	// ListFinalizedByUser retrieves a user's finalized battles
	ListFinalizedByUser(ctx context.Context, userID int64) ([]*entity.Battle, error)
}

// SessionRepository defines the interface for session data operations
type SessionRepository interface {
	// GetBattleSession retrieves a user's session for a battle with its round
	// and punches in capture order, nil if the user never started one
	GetBattleSession(ctx context.Context, battleID, userID int64) (*entity.Session, error)

	// ListByUserSince retrieves a user's combo and combo-set sessions started after since
	ListByUserSince(ctx context.Context, userID int64, since time.Time) ([]*entity.Session, error)
}

// ComboRepository reads combo definitions for plan expansion
type ComboRepository interface {
	scoring.PlanReader
}
