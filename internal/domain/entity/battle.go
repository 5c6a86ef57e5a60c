package entity

import (
	"errors"
	"time"

	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/domain/scoring"
)

// ErrNotParticipant is returned when a user acts on a battle they are not part of
var ErrNotParticipant = errors.New("user is not a battle participant")

// Battle is a head-to-head challenge between two users on the same plan
type Battle struct {
	ID                 int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID             int64      `json:"user_id" gorm:"not null;index"`
	OpponentUserID     int64      `json:"opponent_user_id" gorm:"not null;index"`
	PlanID             int64      `json:"plan_id" gorm:"not null"`
	TypeID             int        `json:"type_id" gorm:"not null"`
	UserFinished       bool       `json:"user_finished" gorm:"default:false"`
	OpponentFinished   bool       `json:"opponent_finished" gorm:"default:false"`
	UserFinishedAt     *time.Time `json:"user_finished_at"`
	OpponentFinishedAt *time.Time `json:"opponent_finished_at"`
	WinnerUserID       *int64     `json:"winner_user_id" gorm:"index"`
	FinalizedAt        *time.Time `json:"finalized_at" gorm:"index"`
	CreatedAt          time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM
func (Battle) TableName() string {
	return "battles"
}

// NewBattle creates a challenge from userID to opponentUserID
func NewBattle(userID, opponentUserID, planID int64, planType scoring.PlanType) *Battle {
	return &Battle{
		UserID:         userID,
		OpponentUserID: opponentUserID,
		PlanID:         planID,
		TypeID:         int(planType),
	}
}

// PlanType returns the battle plan type
func (b *Battle) PlanType() scoring.PlanType {
	return scoring.PlanType(b.TypeID)
}

// HasParticipant returns true if userID is either side of the battle
func (b *Battle) HasParticipant(userID int64) bool {
	return b.UserID == userID || b.OpponentUserID == userID
}

// IsFinished returns true once both sides have submitted their session
func (b *Battle) IsFinished() bool {
	return b.UserFinished && b.OpponentFinished
}

// IsFinalized returns true once a verdict has been stored
func (b *Battle) IsFinalized() bool {
	return b.FinalizedAt != nil
}

// MarkFinished records that userID completed their attempt at the given time.
// Marking an already finished side is a no-op.
func (b *Battle) MarkFinished(userID int64, at time.Time) error {
	switch userID {
	case b.UserID:
		if !b.UserFinished {
			b.UserFinished = true
			b.UserFinishedAt = &at
		}
	case b.OpponentUserID:
		if !b.OpponentFinished {
			b.OpponentFinished = true
			b.OpponentFinishedAt = &at
		}
	default:
		return ErrNotParticipant
	}
	return nil
}

// ApplyVerdict stores the verdict outcome on the battle
func (b *Battle) ApplyVerdict(v scoring.Verdict, at time.Time) {
	b.WinnerUserID = v.WinnerUserID
	b.FinalizedAt = &at
}

// FinishedAt returns the time the later side finished, falling back to the
// last update for rows finished before timestamps were recorded
func (b *Battle) FinishedAt() time.Time {
	var latest time.Time
	for _, t := range []*time.Time{b.UserFinishedAt, b.OpponentFinishedAt} {
		if t != nil && t.After(latest) {
			latest = *t
		}
	}
	if latest.IsZero() {
		return b.UpdatedAt
	}
	return latest
}

// Result converts the battle into a history entry for aggregation
func (b *Battle) Result() scoring.BattleResult {
	return scoring.BattleResult{
		WinnerUserID: b.WinnerUserID,
		FinishedAt:   b.FinishedAt(),
	}
}
