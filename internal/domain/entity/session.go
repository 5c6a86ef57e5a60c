package entity

import (
	"time"

	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/domain/scoring"
)

// Session is one user's attempt at a plan
type Session struct {
	ID        int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    int64      `json:"user_id" gorm:"not null;index"`
	BattleID  *int64     `json:"battle_id" gorm:"index"`
	PlanID    int64      `json:"plan_id" gorm:"not null"`
	TypeID    int        `json:"type_id" gorm:"not null"`
	StartTime time.Time  `json:"start_time" gorm:"not null;index"`
	EndTime   *time.Time `json:"end_time"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`

	// Relations
	Rounds []Round `json:"rounds,omitempty" gorm:"foreignKey:SessionID"`
}

// TableName returns the table name for GORM
func (Session) TableName() string {
	return "sessions"
}

// PlanType returns the session plan type
func (s *Session) PlanType() scoring.PlanType {
	return scoring.PlanType(s.TypeID)
}

// Punches returns the punches of the session's round. ok is false when no
// round was recorded. Combo and combo-set sessions have exactly one round.
func (s *Session) Punches() (punches []Punch, ok bool) {
	if len(s.Rounds) == 0 {
		return nil, false
	}
	return s.Rounds[0].Punches, true
}

// Round holds the punches captured during a session
type Round struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	SessionID int64     `json:"session_id" gorm:"not null;index"`
	StartTime time.Time `json:"start_time"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Relations
	Punches []Punch `json:"punches,omitempty" gorm:"foreignKey:RoundID"`
}

// TableName returns the table name for GORM
func (Round) TableName() string {
	return "session_rounds"
}

// Punch is a single sensor-captured punch
type Punch struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	RoundID   int64     `json:"round_id" gorm:"not null;index"`
	Sequence  int       `json:"sequence" gorm:"not null"`
	Hand      string    `json:"hand" gorm:"type:varchar(1);not null"`
	Type      string    `json:"punch_type" gorm:"column:punch_type;type:varchar(4);not null"`
	Speed     float64   `json:"speed"`
	Force     float64   `json:"force"`
	PunchTime time.Time `json:"punch_time"`
}

// TableName returns the table name for GORM
func (Punch) TableName() string {
	return "session_round_punches"
}

// ToScoring converts the punch into the scoring engine's input type
func (p Punch) ToScoring() scoring.Punch {
	return scoring.Punch{
		Hand:  p.Hand,
		Type:  p.Type,
		Speed: p.Speed,
		Force: p.Force,
	}
}

// ToScoringPunches converts punches keeping their order
func ToScoringPunches(punches []Punch) []scoring.Punch {
	out := make([]scoring.Punch, len(punches))
	for i, p := range punches {
		out[i] = p.ToScoring()
	}
	return out
}
