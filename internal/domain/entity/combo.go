package entity

import (
	"strings"
	"time"

	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/domain/scoring"
)

// Combo is a trainer-defined ordered sequence of punch codes
type Combo struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	TrainerID int64     `json:"trainer_id" gorm:"index"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	KeySet    string    `json:"key_set" gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName returns the table name for GORM
func (Combo) TableName() string {
	return "combos"
}

// Codes splits the stored key set ("1,2,DL") into punch codes
func (c *Combo) Codes() []scoring.PunchCode {
	return ParseKeySet(c.KeySet)
}

// ParseKeySet splits a comma separated key set. Blank entries are kept so an
// expansion can reject them instead of silently shifting positions.
func ParseKeySet(keySet string) []scoring.PunchCode {
	if strings.TrimSpace(keySet) == "" {
		return nil
	}
	parts := strings.Split(keySet, ",")
	codes := make([]scoring.PunchCode, len(parts))
	for i, p := range parts {
		codes[i] = scoring.PunchCode(strings.ToUpper(strings.TrimSpace(p)))
	}
	return codes
}

// ComboSet is an ordered list of combos drilled as one
type ComboSet struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	TrainerID int64     `json:"trainer_id" gorm:"index"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Relations
	Combos []ComboSetCombo `json:"combos,omitempty" gorm:"foreignKey:ComboSetID"`
}

// TableName returns the table name for GORM
func (ComboSet) TableName() string {
	return "combo_sets"
}

// ComboSetCombo places a combo at a position within a set
type ComboSetCombo struct {
	ID         int64 `json:"id" gorm:"primaryKey;autoIncrement"`
	ComboSetID int64 `json:"combo_set_id" gorm:"not null;index"`
	ComboID    int64 `json:"combo_id" gorm:"not null"`
	Position   int   `json:"position" gorm:"not null"`

	Combo Combo `json:"combo" gorm:"foreignKey:ComboID"`
}

// TableName returns the table name for GORM
func (ComboSetCombo) TableName() string {
	return "combo_set_combos"
}
