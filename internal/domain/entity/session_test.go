package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/domain/scoring"
)

func TestPunch_ToScoring(t *testing.T) {
	p := Punch{Hand: "R", Type: "SH", Speed: 11.5, Force: 320}

	sp := p.ToScoring()

	assert.Equal(t, "RSH", sp.Label())
	assert.Equal(t, 11.5, sp.Speed)
	assert.Equal(t, float64(320), sp.Force)
}

func TestToScoringPunches(t *testing.T) {
	punches := []Punch{
		{Sequence: 1, Hand: "L", Type: "J", Speed: 10},
		{Sequence: 2, Hand: "R", Type: "H", Speed: 12},
	}

	out := ToScoringPunches(punches)

	assert.Len(t, out, 2)
	assert.Equal(t, "LJ", out[0].Label())
	assert.Equal(t, "RH", out[1].Label())
	assert.Empty(t, ToScoringPunches(nil))
}

func TestSession_PlanType(t *testing.T) {
	s := Session{TypeID: 3}
	assert.Equal(t, scoring.PlanTypeCombo, s.PlanType())
}

func TestSession_Punches(t *testing.T) {
	t.Run("no round", func(t *testing.T) {
		s := Session{}
		punches, ok := s.Punches()

		assert.False(t, ok)
		assert.Nil(t, punches)
	})

	t.Run("empty round", func(t *testing.T) {
		s := Session{Rounds: []Round{{ID: 1}}}
		punches, ok := s.Punches()

		assert.True(t, ok)
		assert.Empty(t, punches)
	})

	t.Run("first round", func(t *testing.T) {
		s := Session{Rounds: []Round{{ID: 1, Punches: []Punch{{Hand: "L", Type: "J"}}}}}
		punches, ok := s.Punches()

		assert.True(t, ok)
		assert.Len(t, punches, 1)
	})
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "sessions", Session{}.TableName())
	assert.Equal(t, "session_rounds", Round{}.TableName())
	assert.Equal(t, "session_round_punches", Punch{}.TableName())
	assert.Equal(t, "combos", Combo{}.TableName())
	assert.Equal(t, "combo_sets", ComboSet{}.TableName())
	assert.Equal(t, "combo_set_combos", ComboSetCombo{}.TableName())
}
