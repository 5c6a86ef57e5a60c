package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func punch(label string, speed, force float64) Punch {
	return Punch{Hand: label[:1], Type: label[1:], Speed: speed, Force: force}
}

func TestPunch_Label(t *testing.T) {
	assert.Equal(t, "LJ", Punch{Hand: "L", Type: "J"}.Label())
	assert.Equal(t, "RSH", Punch{Hand: "R", Type: "SH"}.Label())
}

func TestScore(t *testing.T) {
	expected := []Label{"LJ/RJ", "RH", "LU"}

	tests := []struct {
		name          string
		punches       []Punch
		correct       int
		correctSpeeds []float64
		correctForces []float64
		allSpeeds     []float64
	}{
		{
			name:          "all correct",
			punches:       []Punch{punch("RJ", 10, 5), punch("RH", 12, 6), punch("LU", 9, 4)},
			correct:       3,
			correctSpeeds: []float64{10, 12, 9},
			correctForces: []float64{5, 6, 4},
			allSpeeds:     []float64{10, 12, 9},
		},
		{
			name:          "one wrong",
			punches:       []Punch{punch("LJ", 10, 5), punch("RS", 7, 8), punch("LU", 9, 4)},
			correct:       2,
			correctSpeeds: []float64{10, 9},
			correctForces: []float64{5, 4},
			allSpeeds:     []float64{10, 7, 9},
		},
		{
			name:          "shorter than expected",
			punches:       []Punch{punch("LJ", 10, 5)},
			correct:       1,
			correctSpeeds: []float64{10},
			correctForces: []float64{5},
			allSpeeds:     []float64{10},
		},
		{
			name: "longer than expected only aligns the prefix",
			punches: []Punch{
				punch("LJ", 10, 5), punch("RH", 12, 6), punch("LU", 9, 4), punch("LJ", 3, 9),
			},
			correct:       3,
			correctSpeeds: []float64{10, 12, 9},
			correctForces: []float64{5, 6, 4},
			allSpeeds:     []float64{10, 12, 9, 3},
		},
		{
			name:          "no punches",
			punches:       nil,
			correct:       0,
			correctSpeeds: []float64{},
			correctForces: []float64{},
			allSpeeds:     []float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := Score(BattleCatalog, expected, tt.punches)

			assert.False(t, score.NoData)
			assert.Equal(t, tt.correct, score.CorrectCount)
			assert.Equal(t, tt.correctSpeeds, score.CorrectSpeeds)
			assert.Equal(t, tt.correctForces, score.CorrectForces)
			assert.Equal(t, tt.allSpeeds, score.AllSpeeds)
		})
	}
}

func TestScore_EmptyExpected(t *testing.T) {
	score := Score(BattleCatalog, nil, []Punch{punch("LJ", 10, 5), punch("RH", 8, 6)})

	assert.Equal(t, 0, score.CorrectCount)
	assert.Empty(t, score.CorrectSpeeds)
	assert.Equal(t, []float64{10, 8}, score.AllSpeeds)
}

func TestNoDataScore(t *testing.T) {
	noData := NoDataScore()
	zero := Score(BattleCatalog, []Label{"LH"}, nil)

	assert.True(t, noData.NoData)
	assert.False(t, zero.NoData)
	assert.NotEqual(t, noData, zero)
}

func TestCountReps(t *testing.T) {
	expected := []Label{"J", "S", "LH"}
	rep := []Punch{punch("LJ", 1, 1), punch("RS", 1, 1), punch("LH", 1, 1)}
	broken := []Punch{punch("LJ", 1, 1), punch("RH", 1, 1), punch("LH", 1, 1)}

	tests := []struct {
		name     string
		expected []Label
		punches  []Punch
		want     int
	}{
		{name: "single perfect rep", expected: expected, punches: rep, want: 1},
		{name: "three back to back", expected: expected, punches: concat(rep, rep, rep), want: 3},
		{name: "broken block in the middle", expected: expected, punches: concat(rep, broken, rep), want: 2},
		{name: "trailing partial block ignored", expected: expected, punches: concat(rep, rep[:2]), want: 1},
		{name: "shorter than combo", expected: expected, punches: rep[:1], want: 0},
		{name: "no punches", expected: expected, punches: nil, want: 0},
		{name: "empty combo", expected: nil, punches: rep, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountReps(AccuracyCatalog, tt.expected, tt.punches))
		})
	}
}

func TestCountReps_DiffersFromPerPunchScore(t *testing.T) {
	expected := []Label{"LJ/RJ", "RH"}
	punches := []Punch{punch("LJ", 1, 1), punch("LH", 1, 1)}

	assert.Equal(t, 1, Score(BattleCatalog, expected, punches).CorrectCount)
	assert.Equal(t, 0, CountReps(BattleCatalog, expected, punches))
}

func concat(blocks ...[]Punch) []Punch {
	var out []Punch
	for _, b := range blocks {
		out = append(out, b...)
	}
	return out
}
