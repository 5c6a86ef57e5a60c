package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func results(userID int64, start time.Time, outcomes string) []BattleResult {
	other := userID + 1
	out := make([]BattleResult, 0, len(outcomes))
	for i, o := range outcomes {
		r := BattleResult{FinishedAt: start.Add(time.Duration(i) * time.Hour)}
		switch o {
		case 'W':
			id := userID
			r.WinnerUserID = &id
		case 'L':
			id := other
			r.WinnerUserID = &id
		}
		out = append(out, r)
	}
	return out
}

func TestCountWinsAndLosses(t *testing.T) {
	history := results(1, time.Now(), "WWLDWL")

	assert.Equal(t, 3, CountWins(1, history))
	assert.Equal(t, 2, CountLosses(1, history))
	assert.Equal(t, 0, CountWins(1, nil))
	assert.Equal(t, 0, CountLosses(1, nil))
}

func TestBeltCount(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		outcomes string
		want     int
	}{
		{name: "no battles", outcomes: "", want: 0},
		{name: "four wins", outcomes: "WWWW", want: 0},
		{name: "exactly five", outcomes: "WWWWW", want: 1},
		{name: "streak resets after belt", outcomes: "WWWWWWWWW", want: 1},
		{name: "ten straight", outcomes: "WWWWWWWWWW", want: 2},
		{name: "loss breaks streak", outcomes: "WWWWLWWWWW", want: 1},
		{name: "draw breaks streak", outcomes: "WWDWWWW", want: 0},
		{name: "alternating", outcomes: "WLWLWLWLWL", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BeltCount(1, results(1, start, tt.outcomes)))
		})
	}
}

func TestBeltCount_OrdersChronologically(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	history := results(1, start, "WWLWWW")

	// Newest first, as a repository sorted by id desc might hand it over.
	reversed := make([]BattleResult, len(history))
	for i, r := range history {
		reversed[len(history)-1-i] = r
	}
	// Oldest-first: W W L W W W -> no belt. Moving the loss to the end gives five straight.
	reversed[0].FinishedAt, reversed[3].FinishedAt = reversed[3].FinishedAt, reversed[0].FinishedAt

	assert.Equal(t, 0, BeltCount(1, history))
	assert.Equal(t, 1, BeltCount(1, reversed))
	assert.Equal(t, start.Add(5*time.Hour), history[5].FinishedAt, "input must not be reordered")
}

func TestAccuracyTotal(t *testing.T) {
	expected := []Label{"J", "RH"}
	rep := []Punch{punch("LJ", 1, 1), punch("RH", 1, 1)}

	attempts := []Attempt{
		{Expected: expected, Punches: concat(rep, rep)},
		{Expected: expected, Punches: concat(rep, []Punch{punch("LJ", 1, 1), punch("LH", 1, 1)})},
		{Expected: nil, Punches: rep},
	}

	assert.Equal(t, 3, AccuracyTotal(AccuracyCatalog, attempts))
	assert.Equal(t, 0, AccuracyTotal(AccuracyCatalog, nil))
}
