package scoring

import (
	"sort"
	"time"
)

// WinsPerBelt is the unbroken win streak that earns a belt.
const WinsPerBelt = 5

// BattleResult is a finalized battle from one user's history.
type BattleResult struct {
	WinnerUserID *int64
	FinishedAt   time.Time
}

// Attempt is one session to count accuracy reps for.
type Attempt struct {
	Expected []Label
	Punches  []Punch
}

// CountWins counts results won by userID.
func CountWins(userID int64, results []BattleResult) int {
	wins := 0
	for _, r := range results {
		if r.WinnerUserID != nil && *r.WinnerUserID == userID {
			wins++
		}
	}
	return wins
}

// CountLosses counts results won by someone else. Undecided results are neither.
func CountLosses(userID int64, results []BattleResult) int {
	losses := 0
	for _, r := range results {
		if r.WinnerUserID != nil && *r.WinnerUserID != userID {
			losses++
		}
	}
	return losses
}

// BeltCount walks results oldest first. Every win extends the streak, anything
// else resets it, and reaching WinsPerBelt awards a belt and starts over.
func BeltCount(userID int64, results []BattleResult) int {
	ordered := make([]BattleResult, len(results))
	copy(ordered, results)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].FinishedAt.Before(ordered[j].FinishedAt)
	})

	belts, streak := 0, 0
	for _, r := range ordered {
		if r.WinnerUserID == nil || *r.WinnerUserID != userID {
			streak = 0
			continue
		}
		streak++
		if streak == WinsPerBelt {
			belts++
			streak = 0
		}
	}
	return belts
}

// AccuracyTotal sums perfect repetitions over all attempts.
func AccuracyTotal(catalog Catalog, attempts []Attempt) int {
	total := 0
	for _, a := range attempts {
		total += CountReps(catalog, a.Expected, a.Punches)
	}
	return total
}
