package scoring

// Tier names the rung of the tie-break ladder that produced a verdict.
type Tier string

const (
	TierNoData       Tier = "no_data"
	TierCorrectCount Tier = "correct_count"
	TierAverageSpeed Tier = "average_speed"
	TierPeakForce    Tier = "peak_force"
	TierRawSpeed     Tier = "raw_speed"
	TierDraw         Tier = "draw"

	// TierUnscorable marks a battle closed without scoring because its plan
	// cannot be expanded.
	TierUnscorable Tier = "unscorable"
)

// Verdict is the outcome of a battle. Winner and loser are both nil when the
// battle could not be decided.
type Verdict struct {
	WinnerUserID *int64 `json:"winner_user_id"`
	LoserUserID  *int64 `json:"loser_user_id"`
	DecidedBy    Tier   `json:"decided_by"`
}

// Decided returns true if the verdict names a winner.
func (v Verdict) Decided() bool {
	return v.WinnerUserID != nil
}

// Decide applies the tie-break ladder to two scores:
//
//  1. more correct punches wins
//  2. equal non-zero counts: higher average speed of correct punches wins
//  3. still tied: higher peak force of correct punches wins
//  4. both sides zero correct: lower minimum raw punch speed wins
//
// A tier whose input list is empty on either side is skipped. Equal non-zero
// counts that tiers 2 and 3 cannot separate are a draw.
func Decide(a, b MatchScore, userA, userB int64) Verdict {
	if a.NoData || b.NoData {
		return Verdict{DecidedBy: TierNoData}
	}

	if a.CorrectCount != b.CorrectCount {
		return pick(a.CorrectCount > b.CorrectCount, userA, userB, TierCorrectCount)
	}

	if a.CorrectCount > 0 {
		// Higher wins here even though lower speed is faster everywhere else.
		if avgA, avgB, ok := both(mean, a.CorrectSpeeds, b.CorrectSpeeds); ok && avgA != avgB {
			return pick(avgA > avgB, userA, userB, TierAverageSpeed)
		}
		if maxA, maxB, ok := both(maximum, a.CorrectForces, b.CorrectForces); ok && maxA != maxB {
			return pick(maxA > maxB, userA, userB, TierPeakForce)
		}
		return Verdict{DecidedBy: TierDraw}
	}

	if minA, minB, ok := both(minimum, a.AllSpeeds, b.AllSpeeds); ok && minA != minB {
		return pick(minA < minB, userA, userB, TierRawSpeed)
	}
	return Verdict{DecidedBy: TierDraw}
}

func pick(aWins bool, userA, userB int64, tier Tier) Verdict {
	winner, loser := userB, userA
	if aWins {
		winner, loser = userA, userB
	}
	return Verdict{WinnerUserID: &winner, LoserUserID: &loser, DecidedBy: tier}
}

// both applies agg to each list; ok is false if either list is empty.
func both(agg func([]float64) float64, a, b []float64) (float64, float64, bool) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, false
	}
	return agg(a), agg(b), true
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func maximum(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		m = max(m, v)
	}
	return m
}

func minimum(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		m = min(m, v)
	}
	return m
}
