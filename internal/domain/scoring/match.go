package scoring

// Punch is one captured punch as the engine sees it.
type Punch struct {
	Hand  string  // "L" or "R"
	Type  string  // "J", "S", "H", "U", "SH", "D"
	Speed float64 // lower is faster
	Force float64
}

// Label returns hand + type, e.g. "LJ".
func (p Punch) Label() string {
	return p.Hand + p.Type
}

// MatchScore is one competitor's result against the expected sequence.
type MatchScore struct {
	CorrectCount  int
	CorrectSpeeds []float64
	CorrectForces []float64
	AllSpeeds     []float64

	// NoData is set when the competitor has no session or round at all,
	// which is not the same thing as a zero score.
	NoData bool
}

// NoDataScore is the result for a competitor without a session or round.
func NoDataScore() MatchScore {
	return MatchScore{NoData: true}
}

// Score aligns punches with expected position by position, up to the shorter
// of the two. Correct punches contribute speed and force to the correct lists.
// AllSpeeds holds the speed of every punch in the round, aligned or not.
func Score(catalog Catalog, expected []Label, punches []Punch) MatchScore {
	n := min(len(expected), len(punches))

	score := MatchScore{
		CorrectSpeeds: make([]float64, 0, n),
		CorrectForces: make([]float64, 0, n),
		AllSpeeds:     make([]float64, 0, len(punches)),
	}

	for i, p := range punches {
		if i < n && catalog.Matches(expected[i], p.Label()) {
			score.CorrectCount++
			score.CorrectSpeeds = append(score.CorrectSpeeds, p.Speed)
			score.CorrectForces = append(score.CorrectForces, p.Force)
		}
		score.AllSpeeds = append(score.AllSpeeds, p.Speed)
	}

	return score
}

// CountReps splits punches into back-to-back blocks of len(expected) and
// counts the blocks where every position matches. A trailing partial block
// never counts.
func CountReps(catalog Catalog, expected []Label, punches []Punch) int {
	size := len(expected)
	if size == 0 {
		return 0
	}

	reps := 0
	for start := 0; start+size <= len(punches); start += size {
		if blockMatches(catalog, expected, punches[start:start+size]) {
			reps++
		}
	}
	return reps
}

func blockMatches(catalog Catalog, expected []Label, block []Punch) bool {
	for i, p := range block {
		if !catalog.Matches(expected[i], p.Label()) {
			return false
		}
	}
	return true
}
