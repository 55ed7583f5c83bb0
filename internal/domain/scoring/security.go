package scoring

import "math"

// Prevalence of flagged components costs at most prevalenceWeight points;
// each flagged component then costs a fixed amount by its highest severity.
const (
	prevalenceWeight = 0.3
	highPenalty      = 5
	mediumPenalty    = 2
)

// SecurityScore rates a set of components on 0-100 given how many carry
// bypass patterns and how many of those are High or Medium at worst.
func SecurityScore(flagged, total, high, medium int) int {
	score := 100.0
	if total > 0 {
		score -= float64(flagged) / float64(total) * 100 * prevalenceWeight
	}
	score -= float64(high * highPenalty)
	score -= float64(medium * mediumPenalty)
	return int(math.RoundToEven(Clamp(score)))
}
