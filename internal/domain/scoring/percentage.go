package scoring

import "math"

// Percentage returns 100*part/total rounded half to even, or 0 when total
// is 0.
func Percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.RoundToEven(float64(part) / float64(total) * 100))
}

// Clamp bounds a score to [0, 100].
func Clamp(score float64) float64 {
	return max(0.0, min(100.0, score))
}
