package scoring

import "github.com/abdidvp/forcekraft/internal/domain"

// SeverityRank orders bypass severities: High 0, Medium 1, Low 2.
// Unknown values sort last.
func SeverityRank(s domain.Severity) int {
	switch s {
	case domain.SeverityHigh:
		return 0
	case domain.SeverityMedium:
		return 1
	case domain.SeverityLow:
		return 2
	default:
		return 3
	}
}

// HighestSeverity returns the worst of the given severities, or Low when
// none are given.
func HighestSeverity(severities ...domain.Severity) domain.Severity {
	highest := domain.SeverityLow
	for _, s := range severities {
		if SeverityRank(s) < SeverityRank(highest) {
			highest = s
		}
	}
	return highest
}

// NamingSeverityRank orders naming severities: critical 0, medium 1, low 2.
func NamingSeverityRank(s domain.NamingSeverity) int {
	switch s {
	case domain.NamingCritical:
		return 0
	case domain.NamingMedium:
		return 1
	case domain.NamingLow:
		return 2
	default:
		return 3
	}
}
