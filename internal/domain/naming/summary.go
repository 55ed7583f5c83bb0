package naming

import (
	"slices"

	"github.com/abdidvp/forcekraft/internal/domain"
)

const topIssueLimit = 5

// General recommendation texts.
const (
	RecommendCritical    = "Immediately address critical naming violations to prevent potential conflicts and maintenance issues"
	RecommendConventions = "Create and document clear naming conventions and socialize with team"
	RecommendAutomation  = "Consider implementing automated validation for field naming during development"
	RecommendMedium      = "Address medium-severity naming issues in next planned refactoring cycle"
	RecommendAudit       = "Regularly review and audit field naming as part of maintenance practices"
)

// complianceThreshold is the percentage below which conventions need
// documenting and enforcing.
const complianceThreshold = 70

// Summarize condenses a naming result into counts, top issues and general
// recommendations.
func Summarize(r *domain.NamingResult) *domain.NamingSummary {
	return &domain.NamingSummary{
		TotalFields:          r.TotalFieldCount,
		CompliantFields:      r.CompliantFieldCount,
		CompliancePercentage: r.CompliancePercentage,
		ViolationCount:       len(r.Violations),
		CriticalViolations:   len(r.BySeverity.Critical),
		MediumViolations:     len(r.BySeverity.Medium),
		LowViolations:        len(r.BySeverity.Low),
		TopIssues:            TopIssues(r.Violations),
		Recommendations:      Recommendations(r),
	}
}

// TopIssues returns the most frequent violation rules, most frequent first.
// Ties keep the order in which rules were first seen.
func TopIssues(violations []domain.FieldViolation) []domain.IssueCount {
	var issues []domain.IssueCount
	index := map[string]int{}
	for _, fv := range violations {
		for _, v := range fv.Violations {
			i, ok := index[v.Rule]
			if !ok {
				i = len(issues)
				index[v.Rule] = i
				issues = append(issues, domain.IssueCount{Rule: v.Rule})
			}
			issues[i].Count++
		}
	}

	slices.SortStableFunc(issues, func(a, b domain.IssueCount) int {
		return b.Count - a.Count
	})
	if len(issues) > topIssueLimit {
		issues = issues[:topIssueLimit]
	}
	return issues
}

// Recommendations derives the general naming recommendations.
func Recommendations(r *domain.NamingResult) []string {
	var recs []string
	critical := len(r.BySeverity.Critical)
	if critical > 0 {
		recs = append(recs, RecommendCritical)
	}
	if r.CompliancePercentage < complianceThreshold {
		recs = append(recs, RecommendConventions, RecommendAutomation)
	}
	if critical == 0 && len(r.BySeverity.Medium) > 0 {
		recs = append(recs, RecommendMedium)
	}
	return append(recs, RecommendAudit)
}

// Analysis bundles a result with its summary.
func Analysis(r *domain.NamingResult) *domain.NamingAnalysis {
	return &domain.NamingAnalysis{Result: r, Summary: Summarize(r)}
}
