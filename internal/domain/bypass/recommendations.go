package bypass

import (
	"slices"
	"strings"

	"github.com/abdidvp/forcekraft/internal/domain"
	"github.com/abdidvp/forcekraft/internal/domain/scoring"
)

// Standing recommendations for every component type.
const (
	RecommendConsistency       = "Implement a consistent approach to bypass logic across all components"
	RecommendCustomPermissions = "Use custom permissions instead of profiles or user IDs for bypass logic"
	RecommendDocumentation     = "Document all bypass mechanisms in a central location for security review"
)

// Component-specific recommendations.
const (
	RecommendValidationHigh     = "Immediately refactor validation rules with hardcoded User IDs"
	RecommendValidationStrategy = "Review overall validation strategy to reduce reliance on bypass patterns"
	RecommendTriggerHigh        = "Immediately refactor triggers with hardcoded User IDs or Profile checks"
	RecommendTriggerFramework   = "Implement a centralized trigger handler framework with consistent bypass logic"
	RecommendFlowHigh           = "Immediately refactor flows with hardcoded User ID entry conditions"
	RecommendFlowEntryCriteria  = "Consolidate flow entry criteria so bypass checks live in one decision element"
)

// strategyThreshold is the bypass percentage above which the validation
// strategy itself needs review.
const strategyThreshold = 50

// RefactoringPriorities orders flagged components worst severity first,
// then by identifier. The result is a new slice.
func RefactoringPriorities(r *domain.BypassResult) []domain.FlaggedComponent {
	out := slices.Clone(r.BypassPatterns)
	slices.SortStableFunc(out, func(a, b domain.FlaggedComponent) int {
		if d := scoring.SeverityRank(a.HighestSeverity) - scoring.SeverityRank(b.HighestSeverity); d != 0 {
			return d
		}
		return strings.Compare(a.Identifier, b.Identifier)
	})
	return out
}

// GeneralRecommendations derives recommendations for the result's
// component type.
func GeneralRecommendations(r *domain.BypassResult) []string {
	recs := []string{RecommendConsistency, RecommendCustomPermissions, RecommendDocumentation}
	hasHigh := len(r.BySeverity.High) > 0

	switch r.ComponentType {
	case domain.ComponentValidation:
		if hasHigh {
			recs = append(recs, RecommendValidationHigh)
		}
		if r.BypassPercentage > strategyThreshold {
			recs = append(recs, RecommendValidationStrategy)
		}
	case domain.ComponentTrigger:
		if hasHigh {
			recs = append(recs, RecommendTriggerHigh)
		}
		recs = append(recs, RecommendTriggerFramework)
	case domain.ComponentFlow:
		if hasHigh {
			recs = append(recs, RecommendFlowHigh)
		}
		recs = append(recs, RecommendFlowEntryCriteria)
	}
	return recs
}

// Analysis bundles a result with its priorities and recommendations.
func Analysis(r *domain.BypassResult) *domain.BypassAnalysis {
	return &domain.BypassAnalysis{
		Result:                r,
		RefactoringPriorities: RefactoringPriorities(r),
		Recommendations:       GeneralRecommendations(r),
	}
}
