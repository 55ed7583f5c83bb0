// Package report combines naming and bypass analyses into one composite
// report with an executive summary and a weighted overall score.
package report

import (
	"fmt"

	"github.com/abdidvp/forcekraft/internal/domain"
	"github.com/abdidvp/forcekraft/internal/domain/scoring"
)

// Input holds whichever analyses are available. Any subset, including none,
// may be set. An analysis with a nil Result counts as absent.
type Input struct {
	Naming     *domain.NamingAnalysis
	Validation *domain.BypassAnalysis
	Triggers   *domain.BypassAnalysis
	Flows      *domain.BypassAnalysis
}

// Domain weights in the overall score.
const (
	namingWeight = 1.0
	bypassWeight = 1.5
)

const priorityLimit = 5

// Overall assessment texts.
const (
	AssessmentCritical = "Critical attention required. The configuration contains significant risk factors that should be addressed immediately."
	AssessmentModerate = "Moderate risk identified. The configuration has several issues that should be addressed in the near term."
	AssessmentLow      = "Low risk identified. The configuration is generally sound with minor improvements recommended."
)

// GovernanceRecommendations close every report's recommendation list.
var GovernanceRecommendations = []string{
	"Implement a governance process to regularly review and audit configuration changes.",
	"Document all configuration standards and patterns in a central location.",
	"Provide training to developers on secure and maintainable configuration practices.",
}

// Build synthesizes the report. It does not stamp ID, timestamp or commit.
func Build(in Input) *domain.Report {
	in = normalize(in)
	return &domain.Report{
		ExecutiveSummary: executiveSummary(in),
		DetailedFindings: detailedFindings(in),
		Recommendations:  recommendations(in),
		OverallScore:     overallScore(in),
	}
}

func normalize(in Input) Input {
	if in.Naming != nil && in.Naming.Result == nil {
		in.Naming = nil
	}
	for _, b := range []**domain.BypassAnalysis{&in.Validation, &in.Triggers, &in.Flows} {
		if *b != nil && (*b).Result == nil {
			*b = nil
		}
	}
	return in
}

type bypassDomain struct {
	analysis *domain.BypassAnalysis
	noun     string
}

// bypassDomains lists present bypass analyses with the noun used in their
// key finding, in report order.
func bypassDomains(in Input) []bypassDomain {
	var out []bypassDomain
	for _, d := range []bypassDomain{
		{in.Validation, "validation rules"},
		{in.Triggers, "Apex triggers"},
		{in.Flows, "flows"},
	} {
		if d.analysis != nil {
			out = append(out, d)
		}
	}
	return out
}

func executiveSummary(in Input) domain.ExecutiveSummary {
	var risks domain.RiskCounts
	findings := []string{}

	if in.Naming != nil {
		r := in.Naming.Result
		risks.Critical += len(r.BySeverity.Critical)
		risks.Medium += len(r.BySeverity.Medium)
		risks.Low += len(r.BySeverity.Low)
		findings = append(findings, fmt.Sprintf("%d%% of fields comply with naming conventions.", r.CompliancePercentage))
	}
	for _, d := range bypassDomains(in) {
		r := d.analysis.Result
		risks.Critical += len(r.BySeverity.High)
		risks.Medium += len(r.BySeverity.Medium)
		risks.Low += len(r.BySeverity.Low)
		findings = append(findings, fmt.Sprintf("%d%% of %s contain bypass patterns.", r.BypassPercentage, d.noun))
	}

	return domain.ExecutiveSummary{
		OverallAssessment: assess(risks),
		KeyFindings:       findings,
		RisksIdentified:   risks,
	}
}

func assess(risks domain.RiskCounts) string {
	var criticalShare float64
	if total := risks.Total(); total > 0 {
		criticalShare = float64(risks.Critical) / float64(total) * 100
	}
	switch {
	case risks.Critical > 5 || criticalShare > 20:
		return AssessmentCritical
	case risks.Critical > 0 || risks.Medium > 10:
		return AssessmentModerate
	default:
		return AssessmentLow
	}
}

func detailedFindings(in Input) domain.DetailedFindings {
	var df domain.DetailedFindings
	if in.Naming != nil {
		df.NamingConventions = namingFindings(in.Naming)
	}
	if in.Validation != nil {
		df.ValidationRules = bypassFindings(in.Validation)
	}
	if in.Triggers != nil {
		df.Triggers = bypassFindings(in.Triggers)
	}
	if in.Flows != nil {
		df.Flows = bypassFindings(in.Flows)
	}
	return df
}

func namingFindings(a *domain.NamingAnalysis) *domain.NamingFindings {
	nf := &domain.NamingFindings{
		CompliancePercentage: a.Result.CompliancePercentage,
		Violations:           make([]domain.FieldFinding, 0, len(a.Result.Violations)),
		TopIssues:            []domain.IssueCount{},
	}
	for _, v := range a.Result.Violations {
		issues := make([]string, len(v.Violations))
		for i, nv := range v.Violations {
			issues[i] = nv.Rule
		}
		nf.Violations = append(nf.Violations, domain.FieldFinding{
			Field:          v.APIName,
			Issues:         issues,
			Recommendation: v.RecommendedFix,
		})
	}
	if a.Summary != nil {
		nf.TopIssues = a.Summary.TopIssues
	}
	return nf
}

func bypassFindings(a *domain.BypassAnalysis) *domain.BypassFindings {
	bf := &domain.BypassFindings{
		SecurityScore:         a.Result.SecurityScore,
		BypassPercentage:      a.Result.BypassPercentage,
		Patterns:              make([]domain.ComponentFinding, 0, len(a.Result.BypassPatterns)),
		RefactoringPriorities: []domain.FlaggedComponent{},
	}
	for _, fc := range a.Result.BypassPatterns {
		names := make([]string, len(fc.Patterns))
		for i, f := range fc.Patterns {
			names[i] = f.Name
		}
		bf.Patterns = append(bf.Patterns, domain.ComponentFinding{
			Identifier: fc.Identifier,
			Patterns:   names,
			Severity:   fc.HighestSeverity,
		})
	}
	if p := a.RefactoringPriorities; len(p) > 0 {
		bf.RefactoringPriorities = p[:min(len(p), priorityLimit)]
	}
	return bf
}

func recommendations(in Input) []string {
	var all []string
	if in.Naming != nil && in.Naming.Summary != nil {
		all = append(all, in.Naming.Summary.Recommendations...)
	}
	for _, d := range bypassDomains(in) {
		all = append(all, d.analysis.Recommendations...)
	}
	all = append(all, GovernanceRecommendations...)

	seen := make(map[string]bool, len(all))
	out := make([]string, 0, len(all))
	for _, r := range all {
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}

func overallScore(in Input) domain.OverallScore {
	var weighted []domain.WeightedScore
	var components domain.ComponentScores

	if in.Naming != nil {
		components.NamingConventions = in.Naming.Result.CompliancePercentage
		weighted = append(weighted, domain.WeightedScore{Score: components.NamingConventions, Weight: namingWeight})
	}
	if in.Validation != nil {
		components.ValidationRules = in.Validation.Result.SecurityScore
		weighted = append(weighted, domain.WeightedScore{Score: components.ValidationRules, Weight: bypassWeight})
	}
	if in.Triggers != nil {
		components.Triggers = in.Triggers.Result.SecurityScore
		weighted = append(weighted, domain.WeightedScore{Score: components.Triggers, Weight: bypassWeight})
	}
	if in.Flows != nil {
		components.Flows = in.Flows.Result.SecurityScore
		weighted = append(weighted, domain.WeightedScore{Score: components.Flows, Weight: bypassWeight})
	}

	if len(weighted) == 0 {
		return domain.OverallScore{Score: 0, Rating: domain.RatingNotAvailable}
	}
	score := int(scoring.Clamp(float64(domain.ComputeOverallScore(weighted))))
	return domain.OverallScore{
		Score:           score,
		Rating:          domain.RatingFor(score),
		ComponentScores: &components,
	}
}
