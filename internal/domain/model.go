package domain

import (
	"math"
	"time"
)

// Severity grades a bypass finding.
type Severity string

const (
	SeverityHigh   Severity = "High"
	SeverityMedium Severity = "Medium"
	SeverityLow    Severity = "Low"
)

// NamingSeverity grades a naming violation.
type NamingSeverity string

const (
	NamingCritical NamingSeverity = "critical"
	NamingMedium   NamingSeverity = "medium"
	NamingLow      NamingSeverity = "low"
)

// ComponentType selects which bypass catalog and which recommendations
// apply to a set of records.
type ComponentType string

const (
	ComponentValidation ComponentType = "validation"
	ComponentTrigger    ComponentType = "trigger"
	ComponentFlow       ComponentType = "flow"
)

// ViolationKind tags the two shapes a naming violation can take.
type ViolationKind string

const (
	// ViolationConvention is a mismatch against a catalog prefix rule and
	// carries Pattern and Expected.
	ViolationConvention ViolationKind = "convention"
	// ViolationStructural is a Loan-object structure violation and carries
	// an explicit Severity.
	ViolationStructural ViolationKind = "structural"
)

// NamingViolation is one rule a field name broke.
type NamingViolation struct {
	Kind     ViolationKind  `json:"kind"`
	Rule     string         `json:"rule"`
	Pattern  string         `json:"pattern,omitempty"`
	Expected *bool          `json:"expected,omitempty"`
	Severity NamingSeverity `json:"severity,omitempty"`
}

// FieldViolation is a field with at least one naming violation.
type FieldViolation struct {
	APIName         string            `json:"apiName"`
	Label           string            `json:"label"`
	Type            string            `json:"type"`
	Violations      []NamingViolation `json:"violations"`
	RecommendedFix  string            `json:"recommended_fix"`
	HighestSeverity NamingSeverity    `json:"highest_severity"`
}

// NamingBuckets groups field identifiers by their worst violation, in the
// order the fields were processed.
type NamingBuckets struct {
	Critical []string `json:"critical"`
	Medium   []string `json:"medium"`
	Low      []string `json:"low"`
}

func (b *NamingBuckets) Add(sev NamingSeverity, id string) {
	switch sev {
	case NamingCritical:
		b.Critical = append(b.Critical, id)
	case NamingMedium:
		b.Medium = append(b.Medium, id)
	default:
		b.Low = append(b.Low, id)
	}
}

// NamingResult is the output of a naming convention analysis.
type NamingResult struct {
	Violations           []FieldViolation    `json:"violations"`
	CompliantFieldCount  int                 `json:"compliant_field_count"`
	TotalFieldCount      int                 `json:"total_field_count"`
	BySeverity           NamingBuckets       `json:"by_severity"`
	ByRule               map[string][]string `json:"by_rule"`
	CompliancePercentage int                 `json:"compliance_percentage"`
}

// IssueCount is how often a violation rule fired across all fields.
type IssueCount struct {
	Rule  string `json:"rule"`
	Count int    `json:"count"`
}

// NamingSummary condenses a NamingResult for reporting.
type NamingSummary struct {
	TotalFields          int          `json:"total_fields"`
	CompliantFields      int          `json:"compliant_fields"`
	CompliancePercentage int          `json:"compliance_percentage"`
	ViolationCount       int          `json:"violation_count"`
	CriticalViolations   int          `json:"critical_violations"`
	MediumViolations     int          `json:"medium_violations"`
	LowViolations        int          `json:"low_violations"`
	TopIssues            []IssueCount `json:"top_issues"`
	Recommendations      []string     `json:"recommendations"`
}

// Finding is a bypass catalog rule that matched a component.
type Finding struct {
	Name                string   `json:"name"`
	Severity            Severity `json:"severity"`
	Description         string   `json:"description"`
	RecommendedApproach string   `json:"recommended_approach"`
}

// FlaggedComponent is a validation rule, trigger or flow with at least one
// bypass finding. Patterns follow catalog order.
type FlaggedComponent struct {
	Identifier      string    `json:"identifier"`
	Active          bool      `json:"active"`
	Description     string    `json:"description,omitempty"`
	Patterns        []Finding `json:"patterns"`
	HighestSeverity Severity  `json:"highest_severity"`
}

// SeverityBuckets groups component identifiers by highest severity, in
// the order the components were processed.
type SeverityBuckets struct {
	High   []string `json:"High"`
	Medium []string `json:"Medium"`
	Low    []string `json:"Low"`
}

func (b *SeverityBuckets) Add(sev Severity, id string) {
	switch sev {
	case SeverityHigh:
		b.High = append(b.High, id)
	case SeverityMedium:
		b.Medium = append(b.Medium, id)
	default:
		b.Low = append(b.Low, id)
	}
}

// BypassResult is the output of a bypass pattern analysis for one
// component type.
type BypassResult struct {
	ComponentType    ComponentType       `json:"component_type"`
	BypassPatterns   []FlaggedComponent  `json:"bypass_patterns"`
	ByPattern        map[string][]string `json:"by_pattern"`
	BySeverity       SeverityBuckets     `json:"by_severity"`
	Total            int                 `json:"total"`
	WithBypass       int                 `json:"with_bypass"`
	BypassPercentage int                 `json:"bypass_percentage"`
	SecurityScore    int                 `json:"security_score"`
}

// NamingAnalysis bundles what the naming analyzer produces for one call.
type NamingAnalysis struct {
	Result  *NamingResult  `json:"results"`
	Summary *NamingSummary `json:"summary,omitempty"`
}

// BypassAnalysis bundles what the bypass analyzer produces for one call.
type BypassAnalysis struct {
	Result                *BypassResult      `json:"results"`
	RefactoringPriorities []FlaggedComponent `json:"refactoring_priorities,omitempty"`
	Recommendations       []string           `json:"recommendations,omitempty"`
}

// Report is the composite report over whichever analyses were supplied.
type Report struct {
	ID               string           `json:"id,omitempty"`
	Timestamp        time.Time        `json:"timestamp"`
	CommitHash       string           `json:"commit_hash,omitempty"`
	Object           string           `json:"object,omitempty"`
	ExecutiveSummary ExecutiveSummary `json:"executive_summary"`
	DetailedFindings DetailedFindings `json:"detailed_findings"`
	Recommendations  []string         `json:"recommendations"`
	OverallScore     OverallScore     `json:"overall_score"`
	Skipped          []string         `json:"skipped,omitempty"`
}

// ExecutiveSummary is the headline assessment of a report.
type ExecutiveSummary struct {
	OverallAssessment string     `json:"overall_assessment"`
	KeyFindings       []string   `json:"key_findings"`
	RisksIdentified   RiskCounts `json:"risks_identified"`
}

// RiskCounts tallies flagged components by risk level.
type RiskCounts struct {
	Critical int `json:"critical"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}

// Total is the number of risks across all levels.
func (r RiskCounts) Total() int { return r.Critical + r.Medium + r.Low }

// DetailedFindings holds per-domain findings; absent domains are nil.
type DetailedFindings struct {
	NamingConventions *NamingFindings `json:"naming_conventions,omitempty"`
	ValidationRules   *BypassFindings `json:"validation_rules,omitempty"`
	Triggers          *BypassFindings `json:"triggers,omitempty"`
	Flows             *BypassFindings `json:"flows,omitempty"`
}

// NamingFindings is the naming section of a report.
type NamingFindings struct {
	CompliancePercentage int            `json:"compliance_percentage"`
	Violations           []FieldFinding `json:"violations"`
	TopIssues            []IssueCount   `json:"top_issues"`
}

// FieldFinding is one non-compliant field with its suggested fix.
type FieldFinding struct {
	Field          string   `json:"field"`
	Issues         []string `json:"issues"`
	Recommendation string   `json:"recommendation"`
}

// BypassFindings is the bypass section of a report for one component type.
type BypassFindings struct {
	SecurityScore         int                `json:"security_score"`
	BypassPercentage      int                `json:"bypass_percentage"`
	Patterns              []ComponentFinding `json:"patterns"`
	RefactoringPriorities []FlaggedComponent `json:"refactoring_priorities"`
}

// ComponentFinding is one flagged component in a bypass section.
type ComponentFinding struct {
	Identifier string   `json:"identifier"`
	Patterns   []string `json:"patterns"`
	Severity   Severity `json:"severity"`
}

// OverallScore is the weighted score across present domains.
type OverallScore struct {
	Score           int              `json:"score"`
	Rating          string           `json:"rating"`
	ComponentScores *ComponentScores `json:"component_scores,omitempty"`
}

// ComponentScores lists each domain's score; absent domains stay 0.
type ComponentScores struct {
	NamingConventions int `json:"naming_conventions"`
	ValidationRules   int `json:"validation_rules"`
	Triggers          int `json:"triggers"`
	Flows             int `json:"flows"`
}

// RatingNotAvailable is the rating of a report built from no analyses.
const RatingNotAvailable = "N/A"

// RatingFor maps a 0-100 score onto its rating label.
func RatingFor(score int) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 75:
		return "Good"
	case score >= 60:
		return "Fair"
	case score >= 40:
		return "Poor"
	default:
		return "Critical"
	}
}

// WeightedScore is one domain's contribution to the overall score.
type WeightedScore struct {
	Score  int
	Weight float64
}

// ComputeOverallScore is the weight-normalized mean of scores, rounded half
// to even. It is 0 when the total weight is 0.
func ComputeOverallScore(scores []WeightedScore) int {
	var totalWeighted, totalWeight float64
	for _, s := range scores {
		totalWeighted += float64(s.Score) * s.Weight
		totalWeight += s.Weight
	}
	if totalWeight == 0 {
		return 0
	}
	return int(math.RoundToEven(totalWeighted / totalWeight))
}
