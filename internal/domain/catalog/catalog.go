// Package catalog holds the detection rules the analyzers classify
// configuration text against. Catalogs are compiled once per process and
// never mutated; analyzers receive them by injection.
package catalog

import (
	"regexp"

	"github.com/abdidvp/forcekraft/internal/domain"
)

// Subject is the text a Matcher is tested against. Text-based rules read
// Text; flow rules read Location and Condition.
type Subject struct {
	Text      string
	Location  string
	Condition string
}

// Matcher is implemented by PatternMatcher and FlowMatcher.
type Matcher interface {
	Match(s Subject) bool
	String() string
}

// PatternMatcher searches a single pattern anywhere in Subject.Text.
type PatternMatcher struct {
	Pattern *regexp.Regexp
}

func (m PatternMatcher) Match(s Subject) bool { return m.Pattern.MatchString(s.Text) }
func (m PatternMatcher) String() string       { return m.Pattern.String() }

// FlowMatcher requires both the element location and its condition to match.
type FlowMatcher struct {
	Location  *regexp.Regexp
	Condition *regexp.Regexp
}

func (m FlowMatcher) Match(s Subject) bool {
	return m.Location.MatchString(s.Location) && m.Condition.MatchString(s.Condition)
}

func (m FlowMatcher) String() string {
	return m.Location.String() + " && " + m.Condition.String()
}

// BypassRule is one named bypass detection rule.
type BypassRule struct {
	Name                string
	Matcher             Matcher
	Severity            domain.Severity
	Description         string
	RecommendedApproach string
}

// Finding converts a matched rule into the result shape.
func (r BypassRule) Finding() domain.Finding {
	return domain.Finding{
		Name:                r.Name,
		Severity:            r.Severity,
		Description:         r.Description,
		RecommendedApproach: r.RecommendedApproach,
	}
}

// Catalog groups every rule set. Slice order is priority order.
type Catalog struct {
	Naming          []NamingRule
	Loan            LoanConventions
	ValidationRules []BypassRule
	Triggers        []BypassRule
	Flows           []BypassRule
}

// Bypass returns the rule set for a component type.
func (c *Catalog) Bypass(ct domain.ComponentType) []BypassRule {
	switch ct {
	case domain.ComponentValidation:
		return c.ValidationRules
	case domain.ComponentTrigger:
		return c.Triggers
	case domain.ComponentFlow:
		return c.Flows
	default:
		return nil
	}
}

var defaultCatalog = &Catalog{
	Naming:          namingRules(),
	Loan:            loanConventions(),
	ValidationRules: validationRuleRules(),
	Triggers:        triggerRules(),
	Flows:           flowRules(),
}

// Default returns the process-wide catalog. Callers must not modify it.
func Default() *Catalog { return defaultCatalog }
