// Package bypass finds bypass patterns in validation rule formulas, Apex
// trigger source and flow entry criteria, and scores how much each
// component set relies on them.
package bypass

import (
	"fmt"
	"log"
	"os"

	"github.com/abdidvp/forcekraft/internal/domain"
	"github.com/abdidvp/forcekraft/internal/domain/catalog"
	"github.com/abdidvp/forcekraft/internal/domain/scoring"
)

var bypassLog = log.New(os.Stderr, "[forcekraft:bypass] ", log.Ltime)

// Analyzer is safe for concurrent use; it never writes to its own state.
type Analyzer struct {
	catalog *catalog.Catalog
	logger  *log.Logger
}

type Option func(*Analyzer)

// WithLogger replaces the stderr logger used on error paths.
func WithLogger(l *log.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// New creates an Analyzer over cat. A nil catalog selects catalog.Default().
func New(cat *catalog.Catalog, opts ...Option) *Analyzer {
	if cat == nil {
		cat = catalog.Default()
	}
	a := &Analyzer{catalog: cat, logger: bypassLog}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// component is the shape every record type is reduced to before matching.
type component struct {
	identifier  string
	active      bool
	description string
	subjects    []catalog.Subject
}

// AnalyzeValidationRules matches each rule's error condition formula
// against the validation rule catalog.
func (a *Analyzer) AnalyzeValidationRules(rules []domain.ValidationRuleRecord) (*domain.BypassResult, error) {
	if len(rules) == 0 {
		return nil, a.invalid("validation rule")
	}
	components := make([]component, len(rules))
	for i, r := range rules {
		components[i] = component{
			identifier:  r.Identifier(),
			active:      r.Active,
			description: r.Description,
			subjects:    []catalog.Subject{{Text: r.Condition()}},
		}
	}
	return a.analyze(domain.ComponentValidation, components), nil
}

// AnalyzeTriggers matches each trigger's source against the trigger catalog.
func (a *Analyzer) AnalyzeTriggers(triggers []domain.TriggerRecord) (*domain.BypassResult, error) {
	if len(triggers) == 0 {
		return nil, a.invalid("trigger")
	}
	components := make([]component, len(triggers))
	for i, t := range triggers {
		components[i] = component{
			identifier: t.Name,
			active:     t.Active,
			subjects:   []catalog.Subject{{Text: t.Source()}},
		}
	}
	return a.analyze(domain.ComponentTrigger, components), nil
}

// AnalyzeFlows matches each flow element against the flow catalog. A rule
// matches a flow when any of its elements satisfies it.
func (a *Analyzer) AnalyzeFlows(flows []domain.FlowRecord) (*domain.BypassResult, error) {
	if len(flows) == 0 {
		return nil, a.invalid("flow")
	}
	components := make([]component, len(flows))
	for i, f := range flows {
		subjects := make([]catalog.Subject, len(f.Elements))
		for j, e := range f.Elements {
			subjects[j] = catalog.Subject{Location: e.Location, Condition: e.Condition}
		}
		components[i] = component{identifier: f.Name, active: f.Active, subjects: subjects}
	}
	return a.analyze(domain.ComponentFlow, components), nil
}

func (a *Analyzer) invalid(kind string) error {
	err := fmt.Errorf("%s data must be a non-empty list: %w", kind, domain.ErrInvalidInput)
	a.logger.Printf("analyze: %v", err)
	return err
}

func (a *Analyzer) analyze(ct domain.ComponentType, components []component) *domain.BypassResult {
	rules := a.catalog.Bypass(ct)
	result := &domain.BypassResult{
		ComponentType:  ct,
		BypassPatterns: []domain.FlaggedComponent{},
		ByPattern:      make(map[string][]string, len(rules)),
		Total:          len(components),
	}
	for _, r := range rules {
		result.ByPattern[r.Name] = []string{}
	}

	for _, c := range components {
		var findings []domain.Finding
		for _, r := range rules {
			if !matchesAny(r.Matcher, c.subjects) {
				continue
			}
			findings = append(findings, r.Finding())
			result.ByPattern[r.Name] = append(result.ByPattern[r.Name], c.identifier)
		}
		if len(findings) == 0 {
			continue
		}

		highest := Highest(findings)
		result.BypassPatterns = append(result.BypassPatterns, domain.FlaggedComponent{
			Identifier:      c.identifier,
			Active:          c.active,
			Description:     c.description,
			Patterns:        findings,
			HighestSeverity: highest,
		})
		result.BySeverity.Add(highest, c.identifier)
		result.WithBypass++
	}

	result.BypassPercentage = scoring.Percentage(result.WithBypass, result.Total)
	result.SecurityScore = SecurityScore(result)
	return result
}

func matchesAny(m catalog.Matcher, subjects []catalog.Subject) bool {
	for _, s := range subjects {
		if m.Match(s) {
			return true
		}
	}
	return false
}

// Highest returns the worst severity among findings.
func Highest(findings []domain.Finding) domain.Severity {
	severities := make([]domain.Severity, len(findings))
	for i, f := range findings {
		severities[i] = f.Severity
	}
	return scoring.HighestSeverity(severities...)
}

// SecurityScore scores a result from its flagged share and severity buckets.
func SecurityScore(r *domain.BypassResult) int {
	return scoring.SecurityScore(r.WithBypass, r.Total, len(r.BySeverity.High), len(r.BySeverity.Medium))
}
