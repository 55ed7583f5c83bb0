// Package naming checks field API names against the naming catalog and the
// Loan object structural conventions.
package naming

import (
	"fmt"
	"log"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/abdidvp/forcekraft/internal/domain"
	"github.com/abdidvp/forcekraft/internal/domain/catalog"
	"github.com/abdidvp/forcekraft/internal/domain/scoring"
)

var namingLog = log.New(os.Stderr, "[forcekraft:naming] ", log.Ltime)

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
	a := &Analyzer{catalog: cat, logger: namingLog}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeFields classifies every field as compliant or violating.
// An empty or nil list is rejected with domain.ErrInvalidInput.
func (a *Analyzer) AnalyzeFields(fields []domain.FieldRecord) (*domain.NamingResult, error) {
	if len(fields) == 0 {
		err := fmt.Errorf("field data must be a non-empty list: %w", domain.ErrInvalidInput)
		a.logger.Printf("analyze fields: %v", err)
		return nil, err
	}

	result := &domain.NamingResult{
		Violations:      []domain.FieldViolation{},
		TotalFieldCount: len(fields),
		ByRule:          map[string][]string{},
	}

	for _, f := range fields {
		name := f.Identifier()
		violations := a.check(name)
		if len(violations) == 0 {
			result.CompliantFieldCount++
			continue
		}

		sev := Severity(violations)
		result.Violations = append(result.Violations, domain.FieldViolation{
			APIName:         name,
			Label:           f.Label,
			Type:            f.Type,
			Violations:      violations,
			RecommendedFix:  a.recommend(name, violations),
			HighestSeverity: sev,
		})
		result.BySeverity.Add(sev, name)
		for _, v := range violations {
			result.ByRule[v.Rule] = append(result.ByRule[v.Rule], name)
		}
	}

	result.CompliancePercentage = scoring.Percentage(result.CompliantFieldCount, result.TotalFieldCount)
	return result, nil
}

// check returns the violations of a single API name in catalog order,
// followed by the Loan structural violations.
func (a *Analyzer) check(name string) []domain.NamingViolation {
	var violations []domain.NamingViolation

	prefix, rest := a.splitPrefix(name)
	for _, rule := range a.catalog.Naming {
		var violated bool
		if rule.Expected {
			// Expected prefixes are alternatives: carrying one satisfies all.
			violated = prefix == ""
		} else {
			violated = rule.Pattern.MatchString(rest)
		}
		if !violated {
			continue
		}
		expected := rule.Expected
		violations = append(violations, domain.NamingViolation{
			Kind:     domain.ViolationConvention,
			Rule:     rule.Description,
			Pattern:  rule.Pattern.String(),
			Expected: &expected,
		})
	}

	if strings.Contains(name, "Loan") || strings.Contains(name, "loan") {
		loan := a.catalog.Loan
		if !catalog.MatchesAny(loan.Standard, name) && !catalog.MatchesAny(loan.Custom, name) {
			violations = append(violations, structural(catalog.RuleLoanStructure))
		}
		if catalog.MatchesAny(loan.Invalid, name) {
			violations = append(violations, structural(catalog.RuleInvalidPattern))
		}
	}
	return violations
}

func structural(rule string) domain.NamingViolation {
	return domain.NamingViolation{
		Kind:     domain.ViolationStructural,
		Rule:     rule,
		Severity: domain.NamingCritical,
	}
}

// splitPrefix separates the first recognized prefix matched by an expected
// catalog rule from the remainder of the name.
func (a *Analyzer) splitPrefix(name string) (prefix, rest string) {
	for _, rule := range a.catalog.Naming {
		if !rule.Expected {
			continue
		}
		if loc := rule.Pattern.FindStringIndex(name); loc != nil && loc[0] == 0 {
			return name[:loc[1]], name[loc[1]:]
		}
	}
	return "", name
}

// Severity grades a field's violations. Convention rules carry no severity
// of their own; their grade comes from markers in the rule text.
func Severity(violations []domain.NamingViolation) domain.NamingSeverity {
	for _, v := range violations {
		if v.Severity == domain.NamingCritical {
			return domain.NamingCritical
		}
	}
	if anyRule(violations, catalog.MarkerLoan, catalog.MarkerStandard) {
		return domain.NamingCritical
	}
	if anyRule(violations, catalog.MarkerCustomProject) {
		return domain.NamingMedium
	}
	return domain.NamingLow
}

func anyRule(violations []domain.NamingViolation, markers ...string) bool {
	for _, v := range violations {
		for _, m := range markers {
			if strings.Contains(v.Rule, m) {
				return true
			}
		}
	}
	return false
}

func (a *Analyzer) recommend(name string, violations []domain.NamingViolation) string {
	switch {
	case anyRule(violations, catalog.MarkerLowercase):
		prefix, rest := a.splitPrefix(name)
		r, size := utf8.DecodeRuneInString(rest)
		return fmt.Sprintf("Change first character '%c' to uppercase: '%s%c%s'",
			r, prefix, unicode.ToUpper(r), rest[size:])

	case anyRule(violations, catalog.MarkerManagedPackage, catalog.MarkerCustomProject):
		if strings.Contains(name, "Loan") &&
			!strings.HasPrefix(name, catalog.ManagedPrefix) && !strings.HasPrefix(name, catalog.CustomPrefix) {
			return fmt.Sprintf("Add '%s' prefix: '%s%s'", catalog.CustomPrefix, catalog.CustomPrefix, name)
		}
		return fmt.Sprintf("Add appropriate prefix ('%s' for managed package fields or '%s' for custom fields)",
			catalog.ManagedPrefix, catalog.CustomPrefix)

	case anyRule(violations, catalog.MarkerInvalidPattern):
		switch {
		case strings.HasSuffix(name, "__X"):
			return fmt.Sprintf("Remove '__X' suffix: '%s'", strings.TrimSuffix(name, "__X")+"__c")
		case strings.HasPrefix(name, "loan_"), strings.HasPrefix(name, "Loan_"):
			return fmt.Sprintf("Change to '%sLoan_%s'", catalog.CustomPrefix, name[len("loan_"):])
		default:
			return "Rename to follow standard pattern (LLC_BI__*__c) or custom pattern (nc_*__c)"
		}
	}
	return "Review field naming and apply appropriate convention"
}
