package domain

import (
	"fmt"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// Analysis domain names, as used in config skip lists and report output.
const (
	DomainNaming     = "naming_conventions"
	DomainValidation = "validation_rules"
	DomainTriggers   = "triggers"
	DomainFlows      = "flows"
)

// ValidDomains enumerates all analysis domains in report order.
var ValidDomains = []string{
	DomainNaming, DomainValidation, DomainTriggers, DomainFlows,
}

// DefaultObject is the nCino loan object analyzed when none is configured.
const DefaultObject = "LLC_BI__Loan__c"

// ProjectConfig holds project-level configuration loaded from .forcekraft.yaml.
type ProjectConfig struct {
	Object   string       `yaml:"object"    json:"object,omitempty"`
	Sources  SourceConfig `yaml:"sources"   json:"sources"`
	Skip     []string     `yaml:"skip"      json:"skip,omitempty"`
	Ignore   []string     `yaml:"ignore"    json:"ignore,omitempty"`
	MinScore int          `yaml:"min_score" json:"min_score,omitempty"`
}

// SourceConfig lists doublestar globs, relative to the project root, of
// JSON files holding already-parsed metadata records.
type SourceConfig struct {
	Fields          []string `yaml:"fields"           json:"fields,omitempty"`
	ValidationRules []string `yaml:"validation_rules" json:"validation_rules,omitempty"`
	Triggers        []string `yaml:"triggers"         json:"triggers,omitempty"`
	Flows           []string `yaml:"flows"            json:"flows,omitempty"`
}

// For returns the globs configured for an analysis domain.
func (s SourceConfig) For(domainName string) []string {
	switch domainName {
	case DomainNaming:
		return s.Fields
	case DomainValidation:
		return s.ValidationRules
	case DomainTriggers:
		return s.Triggers
	case DomainFlows:
		return s.Flows
	default:
		return nil
	}
}

// DefaultConfig returns the layout `forcekraft init` writes.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		Object: DefaultObject,
		Sources: SourceConfig{
			Fields:          []string{"metadata/fields.json"},
			ValidationRules: []string{"metadata/validation_rules.json"},
			Triggers:        []string{"metadata/triggers.json"},
			Flows:           []string{"metadata/flows.json"},
		},
	}
}

// Validate checks a raw config before defaults are merged in.
func (c ProjectConfig) Validate() error {
	for _, d := range c.Skip {
		if !slices.Contains(ValidDomains, d) {
			return fmt.Errorf("unknown domain %q in skip (valid: %v)", d, ValidDomains)
		}
	}
	if c.MinScore < 0 || c.MinScore > 100 {
		return fmt.Errorf("min_score must be between 0 and 100, got %d", c.MinScore)
	}
	for _, p := range c.Ignore {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("malformed ignore pattern %q", p)
		}
	}
	for _, d := range ValidDomains {
		for _, p := range c.Sources.For(d) {
			if !doublestar.ValidatePattern(p) {
				return fmt.Errorf("malformed %s source pattern %q", d, p)
			}
		}
	}
	return nil
}

// IsSkipped reports whether an analysis domain is disabled.
func (c ProjectConfig) IsSkipped(domainName string) bool {
	return slices.Contains(c.Skip, domainName)
}

// IsIgnored reports whether a record identifier matches an ignore glob.
func (c ProjectConfig) IsIgnored(identifier string) bool {
	for _, p := range c.Ignore {
		if ok, _ := doublestar.Match(p, identifier); ok {
			return true
		}
	}
	return false
}
