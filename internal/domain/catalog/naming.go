package catalog

import "regexp"

// Naming rule descriptions. Severity classification and fix suggestions
// match on substrings of these texts (see the marker constants below), so
// rewording one changes how its violations are graded.
const (
	RuleManagedPrefix  = "Managed package fields from nCino"
	RuleCustomPrefix   = "Fields outside the managed package need the custom project-specific prefix"
	RuleLowercaseStart = "Fields should not start with lowercase letters"
	RuleLoanStructure  = "Loan-related fields must follow standard or custom patterns"
	RuleInvalidPattern = "Field uses an invalid naming pattern"
)

// Substring markers read from violation rule texts.
const (
	MarkerLoan           = "Loan"
	MarkerStandard       = "standard patterns"
	MarkerCustomProject  = "custom project-specific"
	MarkerLowercase      = "lowercase"
	MarkerManagedPackage = "Managed package"
	MarkerInvalidPattern = "invalid"
)

// Recognized field name prefixes.
const (
	ManagedPrefix = "LLC_BI__"
	CustomPrefix  = "nc_"
)

// NamingRule is a prefix convention. Expected rules are violated when the
// pattern is absent, the others when it is present.
type NamingRule struct {
	Description string
	Pattern     *regexp.Regexp
	Expected    bool
}

// LoanConventions are the structural groups applied to loan-related names.
type LoanConventions struct {
	Standard []*regexp.Regexp
	Custom   []*regexp.Regexp
	Invalid  []*regexp.Regexp
}

func namingRules() []NamingRule {
	return []NamingRule{
		{
			Description: RuleManagedPrefix,
			Pattern:     regexp.MustCompile(`^LLC_BI__`),
			Expected:    true,
		},
		{
			Description: RuleCustomPrefix,
			Pattern:     regexp.MustCompile(`^nc_`),
			Expected:    true,
		},
		{
			Description: RuleLowercaseStart,
			Pattern:     regexp.MustCompile(`^[a-z]`),
			Expected:    false,
		},
	}
}

func loanConventions() LoanConventions {
	return LoanConventions{
		Standard: []*regexp.Regexp{
			regexp.MustCompile(`^LLC_BI__Loan__c$`),
			regexp.MustCompile(`^LLC_BI__.*__c$`),
		},
		Custom: []*regexp.Regexp{
			regexp.MustCompile(`^nc_Loan_.*__c$`),
			regexp.MustCompile(`^nc_.*__c$`),
		},
		Invalid: []*regexp.Regexp{
			regexp.MustCompile(`^Loan_`),
			regexp.MustCompile(`^loan_`),
			regexp.MustCompile(`__X$`),
		},
	}
}

// MatchesAny reports whether name matches at least one pattern.
func MatchesAny(patterns []*regexp.Regexp, name string) bool {
	for _, p := range patterns {
		if p.MatchString(name) {
			return true
		}
	}
	return false
}
