package naming_test

import (
	"io"
	"log"
	"testing"

	"github.com/abdidvp/forcekraft/internal/domain"
	"github.com/abdidvp/forcekraft/internal/domain/catalog"
	"github.com/abdidvp/forcekraft/internal/domain/naming"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnalyzer() *naming.Analyzer {
	return naming.New(catalog.Default(), naming.WithLogger(log.New(io.Discard, "", 0)))
}

func fields(names ...string) []domain.FieldRecord {
	out := make([]domain.FieldRecord, len(names))
	for i, n := range names {
		out[i] = domain.FieldRecord{APIName: n, Label: n, Type: "Text"}
	}
	return out
}

func rules(v domain.FieldViolation) []string {
	var out []string
	for _, nv := range v.Violations {
		out = append(out, nv.Rule)
	}
	return out
}

func TestAnalyzeFields_EmptyIsInvalidInput(t *testing.T) {
	a := newAnalyzer()

	res, err := a.AnalyzeFields(nil)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, res)

	res, err = a.AnalyzeFields([]domain.FieldRecord{})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, res)
}

func TestAnalyzeFields_CustomFieldWithoutPrefix(t *testing.T) {
	res, err := newAnalyzer().AnalyzeFields(fields("customField__c"))
	require.NoError(t, err)

	require.Len(t, res.Violations, 1)
	v := res.Violations[0]
	assert.Equal(t, "customField__c", v.APIName)
	assert.Equal(t, domain.NamingMedium, v.HighestSeverity)
	assert.Contains(t, rules(v), catalog.RuleManagedPrefix)
	assert.Contains(t, rules(v), catalog.RuleCustomPrefix)
	assert.Equal(t, []string{"customField__c"}, res.BySeverity.Medium)
	assert.Equal(t, 0, res.CompliantFieldCount)
	assert.Equal(t, 0, res.CompliancePercentage)
	assert.Equal(t, "Change first character 'c' to uppercase: 'CustomField__c'", v.RecommendedFix)
}

func TestAnalyzeFields_CustomLoanFieldIsCompliant(t *testing.T) {
	res, err := newAnalyzer().AnalyzeFields(fields("nc_Loan_Score__c"))
	require.NoError(t, err)

	assert.Empty(t, res.Violations)
	assert.Equal(t, 1, res.CompliantFieldCount)
	assert.Equal(t, 100, res.CompliancePercentage)
}

func TestAnalyzeFields_ManagedFieldIsCompliant(t *testing.T) {
	res, err := newAnalyzer().AnalyzeFields(fields("LLC_BI__Amount__c", "LLC_BI__Loan__c"))
	require.NoError(t, err)

	assert.Empty(t, res.Violations)
	assert.Equal(t, 100, res.CompliancePercentage)
}

func TestAnalyzeFields_MissingPrefixesAccumulateTwoViolations(t *testing.T) {
	res, err := newAnalyzer().AnalyzeFields(fields("Amount__c"))
	require.NoError(t, err)

	require.Len(t, res.Violations, 1)
	v := res.Violations[0]
	require.Len(t, v.Violations, 2)
	assert.Equal(t, catalog.RuleManagedPrefix, v.Violations[0].Rule)
	assert.Equal(t, catalog.RuleCustomPrefix, v.Violations[1].Rule)
	assert.Equal(t, "^LLC_BI__", v.Violations[0].Pattern)
	require.NotNil(t, v.Violations[0].Expected)
	assert.True(t, *v.Violations[0].Expected)
	assert.Equal(t, domain.ViolationConvention, v.Violations[0].Kind)
	assert.Equal(t, "Add appropriate prefix ('LLC_BI__' for managed package fields or 'nc_' for custom fields)", v.RecommendedFix)
}

func TestAnalyzeFields_LoanWithoutPrefix(t *testing.T) {
	res, err := newAnalyzer().AnalyzeFields(fields("Loan_Amount__c"))
	require.NoError(t, err)

	require.Len(t, res.Violations, 1)
	v := res.Violations[0]
	assert.Equal(t, []string{
		catalog.RuleManagedPrefix,
		catalog.RuleCustomPrefix,
		catalog.RuleLoanStructure,
		catalog.RuleInvalidPattern,
	}, rules(v))
	assert.Equal(t, domain.NamingCritical, v.HighestSeverity)
	assert.Equal(t, domain.ViolationStructural, v.Violations[2].Kind)
	assert.Equal(t, domain.NamingCritical, v.Violations[2].Severity)
	assert.Equal(t, "Add 'nc_' prefix: 'nc_Loan_Amount__c'", v.RecommendedFix)
}

func TestAnalyzeFields_LowercaseLoanChecksRunIndependently(t *testing.T) {
	res, err := newAnalyzer().AnalyzeFields(fields("loan_amount__c"))
	require.NoError(t, err)

	require.Len(t, res.Violations, 1)
	v := res.Violations[0]
	assert.Contains(t, rules(v), catalog.RuleLowercaseStart)
	assert.Contains(t, rules(v), catalog.RuleLoanStructure)
	assert.Contains(t, rules(v), catalog.RuleInvalidPattern)
	assert.Equal(t, domain.NamingCritical, v.HighestSeverity)
	assert.Equal(t, "Change first character 'l' to uppercase: 'Loan_amount__c'", v.RecommendedFix)
}

func TestAnalyzeFields_InvalidSuffixOnPrefixedField(t *testing.T) {
	res, err := newAnalyzer().AnalyzeFields(fields("nc_Loan_Rate__X"))
	require.NoError(t, err)

	require.Len(t, res.Violations, 1)
	v := res.Violations[0]
	assert.Equal(t, []string{catalog.RuleLoanStructure, catalog.RuleInvalidPattern}, rules(v))
	assert.Equal(t, "Remove '__X' suffix: 'nc_Loan_Rate__c'", v.RecommendedFix)
}

func TestAnalyzeFields_LowercaseAfterPrefix(t *testing.T) {
	res, err := newAnalyzer().AnalyzeFields(fields("nc_score__c"))
	require.NoError(t, err)

	require.Len(t, res.Violations, 1)
	v := res.Violations[0]
	assert.Equal(t, []string{catalog.RuleLowercaseStart}, rules(v))
	assert.Equal(t, domain.NamingLow, v.HighestSeverity)
	assert.Equal(t, "Change first character 's' to uppercase: 'nc_Score__c'", v.RecommendedFix)
}

func TestAnalyzeFields_FullNameAlias(t *testing.T) {
	res, err := newAnalyzer().AnalyzeFields([]domain.FieldRecord{{FullName: "Amount__c"}})
	require.NoError(t, err)

	require.Len(t, res.Violations, 1)
	assert.Equal(t, "Amount__c", res.Violations[0].APIName)
}

func TestAnalyzeFields_ByRuleIndex(t *testing.T) {
	res, err := newAnalyzer().AnalyzeFields(fields("Amount__c", "nc_Rate__c", "Term__c"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Amount__c", "Term__c"}, res.ByRule[catalog.RuleManagedPrefix])
	assert.Equal(t, []string{"Amount__c", "Term__c"}, res.ByRule[catalog.RuleCustomPrefix])
}

func TestAnalyzeFields_CountInvariant(t *testing.T) {
	names := []string{
		"LLC_BI__Amount__c", "nc_Loan_Score__c", "customField__c", "Loan_Amount__c",
		"loan_rate__c", "nc_Rate__X", "Amount__c", "Amount__c", "",
	}
	res, err := newAnalyzer().AnalyzeFields(fields(names...))
	require.NoError(t, err)

	assert.Equal(t, len(names), res.TotalFieldCount)
	assert.Equal(t, res.TotalFieldCount, res.CompliantFieldCount+len(res.Violations))
	assert.Equal(t, len(res.Violations),
		len(res.BySeverity.Critical)+len(res.BySeverity.Medium)+len(res.BySeverity.Low))
	assert.Equal(t, 33, res.CompliancePercentage) // 3 of 9
}

func TestAnalyzeFields_BucketsFollowInputOrder(t *testing.T) {
	res, err := newAnalyzer().AnalyzeFields(fields("Zeta__c", "Loan_A__c", "Alpha__c"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Zeta__c", "Alpha__c"}, res.BySeverity.Medium)
	assert.Equal(t, []string{"Loan_A__c"}, res.BySeverity.Critical)
}

func TestAnalyzeFields_Idempotent(t *testing.T) {
	a := newAnalyzer()
	in := fields("customField__c", "nc_Loan_Score__c", "Loan_Amount__c")

	first, err := a.AnalyzeFields(in)
	require.NoError(t, err)
	second, err := a.AnalyzeFields(in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSeverity_MarkerHeuristic(t *testing.T) {
	assert.Equal(t, domain.NamingCritical, naming.Severity([]domain.NamingViolation{{Rule: "something about Loan"}}))
	assert.Equal(t, domain.NamingCritical, naming.Severity([]domain.NamingViolation{{Rule: "follow standard patterns"}}))
	assert.Equal(t, domain.NamingMedium, naming.Severity([]domain.NamingViolation{{Rule: catalog.RuleCustomPrefix}}))
	assert.Equal(t, domain.NamingLow, naming.Severity([]domain.NamingViolation{{Rule: catalog.RuleManagedPrefix}}))
	assert.Equal(t, domain.NamingCritical, naming.Severity([]domain.NamingViolation{{Rule: "x", Severity: domain.NamingCritical}}))
}

func TestAnalyzeFields_ComplianceRoundsHalfToEven(t *testing.T) {
	res, err := newAnalyzer().AnalyzeFields(fields(
		"nc_Loan_Score__c",
		"customA__c", "customB__c", "customC__c", "customD__c",
		"customE__c", "customF__c", "customG__c",
	))
	require.NoError(t, err)

	assert.Equal(t, 1, res.CompliantFieldCount)
	// 12.5
	assert.Equal(t, 12, res.CompliancePercentage)
}
