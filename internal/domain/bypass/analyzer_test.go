package bypass_test

import (
	"fmt"
	"io"
	"log"
	"testing"

	"github.com/abdidvp/forcekraft/internal/domain"
	"github.com/abdidvp/forcekraft/internal/domain/bypass"
	"github.com/abdidvp/forcekraft/internal/domain/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnalyzer() *bypass.Analyzer {
	return bypass.New(catalog.Default(), bypass.WithLogger(log.New(io.Discard, "", 0)))
}

func rule(name, formula string) domain.ValidationRuleRecord {
	return domain.ValidationRuleRecord{APIName: name, Active: true, ErrorConditionFormula: formula}
}

func trigger(name, content string) domain.TriggerRecord {
	return domain.TriggerRecord{Name: name, Active: true, Content: content}
}

func names(findings []domain.Finding) []string {
	var out []string
	for _, f := range findings {
		out = append(out, f.Name)
	}
	return out
}

func TestAnalyzeValidationRules_EmptyIsInvalidInput(t *testing.T) {
	res, err := newAnalyzer().AnalyzeValidationRules(nil)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, res)
}

func TestAnalyzeTriggers_EmptyIsInvalidInput(t *testing.T) {
	res, err := newAnalyzer().AnalyzeTriggers([]domain.TriggerRecord{})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, res)
}

func TestAnalyzeFlows_EmptyIsInvalidInput(t *testing.T) {
	res, err := newAnalyzer().AnalyzeFlows(nil)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, res)
}

func TestAnalyzeValidationRules_ProfileBypass(t *testing.T) {
	res, err := newAnalyzer().AnalyzeValidationRules([]domain.ValidationRuleRecord{
		rule("Require_Amount", "$Profile.Name != 'System Administrator'"),
	})
	require.NoError(t, err)

	require.Len(t, res.BypassPatterns, 1)
	flagged := res.BypassPatterns[0]
	assert.Equal(t, []string{catalog.ProfileBypass}, names(flagged.Patterns))
	assert.Equal(t, domain.SeverityMedium, flagged.Patterns[0].Severity)
	assert.Equal(t, domain.SeverityMedium, flagged.HighestSeverity)
	assert.Equal(t, []string{"Require_Amount"}, res.BySeverity.Medium)
	assert.Equal(t, 100, res.BypassPercentage)
	assert.Equal(t, 68, res.SecurityScore)
	assert.Equal(t, domain.ComponentValidation, res.ComponentType)
}

func TestAnalyzeValidationRules_FindingsFollowCatalogOrder(t *testing.T) {
	formula := "AND(OwnerId = $User.Id, NOT($Permission.Bypass_Validation), $Profile.Name = 'Loan Officer')"
	res, err := newAnalyzer().AnalyzeValidationRules([]domain.ValidationRuleRecord{rule("Multi", formula)})
	require.NoError(t, err)

	require.Len(t, res.BypassPatterns, 1)
	assert.Equal(t, []string{
		catalog.ProfileBypass,
		catalog.CustomPermissionBypass,
		catalog.OwnerIDBypass,
	}, names(res.BypassPatterns[0].Patterns))
	assert.Equal(t, domain.SeverityMedium, res.BypassPatterns[0].HighestSeverity)
}

func TestAnalyzeValidationRules_UserIDIsHigh(t *testing.T) {
	res, err := newAnalyzer().AnalyzeValidationRules([]domain.ValidationRuleRecord{
		rule("Block_Edits", "AND($User.Id <> '005000000000001', ISCHANGED(Amount))"),
	})
	require.NoError(t, err)

	require.Len(t, res.BypassPatterns, 1)
	assert.Equal(t, domain.SeverityHigh, res.BypassPatterns[0].HighestSeverity)
	assert.Equal(t, []string{"Block_Edits"}, res.BySeverity.High)
}

func TestAnalyzeValidationRules_RecordTypeAndAliases(t *testing.T) {
	res, err := newAnalyzer().AnalyzeValidationRules([]domain.ValidationRuleRecord{
		{FullName: "Check_Type", Formula: "RecordType.Name <> 'Renewal'"},
		rule("Clean", "ISBLANK(Amount)"),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 1, res.WithBypass)
	assert.Equal(t, 50, res.BypassPercentage)
	require.Len(t, res.BypassPatterns, 1)
	assert.Equal(t, "Check_Type", res.BypassPatterns[0].Identifier)
	assert.Equal(t, []string{"Check_Type"}, res.ByPattern[catalog.RecordTypeBypass])
	assert.Empty(t, res.ByPattern[catalog.UserIDBypass])
	assert.Len(t, res.ByPattern, 5)
}

func TestAnalyzeTriggers_FeatureManagementCheck(t *testing.T) {
	content := `trigger LoanTrigger on LLC_BI__Loan__c (before insert) {
    if (FeatureManagement.checkPermission('Bypass_Loan_Trigger')) { return; }
}`
	res, err := newAnalyzer().AnalyzeTriggers([]domain.TriggerRecord{trigger("LoanTrigger", content)})
	require.NoError(t, err)

	require.Len(t, res.BypassPatterns, 1)
	assert.Equal(t, []string{catalog.FeatureManagementCheck}, names(res.BypassPatterns[0].Patterns))
	assert.Equal(t, domain.SeverityLow, res.BypassPatterns[0].HighestSeverity)
	assert.Equal(t, []string{"LoanTrigger"}, res.BySeverity.Low)
	// 100 - 30
	assert.Equal(t, 70, res.SecurityScore)
}

func TestAnalyzeTriggers_CodeAliasAndAllPatterns(t *testing.T) {
	code := `if (Trigger_Settings__c.Disable_Loan__c) return;
if (UserInfo.getUserId() == '005000000000000AAA') return;
if (UserInfo.getProfileId() == '00e000000000000') return;`
	res, err := newAnalyzer().AnalyzeTriggers([]domain.TriggerRecord{{Name: "T", Code: code}})
	require.NoError(t, err)

	require.Len(t, res.BypassPatterns, 1)
	assert.Equal(t, []string{
		catalog.CustomSettingBypass,
		catalog.HardcodedUserIDCheck,
		catalog.ProfileNameCheck,
	}, names(res.BypassPatterns[0].Patterns))
	assert.Equal(t, domain.SeverityHigh, res.BypassPatterns[0].HighestSeverity)
}

func TestAnalyzeTriggers_ScoreClampsToZero(t *testing.T) {
	var triggers []domain.TriggerRecord
	for i := range 20 {
		triggers = append(triggers, trigger(fmt.Sprintf("T%02d", i), "if (UserInfo.getUserId() == '005000000000000AAA') return;"))
	}
	res, err := newAnalyzer().AnalyzeTriggers(triggers)
	require.NoError(t, err)

	assert.Len(t, res.BySeverity.High, 20)
	assert.Equal(t, 0, res.SecurityScore)
}

func TestAnalyzeTriggers_NoBypass(t *testing.T) {
	res, err := newAnalyzer().AnalyzeTriggers([]domain.TriggerRecord{trigger("Clean", "LoanHandler.run();")})
	require.NoError(t, err)

	assert.Empty(t, res.BypassPatterns)
	assert.Equal(t, 0, res.BypassPercentage)
	assert.Equal(t, 100, res.SecurityScore)
}

func TestAnalyzeFlows_EntryCriteria(t *testing.T) {
	flows := []domain.FlowRecord{
		{Name: "Loan_Approval", Active: true, Elements: []domain.FlowElement{
			{Name: "Start", Location: "Start", Condition: "{!$Permission.Bypass_Flows} = false"},
			{Name: "Check_Owner", Location: "Decision", Condition: "{!$User.Id} = '005000000000000'"},
		}},
		{Name: "Loan_Notify", Elements: []domain.FlowElement{
			{Name: "Assign", Location: "Assignment", Condition: "{!$Profile.Name} = 'Admin'"},
		}},
	}
	res, err := newAnalyzer().AnalyzeFlows(flows)
	require.NoError(t, err)

	assert.Equal(t, domain.ComponentFlow, res.ComponentType)
	require.Len(t, res.BypassPatterns, 1)
	assert.Equal(t, "Loan_Approval", res.BypassPatterns[0].Identifier)
	assert.Equal(t, []string{catalog.PermissionBypass, catalog.UserIDBypass}, names(res.BypassPatterns[0].Patterns))
	assert.Equal(t, domain.SeverityHigh, res.BypassPatterns[0].HighestSeverity)
	assert.Empty(t, res.ByPattern[catalog.ProfileBypass])
}

func TestAnalyze_Idempotent(t *testing.T) {
	a := newAnalyzer()
	in := []domain.ValidationRuleRecord{
		rule("A", "$Profile.Name = 'Admin'"),
		rule("B", "NOT($Permission.Skip)"),
	}
	first, err := a.AnalyzeValidationRules(in)
	require.NoError(t, err)
	second, err := a.AnalyzeValidationRules(in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAnalyze_HighestSeverityMatchesFindings(t *testing.T) {
	res, err := newAnalyzer().AnalyzeValidationRules([]domain.ValidationRuleRecord{
		rule("A", "NOT($Permission.Skip)"),
		rule("B", "NOT($Permission.Skip) && RecordType.Name != 'X'"),
		rule("C", "$User.Id = '005000000000001' || NOT($Permission.Skip)"),
	})
	require.NoError(t, err)

	require.Len(t, res.BypassPatterns, 3)
	for _, fc := range res.BypassPatterns {
		assert.Equal(t, bypass.Highest(fc.Patterns), fc.HighestSeverity, fc.Identifier)
	}
	assert.Equal(t, []string{"A"}, res.BySeverity.Low)
	assert.Equal(t, []string{"B"}, res.BySeverity.Medium)
	assert.Equal(t, []string{"C"}, res.BySeverity.High)
}

func TestAnalyzeValidationRules_UserIDComparisonWithoutLiteral(t *testing.T) {
	res, err := newAnalyzer().AnalyzeValidationRules([]domain.ValidationRuleRecord{
		rule("Owner_Only", "$User.Id <> OwnerId"),
		rule("Setup_Bypass", "$User.Id = $Setup.Bypass__c.UserId__c"),
	})
	require.NoError(t, err)

	require.Len(t, res.BypassPatterns, 1)
	assert.Equal(t, "Owner_Only", res.BypassPatterns[0].Identifier)
	assert.Equal(t, []string{catalog.OwnerIDBypass}, names(res.BypassPatterns[0].Patterns))
	assert.Empty(t, res.BySeverity.High)
	assert.Equal(t, []string{"Owner_Only"}, res.BySeverity.Medium)
}

func TestAnalyzeValidationRules_ScoreRoundsHalfToEven(t *testing.T) {
	res, err := newAnalyzer().AnalyzeValidationRules([]domain.ValidationRuleRecord{
		rule("A", "NOT($Permission.Bypass_Validation)"),
		rule("B", "ISBLANK(Amount__c)"),
		rule("C", "ISBLANK(Stage__c)"),
		rule("D", "ISBLANK(Close_Date__c)"),
	})
	require.NoError(t, err)

	assert.Equal(t, 25, res.BypassPercentage)
	// 100 - 25*0.3 = 92.5
	assert.Equal(t, 92, res.SecurityScore)
}
