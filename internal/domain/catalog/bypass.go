package catalog

import (
	"regexp"

	"github.com/abdidvp/forcekraft/internal/domain"
)

// Bypass rule names. Names are shared across component types where the
// construct is the same.
const (
	ProfileBypass          = "Profile-based bypass"
	CustomPermissionBypass = "Custom permission bypass"
	UserIDBypass           = "User ID bypass"
	RecordTypeBypass       = "Record Type bypass"
	OwnerIDBypass          = "Owner ID bypass"

	FeatureManagementCheck = "Feature management permission check"
	CustomSettingBypass    = "Custom setting bypass"
	HardcodedUserIDCheck   = "Hardcoded User ID check"
	ProfileNameCheck       = "Profile name check"

	PermissionBypass = "Permission-based bypass"
)

const (
	recommendCustomPermissions = "Use custom permissions instead of relying on profiles."
	recommendNoUserIDs         = "Use permission sets, custom permissions, or roles instead of specific User IDs."
	describeHardcodedUserIDs   = "Hardcoding User IDs creates significant maintenance issues and security risks."
)

func text(pattern string) PatternMatcher {
	return PatternMatcher{Pattern: regexp.MustCompile(pattern)}
}

func validationRuleRules() []BypassRule {
	return []BypassRule{
		{
			Name:                ProfileBypass,
			Matcher:             text(`\$Profile\.Name\s*(?:[=!]?=|<>)|\$Profile\.Name.*CONTAINS|CONTAINS\(\s*\$Profile\.Name`),
			Severity:            domain.SeverityMedium,
			Description:         "Using Profile.Name to bypass validation rules creates maintenance challenges when profiles change and makes rules difficult to manage at scale.",
			RecommendedApproach: "Use custom permissions instead, which are more maintainable and explicit.",
		},
		{
			Name:                CustomPermissionBypass,
			Matcher:             text(`NOT\(\$Permission\.[^)]+\)`),
			Severity:            domain.SeverityLow,
			Description:         "Using NOT with permissions is generally acceptable but should be documented and consistently implemented.",
			RecommendedApproach: "Ensure permission names are consistently structured with prefixes like 'Bypass_' for clarity.",
		},
		{
			Name:                UserIDBypass,
			Matcher:             text(`\$User\.Id\s*(?:[=!]?=|<>)\s*['"]005|['"]005[A-Za-z0-9]{12,15}['"]\s*(?:[=!]?=|<>)\s*\$User\.Id|CONTAINS\(\s*['"][^'"]*005[A-Za-z0-9]{12}[^'"]*['"]\s*,\s*\$User\.Id|CONTAINS\(\s*\$User\.Id\s*,\s*['"]005`),
			Severity:            domain.SeverityHigh,
			Description:         "Hardcoding specific User IDs creates significant maintenance issues and security risks.",
			RecommendedApproach: recommendNoUserIDs,
		},
		{
			Name:                RecordTypeBypass,
			Matcher:             text(`RecordType\.Name\s*!=|RecordType\.Name\s*<>`),
			Severity:            domain.SeverityMedium,
			Description:         "Explicitly excluding certain record types can create maintenance challenges.",
			RecommendedApproach: "Use explicit inclusion rather than exclusion when possible.",
		},
		{
			Name:                OwnerIDBypass,
			Matcher:             text(`OwnerId\s*(?:[=!]?=|<>)\s*\$User\.Id|\$User\.Id\s*(?:[=!]?=|<>)\s*OwnerId`),
			Severity:            domain.SeverityMedium,
			Description:         "Bypassing validation for record owners may create inconsistent data validation.",
			RecommendedApproach: "Consider permission-based approaches that don't depend on record ownership.",
		},
	}
}

func triggerRules() []BypassRule {
	return []BypassRule{
		{
			Name:                FeatureManagementCheck,
			Matcher:             text(`FeatureManagement\.checkPermission\s*\(\s*['"]([\w_]+)['"]`),
			Severity:            domain.SeverityLow,
			Description:         "Using FeatureManagement to check permissions is recommended, but should be implemented consistently.",
			RecommendedApproach: "Use a consistent pattern like return !FeatureManagement.checkPermission('Bypass_Trigger');",
		},
		{
			Name:                CustomSettingBypass,
			Matcher:             text(`([\w_]+__c)\.([\w_]+__c)`),
			Severity:            domain.SeverityMedium,
			Description:         "Using custom settings to control trigger execution can create maintenance challenges.",
			RecommendedApproach: "Document the custom setting usage and ensure consistent implementation.",
		},
		{
			Name:                HardcodedUserIDCheck,
			Matcher:             text(`['"]005(?:[A-Za-z0-9]{15}|[A-Za-z0-9]{12})['"]`),
			Severity:            domain.SeverityHigh,
			Description:         describeHardcodedUserIDs,
			RecommendedApproach: recommendNoUserIDs,
		},
		{
			Name:                ProfileNameCheck,
			Matcher:             text(`(?i)profile\.name\s*==\s*['"]|userinfo\.getprofileid\(\)\s*==\s*['"]`),
			Severity:            domain.SeverityMedium,
			Description:         "Using profile names or IDs to bypass logic creates maintenance challenges.",
			RecommendedApproach: recommendCustomPermissions,
		},
	}
}

var flowEntryPoint = regexp.MustCompile(`Start|Decision`)

func flowRules() []BypassRule {
	return []BypassRule{
		{
			Name:                PermissionBypass,
			Matcher:             FlowMatcher{Location: flowEntryPoint, Condition: regexp.MustCompile(`\$Permission\.`)},
			Severity:            domain.SeverityLow,
			Description:         "Using permissions to control flow execution is a recommended pattern when implemented consistently.",
			RecommendedApproach: "Use a consistent naming convention for bypass permissions.",
		},
		{
			Name:                ProfileBypass,
			Matcher:             FlowMatcher{Location: flowEntryPoint, Condition: regexp.MustCompile(`\$Profile\.`)},
			Severity:            domain.SeverityMedium,
			Description:         "Using profiles to control flow execution creates maintenance challenges.",
			RecommendedApproach: recommendCustomPermissions,
		},
		{
			Name:                UserIDBypass,
			Matcher:             FlowMatcher{Location: flowEntryPoint, Condition: regexp.MustCompile(`\$User\.Id`)},
			Severity:            domain.SeverityHigh,
			Description:         describeHardcodedUserIDs,
			RecommendedApproach: recommendNoUserIDs,
		},
	}
}
