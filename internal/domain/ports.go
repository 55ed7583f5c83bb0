package domain

// ConfigLoader reads project configuration.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, error)
}

// MetadataLoader resolves source globs into already-parsed records.
// A glob that matches nothing yields no records and no error.
type MetadataLoader interface {
	LoadFields(projectPath string, patterns []string) ([]FieldRecord, error)
	LoadValidationRules(projectPath string, patterns []string) ([]ValidationRuleRecord, error)
	LoadTriggers(projectPath string, patterns []string) ([]TriggerRecord, error)
	LoadFlows(projectPath string, patterns []string) ([]FlowRecord, error)
}

// CommitReader returns the commit the analyzed metadata was checked out at.
type CommitReader interface {
	IsGitRepo(projectPath string) bool
	CommitHash(projectPath string) (string, error)
}
