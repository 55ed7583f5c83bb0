package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdidvp/forcekraft/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the project config file read from the project root.
const FileName = ".forcekraft.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .forcekraft.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .forcekraft.yaml from projectPath.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(projectPath string) (domain.ProjectConfig, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.ProjectConfig{}, err
	}

	var cfg domain.ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	// Validate before merging so typos in the user's input are reported.
	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", FileName, err)
	}

	return mergeConfig(domain.DefaultConfig(), cfg), nil
}

// mergeConfig overlays explicit values on top of the defaults.
// Sources are merged per domain so a file can override only one glob list.
func mergeConfig(base, override domain.ProjectConfig) domain.ProjectConfig {
	result := base

	if override.Object != "" {
		result.Object = override.Object
	}
	if len(override.Sources.Fields) > 0 {
		result.Sources.Fields = override.Sources.Fields
	}
	if len(override.Sources.ValidationRules) > 0 {
		result.Sources.ValidationRules = override.Sources.ValidationRules
	}
	if len(override.Sources.Triggers) > 0 {
		result.Sources.Triggers = override.Sources.Triggers
	}
	if len(override.Sources.Flows) > 0 {
		result.Sources.Flows = override.Sources.Flows
	}

	result.Skip = override.Skip
	result.Ignore = override.Ignore
	result.MinScore = override.MinScore

	return result
}

// DefaultFile is the commented config written by `forcekraft init`.
const DefaultFile = `# forcekraft project configuration
object: LLC_BI__Loan__c

# Globs, relative to this file, of JSON arrays of already-parsed metadata.
sources:
  fields:
    - metadata/fields.json
  validation_rules:
    - metadata/validation_rules.json
  triggers:
    - metadata/triggers.json
  flows:
    - metadata/flows.json

# Domains to leave out: naming_conventions, validation_rules, triggers, flows.
skip: []

# Record identifiers (API names, trigger and flow names) to exclude.
ignore: []

# Minimum overall score for "forcekraft analyze --ci".
min_score: 0
`
