// Package metadata reads already-parsed Salesforce metadata records from
// JSON files selected by doublestar globs.
package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fatih/camelcase"

	"github.com/abdidvp/forcekraft/internal/domain"
)

// JSONLoader implements domain.MetadataLoader. Every matched file must hold
// a JSON array of records.
type JSONLoader struct{}

func New() *JSONLoader { return &JSONLoader{} }

func (l *JSONLoader) LoadFields(projectPath string, patterns []string) ([]domain.FieldRecord, error) {
	fields, err := readRecords[domain.FieldRecord](projectPath, patterns)
	if err != nil {
		return nil, err
	}
	for i := range fields {
		if fields[i].Label == "" {
			fields[i].Label = DeriveLabel(fields[i].Identifier())
		}
	}
	return fields, nil
}

func (l *JSONLoader) LoadValidationRules(projectPath string, patterns []string) ([]domain.ValidationRuleRecord, error) {
	return readRecords[domain.ValidationRuleRecord](projectPath, patterns)
}

func (l *JSONLoader) LoadTriggers(projectPath string, patterns []string) ([]domain.TriggerRecord, error) {
	return readRecords[domain.TriggerRecord](projectPath, patterns)
}

func (l *JSONLoader) LoadFlows(projectPath string, patterns []string) ([]domain.FlowRecord, error) {
	return readRecords[domain.FlowRecord](projectPath, patterns)
}

// ReadFile decodes a single JSON array file, for commands that take an
// explicit path rather than configured globs.
func ReadFile[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return records, nil
}

func readRecords[T any](projectPath string, patterns []string) ([]T, error) {
	paths, err := Resolve(projectPath, patterns)
	if err != nil {
		return nil, err
	}
	var all []T
	for _, p := range paths {
		records, err := ReadFile[T](p)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
	}
	return all, nil
}

// Resolve expands patterns into a sorted, de-duplicated list of file paths.
// Relative patterns are matched under projectPath. A pattern matching
// nothing is not an error.
func Resolve(projectPath string, patterns []string) ([]string, error) {
	var paths []string
	fsys := os.DirFS(projectPath)
	for _, pattern := range patterns {
		var matches []string
		var err error
		if filepath.IsAbs(pattern) {
			matches, err = doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		} else {
			matches, err = doublestar.Glob(fsys, filepath.ToSlash(pattern), doublestar.WithFilesOnly())
			for i, m := range matches {
				matches[i] = filepath.Join(projectPath, filepath.FromSlash(m))
			}
		}
		if err != nil {
			return nil, fmt.Errorf("expanding %q: %w", pattern, err)
		}
		paths = append(paths, matches...)
	}
	slices.Sort(paths)
	return slices.Compact(paths), nil
}

// DeriveLabel builds a display label from a field API name:
// LLC_BI__LoanAmount__c becomes "Loan Amount".
func DeriveLabel(apiName string) string {
	name := strings.TrimPrefix(apiName, "LLC_BI__")
	name = strings.TrimPrefix(name, "nc_")
	name = strings.TrimSuffix(name, "__c")

	var words []string
	for _, part := range strings.Split(name, "_") {
		if part == "" {
			continue
		}
		words = append(words, camelcase.Split(part)...)
	}
	return strings.Join(words, " ")
}
