package tui

import (
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/abdidvp/forcekraft/internal/domain"
)

// RenderPriorities writes every refactoring priority in the report as one
// plain table, grouped by domain in report order.
func RenderPriorities(w io.Writer, r *domain.Report) error {
	table := tablewriter.NewWriter(w)
	table.Header("Domain", "Component", "Severity", "Patterns")

	for _, sec := range []struct {
		name     string
		findings *domain.BypassFindings
	}{
		{domain.DomainValidation, r.DetailedFindings.ValidationRules},
		{domain.DomainTriggers, r.DetailedFindings.Triggers},
		{domain.DomainFlows, r.DetailedFindings.Flows},
	} {
		if sec.findings == nil {
			continue
		}
		for _, fc := range sec.findings.RefactoringPriorities {
			names := make([]string, len(fc.Patterns))
			for i, f := range fc.Patterns {
				names[i] = f.Name
			}
			if err := table.Append(sec.name, fc.Identifier, string(fc.HighestSeverity), strings.Join(names, ", ")); err != nil {
				return err
			}
		}
	}
	return table.Render()
}
