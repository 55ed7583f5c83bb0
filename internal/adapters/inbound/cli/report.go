package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abdidvp/forcekraft/internal/adapters/outbound/tui"
	"github.com/abdidvp/forcekraft/internal/domain"
	"github.com/abdidvp/forcekraft/internal/domain/report"
)

func newReportCmd() *cobra.Command {
	var (
		namingFile     string
		validationFile string
		triggersFile   string
		flowsFile      string
		object         string
		jsonOutput     bool
		tableOutput    bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build a report from saved analysis results",
		Long:  "Combine the --json output of the naming, validation, triggers and flows commands into one composite report. Every input is optional.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var in report.Input
			var err error
			if in.Naming, err = readAnalysis[domain.NamingAnalysis](namingFile); err != nil {
				return err
			}
			if in.Validation, err = readAnalysis[domain.BypassAnalysis](validationFile); err != nil {
				return err
			}
			if in.Triggers, err = readAnalysis[domain.BypassAnalysis](triggersFile); err != nil {
				return err
			}
			if in.Flows, err = readAnalysis[domain.BypassAnalysis](flowsFile); err != nil {
				return err
			}

			r := newAnalysisService().BuildReport(in, object)
			switch {
			case jsonOutput:
				return renderJSON(cmd, r)
			case tableOutput:
				return tui.RenderPriorities(cmd.OutOrStdout(), r)
			default:
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(r))
				return nil
			}
		},
	}

	cmd.Flags().StringVar(&namingFile, "naming", "", "Naming analysis JSON")
	cmd.Flags().StringVar(&validationFile, "validation", "", "Validation rule analysis JSON")
	cmd.Flags().StringVar(&triggersFile, "triggers", "", "Trigger analysis JSON")
	cmd.Flags().StringVar(&flowsFile, "flows", "", "Flow analysis JSON")
	cmd.Flags().StringVar(&object, "object", domain.DefaultObject, "Object the report is about")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output report as JSON")
	cmd.Flags().BoolVar(&tableOutput, "table", false, "Output refactoring priorities as a table")
	cmd.MarkFlagsMutuallyExclusive("json", "table")

	return cmd
}

// readAnalysis decodes one saved analysis. An empty path yields nil.
func readAnalysis[T any](path string) (*T, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &v, nil
}
