package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/forcekraft/internal/adapters/outbound/metadata"
	"github.com/abdidvp/forcekraft/internal/adapters/outbound/tui"
	"github.com/abdidvp/forcekraft/internal/application"
)

// componentCmd builds a command that analyzes one JSON array of records
// of type T read from a file.
func componentCmd[T, R any](
	use, short string,
	analyze func(*application.AnalysisService, []T) (R, error),
	render func(R) string,
) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   use + " <file.json>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := metadata.ReadFile[T](args[0])
			if err != nil {
				return err
			}
			result, err := analyze(newAnalysisService(), records)
			if err != nil {
				return err
			}
			if jsonOutput {
				return renderJSON(cmd, result)
			}
			fmt.Fprint(cmd.OutOrStdout(), render(result))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output analysis as JSON")
	return cmd
}

func newNamingCmd() *cobra.Command {
	return componentCmd(
		"naming",
		"Check field API names against naming conventions",
		(*application.AnalysisService).AnalyzeFields,
		tui.RenderNaming,
	)
}

func newValidationCmd() *cobra.Command {
	return componentCmd(
		"validation",
		"Find bypass patterns in validation rule formulas",
		(*application.AnalysisService).AnalyzeValidationRules,
		tui.RenderBypass,
	)
}

func newTriggersCmd() *cobra.Command {
	return componentCmd(
		"triggers",
		"Find bypass patterns in Apex trigger source",
		(*application.AnalysisService).AnalyzeTriggers,
		tui.RenderBypass,
	)
}

func newFlowsCmd() *cobra.Command {
	return componentCmd(
		"flows",
		"Find bypass patterns in flow entry criteria",
		(*application.AnalysisService).AnalyzeFlows,
		tui.RenderBypass,
	)
}
