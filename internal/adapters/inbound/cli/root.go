package cli

import (
	"github.com/spf13/cobra"

	"github.com/abdidvp/forcekraft/internal/adapters/outbound/config"
	"github.com/abdidvp/forcekraft/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/forcekraft/internal/adapters/outbound/metadata"
	"github.com/abdidvp/forcekraft/internal/application"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "forcekraft",
		Short:         "Naming and bypass-pattern analysis for Salesforce/nCino configuration",
		Long:          "forcekraft checks field naming conventions and finds bypass patterns in validation rules, Apex triggers and flows, then rolls them into a weighted configuration health report.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newAnalyzeCmd())
	cmd.AddCommand(newReportCmd())
	cmd.AddCommand(newNamingCmd())
	cmd.AddCommand(newValidationCmd())
	cmd.AddCommand(newTriggersCmd())
	cmd.AddCommand(newFlowsCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newMCPCmd())
	cmd.AddCommand(newInitCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

func newAnalysisService() *application.AnalysisService {
	return application.NewAnalysisService(config.New(), metadata.New(), gitinfo.New())
}
