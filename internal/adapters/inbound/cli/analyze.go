package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abdidvp/forcekraft/internal/adapters/outbound/config"
	"github.com/abdidvp/forcekraft/internal/adapters/outbound/tui"
	"github.com/abdidvp/forcekraft/internal/domain"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		jsonOutput  bool
		tableOutput bool
		badge       bool
		ciMode      bool
		minScore    int
	)

	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Analyze a project's extracted metadata",
		Long:  "Run every configured analysis over the metadata JSON files of a project and print the composite report.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			report, err := newAnalysisService().AnalyzeProject(absPath)
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}

			switch {
			case jsonOutput:
				if err := renderJSON(cmd, report); err != nil {
					return err
				}
			case tableOutput:
				if err := tui.RenderPriorities(cmd.OutOrStdout(), report); err != nil {
					return err
				}
			case badge:
				renderBadge(cmd, report)
			default:
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
			}

			if ciMode {
				threshold := minScore
				if !cmd.Flags().Changed("min") {
					cfg, err := config.New().Load(absPath)
					if err != nil {
						return fmt.Errorf("loading config: %w", err)
					}
					threshold = cfg.MinScore
				}
				if report.OverallScore.Score < threshold {
					return fmt.Errorf("score %d is below minimum %d", report.OverallScore.Score, threshold)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output report as JSON")
	cmd.Flags().BoolVar(&tableOutput, "table", false, "Output refactoring priorities as a table")
	cmd.Flags().BoolVar(&badge, "badge", false, "Output shields.io badge URL")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 if below --min (or min_score from config)")
	cmd.Flags().IntVar(&minScore, "min", 0, "Minimum score for CI mode")
	cmd.MarkFlagsMutuallyExclusive("json", "table", "badge")

	return cmd
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderBadge(cmd *cobra.Command, r *domain.Report) {
	url := fmt.Sprintf("https://img.shields.io/badge/forcekraft-%d%%2F100-%s", r.OverallScore.Score, badgeColor(r.OverallScore.Rating))
	fmt.Fprintln(cmd.OutOrStdout(), url)
}

func badgeColor(rating string) string {
	switch rating {
	case "Excellent":
		return "brightgreen"
	case "Good":
		return "green"
	case "Fair":
		return "yellow"
	case "Poor":
		return "orange"
	case "Critical":
		return "red"
	default:
		return "lightgrey"
	}
}
