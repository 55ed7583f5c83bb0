package cli

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abdidvp/forcekraft/internal/adapters/outbound/config"
	"github.com/abdidvp/forcekraft/internal/adapters/outbound/tui"
	"github.com/abdidvp/forcekraft/internal/adapters/outbound/watcher"
)

func newWatchCmd() *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Re-run the analysis whenever metadata files change",
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

			w, err := watcher.New(watcher.Config{
				Root:          absPath,
				DebounceDelay: debounce,
				FileFilter:    isMetadataFile,
			})
			if err != nil {
				return fmt.Errorf("starting watcher: %w", err)
			}

			svc := newAnalysisService()
			out := cmd.OutOrStdout()
			run := func() {
				report, err := svc.AnalyzeProject(absPath)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "analysis failed: %v\n", err)
					return
				}
				fmt.Fprint(out, tui.RenderReport(report))
			}
			run()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return w.Run(ctx, func(paths []string) {
				fmt.Fprintf(out, "\n%d file(s) changed, re-analyzing\n", len(paths))
				run()
			})
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", watcher.DefaultDebounceDelay, "Quiet period before re-running")

	return cmd
}

func isMetadataFile(path string) bool {
	return filepath.Ext(path) == ".json" || filepath.Base(path) == config.FileName
}
