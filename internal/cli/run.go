package cli

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/testbed-ci/rig/internal/harness"
	"github.com/testbed-ci/rig/internal/report"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the configured jobs and write a JUnit report",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, rootDir, err := loadConfigAndRoot(configPath)
		if err != nil {
			return err
		}

		log := newLogger()

		// Ctrl+C behaves like a timeout: the current child is killed and
		// confirmed dead before the harness returns.
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		h := harness.New(cfg, rootDir, log)
		results, runErr := h.Run(ctx)

		if len(results) > 0 {
			resultsDir := cfg.Settings.ResultsDir
			if !filepath.IsAbs(resultsDir) {
				resultsDir = filepath.Join(rootDir, resultsDir)
			}
			path, err := report.WriteJUnit(resultsDir, "rig", harness.TestResults(results))
			if err != nil {
				log.Error().Err(err).Msg("writing report")
				if runErr == nil {
					runErr = err
				}
			} else {
				log.Info().Str("path", path).Msg("report written")
			}
		}

		return runErr
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
