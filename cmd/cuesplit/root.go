package main

import (
	"errors"

	"github.com/spf13/cobra"

	"cuesplit/internal/workflow"
)

// errRunIncomplete is returned after the report has been printed when some
// unit of work failed; main exits 1 without printing it again.
var errRunIncomplete = errors.New("run finished with failures")

func newRootCommand() *cobra.Command {
	var configFlag string
	var logLevelFlag string
	var logFormatFlag string
	var removeSource bool
	var dryRun bool

	ctx := newCommandContext(&configFlag, &logLevelFlag, &logFormatFlag)

	rootCmd := &cobra.Command{
		Use:   "cuesplit [path]",
		Short: "Split APE/FLAC/WAV/WV images into FLAC tracks by CUE sheet",
		Long: "Splits every disc image in path (default: current directory) into FLAC tracks\n" +
			"using the CUE sheet with the same base name. Tracks are written to a\n" +
			"subdirectory named after the image and renamed from their tags.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureLogger()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			manager := workflow.NewManager(cfg, logger)
			report, runErr := manager.Run(cmd.Context(), workflow.Options{
				Dir:          dir,
				RemoveSource: removeSource,
				DryRun:       dryRun,
			})
			out := cmd.OutOrStdout()
			renderReport(out, report, shouldColorize(out))
			if runErr != nil {
				return runErr
			}
			if !report.OK() {
				return errRunIncomplete
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "Log format override (console, json)")
	rootCmd.Flags().BoolVarP(&removeSource, "remove", "r", false, "Remove the original image and CUE after a successful split")
	rootCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Scan and match only; do not run any tool or touch files")

	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
