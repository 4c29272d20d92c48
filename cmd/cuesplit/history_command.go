package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cuesplit/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently processed images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !cfg.History.Enabled {
				fmt.Fprintln(out, "History is disabled ([history] enabled = false)")
				return nil
			}
			store, err := history.Open(cmd.Context(), cfg.History.Path)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			entries, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No history recorded yet")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.FinishedAt.Local().Format("2006-01-02 15:04"),
					entry.ImagePath,
					string(entry.Status),
					strconv.Itoa(entry.TrackCount),
					historyDetail(entry),
				})
			}
			fmt.Fprintln(out, renderTable([]column{
				textColumn("Finished"),
				textColumn("Image"),
				textColumn("Status"),
				numberColumn("Tracks"),
				wrapColumn("Detail"),
			}, rows))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", history.DefaultListLimit, "Maximum number of entries to show")
	return cmd
}

func historyDetail(entry history.Entry) string {
	if entry.Status == history.StatusFailed {
		if entry.ErrorKind != "" {
			return entry.ErrorKind + ": " + entry.ErrorMessage
		}
		return entry.ErrorMessage
	}
	return entry.OutputDir
}
