package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cuesplit/internal/deps"
	"cuesplit/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report which external tools are installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			statuses := deps.CheckBinaries(preflight.AllRequirements(cfg))

			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				location := status.Path
				if !status.Available {
					location = status.Detail
				}
				rows = append(rows, []string{
					status.Name,
					status.Package,
					yesNo(!status.Optional),
					yesNo(status.Available),
					location,
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]column{
				textColumn("Tool"),
				textColumn("Package"),
				textColumn("Required"),
				textColumn("Available"),
				wrapColumn("Location"),
			}, rows))

			if missing := deps.Missing(statuses); len(missing) > 0 {
				return fmt.Errorf("%d required tool(s) missing", len(missing))
			}
			fmt.Fprintln(out, "All required tools are available")
			return nil
		},
	}
}
