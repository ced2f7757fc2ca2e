package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Jowenthebui/PO-Tracking/internal/container"
)

func newExportCmd(app *App) *cobra.Command {
	var monthKey, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a month's PO checklist workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cc := app.Config.ToContainerConfig()
			cc.Reminder.Enabled = false
			c, err := container.NewContainer(cc, app.Logger)
			if err != nil {
				return err
			}
			if err := c.Start(ctx); err != nil {
				return err
			}
			defer c.Close()

			exporter := c.Services().Export

			var buf bytes.Buffer
			month, err := exporter.ExportMonthByKey(ctx, monthKey, &buf)
			if err != nil {
				return fmt.Errorf("export %s: %w", monthKey, err)
			}

			if out == "" {
				out = exporter.FileName(month)
			}
			if err := os.WriteFile(out, buf.Bytes(), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&monthKey, "month", "", "month key, YYYY-MM")
	cmd.Flags().StringVar(&out, "out", "", "output file (default po-tracker-<month>.xlsx)")
	_ = cmd.MarkFlagRequired("month")

	return cmd
}
