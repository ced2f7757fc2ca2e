package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jowenthebui/PO-Tracking/pkg/database"
)

func newMigrateCmd(app *App) *cobra.Command {
	var status bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config.Database
			db, err := database.New(database.Config{
				Path:            cfg.Path,
				MaxOpenConns:    cfg.MaxOpenConns,
				MaxIdleConns:    cfg.MaxIdleConns,
				ConnMaxLifetime: cfg.ConnMaxLifetime,
			}, app.Logger)
			if err != nil {
				return err
			}
			defer db.Close()

			migrator := database.NewMigrator(db, app.Logger)
			out := cmd.OutOrStdout()

			if status {
				statuses, err := migrator.Status(cmd.Context())
				if err != nil {
					return err
				}
				for _, s := range statuses {
					applied := "pending"
					if s.AppliedAt != nil {
						applied = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
					fmt.Fprintf(out, "%03d %-20s %s\n", s.Version, s.Name, applied)
				}
				return nil
			}

			applied, err := migrator.Up(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to run database migrations: %w", err)
			}

			fmt.Fprintf(out, "applied %d migration(s) to %s\n", applied, db.Path())
			return nil
		},
	}

	cmd.Flags().BoolVar(&status, "status", false, "list migrations and whether they are applied, without applying")
	return cmd
}
