package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Jowenthebui/PO-Tracking/internal/config"
	"github.com/Jowenthebui/PO-Tracking/pkg/utils"
)

// App carries what every command needs once flags are parsed
type App struct {
	ConfigPath string
	EnvFile    string

	Config *config.Config
	Logger *zap.Logger
}

// NewRootCmd creates the top-level command. Running it without a
// subcommand starts the server.
func NewRootCmd() *cobra.Command {
	app := &App{}

	root := &cobra.Command{
		Use:           "po-tracker",
		Short:         "PO approval checklist and stage tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), app)
		},
	}

	root.PersistentFlags().StringVar(&app.ConfigPath, "config", "configs/config.yaml", "path to the YAML config file (optional)")
	root.PersistentFlags().StringVar(&app.EnvFile, "env-file", ".env", "dotenv file loaded before the config (optional)")

	root.AddCommand(
		newServeCmd(app),
		newMigrateCmd(app),
		newExportCmd(app),
		newParseCmd(),
	)

	return root
}

func (a *App) load() error {
	if err := config.LoadEnvFile(a.EnvFile); err != nil {
		return err
	}

	cfg, err := config.Load(a.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	a.Config = cfg
	a.Logger = logger
	return nil
}
