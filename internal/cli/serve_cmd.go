package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Jowenthebui/PO-Tracking/internal/container"
	httpapi "github.com/Jowenthebui/PO-Tracking/internal/interfaces/http"
	"github.com/Jowenthebui/PO-Tracking/pkg/utils"
	"github.com/Jowenthebui/PO-Tracking/web"
)

func newServeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server and the reminder worker",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), app)
		},
	}
}

func runServe(parent context.Context, app *App) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, logger := app.Config, app.Logger
	logger.Info("Starting PO tracker",
		zap.String("version", httpapi.Version),
		zap.String("addr", cfg.Server.Addr()))

	c, err := container.NewContainer(cfg.ToContainerConfig(), logger)
	if err != nil {
		return err
	}
	if err := c.Start(ctx); err != nil {
		return fmt.Errorf("failed to start container: %w", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Error("Container close failed", zap.Error(err))
		}
	}()

	// Set Gin mode based on logger level
	if cfg.Logger.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	svc := c.Services()
	server := httpapi.NewServer(httpapi.ServerConfig{
		Addr:         cfg.Server.Addr(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		UploadDir:    cfg.Storage.UploadDir,
		Assets:       web.Assets(),
	}, httpapi.Services{
		Months:  svc.Month,
		POs:     svc.PO,
		Steps:   svc.Step,
		Tracker: svc.Tracker,
		Alerts:  svc.Alert,
		Export:  svc.Export,
		Links:   svc.Links,
		Health:  c.Probe,
	}, utils.NewKVLogger(logger))

	// Either side failing cancels the other
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(gctx)
	})
	g.Go(func() error {
		return c.RunWorkers(gctx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("Server exited successfully")
	return nil
}
