package main

import (
	"CamView/internal/config"
	"CamView/internal/shared/constants"
	"CamView/internal/viewer/domain"
	"CamView/pkg/logger"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var rootCmd = &cobra.Command{
	Use:   "camview",
	Short: "Camera WiFi viewer",
	Long:  "Shows the camera web interface at " + constants.CameraURL + " once it is reachable.",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")

		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		cmd.SilenceUsage = true

		log := logger.Setup(logger.Config{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		})

		log.Info("Starting CamView",
			slog.String("name", cfg.App.Name),
			slog.String("version", cfg.App.Version),
			slog.String("target", constants.CameraURL),
		)

		return run(cmd.Context(), cfg, log)
	},
}

func init() {
	rootCmd.Flags().StringP("config", "c", "", "path to config file (default configs/config.yaml)")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	container, err := NewContainer(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer container.Close()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return container.MainLoop.Run(gctx)
	})

	g.Go(func() error {
		return container.WebView.Serve()
	})

	g.Go(func() error {
		<-gctx.Done()
		container.Lifecycle.OnPause()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()
		return container.WebView.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		watchResume(gctx, container, log)
		return nil
	})

	container.Lifecycle.OnResume(gctx, domain.NewResumeEvent(domain.ResumeStartup))

	err = g.Wait()
	container.Lifecycle.Wait()
	log.Info("CamView stopped")
	return err
}

// watchResume turns SIGHUP into resume events.
func watchResume(ctx context.Context, container *Container, log *slog.Logger) {
	resume := make(chan os.Signal, 1)
	signal.Notify(resume, syscall.SIGHUP)
	defer signal.Stop(resume)

	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-resume:
			log.Debug("resume signal", "signal", sig.String())
			container.Lifecycle.OnResume(ctx, domain.NewResumeEvent(domain.ResumeSignal))
		}
	}
}
