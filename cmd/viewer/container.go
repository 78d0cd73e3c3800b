package main

import (
	"CamView/internal/config"
	"CamView/internal/shared/constants"
	"CamView/internal/viewer/domain"
	"CamView/internal/viewer/events"
	handler "CamView/internal/viewer/handlers"
	runner "CamView/internal/viewer/runners"
	"CamView/internal/viewer/shell"
	"context"
	"fmt"
	"log/slog"
	"os"
)

type Container struct {
	Config    *config.Config
	Logger    *slog.Logger
	Prober    *runner.HTTPProber
	WebView   *shell.WebView
	MainLoop  *handler.MainLoop
	Lifecycle *handler.LifecycleHandler
	Publisher events.Publisher
}

func NewContainer(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: log,
	}

	if err := c.initPublisher(); err != nil {
		return nil, err
	}

	if err := c.initShell(); err != nil {
		c.Close()
		return nil, err
	}

	c.initProber()
	c.initHandlers(ctx)

	return c, nil
}

func (c *Container) initPublisher() error {
	redisCfg := c.Config.Events.Redis
	if !redisCfg.Enabled {
		c.Publisher = events.NopPublisher{}
		return nil
	}

	publisher, err := events.NewRedisPublisher(redisCfg.GetRedisOptions(), redisCfg.Channel, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to init probe events: %w", err)
	}
	c.Publisher = publisher
	return nil
}

func (c *Container) initShell() error {
	launcher := shell.NewSystemLauncher(c.Config.Shell.SettingsCommand)
	notifier := shell.NewConsoleNotifier(os.Stderr, c.Logger)
	prompter := shell.NewPrompter(notifier, launcher, c.Logger)

	webView, err := shell.NewWebView(shell.WebViewConfig{
		ListenAddr:  c.Config.Shell.ListenAddr,
		OpenBrowser: c.Config.Shell.OpenBrowser,
		Mode:        c.Config.Shell.Mode,
		Settings:    c.Config.Widget,
	}, constants.CameraURL, prompter, launcher, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to init viewer: %w", err)
	}

	if err := webView.Listen(); err != nil {
		return err
	}

	c.WebView = webView
	return nil
}

func (c *Container) initProber() {
	c.Prober = runner.NewHTTPProber(runner.WithLogger(c.Logger))
}

func (c *Container) initHandlers(ctx context.Context) {
	c.MainLoop = handler.NewMainLoop(16)
	c.Lifecycle = handler.NewLifecycleHandler(c.Prober, c.MainLoop, c.WebView, c.Publisher, c.Logger)

	c.WebView.SetDispatcher(c.MainLoop.Post)
	c.WebView.OnReload(func() {
		c.Lifecycle.OnResume(ctx, domain.NewResumeEvent(domain.ResumeReload))
	})
}

func (c *Container) Close() {
	if c.Publisher != nil {
		if err := c.Publisher.Close(); err != nil {
			c.Logger.Warn("Failed to close publisher", "error", err)
		}
	}
}
