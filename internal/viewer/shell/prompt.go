package shell

import (
	"CamView/internal/shared/constants"
	"context"
	"log/slog"
)

type Prompter struct {
	notifier Notifier
	launcher Launcher
	logger   *slog.Logger
}

func NewPrompter(notifier Notifier, launcher Launcher, logger *slog.Logger) *Prompter {
	return &Prompter{
		notifier: notifier,
		launcher: launcher,
		logger:   logger,
	}
}

// PromptReconnect asks the user to join the camera network and opens the
// system network settings.
func (p *Prompter) PromptReconnect(ctx context.Context) error {
	p.notifier.Notify(ctx, constants.ReconnectMessage)

	if err := p.launcher.OpenNetworkSettings(ctx); err != nil {
		p.logger.Error("Failed to open network settings", "error", err)
		return err
	}
	return nil
}
