package shell

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

type Launcher interface {
	OpenURL(ctx context.Context, url string) error
	OpenNetworkSettings(ctx context.Context) error
}

type CommandRunner func(ctx context.Context, name string, args ...string) error

type SystemLauncher struct {
	goos            string
	settingsCommand []string
	run             CommandRunner
}

func NewSystemLauncher(settingsCommand []string) *SystemLauncher {
	return &SystemLauncher{
		goos:            runtime.GOOS,
		settingsCommand: settingsCommand,
		run:             startCommand,
	}
}

func (l *SystemLauncher) OpenURL(ctx context.Context, url string) error {
	cmd := l.openCommand(url)
	if len(cmd) == 0 {
		return fmt.Errorf("open %s on %s: %w", url, l.goos, ErrNoLauncher)
	}
	if err := l.run(ctx, cmd[0], cmd[1:]...); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	return nil
}

func (l *SystemLauncher) OpenNetworkSettings(ctx context.Context) error {
	cmd := l.settingsCommand
	if len(cmd) == 0 {
		cmd = defaultSettingsCommand(l.goos)
	}
	if len(cmd) == 0 {
		return fmt.Errorf("network settings on %s: %w", l.goos, ErrNoLauncher)
	}
	if err := l.run(ctx, cmd[0], cmd[1:]...); err != nil {
		return fmt.Errorf("failed to open network settings: %w", err)
	}
	return nil
}

func (l *SystemLauncher) openCommand(url string) []string {
	switch l.goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return []string{"xdg-open", url}
	case "darwin":
		return []string{"open", url}
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler", url}
	case "android":
		return []string{"am", "start", "-a", "android.intent.action.VIEW", "-d", url}
	default:
		return nil
	}
}

func defaultSettingsCommand(goos string) []string {
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return []string{"nm-connection-editor"}
	case "darwin":
		return []string{"open", "x-apple.systempreferences:com.apple.preference.network"}
	case "windows":
		return []string{"explorer.exe", "ms-settings:network-wifi"}
	case "android":
		return []string{"am", "start", "-a", "android.settings.WIFI_SETTINGS"}
	default:
		return nil
	}
}

// startCommand does not wait for the launched program to exit.
func startCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}
