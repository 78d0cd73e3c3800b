package config

import (
	"CamView/internal/shared/constants"
	"CamView/internal/viewer/domain"
	"CamView/pkg/validator"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig             `mapstructure:"app"`
	Logging LoggingConfig         `mapstructure:"logging"`
	Shell   ShellConfig           `mapstructure:"shell"`
	Widget  domain.WidgetSettings `mapstructure:"widget"`
	Events  EventsConfig          `mapstructure:"events"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ShellConfig struct {
	ListenAddr      string   `mapstructure:"listen_addr"`
	Mode            string   `mapstructure:"mode"`
	OpenBrowser     bool     `mapstructure:"open_browser"`
	SettingsCommand []string `mapstructure:"settings_command"`
}

type EventsConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Channel  string `mapstructure:"channel"`
}

// Load reads path when given, otherwise config.yaml from ./configs. A missing
// default file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("configs")
	}

	v.SetEnvPrefix("CAMVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			slog.Warn("config file not found, using defaults")
		} else {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config, %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed, %w", err)
	}

	slog.Debug("configuration loaded", "file", v.ConfigFileUsed())
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	// app defaults
	v.SetDefault("app.name", "camview")
	v.SetDefault("app.version", "1.0.0")

	// logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// shell defaults
	v.SetDefault("shell.listen_addr", "127.0.0.1:8765")
	v.SetDefault("shell.mode", "release")
	v.SetDefault("shell.open_browser", true)
	v.SetDefault("shell.settings_command", []string{})

	// widget defaults
	widget := domain.DefaultWidgetSettings()
	v.SetDefault("widget.javascript_enabled", widget.JavaScriptEnabled)
	v.SetDefault("widget.dom_storage_enabled", widget.DOMStorageEnabled)
	v.SetDefault("widget.use_wide_viewport", widget.UseWideViewPort)
	v.SetDefault("widget.load_with_overview_mode", widget.LoadWithOverviewMode)
	v.SetDefault("widget.allow_file_access", widget.AllowFileAccess)
	v.SetDefault("widget.media_playback_requires_user_gesture", widget.MediaPlaybackRequiresUserGesture)

	// events defaults
	v.SetDefault("events.redis.enabled", false)
	v.SetDefault("events.redis.addr", "localhost:6379")
	v.SetDefault("events.redis.password", "")
	v.SetDefault("events.redis.db", 0)
	v.SetDefault("events.redis.channel", "camview:probes")
}

func validateConfig(cfg *Config) error {
	if !validator.ValidateLogLevel(cfg.Logging.Level) {
		return fmt.Errorf("invalid logging level %s", cfg.Logging.Level)
	}

	if !validator.ValidateLogFormat(cfg.Logging.Format) {
		return fmt.Errorf("invalid logging format %s", cfg.Logging.Format)
	}

	if !validator.ValidateListenAddr(cfg.Shell.ListenAddr) {
		return fmt.Errorf("invalid shell listen address %q", cfg.Shell.ListenAddr)
	}

	if cfg.Shell.Mode != "debug" && cfg.Shell.Mode != "release" {
		return fmt.Errorf("invalid shell mode %s", cfg.Shell.Mode)
	}

	if cfg.Events.Redis.Enabled {
		if cfg.Events.Redis.Addr == "" {
			return errors.New("redis address is required when events are enabled")
		}
		if cfg.Events.Redis.Channel == "" {
			return errors.New("redis channel is required when events are enabled")
		}
	}

	if !validator.IsLoopback(cfg.Shell.ListenAddr) {
		slog.Warn("Viewer listens beyond loopback, the camera page is reachable from the network",
			"address", cfg.Shell.ListenAddr)
	}

	return nil
}

// GetRedisOptions returns the options for the events Redis client.
func (r *RedisConfig) GetRedisOptions() *redis.Options {
	return &redis.Options{
		Addr:            r.Addr,
		Password:        r.Password,
		DB:              r.DB,
		DisableIdentity: true,
		DialTimeout:     constants.RedisDialTimeout,
		ReadTimeout:     constants.RedisIOTimeout,
		WriteTimeout:    constants.RedisIOTimeout,
		MaxRetries:      constants.RedisMaxRetries,
	}
}
