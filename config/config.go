// Package config provides configuration loading for sysmon.
package config

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yaml
var defaultConfig embed.FS

// Config holds all application configuration.
type Config struct {
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
	Speedtest  SpeedtestConfig  `mapstructure:"speedtest"`
	Keys       KeysConfig       `mapstructure:"keys"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// MonitoringConfig holds sampling-related settings.
type MonitoringConfig struct {
	// TickInterval is how often the dashboard samples and redraws.
	TickInterval time.Duration `mapstructure:"tick_interval"`
	// TopProcessCount is how many top processes to display.
	TopProcessCount int `mapstructure:"top_process_count"`
	// DiskPath is the filesystem whose usage is shown in the disk gauge.
	DiskPath string `mapstructure:"disk_path"`
}

// SpeedtestConfig holds settings for the on-demand throughput probe.
type SpeedtestConfig struct {
	// Command is the probe executable plus arguments.
	Command []string `mapstructure:"command"`
	// SampleInterval is how often live throughput samples are taken while
	// the probe runs.
	SampleInterval time.Duration `mapstructure:"sample_interval"`
	// WaitTimeout bounds the wait for probe exit after its output ends.
	WaitTimeout time.Duration `mapstructure:"wait_timeout"`
	// MaxSamples bounds the live sample window.
	MaxSamples int `mapstructure:"max_samples"`
}

// KeysConfig holds the dashboard key bindings.
type KeysConfig struct {
	// Kill opens the process-kill prompt.
	Kill string `mapstructure:"kill"`
	// NetworkPanel toggles the speedtest panel.
	NetworkPanel string `mapstructure:"network_panel"`
}

// LoggingConfig holds logging-related settings.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	Level string `mapstructure:"level"`
	// FilePath is the log file path (relative to the config dir if not
	// absolute). Empty disables file logging.
	FilePath string `mapstructure:"file_path"`
	// MaxSizeMB is the maximum log file size before rotation.
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the maximum number of rotated files to retain.
	MaxBackups int `mapstructure:"max_backups"`
	// MaxAge is the maximum age of rotated files in days.
	MaxAge int `mapstructure:"max_age"`
}

// Load reads the configuration from path, falling back to the embedded
// defaults when path is empty or the file does not exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	} else {
		data, err := defaultConfig.ReadFile("config.yaml")
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded config: %w", err)
		}
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("failed to parse embedded config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// DefaultPath returns the default configuration file path.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "sysmon", "config.yaml"), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("monitoring.tick_interval", "1s")
	v.SetDefault("monitoring.top_process_count", 10)
	v.SetDefault("monitoring.disk_path", "/")

	v.SetDefault("speedtest.command", []string{"speedtest-cli", "--simple"})
	v.SetDefault("speedtest.sample_interval", "200ms")
	v.SetDefault("speedtest.wait_timeout", "10s")
	v.SetDefault("speedtest.max_samples", 200)

	v.SetDefault("keys.kill", "k")
	v.SetDefault("keys.network_panel", "n")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file_path", "logs/sysmon.log")
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 5)
	v.SetDefault("logging.max_age", 7)
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() []error {
	var errs []error

	if c.Monitoring.TickInterval < 100*time.Millisecond {
		errs = append(errs, fmt.Errorf("tick_interval must be at least 100ms"))
	}
	if c.Monitoring.TopProcessCount < 1 || c.Monitoring.TopProcessCount > 50 {
		errs = append(errs, fmt.Errorf("top_process_count must be between 1 and 50"))
	}
	if c.Monitoring.DiskPath == "" {
		errs = append(errs, fmt.Errorf("disk_path must not be empty"))
	}

	if len(c.Speedtest.Command) == 0 {
		errs = append(errs, fmt.Errorf("speedtest command must not be empty"))
	}
	if c.Speedtest.SampleInterval < 50*time.Millisecond {
		errs = append(errs, fmt.Errorf("speedtest sample_interval must be at least 50ms"))
	}
	if c.Speedtest.WaitTimeout < time.Second {
		errs = append(errs, fmt.Errorf("speedtest wait_timeout must be at least 1s"))
	}
	if c.Speedtest.MaxSamples < 1 {
		errs = append(errs, fmt.Errorf("speedtest max_samples must be positive"))
	}

	if c.Keys.Kill == "" || c.Keys.NetworkPanel == "" {
		errs = append(errs, fmt.Errorf("key bindings must not be empty"))
	}
	if c.Keys.Kill == c.Keys.NetworkPanel {
		errs = append(errs, fmt.Errorf("kill and network_panel keys must differ"))
	}

	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[c.Logging.Level] {
		errs = append(errs, fmt.Errorf("invalid log level: %s", c.Logging.Level))
	}

	return errs
}
