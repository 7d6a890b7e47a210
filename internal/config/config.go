// Package config loads application configuration from a YAML file with
// environment overrides for secrets.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/efisher/prjanitor/internal/domain/model"
)

// Defaults applied when the file leaves a value unset. Threshold and label
// defaults come from the domain model so the two cannot drift.
const (
	defaultInterval     = time.Hour
	defaultFetchTimeout = 30 * time.Second
	defaultSMTPPort     = 587
	defaultLogLevel     = "info"
)

// SMTPConfig holds mail relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// LogConfig holds logging settings. An empty File disables the rotating
// file handler and logs to stdout only.
type LogConfig struct {
	File       string
	Level      string
	Stdout     bool
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Config is the validated application configuration.
type Config struct {
	GitHubToken  string
	Repositories []string

	ReadyLabel      string
	InProgressLabel string
	HelpWantedLabel string

	NotifyAfter time.Duration
	WarnAfter   time.Duration
	CloseAfter  time.Duration

	Interval     time.Duration
	FetchTimeout time.Duration
	Location     *time.Location

	Recipient    string
	SMTP         SMTPConfig
	CloseEnabled bool
	Log          LogConfig
}

// fileConfig mirrors the YAML layout. Durations are strings so operators can
// write "168h" or "30s"; they are parsed and validated in Load.
type fileConfig struct {
	GitHub struct {
		Token        string   `yaml:"token"`
		Repositories []string `yaml:"repositories"`
	} `yaml:"github"`
	Labels struct {
		Ready      string `yaml:"ready"`
		InProgress string `yaml:"in_progress"`
		HelpWanted string `yaml:"help_wanted"`
	} `yaml:"labels"`
	Thresholds struct {
		NotifyAfter string `yaml:"notify_after"`
		WarnAfter   string `yaml:"warn_after"`
		CloseAfter  string `yaml:"close_after"`
	} `yaml:"thresholds"`
	Run struct {
		Interval     string `yaml:"interval"`
		FetchTimeout string `yaml:"fetch_timeout"`
		Timezone     string `yaml:"timezone"`
	} `yaml:"run"`
	Notify struct {
		Recipient string `yaml:"recipient"`
	} `yaml:"notify"`
	SMTP struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		From     string `yaml:"from"`
	} `yaml:"smtp"`
	Actions struct {
		CloseEnabled bool `yaml:"close_enabled"`
	} `yaml:"actions"`
	Log struct {
		File       string `yaml:"file"`
		Level      string `yaml:"level"`
		Stdout     bool   `yaml:"stdout"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAgeDays int    `yaml:"max_age_days"`
		Compress   bool   `yaml:"compress"`
	} `yaml:"log"`
}

// Load reads the YAML file at path and returns a validated Config.
// Secrets may be supplied (or overridden) via PRJANITOR_GITHUB_TOKEN and
// PRJANITOR_SMTP_PASSWORD. Load fails fast on a missing repository list or
// notify recipient.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	defaultLabels := model.DefaultTriageLabels()
	defaultThresholds := model.DefaultThresholds()

	cfg := &Config{
		GitHubToken:     strings.TrimSpace(fc.GitHub.Token),
		ReadyLabel:      defaultLabels.Ready,
		InProgressLabel: defaultLabels.InProgress,
		HelpWantedLabel: defaultLabels.HelpWanted,
		Recipient:       strings.TrimSpace(fc.Notify.Recipient),
		CloseEnabled:    fc.Actions.CloseEnabled,
		SMTP: SMTPConfig{
			Host:     fc.SMTP.Host,
			Port:     fc.SMTP.Port,
			Username: fc.SMTP.Username,
			Password: fc.SMTP.Password,
			From:     fc.SMTP.From,
		},
		Log: LogConfig{
			File:       fc.Log.File,
			Level:      fc.Log.Level,
			Stdout:     fc.Log.Stdout,
			MaxSizeMB:  fc.Log.MaxSizeMB,
			MaxBackups: fc.Log.MaxBackups,
			MaxAgeDays: fc.Log.MaxAgeDays,
			Compress:   fc.Log.Compress,
		},
	}

	for _, repo := range fc.GitHub.Repositories {
		repo = strings.TrimSpace(repo)
		if repo != "" {
			cfg.Repositories = append(cfg.Repositories, repo)
		}
	}

	if fc.Labels.Ready != "" {
		cfg.ReadyLabel = fc.Labels.Ready
	}
	if fc.Labels.InProgress != "" {
		cfg.InProgressLabel = fc.Labels.InProgress
	}
	if fc.Labels.HelpWanted != "" {
		cfg.HelpWantedLabel = fc.Labels.HelpWanted
	}

	if cfg.NotifyAfter, err = durationOr(fc.Thresholds.NotifyAfter, defaultThresholds.NotifyAfter, "thresholds.notify_after"); err != nil {
		return nil, err
	}
	if cfg.WarnAfter, err = durationOr(fc.Thresholds.WarnAfter, defaultThresholds.WarnAfter, "thresholds.warn_after"); err != nil {
		return nil, err
	}
	if cfg.CloseAfter, err = durationOr(fc.Thresholds.CloseAfter, defaultThresholds.CloseAfter, "thresholds.close_after"); err != nil {
		return nil, err
	}
	if cfg.Interval, err = durationOr(fc.Run.Interval, defaultInterval, "run.interval"); err != nil {
		return nil, err
	}
	if cfg.FetchTimeout, err = durationOr(fc.Run.FetchTimeout, defaultFetchTimeout, "run.fetch_timeout"); err != nil {
		return nil, err
	}

	cfg.Location = time.UTC
	if fc.Run.Timezone != "" {
		loc, err := time.LoadLocation(fc.Run.Timezone)
		if err != nil {
			return nil, fmt.Errorf("run.timezone has invalid zone %q: %w", fc.Run.Timezone, err)
		}
		cfg.Location = loc
	}

	if v := os.Getenv("PRJANITOR_GITHUB_TOKEN"); v != "" {
		cfg.GitHubToken = strings.TrimSpace(v)
	}
	if v := os.Getenv("PRJANITOR_SMTP_PASSWORD"); v != "" {
		cfg.SMTP.Password = strings.TrimSpace(v)
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = defaultLogLevel
	}
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = defaultSMTPPort
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks the invariants Load cannot default its way around.
func (c *Config) validate() error {
	if len(c.Repositories) == 0 {
		return fmt.Errorf("github.repositories must list at least one owner/repo")
	}
	for _, repo := range c.Repositories {
		if !strings.Contains(repo, "/") {
			return fmt.Errorf("github.repositories entry %q: expected owner/repo", repo)
		}
	}
	if c.GitHubToken == "" {
		return fmt.Errorf("github.token is required (or set PRJANITOR_GITHUB_TOKEN)")
	}
	if c.Recipient == "" {
		return fmt.Errorf("notify.recipient is required")
	}
	if c.SMTP.Host == "" {
		return fmt.Errorf("smtp.host is required")
	}
	if c.SMTP.From == "" {
		return fmt.Errorf("smtp.from is required")
	}
	if c.WarnAfter >= c.CloseAfter {
		return fmt.Errorf("thresholds.warn_after (%s) must be shorter than thresholds.close_after (%s)", c.WarnAfter, c.CloseAfter)
	}
	return nil
}

// durationOr parses a duration string, falling back to def when empty.
func durationOr(v string, def time.Duration, field string) (time.Duration, error) {
	if v == "" {
		return def, nil
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s has invalid duration %q: %w", field, v, err)
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %q", field, v)
	}
	return parsed, nil
}
