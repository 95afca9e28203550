// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultStorageURL   = "file://.placement-readiness"
	DefaultHistoryKey   = "placement_readiness_history"
	DefaultChecklistKey = "placement_readiness_test_checklist"
	DefaultHistoryLimit = 50
	DefaultPort         = 8080
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "pretty"

	envPrefix = "READINESS_"
)

// Config is loaded from a JSON or YAML file and the environment.
// All fields are optional; zero values are filled by MergeWithDefaults.
type Config struct {
	StorageURL   string `json:"storage_url,omitempty" yaml:"storage_url,omitempty"`
	HistoryKey   string `json:"history_key,omitempty" yaml:"history_key,omitempty"`
	HistoryLimit int    `json:"history_limit,omitempty" yaml:"history_limit,omitempty"`
	ChecklistKey string `json:"checklist_key,omitempty" yaml:"checklist_key,omitempty"`

	Port int `json:"port,omitempty" yaml:"port,omitempty"`

	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty"` // json or pretty

	UseBrowser bool `json:"use_browser,omitempty" yaml:"use_browser,omitempty"` // headless fallback for SPA job pages
	Verbose    bool `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		StorageURL:   DefaultStorageURL,
		HistoryKey:   DefaultHistoryKey,
		HistoryLimit: DefaultHistoryLimit,
		ChecklistKey: DefaultChecklistKey,
		Port:         DefaultPort,
		LogLevel:     DefaultLogLevel,
		LogFormat:    DefaultLogFormat,
	}
}

// LoadConfig reads a configuration file. Files ending in .yaml or .yml are parsed as
// YAML, everything else as JSON.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}
	return &cfg, nil
}

// FromEnv reads READINESS_* variables. Unset variables leave fields zero.
func FromEnv() (Config, error) {
	var cfg Config
	cfg.StorageURL = os.Getenv(envPrefix + "STORAGE_URL")
	cfg.HistoryKey = os.Getenv(envPrefix + "HISTORY_KEY")
	cfg.ChecklistKey = os.Getenv(envPrefix + "CHECKLIST_KEY")
	cfg.LogLevel = os.Getenv(envPrefix + "LOG_LEVEL")
	cfg.LogFormat = os.Getenv(envPrefix + "LOG_FORMAT")

	var err error
	if cfg.Port, err = envInt("PORT"); err != nil {
		return Config{}, err
	}
	if cfg.HistoryLimit, err = envInt("HISTORY_LIMIT"); err != nil {
		return Config{}, err
	}
	if cfg.UseBrowser, err = envBool("USE_BROWSER"); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func envInt(name string) (int, error) {
	v := strings.TrimSpace(os.Getenv(envPrefix + name))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config error: %s%s must be an integer: %w", envPrefix, name, err)
	}
	return n, nil
}

func envBool(name string) (bool, error) {
	v := strings.TrimSpace(os.Getenv(envPrefix + name))
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config error: %s%s must be a boolean: %w", envPrefix, name, err)
	}
	return b, nil
}

var storageSchemes = map[string]bool{
	"memory": true, "mem": true, "file": true, "sqlite": true,
	"postgres": true, "postgresql": true, "redis": true, "rediss": true,
}

// Validate checks that the configuration has valid values. Zero values are accepted.
func (c *Config) Validate() error {
	if c.HistoryLimit < 0 {
		return fmt.Errorf("config error: 'history_limit' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.LogFormat != "" && c.LogFormat != "json" && c.LogFormat != "pretty" {
		return fmt.Errorf("config error: 'log_format' must be json or pretty, got %q", c.LogFormat)
	}
	switch c.LogLevel {
	case "", "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("config error: unknown 'log_level' %q", c.LogLevel)
	}
	if c.StorageURL != "" && strings.Contains(c.StorageURL, "://") {
		u, err := url.Parse(c.StorageURL)
		if err != nil {
			return fmt.Errorf("config error: invalid 'storage_url': %w", err)
		}
		if !storageSchemes[u.Scheme] {
			return fmt.Errorf("config error: unsupported 'storage_url' scheme %q", u.Scheme)
		}
	}
	if c.HistoryKey != "" && c.HistoryKey == c.ChecklistKey {
		return fmt.Errorf("config error: 'history_key' and 'checklist_key' must differ")
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.StorageURL == "" {
		result.StorageURL = defaults.StorageURL
	}
	if result.HistoryKey == "" {
		result.HistoryKey = defaults.HistoryKey
	}
	if result.ChecklistKey == "" {
		result.ChecklistKey = defaults.ChecklistKey
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if result.HistoryLimit == 0 {
		result.HistoryLimit = defaults.HistoryLimit
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bools cannot distinguish unset from false; either source enables them.
	result.UseBrowser = result.UseBrowser || defaults.UseBrowser
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// Resolve layers flags over the environment over the file over the built-in defaults.
// path may be empty.
func Resolve(path string, flags Config) (Config, error) {
	fileCfg := Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		fileCfg = *loaded
	}
	envCfg, err := FromEnv()
	if err != nil {
		return Config{}, err
	}

	merged := envCfg.MergeWithDefaults(fileCfg.MergeWithDefaults(Default()))
	merged = flags.MergeWithDefaults(merged)
	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}
