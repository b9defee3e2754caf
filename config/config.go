// Package config provides configuration management for the simkit
// command-line tool. It supports loading configuration from YAML files,
// environment variables, and command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// OutputFormat defines the supported output formats for CLI results.
type OutputFormat string

const (
	// OutputFormatText is human-readable plain text output.
	OutputFormatText OutputFormat = "text"
	// OutputFormatJSON is JSON-formatted output for machine processing.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML is YAML-formatted output for machine processing.
	OutputFormatYAML OutputFormat = "yaml"
)

// Default configuration values.
const (
	DefaultOracleModel   = "gpt-4o-mini"
	DefaultOracleTimeout = 2 * time.Minute
	DefaultMaxTurns      = 40
	DefaultMaxConcurrent = 4
	DefaultSeed          = int64(1)
	DefaultCacheTTL      = 24 * time.Hour
	DefaultOutputFormat  = OutputFormatText
	DefaultConfigDir     = ".simkit"
	DefaultConfigFile    = "config.yaml"
)

// OracleConfig holds text-generation backend settings.
type OracleConfig struct {
	// Model is the model identifier requested from the backend.
	Model string `yaml:"model"`

	// BaseURL overrides the backend endpoint (for proxies and compatible
	// servers). Empty uses the backend's default endpoint.
	BaseURL string `yaml:"base_url,omitempty"`

	// Timeout bounds a single oracle exchange, including retries.
	Timeout time.Duration `yaml:"timeout"`
}

// MeetingConfig holds boardroom simulation defaults.
type MeetingConfig struct {
	// MaxTurns caps the turn loop of a single meeting.
	MaxTurns int `yaml:"max_turns"`

	// MaxConcurrent bounds how many meetings run in parallel.
	MaxConcurrent int `yaml:"max_concurrent"`

	// Seed feeds the deterministic random sources. The same seed, roster,
	// and oracle script reproduce a meeting exactly.
	Seed int64 `yaml:"seed"`
}

// RedisConfig holds the optional shared estimate cache settings.
type RedisConfig struct {
	// Addr is the Redis server address (host:port).
	Addr string `yaml:"addr,omitempty"`

	// Password authenticates against a protected server.
	Password string `yaml:"password,omitempty"`

	// DB selects the Redis logical database.
	DB int `yaml:"db,omitempty"`

	// CacheTTL is the expiry for cached estimate multipliers.
	CacheTTL time.Duration `yaml:"cache_ttl,omitempty"`
}

// IsConfigured returns true if a Redis cache should be used.
func (c *RedisConfig) IsConfigured() bool {
	return c != nil && c.Addr != ""
}

// CLIConfig holds the CLI configuration settings.
type CLIConfig struct {
	// OutputFormat specifies the default output format for commands.
	OutputFormat OutputFormat `yaml:"output_format"`

	// Debug enables verbose debug logging.
	Debug bool `yaml:"debug,omitempty"`

	// Oracle contains text-generation backend settings.
	Oracle OracleConfig `yaml:"oracle"`

	// Meeting contains boardroom simulation defaults.
	Meeting MeetingConfig `yaml:"meeting"`

	// Redis contains the optional shared estimate cache settings.
	Redis *RedisConfig `yaml:"redis,omitempty"`
}

// DefaultConfig returns a CLIConfig with default values.
func DefaultConfig() *CLIConfig {
	return &CLIConfig{
		OutputFormat: DefaultOutputFormat,
		Oracle: OracleConfig{
			Model:   DefaultOracleModel,
			Timeout: DefaultOracleTimeout,
		},
		Meeting: MeetingConfig{
			MaxTurns:      DefaultMaxTurns,
			MaxConcurrent: DefaultMaxConcurrent,
			Seed:          DefaultSeed,
		},
	}
}

// ConfigDir returns the configuration directory path.
// Uses $SIMKIT_CONFIG_DIR if set, otherwise ~/.simkit
func ConfigDir() (string, error) {
	if dir := os.Getenv("SIMKIT_CONFIG_DIR"); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	return filepath.Join(home, DefaultConfigDir), nil
}

// ConfigPath returns the full path to the configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultConfigFile), nil
}

// LoadConfig loads the CLI configuration from file and environment variables.
// Configuration is loaded in this order (later sources override earlier):
// 1. Default values
// 2. Config file (~/.simkit/config.yaml or $SIMKIT_CONFIG_DIR/config.yaml)
// 3. Environment variables (SIMKIT_ORACLE_MODEL, SIMKIT_MAX_TURNS, ...)
func LoadConfig() (*CLIConfig, error) {
	cfg := DefaultConfig()

	configPath, err := ConfigPath()
	if err != nil {
		return nil, fmt.Errorf("getting config path: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	loadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// fileConfig mirrors CLIConfig with durations as strings for YAML.
type fileConfig struct {
	OutputFormat OutputFormat `yaml:"output_format"`
	Debug        bool         `yaml:"debug,omitempty"`
	Oracle       struct {
		Model   string `yaml:"model"`
		BaseURL string `yaml:"base_url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"oracle"`
	Meeting struct {
		MaxTurns      int   `yaml:"max_turns"`
		MaxConcurrent int   `yaml:"max_concurrent"`
		Seed          int64 `yaml:"seed"`
	} `yaml:"meeting"`
	Redis *struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		CacheTTL string `yaml:"cache_ttl"`
	} `yaml:"redis"`
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(cfg *CLIConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var fileCfg fileConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	if fileCfg.OutputFormat != "" {
		cfg.OutputFormat = fileCfg.OutputFormat
	}
	cfg.Debug = fileCfg.Debug
	if fileCfg.Oracle.Model != "" {
		cfg.Oracle.Model = fileCfg.Oracle.Model
	}
	if fileCfg.Oracle.BaseURL != "" {
		cfg.Oracle.BaseURL = fileCfg.Oracle.BaseURL
	}
	if fileCfg.Oracle.Timeout != "" {
		timeout, err := time.ParseDuration(fileCfg.Oracle.Timeout)
		if err != nil {
			return fmt.Errorf("parsing oracle timeout: %w", err)
		}
		cfg.Oracle.Timeout = timeout
	}
	if fileCfg.Meeting.MaxTurns != 0 {
		cfg.Meeting.MaxTurns = fileCfg.Meeting.MaxTurns
	}
	if fileCfg.Meeting.MaxConcurrent != 0 {
		cfg.Meeting.MaxConcurrent = fileCfg.Meeting.MaxConcurrent
	}
	if fileCfg.Meeting.Seed != 0 {
		cfg.Meeting.Seed = fileCfg.Meeting.Seed
	}
	if fileCfg.Redis != nil {
		redis := &RedisConfig{
			Addr:     fileCfg.Redis.Addr,
			Password: fileCfg.Redis.Password,
			DB:       fileCfg.Redis.DB,
			CacheTTL: DefaultCacheTTL,
		}
		if fileCfg.Redis.CacheTTL != "" {
			ttl, err := time.ParseDuration(fileCfg.Redis.CacheTTL)
			if err != nil {
				return fmt.Errorf("parsing redis cache_ttl: %w", err)
			}
			redis.CacheTTL = ttl
		}
		cfg.Redis = redis
	}

	return nil
}

// loadFromEnv overlays environment variables onto the configuration.
func loadFromEnv(cfg *CLIConfig) {
	if v := os.Getenv("SIMKIT_OUTPUT_FORMAT"); v != "" {
		cfg.OutputFormat = OutputFormat(v)
	}

	if v := os.Getenv("SIMKIT_DEBUG"); v == "true" || v == "1" {
		cfg.Debug = true
	}

	if v := os.Getenv("SIMKIT_ORACLE_MODEL"); v != "" {
		cfg.Oracle.Model = v
	}

	if v := os.Getenv("SIMKIT_ORACLE_BASE_URL"); v != "" {
		cfg.Oracle.BaseURL = v
	}

	if v := os.Getenv("SIMKIT_ORACLE_TIMEOUT"); v != "" {
		if timeout, err := time.ParseDuration(v); err == nil {
			cfg.Oracle.Timeout = timeout
		}
	}

	if v := os.Getenv("SIMKIT_MAX_TURNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Meeting.MaxTurns = n
		}
	}

	if v := os.Getenv("SIMKIT_MAX_CONCURRENT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Meeting.MaxConcurrent = n
		}
	}

	if v := os.Getenv("SIMKIT_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Meeting.Seed = n
		}
	}

	if v := os.Getenv("SIMKIT_REDIS_ADDR"); v != "" {
		if cfg.Redis == nil {
			cfg.Redis = &RedisConfig{CacheTTL: DefaultCacheTTL}
		}
		cfg.Redis.Addr = v
	}

	if cfg.Redis != nil {
		if v := os.Getenv("SIMKIT_REDIS_PASSWORD"); v != "" {
			cfg.Redis.Password = v
		}
		if v := os.Getenv("SIMKIT_REDIS_DB"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				cfg.Redis.DB = n
			}
		}
	}
}

// Validate checks that the configuration is valid.
func (c *CLIConfig) Validate() error {
	if c.Oracle.Model == "" {
		return fmt.Errorf("oracle model is required")
	}

	if c.Oracle.Timeout <= 0 {
		return fmt.Errorf("oracle timeout must be positive")
	}

	if c.Meeting.MaxTurns <= 0 {
		return fmt.Errorf("meeting max_turns must be positive")
	}

	if c.Meeting.MaxConcurrent <= 0 {
		return fmt.Errorf("meeting max_concurrent must be positive")
	}

	if !c.OutputFormat.IsValid() {
		return fmt.Errorf("invalid output_format: %q (must be text, json, or yaml)", c.OutputFormat)
	}

	return nil
}

// IsValid checks if the output format is valid.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML:
		return true
	default:
		return false
	}
}

// String returns the string representation of the output format.
func (f OutputFormat) String() string {
	return string(f)
}

// SaveConfig saves the configuration to the config file.
func SaveConfig(cfg *CLIConfig) error {
	configDir, err := ConfigDir()
	if err != nil {
		return fmt.Errorf("getting config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	var fileCfg fileConfig
	fileCfg.OutputFormat = cfg.OutputFormat
	fileCfg.Debug = cfg.Debug
	fileCfg.Oracle.Model = cfg.Oracle.Model
	fileCfg.Oracle.BaseURL = cfg.Oracle.BaseURL
	fileCfg.Oracle.Timeout = cfg.Oracle.Timeout.String()
	fileCfg.Meeting.MaxTurns = cfg.Meeting.MaxTurns
	fileCfg.Meeting.MaxConcurrent = cfg.Meeting.MaxConcurrent
	fileCfg.Meeting.Seed = cfg.Meeting.Seed
	if cfg.Redis != nil {
		fileCfg.Redis = &struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			CacheTTL string `yaml:"cache_ttl"`
		}{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			CacheTTL: cfg.Redis.CacheTTL.String(),
		}
	}

	data, err := yaml.Marshal(&fileCfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	configPath := filepath.Join(configDir, DefaultConfigFile)
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}
