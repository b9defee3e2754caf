// Package config provides configuration management for the simkit CLI.
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestDefaultConfig verifies default configuration values.
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}

	if cfg.Oracle.Model != DefaultOracleModel {
		t.Errorf("Oracle.Model = %v, want %v", cfg.Oracle.Model, DefaultOracleModel)
	}
	if cfg.Oracle.Timeout != DefaultOracleTimeout {
		t.Errorf("Oracle.Timeout = %v, want %v", cfg.Oracle.Timeout, DefaultOracleTimeout)
	}
	if cfg.Meeting.MaxTurns != DefaultMaxTurns {
		t.Errorf("Meeting.MaxTurns = %v, want %v", cfg.Meeting.MaxTurns, DefaultMaxTurns)
	}
	if cfg.Meeting.MaxConcurrent != DefaultMaxConcurrent {
		t.Errorf("Meeting.MaxConcurrent = %v, want %v", cfg.Meeting.MaxConcurrent, DefaultMaxConcurrent)
	}
	if cfg.OutputFormat != DefaultOutputFormat {
		t.Errorf("OutputFormat = %v, want %v", cfg.OutputFormat, DefaultOutputFormat)
	}
	if cfg.Debug {
		t.Error("Debug should be false by default")
	}
	if cfg.Redis != nil {
		t.Error("Redis should be nil by default")
	}
}

// TestOutputFormat_IsValid verifies output format validation.
func TestOutputFormat_IsValid(t *testing.T) {
	tests := []struct {
		format OutputFormat
		valid  bool
	}{
		{OutputFormatText, true},
		{OutputFormatJSON, true},
		{OutputFormatYAML, true},
		{"invalid", false},
		{"", false},
		{"JSON", false}, // Case sensitive
	}

	for _, tc := range tests {
		if got := tc.format.IsValid(); got != tc.valid {
			t.Errorf("OutputFormat(%q).IsValid() = %v, want %v", tc.format, got, tc.valid)
		}
	}
}

// TestCLIConfig_Validate verifies configuration validation.
func TestCLIConfig_Validate(t *testing.T) {
	valid := func() *CLIConfig { return DefaultConfig() }

	tests := []struct {
		name    string
		mutate  func(*CLIConfig)
		wantErr bool
	}{
		{name: "valid defaults", mutate: func(*CLIConfig) {}, wantErr: false},
		{name: "missing model", mutate: func(c *CLIConfig) { c.Oracle.Model = "" }, wantErr: true},
		{name: "zero timeout", mutate: func(c *CLIConfig) { c.Oracle.Timeout = 0 }, wantErr: true},
		{name: "zero max turns", mutate: func(c *CLIConfig) { c.Meeting.MaxTurns = 0 }, wantErr: true},
		{name: "negative concurrency", mutate: func(c *CLIConfig) { c.Meeting.MaxConcurrent = -1 }, wantErr: true},
		{name: "bad output format", mutate: func(c *CLIConfig) { c.OutputFormat = "xml" }, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

// TestLoadConfig_FromFile verifies YAML file loading with duration strings.
func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SIMKIT_CONFIG_DIR", dir)

	content := `output_format: json
oracle:
  model: test-model
  timeout: 30s
meeting:
  max_turns: 12
  seed: 99
redis:
  addr: localhost:6379
  cache_ttl: 1h
`
	if err := os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte(content), 0600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.OutputFormat != OutputFormatJSON {
		t.Errorf("OutputFormat = %v, want json", cfg.OutputFormat)
	}
	if cfg.Oracle.Model != "test-model" {
		t.Errorf("Oracle.Model = %v, want test-model", cfg.Oracle.Model)
	}
	if cfg.Oracle.Timeout != 30*time.Second {
		t.Errorf("Oracle.Timeout = %v, want 30s", cfg.Oracle.Timeout)
	}
	if cfg.Meeting.MaxTurns != 12 {
		t.Errorf("Meeting.MaxTurns = %v, want 12", cfg.Meeting.MaxTurns)
	}
	if cfg.Meeting.Seed != 99 {
		t.Errorf("Meeting.Seed = %v, want 99", cfg.Meeting.Seed)
	}
	if cfg.Meeting.MaxConcurrent != DefaultMaxConcurrent {
		t.Errorf("Meeting.MaxConcurrent = %v, want default %v", cfg.Meeting.MaxConcurrent, DefaultMaxConcurrent)
	}
	if !cfg.Redis.IsConfigured() {
		t.Fatal("Redis should be configured")
	}
	if cfg.Redis.CacheTTL != time.Hour {
		t.Errorf("Redis.CacheTTL = %v, want 1h", cfg.Redis.CacheTTL)
	}
}

// TestLoadConfig_EnvOverrides verifies environment variables win over the file.
func TestLoadConfig_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SIMKIT_CONFIG_DIR", dir)

	content := "oracle:\n  model: file-model\n"
	if err := os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte(content), 0600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	t.Setenv("SIMKIT_ORACLE_MODEL", "env-model")
	t.Setenv("SIMKIT_MAX_TURNS", "7")
	t.Setenv("SIMKIT_REDIS_ADDR", "cache:6379")
	t.Setenv("SIMKIT_DEBUG", "1")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Oracle.Model != "env-model" {
		t.Errorf("Oracle.Model = %v, want env-model", cfg.Oracle.Model)
	}
	if cfg.Meeting.MaxTurns != 7 {
		t.Errorf("Meeting.MaxTurns = %v, want 7", cfg.Meeting.MaxTurns)
	}
	if !cfg.Debug {
		t.Error("Debug should be true")
	}
	if !cfg.Redis.IsConfigured() || cfg.Redis.Addr != "cache:6379" {
		t.Errorf("Redis.Addr = %v, want cache:6379", cfg.Redis)
	}
	if cfg.Redis.CacheTTL != DefaultCacheTTL {
		t.Errorf("Redis.CacheTTL = %v, want default %v", cfg.Redis.CacheTTL, DefaultCacheTTL)
	}
}

// TestSaveConfig_RoundTrip verifies a saved config loads back identically.
func TestSaveConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SIMKIT_CONFIG_DIR", dir)

	cfg := DefaultConfig()
	cfg.OutputFormat = OutputFormatYAML
	cfg.Oracle.Model = "saved-model"
	cfg.Meeting.Seed = 42
	cfg.Redis = &RedisConfig{Addr: "localhost:6379", CacheTTL: 2 * time.Hour}

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if loaded.OutputFormat != OutputFormatYAML {
		t.Errorf("OutputFormat = %v, want yaml", loaded.OutputFormat)
	}
	if loaded.Oracle.Model != "saved-model" {
		t.Errorf("Oracle.Model = %v, want saved-model", loaded.Oracle.Model)
	}
	if loaded.Meeting.Seed != 42 {
		t.Errorf("Meeting.Seed = %v, want 42", loaded.Meeting.Seed)
	}
	if loaded.Redis == nil || loaded.Redis.CacheTTL != 2*time.Hour {
		t.Errorf("Redis = %+v, want cache_ttl 2h", loaded.Redis)
	}
}

// TestRedisConfig_IsConfigured verifies the nil-safe configured check.
func TestRedisConfig_IsConfigured(t *testing.T) {
	var nilCfg *RedisConfig
	if nilCfg.IsConfigured() {
		t.Error("nil RedisConfig should not be configured")
	}
	if (&RedisConfig{}).IsConfigured() {
		t.Error("RedisConfig without addr should not be configured")
	}
	if !(&RedisConfig{Addr: "localhost:6379"}).IsConfigured() {
		t.Error("RedisConfig with addr should be configured")
	}
}
