// Package cmd implements the simkit CLI commands.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"

	"github.com/strtupify/simkit/config"
	"github.com/strtupify/simkit/credentials"
	"github.com/strtupify/simkit/pkg/logging"
	"github.com/strtupify/simkit/pkg/oracle"
	"github.com/strtupify/simkit/pkg/workplan"
)

// renderOutput writes v to w in the requested format. The text renderer is
// used for the default human-readable format.
func renderOutput(w io.Writer, format config.OutputFormat, v interface{}, text func(io.Writer)) error {
	switch format {
	case config.OutputFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.OutputFormatYAML:
		return yaml.NewEncoder(w).Encode(v)
	default:
		text(w)
		return nil
	}
}

// resolveFormat applies the --output flag over the configured default.
func resolveFormat(cfg *config.CLIConfig, flag string) (config.OutputFormat, error) {
	format := cfg.OutputFormat
	if flag != "" {
		format = config.OutputFormat(flag)
	}
	if !format.IsValid() {
		return "", fmt.Errorf("invalid output format: %q (must be text, json, or yaml)", flag)
	}
	return format, nil
}

// buildOracle constructs the text-generation backend. Offline mode uses the
// deterministic scripted oracle and needs no API key.
func buildOracle(cfg *config.CLIConfig, offline bool, creds credentials.Provider) (oracle.Oracle, error) {
	if offline {
		return oracle.NewScriptedOracle(), nil
	}
	if creds == nil {
		creds = credentials.DefaultProvider()
	}
	apiKey, err := creds.GetAPIKey()
	if err != nil {
		return nil, fmt.Errorf("resolving oracle API key: %w", err)
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if cfg.Oracle.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.Oracle.BaseURL))
	}
	client := openai.NewClient(opts...)
	return oracle.NewOpenAIOracle(&client, cfg.Oracle.Model), nil
}

// buildEstimateCache returns the Redis-backed estimate cache when configured,
// otherwise an in-process one.
func buildEstimateCache(cfg *config.CLIConfig) workplan.Cache {
	if !cfg.Redis.IsConfigured() {
		return workplan.NewMemoryCache()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	return workplan.NewRedisCache(client, cfg.Redis.CacheTTL)
}

// buildLogger creates the CLI logger honoring the debug flag.
func buildLogger(cfg *config.CLIConfig) logging.Logger {
	logCfg := logging.DefaultConfig()
	logCfg.Output = os.Stderr
	if cfg.Debug {
		logCfg.Level = logging.LevelDebug
	} else {
		logCfg.Level = logging.LevelWarn
	}
	return logging.NewLogger(logCfg)
}

// contextWithTimeout bounds a whole run by the per-exchange oracle timeout
// times the number of oracle-bound steps.
func contextWithTimeout(ctx context.Context, perCall time.Duration, steps int) (context.Context, context.CancelFunc) {
	if steps < 1 {
		steps = 1
	}
	return context.WithTimeout(ctx, perCall*time.Duration(steps+2))
}

// loadYAMLFile decodes a YAML document into out.
func loadYAMLFile(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
