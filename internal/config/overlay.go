// config/overlay.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment overrides, applied after the YAML file.
const (
	EnvTargetCount = "LOKER_TARGET_COUNT"
	EnvQuery       = "LOKER_QUERY"
	EnvWorkers     = "LOKER_WORKERS"
	EnvDataDir     = "LOKER_DATA_DIR"
	EnvSources     = "LOKER_SOURCES"
)

// LoadDotEnv reads KEY=VALUE pairs from the given files into the process
// environment without replacing variables that are already set. Missing
// files are ignored.
func LoadDotEnv(files ...string) {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		_ = godotenv.Load(f)
	}
}

// ApplyEnv overlays LOKER_* variables onto cfg.
func ApplyEnv(cfg *Config) error {
	return applyEnv(cfg, os.LookupEnv)
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvTargetCount); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTargetCount, err)
		}
		cfg.Pipeline.TargetCount = n
	}
	if v, ok := lookup(EnvQuery); ok {
		cfg.Pipeline.Query = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvWorkers); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvWorkers, err)
		}
		cfg.Pipeline.Workers = n
	}
	if v, ok := lookup(EnvDataDir); ok && strings.TrimSpace(v) != "" {
		cfg.App.DataDir = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvSources); ok && strings.TrimSpace(v) != "" {
		if err := SelectSources(cfg, v); err != nil {
			return fmt.Errorf("%s: %w", EnvSources, err)
		}
	}
	return nil
}

// SelectSources enables exactly the comma-separated sources in list.
func SelectSources(cfg *Config, list string) error {
	cfg.Sources.Kalibrr.Enabled = false
	cfg.Sources.Lokerid.Enabled = false
	for _, name := range strings.Split(list, ",") {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "":
		case "kalibrr":
			cfg.Sources.Kalibrr.Enabled = true
		case "lokerid", "loker.id":
			cfg.Sources.Lokerid.Enabled = true
		default:
			return fmt.Errorf("unknown source %q", name)
		}
	}
	return nil
}
