package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

func Validate(cfg Config) error {
	if errs := problems(cfg); len(errs) > 0 {
		return errors.New("config validation failed:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}

func problems(cfg Config) []string {
	var errs []string

	if cfg.App.Port <= 0 || cfg.App.Port > 65535 {
		errs = append(errs, "app.port must be 1..65535")
	}

	p := cfg.Pipeline
	if p.MaxTarget < 1 || p.MaxTarget > HardMaxTarget {
		errs = append(errs, fmt.Sprintf("pipeline.max_target must be 1..%d", HardMaxTarget))
	}
	if p.TargetCount < 1 || (p.MaxTarget > 0 && p.TargetCount > p.MaxTarget) {
		errs = append(errs, "pipeline.target_count must be 1..max_target")
	}
	if p.Workers < 1 || p.Workers > MaxWorkers {
		errs = append(errs, fmt.Sprintf("pipeline.workers must be 1..%d", MaxWorkers))
	}
	if p.RequestTimeoutSeconds <= 0 {
		errs = append(errs, "pipeline.request_timeout_seconds must be > 0")
	}
	if p.PageTimeoutSeconds <= 0 {
		errs = append(errs, "pipeline.page_timeout_seconds must be > 0")
	}
	if p.RunTimeoutSeconds <= 0 {
		errs = append(errs, "pipeline.run_timeout_seconds must be > 0")
	}
	if p.DelayMinMillis < 0 || p.DelayMaxMillis < p.DelayMinMillis {
		errs = append(errs, "pipeline.delay_min_ms must be >= 0 and <= delay_max_ms")
	}
	if p.MaxPages < 1 {
		errs = append(errs, "pipeline.max_pages must be >= 1")
	}

	if len(cfg.EnabledSources()) == 0 {
		errs = append(errs, "at least one source must be enabled")
	}
	checkURL := func(name, raw string) {
		if raw == "" {
			return
		}
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Sprintf("%s must be an http(s) URL", name))
		}
	}
	checkURL("sources.kalibrr.base_url", cfg.Sources.Kalibrr.BaseURL)
	checkURL("sources.lokerid.base_url", cfg.Sources.Lokerid.BaseURL)

	if strings.TrimSpace(cfg.Output.CSVPath) == "" {
		errs = append(errs, "output.csv_path is required")
	}
	if cfg.Polling.IntervalMinutes < 0 {
		errs = append(errs, "polling.interval_minutes must be >= 0")
	}
	switch strings.ToLower(cfg.Dedup.Keep) {
	case "", "first", "last":
	default:
		errs = append(errs, "dedup.keep must be first or last")
	}

	return errs
}

func SaveAtomic(path string, cfg Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	bak := path + ".bak"

	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}

	_ = os.Remove(bak)
	_ = os.Rename(path, bak)

	return os.Rename(tmp, path)
}

// ResolvePath makes a relative output or rules path relative to dataDir.
func ResolvePath(dataDir, p string) string {
	if p == "" || filepath.IsAbs(p) || dataDir == "" {
		return p
	}
	return filepath.Join(dataDir, p)
}
