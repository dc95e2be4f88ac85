// engine/internal/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	HardMaxTarget = 1000
	MaxWorkers    = 8
)

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Pipeline struct {
		TargetCount           int    `yaml:"target_count" json:"target_count"`
		MaxTarget             int    `yaml:"max_target" json:"max_target"`
		Query                 string `yaml:"query" json:"query"`
		Workers               int    `yaml:"workers" json:"workers"`
		RequestTimeoutSeconds int    `yaml:"request_timeout_seconds" json:"request_timeout_seconds"`
		PageTimeoutSeconds    int    `yaml:"page_timeout_seconds" json:"page_timeout_seconds"`
		DelayMinMillis        int    `yaml:"delay_min_ms" json:"delay_min_ms"`
		DelayMaxMillis        int    `yaml:"delay_max_ms" json:"delay_max_ms"`
		MaxPages              int    `yaml:"max_pages" json:"max_pages"`
		RunTimeoutSeconds     int    `yaml:"run_timeout_seconds" json:"run_timeout_seconds"`
	} `yaml:"pipeline" json:"pipeline"`

	Sources struct {
		Kalibrr struct {
			Enabled     bool   `yaml:"enabled" json:"enabled"`
			Interactive bool   `yaml:"interactive" json:"interactive"`
			BaseURL     string `yaml:"base_url" json:"base_url"`
		} `yaml:"kalibrr" json:"kalibrr"`
		Lokerid struct {
			Enabled bool   `yaml:"enabled" json:"enabled"`
			BaseURL string `yaml:"base_url" json:"base_url"`
		} `yaml:"lokerid" json:"lokerid"`
	} `yaml:"sources" json:"sources"`

	Output struct {
		CSVPath string `yaml:"csv_path" json:"csv_path"`
	} `yaml:"output" json:"output"`

	Polling struct {
		IntervalMinutes int `yaml:"interval_minutes" json:"interval_minutes"` // 0 disables the poller
	} `yaml:"polling" json:"polling"`

	Rules struct {
		File string `yaml:"file" json:"file"` // optional vocabulary override
	} `yaml:"rules" json:"rules"`

	Dedup struct {
		Keep string `yaml:"keep" json:"keep"` // first | last
	} `yaml:"dedup" json:"dedup"`
}

// Default is the configuration used for anything a file leaves out.
func Default() Config {
	var c Config
	c.App.Port = 38471
	c.Pipeline.TargetCount = 50
	c.Pipeline.MaxTarget = HardMaxTarget
	c.Pipeline.Workers = 2
	c.Pipeline.RequestTimeoutSeconds = 15
	c.Pipeline.PageTimeoutSeconds = 30
	c.Pipeline.DelayMinMillis = 500
	c.Pipeline.DelayMaxMillis = 1500
	c.Pipeline.MaxPages = 20
	c.Pipeline.RunTimeoutSeconds = 900
	c.Sources.Kalibrr.Enabled = true
	c.Sources.Lokerid.Enabled = true
	c.Output.CSVPath = "data_loker_it.csv"
	c.Dedup.Keep = "first"
	return c
}

func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// EnabledSources lists source names in run order.
func (c Config) EnabledSources() []string {
	var out []string
	if c.Sources.Kalibrr.Enabled {
		out = append(out, "kalibrr")
	}
	if c.Sources.Lokerid.Enabled {
		out = append(out, "lokerid")
	}
	return out
}

func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.Pipeline.RequestTimeoutSeconds) * time.Second
}

func (c Config) PageTimeout() time.Duration {
	return time.Duration(c.Pipeline.PageTimeoutSeconds) * time.Second
}

func (c Config) RunTimeout() time.Duration {
	return time.Duration(c.Pipeline.RunTimeoutSeconds) * time.Second
}

func (c Config) Delay() (min, max time.Duration) {
	return time.Duration(c.Pipeline.DelayMinMillis) * time.Millisecond,
		time.Duration(c.Pipeline.DelayMaxMillis) * time.Millisecond
}

func (c Config) PollInterval() time.Duration {
	return time.Duration(c.Polling.IntervalMinutes) * time.Minute
}
