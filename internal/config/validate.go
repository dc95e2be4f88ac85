package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy together with hard errors
// and advisory warnings.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	out.Pipeline.Query = strings.Join(strings.Fields(out.Pipeline.Query), " ")
	out.Sources.Kalibrr.BaseURL = strings.TrimRight(strings.TrimSpace(out.Sources.Kalibrr.BaseURL), "/")
	out.Sources.Lokerid.BaseURL = strings.TrimRight(strings.TrimSpace(out.Sources.Lokerid.BaseURL), "/")
	out.Dedup.Keep = strings.ToLower(strings.TrimSpace(out.Dedup.Keep))
	if out.Dedup.Keep == "" {
		out.Dedup.Keep = "first"
	}
	out.Output.CSVPath = strings.TrimSpace(out.Output.CSVPath)

	for _, e := range problems(out) {
		res.addErr("%s", e)
	}

	// ---- Warnings ----

	if out.Pipeline.DelayMaxMillis > 0 && out.Pipeline.DelayMaxMillis < 300 {
		res.addWarn("pipeline.delay_max_ms is very low (%d) and may get the scraper blocked.", out.Pipeline.DelayMaxMillis)
	}
	if out.Pipeline.Workers > 4 {
		res.addWarn("pipeline.workers=%d puts noticeable load on the job boards.", out.Pipeline.Workers)
	}
	if out.Sources.Kalibrr.Enabled && out.Sources.Kalibrr.Interactive {
		res.addWarn("sources.kalibrr.interactive needs Playwright browsers installed on this machine.")
	}
	if out.Pipeline.Query != "" && out.Sources.Kalibrr.Enabled && !out.Sources.Kalibrr.Interactive {
		res.addWarn("kalibrr searches return a single page without interactive mode.")
	}
	if out.Polling.IntervalMinutes > 0 && out.Polling.IntervalMinutes < 30 {
		res.addWarn("polling.interval_minutes is very low (%d); job boards change slowly.", out.Polling.IntervalMinutes)
	}
	if out.Pipeline.MaxPages > 0 && out.Sources.Lokerid.Enabled {
		if need := (out.Pipeline.TargetCount + 14) / 15; need > out.Pipeline.MaxPages {
			res.addWarn("pipeline.max_pages=%d cannot reach target_count=%d on loker.id.", out.Pipeline.MaxPages, out.Pipeline.TargetCount)
		}
	}

	return out, res
}
