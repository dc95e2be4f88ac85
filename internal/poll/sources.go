package poll

import (
	"lokerit-engine/internal/config"
	"lokerit-engine/internal/harvest"
	"lokerit-engine/internal/scrape/kalibrr"
	"lokerit-engine/internal/scrape/lokerid"
	"lokerit-engine/internal/scrape/types"
)

// BuildSources returns the enabled sources in config order.
func BuildSources(cfg config.Config, f harvest.DocumentFetcher, launch func() (harvest.Browser, error)) []types.Source {
	var out []types.Source
	for _, name := range cfg.EnabledSources() {
		switch name {
		case kalibrr.Name:
			k := cfg.Sources.Kalibrr
			out = append(out, kalibrr.New(kalibrr.Config{
				BaseURL:     k.BaseURL,
				Interactive: k.Interactive,
				MaxPages:    cfg.Pipeline.MaxPages,
				PageTimeout: cfg.PageTimeout(),
			}, f, launch))
		case lokerid.Name:
			out = append(out, lokerid.New(lokerid.Config{
				BaseURL:     cfg.Sources.Lokerid.BaseURL,
				MaxPages:    cfg.Pipeline.MaxPages,
				PageTimeout: cfg.PageTimeout(),
			}, f))
		}
	}
	return out
}
