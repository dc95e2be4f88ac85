package poll

import (
	"context"
	"errors"
	"log"
	"sync/atomic"

	"lokerit-engine/internal/config"
	"lokerit-engine/internal/scheduler"
)

// StartPoller runs RunOnce every polling.interval_minutes of the config
// current at start. A zero interval disables polling.
func StartPoller(ctx context.Context, cfgVal *atomic.Value, d Deps) {
	cfg, ok := cfgVal.Load().(config.Config)
	if !ok || cfg.PollInterval() <= 0 {
		log.Printf("[poll] interval polling disabled")
		return
	}

	go scheduler.Every(ctx, cfg.PollInterval(), "poll", func(ctx context.Context) error {
		cur, ok := cfgVal.Load().(config.Config)
		if !ok || len(cur.EnabledSources()) == 0 {
			return nil
		}
		_, err := RunOnce(ctx, cur, d)
		if errors.Is(err, ErrRunInProgress) {
			log.Printf("[poll] skipped: %v", err)
			return nil
		}
		return err
	})
}
