// Package pipeline runs one source end to end: harvest the index, then fetch
// and extract every detail page on a bounded worker pool.
package pipeline

import (
	"context"
	"log"
	"sync"
	"time"

	"lokerit-engine/internal/domain"
	"lokerit-engine/internal/extract"
	"lokerit-engine/internal/harvest"
	"lokerit-engine/internal/scrape/types"
	"lokerit-engine/internal/scrape/util"
	"lokerit-engine/internal/vocab"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultWorkers        = 2
	MaxWorkers            = 8
	DefaultRequestTimeout = 15 * time.Second
)

type Settings struct {
	Workers        int
	RequestTimeout time.Duration
	DelayMin       time.Duration
	DelayMax       time.Duration
}

type Options struct {
	TargetCount int
	Query       string
}

type Result struct {
	RunID      string
	Source     string
	Dataset    []domain.ListingRecord
	Harvested  int
	Failed     int
	StartedAt  time.Time
	FinishedAt time.Time
}

type Orchestrator struct {
	fetcher  harvest.DocumentFetcher
	rules    *vocab.Rules
	settings Settings
}

func New(f harvest.DocumentFetcher, rules *vocab.Rules, s Settings) *Orchestrator {
	if s.Workers <= 0 {
		s.Workers = DefaultWorkers
	}
	if s.Workers > MaxWorkers {
		s.Workers = MaxWorkers
	}
	if s.RequestTimeout <= 0 {
		s.RequestTimeout = DefaultRequestTimeout
	}
	if s.DelayMax < s.DelayMin {
		s.DelayMax = s.DelayMin
	}
	if rules == nil {
		rules = vocab.Default()
	}
	return &Orchestrator{fetcher: f, rules: rules, settings: s}
}

// Run never fails: an unopenable index yields an empty result, an unreachable
// detail page a record built from its stub alone. Records come back in
// completion order.
func (o *Orchestrator) Run(ctx context.Context, src types.Source, opts Options) (res Result) {
	res = Result{
		RunID:     uuid.NewString(),
		Source:    src.Name(),
		Dataset:   []domain.ListingRecord{},
		StartedAt: time.Now().UTC(),
	}
	defer func() { res.FinishedAt = time.Now().UTC() }()

	if opts.TargetCount <= 0 {
		log.Printf("[pipeline:%s] run=%s empty target", res.Source, res.RunID)
		return res
	}

	pager, hopts, err := src.Pager(ctx, opts.Query, opts.TargetCount)
	if err != nil {
		log.Printf("[pipeline:%s] run=%s open index: %v", res.Source, res.RunID, err)
		return res
	}
	stubs := harvest.New(pager, src, hopts).Harvest(ctx, opts.TargetCount)
	res.Harvested = len(stubs)
	log.Printf("[pipeline:%s] run=%s harvested=%d workers=%d", res.Source, res.RunID, len(stubs), o.settings.Workers)

	ex := extract.New(src.Locator(), o.rules)

	var (
		mu     sync.Mutex
		failed int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.settings.Workers)

	for _, stub := range stubs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := util.Pause(gctx, o.settings.DelayMin, o.settings.DelayMax); err != nil {
				return nil
			}
			rec, ok := o.detail(gctx, ex, stub)

			mu.Lock()
			res.Dataset = append(res.Dataset, rec)
			if !ok {
				failed++
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	res.Failed = failed
	log.Printf("[pipeline:%s] run=%s records=%d failed=%d", res.Source, res.RunID, len(res.Dataset), failed)
	return res
}

func (o *Orchestrator) detail(ctx context.Context, ex *extract.Extractor, stub domain.ListingStub) (domain.ListingRecord, bool) {
	rctx, cancel := context.WithTimeout(ctx, o.settings.RequestTimeout)
	defer cancel()

	doc, err := o.fetcher.Document(rctx, stub.Link)
	if err != nil {
		log.Printf("[pipeline:%s] detail url=%q err=%v", stub.Source, stub.Link, err)
		return ex.Extract(stub, nil), false
	}
	return ex.Extract(stub, doc), true
}
