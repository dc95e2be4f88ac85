package poll

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"lokerit-engine/internal/config"
	"lokerit-engine/internal/dataset"
	"lokerit-engine/internal/events"
	"lokerit-engine/internal/harvest"
	"lokerit-engine/internal/pipeline"
	"lokerit-engine/internal/scrape/fetch"
	"lokerit-engine/internal/scrape/types"
	"lokerit-engine/internal/scrape/util"
	"lokerit-engine/internal/store"
	"lokerit-engine/internal/vocab"

	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"
)

// ErrRunInProgress is returned when another run holds the data-dir lock.
var ErrRunInProgress = errors.New("a run is already in progress")

const lockFile = "run.lock"

type Deps struct {
	DB      *sql.DB
	DataDir string
	Hub     *events.Hub
	Status  *atomic.Value // types.RunStatus
	// Launch opens a browser for interactive sources; nil disables them.
	Launch func() (harvest.Browser, error)
	// Sources overrides the config-built source list.
	Sources []types.Source
}

type Summary struct {
	Records     int
	Failed      int
	PerSource   map[string]int
	DatasetSize int
	CSVPath     string
}

// RunOnce harvests every enabled source concurrently, merges the fresh
// records with the stored dataset and persists the result to SQLite and CSV.
// A failing source is logged and skipped.
func RunOnce(ctx context.Context, cfg config.Config, d Deps) (Summary, error) {
	sum := Summary{PerSource: map[string]int{}}

	lock := flock.New(filepath.Join(d.DataDir, lockFile))
	locked, err := lock.TryLock()
	if err != nil {
		return sum, fmt.Errorf("lock: %w", err)
	}
	if !locked {
		return sum, ErrRunInProgress
	}
	defer func() { _ = lock.Unlock() }()

	setStatus(d.Status, func(st *types.RunStatus) {
		st.Running = true
		st.LastRunAt = time.Now().Format(time.RFC3339)
	})

	sum, err = runLocked(ctx, cfg, d)

	setStatus(d.Status, func(st *types.RunStatus) {
		st.Running = false
		st.LastRecords = sum.Records
		st.LastFailed = sum.Failed
		st.PerSource = sum.PerSource
		if err != nil {
			st.LastError = err.Error()
			return
		}
		st.LastError = ""
		st.LastOkAt = time.Now().Format(time.RFC3339)
		st.DatasetSize = sum.DatasetSize
	})

	fin := events.RunFinishedData{Records: sum.Records, Failed: sum.Failed, PerSource: sum.PerSource}
	if err != nil {
		fin.Error = err.Error()
	}
	d.Hub.Emit("", events.RunFinished, fin)
	if err == nil {
		d.Hub.Emit("", events.DatasetUpdated, events.DatasetUpdatedData{Size: sum.DatasetSize})
	}
	return sum, err
}

func runLocked(ctx context.Context, cfg config.Config, d Deps) (Summary, error) {
	sum := Summary{PerSource: map[string]int{}}

	policy, err := dataset.ParsePolicy(cfg.Dedup.Keep)
	if err != nil {
		return sum, err
	}
	rules, err := vocab.LoadOrDefault(config.ResolvePath(d.DataDir, cfg.Rules.File))
	if err != nil {
		return sum, fmt.Errorf("rules: %w", err)
	}

	if cfg.RunTimeout() > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.RunTimeout())
		defer cancel()
	}

	client := fetch.New(fetch.Options{
		Timeout: cfg.RequestTimeout(),
		Limiter: util.NewHostLimiter(1.0, 2),
	})
	sources := d.Sources
	if sources == nil {
		sources = BuildSources(cfg, client, d.Launch)
	}
	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = s.Name()
	}
	d.Hub.Emit("", events.RunStarted, events.RunStartedData{Sources: names, Target: cfg.Pipeline.TargetCount, Query: cfg.Pipeline.Query})

	dmin, dmax := cfg.Delay()
	orch := pipeline.New(client, rules, pipeline.Settings{
		Workers:        cfg.Pipeline.Workers,
		RequestTimeout: cfg.RequestTimeout(),
		DelayMin:       dmin,
		DelayMax:       dmax,
	})

	// indexed by source so the merge order follows config order
	results := make([]pipeline.Result, len(sources))
	var g errgroup.Group
	for i, src := range sources {
		g.Go(func() error {
			log.Printf("[poll] source=%s running", src.Name())
			results[i] = orch.Run(ctx, src, pipeline.Options{
				TargetCount: cfg.Pipeline.TargetCount,
				Query:       cfg.Pipeline.Query,
			})
			return nil
		})
	}
	_ = g.Wait()

	sets := make([]dataset.Dataset, 0, len(results)+1)
	for _, res := range results {
		sum.Records += len(res.Dataset)
		sum.Failed += res.Failed
		sum.PerSource[res.Source] = len(res.Dataset)
		sets = append(sets, res.Dataset)

		if d.DB == nil {
			continue
		}
		run := store.Run{
			ID: res.RunID, Source: res.Source, StartedAt: res.StartedAt, FinishedAt: res.FinishedAt,
			Harvested: res.Harvested, Records: len(res.Dataset), Failed: res.Failed,
		}
		if res.Harvested == 0 {
			run.Error = "no listings harvested"
		}
		if err := store.RecordRun(context.Background(), d.DB, run); err != nil {
			log.Printf("[poll] record run source=%s err=%v", res.Source, err)
		}
	}

	// stored rows are always written back, even when the run was cut short
	saveCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if d.DB != nil {
		prior, err := store.LoadDataset(saveCtx, d.DB)
		if err != nil {
			return sum, fmt.Errorf("load dataset: %w", err)
		}
		sets = append(sets, prior)
	}
	merged := dataset.Merge(policy, sets...)
	sum.DatasetSize = len(merged)

	if d.DB != nil {
		if err := store.SaveDataset(saveCtx, d.DB, merged); err != nil {
			return sum, fmt.Errorf("save dataset: %w", err)
		}
	}

	sum.CSVPath = config.ResolvePath(d.DataDir, cfg.Output.CSVPath)
	if err := writeCSVAtomic(sum.CSVPath, merged); err != nil {
		return sum, err
	}

	log.Printf("[poll] ok records=%d failed=%d dataset=%d csv=%q", sum.Records, sum.Failed, sum.DatasetSize, sum.CSVPath)
	return sum, nil
}

func writeCSVAtomic(path string, ds dataset.Dataset) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	if err := dataset.WriteCSV(f, ds); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write csv: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func setStatus(v *atomic.Value, fn func(*types.RunStatus)) {
	if v == nil {
		return
	}
	st, _ := v.Load().(types.RunStatus)
	fn(&st)
	v.Store(st)
}
