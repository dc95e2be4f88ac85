package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"lokerit-engine/internal/config"
	"lokerit-engine/internal/events"
	"lokerit-engine/internal/harvest"
	"lokerit-engine/internal/httpapi"
	"lokerit-engine/internal/poll"
	"lokerit-engine/internal/scrape/browser"
	"lokerit-engine/internal/scrape/fetch"
	"lokerit-engine/internal/scrape/types"
	"lokerit-engine/internal/store"
)

type flags struct {
	configPath string
	once       bool
	target     int
	query      string
	sources    string
}

func parseFlags() flags {
	var f flags
	flag.StringVar(&f.configPath, "config", "", "config file (default: <data dir>/config.yml, bootstrapped from config/config.yml)")
	flag.BoolVar(&f.once, "once", false, "run the pipeline once, write outputs and exit")
	flag.IntVar(&f.target, "target", 0, "listings to harvest per source (overrides pipeline.target_count)")
	flag.StringVar(&f.query, "query", "", "search keyword (overrides pipeline.query)")
	flag.StringVar(&f.sources, "sources", "", "comma-separated sources to run, e.g. kalibrr,lokerid")
	flag.Parse()
	return f
}

func main() {
	fl := parseFlags()
	config.LoadDotEnv(".env")

	// Engine data dir: env if provided, else a local folder.
	dataDir := os.Getenv(config.EnvDataDir)
	if dataDir == "" {
		dataDir = "data"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	userCfgPath := fl.configPath
	if userCfgPath == "" {
		p, err := config.EnsureUserConfig(dataDir, filepath.Join("config", "config.yml"))
		if err != nil {
			log.Fatalf("config bootstrap failed: %v", err)
		}
		userCfgPath = p
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return cfg, err
		}
		if err := config.ApplyEnv(&cfg); err != nil {
			return cfg, err
		}
		if err := applyFlags(&cfg, fl); err != nil {
			return cfg, err
		}
		cfg, vr := config.NormalizeAndValidate(cfg)
		for _, w := range vr.Warnings {
			log.Printf("[config] warning: %s", w)
		}
		if !vr.OK() {
			return cfg, fmt.Errorf("invalid config: %v", vr.Errors)
		}
		return cfg, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	if cfg.App.DataDir != "" && cfg.App.DataDir != dataDir {
		dataDir = cfg.App.DataDir
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			log.Fatal(err)
		}
	}

	dbPath := filepath.Join(dataDir, "lokerit.db")
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}
	if n, err := store.CleanupOldRuns(db.Pool); err != nil {
		log.Printf("[store] %v", err)
	} else if n > 0 {
		log.Printf("[store] removed old runs=%d", n)
	}

	hub := events.NewHub()
	var status atomic.Value
	status.Store(types.RunStatus{})

	deps := poll.Deps{
		DB:      db.Pool,
		DataDir: dataDir,
		Hub:     hub,
		Status:  &status,
		Launch: func() (harvest.Browser, error) {
			cur := cfgVal.Load().(config.Config)
			b, err := browser.Launch(browser.Options{
				Headless:   true,
				UserAgent:  fetch.DefaultUserAgent,
				NavTimeout: cur.PageTimeout(),
			})
			if err != nil {
				return nil, err
			}
			return b, nil
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if fl.once {
		sum, err := poll.RunOnce(ctx, cfg, deps)
		if err != nil {
			log.Printf("[engine] run failed: %v", err)
			db.Close()
			os.Exit(1)
		}
		log.Printf("[engine] done records=%d failed=%d dataset=%d csv=%s", sum.Records, sum.Failed, sum.DatasetSize, sum.CSVPath)
		return
	}

	serve(ctx, cfg, &cfgVal, deps, userCfgPath, loadCfg)
}

func serve(ctx context.Context, cfg config.Config, cfgVal *atomic.Value, deps poll.Deps, userCfgPath string, loadCfg func() (config.Config, error)) {
	mux := httpapi.NewMux(httpapi.Deps{
		DB:          deps.DB,
		Hub:         deps.Hub,
		CfgVal:      cfgVal,
		RunStatus:   deps.Status,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
		RunOnce: func(ctx context.Context, cfg config.Config) error {
			_, err := poll.RunOnce(ctx, cfg, deps)
			return err
		},
		BaseCtx: ctx,
	})

	srv := &http.Server{
		Handler:           httpapi.Chain(mux, httpapi.RequestID, httpapi.Recover, httpapi.AccessLog, httpapi.Cors),
		ReadHeaderTimeout: 5 * time.Second,
	}

	token, err := httpapi.RandomToken(16)
	if err != nil {
		log.Fatal(err)
	}
	tokenPath := filepath.Join(deps.DataDir, "shutdown.token")
	if err := os.WriteFile(tokenPath, []byte(token), 0o600); err != nil {
		log.Fatal(err)
	}
	mux.HandleFunc("/shutdown", httpapi.ShutdownHandler(token, srv))

	poll.StartPoller(ctx, cfgVal, deps)

	// Bind to loopback on the configured port.
	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("engine listening on http://%s (data=%s)", addr, deps.DataDir)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	_ = os.Remove(tokenPath)
	log.Printf("engine stopped")
}

func applyFlags(cfg *config.Config, fl flags) error {
	if fl.target > 0 {
		cfg.Pipeline.TargetCount = fl.target
	}
	if fl.query != "" {
		cfg.Pipeline.Query = fl.query
	}
	if fl.sources != "" {
		return config.SelectSources(cfg, fl.sources)
	}
	return nil
}
