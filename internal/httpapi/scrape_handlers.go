package httpapi

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"sync/atomic"

	"lokerit-engine/internal/config"
	"lokerit-engine/internal/scrape/types"
	"lokerit-engine/internal/store"
)

type ScrapeHandler struct {
	DB        *sql.DB
	CfgVal    *atomic.Value // config.Config
	RunStatus *atomic.Value // types.RunStatus
	RunOnce   func(ctx context.Context, cfg config.Config) error
	BaseCtx   context.Context // nil means context.Background
}

func (h ScrapeHandler) Status(w http.ResponseWriter, r *http.Request) {
	st, _ := h.RunStatus.Load().(types.RunStatus)
	writeJSON(w, st)
}

// Run starts a background run over every enabled source. The request returns
// immediately; progress arrives on /events.
func (h ScrapeHandler) Run(w http.ResponseWriter, r *http.Request) {
	st, _ := h.RunStatus.Load().(types.RunStatus)
	if st.Running {
		WriteError(w, r, http.StatusConflict, "already_running", "a run is already in progress")
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	reqID := RequestIDFrom(r.Context())
	ctx := h.BaseCtx
	if ctx == nil {
		ctx = context.Background()
	}

	go func() {
		if err := h.RunOnce(ctx, cfg); err != nil {
			log.Printf("level=error msg=\"scrape run\" request_id=%s err=%v", reqID, err)
		}
	}()

	WriteJSON(w, http.StatusAccepted, map[string]any{"ok": true, "sources": cfg.EnabledSources()})
}

func (h ScrapeHandler) Runs(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(r, "limit", 20)
	if !ok {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "limit must be a non-negative integer")
		return
	}
	runs, err := store.ListRuns(r.Context(), h.DB, limit)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if runs == nil {
		runs = []store.Run{}
	}
	writeJSON(w, runs)
}
