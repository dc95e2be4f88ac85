package httpapi

import (
	"context"
	"database/sql"
	"sync/atomic"

	"lokerit-engine/internal/config"
	"lokerit-engine/internal/events"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	// Atomic stores
	CfgVal    *atomic.Value // stores config.Config
	RunStatus *atomic.Value // stores types.RunStatus

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Pipeline entrypoint (inject for testability)
	RunOnce func(ctx context.Context, cfg config.Config) error

	// BaseCtx scopes background runs to the server's lifetime.
	BaseCtx context.Context
}
