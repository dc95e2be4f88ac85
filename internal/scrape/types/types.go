package types

import (
	"context"

	"lokerit-engine/internal/extract"
	"lokerit-engine/internal/harvest"
)

// Source is one job board: how to walk its index, read its cards and locate
// fields on its detail pages.
type Source interface {
	Name() string
	// Pager opens the listing index for query ("" selects the default IT board).
	Pager(ctx context.Context, query string, target int) (harvest.Pager, harvest.Options, error)
	harvest.CardParser
	Locator() extract.Locator
}

type RunStatus struct {
	LastRunAt   string         `json:"last_run_at"`
	LastOkAt    string         `json:"last_ok_at"`
	LastError   string         `json:"last_error"`
	LastRecords int            `json:"last_records"`
	LastFailed  int            `json:"last_failed"`
	PerSource   map[string]int `json:"per_source,omitempty"`
	DatasetSize int            `json:"dataset_size"`
	Running     bool           `json:"running"`
}
