package httpapi

import (
	"database/sql"
	"log"
	"net/http"
	"strings"

	"lokerit-engine/internal/dataset"
	"lokerit-engine/internal/domain"
	"lokerit-engine/internal/store"
)

const maxListLimit = 5000

type ListingsHandler struct {
	DB *sql.DB
}

// List serves the stored dataset, optionally filtered by ?category=,
// ?province= and ?source=, capped by ?limit=.
func (h ListingsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit, ok := queryInt(r, "limit", maxListLimit)
	if !ok {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "limit must be a non-negative integer")
		return
	}
	if limit == 0 || limit > maxListLimit {
		limit = maxListLimit
	}

	cat := strings.TrimSpace(q.Get("category"))
	if cat != "" && !domain.Category(cat).Valid() {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "unknown category "+cat)
		return
	}

	rows, err := store.ListListings(r.Context(), h.DB, store.ListOpts{
		Category: cat,
		Province: strings.TrimSpace(q.Get("province")),
		Source:   strings.TrimSpace(q.Get("source")),
		Limit:    limit,
	})
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	writeJSON(w, rows)
}

// Export streams the whole stored dataset as CSV.
func (h ListingsHandler) Export(w http.ResponseWriter, r *http.Request) {
	ds, err := store.LoadDataset(r.Context(), h.DB)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="data_loker_it.csv"`)
	if err := dataset.WriteCSV(w, ds); err != nil {
		log.Printf("level=error msg=\"csv export\" request_id=%s err=%v", RequestIDFrom(r.Context()), err)
	}
}
