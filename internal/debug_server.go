package internal

import (
	"clinic-chat/infrastructure/storage"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dgraph-io/badger/v4"
)

const defaultInspectLimit = 200

// SnapshotProvider returns a JSON encodable view, computed per request.
type SnapshotProvider func() any

// NewDebugServer exposes the raw badger content, a stats snapshot and the tail
// of every message dispatched since boot.
// It is meant for local debugging only and never listens on the public port.
//
//	GET /inspect?prefix=msg:&limit=50
//	GET /stats
//	GET /tail
func NewDebugServer(log *slog.Logger, db *badger.DB, port int, stats, tail SnapshotProvider) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/inspect", func(w http.ResponseWriter, r *http.Request) {
		limit := defaultInspectLimit
		if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 {
			limit = l
		}
		entries, err := storage.ScanEntries(db, r.URL.Query().Get("prefix"), limit)
		if err != nil {
			log.Error("Inspection failed", "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(entries)
	})

	mux.HandleFunc("/stats", snapshotHandler(stats))
	mux.HandleFunc("/tail", snapshotHandler(tail))

	return &http.Server{
		Addr:    fmt.Sprintf("localhost:%d", port),
		Handler: mux,
	}
}

func snapshotHandler(provider SnapshotProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		var snapshot any
		if provider != nil {
			snapshot = provider()
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(snapshot)
	}
}
