// Package api exposes the engine over HTTP: sample ingestion, on-demand
// scans, and read access to the published snapshot and scan history.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/sync/singleflight"

	"eve-arbitrage/internal/db"
	"eve-arbitrage/internal/engine"
	"eve-arbitrage/internal/feed"
	"eve-arbitrage/internal/market"
	"eve-arbitrage/internal/scheduler"
)

// Server wires the market store, scan scheduler, and database behind JSON
// endpoints. The UI (or any other consumer) only ever reads published
// snapshots through it.
type Server struct {
	store *market.Store
	sched *scheduler.Scheduler
	db    *db.DB // optional; nil disables history endpoints and persistence

	// scanGroup coalesces concurrent POST /api/scan callers onto one scan so
	// every caller gets the resulting snapshot instead of a no-op.
	scanGroup singleflight.Group
}

// NewServer creates a Server. database may be nil.
func NewServer(store *market.Store, sched *scheduler.Scheduler, database *db.DB) *Server {
	return &Server{store: store, sched: sched, db: database}
}

// Handler returns the HTTP handler with all API routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/api/health", s.handleHealth)
	r.Get("/api/snapshot", s.handleSnapshot)
	r.Post("/api/scan", s.handleScan)
	r.Post("/api/samples", s.handleIngestSamples)
	r.Get("/api/statistics/{item}", s.handleItemStatistics)
	r.Get("/api/scans/recent", s.handleRecentScans)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"samples":  s.store.Len(),
		"scanning": s.sched.Scanning(),
	})
}

// handleSnapshot serves the latest published scan snapshot. 404 until the
// first scan completes.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap := s.sched.Snapshot()
	if snap == nil {
		writeError(w, http.StatusNotFound, "no scan has completed yet")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleScan triggers a scan and returns the resulting snapshot. Concurrent
// callers are coalesced; if a ticker-driven scan is already in flight, the
// caller gets 202 and should poll /api/snapshot.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	result, err, _ := s.scanGroup.Do("scan", func() (interface{}, error) {
		return s.sched.TriggerScan(r.Context())
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			writeError(w, http.StatusRequestTimeout, fmt.Sprintf("scan aborted: %v", err))
			return
		}
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("scan failed: %v", err))
		return
	}
	snap, _ := result.(*engine.ScanSnapshot)
	if snap == nil {
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "scan already in progress"})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// ingestResponse reports the outcome of a sample batch upload.
type ingestResponse struct {
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
}

func (s *Server) handleIngestSamples(w http.ResponseWriter, r *http.Request) {
	var samples []market.PriceSample
	if err := json.NewDecoder(r.Body).Decode(&samples); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if len(samples) == 0 {
		writeError(w, http.StatusBadRequest, "empty sample batch")
		return
	}

	accepted, rejected := feed.Ingest(s.store, samples)
	if s.db != nil && accepted > 0 {
		valid := make([]market.PriceSample, 0, accepted)
		for _, sample := range samples {
			if sample.Validate() == nil {
				valid = append(valid, sample)
			}
		}
		s.db.SaveSamples(valid)
	}
	writeJSON(w, http.StatusOK, ingestResponse{Accepted: accepted, Rejected: rejected})
}

// handleItemStatistics computes dispersion statistics for one item from the
// live store, independent of the published snapshot.
func (s *Server) handleItemStatistics(w http.ResponseWriter, r *http.Request) {
	item := chi.URLParam(r, "item")
	samples := s.store.SamplesFor(item)
	if len(samples) == 0 {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no samples for %q", item))
		return
	}
	writeJSON(w, http.StatusOK, engine.CalcRegionalStatistics(item, samples))
}

func (s *Server) handleRecentScans(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusNotFound, "scan history disabled")
		return
	}
	records := s.db.RecentScans(20)
	if records == nil {
		records = []db.ScanRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
