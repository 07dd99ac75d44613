// Package server exposes the pipeline and the mood engine over a small
// HTTP API for the mobile/web client.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	"malunita/internal/ai"
	"malunita/internal/logging"
	"malunita/internal/mind"
	"malunita/internal/storage"
	"malunita/internal/task"
	"malunita/pkg/util"
)

const batchWorkers = 4

// Server wires the pipeline, the mind runner, and storage to HTTP.
type Server struct {
	addr     string
	userID   string
	pipeline *task.Pipeline
	runner   *mind.Runner
	store    *storage.Storage
	provider ai.Provider
	log      zerolog.Logger
}

func New(addr, userID string, pipeline *task.Pipeline, runner *mind.Runner, store *storage.Storage, provider ai.Provider) *Server {
	return &Server{
		addr:     addr,
		userID:   userID,
		pipeline: pipeline,
		runner:   runner,
		store:    store,
		provider: provider,
		log:      logging.Component("server"),
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/capture", s.handleCapture)
	mux.HandleFunc("POST /api/capture/batch", s.handleCaptureBatch)
	mux.HandleFunc("GET /api/captures", s.handleCaptures)
	mux.HandleFunc("POST /api/clarify", s.handleClarify)
	mux.HandleFunc("GET /api/orb", s.handleOrb)
	mux.HandleFunc("POST /api/orb/celebrate", s.handleCelebrate)
	mux.HandleFunc("POST /api/orb/focus", s.handleFocusEnter)
	mux.HandleFunc("DELETE /api/orb/focus", s.handleFocusExit)
	mux.HandleFunc("GET /api/bond", s.handleBond)
	mux.HandleFunc("POST /api/bond/events", s.handleBondEvent)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

// Run starts the HTTP server and blocks until it exits or ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.Handler()}

	go func() {
		<-ctx.Done()
		s.log.Info().Msg("shutting down api server")
		srv.Shutdown(context.Background()) //nolint:errcheck
	}()

	s.log.Info().Str("addr", s.addr).Msg("api server listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

type captureRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleCapture(w http.ResponseWriter, r *http.Request) {
	var req captureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	s.runner.Orb.TriggerThinking()
	defer s.runner.Orb.DoneThinking()

	intel := s.pipeline.Run(r.Context(), req.Text)
	s.runner.RecordCapture()
	if err := s.store.AppendCapture(s.userID, intel); err != nil {
		s.log.Warn().Err(err).Msg("store capture failed")
	}

	writeJSON(w, intel)
}

type captureBatchRequest struct {
	Texts []string `json:"texts"`
}

func (s *Server) handleCaptureBatch(w http.ResponseWriter, r *http.Request) {
	var req captureBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	s.runner.Orb.TriggerThinking()
	defer s.runner.Orb.DoneThinking()

	results := make([]task.Intelligence, len(req.Texts))
	var mu sync.Mutex
	type job struct {
		idx  int
		text string
	}
	jobs := make([]job, len(req.Texts))
	for i, t := range req.Texts {
		jobs[i] = job{idx: i, text: t}
	}

	// Pipeline runs are independent; only the remote service is shared.
	_ = util.Parallel(r.Context(), jobs, batchWorkers, func(ctx context.Context, j job) error {
		intel := s.pipeline.Run(ctx, j.text)
		mu.Lock()
		results[j.idx] = intel
		mu.Unlock()
		return nil
	})

	for _, intel := range results {
		s.runner.RecordCapture()
		if err := s.store.AppendCapture(s.userID, intel); err != nil {
			s.log.Warn().Err(err).Msg("store capture failed")
		}
	}

	writeJSON(w, results)
}

func (s *Server) handleCaptures(w http.ResponseWriter, r *http.Request) {
	captures, err := s.store.FetchCaptures(s.userID)
	if err != nil {
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, captures)
}

func (s *Server) handleClarify(w http.ResponseWriter, r *http.Request) {
	var req ai.ClarifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	writeJSON(w, ai.Clarify(s.provider, req))
}

func (s *Server) handleOrb(w http.ResponseWriter, r *http.Request) {
	type orbView struct {
		mind.OrbState
		Emotions mind.EmotionalMemoryState `json:"emotions"`
	}
	writeJSON(w, orbView{
		OrbState: s.runner.Orb.Snapshot(),
		Emotions: s.runner.Memory.Snapshot(),
	})
}

func (s *Server) handleCelebrate(w http.ResponseWriter, r *http.Request) {
	s.runner.RecordTaskCompleted()
	writeJSON(w, s.runner.Orb.Snapshot())
}

func (s *Server) handleFocusEnter(w http.ResponseWriter, r *http.Request) {
	s.runner.Orb.EnterFocusMode()
	writeJSON(w, s.runner.Orb.Snapshot())
}

func (s *Server) handleFocusExit(w http.ResponseWriter, r *http.Request) {
	s.runner.Orb.ExitFocusMode()
	writeJSON(w, s.runner.Orb.Snapshot())
}

func (s *Server) handleBond(w http.ResponseWriter, r *http.Request) {
	score := s.runner.BondScore()
	writeJSON(w, map[string]any{
		"score":    score,
		"tier":     mind.TierForScore(score),
		"progress": mind.BondProgress(score),
	})
}

type bondEventRequest struct {
	Type  string `json:"type"` // task_completed | tiny_fiesta | check_in
	Count int    `json:"count,omitempty"`
}

func (s *Server) handleBondEvent(w http.ResponseWriter, r *http.Request) {
	var req bondEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	switch req.Type {
	case "task_completed":
		s.runner.RecordTaskCompleted()
	case "tiny_fiesta":
		s.runner.RecordTinyFiesta(req.Count)
	case "check_in":
		s.runner.RecordCheckIn()
	default:
		http.Error(w, "unknown event type", http.StatusBadRequest)
		return
	}

	score := s.runner.BondScore()
	writeJSON(w, map[string]any{
		"score":    score,
		"tier":     mind.TierForScore(score),
		"progress": mind.BondProgress(score),
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "encode error", http.StatusInternalServerError)
	}
}
