package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/keshon/datastore"

	"malunita/internal/mind"
	"malunita/internal/task"
)

const captureHistoryLimit = 50

// CaptureRecord is one stored pipeline result for the recent-captures view.
type CaptureRecord struct {
	Intelligence task.Intelligence `json:"intelligence"`
	CapturedAt   time.Time         `json:"captured_at"`
}

// Record is the per-user document kept in the datastore.
type Record struct {
	Emotions  *mind.EmotionalMemoryState `json:"emotions,omitempty"`
	BondScore float64                    `json:"bond_score"`
	OrbStage  int                        `json:"orb_stage"`
	Streak    int                        `json:"streak"`
	Captures  []CaptureRecord            `json:"captures,omitempty"`
}

// Storage wraps the JSON document store. One record per user id. The mutex
// serializes read-modify-write cycles; the datastore only locks individual
// operations, and HTTP handlers hit the same record concurrently.
type Storage struct {
	mu     sync.Mutex
	ds     *datastore.DataStore
	cancel context.CancelFunc
}

func New(ctx context.Context, filePath string) (*Storage, error) {
	ctx, cancel := context.WithCancel(ctx)
	ds, err := datastore.New(ctx, filePath)
	if err != nil {
		cancel()
		return nil, err
	}
	return &Storage{ds: ds, cancel: cancel}, nil
}

func (s *Storage) Close() error {
	s.cancel()
	return s.ds.Close()
}

// getOrCreateRecord materializes the user's document. Callers must hold mu.
func (s *Storage) getOrCreateRecord(userID string) (*Record, error) {
	var rec Record
	found, err := s.ds.Get(userID, &rec)
	if err != nil {
		return nil, fmt.Errorf("load record: %w", err)
	}
	if !found {
		rec = Record{OrbStage: 1}
		if err := s.ds.Set(userID, &rec); err != nil {
			return nil, fmt.Errorf("create record: %w", err)
		}
		return &rec, nil
	}

	if rec.OrbStage < 1 {
		rec.OrbStage = 1
	}
	if len(rec.Captures) > captureHistoryLimit {
		rec.Captures = rec.Captures[len(rec.Captures)-captureHistoryLimit:]
	}
	return &rec, nil
}

// putRecord persists the user's document. Callers must hold mu.
func (s *Storage) putRecord(userID string, rec *Record) error {
	if err := s.ds.Set(userID, rec); err != nil {
		return fmt.Errorf("store record: %w", err)
	}
	return nil
}

// AppendCapture stores a pipeline result, keeping the newest entries.
func (s *Storage) AppendCapture(userID string, intel task.Intelligence) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.getOrCreateRecord(userID)
	if err != nil {
		return err
	}
	rec.Captures = append(rec.Captures, CaptureRecord{Intelligence: intel, CapturedAt: intel.CreatedAt})
	if len(rec.Captures) > captureHistoryLimit {
		rec.Captures = rec.Captures[len(rec.Captures)-captureHistoryLimit:]
	}
	return s.putRecord(userID, rec)
}

// FetchCaptures returns the stored capture history, oldest first.
func (s *Storage) FetchCaptures(userID string) ([]CaptureRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.getOrCreateRecord(userID)
	if err != nil {
		return nil, err
	}
	return rec.Captures, nil
}

// SetStreak stores the user's current streak.
func (s *Storage) SetStreak(userID string, streak int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.getOrCreateRecord(userID)
	if err != nil {
		return err
	}
	rec.Streak = streak
	return s.putRecord(userID, rec)
}

// Streak returns the stored streak.
func (s *Storage) Streak(userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.getOrCreateRecord(userID)
	if err != nil {
		return 0, err
	}
	return rec.Streak, nil
}
