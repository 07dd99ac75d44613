package storage

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"malunita/internal/mind"
	"malunita/internal/task"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(context.Background(), filepath.Join(t.TempDir(), "test.json"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleIntel(text string) task.Intelligence {
	p := task.NewPipeline(nil)
	return p.Run(context.Background(), text)
}

func TestAppendAndFetchCaptures(t *testing.T) {
	s := newTestStorage(t)

	require.NoError(t, s.AppendCapture("u", sampleIntel("Buy milk")))
	require.NoError(t, s.AppendCapture("u", sampleIntel("Call mom")))

	got, err := s.FetchCaptures("u")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Buy milk", got[0].Intelligence.Original)
	assert.Equal(t, "Call mom", got[1].Intelligence.Original)
}

func TestCaptureHistoryTrimmed(t *testing.T) {
	s := newTestStorage(t)

	for i := 0; i < captureHistoryLimit+10; i++ {
		require.NoError(t, s.AppendCapture("u", sampleIntel("Buy milk")))
	}

	got, err := s.FetchCaptures("u")
	require.NoError(t, err)
	assert.Len(t, got, captureHistoryLimit)
}

func TestFetchCapturesFreshUser(t *testing.T) {
	s := newTestStorage(t)
	got, err := s.FetchCaptures("nobody")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEmotionsRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	_, ok := s.LoadEmotions("u")
	assert.False(t, ok)

	state := &mind.EmotionalMemoryState{Stress: 30, Joy: 70, Fatigue: 10, Affection: 25, LastResetDate: "2025-03-10"}
	require.NoError(t, s.SaveEmotions("u", state))

	got, ok := s.LoadEmotions("u")
	require.True(t, ok)
	assert.Equal(t, *state, *got)

	// The returned copy must not alias the stored state.
	got.Joy = 0
	again, ok := s.LoadEmotions("u")
	require.True(t, ok)
	assert.Equal(t, 70.0, again.Joy)
}

func TestAddBondPoints(t *testing.T) {
	s := newTestStorage(t)

	total, err := s.AddBondPoints("u", 10)
	require.NoError(t, err)
	assert.Equal(t, 10.0, total)

	total, err = s.AddBondPoints("u", 5)
	require.NoError(t, err)
	assert.Equal(t, 15.0, total)

	total, err = s.AddBondPoints("u", -100)
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)

	score, err := s.BondScore("u")
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestOrbStageDefaultsToOne(t *testing.T) {
	s := newTestStorage(t)

	stage, ok := s.OrbStage("u")
	assert.True(t, ok)
	assert.Equal(t, 1, stage)

	require.NoError(t, s.SetOrbStage("u", 4))
	stage, ok = s.OrbStage("u")
	assert.True(t, ok)
	assert.Equal(t, 4, stage)
}

func TestStreakRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	streak, err := s.Streak("u")
	require.NoError(t, err)
	assert.Equal(t, 0, streak)

	require.NoError(t, s.SetStreak("u", 7))
	streak, err = s.Streak("u")
	require.NoError(t, err)
	assert.Equal(t, 7, streak)
}

func TestAddBondPointsConcurrent(t *testing.T) {
	s := newTestStorage(t)

	const workers = 16
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.AddBondPoints("u", 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	score, err := s.BondScore("u")
	require.NoError(t, err)
	assert.Equal(t, float64(workers), score)
}

func TestAppendCaptureConcurrent(t *testing.T) {
	s := newTestStorage(t)

	const workers = 8
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.AppendCapture("u", sampleIntel("Buy milk")))
		}()
	}
	wg.Wait()

	got, err := s.FetchCaptures("u")
	require.NoError(t, err)
	assert.Len(t, got, workers)
}

func TestUsersAreIsolated(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.AddBondPoints("a", 10)
	require.NoError(t, err)

	score, err := s.BondScore("b")
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}
