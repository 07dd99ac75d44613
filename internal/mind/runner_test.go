package mind

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestRunner(store Store) *Runner {
	r := NewRunner("u", store, nil)
	r.Orb.after = func(time.Duration, func()) {}
	return r
}

func TestRunnerRestoresPersistedStage(t *testing.T) {
	store := newMemStore()
	store.stage["u"] = 3

	r := newTestRunner(store)
	assert.Equal(t, 3, r.Orb.Snapshot().Stage)
}

func TestRecordCaptureAwardsPoints(t *testing.T) {
	store := newMemStore()
	r := newTestRunner(store)

	r.RecordCapture()
	assert.Equal(t, PointsCapture, r.BondScore())
}

func TestRecordTaskCompleted(t *testing.T) {
	store := newMemStore()
	r := newTestRunner(store)

	before := r.Memory.Snapshot()
	r.RecordTaskCompleted()
	after := r.Memory.Snapshot()

	assert.Equal(t, MoodCelebrating, r.Orb.Snapshot().Mood)
	assert.Equal(t, before.Joy+5, after.Joy)
	assert.Equal(t, before.Stress-3, after.Stress)
	assert.Equal(t, before.Affection+2, after.Affection)
	assert.Equal(t, PointsTaskDone, r.BondScore())
}

func TestRecordTinyFiesta(t *testing.T) {
	store := newMemStore()
	r := newTestRunner(store)

	r.RecordTinyFiesta(3)
	assert.Equal(t, 3*PointsTinyFiesta, r.BondScore())

	r.RecordTinyFiesta(0)
	r.RecordTinyFiesta(-2)
	assert.Equal(t, 3*PointsTinyFiesta, r.BondScore())
}

func TestAwardEvolvesOrbAcrossTiers(t *testing.T) {
	store := newMemStore()
	r := newTestRunner(store)
	assert.Equal(t, 1, r.Orb.Snapshot().Stage)

	// 100 points crosses into Acquaintance (tier index 2).
	store.bond["u"] = 98
	r.RecordCapture()

	assert.Equal(t, 2, r.Orb.Snapshot().Stage)
	assert.Equal(t, 2, store.stage["u"])
	assert.Equal(t, MoodEvolving, r.Orb.Snapshot().Mood)
}

func TestAwardDoesNotEvolveWithinTier(t *testing.T) {
	store := newMemStore()
	r := newTestRunner(store)

	r.RecordCapture()
	assert.Equal(t, 1, r.Orb.Snapshot().Stage)
	_, ok := store.stage["u"]
	assert.False(t, ok)
}

func TestClockResumesAfterEvolution(t *testing.T) {
	store := newMemStore()
	r := NewRunner("u", store, nil)
	ma := &manualAfter{}
	r.Orb.after = ma.after

	store.bond["u"] = 98
	r.RecordCapture()
	assert.Equal(t, MoodEvolving, r.Orb.Snapshot().Mood)

	// The clock tick defers to the running animation.
	morning := time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)
	r.Tick(morning)
	assert.Equal(t, MoodEvolving, r.Orb.Snapshot().Mood)

	// Once the evolution hold elapses the orb returns and the clock takes
	// over again.
	ma.fireAll()
	r.Tick(morning.Add(time.Minute))
	assert.Equal(t, MoodMorning, r.Orb.Snapshot().Mood)
}

func TestTickDailyResetBoostsAffection(t *testing.T) {
	store := newMemStore()
	r := newTestRunner(store)
	base := r.Memory.Snapshot().Affection

	day := time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)
	r.Tick(day)
	assert.Equal(t, base+1, r.Memory.Snapshot().Affection)

	// Same day, no second boost.
	r.Tick(day.Add(time.Hour))
	assert.Equal(t, base+1, r.Memory.Snapshot().Affection)
}

func TestTickSetsTimeOfDayMood(t *testing.T) {
	r := newTestRunner(newMemStore())

	r.Tick(time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC))
	assert.Equal(t, MoodMorning, r.Orb.Snapshot().Mood)

	r.Tick(time.Date(2025, time.March, 10, 20, 0, 0, 0, time.UTC))
	assert.Equal(t, MoodEvening, r.Orb.Snapshot().Mood)
}

func TestRunnerNilStore(t *testing.T) {
	r := newTestRunner(nil)

	// No store: events still animate, score stays zero.
	r.RecordCapture()
	r.RecordTaskCompleted()
	assert.Equal(t, 0.0, r.BondScore())
	assert.Equal(t, 1, r.Orb.Snapshot().Stage)
}
