package mind

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"malunita/internal/logging"
)

// Daily reset keeps a fraction of accumulated stress and fatigue instead of
// zeroing them; a rough night is still felt the next morning.
const dailyResetKeep = 0.3

// Default scalars for a fresh user.
func defaultEmotions() *EmotionalMemoryState {
	return &EmotionalMemoryState{
		Stress:    20,
		Joy:       50,
		Fatigue:   20,
		Affection: 10,
	}
}

// EmotionalMemory is the process-wide store for one user's emotional
// scalars. Each adjuster commits independently; there is no transactional
// grouping of field updates.
type EmotionalMemory struct {
	mu     sync.Mutex
	userID string
	state  *EmotionalMemoryState
	store  Store
	log    zerolog.Logger
}

// NewEmotionalMemory loads persisted state for userID or starts from
// defaults. store may be nil for in-memory use (tests).
func NewEmotionalMemory(userID string, store Store) *EmotionalMemory {
	m := &EmotionalMemory{
		userID: userID,
		store:  store,
		log:    logging.Component("emotions"),
	}
	if store != nil {
		if s, ok := store.LoadEmotions(userID); ok {
			m.state = s
		}
	}
	if m.state == nil {
		m.state = defaultEmotions()
	}
	return m
}

// AdjustStress adds delta to stress, clamped to [0,100].
func (m *EmotionalMemory) AdjustStress(delta float64) {
	m.adjust(func(s *EmotionalMemoryState) { s.Stress = clamp100(s.Stress + delta) })
}

// AdjustJoy adds delta to joy, clamped to [0,100].
func (m *EmotionalMemory) AdjustJoy(delta float64) {
	m.adjust(func(s *EmotionalMemoryState) { s.Joy = clamp100(s.Joy + delta) })
}

// AdjustFatigue adds delta to fatigue, clamped to [0,100].
func (m *EmotionalMemory) AdjustFatigue(delta float64) {
	m.adjust(func(s *EmotionalMemoryState) { s.Fatigue = clamp100(s.Fatigue + delta) })
}

// AdjustAffection adds delta to affection, clamped to [0,100].
func (m *EmotionalMemory) AdjustAffection(delta float64) {
	m.adjust(func(s *EmotionalMemoryState) { s.Affection = clamp100(s.Affection + delta) })
}

// DailyReset decays stress and fatigue toward baseline once per local
// calendar day. Idempotent within the same day: repeat calls are no-ops.
// Returns true when the reset actually fired.
func (m *EmotionalMemory) DailyReset(now time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	day := now.Format("2006-01-02")
	if m.state.LastResetDate == day {
		return false
	}

	m.state.Stress = clamp100(m.state.Stress * dailyResetKeep)
	m.state.Fatigue = clamp100(m.state.Fatigue * dailyResetKeep)
	m.state.LastResetDate = day
	m.persistLocked()

	m.log.Info().Str("day", day).
		Float64("stress", m.state.Stress).
		Float64("fatigue", m.state.Fatigue).
		Msg("daily emotional reset applied")
	return true
}

// Snapshot returns a copy of the current state.
func (m *EmotionalMemory) Snapshot() EmotionalMemoryState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.state
}

func (m *EmotionalMemory) adjust(fn func(*EmotionalMemoryState)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(m.state)
	m.persistLocked()
}

func (m *EmotionalMemory) persistLocked() {
	if m.store == nil {
		return
	}
	s := *m.state
	if err := m.store.SaveEmotions(m.userID, &s); err != nil {
		m.log.Warn().Err(err).Msg("persist emotions failed")
	}
}

func clamp100(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 100 {
		return 100
	}
	return x
}
