package mind

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"malunita/internal/logging"
)

const (
	celebrationHold = 1500 * time.Millisecond
	evolutionHold   = 2500 * time.Millisecond
	maxStage        = 7

	energyIdle    = 3
	energyFocused = 4
)

var glowColors = map[Mood]string{
	MoodIdle:        "#8B9DC3",
	MoodThinking:    "#A78BFA",
	MoodCelebrating: "#FBBF24",
	MoodFocused:     "#34D399",
	MoodMorning:     "#FDE68A",
	MoodEvening:     "#818CF8",
	MoodEvolving:    "#F472B6",
}

const glowNeutral = "#8B9DC3"

// HapticFunc receives haptic trigger names ("celebrate", "focus"). The
// process has no device access; the UI layer subscribes to these.
type HapticFunc func(trigger string)

// Orb is the companion mood machine. Scheduled transitions carry a
// generation token: any explicit transition bumps the generation, so a stale
// timer callback no-ops instead of clobbering newer state.
type Orb struct {
	mu     sync.Mutex
	state  OrbState
	gen    uint64
	haptic HapticFunc
	after  func(time.Duration, func()) // swapped in tests
	log    zerolog.Logger

	// Mood and energy interrupted by TriggerThinking, restored by
	// DoneThinking.
	resumeMood   Mood
	resumeEnergy int
}

// NewOrb creates an orb at idle, energy 3, stage 1. haptic may be nil.
func NewOrb(haptic HapticFunc) *Orb {
	return &Orb{
		state: OrbState{
			Mood:      MoodIdle,
			Energy:    energyIdle,
			Stage:     1,
			GlowColor: glowColors[MoodIdle],
		},
		haptic: haptic,
		after:  func(d time.Duration, f func()) { time.AfterFunc(d, f) },
		log:    logging.Component("orb"),
	}
}

// SetMood transitions unconditionally to m and records it as the last
// trigger.
func (o *Orb) SetMood(m Mood) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.applyLocked(m, false)
	o.state.LastTrigger = string(m)
}

// TriggerCelebration enters celebrating with animation and schedules the
// return to idle after the hold delay. A transition in the meantime
// invalidates the scheduled return.
func (o *Orb) TriggerCelebration() {
	o.mu.Lock()
	o.applyLocked(MoodCelebrating, true)
	o.state.LastTrigger = "celebration"
	gen := o.gen
	o.mu.Unlock()

	o.fireHaptic("celebrate")
	o.after(celebrationHold, func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		if o.gen != gen {
			return
		}
		o.applyLocked(MoodIdle, false)
	})
}

// TriggerThinking enters thinking with animation, remembering the mood it
// interrupted. No auto-return: the caller exits via DoneThinking, Reset, or
// another transition.
func (o *Orb) TriggerThinking() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.resumeMood = o.state.Mood
	o.resumeEnergy = o.state.Energy
	o.applyLocked(MoodThinking, true)
	o.state.LastTrigger = "thinking"
}

// DoneThinking restores the mood TriggerThinking interrupted, but only while
// the orb is still thinking. A transition that happened in the meantime
// (celebration, evolution, focus) is left alone. Interrupted transients
// resolve to idle rather than replaying their animation.
func (o *Orb) DoneThinking() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state.Mood != MoodThinking {
		return
	}

	m := o.resumeMood
	switch m {
	case "", MoodThinking, MoodCelebrating, MoodEvolving:
		m = MoodIdle
	}
	o.applyLocked(m, false)
	o.state.Energy = o.resumeEnergy
	if o.state.Energy == 0 {
		o.state.Energy = energyIdle
	}
	o.state.LastTrigger = "thinking_done"
}

// EnterFocusMode switches to focused at raised energy.
func (o *Orb) EnterFocusMode() {
	o.mu.Lock()
	o.applyLocked(MoodFocused, false)
	o.state.Energy = energyFocused
	o.state.LastTrigger = "focus"
	o.mu.Unlock()

	o.fireHaptic("focus")
}

// ExitFocusMode returns to idle at normal energy.
func (o *Orb) ExitFocusMode() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.applyLocked(MoodIdle, false)
	o.state.Energy = energyIdle
	o.state.LastTrigger = "focus_exit"
}

// SetTimeOfDay maps the hour to morning (5-11) or evening (18-4). Other
// hours leave the mood alone and reset the glow to neutral. While a
// transient mood is animating the periodic clock tick is suppressed so it
// cannot clobber a celebration or thought in progress.
func (o *Orb) SetTimeOfDay(hour int) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state.IsAnimating {
		switch o.state.Mood {
		case MoodCelebrating, MoodThinking, MoodEvolving:
			return
		}
	}

	switch {
	case hour >= 5 && hour <= 11:
		o.applyLocked(MoodMorning, false)
	case hour >= 18 || hour <= 4:
		o.applyLocked(MoodEvening, false)
	default:
		o.state.GlowColor = glowNeutral
	}
}

// Evolve bumps the stage (capped at 7) and enters the evolving animation,
// returning to idle after the hold delay. A transition in the meantime
// invalidates the scheduled return.
func (o *Orb) Evolve() {
	o.mu.Lock()
	if o.state.Stage < maxStage {
		o.state.Stage++
	}
	o.applyLocked(MoodEvolving, true)
	o.state.LastTrigger = "evolve"
	gen := o.gen
	stage := o.state.Stage
	o.mu.Unlock()

	o.log.Info().Int("stage", stage).Msg("orb evolved")
	o.after(evolutionHold, func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		if o.gen != gen {
			return
		}
		o.applyLocked(MoodIdle, false)
	})
}

// Reset returns unconditionally to idle defaults.
func (o *Orb) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.applyLocked(MoodIdle, false)
	o.state.Energy = energyIdle
	o.state.LastTrigger = "reset"
}

// RestoreStage sets the evolution stage from persisted state. Stage never
// decreases.
func (o *Orb) RestoreStage(stage int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if stage > o.state.Stage && stage <= maxStage {
		o.state.Stage = stage
	}
}

// SetStreak updates the displayed streak counter.
func (o *Orb) SetStreak(n int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state.Streak = n
}

// Snapshot returns a copy of the current state.
func (o *Orb) Snapshot() OrbState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// applyLocked performs the transition and invalidates pending timers.
func (o *Orb) applyLocked(m Mood, animating bool) {
	o.gen++
	o.state.Mood = m
	o.state.IsAnimating = animating
	o.state.GlowColor = glowColors[m]
}

func (o *Orb) fireHaptic(trigger string) {
	if o.haptic != nil {
		o.haptic(trigger)
	}
}
