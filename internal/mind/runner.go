package mind

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"malunita/internal/logging"
	"malunita/pkg/jobmgr"
)

// How often the clock job checks time-of-day and the daily reset.
const clockTickInterval = 60 * time.Second

// Engagement point values per event type.
const (
	PointsCapture    = 2.0
	PointsTaskDone   = 10.0
	PointsTinyFiesta = 4.0 // per task cleared in a batch
	PointsCheckIn    = 5.0
)

// Runner owns the process-wide mood engine: one orb, one emotional memory,
// and the bonding score kept in the store. UI call sites mutate it through
// the exposed operations; the clock job drives time-of-day and the daily
// reset.
type Runner struct {
	Orb    *Orb
	Memory *EmotionalMemory

	userID string
	store  Store
	jobs   *jobmgr.Manager
	log    zerolog.Logger
	now    func() time.Time
}

// NewRunner builds the mood engine for one user, restoring persisted stage
// and emotions. store may be nil for ephemeral use.
func NewRunner(userID string, store Store, haptic HapticFunc) *Runner {
	log := logging.Component("mind")
	orb := NewOrb(haptic)
	if store != nil {
		if stage, ok := store.OrbStage(userID); ok {
			orb.RestoreStage(stage)
		}
	}
	return &Runner{
		Orb:    orb,
		Memory: NewEmotionalMemory(userID, store),
		userID: userID,
		store:  store,
		jobs:   jobmgr.NewManager(func(msg string) { log.Debug().Str("job", msg).Msg("job event") }),
		log:    log,
		now:    time.Now,
	}
}

// Start launches the clock job. It returns immediately; the job stops when
// ctx is cancelled.
func (r *Runner) Start(ctx context.Context) error {
	return r.jobs.Start(ctx, "orb-clock", func(ctx context.Context) error {
		ticker := time.NewTicker(clockTickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				r.Tick(r.now())
			}
		}
	})
}

// Tick runs one clock step: time-of-day mood and the daily reset check.
func (r *Runner) Tick(now time.Time) {
	r.Orb.SetTimeOfDay(now.Hour())
	if r.Memory.DailyReset(now) {
		// A fresh day nudges affection up a touch; showing up matters.
		r.Memory.AdjustAffection(1)
	}
}

// RecordCapture awards engagement for a capture and flashes the thinking
// animation while the pipeline runs.
func (r *Runner) RecordCapture() {
	r.award(PointsCapture, "capture")
}

// RecordTaskCompleted celebrates a completed task and shifts the emotional
// scalars the way finishing something does.
func (r *Runner) RecordTaskCompleted() {
	r.Orb.TriggerCelebration()
	r.Memory.AdjustJoy(5)
	r.Memory.AdjustStress(-3)
	r.Memory.AdjustAffection(2)
	r.award(PointsTaskDone, "task_completed")
}

// RecordTinyFiesta awards engagement for a batch of tiny tasks cleared in
// one session.
func (r *Runner) RecordTinyFiesta(count int) {
	if count <= 0 {
		return
	}
	r.Orb.TriggerCelebration()
	r.Memory.AdjustJoy(float64(count) * 2)
	r.Memory.AdjustFatigue(float64(count))
	r.award(PointsTinyFiesta*float64(count), "tiny_fiesta")
}

// RecordCheckIn awards the daily check-in.
func (r *Runner) RecordCheckIn() {
	r.Memory.AdjustAffection(1)
	r.award(PointsCheckIn, "check_in")
}

// BondScore returns the accumulated engagement score.
func (r *Runner) BondScore() float64 {
	if r.store == nil {
		return 0
	}
	score, err := r.store.BondScore(r.userID)
	if err != nil {
		r.log.Warn().Err(err).Msg("read bond score failed")
		return 0
	}
	return score
}

// award adds bond points and evolves the orb when the score crosses into a
// new tier. Stage tracks tier index and never decreases.
func (r *Runner) award(points float64, reason string) {
	if r.store == nil {
		return
	}
	score, err := r.store.AddBondPoints(r.userID, points)
	if err != nil {
		r.log.Warn().Err(err).Str("reason", reason).Msg("award bond points failed")
		return
	}
	r.log.Debug().Float64("points", points).Float64("score", score).Str("reason", reason).Msg("bond points awarded")

	if idx := TierIndex(score); idx > r.Orb.Snapshot().Stage {
		r.Orb.Evolve()
		if err := r.store.SetOrbStage(r.userID, r.Orb.Snapshot().Stage); err != nil {
			r.log.Warn().Err(err).Msg("persist orb stage failed")
		}
	}
}
