package task

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"malunita/internal/logging"
)

// Clusterer is the remote clustering boundary. Failures never abort the
// pipeline; they degrade to a nil cluster label.
type Clusterer interface {
	Label(ctx context.Context, id, title string) (string, error)
}

// Pipeline composes the classifiers, context mapper, priority scorer,
// agenda router, and the best-effort clustering call into one intelligence
// result per capture. Concurrent runs share nothing but the remote service.
type Pipeline struct {
	clusterer Clusterer
	log       zerolog.Logger
	now       func() time.Time
}

// NewPipeline creates a Pipeline. clusterer may be nil (offline mode).
func NewPipeline(clusterer Clusterer) *Pipeline {
	return &Pipeline{
		clusterer: clusterer,
		log:       logging.Component("pipeline"),
		now:       time.Now,
	}
}

// Run executes the fixed step sequence for one capture. It never fails:
// every well-formed input, the empty string included, yields a result.
func (p *Pipeline) Run(ctx context.Context, text string) Intelligence {
	now := p.now()

	stub := Task{
		ID:    uuid.NewString(),
		Title: text,
	}
	if sd := ParseSmartDate(text, now); sd.DetectedDate != nil {
		stub.Title = sd.CleanTitle
		stub.Due = sd.DetectedDate
		stub.DueText = sd.DetectedText
		stub.DueHasTime = sd.HasTime
	}
	stub.Category = ClassifyType(stub.Title)

	idea := IdeaAnalysis{}
	batch := []Task{stub}

	ctxs := MapContext(batch, idea, now)
	prios := ScorePriorities(batch, idea, ctxs)
	agenda := RouteAgenda(batch, ctxs, prios)

	var clusterLabel *string
	if p.clusterer != nil {
		if label, err := p.clusterer.Label(ctx, stub.ID, stub.Title); err != nil {
			p.log.Warn().Err(err).Str("task_id", stub.ID).Msg("clustering unavailable, continuing without label")
		} else {
			clusterLabel = &label
		}
	}

	tinyHeuristic, reason := IsTiny(stub)
	tinyByWords := WordCount(stub.Title) <= tinyWordLimit

	return Intelligence{
		Original:        text,
		TaskID:          stub.ID,
		Context:         ctxs[stub.ID],
		Priority:        prios[stub.ID],
		Routing:         Routing{Bucket: bucketOf(agenda, stub.ID)},
		Cluster:         clusterLabel,
		TinyHeuristic:   tinyHeuristic,
		TinyByWordCount: tinyByWords,
		IsTiny:          tinyHeuristic || tinyByWords,
		TinyReason:      reason,
		CreatedAt:       now,
	}
}

func bucketOf(a Agenda, id string) Bucket {
	for _, x := range a.Projects {
		if x == id {
			return BucketProjects
		}
	}
	for _, x := range a.Today {
		if x == id {
			return BucketToday
		}
	}
	for _, x := range a.Upcoming {
		if x == id {
			return BucketUpcoming
		}
	}
	return BucketSomeday
}
