package task

import "time"

// Type is the heuristic category of a captured task.
type Type string

const (
	TypeCommunication Type = "communication"
	TypeDeepWork      Type = "deep_work"
	TypeAdmin         Type = "admin"
	TypeErrands       Type = "errands"
	TypeQuickTask     Type = "quick_task"
	TypeGeneral       Type = "general"
)

// Priority tiers, ordered MUST > SHOULD > COULD.
type Priority string

const (
	PriorityMust   Priority = "MUST"
	PriorityShould Priority = "SHOULD"
	PriorityCould  Priority = "COULD"
)

// Effort buckets derived from estimated minutes.
type Effort string

const (
	EffortLow    Effort = "low"
	EffortMedium Effort = "medium"
	EffortHigh   Effort = "high"
)

// Bucket is an agenda horizon.
type Bucket string

const (
	BucketToday    Bucket = "today"
	BucketUpcoming Bucket = "upcoming"
	BucketSomeday  Bucket = "someday"
	BucketProjects Bucket = "projects"
)

// Task is the slice of the backend task entity the intelligence layer reads.
// Lifecycle is owned elsewhere; the pipeline only derives from it.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Context     string     `json:"context,omitempty"`
	Category    Type       `json:"category,omitempty"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Bucket      Bucket     `json:"bucket,omitempty"`
	Focus       bool       `json:"focus,omitempty"`
	PlanID      string     `json:"plan_id,omitempty"`

	// Filled by ParseSmartDate when the title carries a date phrase.
	Due        *time.Time `json:"due,omitempty"`
	DueText    string     `json:"due_text,omitempty"`
	DueHasTime bool       `json:"due_has_time,omitempty"`
}

// IdeaAnalysis is the ephemeral upstream summary consumed by the context
// mapper. Recreated per pipeline run, never persisted.
type IdeaAnalysis struct {
	Insights      []string `json:"insights,omitempty"`
	Decisions     []string `json:"decisions,omitempty"`
	Ideas         []string `json:"ideas,omitempty"`
	EmotionalTone string   `json:"emotional_tone,omitempty"`
	Topics        []string `json:"topics,omitempty"`
	NeedsFollowUp bool     `json:"needs_follow_up,omitempty"`
	NeedsDecision bool     `json:"needs_decision,omitempty"`
}

// Context is the per-task output of the context mapper.
type Context struct {
	Topics           []string `json:"topics,omitempty"`
	Urgent           bool     `json:"urgent"`
	HasDeadline      bool     `json:"has_deadline"`
	SameDay          bool     `json:"same_day"`
	WithinWeek       bool     `json:"within_week"`
	RelatedDecisions []string `json:"related_decisions,omitempty"`
	RelatedFollowUps []string `json:"related_follow_ups,omitempty"`
}

// PriorityResult bundles score, tier and effort for one task.
type PriorityResult struct {
	Score    float64  `json:"score"`
	Priority Priority `json:"priority"`
	Effort   Effort   `json:"effort"`
}

// Routing is the agenda destination for one task.
type Routing struct {
	Bucket Bucket `json:"bucket"`
}

// Agenda partitions a batch of task ids into the four horizons. Every input
// id lands in exactly one list.
type Agenda struct {
	Today    []string `json:"today"`
	Upcoming []string `json:"upcoming"`
	Someday  []string `json:"someday"`
	Projects []string `json:"projects"`
}

// Intelligence is the pipeline output for one capture. Immutable once built.
// Both tiny signals are kept alongside the collapsed flag so callers can see
// which rule fired.
type Intelligence struct {
	Original        string         `json:"original"`
	TaskID          string         `json:"task_id"`
	Context         Context        `json:"context"`
	Priority        PriorityResult `json:"priority"`
	Routing         Routing        `json:"routing"`
	Cluster         *string        `json:"cluster"`
	TinyHeuristic   bool           `json:"tiny_heuristic"`
	TinyByWordCount bool           `json:"tiny_by_word_count"`
	IsTiny          bool           `json:"is_tiny"`
	TinyReason      string         `json:"tiny_reason,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}
