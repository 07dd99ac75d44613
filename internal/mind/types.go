package mind

// EmotionalMemoryState holds durable per-user emotional scalars, clamped 0..100.
// Affection is the only long-horizon metric; the daily reset leaves it alone.
type EmotionalMemoryState struct {
	Stress        float64 `json:"stress"`
	Joy           float64 `json:"joy"`
	Fatigue       float64 `json:"fatigue"`
	Affection     float64 `json:"affection"`
	LastResetDate string  `json:"last_reset_date,omitempty"` // local calendar day, YYYY-MM-DD
}

// Mood is the current orb mood.
type Mood string

const (
	MoodIdle        Mood = "idle"
	MoodThinking    Mood = "thinking"
	MoodCelebrating Mood = "celebrating"
	MoodFocused     Mood = "focused"
	MoodMorning     Mood = "morning"
	MoodEvening     Mood = "evening"
	MoodEvolving    Mood = "evolving"
)

// OrbState is the visible companion state. Stage only ever increases.
type OrbState struct {
	Mood        Mood   `json:"mood"`
	Energy      int    `json:"energy"` // 1..5
	Stage       int    `json:"stage"`  // 1..7
	Streak      int    `json:"streak"`
	IsAnimating bool   `json:"is_animating"`
	GlowColor   string `json:"glow_color"`
	LastTrigger string `json:"last_trigger,omitempty"`
}

// Store is the durable boundary the mind layer persists through.
type Store interface {
	LoadEmotions(userID string) (*EmotionalMemoryState, bool)
	SaveEmotions(userID string, state *EmotionalMemoryState) error
	AddBondPoints(userID string, delta float64) (float64, error)
	BondScore(userID string) (float64, error)
	OrbStage(userID string) (int, bool)
	SetOrbStage(userID string, stage int) error
}
