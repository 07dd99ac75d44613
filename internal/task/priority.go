package task

// Scoring weights and tier thresholds. Tier assignment is monotonic in the
// score: the thresholds below are the only mapping.
const (
	baseScore      = 40.0
	urgencyWeight  = 25.0
	deadlineWeight = 15.0
	sameDayWeight  = 10.0
	stressedWeight = 10.0
	excitedWeight  = 5.0

	mustThreshold   = 70.0
	shouldThreshold = 45.0
)

var typeWeights = map[Type]float64{
	TypeDeepWork:      15,
	TypeCommunication: 8,
	TypeAdmin:         5,
	TypeErrands:       3,
	TypeQuickTask:     0,
	TypeGeneral:       2,
}

// ScorePriorities computes a score, tier, and effort for each task using
// the context mapper output. One result per input task.
func ScorePriorities(tasks []Task, idea IdeaAnalysis, ctxs map[string]Context) map[string]PriorityResult {
	out := make(map[string]PriorityResult, len(tasks))
	for _, t := range tasks {
		c := ctxs[t.ID]
		score := baseScore

		if c.Urgent {
			score += urgencyWeight
		}
		if c.HasDeadline {
			score += deadlineWeight
			if c.SameDay {
				score += sameDayWeight
			}
		}
		switch idea.EmotionalTone {
		case "stressed":
			score += stressedWeight
		case "excited":
			score += excitedWeight
		}

		typ := t.Category
		if typ == "" {
			typ = ClassifyType(t.Title)
		}
		score += typeWeights[typ]

		if score > 100 {
			score = 100
		}
		if score < 0 {
			score = 0
		}

		out[t.ID] = PriorityResult{
			Score:    score,
			Priority: TierFor(score),
			Effort:   EffortFor(EstimateMinutes(typ)),
		}
	}
	return out
}

// TierFor maps a score to a priority tier via the fixed thresholds.
func TierFor(score float64) Priority {
	switch {
	case score >= mustThreshold:
		return PriorityMust
	case score >= shouldThreshold:
		return PriorityShould
	default:
		return PriorityCould
	}
}

// EffortFor buckets an estimated duration.
func EffortFor(minutes int) Effort {
	switch {
	case minutes <= 15:
		return EffortLow
	case minutes <= 60:
		return EffortMedium
	default:
		return EffortHigh
	}
}
