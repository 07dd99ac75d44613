package mind

import "fmt"

// Tier is one row of the bonding table.
type Tier struct {
	Name        string   `json:"name"`
	MinScore    float64  `json:"min_score"`
	MaxScore    float64  `json:"max_score"` // exclusive; last tier is open-ended for lookup
	Color       string   `json:"color"`
	Description string   `json:"description"`
	Unlocks     []string `json:"unlocks"`
}

// bondTiers covers [0, +inf) with contiguous, non-overlapping ranges.
// The last MaxScore only bounds the progress bar.
var bondTiers = []Tier{
	{"Stranger", 0, 100, "#9CA3AF", "Malunita is still sizing you up.", []string{"basic moods"}},
	{"Acquaintance", 100, 300, "#60A5FA", "A nod of recognition when you show up.", []string{"morning greeting"}},
	{"Buddy", 300, 700, "#34D399", "Your orb perks up when you capture something.", []string{"tiny-task fiesta", "streak counter"}},
	{"Friend", 700, 1500, "#FBBF24", "Celebrations got louder.", []string{"custom glow colors"}},
	{"Companion", 1500, 3000, "#F472B6", "Malunita remembers how your week felt.", []string{"evening wind-down", "focus soundscape"}},
	{"Confidant", 3000, 6000, "#A78BFA", "Deep trust. The orb mirrors your rhythm.", []string{"mood history", "gentle nudges"}},
	{"Soulbound", 6000, 12000, "#F87171", "Inseparable.", []string{"final evolution"}},
}

func init() {
	// Tier table gaps are a programming defect, not a runtime condition.
	if bondTiers[0].MinScore != 0 {
		panic("bond tier table must start at 0")
	}
	for i := 1; i < len(bondTiers); i++ {
		if bondTiers[i].MinScore != bondTiers[i-1].MaxScore {
			panic(fmt.Sprintf("bond tier table gap between %q and %q", bondTiers[i-1].Name, bondTiers[i].Name))
		}
	}
}

// TierForScore returns the tier containing score. Negative scores read as 0;
// anything at or beyond the last range belongs to the last tier.
func TierForScore(score float64) Tier {
	if score < 0 {
		score = 0
	}
	for _, t := range bondTiers[:len(bondTiers)-1] {
		if score < t.MaxScore {
			return t
		}
	}
	return bondTiers[len(bondTiers)-1]
}

// TierIndex returns the 1-based position of the tier for score, used to
// drive orb evolution.
func TierIndex(score float64) int {
	t := TierForScore(score)
	for i, x := range bondTiers {
		if x.Name == t.Name {
			return i + 1
		}
	}
	return 1
}

// BondProgress returns the display progress within the current tier,
// clamped to [0,100].
func BondProgress(score float64) float64 {
	t := TierForScore(score)
	p := (score - t.MinScore) / (t.MaxScore - t.MinScore) * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Tiers returns the full table for the UI.
func Tiers() []Tier {
	out := make([]Tier, len(bondTiers))
	copy(out, bondTiers)
	return out
}
