package task

import (
	"strings"
	"time"
)

// Words that signal urgency when they appear in a title or context note.
var urgencyWords = []string{"urgent", "asap", "now", "immediately", "today", "deadline", "overdue", "critical"}

var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "in": true, "is": true,
	"it": true, "of": true, "on": true, "or": true, "my": true, "the": true,
	"to": true, "with": true, "up": true, "out": true,
}

// MapContext aggregates a task batch and one idea analysis into per-task
// contextual metadata. Pure and total: the output has one entry per input
// task, keyed by id.
func MapContext(tasks []Task, idea IdeaAnalysis, now time.Time) map[string]Context {
	out := make(map[string]Context, len(tasks))
	for _, t := range tasks {
		c := Context{}

		words := tokenize(t.Title + " " + t.Context)
		for _, topic := range idea.Topics {
			if overlaps(words, tokenize(topic)) {
				c.Topics = append(c.Topics, topic)
			}
		}
		for _, d := range idea.Decisions {
			if overlaps(words, tokenize(d)) {
				c.RelatedDecisions = append(c.RelatedDecisions, d)
			}
		}
		for _, f := range idea.Insights {
			if idea.NeedsFollowUp && overlaps(words, tokenize(f)) {
				c.RelatedFollowUps = append(c.RelatedFollowUps, f)
			}
		}

		c.Urgent = hasUrgencySignal(t) || idea.EmotionalTone == "stressed"
		if t.Due != nil {
			c.HasDeadline = true
			c.SameDay = sameCalendarDay(*t.Due, now)
			c.WithinWeek = t.Due.After(now) && t.Due.Before(now.Add(7*24*time.Hour))
		}

		out[t.ID] = c
	}
	return out
}

func hasUrgencySignal(t Task) bool {
	l := strings.ToLower(t.Title + " " + t.Context)
	for _, w := range urgencyWords {
		if strings.Contains(l, w) {
			return true
		}
	}
	return false
}

func tokenize(s string) map[string]bool {
	out := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		w = strings.Trim(w, ".,!?:;\"'()")
		if len(w) < 3 || stopwords[w] {
			continue
		}
		out[w] = true
	}
	return out
}

func overlaps(a, b map[string]bool) bool {
	for w := range b {
		if a[w] {
			return true
		}
	}
	return false
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
