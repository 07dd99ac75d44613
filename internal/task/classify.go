package task

import (
	"fmt"
	"strings"
)

// Keyword sets per category. First matching category wins in the order below;
// anything unmatched falls back to general.
var typeKeywords = []struct {
	t        Type
	keywords []string
}{
	{TypeCommunication, []string{"call", "email", "message", "text", "reply", "respond", "ping", "write to", "follow up with", "meet", "meeting", "zoom"}},
	{TypeDeepWork, []string{"write", "design", "plan", "research", "study", "build", "create", "develop", "draft", "analyze", "review", "prepare", "think"}},
	{TypeAdmin, []string{"pay", "bill", "invoice", "form", "register", "renew", "file", "schedule", "book", "cancel", "tax", "insurance", "appointment"}},
	{TypeErrands, []string{"buy", "pick up", "drop off", "grocery", "groceries", "store", "shop", "return", "mail", "post", "pharmacy", "bank"}},
	{TypeQuickTask, []string{"check", "look up", "send", "share", "add", "remove", "update", "fix", "save", "confirm"}},
}

// estimatedMinutes is a fixed lookup per type.
var estimatedMinutes = map[Type]int{
	TypeCommunication: 15,
	TypeDeepWork:      90,
	TypeAdmin:         20,
	TypeErrands:       30,
	TypeQuickTask:     5,
	TypeGeneral:       25,
}

const (
	tinyWordLimit   = 4
	tinyMinuteLimit = 10
)

// ClassifyType matches the title against the fixed keyword sets. Total:
// always returns a category, defaulting to general.
func ClassifyType(title string) Type {
	l := strings.ToLower(title)
	for _, set := range typeKeywords {
		for _, kw := range set.keywords {
			if containsWord(l, kw) {
				return set.t
			}
		}
	}
	return TypeGeneral
}

// EstimateMinutes returns the fixed duration estimate for a type.
func EstimateMinutes(t Type) int {
	if m, ok := estimatedMinutes[t]; ok {
		return m
	}
	return estimatedMinutes[TypeGeneral]
}

// IsTiny reports whether a task qualifies for batch clearing, with the rule
// that fired. Word count is checked first, then the duration estimate.
func IsTiny(t Task) (bool, string) {
	words := WordCount(t.Title)
	if words <= tinyWordLimit {
		return true, fmt.Sprintf("short title (%d words)", words)
	}
	typ := t.Category
	if typ == "" {
		typ = ClassifyType(t.Title)
	}
	if m := EstimateMinutes(typ); m <= tinyMinuteLimit {
		return true, fmt.Sprintf("quick by type (%s, ~%d min)", typ, m)
	}
	return false, "estimated effort above tiny threshold"
}

// WordCount counts whitespace-separated words.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// containsWord reports whether kw occurs in s on word boundaries. Multi-word
// keywords match as substrings.
func containsWord(s, kw string) bool {
	if strings.Contains(kw, " ") {
		return strings.Contains(s, kw)
	}
	for _, w := range strings.Fields(s) {
		if strings.Trim(w, ".,!?:;\"'()") == kw {
			return true
		}
	}
	return false
}
