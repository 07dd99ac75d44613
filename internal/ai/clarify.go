package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Clarification is the follow-up question the UI shows when a capture is
// too ambiguous to schedule confidently.
type Clarification struct {
	Question      string   `json:"question"`
	Options       []string `json:"options,omitempty"`
	ExpectedField string   `json:"expectedField"`
}

// ClarifyRequest describes the ambiguous capture.
type ClarifyRequest struct {
	Text            string `json:"text"`
	AmbiguityReason string `json:"ambiguityReason"`
}

const clarifyPrompt = `You help a journaling app ask the user one short clarifying question about a captured task. Respond with JSON only: {"clarification": {"question": string, "options": [string] (optional), "expectedField": string}}. expectedField is one of: deadline, urgency, category, plan, details.`

// Clarify asks the provider for a clarifying question; any failure falls
// back to the local question bank so the user is never blocked.
func Clarify(provider Provider, req ClarifyRequest) Clarification {
	if provider != nil {
		if c, err := remoteClarify(provider, req); err == nil {
			return c
		}
	}
	return fallbackClarification(req.AmbiguityReason)
}

func remoteClarify(provider Provider, req ClarifyRequest) (Clarification, error) {
	user := fmt.Sprintf("Captured text: %q\nAmbiguity: %s", req.Text, req.AmbiguityReason)
	out, err := provider.Generate([]Message{
		{Role: "system", Content: clarifyPrompt},
		{Role: "user", Content: user},
	})
	if err != nil {
		return Clarification{}, err
	}

	raw := out
	if i := strings.Index(raw, "{"); i >= 0 {
		if j := strings.LastIndex(raw, "}"); j > i {
			raw = raw[i : j+1]
		}
	}
	var parsed struct {
		Clarification Clarification `json:"clarification"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return Clarification{}, err
	}
	if strings.TrimSpace(parsed.Clarification.Question) == "" {
		return Clarification{}, fmt.Errorf("clarification empty")
	}
	return parsed.Clarification, nil
}

// fallbackClarification keys the fixed question bank by substrings of the
// ambiguity reason.
func fallbackClarification(reason string) Clarification {
	l := strings.ToLower(reason)
	switch {
	case strings.Contains(l, "deadline"):
		return Clarification{
			Question:      "When does this need to happen?",
			Options:       []string{"Today", "This week", "Someday"},
			ExpectedField: "deadline",
		}
	case strings.Contains(l, "urgency"):
		return Clarification{
			Question:      "How urgent is this?",
			Options:       []string{"Drop everything", "Soon", "Whenever"},
			ExpectedField: "urgency",
		}
	case strings.Contains(l, "category"):
		return Clarification{
			Question:      "What kind of task is this?",
			Options:       []string{"Quick thing", "Deep work", "Errand", "Admin"},
			ExpectedField: "category",
		}
	case strings.Contains(l, "plan"):
		return Clarification{
			Question:      "Is this part of a bigger plan?",
			ExpectedField: "plan",
		}
	default:
		return Clarification{
			Question:      "Can you tell me a bit more about this?",
			ExpectedField: "details",
		}
	}
}
