package ai

import (
	"regexp"
	"strings"
)

// Replies feed short clarifying questions, not open-ended chat. Anything past
// this length is the model rambling.
const replyLimit = 600

// isGarbageResponse flags replies that are not usable model output: error
// pages, refusals, or fragments too short to carry a question.
func isGarbageResponse(s string) bool {
	l := strings.ToLower(strings.TrimSpace(s))
	if len(l) < 5 {
		return true
	}
	if strings.Contains(l, "<html") {
		return true
	}
	if strings.Contains(l, "not allowed") {
		return true
	}
	if strings.HasPrefix(l, "i cannot") || strings.HasPrefix(l, "i can't") || strings.HasPrefix(l, "i'm sorry") {
		return true
	}
	return false
}

func truncate(b []byte) string {
	if len(b) > 200 {
		return string(b[:200]) + "..."
	}
	return string(b)
}

var thinkRe = regexp.MustCompile(`(?s)<think>.*?</think>`)

// cleanReply normalizes a model reply for the clarification flow: reasoning
// tags stripped, surrounding quotes unwrapped, length capped at replyLimit.
func cleanReply(reply string) string {
	reply = strings.TrimSpace(thinkRe.ReplaceAllString(strings.TrimSpace(reply), ""))

	if len(reply) >= 2 {
		quotes := []struct{ open, close string }{
			{`"`, `"`}, {`'`, `'`}, {"“", "”"}, {"‘", "’"},
		}
		for _, q := range quotes {
			if strings.HasPrefix(reply, q.open) && strings.HasSuffix(reply, q.close) {
				reply = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(reply, q.open), q.close))
				break
			}
		}
	}

	if len(reply) > replyLimit {
		reply = strings.TrimSpace(reply[:replyLimit])
	}
	return reply
}
