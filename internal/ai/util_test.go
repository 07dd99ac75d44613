package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsGarbageResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"plain question", "When does this need to happen?", false},
		{"too short", "ok", true},
		{"whitespace only", "   \n ", true},
		{"html error page", "<HTML><body>502</body></HTML>", true},
		{"provider block", "This request is not allowed.", true},
		{"refusal cannot", "I cannot help with that request.", true},
		{"refusal cant", "I can't assist with this.", true},
		{"refusal sorry", "I'm sorry, but no.", true},
		{"cannot mid-sentence", "Ask whether they cannot make Friday.", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isGarbageResponse(tt.in))
		})
	}
}

func TestCleanReply(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"passthrough", "When is this due?", "When is this due?"},
		{"strips think tags", "<think>user wants a deadline</think>When is this due?", "When is this due?"},
		{"unwraps double quotes", `"When is this due?"`, "When is this due?"},
		{"unwraps curly quotes", "“When is this due?”", "When is this due?"},
		{"mismatched quotes kept", `"When is this due?`, `"When is this due?`},
		{"trims whitespace", "  When is this due?\n", "When is this due?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanReply(tt.in))
		})
	}
}

func TestCleanReplyCapsLength(t *testing.T) {
	long := strings.Repeat("blah ", 300)
	got := cleanReply(long)
	assert.LessOrEqual(t, len(got), replyLimit)
	assert.NotEmpty(t, got)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate([]byte("short")))
	long := strings.Repeat("x", 300)
	assert.Equal(t, long[:200]+"...", truncate([]byte(long)))
}
