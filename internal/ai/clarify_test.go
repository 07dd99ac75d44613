package ai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubProvider struct {
	reply string
	err   error
}

func (s *stubProvider) Generate(messages []Message) (string, error) {
	return s.reply, s.err
}

func TestClarifyNilProviderUsesFallback(t *testing.T) {
	c := Clarify(nil, ClarifyRequest{Text: "the thing", AmbiguityReason: "no deadline given"})
	assert.Equal(t, "deadline", c.ExpectedField)
	assert.NotEmpty(t, c.Question)
	assert.NotEmpty(t, c.Options)
}

func TestClarifyProviderErrorFallsBack(t *testing.T) {
	p := &stubProvider{err: errors.New("service down")}
	c := Clarify(p, ClarifyRequest{Text: "sort it out", AmbiguityReason: "unknown urgency"})
	assert.Equal(t, "urgency", c.ExpectedField)
}

func TestClarifyRemoteSuccess(t *testing.T) {
	p := &stubProvider{reply: `{"clarification": {"question": "Is this for work or home?", "options": ["Work", "Home"], "expectedField": "category"}}`}
	c := Clarify(p, ClarifyRequest{Text: "fix the printer", AmbiguityReason: "category unclear"})

	assert.Equal(t, "Is this for work or home?", c.Question)
	assert.Equal(t, []string{"Work", "Home"}, c.Options)
	assert.Equal(t, "category", c.ExpectedField)
}

func TestClarifyRemoteWrappedJSON(t *testing.T) {
	// Models often wrap the JSON in prose; the extractor digs it out.
	p := &stubProvider{reply: "Sure! Here you go:\n{\"clarification\": {\"question\": \"When?\", \"expectedField\": \"deadline\"}}\nHope that helps."}
	c := Clarify(p, ClarifyRequest{Text: "do taxes", AmbiguityReason: "no deadline"})
	assert.Equal(t, "When?", c.Question)
}

func TestClarifyRemoteGarbageFallsBack(t *testing.T) {
	p := &stubProvider{reply: "I cannot help with that"}
	c := Clarify(p, ClarifyRequest{Text: "x", AmbiguityReason: "missing plan linkage"})
	assert.Equal(t, "plan", c.ExpectedField)
}

func TestClarifyRemoteEmptyQuestionFallsBack(t *testing.T) {
	p := &stubProvider{reply: `{"clarification": {"question": "  ", "expectedField": "deadline"}}`}
	c := Clarify(p, ClarifyRequest{Text: "x", AmbiguityReason: "something else entirely"})
	assert.Equal(t, "details", c.ExpectedField)
}

func TestFallbackClarificationDefault(t *testing.T) {
	c := fallbackClarification("")
	assert.Equal(t, "details", c.ExpectedField)
}
