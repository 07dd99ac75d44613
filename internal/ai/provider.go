package ai

import "fmt"

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Provider interface {
	Generate(messages []Message) (string, error)
}

// NewProvider selects a provider by name. Empty defaults to pollinations.
func NewProvider(engine string) (Provider, error) {
	switch engine {
	case "pollinations", "":
		return NewPollinationsProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported AI_PROVIDER: %s", engine)
	}
}
