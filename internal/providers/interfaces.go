package providers

import "context"

type ProviderInfo struct {
	Name  string `json:"name"`
	Model string `json:"model"`
	Key   string `json:"key"`
}

// CompletionRequest is the opaque contract with the completion service:
// a system prompt, a user message, a caller-supplied model identifier, and
// decoding settings. MaxTokens <= 0 means no explicit output ceiling.
type CompletionRequest struct {
	System      string  `json:"system"`
	User        string  `json:"user"`
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
}

type CompletionResponse struct {
	Content string `json:"content"`
}

type CompletionProvider interface {
	Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, ProviderInfo, error)
}
