package llm

import "strings"

// Message is one turn of provider input.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Tool is an optional provider-side capability (e.g. web search).
type Tool struct {
	Type string `json:"type"`
}

// Request is the composed generation call. Tools may be stripped on the
// single unsupported-feature retry.
type Request struct {
	Model           string    `json:"model"`
	Input           []Message `json:"input"`
	MaxOutputTokens int       `json:"max_output_tokens"`
	Temperature     float64   `json:"temperature"`
	Tools           []Tool    `json:"tools,omitempty"`
}

// ModelForTier resolves a caller-supplied plan tier to a model name.
// Matching is case-insensitive; anything unrecognized gets the free tier.
func ModelForTier(tiers map[string]string, tier string) string {
	tier = strings.ToLower(strings.TrimSpace(tier))
	if model, ok := tiers[tier]; ok {
		return model
	}
	return tiers["free"]
}
