package search

import "context"

// EvidenceItem is one comparable-listing hit from the search provider.
// URL is the identity key when merging result sets.
type EvidenceItem struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Provider is the search backend contract. A provider that is not
// configured reports so and is simply skipped.
type Provider interface {
	Configured() bool
	Search(ctx context.Context, query string, maxResults int) ([]EvidenceItem, error)
}
