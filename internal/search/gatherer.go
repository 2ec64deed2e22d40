package search

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/bechobazaar/geminiai/internal/listing"
)

// Gatherer issues facet queries against the provider and merges the
// results. Every failure path degrades to an empty evidence set; the
// pipeline never fails because search did.
type Gatherer struct {
	provider     Provider
	maxEvidence  int
	snippetLimit int
}

func NewGatherer(provider Provider, maxEvidence, snippetLimit int) *Gatherer {
	if maxEvidence <= 0 {
		maxEvidence = 8
	}
	if snippetLimit <= 0 {
		snippetLimit = 400
	}
	return &Gatherer{
		provider:     provider,
		maxEvidence:  maxEvidence,
		snippetLimit: snippetLimit,
	}
}

// Queries derives the facet queries for a listing: one for current used
// prices, one for the launch price when brand/model are known.
func Queries(desc listing.ListingDescription) []string {
	subject := desc.Title()
	if subject == "" {
		subject = desc.Category
	}

	used := subject + " used price"
	if loc := desc.Locality(); loc != "" {
		used += " " + loc
	}
	used += " India"

	queries := []string{used}
	if desc.Brand != "" && desc.Model != "" {
		queries = append(queries, subject+" launch price India")
	}
	return queries
}

// Gather runs the queries concurrently and merges the results,
// deduplicating by URL with first-seen order preserved. Provider errors
// are logged and swallowed.
func (g *Gatherer) Gather(ctx context.Context, queries []string) []EvidenceItem {
	if g.provider == nil || !g.provider.Configured() || len(queries) == 0 {
		return nil
	}

	perQuery := make([][]EvidenceItem, len(queries))

	var wg sync.WaitGroup
	for i, q := range queries {
		wg.Add(1)
		go func(i int, q string) {
			defer wg.Done()
			items, err := g.provider.Search(ctx, q, g.maxEvidence)
			if err != nil {
				log.Printf("SEARCH_DEGRADED query=%q err=%v", q, err)
				return
			}
			perQuery[i] = items
		}(i, q)
	}
	wg.Wait()

	return g.merge(perQuery)
}

func (g *Gatherer) merge(perQuery [][]EvidenceItem) []EvidenceItem {
	seen := make(map[string]bool)
	var merged []EvidenceItem

	for _, items := range perQuery {
		for _, item := range items {
			url := strings.TrimSpace(item.URL)
			if url == "" || seen[url] {
				continue
			}
			seen[url] = true

			item.URL = url
			if len(item.Snippet) > g.snippetLimit {
				item.Snippet = item.Snippet[:g.snippetLimit]
			}
			merged = append(merged, item)

			if len(merged) >= g.maxEvidence {
				return merged
			}
		}
	}
	return merged
}
