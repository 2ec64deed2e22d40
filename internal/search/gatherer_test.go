package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bechobazaar/geminiai/internal/listing"
)

// --------------------------------------------------
// Fake provider
// --------------------------------------------------

type fakeProvider struct {
	configured bool
	byQuery    map[string][]EvidenceItem
	err        error
}

func (f *fakeProvider) Configured() bool { return f.configured }

func (f *fakeProvider) Search(_ context.Context, query string, _ int) ([]EvidenceItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byQuery[query], nil
}

// --------------------------------------------------
// Tests
// --------------------------------------------------

func TestGatherUnconfiguredProviderReturnsEmpty(t *testing.T) {
	g := NewGatherer(&fakeProvider{configured: false}, 8, 400)

	items := g.Gather(context.Background(), []string{"swift used price"})
	if len(items) != 0 {
		t.Fatalf("expected empty evidence, got %d items", len(items))
	}
}

func TestGatherProviderErrorIsSwallowed(t *testing.T) {
	g := NewGatherer(&fakeProvider{
		configured: true,
		err:        errors.New("503 from upstream"),
	}, 8, 400)

	items := g.Gather(context.Background(), []string{"swift used price"})
	if items != nil {
		t.Fatalf("expected nil evidence on provider error, got %v", items)
	}
}

func TestGatherDedupesByURLFirstSeenWins(t *testing.T) {
	provider := &fakeProvider{
		configured: true,
		byQuery: map[string][]EvidenceItem{
			"used": {
				{Title: "Used Swift 2019", URL: "https://a.example/1", Snippet: "x"},
			},
			"launch": {
				{Title: "Swift launch price", URL: "https://a.example/1", Snippet: "y"},
				{Title: "Other", URL: "https://b.example/2", Snippet: "z"},
			},
		},
	}
	g := NewGatherer(provider, 8, 400)

	items := g.Gather(context.Background(), []string{"used", "launch"})
	if len(items) != 2 {
		t.Fatalf("expected 2 deduped items, got %d", len(items))
	}
	if items[0].Title != "Used Swift 2019" {
		t.Errorf("first-seen title lost on dedupe: %q", items[0].Title)
	}
}

func TestGatherCapsEvidenceAndSnippets(t *testing.T) {
	var many []EvidenceItem
	for i := 0; i < 12; i++ {
		many = append(many, EvidenceItem{
			Title:   "hit",
			URL:     "https://example.com/" + strings.Repeat("a", i+1),
			Snippet: strings.Repeat("s", 1000),
		})
	}
	provider := &fakeProvider{
		configured: true,
		byQuery:    map[string][]EvidenceItem{"q": many},
	}
	g := NewGatherer(provider, 5, 100)

	items := g.Gather(context.Background(), []string{"q"})
	if len(items) != 5 {
		t.Fatalf("expected cap of 5, got %d", len(items))
	}
	for _, item := range items {
		if len(item.Snippet) > 100 {
			t.Fatalf("snippet over limit: %d chars", len(item.Snippet))
		}
	}
}

func TestQueriesIncludeLaunchFacetOnlyWithBrandAndModel(t *testing.T) {
	full := listing.ListingDescription{
		Category: "car", Brand: "Maruti", Model: "Swift", City: "Pune",
	}
	if got := Queries(full); len(got) != 2 {
		t.Fatalf("expected used+launch queries, got %v", got)
	}

	bare := listing.ListingDescription{Category: "sofa"}
	got := Queries(bare)
	if len(got) != 1 {
		t.Fatalf("expected single query for bare listing, got %v", got)
	}
	if !strings.Contains(got[0], "sofa") {
		t.Errorf("query should mention the category: %q", got[0])
	}
}
