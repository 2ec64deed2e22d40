package llm

import (
	"fmt"
	"strings"

	"github.com/bechobazaar/geminiai/internal/listing"
	"github.com/bechobazaar/geminiai/internal/search"
)

const systemPrompt = `You are a pricing analyst for an Indian resale marketplace.

Your task:
- Estimate a fair market price band in Indian Rupees for the listed item.
- Output MUST be valid JSON.
- Output MUST start with { and end with }.
- Output MUST contain ONLY JSON.
- NO explanations.
- NO markdown.
- Numbers are plain INR amounts with NO thousands separators.

Required JSON schema:
{
  "market_price_low": number,
  "market_price_high": number,
  "suggested_price": number,
  "confidence": "low" | "medium" | "high",
  "why": "string",
  "old_vs_new": { "launch_mrp": number or null, "typical_used": number or null },
  "sources": [ { "title": "string", "url": "string" } ]
}`

// Per-category adjustment heuristics, keyed by category class. Each
// variant used to be its own handler; here they are just named blocks.
var heuristics = map[string]string{
	"vehicle": `Adjust for: kilometres driven, number of owners, registration
year and state, condition, accident history, insurance validity. Commercial
registration and 3+ owners push the price down sharply.`,
	"electronics": `Adjust for: age since launch, battery/screen condition,
warranty remaining, box and accessories. Electronics depreciate fast; a
2-year-old device rarely holds above 50% of launch MRP.`,
	"property": `Adjust for: carpet area, BHK count, locality rates per sq ft,
floor, age of construction, amenities. Locality dominates everything else.`,
	"generic": `Adjust for: age, wear, brand reputation, and local demand for
this category.`,
}

var categoryClasses = map[string]string{
	"car": "vehicle", "bike": "vehicle", "scooter": "vehicle",
	"motorcycle": "vehicle", "vehicle": "vehicle",
	"phone": "electronics", "mobile": "electronics", "laptop": "electronics",
	"tv": "electronics", "tablet": "electronics", "camera": "electronics",
	"electronics": "electronics",
	"flat": "property", "house": "property", "apartment": "property",
	"plot": "property", "property": "property",
}

// classify maps a free-form category to a heuristic class.
func classify(category string) string {
	c := strings.ToLower(strings.TrimSpace(category))
	if class, ok := categoryClasses[c]; ok {
		return class
	}
	for key, class := range categoryClasses {
		if strings.Contains(c, key) {
			return class
		}
	}
	return "generic"
}

// Compose builds the system and user text blocks for one listing.
// Pure assembly, no failure mode.
func Compose(desc listing.ListingDescription, evidence []search.EvidenceItem) (string, string) {
	var sb strings.Builder

	sb.WriteString("Estimate the resale price for this listing:\n")
	fmt.Fprintf(&sb, "- Category: %s\n", desc.Category)
	if desc.Brand != "" {
		fmt.Fprintf(&sb, "- Brand: %s\n", desc.Brand)
	}
	if desc.Model != "" {
		fmt.Fprintf(&sb, "- Model: %s\n", desc.Model)
	}
	if loc := desc.Locality(); loc != "" {
		fmt.Fprintf(&sb, "- Location: %s\n", loc)
	}
	if desc.AskingPrice > 0 {
		fmt.Fprintf(&sb, "- Seller's asking price: %.0f INR\n", desc.AskingPrice)
	}
	for key, value := range desc.Attributes {
		fmt.Fprintf(&sb, "- %s: %s\n", key, value)
	}

	sb.WriteString("\nPricing guidance:\n")
	sb.WriteString(heuristics[classify(desc.Category)])
	sb.WriteString("\n")

	if len(evidence) > 0 {
		sb.WriteString("\nComparable listings found on the web (supporting context, not ground truth):\n")
		for i, item := range evidence {
			fmt.Fprintf(&sb, "%d. %s (%s)\n   %s\n", i+1, item.Title, item.URL, item.Snippet)
		}
		sb.WriteString("\nCite the URLs you actually relied on in \"sources\".\n")
	} else {
		sb.WriteString("\nNo web evidence is available; estimate from general market knowledge and say so in \"why\". Prefer \"low\" or \"medium\" confidence.\n")
	}

	return systemPrompt, sb.String()
}
