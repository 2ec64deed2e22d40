package advice

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bechobazaar/geminiai/internal/search"
)

// ParseError means the provider's reply could not be coerced into the
// advice schema. It is never silently replaced with a fabricated price.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "could not parse provider reply: " + e.Reason
}

// Reconciler repairs a parsed provider reply against the PriceAdvice
// invariants. Reconcile is a pure function of its inputs, so running it
// twice on the same text yields identical output.
type Reconciler struct {
	maxSources int
	highWeight float64 // weight on the band's high end for the default suggestion
}

func NewReconciler(maxSources int, highWeight float64) *Reconciler {
	if maxSources <= 0 {
		maxSources = 6
	}
	if highWeight <= 0 || highWeight >= 1 {
		highWeight = 0.6
	}
	return &Reconciler{maxSources: maxSources, highWeight: highWeight}
}

// Reconcile cleans the raw reply text, parses it, and enforces every
// schema invariant. Evidence back-fills sources when the model cited none.
func (r *Reconciler) Reconcile(text string, evidence []search.EvidenceItem) (PriceAdvice, error) {
	cleaned := cleanReplyText(text)
	if cleaned == "" {
		return PriceAdvice{}, &ParseError{Reason: "no JSON object in reply"}
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return PriceAdvice{}, &ParseError{Reason: err.Error()}
	}

	low := positiveNumber(fields["market_price_low"])
	high := positiveNumber(fields["market_price_high"])

	if low > high && high > 0 {
		low, high = high, low
	}
	switch {
	case low <= 0 && high <= 0:
		return PriceAdvice{}, &ParseError{Reason: "no usable price band"}
	case low <= 0:
		// half the high end is the most conservative floor we can defend
		low = math.Max(1, math.Round(high*0.5))
	case high <= 0:
		high = low
	}

	suggested := positiveNumber(fields["suggested_price"])
	if suggested <= 0 {
		suggested = math.Round(low*(1-r.highWeight) + high*r.highWeight)
	}
	suggested = math.Min(math.Max(suggested, low), high)

	confidence := normalizeConfidence(fields["confidence"])

	why, _ := fields["why"].(string)
	why = strings.TrimSpace(why)
	if why == "" {
		why = fmt.Sprintf(
			"Estimated from comparable market data: fair range %.0f–%.0f INR with %.0f as a balanced ask.",
			low, high, suggested,
		)
	}

	return PriceAdvice{
		MarketPriceLow:  low,
		MarketPriceHigh: high,
		SuggestedPrice:  suggested,
		Confidence:      confidence,
		Why:             why,
		OldVsNew:        parseOldVsNew(fields["old_vs_new"]),
		Sources:         r.sources(fields["sources"], evidence),
	}, nil
}

// cleanReplyText strips code fences and smart quotes, then isolates the
// substring between the first { and the last }.
func cleanReplyText(text string) string {
	replacer := strings.NewReplacer(
		"```json", "", "```", "",
		"“", `"`, "”", `"`,
		"‘", "'", "’", "'",
	)
	text = replacer.Replace(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return ""
	}
	return text[start : end+1]
}

func normalizeConfidence(v any) string {
	s, _ := v.(string)
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return "low"
	case "high":
		return "high"
	case "medium":
		return "medium"
	default:
		return "medium"
	}
}

func parseOldVsNew(v any) OldVsNew {
	m, ok := v.(map[string]any)
	if !ok {
		return OldVsNew{}
	}
	return OldVsNew{
		LaunchMRP:   optionalPositive(m["launch_mrp"]),
		TypicalUsed: optionalPositive(m["typical_used"]),
	}
}

func optionalPositive(v any) *float64 {
	if n := positiveNumber(v); n > 0 {
		return &n
	}
	return nil
}

// sources keeps the model's citations, falls back to gathered evidence
// when there are none, and caps the list.
func (r *Reconciler) sources(v any, evidence []search.EvidenceItem) []Source {
	var out []Source

	if raw, ok := v.([]any); ok {
		for _, entry := range raw {
			m, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			url, _ := m["url"].(string)
			url = strings.TrimSpace(url)
			if url == "" {
				continue
			}
			title, _ := m["title"].(string)
			out = append(out, Source{Title: strings.TrimSpace(title), URL: url})
		}
	}

	if len(out) == 0 {
		for _, item := range evidence {
			out = append(out, Source{Title: item.Title, URL: item.URL})
		}
	}

	if len(out) > r.maxSources {
		out = out[:r.maxSources]
	}
	return out
}

// positiveNumber parses numbers leniently: JSON numbers, numeric strings
// (with or without grouping commas), anything else is 0. NaN and Inf
// count as absent.
func positiveNumber(v any) float64 {
	var n float64
	switch t := v.(type) {
	case float64:
		n = t
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(t, ",", ""))
		s = strings.TrimPrefix(s, "₹")
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		n = parsed
	default:
		return 0
	}

	if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return 0
	}
	return n
}
