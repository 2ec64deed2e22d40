package listing

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError reports a required field that was missing or empty
// after trimming. Handlers map it to a 400.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// Normalizer coerces raw listing payloads into ListingDescription records.
// The required-field set is policy, not a fixed contract: deployments that
// want brand+city+state enforce it here, not in the pipeline.
type Normalizer struct {
	required []string
}

func NewNormalizer(required []string) *Normalizer {
	if len(required) == 0 {
		required = []string{"category"}
	}
	return &Normalizer{required: required}
}

// Known top-level keys. Everything else lands in the attribute bag.
var topLevelKeys = map[string]bool{
	"category":     true,
	"brand":        true,
	"model":        true,
	"city":         true,
	"state":        true,
	"asking_price": true,
	"askingPrice":  true,
	"plan":         true, // consumed by the handler, never an attribute
}

// Normalize coerces the raw attribute bag leniently: strings are trimmed,
// numbers parse from either JSON numbers or numeric strings, unparseable
// numbers become 0. It fails only when a required field is empty.
func (n *Normalizer) Normalize(raw map[string]any) (ListingDescription, error) {
	if raw == nil {
		raw = map[string]any{}
	}

	desc := ListingDescription{
		Category:   asString(raw["category"]),
		Brand:      asString(raw["brand"]),
		Model:      asString(raw["model"]),
		City:       asString(raw["city"]),
		State:      asString(raw["state"]),
		Attributes: map[string]string{},
	}

	price := asNumber(raw["asking_price"])
	if price == 0 {
		price = asNumber(raw["askingPrice"])
	}
	if price < 0 {
		price = 0
	}
	desc.AskingPrice = price

	for k, v := range raw {
		if topLevelKeys[k] {
			continue
		}
		if s := asString(v); s != "" {
			desc.Attributes[k] = s
		}
	}

	for _, field := range n.required {
		if empty := n.fieldEmpty(desc, field); empty {
			return ListingDescription{}, &ValidationError{Field: field}
		}
	}

	return desc, nil
}

func (n *Normalizer) fieldEmpty(d ListingDescription, field string) bool {
	switch field {
	case "category":
		return d.Category == ""
	case "brand":
		return d.Brand == ""
	case "model":
		return d.Model == ""
	case "city":
		return d.City == ""
	case "state":
		return d.State == ""
	case "asking_price":
		return d.AskingPrice <= 0
	default:
		return d.Attributes[field] == ""
	}
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func asNumber(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(t, ",", ""))
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
