package listing

import "strings"

// ListingDescription is the canonical, typed form of a raw listing payload.
// Category is the only field every policy requires; everything else is
// best-effort context that improves the estimate.
type ListingDescription struct {
	Category    string            `json:"category"`
	Brand       string            `json:"brand"`
	Model       string            `json:"model"`
	City        string            `json:"city"`
	State       string            `json:"state"`
	AskingPrice float64           `json:"asking_price"`
	Attributes  map[string]string `json:"attributes"` // category-specific, sparse
}

// Title builds a short human-readable label for queries and logs.
func (l ListingDescription) Title() string {
	parts := make([]string, 0, 3)
	if l.Brand != "" {
		parts = append(parts, l.Brand)
	}
	if l.Model != "" {
		parts = append(parts, l.Model)
	}
	if len(parts) == 0 {
		return l.Category
	}
	return strings.Join(parts, " ")
}

// Locality returns "city, state" with whichever halves are present.
func (l ListingDescription) Locality() string {
	switch {
	case l.City != "" && l.State != "":
		return l.City + ", " + l.State
	case l.City != "":
		return l.City
	default:
		return l.State
	}
}
