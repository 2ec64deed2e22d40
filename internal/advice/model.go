package advice

import "time"

// Source is one citation the model (or the evidence gatherer) supplied.
type Source struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// OldVsNew contrasts launch pricing with typical used pricing. Either
// side may be unknown.
type OldVsNew struct {
	LaunchMRP   *float64 `json:"launch_mrp"`
	TypicalUsed *float64 `json:"typical_used"`
}

// PriceAdvice is the canonical, invariant-safe output record:
// 0 < low <= suggested <= high, confidence is a known level, why is
// never blank and sources hold at most MaxSources entries.
type PriceAdvice struct {
	MarketPriceLow  float64  `json:"market_price_low"`
	MarketPriceHigh float64  `json:"market_price_high"`
	SuggestedPrice  float64  `json:"suggested_price"`
	Confidence      string   `json:"confidence"`
	Why             string   `json:"why"`
	OldVsNew        OldVsNew `json:"old_vs_new"`
	Sources         []Source `json:"sources"`
}

// Response wraps the advice record with provenance metadata.
type Response struct {
	OK        bool        `json:"ok"`
	Provider  string      `json:"provider"`
	Model     string      `json:"model"`
	RequestID string      `json:"request_id"`
	Searched  bool        `json:"searched"`
	Result    PriceAdvice `json:"result"`
}

// Record is the persisted trace of one successful run.
type Record struct {
	ID         string    `json:"id"`
	Category   string    `json:"category"`
	Brand      string    `json:"brand"`
	Model      string    `json:"model"`
	City       string    `json:"city"`
	PlanTier   string    `json:"plan_tier"`
	ModelUsed  string    `json:"model_used"`
	Low        float64   `json:"market_price_low"`
	High       float64   `json:"market_price_high"`
	Suggested  float64   `json:"suggested_price"`
	Confidence string    `json:"confidence"`
	Searched   bool      `json:"searched"`
	CreatedAt  time.Time `json:"created_at"`
}
