package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is built once in main and never mutated afterwards.
// Every component receives it (or a slice of it) by value.
type Config struct {
	// Generation provider
	LLMAPIKey  string
	LLMAPIURL  string
	ModelTiers map[string]string // plan tier -> model name
	LLMTimeout time.Duration

	// Search provider
	TavilyAPIKey  string
	TavilyURL     string
	SearchTimeout time.Duration
	MaxEvidence   int // per merged evidence set
	SnippetLimit  int // max snippet characters

	// Reconciliation knobs
	MaxSources    int
	SuggestWeight float64 // weight on the high end of the band

	// Input policy
	RequiredFields []string

	// HTTP adapter
	AllowedOrigins []string
	PlanJWTSecret  string
	Port           string
}

const (
	DefaultLLMURL    = "https://api.openai.com/v1/responses"
	DefaultTavilyURL = "https://api.tavily.com/search"
)

// DefaultModelTiers maps plan tiers to model names. Unknown tiers
// resolve to the free tier model.
func DefaultModelTiers() map[string]string {
	return map[string]string{
		"free": "gpt-4o-mini",
		"pro":  "gpt-4o",
		"vip":  "gpt-4.1",
	}
}

// Load reads environment variables into a Config with sane defaults.
// Only category is required from callers unless REQUIRED_FIELDS says more.
func Load() Config {
	cfg := Config{
		LLMAPIKey:  os.Getenv("LLM_API_KEY"),
		LLMAPIURL:  envOr("LLM_API_URL", DefaultLLMURL),
		ModelTiers: DefaultModelTiers(),
		LLMTimeout: envDuration("LLM_TIMEOUT_SEC", 15*time.Second),

		TavilyAPIKey:  os.Getenv("TAVILY_API_KEY"),
		TavilyURL:     envOr("TAVILY_API_URL", DefaultTavilyURL),
		SearchTimeout: envDuration("SEARCH_TIMEOUT_SEC", 10*time.Second),
		MaxEvidence:   envInt("MAX_EVIDENCE", 8),
		SnippetLimit:  envInt("SNIPPET_LIMIT", 400),

		MaxSources:    6,
		SuggestWeight: envFloat("SUGGEST_WEIGHT", 0.6),

		RequiredFields: splitList(envOr("REQUIRED_FIELDS", "category")),

		AllowedOrigins: splitList(envOr(
			"ALLOWED_ORIGINS",
			"http://localhost:3000,http://localhost:5173",
		)),
		PlanJWTSecret: os.Getenv("PLAN_JWT_SECRET"),
		Port:          envOr("PORT", "8000"),
	}

	if tiers := os.Getenv("MODEL_TIERS"); tiers != "" {
		cfg.ModelTiers = parseTiers(tiers)
	}

	return cfg
}

// parseTiers parses "free=gpt-4o-mini,pro=gpt-4o" style overrides.
func parseTiers(raw string) map[string]string {
	out := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		k = strings.ToLower(strings.TrimSpace(k))
		v = strings.TrimSpace(v)
		if k != "" && v != "" {
			out[k] = v
		}
	}
	if len(out) == 0 {
		return DefaultModelTiers()
	}
	return out
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 && f < 1 {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return fallback
}
