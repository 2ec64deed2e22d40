package config

import "testing"

func TestParseTiersOverride(t *testing.T) {
	tiers := parseTiers("free=small-model, PRO = big-model,broken")

	if tiers["free"] != "small-model" {
		t.Errorf("free tier not parsed: %v", tiers)
	}
	if tiers["pro"] != "big-model" {
		t.Errorf("pro tier not lowercased/trimmed: %v", tiers)
	}
	if _, ok := tiers["broken"]; ok {
		t.Error("pair without '=' should be skipped")
	}
}

func TestParseTiersGarbageFallsBackToDefaults(t *testing.T) {
	tiers := parseTiers(",,,")
	if tiers["free"] == "" {
		t.Error("expected default tiers when override is unusable")
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" a, ,b ,")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("splitList mangled input: %v", got)
	}
}
