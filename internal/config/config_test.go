package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	heuristics := cfg.GetHeuristics()
	if len(heuristics.FormalKeywords) == 0 {
		t.Error("default formal keyword vocabulary is empty")
	}
	if len(heuristics.PidginPhrases) == 0 {
		t.Error("default pidgin vocabulary is empty")
	}
	if len(heuristics.SuspiciousTLDs) == 0 {
		t.Error("default suspicious TLD list is empty")
	}
	if len(heuristics.ShortenerHosts) == 0 {
		t.Error("default shortener list is empty")
	}

	scoring := cfg.GetScoring()
	if scoring.ScamThreshold != 0.7 {
		t.Errorf("scam threshold = %v, want 0.7", scoring.ScamThreshold)
	}
	if scoring.SuspiciousThreshold != 0.35 {
		t.Errorf("suspicious threshold = %v, want 0.35", scoring.SuspiciousThreshold)
	}
	if scoring.FormalWeight != 0.18 || scoring.PidginWeight != 0.08 {
		t.Errorf("keyword weights = %v/%v, want 0.18/0.08", scoring.FormalWeight, scoring.PidginWeight)
	}

	expander, err := cfg.GetExpander()
	if err != nil {
		t.Fatalf("GetExpander failed: %v", err)
	}
	if expander.MaxURLs != 5 {
		t.Errorf("max URLs = %d, want 5", expander.MaxURLs)
	}
	if expander.Timeout != 8*time.Second {
		t.Errorf("expansion timeout = %v, want 8s", expander.Timeout)
	}

	ml := cfg.GetML()
	if ml.Provider != "none" {
		t.Errorf("ML provider = %q, want none", ml.Provider)
	}
	if ml.MaxInputChars != 512 {
		t.Errorf("ML input cap = %d, want 512", ml.MaxInputChars)
	}

	reports := cfg.GetReports()
	if reports.MaxEntries != 2000 {
		t.Errorf("report cap = %d, want 2000", reports.MaxEntries)
	}

	cache, err := cfg.GetCache()
	if err != nil {
		t.Fatalf("GetCache failed: %v", err)
	}
	if cache.Type != "memory" {
		t.Errorf("cache type = %q, want memory", cache.Type)
	}
	if cache.TTL != time.Hour {
		t.Errorf("cache TTL = %v, want 1h", cache.TTL)
	}
	if cache.CleanupFreq != 10*time.Minute {
		t.Errorf("cache cleanup frequency = %v, want 10m", cache.CleanupFreq)
	}

	whois, err := cfg.GetWhois()
	if err != nil {
		t.Fatalf("GetWhois failed: %v", err)
	}
	if whois.Enabled {
		t.Error("whois enabled by default, want disabled")
	}
	if whois.Timeout != 5*time.Second {
		t.Errorf("whois timeout = %v, want 5s", whois.Timeout)
	}
}

func TestNewFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := "scoring:\n  scam_threshold: 0.85\nml:\n  provider: gemini\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewFromFile(path)
	if err != nil {
		t.Fatalf("NewFromFile failed: %v", err)
	}
	if got := cfg.GetScoring().ScamThreshold; got != 0.85 {
		t.Errorf("scam threshold = %v, want 0.85 from the file", got)
	}
	if got := cfg.GetML().Provider; got != "gemini" {
		t.Errorf("ML provider = %q, want gemini from the file", got)
	}
	// untouched keys keep their defaults
	if got := cfg.GetScoring().SuspiciousThreshold; got != 0.35 {
		t.Errorf("suspicious threshold = %v, want default 0.35", got)
	}
}

func TestNewFromFileMissing(t *testing.T) {
	if _, err := NewFromFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("NewFromFile succeeded for a missing file, want error")
	}
}

func TestOverridesBeatDefaults(t *testing.T) {
	v := NewEmptyViper()
	v.Set("scoring.scam_threshold", 0.9)
	v.Set("ml.provider", "openai")
	cfg := NewFromViper(v)

	if got := cfg.GetScoring().ScamThreshold; got != 0.9 {
		t.Errorf("scam threshold = %v, want 0.9", got)
	}
	if got := cfg.GetML().Provider; got != "openai" {
		t.Errorf("ML provider = %q, want openai", got)
	}
}
