package core

import (
	"math"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// LinkWeights are the fixed additive weights of the per-URL risk model.
// The sum is deliberately allowed to exceed 1; LinkScore is capped.
type LinkWeights struct {
	Shortener float64
	TLD       float64
	Dash      float64
	Substring float64
}

// DomainEvaluator derives suspiciousness signals from a hostname
type DomainEvaluator struct {
	suspiciousTLDs       []string
	shortenerHosts       []string
	suspiciousSubstrings []string
	weights              LinkWeights
}

// NewDomainEvaluator creates a new evaluator over the configured
// vocabularies. TLD entries are normalized to carry a leading dot.
func NewDomainEvaluator(tlds, shorteners, substrings []string, weights LinkWeights) *DomainEvaluator {
	normalized := make([]string, len(tlds))
	for i, tld := range tlds {
		t := strings.ToLower(strings.TrimSpace(tld))
		if !strings.HasPrefix(t, ".") {
			t = "." + t
		}
		normalized[i] = t
	}
	return &DomainEvaluator{
		suspiciousTLDs:       normalized,
		shortenerHosts:       lowerAll(shorteners),
		suspiciousSubstrings: lowerAll(substrings),
		weights:              weights,
	}
}

// Evaluate computes the heuristic signals and link score for a hostname.
// An empty hostname short-circuits to a zero-valued heuristic.
func (e *DomainEvaluator) Evaluate(domain string) DomainHeuristic {
	heur := DomainHeuristic{
		Domain:               domain,
		Length:               len(domain),
		SuspiciousSubstrings: []string{},
	}
	if domain == "" {
		return heur
	}

	lower := strings.ToLower(domain)
	for _, tld := range e.suspiciousTLDs {
		if strings.HasSuffix(lower, tld) {
			heur.SuspiciousTLD = true
			break
		}
	}
	heur.HasDash = strings.Contains(domain, "-")
	for _, sub := range e.suspiciousSubstrings {
		if strings.Contains(lower, sub) {
			heur.SuspiciousSubstrings = append(heur.SuspiciousSubstrings, sub)
		}
	}
	heur.IsShortener = e.IsShortener(lower)

	score := 0.0
	if heur.IsShortener {
		score += e.weights.Shortener
	}
	if heur.SuspiciousTLD {
		score += e.weights.TLD
	}
	if heur.HasDash {
		score += e.weights.Dash
	}
	if len(heur.SuspiciousSubstrings) > 0 {
		score += e.weights.Substring
	}
	heur.LinkScore = math.Min(1.0, score)

	return heur
}

// IsShortener reports whether the hostname matches a known link-shortener
// host. Matching is by substring, so subdomains of shorteners count too.
func (e *DomainEvaluator) IsShortener(domain string) bool {
	lower := strings.ToLower(domain)
	for _, s := range e.shortenerHosts {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

// RegisteredDomain reduces a hostname to its registrable apex (eTLD+1) for
// registration lookups. Falls back to the input when the public suffix
// list cannot place it.
func RegisteredDomain(host string) string {
	apex, err := publicsuffix.EffectiveTLDPlusOne(strings.ToLower(host))
	if err != nil {
		return host
	}
	return apex
}
