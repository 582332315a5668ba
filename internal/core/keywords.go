package core

import (
	"math"
	"strings"
)

// KeywordScorer performs lexical matching against two weighted
// vocabularies: formal scam terms (banking/OTP/urgency phrases) and
// informal solicitation phrases.
type KeywordScorer struct {
	formal       []string
	pidgin       []string
	formalWeight float64
	pidginWeight float64
}

// NewKeywordScorer creates a new keyword scorer. Vocabulary terms are
// normalized to lower case once so scoring stays allocation-light.
func NewKeywordScorer(formal, pidgin []string, formalWeight, pidginWeight float64) *KeywordScorer {
	return &KeywordScorer{
		formal:       lowerAll(formal),
		pidgin:       lowerAll(pidgin),
		formalWeight: formalWeight,
		pidginWeight: pidginWeight,
	}
}

// Score scans text for vocabulary terms. A term matches when it occurs as a
// substring anywhere in the lowercased text. Matched terms are returned in
// vocabulary order, each at most once.
func (s *KeywordScorer) Score(text string) KeywordResult {
	lower := strings.ToLower(text)

	matches := []string{}
	for _, kw := range s.formal {
		if strings.Contains(lower, kw) {
			matches = append(matches, kw)
		}
	}

	pidginMatches := []string{}
	for _, p := range s.pidgin {
		if strings.Contains(lower, p) {
			pidginMatches = append(pidginMatches, p)
		}
	}

	score := math.Min(1.0, float64(len(matches))*s.formalWeight+float64(len(pidginMatches))*s.pidginWeight)

	return KeywordResult{
		Score:    score,
		Keywords: matches,
		Pidgin:   pidginMatches,
	}
}

func lowerAll(terms []string) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = strings.ToLower(strings.TrimSpace(t))
	}
	return out
}
