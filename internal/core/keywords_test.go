package core

import (
	"math"
	"reflect"
	"testing"
)

func newTestKeywordScorer() *KeywordScorer {
	formal := []string{"bvn", "verify", "account", "urgent", "winner"}
	pidgin := []string{"abeg", "bros", "sharp sharp"}
	return NewKeywordScorer(formal, pidgin, 0.18, 0.08)
}

func TestKeywordScorer(t *testing.T) {
	scorer := newTestKeywordScorer()

	tests := []struct {
		name         string
		text         string
		wantScore    float64
		wantKeywords []string
		wantPidgin   []string
	}{
		{
			name:         "no matches",
			text:         "see you at lunch tomorrow",
			wantScore:    0,
			wantKeywords: []string{},
			wantPidgin:   []string{},
		},
		{
			name:         "single formal keyword",
			text:         "please verify your details",
			wantScore:    0.18,
			wantKeywords: []string{"verify"},
			wantPidgin:   []string{},
		},
		{
			name:         "case insensitive",
			text:         "URGENT: your BVN is blocked",
			wantScore:    0.36,
			wantKeywords: []string{"bvn", "urgent"},
			wantPidgin:   []string{},
		},
		{
			name:         "pidgin phrase",
			text:         "abeg send am sharp sharp",
			wantScore:    0.16,
			wantKeywords: []string{},
			wantPidgin:   []string{"abeg", "sharp sharp"},
		},
		{
			name:         "mixed vocabularies",
			text:         "bros abeg verify your account now",
			wantScore:    0.18*2 + 0.08*2,
			wantKeywords: []string{"verify", "account"},
			wantPidgin:   []string{"abeg", "bros"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.Score(tt.text)
			if math.Abs(got.Score-tt.wantScore) > 1e-9 {
				t.Errorf("Score = %v, want %v", got.Score, tt.wantScore)
			}
			if !reflect.DeepEqual(got.Keywords, tt.wantKeywords) {
				t.Errorf("Keywords = %v, want %v", got.Keywords, tt.wantKeywords)
			}
			if !reflect.DeepEqual(got.Pidgin, tt.wantPidgin) {
				t.Errorf("Pidgin = %v, want %v", got.Pidgin, tt.wantPidgin)
			}
		})
	}
}

func TestKeywordScoreCapped(t *testing.T) {
	scorer := newTestKeywordScorer()

	result := scorer.Score("urgent winner: verify your bvn and account, abeg bros sharp sharp")
	if result.Score != 1.0 {
		t.Errorf("Score = %v, want cap of 1.0", result.Score)
	}
	if len(result.Keywords) != 5 {
		t.Errorf("matched %d formal keywords, want 5", len(result.Keywords))
	}
}
