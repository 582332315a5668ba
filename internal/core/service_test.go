package core

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

type staticExpander struct {
	mapping map[string]string
}

func (e *staticExpander) Expand(_ context.Context, rawURL string) string {
	if expanded, ok := e.mapping[rawURL]; ok {
		return expanded
	}
	return rawURL
}

type stubClassifier struct {
	result *MLResult
	err    error
}

func (c *stubClassifier) Classify(_ context.Context, _ string) (*MLResult, error) {
	return c.result, c.err
}

type stubLookup struct {
	info  *WhoisInfo
	calls []string
}

func (l *stubLookup) Lookup(_ context.Context, domain string) (*WhoisInfo, error) {
	l.calls = append(l.calls, domain)
	return l.info, nil
}

func newTestService(
	classifier TextClassifier,
	expander URLExpander,
	whois RegistrationLookup,
	trusted []string,
) *AnalyzerService {
	return NewAnalyzerService(
		newTestKeywordScorer(),
		newTestDomainEvaluator(),
		expander,
		classifier,
		whois,
		zap.NewNop(),
		ScoringConfig{
			KeywordWeight:           0.6,
			URLWeight:               0.25,
			MLBoost:                 0.2,
			LinkSuspiciousThreshold: 0.25,
			LinkReasonThreshold:     0.25,
			ScamThreshold:           0.7,
			SuspiciousThreshold:     0.35,
			RiskLabels:              []string{"NEGATIVE", "SUSPICIOUS", "SCAM"},
		},
		trusted,
		5,
		5*time.Second,
	)
}

func TestAnalyzeBenignMessage(t *testing.T) {
	svc := newTestService(UnavailableClassifier{}, &staticExpander{}, nil, nil)

	record := svc.Analyze(context.Background(), "see you at lunch tomorrow")

	if record.FinalScore != 0 {
		t.Errorf("FinalScore = %v, want 0", record.FinalScore)
	}
	if record.Verdict != VerdictSafe {
		t.Errorf("Verdict = %v, want %v", record.Verdict, VerdictSafe)
	}
	if len(record.Reasons) != 0 {
		t.Errorf("Reasons = %v, want none", record.Reasons)
	}
	if len(record.URLs) != 0 || len(record.URLInfos) != 0 {
		t.Errorf("URLs = %v, URLInfos = %v, want both empty", record.URLs, record.URLInfos)
	}
}

func TestAnalyzeScamIndicators(t *testing.T) {
	svc := newTestService(UnavailableClassifier{}, &staticExpander{}, nil, nil)

	record := svc.Analyze(context.Background(), "URGENT: verify your bvn now http://bit.ly/x")

	// 3 formal keywords at 0.18 fused at 0.6, plus one suspicious URL
	want := math.Round((0.54*0.6+0.25)*1000) / 1000
	if record.FinalScore != want {
		t.Errorf("FinalScore = %v, want %v", record.FinalScore, want)
	}
	if record.Verdict != VerdictSuspicious {
		t.Errorf("Verdict = %v, want %v", record.Verdict, VerdictSuspicious)
	}
	if len(record.Reasons) != 2 {
		t.Fatalf("Reasons = %v, want 2 entries", record.Reasons)
	}
	if record.Reasons[0] != "Contains suspicious keywords: bvn, verify, urgent" {
		t.Errorf("keyword reason = %q", record.Reasons[0])
	}
	if record.Reasons[1] != "Suspicious link detected: http://bit.ly/x -> http://bit.ly/x" {
		t.Errorf("link reason = %q", record.Reasons[1])
	}
}

func TestAnalyzeExpandsShortenedURLs(t *testing.T) {
	expander := &staticExpander{mapping: map[string]string{
		"http://bit.ly/x": "http://secure-login.xyz/path",
	}}
	svc := newTestService(UnavailableClassifier{}, expander, nil, nil)

	record := svc.Analyze(context.Background(), "click http://bit.ly/x")

	if len(record.URLInfos) != 1 {
		t.Fatalf("URLInfos = %v, want 1 entry", record.URLInfos)
	}
	info := record.URLInfos[0]
	if info.OriginalURL != "http://bit.ly/x" {
		t.Errorf("OriginalURL = %q", info.OriginalURL)
	}
	if info.ExpandedURL != "http://secure-login.xyz/path" {
		t.Errorf("ExpandedURL = %q", info.ExpandedURL)
	}
	if info.Domain != "secure-login.xyz" {
		t.Errorf("Domain = %q", info.Domain)
	}
	// .xyz TLD, dash and two substrings on the expanded host
	if math.Abs(info.LinkScore-0.6) > 1e-9 {
		t.Errorf("LinkScore = %v, want 0.6", info.LinkScore)
	}
	if record.Reasons[len(record.Reasons)-1] != "Suspicious link detected: http://bit.ly/x -> http://secure-login.xyz/path" {
		t.Errorf("link reason = %q", record.Reasons[len(record.Reasons)-1])
	}
}

func TestAnalyzeMLBoost(t *testing.T) {
	t.Run("risk label boosts score", func(t *testing.T) {
		classifier := &stubClassifier{result: &MLResult{Available: true, Label: "SCAM", Score: 0.9}}
		svc := newTestService(classifier, &staticExpander{}, nil, nil)

		record := svc.Analyze(context.Background(), "please verify your account")

		// 2 formal keywords at 0.18 fused at 0.6, plus 0.2 * 0.9
		want := math.Round((0.36*0.6+0.18)*1000) / 1000
		if record.FinalScore != want {
			t.Errorf("FinalScore = %v, want %v", record.FinalScore, want)
		}
		last := record.Reasons[len(record.Reasons)-1]
		if last != "ML classifier: SCAM (0.90)" {
			t.Errorf("ML reason = %q", last)
		}
	})

	t.Run("benign label does not boost but is reported", func(t *testing.T) {
		classifier := &stubClassifier{result: &MLResult{Available: true, Label: "LEGITIMATE", Score: 0.9}}
		svc := newTestService(classifier, &staticExpander{}, nil, nil)

		record := svc.Analyze(context.Background(), "please verify your account")

		want := math.Round(0.36*0.6*1000) / 1000
		if record.FinalScore != want {
			t.Errorf("FinalScore = %v, want %v", record.FinalScore, want)
		}
		last := record.Reasons[len(record.Reasons)-1]
		if last != "ML classifier: LEGITIMATE (0.90)" {
			t.Errorf("ML reason = %q", last)
		}
	})

	t.Run("classifier failure degrades to unavailable", func(t *testing.T) {
		classifier := &stubClassifier{err: errors.New("model endpoint down")}
		svc := newTestService(classifier, &staticExpander{}, nil, nil)

		record := svc.Analyze(context.Background(), "please verify your account")

		if record.ML.Available {
			t.Error("ML.Available = true, want false after classifier failure")
		}
		for _, reason := range record.Reasons {
			if strings.HasPrefix(reason, "ML classifier") {
				t.Errorf("unexpected ML reason %q", reason)
			}
		}
	})
}

func TestAnalyzeTrustedDomain(t *testing.T) {
	svc := newTestService(UnavailableClassifier{}, &staticExpander{}, nil, []string{"secure-login.xyz"})

	record := svc.Analyze(context.Background(), "see http://secure-login.xyz/promo")

	if record.URLInfos[0].LinkScore != 0 {
		t.Errorf("LinkScore = %v, want 0 for trusted domain", record.URLInfos[0].LinkScore)
	}
	if record.FinalScore != 0 {
		t.Errorf("FinalScore = %v, want 0", record.FinalScore)
	}
	if record.Verdict != VerdictSafe {
		t.Errorf("Verdict = %v, want %v", record.Verdict, VerdictSafe)
	}
}

func TestAnalyzeScoreClamped(t *testing.T) {
	svc := newTestService(UnavailableClassifier{}, &staticExpander{}, nil, nil)

	text := "urgent winner: verify your bvn and account, abeg bros sharp sharp " +
		"http://bit.ly/a http://bit.ly/b http://bit.ly/c http://bit.ly/d http://bit.ly/e"
	record := svc.Analyze(context.Background(), text)

	if record.FinalScore != 1.0 {
		t.Errorf("FinalScore = %v, want clamp to 1.0", record.FinalScore)
	}
	if record.Verdict != VerdictScam {
		t.Errorf("Verdict = %v, want %v", record.Verdict, VerdictScam)
	}
}

func TestAnalyzeURLInfosMatchURLs(t *testing.T) {
	svc := newTestService(UnavailableClassifier{}, &staticExpander{}, nil, nil)

	record := svc.Analyze(context.Background(), "a http://a.com b www.b.com c https://c.com")

	if len(record.URLInfos) != len(record.URLs) {
		t.Fatalf("len(URLInfos) = %d, len(URLs) = %d", len(record.URLInfos), len(record.URLs))
	}
	for i, raw := range record.URLs {
		if record.URLInfos[i].OriginalURL != raw {
			t.Errorf("URLInfos[%d].OriginalURL = %q, want %q", i, record.URLInfos[i].OriginalURL, raw)
		}
	}
}

func TestAnalyzeAttachesRegistrationInfo(t *testing.T) {
	lookup := &stubLookup{info: &WhoisInfo{Success: true, CreationDate: "2024-01-01T00:00:00Z"}}
	svc := newTestService(UnavailableClassifier{}, &staticExpander{}, lookup, nil)

	record := svc.Analyze(context.Background(), "see http://mail.example.com/page")

	info := record.URLInfos[0]
	if info.Whois == nil || !info.Whois.Success {
		t.Fatalf("Whois = %+v, want successful lookup attached", info.Whois)
	}
	if info.Whois.CreationDate != "2024-01-01T00:00:00Z" {
		t.Errorf("CreationDate = %q", info.Whois.CreationDate)
	}
	if len(lookup.calls) != 1 || lookup.calls[0] != "example.com" {
		t.Errorf("lookup calls = %v, want single apex lookup", lookup.calls)
	}
	// registration data is advisory only
	if record.FinalScore != 0 {
		t.Errorf("FinalScore = %v, want 0", record.FinalScore)
	}
}

func TestVerdictForScore(t *testing.T) {
	svc := newTestService(UnavailableClassifier{}, &staticExpander{}, nil, nil)

	tests := []struct {
		score float64
		want  Verdict
	}{
		{0, VerdictSafe},
		{0.349, VerdictSafe},
		{0.35, VerdictSuspicious},
		{0.699, VerdictSuspicious},
		{0.7, VerdictScam},
		{1.0, VerdictScam},
	}

	for _, tt := range tests {
		if got := svc.VerdictForScore(tt.score); got != tt.want {
			t.Errorf("VerdictForScore(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}
