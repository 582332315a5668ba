package frontend

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/scam-triage/internal/adapters/cache"
	"github.com/mikey/scam-triage/internal/adapters/report"
	"github.com/mikey/scam-triage/internal/core"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	keywords := core.NewKeywordScorer(
		[]string{"bvn", "verify", "urgent"},
		[]string{"abeg"},
		0.18, 0.08,
	)
	domains := core.NewDomainEvaluator(
		[]string{".xyz"},
		[]string{"bit.ly"},
		[]string{"verify"},
		core.LinkWeights{Shortener: 0.5, TLD: 0.3, Dash: 0.1, Substring: 0.2},
	)
	service := core.NewAnalyzerService(
		keywords,
		domains,
		nil,
		core.UnavailableClassifier{},
		nil,
		zap.NewNop(),
		core.ScoringConfig{
			KeywordWeight:           0.6,
			URLWeight:               0.25,
			MLBoost:                 0.2,
			LinkSuspiciousThreshold: 0.25,
			LinkReasonThreshold:     0.25,
			ScamThreshold:           0.7,
			SuspiciousThreshold:     0.35,
		},
		nil,
		5,
		5*time.Second,
	)

	lastAnalysis := cache.NewMemoryCache(time.Minute, 0, zap.NewNop())
	t.Cleanup(lastAnalysis.Stop)
	store := report.NewFileStore(filepath.Join(t.TempDir(), "reports.json"), 100, zap.NewNop())

	f := NewHTTPFrontend("127.0.0.1:0", service, lastAnalysis, store, zap.NewNop())
	server := httptest.NewServer(f.routes())
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	return resp
}

func TestHandleAnalyze(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/v1/analyze", map[string]string{
		"conversation_id": "chat-1",
		"text":            "URGENT: verify your bvn at http://bit.ly/x",
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var out struct {
		Analysis core.AnalysisRecord `json:"analysis"`
		Advice   string              `json:"advice"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if out.Analysis.Verdict != core.VerdictSuspicious {
		t.Errorf("Verdict = %v, want %v", out.Analysis.Verdict, core.VerdictSuspicious)
	}
	if len(out.Analysis.URLs) != 1 {
		t.Errorf("URLs = %v, want one entry", out.Analysis.URLs)
	}
	if out.Advice == "" {
		t.Error("Advice is empty")
	}
}

func TestHandleAnalyzeEmptyText(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/v1/analyze", map[string]string{"text": "   "})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestHandleReportRoundTrip(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/v1/analyze", map[string]string{
		"conversation_id": "chat-1",
		"text":            "abeg verify this http://bit.ly/x",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("analyze status = %d, want 200", resp.StatusCode)
	}

	resp = postJSON(t, server.URL+"/api/v1/report", map[string]string{"conversation_id": "chat-1"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("report status = %d, want 200", resp.StatusCode)
	}

	recent, err := http.Get(server.URL + "/api/v1/reports/recent?limit=5")
	if err != nil {
		t.Fatal(err)
	}
	defer recent.Body.Close()

	var out struct {
		Count   int           `json:"count"`
		Reports []core.Report `json:"reports"`
	}
	if err := json.NewDecoder(recent.Body).Decode(&out); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if out.Count != 1 || len(out.Reports) != 1 {
		t.Fatalf("recent reports = %+v, want exactly one", out)
	}
	if out.Reports[0].URLCount != 1 {
		t.Errorf("URLCount = %d, want 1", out.Reports[0].URLCount)
	}
}

func TestHandleReportWithoutAnalysis(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/v1/report", map[string]string{"conversation_id": "never-seen"})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestHandleHealth(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestHandleRecentReportsBadLimit(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/v1/reports/recent?limit=zero")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
