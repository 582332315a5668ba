package core

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ScoringConfig holds the fusion weights and verdict thresholds
type ScoringConfig struct {
	KeywordWeight           float64
	URLWeight               float64
	MLBoost                 float64
	LinkSuspiciousThreshold float64
	LinkReasonThreshold     float64
	ScamThreshold           float64
	SuspiciousThreshold     float64
	RiskLabels              []string
}

// AnalyzerService is the core message analysis pipeline. It is stateless
// and call-scoped: every Analyze call produces a fresh AnalysisRecord and
// retains no reference to it afterwards.
type AnalyzerService struct {
	keywords       *KeywordScorer
	domains        *DomainEvaluator
	expander       URLExpander
	classifier     TextClassifier
	whois          RegistrationLookup
	logger         *zap.Logger
	scoring        ScoringConfig
	trustedDomains []string
	maxExpandURLs  int
	messageTimeout time.Duration
}

// NewAnalyzerService creates a new analyzer service
func NewAnalyzerService(
	keywords *KeywordScorer,
	domains *DomainEvaluator,
	expander URLExpander,
	classifier TextClassifier,
	whois RegistrationLookup,
	logger *zap.Logger,
	scoring ScoringConfig,
	trustedDomains []string,
	maxExpandURLs int,
	messageTimeout time.Duration,
) *AnalyzerService {
	return &AnalyzerService{
		keywords:       keywords,
		domains:        domains,
		expander:       expander,
		classifier:     classifier,
		whois:          whois,
		logger:         logger,
		scoring:        scoring,
		trustedDomains: lowerAll(trustedDomains),
		maxExpandURLs:  maxExpandURLs,
		messageTimeout: messageTimeout,
	}
}

// Analyze runs the full pipeline over one message. It never returns an
// error: every component failure degrades to the documented soft value.
func (s *AnalyzerService) Analyze(ctx context.Context, text string) *AnalysisRecord {
	record := &AnalysisRecord{
		ID:        uuid.New(),
		Text:      text,
		Timestamp: time.Now().UTC(),
	}

	if s.messageTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.messageTimeout)
		defer cancel()
	}

	record.URLs = ExtractURLs(text)
	record.Keyword = s.keywords.Score(text)

	// ML classification runs alongside the URL work
	mlCh := make(chan MLResult, 1)
	go func() {
		mlCh <- s.classify(ctx, text)
	}()

	record.URLInfos = s.analyzeURLs(ctx, record.URLs)
	record.ML = <-mlCh

	s.fuse(record)

	s.logger.Debug("Analyzed message",
		zap.String("id", record.ID.String()),
		zap.Float64("final_score", record.FinalScore),
		zap.String("verdict", string(record.Verdict)),
		zap.Int("url_count", len(record.URLs)))

	return record
}

// classify invokes the classifier capability and converts every failure
// into the unavailable result
func (s *AnalyzerService) classify(ctx context.Context, text string) MLResult {
	if s.classifier == nil {
		return MLResult{Available: false}
	}
	result, err := s.classifier.Classify(ctx, text)
	if err != nil || result == nil {
		if err != nil {
			s.logger.Warn("Classifier failed, treating as unavailable", zap.Error(err))
		}
		return MLResult{Available: false}
	}
	return *result
}

// analyzeURLs expands and evaluates every URL concurrently. Expansion is
// capped at maxExpandURLs per message; URLs past the cap keep their raw
// form but still get heuristic evaluation.
func (s *AnalyzerService) analyzeURLs(ctx context.Context, urls []string) []DomainHeuristic {
	infos := make([]DomainHeuristic, len(urls))
	if len(urls) == 0 {
		return infos
	}

	var wg sync.WaitGroup
	for i, raw := range urls {
		wg.Add(1)
		go func(idx int, rawURL string) {
			defer wg.Done()
			infos[idx] = s.analyzeURL(ctx, rawURL, idx < s.maxExpandURLs)
		}(i, raw)
	}
	wg.Wait()

	return infos
}

// analyzeURL resolves and scores a single URL
func (s *AnalyzerService) analyzeURL(ctx context.Context, rawURL string, expand bool) DomainHeuristic {
	expanded := rawURL
	if expand && s.expander != nil {
		expanded = s.expander.Expand(ctx, rawURL)
	}

	domain := HostFromURL(expanded)
	heur := s.domains.Evaluate(domain)
	heur.OriginalURL = rawURL
	heur.ExpandedURL = expanded

	if s.isTrustedDomain(domain) {
		heur.LinkScore = 0
		return heur
	}

	if s.whois != nil && domain != "" {
		info, err := s.whois.Lookup(ctx, RegisteredDomain(domain))
		if err != nil || info == nil {
			info = &WhoisInfo{Success: false}
		}
		heur.Whois = info
	}

	return heur
}

// isTrustedDomain checks the domain against the configured trust list
func (s *AnalyzerService) isTrustedDomain(domain string) bool {
	if domain == "" {
		return false
	}
	lower := strings.ToLower(domain)
	for _, trusted := range s.trustedDomains {
		if lower == trusted || strings.HasSuffix(lower, "."+trusted) {
			return true
		}
	}
	return false
}

// fuse combines the component scores into the final verdict and builds the
// reason list. The final score is clamped to [0,1] before rounding so the
// documented invariant holds even when many URLs score as suspicious.
func (s *AnalyzerService) fuse(record *AnalysisRecord) {
	suspiciousCount := 0
	for _, info := range record.URLInfos {
		if info.LinkScore > s.scoring.LinkSuspiciousThreshold {
			suspiciousCount++
		}
	}

	final := record.Keyword.Score*s.scoring.KeywordWeight + float64(suspiciousCount)*s.scoring.URLWeight
	if record.ML.Available && record.ML.Label != "" && s.isRiskLabel(record.ML.Label) {
		final += s.scoring.MLBoost * record.ML.Score
	}
	final = math.Min(1.0, math.Max(0.0, final))
	record.FinalScore = math.Round(final*1000) / 1000

	reasons := []string{}
	if len(record.Keyword.Keywords) > 0 {
		reasons = append(reasons, "Contains suspicious keywords: "+strings.Join(record.Keyword.Keywords, ", "))
	}
	if len(record.Keyword.Pidgin) > 0 {
		reasons = append(reasons, "Contains informal/pidgin patterns: "+strings.Join(record.Keyword.Pidgin, ", "))
	}
	for _, info := range record.URLInfos {
		if info.LinkScore > s.scoring.LinkReasonThreshold {
			reasons = append(reasons, fmt.Sprintf("Suspicious link detected: %s -> %s", info.OriginalURL, info.ExpandedURL))
		}
	}
	if record.ML.Available && record.ML.Label != "" {
		reasons = append(reasons, fmt.Sprintf("ML classifier: %s (%.2f)", record.ML.Label, record.ML.Score))
	}
	record.Reasons = reasons

	record.Verdict = s.VerdictForScore(record.FinalScore)
}

// isRiskLabel checks the classifier label against the configured
// risk-indicating set, case-insensitively
func (s *AnalyzerService) isRiskLabel(label string) bool {
	upper := strings.ToUpper(label)
	for _, risk := range s.scoring.RiskLabels {
		if upper == strings.ToUpper(risk) {
			return true
		}
	}
	return false
}

// VerdictForScore maps a final score onto the three-tier verdict
func (s *AnalyzerService) VerdictForScore(score float64) Verdict {
	switch {
	case score >= s.scoring.ScamThreshold:
		return VerdictScam
	case score >= s.scoring.SuspiciousThreshold:
		return VerdictSuspicious
	default:
		return VerdictSafe
	}
}
