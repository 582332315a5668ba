package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/scam-triage/internal/adapters/expander"
	"github.com/mikey/scam-triage/internal/config"
	"github.com/mikey/scam-triage/internal/core"
	"github.com/mikey/scam-triage/internal/factory"
	"github.com/mikey/scam-triage/internal/logging"
	"github.com/mikey/scam-triage/internal/ports"
	"github.com/mikey/scam-triage/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewMLFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewWhoisFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewFrontendFactory); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register ML classifier capability
	if err := container.Provide(func(f *factory.MLFactory) (core.TextClassifier, error) {
		return f.CreateClassifier()
	}); err != nil {
		return nil, err
	}

	// Register WHOIS capability
	if err := container.Provide(func(f *factory.WhoisFactory) (core.RegistrationLookup, error) {
		return f.CreateRegistrationLookup()
	}); err != nil {
		return nil, err
	}

	// Register report store
	if err := container.Provide(func(f *factory.StoreFactory) (ports.ReportStore, error) {
		return f.CreateReportStore()
	}); err != nil {
		return nil, err
	}

	// Register last-analysis cache
	if err := container.Provide(func(f *factory.CacheFactory) (ports.AnalysisCache, error) {
		return f.CreateAnalysisCache()
	}); err != nil {
		return nil, err
	}

	// Register URL expander
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) (core.URLExpander, error) {
		expanderCfg, err := cfg.GetExpander()
		if err != nil {
			return nil, err
		}
		return expander.NewHTTPExpander(expanderCfg.Timeout, logger), nil
	}); err != nil {
		return nil, err
	}

	// Register analyzer service
	if err := container.Provide(NewAnalyzerService); err != nil {
		return nil, err
	}

	// Register message front end
	if err := container.Provide(func(f *factory.FrontendFactory) (ports.MessageFrontend, error) {
		return f.CreateMessageFrontend()
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// NewAnalyzerService assembles the core pipeline from configuration and
// the capability adapters
func NewAnalyzerService(
	cfg *config.Config,
	urlExpander core.URLExpander,
	classifier core.TextClassifier,
	whoisLookup core.RegistrationLookup,
	logger *zap.Logger,
) (*core.AnalyzerService, error) {
	heuristics := cfg.GetHeuristics()
	scoring := cfg.GetScoring()
	mlCfg := cfg.GetML()
	expanderCfg, err := cfg.GetExpander()
	if err != nil {
		return nil, err
	}

	keywords := core.NewKeywordScorer(
		heuristics.FormalKeywords,
		heuristics.PidginPhrases,
		scoring.FormalWeight,
		scoring.PidginWeight,
	)
	domains := core.NewDomainEvaluator(
		heuristics.SuspiciousTLDs,
		heuristics.ShortenerHosts,
		heuristics.SuspiciousSubstrings,
		core.LinkWeights{
			Shortener: scoring.ShortenerWeight,
			TLD:       scoring.TLDWeight,
			Dash:      scoring.DashWeight,
			Substring: scoring.SubstringWeight,
		},
	)

	return core.NewAnalyzerService(
		keywords,
		domains,
		urlExpander,
		classifier,
		whoisLookup,
		logger,
		core.ScoringConfig{
			KeywordWeight:           scoring.KeywordWeight,
			URLWeight:               scoring.URLWeight,
			MLBoost:                 scoring.MLBoost,
			LinkSuspiciousThreshold: scoring.LinkSuspiciousThreshold,
			LinkReasonThreshold:     scoring.LinkReasonThreshold,
			ScamThreshold:           scoring.ScamThreshold,
			SuspiciousThreshold:     scoring.SuspiciousThreshold,
			RiskLabels:              mlCfg.RiskLabels,
		},
		heuristics.TrustedDomains,
		expanderCfg.MaxURLs,
		expanderCfg.MessageDeadline,
	), nil
}
