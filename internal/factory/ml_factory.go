package factory

import (
	"fmt"

	"github.com/mikey/scam-triage/internal/adapters/bedrock"
	"github.com/mikey/scam-triage/internal/adapters/gemini"
	"github.com/mikey/scam-triage/internal/adapters/openai"
	"github.com/mikey/scam-triage/internal/config"
	"github.com/mikey/scam-triage/internal/core"
	"github.com/mikey/scam-triage/internal/utils"
	"go.uber.org/zap"
)

// MLFactory creates text classifiers
type MLFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewMLFactory creates a new ML factory
func NewMLFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *MLFactory {
	return &MLFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateClassifier creates a new text classifier based on the
// configuration. An absent provider yields the unavailable variant so the
// pipeline runs without ML scoring.
func (f *MLFactory) CreateClassifier() (core.TextClassifier, error) {
	mlCfg := f.cfg.GetML()

	switch mlCfg.Provider {
	case "openai":
		return openai.NewFactory(f.cfg, f.logger, f.textProcessor).CreateClassifier()
	case "gemini":
		return gemini.NewFactory(f.cfg, f.logger, f.textProcessor).CreateClassifier()
	case "bedrock":
		return bedrock.NewFactory(f.cfg, f.logger, f.textProcessor).CreateClassifier()
	case "", "none":
		f.logger.Info("ML classification disabled")
		return core.UnavailableClassifier{}, nil
	default:
		return nil, fmt.Errorf("unsupported ML provider: %s", mlCfg.Provider)
	}
}
