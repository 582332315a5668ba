package factory

import (
	"fmt"

	"github.com/mikey/scam-triage/internal/adapters/frontend"
	"github.com/mikey/scam-triage/internal/config"
	"github.com/mikey/scam-triage/internal/core"
	"github.com/mikey/scam-triage/internal/ports"
	"go.uber.org/zap"
)

// FrontendFactory creates message front ends
type FrontendFactory struct {
	cfg     *config.Config
	logger  *zap.Logger
	service *core.AnalyzerService
	cache   ports.AnalysisCache
	store   ports.ReportStore
}

// NewFrontendFactory creates a new front-end factory
func NewFrontendFactory(
	cfg *config.Config,
	logger *zap.Logger,
	service *core.AnalyzerService,
	cache ports.AnalysisCache,
	store ports.ReportStore,
) *FrontendFactory {
	return &FrontendFactory{
		cfg:     cfg,
		logger:  logger,
		service: service,
		cache:   cache,
		store:   store,
	}
}

// CreateMessageFrontend creates a new message front end based on the
// configuration
func (f *FrontendFactory) CreateMessageFrontend() (ports.MessageFrontend, error) {
	serverCfg := f.cfg.GetServer()

	switch serverCfg.Frontend {
	case "http":
		return frontend.NewHTTPFrontend(
			serverCfg.ListenAddress,
			f.service,
			f.cache,
			f.store,
			f.logger,
		), nil
	case "cli":
		return frontend.NewCLIFrontend(f.service, f.cache, f.store, f.logger, false), nil
	default:
		return nil, fmt.Errorf("unsupported frontend type: %s", serverCfg.Frontend)
	}
}
