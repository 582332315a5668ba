package factory

import (
	"fmt"

	"github.com/mikey/scam-triage/internal/adapters/whois"
	"github.com/mikey/scam-triage/internal/config"
	"github.com/mikey/scam-triage/internal/core"
	"go.uber.org/zap"
)

// WhoisFactory creates registration lookups
type WhoisFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewWhoisFactory creates a new WHOIS factory
func NewWhoisFactory(cfg *config.Config, logger *zap.Logger) *WhoisFactory {
	return &WhoisFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateRegistrationLookup creates the registration lookup capability, or
// its unavailable variant when WHOIS is disabled
func (f *WhoisFactory) CreateRegistrationLookup() (core.RegistrationLookup, error) {
	whoisCfg, err := f.cfg.GetWhois()
	if err != nil {
		return nil, fmt.Errorf("invalid whois configuration: %w", err)
	}

	if !whoisCfg.Enabled {
		return core.UnavailableLookup{}, nil
	}
	return whois.NewLookup(whoisCfg.Timeout, f.logger), nil
}
