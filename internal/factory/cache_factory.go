package factory

import (
	"fmt"

	"github.com/mikey/scam-triage/internal/adapters/cache"
	"github.com/mikey/scam-triage/internal/config"
	"github.com/mikey/scam-triage/internal/ports"
	"go.uber.org/zap"
)

// CacheFactory creates last-analysis caches
type CacheFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewCacheFactory creates a new cache factory
func NewCacheFactory(cfg *config.Config, logger *zap.Logger) *CacheFactory {
	return &CacheFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateAnalysisCache creates a new last-analysis cache based on the
// configuration
func (f *CacheFactory) CreateAnalysisCache() (ports.AnalysisCache, error) {
	cacheCfg, err := f.cfg.GetCache()
	if err != nil {
		return nil, fmt.Errorf("invalid cache configuration: %w", err)
	}

	switch cacheCfg.Type {
	case "memory":
		return cache.NewMemoryCache(cacheCfg.TTL, cacheCfg.CleanupFreq, f.logger), nil
	case "redis":
		return cache.NewRedisCache(
			cacheCfg.RedisAddr,
			cacheCfg.RedisPassword,
			cacheCfg.RedisDB,
			cacheCfg.TTL,
			f.logger,
		), nil
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cacheCfg.Type)
	}
}
