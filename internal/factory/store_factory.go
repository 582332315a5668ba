package factory

import (
	"fmt"

	"github.com/mikey/scam-triage/internal/adapters/report"
	"github.com/mikey/scam-triage/internal/config"
	"github.com/mikey/scam-triage/internal/ports"
	"go.uber.org/zap"
)

// StoreFactory creates report stores
type StoreFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewStoreFactory creates a new report store factory
func NewStoreFactory(cfg *config.Config, logger *zap.Logger) *StoreFactory {
	return &StoreFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateReportStore creates a new report store based on the configuration
func (f *StoreFactory) CreateReportStore() (ports.ReportStore, error) {
	reportsCfg := f.cfg.GetReports()

	switch reportsCfg.Type {
	case "file":
		return report.NewFileStore(reportsCfg.FilePath, reportsCfg.MaxEntries, f.logger), nil
	case "sqlite":
		return report.NewSQLiteStore(reportsCfg.SQLitePath, f.logger)
	case "mysql":
		return report.NewMySQLStore(reportsCfg.MySQLDSN, f.logger)
	default:
		return nil, fmt.Errorf("unsupported report store type: %s", reportsCfg.Type)
	}
}
