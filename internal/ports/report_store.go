package ports

import (
	"context"

	"github.com/mikey/scam-triage/internal/core"
)

// ReportStore defines the interface for append-only report persistence
type ReportStore interface {
	// Save appends one report
	Save(ctx context.Context, report *core.Report) error

	// Recent returns up to n of the most recently saved reports,
	// newest last
	Recent(ctx context.Context, n int) ([]core.Report, error)
}
