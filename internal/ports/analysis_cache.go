package ports

import (
	"context"

	"github.com/mikey/scam-triage/internal/core"
)

// AnalysisCache holds the most recent analysis per conversation so a
// follow-up report action can reference it. Last writer wins; entries
// expire after the configured TTL. The cache belongs to the front end, not
// the pipeline.
type AnalysisCache interface {
	// Get retrieves the last analysis for a conversation
	Get(ctx context.Context, conversationID string) (*core.AnalysisRecord, bool)

	// Set stores the last analysis for a conversation
	Set(ctx context.Context, conversationID string, record *core.AnalysisRecord)

	// Delete removes the entry for a conversation
	Delete(ctx context.Context, conversationID string) error
}
