// Package report provides append-only persistence for analysis reports.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/mikey/scam-triage/internal/core"
	"go.uber.org/zap"
)

// FileStore keeps reports in a single JSON array on disk, capped at
// maxEntries with the oldest entries dropped first.
type FileStore struct {
	path       string
	maxEntries int
	mu         sync.Mutex
	logger     *zap.Logger
}

// NewFileStore creates a new flat-file report store
func NewFileStore(path string, maxEntries int, logger *zap.Logger) *FileStore {
	return &FileStore{
		path:       path,
		maxEntries: maxEntries,
		logger:     logger,
	}
}

// Save appends one report
func (s *FileStore) Save(ctx context.Context, report *core.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reports := s.load()
	reports = append(reports, *report)
	if s.maxEntries > 0 && len(reports) > s.maxEntries {
		reports = reports[len(reports)-s.maxEntries:]
	}

	data, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode reports: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write reports file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace reports file: %w", err)
	}
	return nil
}

// Recent returns up to n of the most recently saved reports, newest last
func (s *FileStore) Recent(ctx context.Context, n int) ([]core.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reports := s.load()
	if n > 0 && len(reports) > n {
		reports = reports[len(reports)-n:]
	}
	return reports, nil
}

// load reads the current reports array, treating a missing or corrupt file
// as empty
func (s *FileStore) load() []core.Report {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("Failed to read reports file", zap.Error(err))
		}
		return []core.Report{}
	}

	var reports []core.Report
	if err := json.Unmarshal(data, &reports); err != nil {
		s.logger.Warn("Reports file is corrupt, starting fresh", zap.Error(err))
		return []core.Report{}
	}
	return reports
}
