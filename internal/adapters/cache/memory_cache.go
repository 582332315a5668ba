package cache

import (
	"context"
	"sync"
	"time"

	"github.com/mikey/scam-triage/internal/core"
	"go.uber.org/zap"
)

type memoryEntry struct {
	record    *core.AnalysisRecord
	expiresAt time.Time
}

// MemoryCache is an in-memory implementation of the AnalysisCache interface
type MemoryCache struct {
	entries     map[string]memoryEntry
	mu          sync.RWMutex
	logger      *zap.Logger
	ttl         time.Duration
	cleanupFreq time.Duration
	stopCh      chan struct{}
}

// NewMemoryCache creates a new in-memory last-analysis cache
func NewMemoryCache(ttl, cleanupFreq time.Duration, logger *zap.Logger) *MemoryCache {
	cache := &MemoryCache{
		entries:     make(map[string]memoryEntry),
		logger:      logger,
		ttl:         ttl,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
	}

	// Start background cleanup unless disabled
	if cleanupFreq > 0 {
		go cache.startCleanupTask()
	}

	return cache
}

// Get retrieves the last analysis for a conversation
func (c *MemoryCache) Get(_ context.Context, conversationID string) (*core.AnalysisRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[conversationID]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.record, true
}

// Set stores the last analysis for a conversation, replacing any previous
// entry
func (c *MemoryCache) Set(_ context.Context, conversationID string, record *core.AnalysisRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[conversationID] = memoryEntry{
		record:    record,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Delete removes the entry for a conversation
func (c *MemoryCache) Delete(_ context.Context, conversationID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, conversationID)
	return nil
}

// cleanup removes expired entries
func (c *MemoryCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	expired := 0
	for id, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, id)
			expired++
		}
	}
	if expired > 0 {
		c.logger.Debug("Cleaned up expired cache entries", zap.Int("expired_count", expired))
	}
}

// startCleanupTask starts a background task to clean up expired entries
func (c *MemoryCache) startCleanupTask() {
	ticker := time.NewTicker(c.cleanupFreq)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stopCh:
			return
		}
	}
}

// Stop stops the background cleanup task
func (c *MemoryCache) Stop() {
	close(c.stopCh)
}
