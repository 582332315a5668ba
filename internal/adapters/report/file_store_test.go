package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mikey/scam-triage/internal/core"
)

func testReport(score float64) *core.Report {
	return &core.Report{
		ID:         uuid.New(),
		Timestamp:  time.Now().UTC(),
		FinalScore: score,
		Verdict:    core.VerdictSuspicious,
		Keywords:   []string{"verify"},
		Pidgin:     []string{},
		URLCount:   1,
		Reasons:    []string{"Contains suspicious keywords: verify"},
	}
}

func TestFileStoreSaveAndRecent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports.json")
	store := NewFileStore(path, 100, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := store.Save(ctx, testReport(float64(i)/10)); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	reports, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("Recent returned %d reports, want 2", len(reports))
	}
	// newest last
	if reports[1].FinalScore != 0.2 {
		t.Errorf("last report score = %v, want 0.2", reports[1].FinalScore)
	}
}

func TestFileStoreCapsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports.json")
	store := NewFileStore(path, 5, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		if err := store.Save(ctx, testReport(float64(i))); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	reports, err := store.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(reports) != 5 {
		t.Fatalf("stored %d reports, want cap of 5", len(reports))
	}
	// oldest entries dropped first
	if reports[0].FinalScore != 3 {
		t.Errorf("oldest surviving score = %v, want 3", reports[0].FinalScore)
	}
}

func TestFileStoreTreatsCorruptFileAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewFileStore(path, 10, zap.NewNop())
	ctx := context.Background()

	if err := store.Save(ctx, testReport(0.5)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	reports, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("got %d reports, want 1 after recovering from corrupt file", len(reports))
	}
}

func TestFileStoreMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), fmt.Sprintf("never-written-%d.json", os.Getpid()))
	store := NewFileStore(path, 10, zap.NewNop())

	reports, err := store.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(reports) != 0 {
		t.Errorf("got %d reports, want 0 for a missing file", len(reports))
	}
}
