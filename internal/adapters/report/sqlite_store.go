package report

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/mikey/scam-triage/internal/core"
	"go.uber.org/zap"
)

// SQLiteStore is a SQLite implementation of the ReportStore interface
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore creates a new SQLite report store
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Create table if it doesn't exist
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS scam_reports (
			id TEXT PRIMARY KEY,
			created_at TIMESTAMP,
			final_score REAL,
			verdict TEXT,
			keywords TEXT,
			pidgin TEXT,
			url_count INTEGER,
			reasons TEXT
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_created_at ON scam_reports(created_at)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger,
	}, nil
}

// Save appends one report
func (s *SQLiteStore) Save(ctx context.Context, report *core.Report) error {
	keywords, pidgin, reasons, err := encodeLists(report)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO scam_reports
			(id, created_at, final_score, verdict, keywords, pidgin, url_count, reasons)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, report.ID.String(), report.Timestamp.Format(time.RFC3339), report.FinalScore,
		string(report.Verdict), keywords, pidgin, report.URLCount, reasons)

	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}
	return nil
}

// Recent returns up to n of the most recently saved reports, newest last
func (s *SQLiteStore) Recent(ctx context.Context, n int) ([]core.Report, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, final_score, verdict, keywords, pidgin, url_count, reasons
		FROM scam_reports
		ORDER BY created_at DESC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	reports, err := scanReports(rows)
	if err != nil {
		return nil, err
	}

	// Rows come back newest first; callers expect newest last
	for i, j := 0, len(reports)-1; i < j; i, j = i+1, j-1 {
		reports[i], reports[j] = reports[j], reports[i]
	}
	return reports, nil
}

// Stop closes the database connection
func (s *SQLiteStore) Stop() {
	if err := s.db.Close(); err != nil {
		s.logger.Error("Failed to close SQLite database", zap.Error(err))
	}
}

func encodeLists(report *core.Report) (keywords, pidgin, reasons string, err error) {
	kw, err := json.Marshal(report.Keywords)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to encode keywords: %w", err)
	}
	pg, err := json.Marshal(report.Pidgin)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to encode pidgin terms: %w", err)
	}
	rs, err := json.Marshal(report.Reasons)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to encode reasons: %w", err)
	}
	return string(kw), string(pg), string(rs), nil
}

func scanReports(rows *sql.Rows) ([]core.Report, error) {
	var reports []core.Report
	for rows.Next() {
		var (
			id, createdAt, verdict    string
			keywords, pidgin, reasons string
			report                    core.Report
		)
		if err := rows.Scan(&id, &createdAt, &report.FinalScore, &verdict,
			&keywords, &pidgin, &report.URLCount, &reasons); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}

		parsedID, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("failed to parse report id: %w", err)
		}
		report.ID = parsedID

		ts, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse report timestamp: %w", err)
		}
		report.Timestamp = ts
		report.Verdict = core.Verdict(verdict)

		if err := json.Unmarshal([]byte(keywords), &report.Keywords); err != nil {
			return nil, fmt.Errorf("failed to decode keywords: %w", err)
		}
		if err := json.Unmarshal([]byte(pidgin), &report.Pidgin); err != nil {
			return nil, fmt.Errorf("failed to decode pidgin terms: %w", err)
		}
		if err := json.Unmarshal([]byte(reasons), &report.Reasons); err != nil {
			return nil, fmt.Errorf("failed to decode reasons: %w", err)
		}

		reports = append(reports, report)
	}
	return reports, rows.Err()
}
