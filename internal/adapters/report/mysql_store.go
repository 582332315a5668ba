package report

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/mikey/scam-triage/internal/core"
	"go.uber.org/zap"
)

// MySQLStore is a MySQL implementation of the ReportStore interface
type MySQLStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMySQLStore creates a new MySQL report store
func NewMySQLStore(dsn string, logger *zap.Logger) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS scam_reports (
			id VARCHAR(36) PRIMARY KEY,
			created_at VARCHAR(35),
			final_score DOUBLE,
			verdict VARCHAR(16),
			keywords TEXT,
			pidgin TEXT,
			url_count INT,
			reasons TEXT,
			INDEX idx_created_at (created_at)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &MySQLStore{
		db:     db,
		logger: logger,
	}, nil
}

// Save appends one report
func (s *MySQLStore) Save(ctx context.Context, report *core.Report) error {
	keywords, pidgin, reasons, err := encodeLists(report)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		REPLACE INTO scam_reports
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
func (s *MySQLStore) Recent(ctx context.Context, n int) ([]core.Report, error) {
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

	for i, j := 0, len(reports)-1; i < j; i, j = i+1, j-1 {
		reports[i], reports[j] = reports[j], reports[i]
	}
	return reports, nil
}

// Stop closes the database connection
func (s *MySQLStore) Stop() {
	if err := s.db.Close(); err != nil {
		s.logger.Error("Failed to close MySQL connection", zap.Error(err))
	}
}
