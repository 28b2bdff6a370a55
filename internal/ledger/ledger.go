// Package ledger keeps a SQLite record of every batch written, so an input
// that was already processed can be recognized by content.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/KaramelBytes/waterdata-cli/internal/utils"
)

var schema = []string{`CREATE TABLE IF NOT EXISTS batches (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id       TEXT NOT NULL,
	input_file   TEXT NOT NULL,
	format       TEXT NOT NULL,
	batch_date   TEXT NOT NULL,
	digest       TEXT NOT NULL,
	records      INTEGER NOT NULL,
	warnings     INTEGER NOT NULL,
	dropped      INTEGER NOT NULL,
	output_file  TEXT NOT NULL,
	processed_at TEXT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS batches_digest ON batches(digest)`,
}

// Batch is one ledger row.
type Batch struct {
	RunID       string    `csv:"run_id"`
	InputFile   string    `csv:"input_file"`
	Format      string    `csv:"format"`
	BatchDate   string    `csv:"batch_date"`
	Digest      string    `csv:"digest"`
	Records     int       `csv:"records"`
	Warnings    int       `csv:"warnings"`
	Dropped     int       `csv:"dropped"`
	OutputFile  string    `csv:"output_file"`
	ProcessedAt time.Time `csv:"processed_at"`
}

// Ledger wraps the database handle.
type Ledger struct {
	db *sql.DB
}

// Open opens or creates the ledger at path and applies the schema.
func Open(ctx context.Context, path string) (*Ledger, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("ledger: path must not be empty")
	}
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("ledger: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("ledger: open: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ledger: ping: %w", err)
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("ledger: migrate: %w", err)
		}
	}
	return &Ledger{db: db}, nil
}

// Close releases the database.
func (l *Ledger) Close() error { return l.db.Close() }

// Record appends a batch.
func (l *Ledger) Record(ctx context.Context, b Batch) error {
	if b.ProcessedAt.IsZero() {
		b.ProcessedAt = time.Now()
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO batches (run_id, input_file, format, batch_date, digest, records, warnings, dropped, output_file, processed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.RunID, b.InputFile, b.Format, b.BatchDate, b.Digest, b.Records, b.Warnings, b.Dropped,
		b.OutputFile, b.ProcessedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("ledger: insert: %w", err)
	}
	return nil
}

// Seen returns the most recent batch written from content with digest.
func (l *Ledger) Seen(ctx context.Context, digest string) (Batch, bool, error) {
	rows, err := l.query(ctx, `WHERE digest = ? ORDER BY id DESC LIMIT 1`, digest)
	if err != nil || len(rows) == 0 {
		return Batch{}, false, err
	}
	return rows[0], true, nil
}

// List returns the newest batches first. limit <= 0 returns all.
func (l *Ledger) List(ctx context.Context, limit int) ([]Batch, error) {
	if limit <= 0 {
		return l.query(ctx, `ORDER BY id DESC`)
	}
	return l.query(ctx, `ORDER BY id DESC LIMIT ?`, limit)
}

func (l *Ledger) query(ctx context.Context, tail string, args ...any) ([]Batch, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT run_id, input_file, format, batch_date, digest, records, warnings, dropped, output_file, processed_at
		 FROM batches `+tail, args...)
	if err != nil {
		return nil, fmt.Errorf("ledger: query: %w", err)
	}
	defer rows.Close()
	var out []Batch
	for rows.Next() {
		var b Batch
		var at string
		if err := rows.Scan(&b.RunID, &b.InputFile, &b.Format, &b.BatchDate, &b.Digest,
			&b.Records, &b.Warnings, &b.Dropped, &b.OutputFile, &at); err != nil {
			return nil, fmt.Errorf("ledger: scan: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, at); err == nil {
			b.ProcessedAt = t
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
