// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger records document conversions in a SQLite database. The
// workspace uses it to skip documents untouched since their last
// conversion, and the CLI reads it back as conversion history.
package ledger

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/mathconv/pkg/types"
)

const (
	dbFile       = "ledger.db"
	defaultLimit = 50
)

// Ledger manages the conversion ledger database.
type Ledger struct {
	db  *sql.DB
	dir string
}

// Open opens or creates the ledger database at cfg.Dir/ledger.db and
// creates the schema if it does not exist.
func Open(cfg types.LedgerConfig) (*Ledger, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	l := &Ledger{db: db, dir: cfg.Dir}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return l, nil
}

// Close releases the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL,
			status TEXT NOT NULL,
			mod_time TEXT,
			input_hash TEXT,
			output_hash TEXT,
			converted_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_path ON conversions(path)`,
		`CREATE TABLE IF NOT EXISTS documents (
			path TEXT PRIMARY KEY,
			mod_time TEXT NOT NULL,
			output_hash TEXT
		)`,
	}
	for _, stmt := range statements {
		if _, err := l.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Hash returns the hex SHA-256 of content, the form stored in records.
func Hash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// Record appends rec to the history. Converted and unchanged records also
// update the document's last known modification time, which LastModTime
// reports.
func (l *Ledger) Record(ctx context.Context, rec types.ConversionRecord) error {
	if rec.ConvertedAt.IsZero() {
		rec.ConvertedAt = time.Now()
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO conversions (path, status, mod_time, input_hash, output_hash, converted_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.Path, string(rec.Status), formatTime(rec.ModTime),
		rec.InputHash, rec.OutputHash, formatTime(rec.ConvertedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting record for %s: %w", rec.Path, err)
	}

	if rec.Status == types.ConversionDone || rec.Status == types.ConversionUnchanged {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO documents (path, mod_time, output_hash) VALUES (?, ?, ?)
			 ON CONFLICT(path) DO UPDATE SET mod_time=excluded.mod_time, output_hash=excluded.output_hash`,
			rec.Path, formatTime(rec.ModTime), rec.OutputHash,
		)
		if err != nil {
			return fmt.Errorf("updating document state for %s: %w", rec.Path, err)
		}
	}

	return tx.Commit()
}

// LastModTime returns the modification time recorded for path after its
// last successful conversion. ok is false when path has never been
// converted.
func (l *Ledger) LastModTime(ctx context.Context, path string) (t time.Time, ok bool, err error) {
	var raw string
	err = l.db.QueryRowContext(ctx,
		`SELECT mod_time FROM documents WHERE path = ?`, path,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("looking up %s: %w", path, err)
	}
	t, err = parseTime(raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parsing mod time for %s: %w", path, err)
	}
	return t, true, nil
}

// HistoryOptions filters History queries.
type HistoryOptions struct {
	// Path restricts results to one document.
	Path string

	// Status restricts results to one conversion status.
	Status types.ConversionStatus

	// Limit caps the number of records. Zero uses the default (50);
	// negative means no limit.
	Limit int
}

// History returns ledger records, newest first.
func (l *Ledger) History(ctx context.Context, opts HistoryOptions) ([]types.ConversionRecord, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT path, status, mod_time, input_hash, output_hash, converted_at
		FROM conversions WHERE 1=1`)
	if opts.Path != "" {
		qb.WriteString(` AND path = ?`)
		args = append(args, opts.Path)
	}
	if opts.Status != "" {
		qb.WriteString(` AND status = ?`)
		args = append(args, string(opts.Status))
	}
	qb.WriteString(` ORDER BY rowid DESC`)

	limit := opts.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	if limit > 0 {
		qb.WriteString(` LIMIT ?`)
		args = append(args, limit)
	}

	rows, err := l.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var records []types.ConversionRecord
	for rows.Next() {
		var (
			rec                   types.ConversionRecord
			status                string
			modTime, convertedAt  sql.NullString
			inputHash, outputHash sql.NullString
		)
		if err := rows.Scan(&rec.Path, &status, &modTime, &inputHash, &outputHash, &convertedAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		rec.Status = types.ConversionStatus(status)
		rec.InputHash = inputHash.String
		rec.OutputHash = outputHash.String
		rec.ModTime, _ = parseTime(modTime.String)
		rec.ConvertedAt, _ = parseTime(convertedAt.String)
		records = append(records, rec)
	}
	return records, rows.Err()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}
