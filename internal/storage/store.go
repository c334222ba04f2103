package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

// IndexEntry is one catalog row: a day with a materialized trip summary.
type IndexEntry struct {
	Date           string `json:"date"` // YYYY-MM-DD
	Project        string `json:"project"`
	TotalDistanceM int    `json:"total_distance_m"`
	RecordCount    int    `json:"record_count"`
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) InitSchema(ctx context.Context) error {
	schema := `
CREATE TABLE IF NOT EXISTS day_summaries (
	date TEXT PRIMARY KEY,
	project TEXT NOT NULL,
	total_distance_m INTEGER NOT NULL,
	record_count INTEGER NOT NULL,
	document BLOB NOT NULL,
	built_at INTEGER NOT NULL
);
`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// UpsertSummary stores a day's summary document and its catalog row,
// overwriting any previous build of the same date.
func (s *Store) UpsertSummary(ctx context.Context, entry IndexEntry, document []byte) error {
	if entry.Date == "" {
		return fmt.Errorf("summary date required")
	}
	if len(document) == 0 {
		return fmt.Errorf("summary document required")
	}

	_, err := s.db.ExecContext(ctx, `
INSERT INTO day_summaries (date, project, total_distance_m, record_count, document, built_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(date) DO UPDATE SET
	project = excluded.project,
	total_distance_m = excluded.total_distance_m,
	record_count = excluded.record_count,
	document = excluded.document,
	built_at = excluded.built_at
`, entry.Date, entry.Project, entry.TotalDistanceM, entry.RecordCount, document, time.Now().Unix())
	return err
}

// GetSummary returns the stored summary document for a date, verbatim.
// Returns sql.ErrNoRows when the date has no build.
func (s *Store) GetSummary(ctx context.Context, date string) ([]byte, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT document
FROM day_summaries
WHERE date = ?
`, date)
	var document []byte
	if err := row.Scan(&document); err != nil {
		return nil, err
	}
	return document, nil
}

// ListIndex returns the catalog, newest date first. Dates are YYYY-MM-DD,
// so string ordering is chronological.
func (s *Store) ListIndex(ctx context.Context) ([]IndexEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT date, project, total_distance_m, record_count
FROM day_summaries
ORDER BY date DESC
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []IndexEntry
	for rows.Next() {
		var e IndexEntry
		if err := rows.Scan(&e.Date, &e.Project, &e.TotalDistanceM, &e.RecordCount); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// summaryMeta is the slice of the summary document the indexer needs.
type summaryMeta struct {
	Project        string            `json:"project"`
	TotalDistanceM int               `json:"total_distance_m"`
	Points         []json.RawMessage `json:"points"`
}

// RebuildIndex re-derives every catalog row from its stored document, so
// the catalog agrees with the artifacts after schema or pipeline changes.
func (s *Store) RebuildIndex(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, `
SELECT date, document
FROM day_summaries
`)
	if err != nil {
		return err
	}

	type update struct {
		date string
		meta summaryMeta
	}
	var updates []update
	for rows.Next() {
		var date string
		var document []byte
		if err := rows.Scan(&date, &document); err != nil {
			rows.Close()
			return err
		}
		var meta summaryMeta
		if err := json.Unmarshal(document, &meta); err != nil {
			rows.Close()
			return fmt.Errorf("summary %s: %w", date, err)
		}
		updates = append(updates, update{date: date, meta: meta})
	}
	if err := rows.Close(); err != nil {
		return err
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, u := range updates {
		if _, err := s.db.ExecContext(ctx, `
UPDATE day_summaries
SET project = ?, total_distance_m = ?, record_count = ?
WHERE date = ?
`, u.meta.Project, u.meta.TotalDistanceM, len(u.meta.Points), u.date); err != nil {
			return err
		}
	}
	return nil
}
