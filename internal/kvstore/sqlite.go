// Package kvstore persists reports, parked retry submissions, and rate
// counters in a single SQLite table of TTL-stamped keys.
package kvstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/leomayn/planner/internal/planner"
)

const (
	ReportTTL  = 30 * 24 * time.Hour
	RetryTTL   = 24 * time.Hour
	CounterTTL = 24 * time.Hour

	reportKeyPrefix = "planner:report:"
	retryKeyPrefix  = "planner:retry:"
)

// ErrNotFound is returned when a key is missing or its TTL has lapsed.
var ErrNotFound = errors.New("kvstore: not found")

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS kv_entries (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	expires_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS kv_counters (
	key        TEXT PRIMARY KEY,
	value      INTEGER NOT NULL DEFAULT 0,
	expires_at TEXT NOT NULL
);
`

type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

func Open(dbPath string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func timeToString(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func (s *Store) put(ctx context.Context, key string, value any, ttl time.Duration) error {
	blob, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO kv_entries (key, value, expires_at) VALUES (?, ?, ?)`,
		key, string(blob), timeToString(s.now().Add(ttl)))
	return err
}

func (s *Store) get(ctx context.Context, key string, out any) error {
	var value, expiresAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT value, expires_at FROM kv_entries WHERE key = ?`, key).Scan(&value, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	exp, err := time.Parse(time.RFC3339Nano, expiresAt)
	if err != nil || !s.now().Before(exp) {
		// Expired rows read as missing; Purge reclaims them later.
		return ErrNotFound
	}
	return json.Unmarshal([]byte(value), out)
}

func (s *Store) PutReport(ctx context.Context, id string, rec planner.ReportRecord) error {
	return s.put(ctx, reportKeyPrefix+id, rec, ReportTTL)
}

func (s *Store) GetReport(ctx context.Context, id string) (planner.ReportRecord, error) {
	var rec planner.ReportRecord
	err := s.get(ctx, reportKeyPrefix+id, &rec)
	return rec, err
}

func (s *Store) PutRetry(ctx context.Context, token string, rec planner.RetryRecord) error {
	return s.put(ctx, retryKeyPrefix+token, rec, RetryTTL)
}

func (s *Store) GetRetry(ctx context.Context, token string) (planner.RetryRecord, error) {
	var rec planner.RetryRecord
	err := s.get(ctx, retryKeyPrefix+token, &rec)
	return rec, err
}

// GetCounter returns the current value for a counter key, treating missing
// and expired counters as zero.
func (s *Store) GetCounter(ctx context.Context, key string) (int, error) {
	var value int
	var expiresAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT value, expires_at FROM kv_counters WHERE key = ?`, key).Scan(&value, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	exp, err := time.Parse(time.RFC3339Nano, expiresAt)
	if err != nil || !s.now().Before(exp) {
		return 0, nil
	}
	return value, nil
}

// IncrBoth bumps two counter keys in one transaction so a submission never
// consumes only half its budget. Expired counters restart at one.
func (s *Store) IncrBoth(ctx context.Context, keys [2]string, ttl time.Duration) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	nowStr := timeToString(s.now())
	expStr := timeToString(s.now().Add(ttl))
	for _, key := range keys {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO kv_counters (key, value, expires_at) VALUES (?, 1, ?)
			ON CONFLICT(key) DO UPDATE SET
				value      = CASE WHEN kv_counters.expires_at <= ? THEN 1 ELSE kv_counters.value + 1 END,
				expires_at = CASE WHEN kv_counters.expires_at <= ? THEN excluded.expires_at ELSE kv_counters.expires_at END`,
			key, expStr, nowStr, nowStr)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Purge deletes rows whose TTL has lapsed. Called opportunistically; reads
// already treat expired rows as missing.
func (s *Store) Purge(ctx context.Context) error {
	nowStr := timeToString(s.now())
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE expires_at <= ?`, nowStr); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv_counters WHERE expires_at <= ?`, nowStr)
	return err
}

// Ensure the store satisfies the orchestrator's persistence interface.
var _ planner.ReportStore = (*Store)(nil)
