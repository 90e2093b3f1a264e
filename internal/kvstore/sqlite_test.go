package kvstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/leomayn/planner/internal/planner"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "planner.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testRecord() planner.ReportRecord {
	return planner.ReportRecord{
		Report: planner.GeneratedReport{
			ID:               "r1",
			SituationSummary: "summary",
			GeneratedAt:      "2026-08-31T10:00:00Z",
		},
		Email:     "jane@acme.co.uk",
		Company:   "Acme Advisory",
		Name:      "Jane Doe",
		CreatedAt: time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
	}
}

func TestReportRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.PutReport(ctx, "r1", testRecord()); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetReport(ctx, "r1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Company != "Acme Advisory" || got.Report.SituationSummary != "summary" {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	if _, err := s.GetReport(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing report got %v, want ErrNotFound", err)
	}
}

func TestRetryRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec := planner.RetryRecord{Status: "pending", CreatedAt: time.Now().UTC()}
	if err := s.PutRetry(ctx, "tok", rec); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetRetry(ctx, "tok")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != "pending" {
		t.Fatalf("status got %q", got.Status)
	}
}

func TestExpiredEntriesReadAsMissing(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Now()
	s.now = func() time.Time { return base }
	if err := s.PutReport(ctx, "r1", testRecord()); err != nil {
		t.Fatal(err)
	}

	s.now = func() time.Time { return base.Add(ReportTTL + time.Minute) }
	if _, err := s.GetReport(ctx, "r1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expired report got %v, want ErrNotFound", err)
	}
}

func TestCounters(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if got, err := s.GetCounter(ctx, "k1"); err != nil || got != 0 {
		t.Fatalf("missing counter got %d, %v", got, err)
	}

	keys := [2]string{"k1", "k2"}
	for i := 0; i < 3; i++ {
		if err := s.IncrBoth(ctx, keys, CounterTTL); err != nil {
			t.Fatal(err)
		}
	}
	for _, k := range keys {
		if got, _ := s.GetCounter(ctx, k); got != 3 {
			t.Fatalf("%s got %d, want 3", k, got)
		}
	}
}

func TestExpiredCounterRestartsAtOne(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Now()
	s.now = func() time.Time { return base }
	if err := s.IncrBoth(ctx, [2]string{"a", "b"}, CounterTTL); err != nil {
		t.Fatal(err)
	}
	if err := s.IncrBoth(ctx, [2]string{"a", "b"}, CounterTTL); err != nil {
		t.Fatal(err)
	}

	s.now = func() time.Time { return base.Add(CounterTTL + time.Minute) }
	if got, _ := s.GetCounter(ctx, "a"); got != 0 {
		t.Fatalf("expired counter reads %d, want 0", got)
	}
	if err := s.IncrBoth(ctx, [2]string{"a", "b"}, CounterTTL); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.GetCounter(ctx, "a"); got != 1 {
		t.Fatalf("restarted counter got %d, want 1", got)
	}
}

func TestPurge(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Now()
	s.now = func() time.Time { return base }
	if err := s.PutReport(ctx, "old", testRecord()); err != nil {
		t.Fatal(err)
	}
	if err := s.IncrBoth(ctx, [2]string{"c1", "c2"}, CounterTTL); err != nil {
		t.Fatal(err)
	}

	s.now = func() time.Time { return base.Add(ReportTTL + time.Hour) }
	if err := s.Purge(ctx); err != nil {
		t.Fatal(err)
	}

	var entries, counters int
	if err := s.db.Get(&entries, `SELECT COUNT(*) FROM kv_entries`); err != nil {
		t.Fatal(err)
	}
	if err := s.db.Get(&counters, `SELECT COUNT(*) FROM kv_counters`); err != nil {
		t.Fatal(err)
	}
	if entries != 0 || counters != 0 {
		t.Fatalf("purge left %d entries, %d counters", entries, counters)
	}
}
