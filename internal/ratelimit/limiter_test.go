package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/leomayn/planner/internal/planner"
)

type memCounters struct {
	counts map[string]int
	err    error
	incrs  int
}

func newMemCounters() *memCounters {
	return &memCounters{counts: map[string]int{}}
}

func (m *memCounters) GetCounter(ctx context.Context, key string) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.counts[key], nil
}

func (m *memCounters) IncrBoth(ctx context.Context, keys [2]string, ttl time.Duration) error {
	if m.err != nil {
		return m.err
	}
	m.incrs++
	for _, k := range keys {
		m.counts[k]++
	}
	return nil
}

func fixedClock(l *Limiter) {
	l.now = func() time.Time { return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC) }
}

func TestAllowConsumesBothCounters(t *testing.T) {
	store := newMemCounters()
	l := New(store, 50, 3)
	fixedClock(l)

	if err := l.Allow(context.Background(), "jane@acme.co.uk"); err != nil {
		t.Fatal(err)
	}
	if store.counts["planner:daily-cap:2026-08-31"] != 1 {
		t.Fatalf("global counter got %d, want 1", store.counts["planner:daily-cap:2026-08-31"])
	}
	if store.counts["planner:email:jane@acme.co.uk:2026-08-31"] != 1 {
		t.Fatalf("email counter got %d, want 1", store.counts["planner:email:jane@acme.co.uk:2026-08-31"])
	}
}

func TestPerEmailCap(t *testing.T) {
	store := newMemCounters()
	l := New(store, 50, 3)
	fixedClock(l)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := l.Allow(ctx, "jane@acme.co.uk"); err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
	}
	err := l.Allow(ctx, "jane@acme.co.uk")
	var pe *planner.Error
	if !errors.As(err, &pe) || pe.Code != planner.CodeRateLimited {
		t.Fatalf("expected rate limited, got %v", err)
	}
	if pe.Message != "You have reached the maximum reports per day. Please try again tomorrow." {
		t.Fatalf("wrong message: %q", pe.Message)
	}

	// A different submitter is still admitted.
	if err := l.Allow(ctx, "other@acme.co.uk"); err != nil {
		t.Fatal(err)
	}
}

func TestGlobalCap(t *testing.T) {
	store := newMemCounters()
	l := New(store, 2, 10)
	fixedClock(l)
	ctx := context.Background()

	if err := l.Allow(ctx, "a@x.com"); err != nil {
		t.Fatal(err)
	}
	if err := l.Allow(ctx, "b@x.com"); err != nil {
		t.Fatal(err)
	}
	err := l.Allow(ctx, "c@x.com")
	var pe *planner.Error
	if !errors.As(err, &pe) || pe.Code != planner.CodeRateLimited {
		t.Fatalf("expected rate limited, got %v", err)
	}
	if pe.Message != "Daily generation limit reached. Please try again tomorrow." {
		t.Fatalf("wrong message: %q", pe.Message)
	}
	if pe.RetryAfter == 0 {
		t.Fatal("retry-after should be set")
	}
}

func TestFailOpenAdmitsOnStoreError(t *testing.T) {
	store := newMemCounters()
	store.err = errors.New("db locked")
	l := New(store, 50, 3)
	fixedClock(l)

	if err := l.Allow(context.Background(), "jane@acme.co.uk"); err != nil {
		t.Fatalf("fail-open limiter should admit, got %v", err)
	}
}

func TestFailClosedRejectsOnStoreError(t *testing.T) {
	store := newMemCounters()
	store.err = errors.New("db locked")
	l := New(store, 50, 3)
	l.FailOpen = false
	fixedClock(l)

	err := l.Allow(context.Background(), "jane@acme.co.uk")
	var pe *planner.Error
	if !errors.As(err, &pe) || pe.Code != planner.CodeInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestDefaultsApplied(t *testing.T) {
	l := New(newMemCounters(), 0, -1)
	if l.dailyLimit != DefaultDailyLimit || l.perEmailLimit != DefaultPerEmailLimit {
		t.Fatalf("defaults not applied: %d, %d", l.dailyLimit, l.perEmailLimit)
	}
}
