package notify

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestRunnerRunsTasks(t *testing.T) {
	r := NewRunner()
	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		r.Go("task", func(ctx context.Context) error {
			ran.Add(1)
			return nil
		})
	}
	r.Wait()
	if got := ran.Load(); got != 5 {
		t.Fatalf("ran %d tasks, want 5", got)
	}
}

func TestRunnerSwallowsErrorsAndPanics(t *testing.T) {
	r := NewRunner()
	r.Go("failing task", func(ctx context.Context) error {
		return errors.New("boom")
	})
	r.Go("panicking task", func(ctx context.Context) error {
		panic("boom")
	})
	// Wait returning without crashing the test binary is the assertion.
	r.Wait()
}

func TestRunnerProvidesLiveContext(t *testing.T) {
	r := NewRunner()
	var hadDeadline atomic.Bool
	r.Go("task", func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		hadDeadline.Store(ok)
		return ctx.Err()
	})
	r.Wait()
	if !hadDeadline.Load() {
		t.Fatal("task context should carry a deadline")
	}
}
