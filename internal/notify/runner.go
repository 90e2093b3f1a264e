// Package notify handles the work that happens after a response is
// written: report delivery email and CRM enrichment. Every task is
// fire-and-forget; failures are logged and never surface to the prospect.
package notify

import (
	"context"
	"log"
	"sync"
	"time"
)

const taskTimeout = 30 * time.Second

// Runner dispatches deferred tasks on their own goroutines so handler
// latency is unaffected. Wait exists for tests and shutdown.
type Runner struct {
	wg sync.WaitGroup
}

func NewRunner() *Runner {
	return &Runner{}
}

func (r *Runner) Go(name string, task func(ctx context.Context) error) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("%s panicked: %v", name, rec)
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), taskTimeout)
		defer cancel()
		if err := task(ctx); err != nil {
			log.Printf("%s failed: %v", name, err)
		}
	}()
}

func (r *Runner) Wait() {
	r.wg.Wait()
}
