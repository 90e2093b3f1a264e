// Package ratelimit enforces the daily generation caps: one global counter
// for the whole service and one per submitter email.
package ratelimit

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/leomayn/planner/internal/planner"
)

const (
	DefaultDailyLimit    = 50
	DefaultPerEmailLimit = 3

	globalKeyPrefix = "planner:daily-cap:"
	emailKeyPrefix  = "planner:email:"
	counterTTL      = 24 * time.Hour
)

// CounterStore is the slice of the KV store the limiter needs.
type CounterStore interface {
	GetCounter(ctx context.Context, key string) (int, error)
	IncrBoth(ctx context.Context, keys [2]string, ttl time.Duration) error
}

type Limiter struct {
	store         CounterStore
	dailyLimit    int
	perEmailLimit int

	// FailOpen keeps the service available when the counter store is down:
	// store errors admit the request instead of rejecting it. The caps are
	// an abuse brake, not a billing control, so availability wins.
	FailOpen bool

	now func() time.Time
}

func New(store CounterStore, dailyLimit, perEmailLimit int) *Limiter {
	if dailyLimit <= 0 {
		dailyLimit = DefaultDailyLimit
	}
	if perEmailLimit <= 0 {
		perEmailLimit = DefaultPerEmailLimit
	}
	return &Limiter{
		store:         store,
		dailyLimit:    dailyLimit,
		perEmailLimit: perEmailLimit,
		FailOpen:      true,
		now:           time.Now,
	}
}

// Allow checks both daily caps and, when under both, consumes one unit from
// each in a single transaction. The check-then-increment is not atomic, so
// a concurrent burst can overshoot a cap by the number of in-flight
// requests. That soft overshoot is accepted.
func (l *Limiter) Allow(ctx context.Context, email string) error {
	day := l.now().UTC().Format("2006-01-02")
	globalKey := globalKeyPrefix + day
	emailKey := fmt.Sprintf("%s%s:%s", emailKeyPrefix, email, day)

	globalCount, err := l.store.GetCounter(ctx, globalKey)
	if err != nil {
		return l.storeFailure(err)
	}
	if globalCount >= l.dailyLimit {
		return planner.NewRateLimitedError("Daily generation limit reached. Please try again tomorrow.")
	}

	emailCount, err := l.store.GetCounter(ctx, emailKey)
	if err != nil {
		return l.storeFailure(err)
	}
	if emailCount >= l.perEmailLimit {
		return planner.NewRateLimitedError("You have reached the maximum reports per day. Please try again tomorrow.")
	}

	if err := l.store.IncrBoth(ctx, [2]string{globalKey, emailKey}, counterTTL); err != nil {
		return l.storeFailure(err)
	}
	return nil
}

func (l *Limiter) storeFailure(err error) error {
	if l.FailOpen {
		log.Printf("rate limiter store unavailable, admitting request: %v", err)
		return nil
	}
	return planner.NewInternalError("rate limiter unavailable")
}

var _ planner.RateLimiter = (*Limiter)(nil)
