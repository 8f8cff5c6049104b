package worker

import (
	"context"
	"log"
	"time"
)

// CompletionStore marks finished bookings as completed.
type CompletionStore interface {
	CompletePast(ctx context.Context, today string, nowMin int) (int64, error)
}

// Completer periodically sweeps confirmed bookings whose end time has
// passed and moves them to the completed status.
type Completer struct {
	store    CompletionStore
	interval time.Duration
	now      func() time.Time
}

func NewCompleter(store CompletionStore, interval time.Duration, now func() time.Time) *Completer {
	if now == nil {
		now = time.Now
	}
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Completer{store: store, interval: interval, now: now}
}

// Run blocks until ctx is cancelled, sweeping once per interval.
func (c *Completer) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.sweep(ctx)
		}
	}
}

func (c *Completer) sweep(ctx context.Context) {
	now := c.now()
	today := now.Format("2006-01-02")
	nowMin := now.Hour()*60 + now.Minute()

	n, err := c.store.CompletePast(ctx, today, nowMin)
	if err != nil {
		log.Printf("completer: sweep failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("completer: marked %d bookings completed", n)
	}
}
