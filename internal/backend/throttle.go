package backend

import (
	"context"
	"sync"
	"time"
)

// throttle hands out request slots at least interval apart. It is shared by
// every poller of a watcher so the platform sees one request per interval
// no matter how many lists are being polled.
type throttle struct {
	interval time.Duration

	mu   sync.Mutex
	next time.Time
}

func newThrottle(interval time.Duration) *throttle {
	return &throttle{interval: max(interval, 0)}
}

// wait blocks until the caller's slot comes up or ctx ends.
func (t *throttle) wait(ctx context.Context) error {
	if t == nil || t.interval <= 0 {
		return ctx.Err()
	}
	t.mu.Lock()
	slot := t.next
	if now := time.Now(); slot.Before(now) {
		slot = now
	}
	t.next = slot.Add(t.interval)
	t.mu.Unlock()

	delay := time.Until(slot)
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
