package backend

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/atomicstack/pipeline-console/internal/api"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindApps Kind = iota
	KindConnections
	KindTables
)

func (k Kind) String() string {
	switch k {
	case KindApps:
		return "apps"
	case KindConnections:
		return "connections"
	case KindTables:
		return "tables"
	default:
		return "unknown"
	}
}

// Event conveys updated data or an error from a backend poll. Data holds
// []api.AppSummary, []api.Connection or []api.Table depending on Kind.
type Event struct {
	Kind      Kind
	Namespace string
	Data      interface{}
	Err       error
}

// Source is the slice of the platform API the watcher polls.
type Source interface {
	ListApps(ctx context.Context, namespace string) ([]api.AppSummary, error)
	ListConnections(ctx context.Context, namespace, connType string) ([]api.Connection, error)
	ListTables(ctx context.Context, namespace string) ([]api.Table, error)
}

// requestSpacing is the minimum gap between two platform requests of one
// watcher.
const requestSpacing = 250 * time.Millisecond

// Watcher polls the platform at a fixed interval and publishes events.
type Watcher struct {
	source    Source
	interval  time.Duration
	throttle  *throttle
	namespace atomic.Value

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewWatcher creates a backend watcher that polls namespace every interval.
func NewWatcher(source Source, namespace string, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		source:   source,
		interval: interval,
		throttle: newThrottle(requestSpacing),
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}
	w.namespace.Store(strings.TrimSpace(namespace))

	w.startAppPoller()
	w.startConnectionPoller()

	go func() {
		w.wg.Wait()
		w.mu.Lock()
		w.closed = true
		close(w.events)
		w.mu.Unlock()
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Namespace returns the namespace being polled.
func (w *Watcher) Namespace() string {
	ns, _ := w.namespace.Load().(string)
	return ns
}

// SetNamespace switches the polled namespace from the next tick on.
func (w *Watcher) SetNamespace(namespace string) {
	w.namespace.Store(strings.TrimSpace(namespace))
}

// RefreshTables fetches the explorable tables of namespace and publishes them
// as a KindTables event. The fetch error is returned as well as published.
func (w *Watcher) RefreshTables(ctx context.Context, namespace string) error {
	if err := w.throttle.wait(ctx); err != nil {
		return err
	}
	tables, err := w.source.ListTables(ctx, namespace)
	w.send(ctx, Event{Kind: KindTables, Namespace: namespace, Data: tables, Err: err})
	return err
}

// Stop cancels the watcher. Pollers exit after their current fetch completes;
// use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all poller goroutines have exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) startAppPoller() {
	w.wg.Add(1)
	go w.poll(KindApps, func(ctx context.Context, ns string) (interface{}, error) {
		return w.source.ListApps(ctx, ns)
	})
}

func (w *Watcher) startConnectionPoller() {
	w.wg.Add(1)
	go w.poll(KindConnections, func(ctx context.Context, ns string) (interface{}, error) {
		return w.source.ListConnections(ctx, ns, "")
	})
}

func (w *Watcher) poll(kind Kind, fetch func(context.Context, string) (interface{}, error)) {
	defer w.wg.Done()

	emit := func() bool {
		if w.throttle.wait(w.ctx) != nil {
			return false
		}
		ns := w.Namespace()
		data, err := fetch(w.ctx, ns)
		if w.ctx.Err() != nil {
			return false
		}
		return w.send(w.ctx, Event{Kind: kind, Namespace: ns, Data: data, Err: err})
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}

func (w *Watcher) send(ctx context.Context, evt Event) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return false
	}
	select {
	case <-w.ctx.Done():
		return false
	case <-ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}
