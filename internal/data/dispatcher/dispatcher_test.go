package dispatcher

import (
	"errors"
	"testing"

	"github.com/atomicstack/pipeline-console/internal/api"
	"github.com/atomicstack/pipeline-console/internal/backend"
	"github.com/atomicstack/pipeline-console/internal/state"
)

func newDispatcher() (*Dispatcher, state.AppStore, state.ConnectionStore, state.TableStore) {
	apps := state.NewAppStore()
	conns := state.NewConnectionStore()
	tables := state.NewTableStore()
	return New(state.NewNamespaceStore("default"), apps, conns, tables), apps, conns, tables
}

func TestHandleUpdatesMatchingStore(t *testing.T) {
	d, apps, conns, tables := newDispatcher()

	res := d.Handle(backend.Event{Kind: backend.KindApps, Namespace: "default", Data: []api.AppSummary{{Name: "a"}}})
	if !res.AppsUpdated || len(apps.Entries()) != 1 {
		t.Fatalf("expected apps updated, got %#v", res)
	}
	res = d.Handle(backend.Event{Kind: backend.KindConnections, Namespace: "default", Data: []api.Connection{{ID: "c"}}})
	if !res.ConnectionsUpdated || len(conns.Entries()) != 1 {
		t.Fatalf("expected connections updated, got %#v", res)
	}
	res = d.Handle(backend.Event{Kind: backend.KindTables, Namespace: "default", Data: []api.Table{{Table: "t"}}})
	if !res.TablesUpdated || len(tables.Entries()) != 1 {
		t.Fatalf("expected tables updated, got %#v", res)
	}
}

func TestHandleIgnoresErrorsAndOtherNamespaces(t *testing.T) {
	d, apps, _, _ := newDispatcher()
	if res := d.Handle(backend.Event{Kind: backend.KindApps, Namespace: "default", Err: errors.New("down")}); res.AppsUpdated {
		t.Fatalf("error events must not update stores")
	}
	if res := d.Handle(backend.Event{Kind: backend.KindApps, Namespace: "other", Data: []api.AppSummary{{Name: "a"}}}); res.AppsUpdated {
		t.Fatalf("events for another namespace must be ignored")
	}
	if apps.Loaded() {
		t.Fatalf("store should still be unloaded")
	}
}

func TestHandleIgnoresUnexpectedPayload(t *testing.T) {
	d, _, _, _ := newDispatcher()
	if res := d.Handle(backend.Event{Kind: backend.KindTables, Namespace: "default", Data: "nope"}); res.TablesUpdated {
		t.Fatalf("unexpected payload should be ignored")
	}
}
