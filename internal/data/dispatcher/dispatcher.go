package dispatcher

import (
	"github.com/atomicstack/pipeline-console/internal/api"
	"github.com/atomicstack/pipeline-console/internal/backend"
	"github.com/atomicstack/pipeline-console/internal/state"
)

type Result struct {
	AppsUpdated        bool
	ConnectionsUpdated bool
	TablesUpdated      bool
}

type Dispatcher struct {
	namespaces  state.NamespaceStore
	apps        state.AppStore
	connections state.ConnectionStore
	tables      state.TableStore
}

func New(ns state.NamespaceStore, a state.AppStore, c state.ConnectionStore, t state.TableStore) *Dispatcher {
	return &Dispatcher{namespaces: ns, apps: a, connections: c, tables: t}
}

// Handle applies evt to the stores. Events for a namespace other than the
// selected one are ignored.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		return res
	}
	if d.namespaces != nil && evt.Namespace != d.namespaces.Current() {
		return res
	}
	switch evt.Kind {
	case backend.KindApps:
		if apps, ok := evt.Data.([]api.AppSummary); ok {
			d.apps.SetEntries(evt.Namespace, apps)
			res.AppsUpdated = true
		}
	case backend.KindConnections:
		if conns, ok := evt.Data.([]api.Connection); ok {
			d.connections.SetEntries(evt.Namespace, conns)
			res.ConnectionsUpdated = true
		}
	case backend.KindTables:
		if tables, ok := evt.Data.([]api.Table); ok {
			d.tables.SetEntries(evt.Namespace, tables)
			res.TablesUpdated = true
		}
	}
	return res
}
