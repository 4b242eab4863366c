package ui

import (
	"context"
	"time"

	"github.com/atomicstack/pipeline-console/internal/backend"
	"github.com/atomicstack/pipeline-console/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

const tablesRefreshTimeout = 30 * time.Second

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

// refreshTablesCmd asks the watcher for the explorable tables of namespace.
// The outcome arrives as a regular backend event.
func refreshTablesCmd(w *backend.Watcher, namespace string) tea.Cmd {
	if w == nil || namespace == "" {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), tablesRefreshTimeout)
		defer cancel()
		_ = w.RefreshTables(ctx, namespace)
		return nil
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

func (m *Model) applyBackendEvent(evt backend.Event) {
	if evt.Namespace != "" && evt.Namespace != m.namespaces.Current() {
		return
	}
	if m.backendState == nil {
		m.backendState = make(map[backend.Kind]error)
	}
	m.backendState[evt.Kind] = evt.Err
	if evt.Err != nil {
		m.backendLastErr = evt.Err.Error()
		return
	}

	res := m.dispatcher.Handle(evt)
	ctx := m.menuContext()

	if res.AppsUpdated {
		if lvl := m.findLevelByID(levelApplications); lvl != nil {
			lvl.UpdateItems(menu.ApplicationItems(ctx.Apps))
			if len(lvl.Items) > 0 {
				m.clearInfo()
			}
			m.syncViewport(lvl)
		}
	}

	if res.ConnectionsUpdated {
		if lvl := m.findLevelByID("connections"); lvl != nil {
			lvl.UpdateItems(menu.ConnectionItems(ctx.Connections))
			m.syncViewport(lvl)
		}
	}

	if res.TablesUpdated {
		if lvl := m.findLevelByID("tables"); lvl != nil {
			lvl.UpdateItems(menu.TableItems(ctx.Tables))
			m.applyNodeSettings(lvl)
			m.syncViewport(lvl)
		}
	}

	if warn, _ := m.hasBackendIssue(); !warn {
		m.backendLastErr = ""
	}
}

func (m *Model) hasBackendIssue() (bool, string) {
	for _, err := range m.backendState {
		if err != nil {
			msg := m.backendLastErr
			if msg == "" {
				msg = err.Error()
			}
			return true, msg
		}
	}
	return false, ""
}
