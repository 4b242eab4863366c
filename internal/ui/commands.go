package ui

import (
	"time"

	"github.com/atomicstack/pipeline-console/internal/logging"
	"github.com/atomicstack/pipeline-console/internal/logging/events"
	"github.com/atomicstack/pipeline-console/internal/menu"
	"github.com/atomicstack/pipeline-console/internal/notice"
	tea "github.com/charmbracelet/bubbletea"
)

type noticeExpiredMsg struct {
	seq int
}

// tick is tea.Tick; tests replace it to observe the scheduled delay.
var tick = tea.Tick

// noticeTimer schedules the expiry of the notice published with seq.
var noticeTimer = func(seq int) tea.Cmd {
	return tick(notice.ClearAfter, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(menu.ActionResult)
	if !ok {
		return nil
	}
	m.loading = false
	m.pendingID = ""
	m.pendingLabel = ""
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		m.forceClearInfo()
		events.Action.Error(string(result.Action), result.Err)
		return nil
	}
	m.errMsg = ""
	events.Action.Success(string(result.Action), result.Target)
	if result.Action == "" {
		if result.Info != "" {
			m.setInfo(result.Info)
		} else {
			m.forceClearInfo()
		}
		return nil
	}
	m.forceClearInfo()
	namespace := result.Namespace
	if namespace == "" {
		namespace = m.namespaces.Current()
	}
	published := m.board.Publish(result.Action, result.EntityType, namespace)
	if ns, ok := m.board.ConsumeRoute(); ok {
		m.routeHome(ns, result.Target)
	}
	return noticeTimer(published.Seq)
}

func (m *Model) handleNoticeExpiredMsg(msg tea.Msg) tea.Cmd {
	expired, ok := msg.(noticeExpiredMsg)
	if !ok {
		return nil
	}
	m.board.Expire(expired.seq)
	return nil
}

// routeHome returns to the application list of namespace after removed was
// deleted.
func (m *Model) routeHome(namespace, removed string) {
	events.UI.RouteHome(namespace)
	if m.namespaces.Set(namespace) && m.backend != nil {
		m.backend.SetNamespace(namespace)
	}
	if removed != "" && m.apps.Namespace() == namespace {
		m.apps.Remove(removed)
	}
	m.details.Clear()
	m.panelScroll = 0
	items := menu.ApplicationItems(m.apps.Entries())
	for i, lvl := range m.stack {
		if lvl.ID != levelApplications {
			continue
		}
		m.stack = m.stack[:i+1]
		lvl.UpdateItems(items)
		if lvl.Cursor >= len(lvl.Items) {
			lvl.Cursor = len(lvl.Items) - 1
		}
		lvl.LastCursor = -1
		m.syncViewport(lvl)
		return
	}
	root := m.stack[0]
	root.LastCursor = -1
	if idx := root.IndexOf(levelApplications); idx >= 0 {
		root.Cursor = idx
	}
	node, _ := m.registry.Find(levelApplications)
	apps := newLevel(levelApplications, levelApplications, items, node)
	m.applyNodeSettings(apps)
	m.syncViewport(apps)
	m.stack = []*level{root, apps}
}

func (m *Model) loadMenuCmd(id, title string, loader menu.Loader) tea.Cmd {
	ctx := m.menuContext()
	return func() tea.Msg {
		items, err := loader(ctx)
		if err != nil {
			logging.Error(err)
		}
		return categoryLoadedMsg{id: id, title: title, items: items, err: err}
	}
}

// categoryLoadedMsg mirrors the async loader response.
type categoryLoadedMsg struct {
	id    string
	title string
	items []menu.Item
	err   error
}

func (m *Model) menuContext() menu.Context {
	return menu.Context{
		Namespace:   m.namespaces.Current(),
		API:         m.api,
		Apps:        m.apps.Entries(),
		Connections: m.connections.Entries(),
		Tables:      m.tables.Entries(),
	}
}
