package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/atomicstack/pipeline-console/internal/entity"
	"github.com/atomicstack/pipeline-console/internal/logging/events"
	"github.com/atomicstack/pipeline-console/internal/menu"
	"github.com/atomicstack/pipeline-console/internal/notice"
	"github.com/atomicstack/pipeline-console/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

type detailLoadedMsg struct {
	seq     int
	outcome entity.Outcome
}

func loadDetailCmd(loader DetailLoader, timeout time.Duration, namespace, appID string, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return detailLoadedMsg{seq: seq, outcome: loader.Load(ctx, namespace, appID)}
	}
}

func (m *Model) handleOpenDetailMsg(msg tea.Msg) tea.Cmd {
	open, ok := msg.(menu.OpenDetailMsg)
	if !ok {
		return nil
	}
	m.loading = false
	m.pendingID = ""
	m.pendingLabel = ""
	m.errMsg = ""
	namespace := open.Namespace
	if namespace == "" {
		namespace = m.namespaces.Current()
	}
	m.pushDetailLevel(open.AppID)
	if m.loader == nil {
		m.errMsg = "detail loading is not configured"
		return nil
	}
	seq := m.details.Begin(namespace, open.AppID)
	return loadDetailCmd(m.loader, m.loadTimeout, namespace, open.AppID, seq)
}

func (m *Model) pushDetailLevel(appID string) {
	if current := m.currentLevel(); current != nil {
		if current.ID == levelDetail {
			m.stack = m.stack[:len(m.stack)-1]
		} else {
			current.LastCursor = current.Cursor
		}
	}
	m.panelScroll = 0
	lvl := newLevel(levelDetail, appID, nil, nil)
	m.stack = append(m.stack, lvl)
	events.UI.LevelEnter(lvl.ID, appID, appID, "")
}

func (m *Model) handleDetailLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(detailLoadedMsg)
	if !ok {
		return nil
	}
	if !m.details.Apply(loaded.seq, loaded.outcome) {
		events.Entity.Stale(loaded.outcome.ID, loaded.seq)
		return nil
	}
	lvl := m.findLevelByID(levelDetail)
	if lvl == nil {
		return nil
	}
	current := m.details.Current()
	if current.Status == entity.StatusDetail {
		lvl.UpdateItems(menu.DetailItems(current.Detail))
	} else {
		lvl.UpdateItems(nil)
	}
	m.syncViewport(lvl)
	return nil
}

// handleDetailKey runs the fast actions bound on the detail level.
func (m *Model) handleDetailKey(key string) (bool, tea.Cmd) {
	current := m.currentLevel()
	if current == nil || current.ID != levelDetail {
		return false, nil
	}
	switch key {
	case "ctrl+d", "ctrl+p", "ctrl+r", "ctrl+x":
	default:
		return false, nil
	}
	if m.loading {
		return true, nil
	}
	detail := m.details.Current()
	if detail.Loading || detail.Status != entity.StatusDetail {
		m.setInfo("Application detail is not loaded.")
		return true, nil
	}
	ctx := m.menuContext()
	if detail.Namespace != "" {
		ctx.Namespace = detail.Namespace
	}
	appID := detail.ID
	var (
		id      string
		handler menu.Action
	)
	switch key {
	case "ctrl+d":
		id = "applications:delete"
		handler = func(ctx menu.Context, _ menu.Item) tea.Cmd {
			return menu.DeleteApplicationCommand(ctx, appID)
		}
	case "ctrl+p":
		props := detail.Detail.Properties
		return true, menu.PreferencesAction(ctx, appID, props)
	case "ctrl+r", "ctrl+x":
		action := notice.ActionStart
		if key == "ctrl+x" {
			action = notice.ActionStop
		}
		if len(current.Items) == 0 || current.Cursor < 0 || current.Cursor >= len(current.Items) {
			m.setInfo("Select a program first.")
			return true, nil
		}
		program, ok := menu.ProgramForItem(detail.Detail, current.Items[current.Cursor].ID)
		if !ok {
			m.setInfo("Select a program first.")
			return true, nil
		}
		id = fmt.Sprintf("applications:%s", action)
		handler = func(ctx menu.Context, _ menu.Item) tea.Cmd {
			return menu.ProgramCommand(ctx, action, appID, program)
		}
	}
	m.loading = true
	m.pendingID = id
	m.pendingLabel = appID
	m.errMsg = ""
	m.forceClearInfo()
	return true, m.bus.Execute(ctx, command.Request{ID: id, Label: appID, Handler: handler, Item: menu.Item{ID: appID, Label: appID}})
}
