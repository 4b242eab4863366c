package ui

import (
	"context"
	"time"

	"github.com/atomicstack/pipeline-console/internal/browser"
	"github.com/atomicstack/pipeline-console/internal/logging/events"
	"github.com/atomicstack/pipeline-console/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

type browserFetchedMsg struct {
	result browser.Result
}

func fetchTopicsCmd(selector *browser.Selector, timeout time.Duration, req browser.Request) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return browserFetchedMsg{result: selector.Fetch(ctx, req)}
	}
}

func (m *Model) handleBrowseMsg(msg tea.Msg) tea.Cmd {
	browse, ok := msg.(menu.BrowseMsg)
	if !ok {
		return nil
	}
	m.loading = false
	m.pendingID = ""
	m.pendingLabel = ""
	m.errMsg = ""
	if m.selector == nil {
		m.errMsg = "source browsing is not configured"
		return nil
	}
	req, ok := m.selector.Begin(browse.Kind, browse.SourceID)
	if browse.Kind == browser.KindFile {
		if m.selector.Store().State().Active == browser.KindFile {
			m.setInfo("File browser active.")
		}
		return nil
	}
	if !ok {
		if m.selector.Store().State().Active == browser.KindKafka {
			m.setInfo("Topics are already loading.")
		} else {
			m.setInfo("A previous topic request is still finishing.")
		}
		return nil
	}
	if current := m.currentLevel(); current != nil {
		if current.ID == levelTopics {
			m.stack = m.stack[:len(m.stack)-1]
		} else {
			current.LastCursor = current.Cursor
		}
	}
	m.panelScroll = 0
	lvl := newLevel(levelTopics, browse.SourceID, nil, nil)
	m.stack = append(m.stack, lvl)
	events.UI.LevelEnter(lvl.ID, browse.SourceID, browse.Label, "")
	return fetchTopicsCmd(m.selector, m.loadTimeout, req)
}

func (m *Model) handleBrowserFetchedMsg(msg tea.Msg) tea.Cmd {
	fetched, ok := msg.(browserFetchedMsg)
	if !ok || m.selector == nil {
		return nil
	}
	sel := m.selector.Complete(fetched.result)
	if fetched.result.Request.Generation != sel.Generation {
		return nil
	}
	lvl := m.findLevelByID(levelTopics)
	if lvl == nil {
		return nil
	}
	lvl.UpdateItems(topicItems(sel.Kafka.Topics))
	m.syncViewport(lvl)
	return nil
}

func topicItems(topics []string) []menu.Item {
	if len(topics) == 0 {
		return nil
	}
	items := make([]menu.Item, 0, len(topics))
	for _, topic := range topics {
		items = append(items, menu.Item{ID: topic, Label: topic})
	}
	return items
}
