package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/pipeline-console/internal/logging"
	"github.com/atomicstack/pipeline-console/internal/logging/events"
	"github.com/atomicstack/pipeline-console/internal/menu"
	"github.com/atomicstack/pipeline-console/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleEscapeKey() tea.Cmd {
	current := m.currentLevel()
	if current == nil {
		return tea.Quit
	}
	if len(m.stack) <= 1 {
		return tea.Quit
	}
	if current.ID == levelDetail {
		m.details.Clear()
	}
	parent := m.stack[len(m.stack)-2]
	m.stack = m.stack[:len(m.stack)-1]
	m.panelScroll = 0
	if parent != nil {
		if parent.LastCursor >= 0 && parent.LastCursor < len(parent.Items) {
			parent.Cursor = parent.LastCursor
		} else if idx := parent.IndexOf(current.ID); idx >= 0 {
			parent.Cursor = idx
		} else if len(parent.Items) > 0 {
			parent.Cursor = len(parent.Items) - 1
		}
		parent.LastCursor = -1
		m.syncViewport(parent)
		events.UI.LevelBack(current.ID, parent.ID)
	}
	m.errMsg = ""
	m.forceClearInfo()
	return nil
}

func (m *Model) handleEnterKey() tea.Cmd {
	if m.loading {
		return nil
	}
	current := m.currentLevel()
	if current == nil {
		return nil
	}
	item, ok := current.Current()
	if !ok {
		return nil
	}
	ctx := m.menuContext()
	events.UI.LevelEnter(current.ID, item.ID, item.Label, current.Filter)
	if current.FilterCursorPos() != 0 {
		m.filterCursorDirty = true
	}
	current.SetFilter("", 0)
	node := current.Node
	if node == nil {
		node, _ = m.registry.Find(current.ID)
	}
	if current.MultiSelect {
		if selected := current.SelectedItems(); len(selected) > 0 {
			ids := make([]string, 0, len(selected))
			labels := make([]string, 0, len(selected))
			for _, sel := range selected {
				ids = append(ids, sel.ID)
				labels = append(labels, sel.Label)
			}
			item = menu.Item{ID: strings.Join(ids, "\n"), Label: strings.Join(labels, ", ")}
			current.ClearSelection()
		}
	}
	if node != nil {
		if child, ok := node.Children[item.ID]; ok {
			switch {
			case child.Loader != nil:
				current.LastCursor = current.Cursor
				m.beginPending(child.ID, item.Label)
				return m.loadMenuCmd(child.ID, item.Label, child.Loader)
			case child.Action != nil:
				m.beginPending(child.ID, item.Label)
				return m.bus.Execute(ctx, command.Request{ID: child.ID, Label: item.Label, Handler: child.Action, Item: item})
			}
		}
		// Dynamic rows (apps, connections, tables) run the parent's action.
		if node.Action != nil {
			m.beginPending(node.ID, item.Label)
			return m.bus.Execute(ctx, command.Request{ID: node.ID, Label: item.Label, Handler: node.Action, Item: item})
		}
	}
	if info := m.describeItem(current, item); info != "" {
		m.setInfo(info)
		return nil
	}
	m.setInfo(fmt.Sprintf("Selected %s (no action defined yet)", item.Label))
	return nil
}

// beginPending marks id as running until its result message arrives.
func (m *Model) beginPending(id, label string) {
	m.loading = true
	m.pendingID = id
	m.pendingLabel = label
	m.errMsg = ""
	m.forceClearInfo()
}

// describeItem summarises an entry of the detail or topic level.
func (m *Model) describeItem(current *level, item menu.Item) string {
	switch current.ID {
	case levelDetail:
		detail := m.details.Current().Detail
		if program, ok := menu.ProgramForItem(detail, item.ID); ok {
			if program.Description != "" {
				return fmt.Sprintf("%s %s: %s", program.Type, program.Name, program.Description)
			}
			return fmt.Sprintf("%s %s (ctrl+r start, ctrl+x stop)", program.Type, program.Name)
		}
		return item.Label
	case levelTopics:
		return fmt.Sprintf("Topic %s on %s", item.ID, current.Title)
	}
	return ""
}

// cursorMoves are the list navigation keys. page is the number of rows
// currently visible.
var cursorMoves = map[string]func(l *level, page int) bool{
	"up": func(l *level, _ int) bool {
		if len(l.Items) == 0 {
			return false
		}
		if l.Cursor <= 0 {
			return l.MoveCursorEnd()
		}
		l.Cursor--
		return true
	},
	"down": func(l *level, _ int) bool {
		if len(l.Items) == 0 {
			return false
		}
		if l.Cursor >= len(l.Items)-1 {
			return l.MoveCursorHome()
		}
		l.Cursor++
		return true
	},
	"pgup":   (*level).MoveCursorPageUp,
	"pgdown": (*level).MoveCursorPageDown,
	"home":   func(l *level, _ int) bool { return l.MoveCursorHome() },
	"end":    func(l *level, _ int) bool { return l.MoveCursorEnd() },
}

func (m *Model) moveCursor(move func(l *level, page int) bool) {
	current := m.currentLevel()
	if current == nil {
		return
	}
	if move(current, m.maxVisibleItems()) {
		events.UI.Cursor(current.ID, current.Cursor)
	}
	m.syncViewport(current)
}

func (m *Model) syncViewport(l *level) {
	if l == nil {
		return
	}
	l.EnsureCursorVisible(m.maxVisibleItems())
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.mode != ModeMenu {
		return nil
	}
	if keyMsg.Type == tea.KeyTab {
		if current := m.currentLevel(); current != nil && current.MultiSelect {
			current.ToggleCurrentSelection()
		}
		return nil
	}
	if handled, cmd := m.handleDetailKey(keyMsg.String()); handled {
		return cmd
	}
	if m.handleTextInput(keyMsg) {
		return nil
	}
	key := keyMsg.String()
	if move, ok := cursorMoves[key]; ok {
		m.moveCursor(move)
		return nil
	}
	switch key {
	case "ctrl+c", "q":
		return tea.Quit
	case "esc":
		return m.handleEscapeKey()
	case "enter":
		return m.handleEnterKey()
	}
	return nil
}

func (m *Model) handleCategoryLoadedMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(categoryLoadedMsg)
	if !ok {
		return nil
	}
	if update.id != m.pendingID {
		return nil
	}
	m.loading = false
	m.pendingID = ""
	m.pendingLabel = ""
	if update.err != nil {
		m.errMsg = update.err.Error()
		return nil
	}
	m.errMsg = ""
	node, _ := m.registry.Find(update.id)
	level := newLevel(update.id, update.title, update.items, node)
	m.applyNodeSettings(level)
	m.syncViewport(level)
	m.stack = append(m.stack, level)
	if len(level.Items) == 0 {
		m.setInfo("No entries found.")
	} else if m.infoMsg != "" {
		m.clearInfo()
	}
	return nil
}

func (m *Model) applyNodeSettings(l *level) {
	if l == nil {
		return
	}
	if l.Node == nil {
		if node, ok := m.registry.Find(l.ID); ok {
			l.Node = node
		}
	}
	if l.Node != nil {
		l.MultiSelect = l.Node.MultiSelect
	}
}

func (m *Model) findLevelByID(id string) *level {
	for _, lvl := range m.stack {
		if lvl.ID == id {
			m.applyNodeSettings(lvl)
			return lvl
		}
	}
	return nil
}

func (m *Model) applyRootMenuOverride(requested string) {
	trimmed := strings.TrimSpace(requested)
	if trimmed == "" {
		m.rootMenuID = ""
		m.rootTitle = defaultRootTitle
		return
	}
	if m.registry == nil {
		return
	}
	id := strings.ToLower(trimmed)
	node, ok := m.registry.Find(id)
	if !ok {
		m.errMsg = fmt.Sprintf("Unknown root menu %q", trimmed)
		m.rootMenuID = ""
		m.rootTitle = defaultRootTitle
		return
	}

	items := []menu.Item(nil)
	if node.Loader != nil {
		loaded, err := node.Loader(m.menuContext())
		if err != nil {
			logging.Error(err)
			m.errMsg = fmt.Sprintf("Failed to load %s menu: %v", id, err)
		} else {
			items = loaded
			m.errMsg = ""
		}
	} else {
		m.errMsg = ""
	}

	title := headerSegmentCleaner.Replace(node.ID)
	title = strings.TrimSpace(title)
	root := newLevel(node.ID, title, items, node)
	m.applyNodeSettings(root)
	m.syncViewport(root)
	m.stack = []*level{root}
	m.rootMenuID = node.ID

	segment := headerSegmentForLevel(root)
	if segment == "" {
		segment = title
	}
	if segment == "" {
		segment = node.ID
	}
	m.rootTitle = segment
}

func (m *Model) currentLevel() *level {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}
