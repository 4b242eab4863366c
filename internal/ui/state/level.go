package state

import (
	"strings"

	"github.com/atomicstack/pipeline-console/internal/menu"
)

// Level is one screen of the navigation stack: its rows, filter, cursor,
// selection and viewport.
type Level struct {
	ID             string
	Title          string
	Items          []menu.Item
	Full           []menu.Item
	Filter         string
	FilterCursor   int
	Cursor         int
	MultiSelect    bool
	Selected       map[string]struct{}
	Data           interface{}
	LastCursor     int
	Node           *menu.Node
	ViewportOffset int
}

// NewLevel builds a level over items. The cursor starts unset so the first
// filter pass places it on the last row.
func NewLevel(id, title string, items []menu.Item, node *menu.Node) *Level {
	l := &Level{
		ID:         id,
		Title:      title,
		Cursor:     -1,
		LastCursor: -1,
		Selected:   make(map[string]struct{}),
		Node:       node,
	}
	l.UpdateItems(items)
	return l
}

// IndexOf finds a visible row by ID, falling back to a case-insensitive
// label match. Detail rows are keyed by load tokens, so callers that only
// know a name can still locate them.
func (l *Level) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	fallback := -1
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
		if fallback < 0 && strings.EqualFold(item.Label, id) {
			fallback = i
		}
	}
	return fallback
}

// Current returns the row under the cursor.
func (l *Level) Current() (menu.Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return menu.Item{}, false
	}
	return l.Items[l.Cursor], true
}

// UpdateItems replaces the rows, reapplies the filter and keeps the
// viewport where it was when it still fits.
func (l *Level) UpdateItems(items []menu.Item) {
	offset := l.ViewportOffset
	l.Full = CloneItems(items)
	l.CleanupSelections()
	l.applyFilter()
	if len(l.Items) == 0 || offset < 0 || offset >= len(l.Items) {
		l.ViewportOffset = 0
		return
	}
	l.ViewportOffset = offset
}
