package state

import "github.com/atomicstack/pipeline-console/internal/menu"

// CleanupSelections forgets selected IDs that no longer have a row.
func (l *Level) CleanupSelections() {
	if len(l.Selected) == 0 {
		return
	}
	present := make(map[string]bool, len(l.Full))
	for _, item := range l.Full {
		present[item.ID] = true
	}
	for id := range l.Selected {
		if !present[id] {
			delete(l.Selected, id)
		}
	}
}

func (l *Level) IsSelected(id string) bool {
	_, ok := l.Selected[id]
	return ok
}

// ToggleSelection flips id and reports whether it is now selected.
func (l *Level) ToggleSelection(id string) bool {
	if l.IsSelected(id) {
		delete(l.Selected, id)
		return false
	}
	if l.Selected == nil {
		l.Selected = make(map[string]struct{})
	}
	l.Selected[id] = struct{}{}
	return true
}

// ToggleCurrentSelection flips the row under the cursor on multi-select
// levels.
func (l *Level) ToggleCurrentSelection() {
	if !l.MultiSelect {
		return
	}
	if item, ok := l.Current(); ok {
		l.ToggleSelection(item.ID)
	}
}

func (l *Level) ClearSelection() {
	clear(l.Selected)
}

// SelectedItems returns the selected rows in display order.
func (l *Level) SelectedItems() []menu.Item {
	var out []menu.Item
	for _, item := range l.Items {
		if l.IsSelected(item.ID) {
			out = append(out, item)
		}
	}
	return out
}
