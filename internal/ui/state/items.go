package state

import "github.com/atomicstack/pipeline-console/internal/menu"

// CloneItems copies items into a fresh slice.
func CloneItems(items []menu.Item) []menu.Item {
	return append(make([]menu.Item, 0, len(items)), items...)
}
