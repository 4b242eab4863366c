package state

import "github.com/atomicstack/pipeline-console/internal/api"

type AppStore interface {
	Entries() []api.AppSummary
	SetEntries(namespace string, entries []api.AppSummary)
	Namespace() string
	Loaded() bool
	Remove(name string) bool
}

type appStore struct {
	entries   []api.AppSummary
	namespace string
	loaded    bool
}

func NewAppStore() AppStore {
	return &appStore{}
}

func (a *appStore) Entries() []api.AppSummary {
	return cloneEntries(a.entries)
}

func (a *appStore) SetEntries(namespace string, entries []api.AppSummary) {
	a.entries = cloneEntries(entries)
	a.namespace = namespace
	a.loaded = true
}

func (a *appStore) Namespace() string {
	return a.namespace
}

func (a *appStore) Loaded() bool {
	return a.loaded
}

// Remove drops name ahead of the next poll so a deleted app disappears at once.
func (a *appStore) Remove(name string) bool {
	for i, entry := range a.entries {
		if entry.Name == name {
			a.entries = append(a.entries[:i:i], a.entries[i+1:]...)
			return true
		}
	}
	return false
}
