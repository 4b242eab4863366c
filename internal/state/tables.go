package state

import "github.com/atomicstack/pipeline-console/internal/api"

type TableStore interface {
	Entries() []api.Table
	SetEntries(namespace string, entries []api.Table)
	Namespace() string
}

type tableStore struct {
	entries   []api.Table
	namespace string
}

func NewTableStore() TableStore {
	return &tableStore{}
}

func (t *tableStore) Entries() []api.Table {
	return cloneEntries(t.entries)
}

func (t *tableStore) SetEntries(namespace string, entries []api.Table) {
	t.entries = cloneEntries(entries)
	t.namespace = namespace
}

func (t *tableStore) Namespace() string {
	return t.namespace
}

func cloneEntries[T any](entries []T) []T {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]T, len(entries))
	copy(dup, entries)
	return dup
}
