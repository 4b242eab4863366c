package state

import "github.com/atomicstack/pipeline-console/internal/api"

type ConnectionStore interface {
	Entries() []api.Connection
	SetEntries(namespace string, entries []api.Connection)
	Namespace() string
	Find(id string) (api.Connection, bool)
}

type connectionStore struct {
	entries   []api.Connection
	namespace string
}

func NewConnectionStore() ConnectionStore {
	return &connectionStore{}
}

func (c *connectionStore) Entries() []api.Connection {
	return cloneEntries(c.entries)
}

func (c *connectionStore) SetEntries(namespace string, entries []api.Connection) {
	c.entries = cloneEntries(entries)
	c.namespace = namespace
}

func (c *connectionStore) Namespace() string {
	return c.namespace
}

func (c *connectionStore) Find(id string) (api.Connection, bool) {
	for _, entry := range c.entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return api.Connection{}, false
}
