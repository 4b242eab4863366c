package state

import "strings"

// NamespaceStore tracks the selected namespace.
type NamespaceStore interface {
	Current() string
	Set(string) bool
}

type namespaceStore struct {
	current string
}

func NewNamespaceStore(initial string) NamespaceStore {
	return &namespaceStore{current: strings.TrimSpace(initial)}
}

func (n *namespaceStore) Current() string {
	return n.current
}

// Set switches namespace and reports whether it changed. Blank values are
// ignored.
func (n *namespaceStore) Set(ns string) bool {
	ns = strings.TrimSpace(ns)
	if ns == "" || ns == n.current {
		return false
	}
	n.current = ns
	return true
}
