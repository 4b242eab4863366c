// Package browser tracks which data-source browser is active and loads the
// topic listing of a messaging connection.
package browser

import (
	"slices"

	"github.com/atomicstack/pipeline-console/internal/api"
)

// Kind names a browser variant.
type Kind string

const (
	KindNone  Kind = ""
	KindFile  Kind = "file"
	KindKafka Kind = "kafka"
)

// Valid reports whether k is a known browser variant.
func (k Kind) Valid() bool {
	return k == KindFile || k == KindKafka
}

// KafkaState is the topic browser state. Info and Topics are only set after
// both lookups succeeded.
type KafkaState struct {
	Loading      bool
	ConnectionID string
	Info         api.ConnectionInfo
	Topics       []string
	Err          error
	ErrStage     string
	// Request is the generation of the last request started for this kind.
	Request int
}

// FileState is the file browser state.
type FileState struct {
	Path string
}

// Selection is the whole browser store. At most one kind is active.
type Selection struct {
	Active     Kind
	Generation int
	Kafka      KafkaState
	File       FileState
}

// Loading reports whether kind has a request in flight.
func (s Selection) Loading(kind Kind) bool {
	switch kind {
	case KindKafka:
		return s.Kafka.Loading
	default:
		return false
	}
}

// Action is a store mutation. The set is closed to this package.
type Action interface {
	apply(Selection) Selection
}

// SetActiveBrowser marks Kind active and supersedes any pending result.
type SetActiveBrowser struct {
	Kind Kind
}

func (a SetActiveBrowser) apply(s Selection) Selection {
	if !a.Kind.Valid() {
		return s
	}
	s.Active = a.Kind
	s.Generation++
	return s
}

// SetKafkaConnectionID records the chosen connection.
type SetKafkaConnectionID struct {
	ID string
}

func (a SetKafkaConnectionID) apply(s Selection) Selection {
	s.Kafka.ConnectionID = a.ID
	return s
}

// SetKafkaLoading toggles the loading flag. Starting a load also tags it with
// the current generation and clears a previous error.
type SetKafkaLoading struct {
	Loading bool
}

func (a SetKafkaLoading) apply(s Selection) Selection {
	s.Kafka.Loading = a.Loading
	if a.Loading {
		s.Kafka.Request = s.Generation
		s.Kafka.Err = nil
		s.Kafka.ErrStage = ""
	}
	return s
}

// SetKafkaProperties publishes a successful listing and clears loading.
type SetKafkaProperties struct {
	ConnectionID string
	Info         api.ConnectionInfo
	Topics       []string
}

func (a SetKafkaProperties) apply(s Selection) Selection {
	s.Kafka.ConnectionID = a.ConnectionID
	s.Kafka.Info = a.Info
	s.Kafka.Topics = slices.Clone(a.Topics)
	s.Kafka.Err = nil
	s.Kafka.ErrStage = ""
	s.Kafka.Loading = false
	return s
}

// SetError publishes a failed listing and clears loading. Previous topics are
// dropped so a failure never shows data from another connection.
type SetError struct {
	Stage string
	Err   error
}

func (a SetError) apply(s Selection) Selection {
	s.Kafka.Err = a.Err
	s.Kafka.ErrStage = a.Stage
	s.Kafka.Info = nil
	s.Kafka.Topics = nil
	s.Kafka.Loading = false
	return s
}

// Reset returns to the empty selection. The generation keeps counting so
// results started before the reset are recognised as stale.
type Reset struct{}

func (Reset) apply(s Selection) Selection {
	return Selection{Generation: s.Generation + 1}
}

// Reduce applies a to s.
func Reduce(s Selection, a Action) Selection {
	if a == nil {
		return s
	}
	return a.apply(s)
}

// Store holds the selection. It is owned by the UI loop.
type Store struct {
	state Selection
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Dispatch applies actions in order and returns the new state.
func (s *Store) Dispatch(actions ...Action) Selection {
	for _, a := range actions {
		s.state = Reduce(s.state, a)
	}
	return s.state
}

// State returns a copy of the current selection.
func (s *Store) State() Selection {
	out := s.state
	out.Kafka.Topics = slices.Clone(s.state.Kafka.Topics)
	return out
}
