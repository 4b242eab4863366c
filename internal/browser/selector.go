package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atomicstack/pipeline-console/internal/api"
	"github.com/atomicstack/pipeline-console/internal/load"
	"github.com/atomicstack/pipeline-console/internal/logging/events"
)

// Lookup stage names reported on failure.
const (
	StageConnection = "connection"
	StageTopics     = "topics"
)

// Fetcher is the slice of the platform API the selector needs.
type Fetcher interface {
	GetConnection(ctx context.Context, namespace, connectionID string) (api.ConnectionInfo, error)
	ListTopics(ctx context.Context, namespace string, info api.ConnectionInfo) ([]string, error)
}

// Request is an activation that passed the guard.
type Request struct {
	Kind       Kind
	Namespace  string
	SourceID   string
	Generation int
}

// Result is the outcome of a fetch. Info and Topics are only set when Err is
// nil.
type Result struct {
	Request Request
	Info    api.ConnectionInfo
	Topics  []string
	Stage   string
	Err     error
}

type listing struct {
	info   api.ConnectionInfo
	topics []string
}

// Selector activates browsers against a Store.
type Selector struct {
	api       Fetcher
	store     *Store
	namespace func() string
}

// NewSelector builds a selector. namespace is read at activation time.
func NewSelector(f Fetcher, store *Store, namespace func() string) *Selector {
	if store == nil {
		store = NewStore()
	}
	if namespace == nil {
		namespace = func() string { return "" }
	}
	return &Selector{api: f, store: store, namespace: namespace}
}

// Store returns the backing store.
func (s *Selector) Store() *Store {
	return s.store
}

// Begin runs the synchronous part of an activation. It returns false when
// kind is already loading, in which case nothing changed. File activation
// only records the active kind and needs no fetch.
func (s *Selector) Begin(kind Kind, sourceID string) (Request, bool) {
	if !kind.Valid() {
		return Request{}, false
	}
	cur := s.store.State()
	if cur.Loading(kind) {
		events.Browser.Busy(string(kind), sourceID)
		return Request{}, false
	}
	if kind == KindFile {
		st := s.store.Dispatch(SetActiveBrowser{Kind: kind})
		events.Browser.Activate(string(kind), sourceID, st.Generation)
		return Request{}, false
	}
	st := s.store.Dispatch(
		SetKafkaConnectionID{ID: sourceID},
		SetActiveBrowser{Kind: kind},
		SetKafkaLoading{Loading: true},
	)
	events.Browser.Activate(string(kind), sourceID, st.Generation)
	return Request{
		Kind:       kind,
		Namespace:  s.namespace(),
		SourceID:   sourceID,
		Generation: st.Generation,
	}, true
}

// Fetch resolves the connection and then lists its topics. It touches no
// store state and is safe to run off the UI loop.
func (s *Selector) Fetch(ctx context.Context, req Request) Result {
	res := Result{Request: req}
	if strings.TrimSpace(req.Namespace) == "" || strings.TrimSpace(req.SourceID) == "" {
		res.Stage = StageConnection
		res.Err = fmt.Errorf("activate %s %q: %w", req.Kind, req.SourceID, api.ErrInvalidArgument)
		return res
	}
	resolve := load.Named(StageConnection, func(ctx context.Context, id string) (api.ConnectionInfo, error) {
		return s.api.GetConnection(ctx, req.Namespace, id)
	})
	list := load.Named(StageTopics, func(ctx context.Context, info api.ConnectionInfo) (listing, error) {
		topics, err := s.api.ListTopics(ctx, req.Namespace, info)
		if err != nil {
			return listing{}, err
		}
		return listing{info: info, topics: topics}, nil
	})
	out, err := load.Then(resolve, list)(ctx, req.SourceID)
	if err != nil {
		res.Err = err
		res.Stage = StageConnection
		var stageErr *load.StageError
		if errors.As(err, &stageErr) {
			res.Stage = stageErr.Stage
		}
		return res
	}
	res.Info = out.info
	res.Topics = out.topics
	return res
}

// Complete publishes res. Results from a superseded generation publish
// nothing; they only release the loading flag they set.
func (s *Selector) Complete(res Result) Selection {
	req := res.Request
	cur := s.store.State()
	if req.Generation != cur.Generation {
		events.Browser.Stale(string(req.Kind), req.SourceID, req.Generation, cur.Generation)
		if cur.Kafka.Loading && cur.Kafka.Request == req.Generation {
			return s.store.Dispatch(SetKafkaLoading{Loading: false})
		}
		return cur
	}
	if res.Err != nil {
		events.Browser.Failed(string(req.Kind), req.SourceID, res.Stage, res.Err)
		return s.store.Dispatch(SetError{Stage: res.Stage, Err: res.Err})
	}
	events.Browser.Loaded(string(req.Kind), req.SourceID, len(res.Topics))
	return s.store.Dispatch(SetKafkaProperties{
		ConnectionID: req.SourceID,
		Info:         res.Info,
		Topics:       res.Topics,
	})
}
