package entity

import (
	"context"
	"fmt"
	"strings"

	"github.com/atomicstack/pipeline-console/internal/api"
	"github.com/atomicstack/pipeline-console/internal/load"
	"github.com/atomicstack/pipeline-console/internal/logging"
	"github.com/atomicstack/pipeline-console/internal/logging/events"
)

// Status classifies a load outcome.
type Status int

const (
	StatusDetail Status = iota
	StatusNotFound
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusDetail:
		return "detail"
	case StatusNotFound:
		return "not-found"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Outcome is the single result published by a load. Detail is set only for
// StatusDetail and Err only for StatusError.
type Outcome struct {
	Namespace string
	ID        string
	Status    Status
	Detail    Detail
	Err       error
}

// Fetcher is the slice of the platform API the loader needs.
type Fetcher interface {
	GetProperties(ctx context.Context, params api.MetadataParams) (map[string]string, error)
	GetApp(ctx context.Context, namespace, appID string) (api.App, error)
}

// TablesRefresher refreshes the explorable tables of a namespace.
type TablesRefresher func(ctx context.Context, namespace string) error

// Loader fetches application detail records.
type Loader struct {
	api     Fetcher
	refresh TablesRefresher
	token   func() string
}

// LoaderOption customises a Loader.
type LoaderOption func(*Loader)

// WithTablesRefresh runs refresh in the background on every load.
func WithTablesRefresh(refresh TablesRefresher) LoaderOption {
	return func(l *Loader) {
		l.refresh = refresh
	}
}

// WithTokens replaces the list token generator.
func WithTokens(token func() string) LoaderOption {
	return func(l *Loader) {
		if token != nil {
			l.token = token
		}
	}
}

// NewLoader builds a loader over f.
func NewLoader(f Fetcher, opts ...LoaderOption) *Loader {
	l := &Loader{api: f, token: NewToken}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches properties and detail for appID concurrently, waits for both,
// and reports exactly one outcome. Every call re-fetches.
func (l *Loader) Load(ctx context.Context, namespace, appID string) Outcome {
	out := Outcome{Namespace: namespace, ID: appID}
	if strings.TrimSpace(namespace) == "" || strings.TrimSpace(appID) == "" {
		out.Status = StatusError
		out.Err = fmt.Errorf("load %q in %q: %w", appID, namespace, api.ErrInvalidArgument)
		return out
	}
	events.Entity.Load(namespace, appID)
	l.refreshTables(ctx, namespace)

	props, app, err := load.Both(ctx,
		func(ctx context.Context) (map[string]string, error) {
			return l.api.GetProperties(ctx, api.MetadataParams{
				Namespace:  namespace,
				EntityType: "apps",
				EntityID:   appID,
				Scope:      api.ScopeSystem,
			})
		},
		func(ctx context.Context) (api.App, error) {
			return l.api.GetApp(ctx, namespace, appID)
		},
	)
	switch {
	case api.IsNotFound(err):
		out.Status = StatusNotFound
		events.Entity.NotFound(namespace, appID)
		return out
	case err != nil:
		out.Status = StatusError
		out.Err = err
		events.Entity.Failed(namespace, appID, err)
		return out
	case app.Empty():
		out.Status = StatusNotFound
		events.Entity.NotFound(namespace, appID)
		return out
	}

	out.Status = StatusDetail
	out.Detail = Decorate(appID, app, props, l.token)
	events.Entity.Loaded(namespace, appID, len(out.Detail.Programs), len(out.Detail.Datasets), len(out.Detail.Streams))
	return out
}

func (l *Loader) refreshTables(ctx context.Context, namespace string) {
	if l.refresh == nil {
		return
	}
	events.Entity.TablesRefresh(namespace)
	load.Detach(context.WithoutCancel(ctx), func(ctx context.Context) error {
		return l.refresh(ctx, namespace)
	}, func(err error) {
		events.Entity.TablesFailed(namespace, err)
		logging.Error(fmt.Errorf("refresh tables in %s: %w", namespace, err))
	})
}
