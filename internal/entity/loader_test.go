package entity

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/atomicstack/pipeline-console/internal/api"
	"github.com/atomicstack/pipeline-console/internal/mockplatform"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	app      api.App
	props    map[string]string
	appErr   error
	propsErr error
	calls    atomic.Int32
}

func (f *fakeFetcher) GetProperties(_ context.Context, params api.MetadataParams) (map[string]string, error) {
	f.calls.Add(1)
	if params.EntityType != "apps" || params.Scope != api.ScopeSystem {
		return nil, errors.New("unexpected metadata params")
	}
	return f.props, f.propsErr
}

func (f *fakeFetcher) GetApp(context.Context, string, string) (api.App, error) {
	f.calls.Add(1)
	return f.app, f.appErr
}

func sampleApp() api.App {
	return api.App{
		Name: "PurchaseHistory",
		Programs: []api.Program{
			{Name: "PurchaseFlow", Type: "Flow"},
			{Name: "PurchaseHistoryWorkflow", Type: "Workflow"},
		},
		Datasets: []api.Dataset{{Name: "history"}, {Name: "purchases"}},
		Streams:  []api.Stream{{Name: "purchaseStream"}},
	}
}

func notFound() error {
	return &api.StatusError{Method: http.MethodGet, Path: "/x", Code: http.StatusNotFound}
}

func TestLoadDecoratesEveryNestedItem(t *testing.T) {
	f := &fakeFetcher{app: sampleApp(), props: map[string]string{"owner": "analytics"}}
	out := NewLoader(f).Load(context.Background(), "default", "PurchaseHistory")

	require.Equal(t, StatusDetail, out.Status)
	require.NoError(t, out.Err)
	d := out.Detail
	require.Equal(t, "PurchaseHistory", d.ID)
	require.Equal(t, TypeApplication, d.Type)
	require.Len(t, d.Programs, 2)
	require.Len(t, d.Datasets, 2)
	require.Len(t, d.Streams, 1)
	require.Equal(t, "analytics", d.Properties["owner"])

	seen := map[string]bool{}
	tokens := []string{}
	for _, p := range d.Programs {
		tokens = append(tokens, p.Token)
	}
	for _, ds := range d.Datasets {
		tokens = append(tokens, ds.Token)
		require.Equal(t, EntityID{Entity: TypeDataset, Name: ds.Name}, ds.EntityID)
	}
	for _, s := range d.Streams {
		tokens = append(tokens, s.Token)
		require.Equal(t, EntityID{Entity: TypeStream, Name: s.Name}, s.EntityID)
	}
	for _, tok := range tokens {
		require.NotEmpty(t, tok)
		require.False(t, seen[tok], "duplicate token %s", tok)
		seen[tok] = true
	}
}

func TestLoadEmptyRecordIsNotFound(t *testing.T) {
	f := &fakeFetcher{app: api.App{}, props: map[string]string{}}
	out := NewLoader(f).Load(context.Background(), "default", "Ghost")
	require.Equal(t, StatusNotFound, out.Status)
	require.Empty(t, out.Detail.ID)
}

func TestLoadEitherNotFoundIsNotFound(t *testing.T) {
	cases := map[string]*fakeFetcher{
		"properties": {app: sampleApp(), propsErr: notFound()},
		"detail":     {props: map[string]string{}, appErr: notFound()},
	}
	for name, f := range cases {
		t.Run(name, func(t *testing.T) {
			out := NewLoader(f).Load(context.Background(), "default", "PurchaseHistory")
			require.Equal(t, StatusNotFound, out.Status)
			require.Empty(t, out.Detail.Programs)
		})
	}
}

func TestLoadOtherFailuresAreTransient(t *testing.T) {
	boom := &api.StatusError{Method: http.MethodGet, Path: "/x", Code: http.StatusBadGateway}
	f := &fakeFetcher{app: sampleApp(), propsErr: boom}
	out := NewLoader(f).Load(context.Background(), "default", "PurchaseHistory")
	require.Equal(t, StatusError, out.Status)
	require.ErrorIs(t, out.Err, boom)
	require.Empty(t, out.Detail.Programs)
}

func TestLoadRejectsEmptyArguments(t *testing.T) {
	f := &fakeFetcher{app: sampleApp()}
	out := NewLoader(f).Load(context.Background(), "", "PurchaseHistory")
	require.Equal(t, StatusError, out.Status)
	require.ErrorIs(t, out.Err, api.ErrInvalidArgument)
	out = NewLoader(f).Load(context.Background(), "default", " ")
	require.ErrorIs(t, out.Err, api.ErrInvalidArgument)
	require.Zero(t, f.calls.Load())
}

func TestLoadRefreshesTablesWithoutGating(t *testing.T) {
	f := &fakeFetcher{app: sampleApp(), props: map[string]string{}}
	started := make(chan string, 1)
	release := make(chan struct{})
	loader := NewLoader(f, WithTablesRefresh(func(_ context.Context, ns string) error {
		started <- ns
		<-release
		return errors.New("explore service down")
	}))

	out := loader.Load(context.Background(), "default", "PurchaseHistory")
	require.Equal(t, StatusDetail, out.Status)
	close(release)

	select {
	case ns := <-started:
		require.Equal(t, "default", ns)
	case <-time.After(time.Second):
		t.Fatal("tables refresh never started")
	}
}

func TestLoadIsNotMemoized(t *testing.T) {
	f := &fakeFetcher{app: sampleApp(), props: map[string]string{}}
	loader := NewLoader(f)
	first := loader.Load(context.Background(), "default", "PurchaseHistory")
	second := loader.Load(context.Background(), "default", "PurchaseHistory")
	require.EqualValues(t, 4, f.calls.Load())
	require.NotEqual(t, first.Detail.Programs[0].Token, second.Detail.Programs[0].Token)
}

func TestLoadAgainstMockPlatform(t *testing.T) {
	platform := mockplatform.Demo()
	srv := httptest.NewServer(platform.Router())
	t.Cleanup(srv.Close)
	client, err := api.New(srv.URL)
	require.NoError(t, err)

	loader := NewLoader(client)
	out := loader.Load(context.Background(), mockplatform.DemoNamespace, "WordCount")
	require.Equal(t, StatusDetail, out.Status)
	require.Len(t, out.Detail.Programs, 2)
	require.Equal(t, "examples", out.Detail.Properties["owner"])

	out = loader.Load(context.Background(), mockplatform.DemoNamespace, "Missing")
	require.Equal(t, StatusNotFound, out.Status)
}

func TestDecorateUsesSuppliedTokens(t *testing.T) {
	n := 0
	d := Decorate("app", sampleApp(), nil, func() string {
		n++
		return "tok-" + string(rune('a'+n-1))
	})
	require.Equal(t, "tok-a", d.Programs[0].Token)
	require.Equal(t, "tok-e", d.Streams[0].Token)
	require.NotNil(t, d.Properties)

	clone := d.Clone()
	clone.Programs[0].Name = "changed"
	require.Equal(t, "PurchaseFlow", d.Programs[0].Name)
}
