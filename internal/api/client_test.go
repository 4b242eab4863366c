package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atomicstack/pipeline-console/internal/api"
	"github.com/atomicstack/pipeline-console/internal/mockplatform"
	"github.com/stretchr/testify/require"
)

func newDemoClient(t *testing.T) (*api.Client, *mockplatform.Platform) {
	t.Helper()
	platform := mockplatform.Demo()
	srv := httptest.NewServer(platform.Router())
	t.Cleanup(srv.Close)
	client, err := api.New(srv.URL, api.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return client, platform
}

func TestNewRejectsMissingScheme(t *testing.T) {
	_, err := api.New("localhost:11015")
	require.ErrorIs(t, err, api.ErrInvalidArgument)

	_, err = api.New("  ")
	require.ErrorIs(t, err, api.ErrInvalidArgument)
}

func TestGetAppAndProperties(t *testing.T) {
	client, _ := newDemoClient(t)
	ctx := context.Background()

	app, err := client.GetApp(ctx, mockplatform.DemoNamespace, "PurchaseHistory")
	require.NoError(t, err)
	require.Equal(t, "PurchaseHistory", app.Name)
	require.Len(t, app.Programs, 4)
	require.Len(t, app.Datasets, 3)
	require.Len(t, app.Streams, 1)
	require.False(t, app.Empty())

	props, err := client.GetProperties(ctx, api.MetadataParams{
		Namespace:  mockplatform.DemoNamespace,
		EntityType: "apps",
		EntityID:   "PurchaseHistory",
		Scope:      api.ScopeSystem,
	})
	require.NoError(t, err)
	require.Equal(t, "gold", props["tier"])
}

func TestMissingAppIsNotFound(t *testing.T) {
	client, _ := newDemoClient(t)
	_, err := client.GetApp(context.Background(), mockplatform.DemoNamespace, "Nope")
	require.Error(t, err)
	require.True(t, api.IsNotFound(err))

	var se *api.StatusError
	require.True(t, errors.As(err, &se))
	require.Equal(t, "application not found", se.Message)
}

func TestEmptyIdentifiersFailWithoutRequest(t *testing.T) {
	client, platform := newDemoClient(t)
	_, err := client.GetApp(context.Background(), mockplatform.DemoNamespace, "")
	require.ErrorIs(t, err, api.ErrInvalidArgument)
	_, err = client.ListApps(context.Background(), "")
	require.ErrorIs(t, err, api.ErrInvalidArgument)
	require.Zero(t, platform.Hits(mockplatform.RouteApp))
	require.Zero(t, platform.Hits(mockplatform.RouteApps))
}

func TestInjectedFailureSurfacesStatus(t *testing.T) {
	client, platform := newDemoClient(t)
	platform.Fail(mockplatform.RouteTables, http.StatusServiceUnavailable)

	_, err := client.ListTables(context.Background(), mockplatform.DemoNamespace)
	require.Error(t, err)
	require.Equal(t, http.StatusServiceUnavailable, api.StatusCode(err))
	require.False(t, api.IsNotFound(err))
}

func TestConnectionAndTopics(t *testing.T) {
	client, _ := newDemoClient(t)
	ctx := context.Background()

	conns, err := client.ListConnections(ctx, mockplatform.DemoNamespace, "kafka")
	require.NoError(t, err)
	require.Len(t, conns, 2)

	info, err := client.GetConnection(ctx, mockplatform.DemoNamespace, "kafka-local")
	require.NoError(t, err)
	require.Equal(t, "Local Kafka", info.Name())

	topics, err := client.ListTopics(ctx, mockplatform.DemoNamespace, info)
	require.NoError(t, err)
	require.Equal(t, []string{"clickstream", "orders", "payments", "purchase-events"}, topics)

	down, err := client.GetConnection(ctx, mockplatform.DemoNamespace, "kafka-down")
	require.NoError(t, err)
	_, err = client.ListTopics(ctx, mockplatform.DemoNamespace, down)
	require.Equal(t, http.StatusBadRequest, api.StatusCode(err))
}

func TestFastActions(t *testing.T) {
	client, platform := newDemoClient(t)
	ctx := context.Background()
	ns := mockplatform.DemoNamespace

	require.NoError(t, client.SetPreferences(ctx, ns, "WordCount", map[string]string{"input.path": "/tmp/in"}))
	require.Equal(t, map[string]string{"input.path": "/tmp/in"}, platform.Preferences(ns, "WordCount"))

	require.NoError(t, client.StartProgram(ctx, ns, "WordCount", "Spark", "WordCounter"))
	require.Equal(t, "start", platform.ProgramStatus(ns, "WordCount", "WordCounter"))
	require.NoError(t, client.StopProgram(ctx, ns, "WordCount", "Spark", "WordCounter"))
	require.Equal(t, "stop", platform.ProgramStatus(ns, "WordCount", "WordCounter"))

	_, err := api.ProgramTypePath("Mystery")
	require.ErrorIs(t, err, api.ErrInvalidArgument)

	require.NoError(t, client.DeleteApp(ctx, ns, "WordCount"))
	_, err = client.GetApp(ctx, ns, "WordCount")
	require.True(t, api.IsNotFound(err))

	apps, err := client.ListApps(ctx, ns)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	require.Equal(t, "PurchaseHistory", apps[0].Name)
}
