package browser

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/atomicstack/pipeline-console/internal/api"
	"github.com/atomicstack/pipeline-console/internal/load"
	"github.com/atomicstack/pipeline-console/internal/mockplatform"
	"github.com/atomicstack/pipeline-console/internal/testutil"
	"github.com/stretchr/testify/require"
)

func demoNamespace() string { return mockplatform.DemoNamespace }

// activate runs Begin, Fetch and Complete in sequence, the way the UI loop
// does across its update cycles.
func activate(sel *Selector, kind Kind, sourceID string) Selection {
	req, ok := sel.Begin(kind, sourceID)
	if !ok {
		return sel.Store().State()
	}
	return sel.Complete(sel.Fetch(context.Background(), req))
}

func TestActivateKafkaPublishesListing(t *testing.T) {
	client, _ := testutil.StartPlatform(t)
	sel := NewSelector(client, nil, demoNamespace)

	st := activate(sel, KindKafka, "kafka-local")
	require.Equal(t, KindKafka, st.Active)
	require.False(t, st.Kafka.Loading)
	require.NoError(t, st.Kafka.Err)
	require.Equal(t, "kafka-local", st.Kafka.ConnectionID)
	require.Equal(t, "Local Kafka", st.Kafka.Info.Name())
	require.Equal(t, []string{"clickstream", "orders", "payments", "purchase-events"}, st.Kafka.Topics)
}

func TestActivateKafkaListingFailureNeverSetsTopics(t *testing.T) {
	client, platform := testutil.StartPlatform(t)
	sel := NewSelector(client, nil, demoNamespace)

	st := activate(sel, KindKafka, "kafka-down")
	require.Equal(t, 1, platform.Hits(mockplatform.RouteConnection))
	require.Equal(t, 1, platform.Hits(mockplatform.RouteTopics))
	require.False(t, st.Kafka.Loading)
	require.Error(t, st.Kafka.Err)
	require.Equal(t, StageTopics, st.Kafka.ErrStage)
	require.Nil(t, st.Kafka.Topics)
	require.Nil(t, st.Kafka.Info)
}

func TestActivateKafkaResolveFailureSkipsListing(t *testing.T) {
	client, platform := testutil.StartPlatform(t)
	sel := NewSelector(client, nil, demoNamespace)

	st := activate(sel, KindKafka, "no-such-connection")
	require.Equal(t, StageConnection, st.Kafka.ErrStage)
	require.True(t, api.IsNotFound(st.Kafka.Err))
	require.Zero(t, platform.Hits(mockplatform.RouteTopics))
	require.Nil(t, st.Kafka.Topics)
}

func TestBeginWhileLoadingIsNoOp(t *testing.T) {
	client, platform := testutil.StartPlatform(t)
	sel := NewSelector(client, nil, demoNamespace)

	req, ok := sel.Begin(KindKafka, "kafka-local")
	require.True(t, ok)
	before := sel.Store().State()
	require.True(t, before.Kafka.Loading)

	_, ok = sel.Begin(KindKafka, "kafka-down")
	require.False(t, ok)
	require.Equal(t, before, sel.Store().State())

	st := activate(sel, KindKafka, "kafka-down")
	require.Equal(t, before, st)
	require.Zero(t, platform.Hits(mockplatform.RouteConnection))

	st = sel.Complete(sel.Fetch(context.Background(), req))
	require.Equal(t, 1, platform.Hits(mockplatform.RouteConnection))
	require.Equal(t, "kafka-local", st.Kafka.ConnectionID)
	require.Len(t, st.Kafka.Topics, 4)
}

func TestSwitchingKindMidLoadDropsStaleResult(t *testing.T) {
	client, _ := testutil.StartPlatform(t)
	sel := NewSelector(client, nil, demoNamespace)

	req, ok := sel.Begin(KindKafka, "kafka-local")
	require.True(t, ok)
	_, ok = sel.Begin(KindFile, "/")
	require.False(t, ok)

	st := sel.Complete(sel.Fetch(context.Background(), req))
	require.Equal(t, KindFile, st.Active)
	require.False(t, st.Kafka.Loading)
	require.Nil(t, st.Kafka.Topics)

	_, ok = sel.Begin(KindKafka, "kafka-local")
	require.True(t, ok, "kafka should be activatable again after the stale result")
}

func TestResetDropsInFlightResult(t *testing.T) {
	client, _ := testutil.StartPlatform(t)
	sel := NewSelector(client, nil, demoNamespace)

	req, ok := sel.Begin(KindKafka, "kafka-local")
	require.True(t, ok)
	sel.Store().Dispatch(Reset{})
	st := sel.Complete(sel.Fetch(context.Background(), req))
	require.Equal(t, KindNone, st.Active)
	require.Empty(t, st.Kafka.ConnectionID)
	require.Nil(t, st.Kafka.Topics)
}

func TestFileActivationDoesNotFetch(t *testing.T) {
	client, platform := testutil.StartPlatform(t)
	sel := NewSelector(client, nil, demoNamespace)

	st := activate(sel, KindFile, "/data")
	require.Equal(t, KindFile, st.Active)
	require.Zero(t, platform.Hits(mockplatform.RouteConnection))
	require.Zero(t, platform.Hits(mockplatform.RouteTopics))
}

func TestFetchWithoutNamespaceIsInvalid(t *testing.T) {
	sel := NewSelector(nil, nil, nil)
	req, ok := sel.Begin(KindKafka, "kafka-local")
	require.True(t, ok)
	res := sel.Fetch(context.Background(), req)
	require.ErrorIs(t, res.Err, api.ErrInvalidArgument)
	st := sel.Complete(res)
	require.False(t, st.Kafka.Loading)
	require.Equal(t, StageConnection, st.Kafka.ErrStage)
}

type stubFetcher struct {
	topicsErr error
}

func (stubFetcher) GetConnection(context.Context, string, string) (api.ConnectionInfo, error) {
	return api.ConnectionInfo{"id": "c1", "name": "c1"}, nil
}

func (s stubFetcher) ListTopics(context.Context, string, api.ConnectionInfo) ([]string, error) {
	return []string{"a"}, s.topicsErr
}

func TestFetchReportsStageError(t *testing.T) {
	boom := &api.StatusError{Method: http.MethodPost, Path: "/topics", Code: http.StatusBadGateway}
	sel := NewSelector(stubFetcher{topicsErr: boom}, nil, demoNamespace)
	req, ok := sel.Begin(KindKafka, "c1")
	require.True(t, ok)
	res := sel.Fetch(context.Background(), req)
	require.ErrorIs(t, res.Err, boom)
	var stageErr *load.StageError
	require.True(t, errors.As(res.Err, &stageErr))
	require.Equal(t, StageTopics, res.Stage)
	require.Nil(t, res.Topics)
}

func TestReduceIgnoresUnknownKind(t *testing.T) {
	s := Reduce(Selection{}, SetActiveBrowser{Kind: "ftp"})
	require.Equal(t, Selection{}, s)
	require.Equal(t, s, Reduce(s, nil))
}
