package testutil

import (
	"net/http/httptest"
	"testing"

	"github.com/atomicstack/pipeline-console/internal/api"
	"github.com/atomicstack/pipeline-console/internal/mockplatform"
)

// StartPlatform serves the demo fixtures on a loopback listener and returns
// a client bound to it. The server stops when the test ends.
func StartPlatform(t *testing.T) (*api.Client, *mockplatform.Platform) {
	t.Helper()
	return StartPlatformWith(t, mockplatform.Demo())
}

// StartPlatformWith serves platform instead of the demo fixtures.
func StartPlatformWith(t *testing.T, platform *mockplatform.Platform) (*api.Client, *mockplatform.Platform) {
	t.Helper()
	srv := httptest.NewServer(platform.Router())
	t.Cleanup(srv.Close)
	client, err := api.New(srv.URL)
	if err != nil {
		t.Fatalf("failed to build api client: %v", err)
	}
	return client, platform
}
