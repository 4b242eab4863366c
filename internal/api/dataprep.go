package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// ConnectionInfo is the connection descriptor returned by the data-prep
// service. It is passed back verbatim when listing topics, so the console
// treats it as opaque apart from a few display fields.
type ConnectionInfo map[string]interface{}

// Field returns a top-level string field, or "" when absent.
func (ci ConnectionInfo) Field(key string) string {
	if ci == nil {
		return ""
	}
	if v, ok := ci[key].(string); ok {
		return v
	}
	return ""
}

// Name is the human readable connection name.
func (ci ConnectionInfo) Name() string {
	if name := ci.Field("name"); name != "" {
		return name
	}
	return ci.Field("id")
}

// Connection is a row of the data-prep connection list.
type Connection struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Type       string            `json:"type"`
	Properties map[string]string `json:"properties,omitempty"`
}

type valuesResponse[T any] struct {
	Values []T `json:"values"`
}

func dataprepPath(namespace string, segments ...string) (string, error) {
	base := []string{"apps", "dataprep", "services", "service", "methods"}
	return namespacePath(namespace, append(base, segments...)...)
}

// ListConnections returns data-prep connections, optionally filtered by type.
func (c *Client) ListConnections(ctx context.Context, namespace, connType string) ([]Connection, error) {
	path, err := dataprepPath(namespace, "connections")
	if err != nil {
		return nil, err
	}
	var query url.Values
	if t := strings.TrimSpace(connType); t != "" {
		query = url.Values{"type": []string{t}}
	}
	var resp valuesResponse[Connection]
	if err := c.do(ctx, http.MethodGet, path, query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Values, nil
}

// GetConnection resolves the connection info for connectionID. The platform
// answers with a values list whose first element is the info object.
func (c *Client) GetConnection(ctx context.Context, namespace, connectionID string) (ConnectionInfo, error) {
	id, err := requireID("connection id", connectionID)
	if err != nil {
		return nil, err
	}
	path, err := dataprepPath(namespace, "connections", id)
	if err != nil {
		return nil, err
	}
	var resp valuesResponse[ConnectionInfo]
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Values) == 0 || resp.Values[0] == nil {
		return nil, &StatusError{Method: http.MethodGet, Path: path, Code: http.StatusNotFound, Message: fmt.Sprintf("connection %s has no info", connectionID)}
	}
	return resp.Values[0], nil
}

// ListTopics lists the Kafka topics reachable through info.
func (c *Client) ListTopics(ctx context.Context, namespace string, info ConnectionInfo) ([]string, error) {
	if info == nil {
		return nil, fmt.Errorf("connection info: %w", ErrInvalidArgument)
	}
	path, err := dataprepPath(namespace, "connections", "kafka")
	if err != nil {
		return nil, err
	}
	var resp valuesResponse[string]
	if err := c.do(ctx, http.MethodPost, path, nil, info, &resp); err != nil {
		return nil, err
	}
	return resp.Values, nil
}
