package api

import (
	"context"
	"net/http"
)

// Table is an explorable table in a namespace.
type Table struct {
	Table    string `json:"table"`
	Database string `json:"database"`
}

// ListTables returns the explorable tables of a namespace.
func (c *Client) ListTables(ctx context.Context, namespace string) ([]Table, error) {
	path, err := namespacePath(namespace, "data", "explore", "tables")
	if err != nil {
		return nil, err
	}
	var tables []Table
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &tables); err != nil {
		return nil, err
	}
	return tables, nil
}
