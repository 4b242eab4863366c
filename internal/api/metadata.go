package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Scope values accepted by the metadata endpoints.
const (
	ScopeSystem = "SYSTEM"
	ScopeUser   = "USER"
)

// MetadataParams addresses the metadata of one entity.
type MetadataParams struct {
	Namespace  string
	EntityType string
	EntityID   string
	Scope      string
}

// GetProperties returns the metadata properties of an entity.
func (c *Client) GetProperties(ctx context.Context, params MetadataParams) (map[string]string, error) {
	entityType, err := requireID("entity type", params.EntityType)
	if err != nil {
		return nil, err
	}
	id, err := requireID("entity id", params.EntityID)
	if err != nil {
		return nil, err
	}
	path, err := namespacePath(params.Namespace, entityType, id, "metadata", "properties")
	if err != nil {
		return nil, err
	}
	var query url.Values
	if scope := strings.TrimSpace(params.Scope); scope != "" {
		query = url.Values{"scope": []string{scope}}
	}
	props := map[string]string{}
	if err := c.do(ctx, http.MethodGet, path, query, nil, &props); err != nil {
		return nil, err
	}
	return props, nil
}
