package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// AppSummary is one row of the namespace application list.
type AppSummary struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version,omitempty"`
	Artifact    struct {
		Name    string `json:"name"`
		Version string `json:"version,omitempty"`
	} `json:"artifact"`
}

// Artifact identifies the artifact an application was deployed from.
type Artifact struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
	Scope   string `json:"scope,omitempty"`
}

// Program is a bare program record nested in an application.
type Program struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// Dataset is a bare dataset record nested in an application.
type Dataset struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// Stream is a bare stream record nested in an application.
type Stream struct {
	Name string `json:"name"`
}

// App is the application detail record.
type App struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Artifact    Artifact  `json:"artifact"`
	Programs    []Program `json:"programs"`
	Datasets    []Dataset `json:"datasets"`
	Streams     []Stream  `json:"streams"`
}

// Empty reports whether the platform returned a record with no content.
func (a App) Empty() bool {
	return a.Name == "" && len(a.Programs) == 0 && len(a.Datasets) == 0 && len(a.Streams) == 0
}

// ListApps returns the applications deployed in namespace.
func (c *Client) ListApps(ctx context.Context, namespace string) ([]AppSummary, error) {
	path, err := namespacePath(namespace, "apps")
	if err != nil {
		return nil, err
	}
	var apps []AppSummary
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// GetApp fetches the detail record of an application.
func (c *Client) GetApp(ctx context.Context, namespace, appID string) (App, error) {
	id, err := requireID("app id", appID)
	if err != nil {
		return App{}, err
	}
	path, err := namespacePath(namespace, "apps", id)
	if err != nil {
		return App{}, err
	}
	var app App
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &app); err != nil {
		return App{}, err
	}
	return app, nil
}

// DeleteApp removes an application.
func (c *Client) DeleteApp(ctx context.Context, namespace, appID string) error {
	id, err := requireID("app id", appID)
	if err != nil {
		return err
	}
	path, err := namespacePath(namespace, "apps", id)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// SetPreferences replaces the preferences of an application.
func (c *Client) SetPreferences(ctx context.Context, namespace, appID string, prefs map[string]string) error {
	id, err := requireID("app id", appID)
	if err != nil {
		return err
	}
	path, err := namespacePath(namespace, "apps", id, "preferences")
	if err != nil {
		return err
	}
	if prefs == nil {
		prefs = map[string]string{}
	}
	return c.do(ctx, http.MethodPut, path, nil, prefs, nil)
}

// StartProgram starts a program of an application.
func (c *Client) StartProgram(ctx context.Context, namespace, appID, programType, program string) error {
	return c.programAction(ctx, namespace, appID, programType, program, "start")
}

// StopProgram stops a program of an application.
func (c *Client) StopProgram(ctx context.Context, namespace, appID, programType, program string) error {
	return c.programAction(ctx, namespace, appID, programType, program, "stop")
}

func (c *Client) programAction(ctx context.Context, namespace, appID, programType, program, action string) error {
	id, err := requireID("app id", appID)
	if err != nil {
		return err
	}
	name, err := requireID("program", program)
	if err != nil {
		return err
	}
	segment, err := ProgramTypePath(programType)
	if err != nil {
		return err
	}
	path, err := namespacePath(namespace, "apps", id, segment, name, action)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, nil, nil, nil)
}

var programTypePaths = map[string]string{
	"flow":      "flows",
	"mapreduce": "mapreduce",
	"spark":     "spark",
	"workflow":  "workflows",
	"service":   "services",
	"worker":    "workers",
}

// ProgramTypePath maps a program type as reported by the platform to its URL
// segment.
func ProgramTypePath(programType string) (string, error) {
	if seg, ok := programTypePaths[strings.ToLower(strings.TrimSpace(programType))]; ok {
		return seg, nil
	}
	return "", fmt.Errorf("program type %q: %w", programType, ErrInvalidArgument)
}
