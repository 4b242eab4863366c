package menu

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/atomicstack/pipeline-console/internal/api"
	"github.com/atomicstack/pipeline-console/internal/browser"
	"github.com/atomicstack/pipeline-console/internal/notice"
	tea "github.com/charmbracelet/bubbletea"
)

// Item represents a selectable menu entry.
type Item struct {
	ID    string
	Label string
}

// Platform is the slice of the platform API that menu actions call.
type Platform interface {
	DeleteApp(ctx context.Context, namespace, appID string) error
	SetPreferences(ctx context.Context, namespace, appID string, prefs map[string]string) error
	StartProgram(ctx context.Context, namespace, appID, programType, program string) error
	StopProgram(ctx context.Context, namespace, appID, programType, program string) error
}

// Context carries runtime data needed by loader functions.
type Context struct {
	Namespace   string
	API         Platform
	Apps        []api.AppSummary
	Connections []api.Connection
	Tables      []api.Table
}

// Loader populates submenu entries on demand.
type Loader func(Context) ([]Item, error)

type Action func(Context, Item) tea.Cmd

// ActionResult communicates the outcome of executing a menu action. Action is
// set for fast actions whose success is announced through the notice board.
type ActionResult struct {
	Action     notice.Action
	EntityType string
	Namespace  string
	Target     string
	Info       string
	Err        error
}

// OpenDetailMsg asks the UI to show the detail of an application.
type OpenDetailMsg struct {
	Namespace string
	AppID     string
	Label     string
}

// BrowseMsg asks the UI to make a source browser active.
type BrowseMsg struct {
	Kind     browser.Kind
	SourceID string
	Label    string
}

// PreferencesPrompt requests the preferences form for an application.
type PreferencesPrompt struct {
	Context Context
	AppID   string
	Initial map[string]string
}

const actionTimeout = 30 * time.Second

func actionContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), actionTimeout)
}

// Section is a top-level entry of the main menu. Load lists its rows;
// Open runs for the row the user picks (or, on multi-select sections, for
// all selected rows at once). Sections without Load act immediately.
type Section struct {
	ID          string
	Load        Loader
	Open        Action
	MultiSelect bool
}

// Sections lists the main menu in display order.
func Sections() []Section {
	return []Section{
		{ID: "applications", Load: loadApplicationsMenu, Open: OpenApplicationAction},
		{ID: "connections", Load: loadConnectionsMenu, Open: BrowseConnectionAction},
		{ID: "tables", Load: loadTablesMenu, Open: SelectTablesAction, MultiSelect: true},
		{ID: "files", Open: BrowseFilesAction},
	}
}

// RootItems returns the main menu rows.
func RootItems() []Item {
	sections := Sections()
	items := make([]Item, 0, len(sections))
	for _, s := range sections {
		items = append(items, Item{ID: s.ID, Label: prettyLabel(s.ID)})
	}
	return items
}

func prettyLabel(id string) string {
	if id == "" {
		return id
	}
	parts := strings.FieldsFunc(id, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		for j := 1; j < len(runes); j++ {
			runes[j] = unicode.ToLower(runes[j])
		}
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}
