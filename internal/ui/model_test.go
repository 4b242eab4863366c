package ui

import (
	"fmt"
	"testing"

	"github.com/atomicstack/pipeline-console/internal/menu"
)

func TestMenuHeaderRootLevel(t *testing.T) {
	m := NewModel(Options{})
	got := m.menuHeader()
	want := defaultRootTitle
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestMenuHeaderShowsNamespaceAtRoot(t *testing.T) {
	m := NewModel(Options{Namespace: "default"})
	if got := m.menuHeader(); got != "main menu [default]" {
		t.Fatalf("unexpected header %q", got)
	}
}

func TestMenuHeaderNestedLevels(t *testing.T) {
	m := NewModel(Options{})
	m.stack = append(m.stack, newLevel("applications", "applications", nil, nil))
	m.applyNodeSettings(m.stack[1])
	got := m.menuHeader()
	want := "applications"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestMenuHeaderUsesEntityTitleForDynamicLevels(t *testing.T) {
	m := NewModel(Options{})
	apps := newLevel("applications", "applications", nil, nil)
	m.applyNodeSettings(apps)
	m.stack = append(m.stack, apps, newLevel(levelDetail, "PurchaseHistory", nil, nil))
	if got := m.menuHeader(); got != "applications→PurchaseHistory" {
		t.Fatalf("unexpected header %q", got)
	}
}

func TestMenuHeaderCleansSegments(t *testing.T) {
	lvl := newLevel("connections:kafka_topics", "", nil, &menu.Node{ID: "connections:kafka_topics"})
	if got := headerSegmentForLevel(lvl); got != "kafka topics" {
		t.Fatalf("unexpected segment %q", got)
	}
}

func TestRootMenuOverrideSetsInitialLevel(t *testing.T) {
	m := NewModel(Options{RootMenu: "connections"})
	if got := m.stack[0].ID; got != "connections" {
		t.Fatalf("expected root id connections, got %s", got)
	}
	if m.rootMenuID != "connections" {
		t.Fatalf("expected rootMenuID to be connections, got %s", m.rootMenuID)
	}
	if header := m.menuHeader(); header != "connections" {
		t.Fatalf("expected header connections, got %s", header)
	}
}

func TestRootMenuOverrideIncludesRootInHeaderBreadcrumb(t *testing.T) {
	m := NewModel(Options{RootMenu: "connections"})
	m.stack = append(m.stack, newLevel(levelTopics, "kafka-local", nil, nil))
	if header := m.menuHeader(); header != "connections→kafka-local" {
		t.Fatalf("expected breadcrumb connections→kafka-local, got %s", header)
	}
}

func TestInvalidRootMenuFallsBackToDefault(t *testing.T) {
	m := NewModel(Options{RootMenu: "does-not-exist"})
	if got := m.stack[0].ID; got != "root" {
		t.Fatalf("expected default root id, got %s", got)
	}
	if m.rootMenuID != "" {
		t.Fatalf("expected empty rootMenuID, got %s", m.rootMenuID)
	}
	if m.errMsg == "" {
		t.Fatalf("expected error message for invalid root menu")
	}
}

func TestLevelToggleSelection(t *testing.T) {
	lvl := newLevel("test", "Test", []menu.Item{{ID: "a"}, {ID: "b"}}, nil)
	lvl.MultiSelect = true
	lvl.Cursor = 0
	lvl.ToggleCurrentSelection()
	if len(lvl.Selected) != 1 || !lvl.IsSelected("a") {
		t.Fatalf("expected first item selected, got %#v", lvl.Selected)
	}
	lvl.Cursor = 1
	lvl.ToggleCurrentSelection()
	if len(lvl.Selected) != 2 {
		t.Fatalf("expected two selections, got %#v", lvl.Selected)
	}
	lvl.ToggleCurrentSelection()
	if lvl.IsSelected("b") {
		t.Fatalf("expected deselection of second item")
	}
}

func TestLevelCursorPaging(t *testing.T) {
	items := make([]menu.Item, 12)
	for i := range items {
		items[i] = menu.Item{ID: fmt.Sprintf("item-%d", i)}
	}
	lvl := newLevel("test", "Test", items, nil)
	lvl.Cursor = 0
	if !lvl.MoveCursorPageDown(5) || lvl.Cursor != 5 {
		t.Fatalf("expected cursor at 5, got %d", lvl.Cursor)
	}
	if !lvl.MoveCursorPageDown(5) || lvl.Cursor != 10 {
		t.Fatalf("expected cursor at 10, got %d", lvl.Cursor)
	}
	if !lvl.MoveCursorPageDown(5) || lvl.Cursor != 11 {
		t.Fatalf("expected cursor at end, got %d", lvl.Cursor)
	}
	if lvl.MoveCursorPageDown(5) {
		t.Fatalf("expected no movement past end")
	}
	if !lvl.MoveCursorPageUp(5) || lvl.Cursor != 6 {
		t.Fatalf("expected cursor at 6, got %d", lvl.Cursor)
	}
	if !lvl.MoveCursorPageUp(5) || lvl.Cursor != 1 {
		t.Fatalf("expected cursor at 1, got %d", lvl.Cursor)
	}
	if !lvl.MoveCursorPageUp(5) || lvl.Cursor != 0 {
		t.Fatalf("expected cursor at start, got %d", lvl.Cursor)
	}
	if lvl.MoveCursorPageUp(5) {
		t.Fatalf("expected no movement past start")
	}
	lvl.Cursor = 2
	if !lvl.MoveCursorPageDown(0) || lvl.Cursor != len(items)-1 {
		t.Fatalf("expected cursor jump to end with unknown page size, got %d", lvl.Cursor)
	}
}

func TestLevelCursorHomeEnd(t *testing.T) {
	lvl := newLevel("test", "Test", []menu.Item{{ID: "a"}, {ID: "b"}, {ID: "c"}}, nil)
	lvl.Cursor = 1
	if !lvl.MoveCursorHome() || lvl.Cursor != 0 {
		t.Fatalf("expected home to set cursor to 0, got %d", lvl.Cursor)
	}
	if lvl.MoveCursorHome() {
		t.Fatalf("expected no movement when already at home")
	}
	if !lvl.MoveCursorEnd() || lvl.Cursor != 2 {
		t.Fatalf("expected end to set cursor to last item, got %d", lvl.Cursor)
	}
	if lvl.MoveCursorEnd() {
		t.Fatalf("expected no movement when already at end")
	}
	empty := newLevel("empty", "Empty", nil, nil)
	empty.Cursor = 5
	if empty.MoveCursorHome() {
		t.Fatalf("expected no movement for empty menu")
	}
	if empty.Cursor != 0 {
		t.Fatalf("expected empty menu cursor reset to 0, got %d", empty.Cursor)
	}
	if empty.MoveCursorEnd() {
		t.Fatalf("expected no movement for empty menu on end")
	}
	if empty.Cursor != 0 {
		t.Fatalf("expected empty menu cursor stay at 0, got %d", empty.Cursor)
	}
}
