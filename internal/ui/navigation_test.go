package ui

import (
	"testing"

	"github.com/atomicstack/pipeline-console/internal/entity"
	"github.com/atomicstack/pipeline-console/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

func TestHandleEscapeKeyFromRootQuits(t *testing.T) {
	m := NewModel(Options{})
	cmd := m.handleEscapeKey()
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	msg := cmd()
	if _, ok := msg.(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg, got %T", msg)
	}
}

func TestHandleEscapeKeyPopsLevelAndRestoresCursor(t *testing.T) {
	m := NewModel(Options{})
	parent := m.currentLevel()
	parent.Cursor = 1
	parent.LastCursor = 2

	m.stack = append(m.stack, newLevel("tables", "tables", []menu.Item{{ID: "a", Label: "A"}}, nil))
	m.errMsg = "previous error"

	cmd := m.handleEscapeKey()
	if cmd != nil {
		t.Fatalf("expected no command when popping a level")
	}
	if len(m.stack) != 1 {
		t.Fatalf("expected stack to shrink to 1, got %d", len(m.stack))
	}
	if parent.Cursor != 2 {
		t.Fatalf("expected parent cursor restored to 2, got %d", parent.Cursor)
	}
	if parent.LastCursor != -1 {
		t.Fatalf("expected parent LastCursor reset, got %d", parent.LastCursor)
	}
	if m.errMsg != "" {
		t.Fatalf("expected error message cleared, got %q", m.errMsg)
	}
}

func TestEscapeFromDetailInvalidatesLoad(t *testing.T) {
	m := NewModel(Options{Namespace: "default"})
	m.pushDetailLevel("PurchaseHistory")
	seq := m.details.Begin("default", "PurchaseHistory")
	m.handleEscapeKey()
	applied := m.handleDetailLoadedMsg(detailLoadedMsg{seq: seq, outcome: entity.Outcome{ID: "PurchaseHistory", Status: entity.StatusNotFound}})
	if applied != nil {
		t.Fatalf("expected no command")
	}
	if cur := m.details.Current(); cur.ID != "" || cur.Status == entity.StatusNotFound {
		t.Fatalf("late result should be dropped after leaving the detail, got %+v", cur)
	}
}

func TestEnterOnTopicDescribesIt(t *testing.T) {
	m := NewModel(Options{})
	m.stack = append(m.stack, newLevel(levelTopics, "kafka-local", []menu.Item{{ID: "orders", Label: "orders"}}, nil))
	if cmd := m.handleEnterKey(); cmd != nil {
		t.Fatalf("expected no command for a topic")
	}
	if m.infoMsg != "Topic orders on kafka-local" {
		t.Fatalf("unexpected info %q", m.infoMsg)
	}
}

func TestEnterWithoutItemsIsIgnored(t *testing.T) {
	m := NewModel(Options{})
	m.stack = append(m.stack, newLevel("tables", "tables", nil, nil))
	if cmd := m.handleEnterKey(); cmd != nil {
		t.Fatalf("expected no command on an empty level")
	}
}
