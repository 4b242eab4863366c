package command

import (
	"errors"
	"testing"

	"github.com/atomicstack/pipeline-console/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

func TestExecuteRunsHandlerWithItem(t *testing.T) {
	bus := New()
	var got menu.Item
	handler := func(ctx menu.Context, item menu.Item) tea.Cmd {
		got = item
		return func() tea.Msg { return menu.ActionResult{Err: errors.New("boom")} }
	}
	cmd := bus.Execute(menu.Context{Namespace: "default"}, Request{
		ID:      "applications",
		Label:   "WordCount",
		Item:    menu.Item{ID: "WordCount"},
		Handler: handler,
	})
	msg := cmd()
	res, ok := msg.(menu.ActionResult)
	if !ok || res.Err == nil {
		t.Fatalf("expected failing action result, got %#v", msg)
	}
	if got.ID != "WordCount" {
		t.Fatalf("handler saw %#v", got)
	}
}

func TestExecuteWithoutHandlerYieldsNil(t *testing.T) {
	if msg := New().Execute(menu.Context{}, Request{ID: "none"})(); msg != nil {
		t.Fatalf("expected nil message, got %#v", msg)
	}
}
