package ui

import (
	"errors"
	"testing"

	"github.com/atomicstack/pipeline-console/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

func TestWithPromptResetsStateAndReturnsCommand(t *testing.T) {
	m := NewModel(Options{Verbose: true})
	m.loading = true
	m.pendingID = "test"
	m.pendingLabel = "label"
	m.errMsg = "previous"
	m.setInfo("old info")

	cmd := m.withPrompt(func() promptResult {
		return promptResult{Cmd: tea.Quit, Info: "executed"}
	})

	if m.loading {
		t.Fatalf("expected loading cleared")
	}
	if m.pendingID != "" || m.pendingLabel != "" {
		t.Fatalf("expected pending fields cleared, got %q %q", m.pendingID, m.pendingLabel)
	}
	if m.errMsg != "" {
		t.Fatalf("expected error cleared, got %q", m.errMsg)
	}
	if m.infoMsg != "executed" {
		t.Fatalf("expected info message set, got %q", m.infoMsg)
	}
	if cmd == nil {
		t.Fatalf("expected command returned")
	}
	if msg := cmd(); msg == nil {
		t.Fatalf("expected command to emit a message")
	} else if _, ok := msg.(tea.QuitMsg); !ok {
		t.Fatalf("expected quit message, got %T", msg)
	}
}

func TestWithPromptHandlesError(t *testing.T) {
	m := NewModel(Options{})
	boom := errors.New("boom")

	cmd := m.withPrompt(func() promptResult {
		return promptResult{Err: boom}
	})

	if cmd != nil {
		t.Fatalf("expected no command on error")
	}
	if m.errMsg != boom.Error() {
		t.Fatalf("expected error message %q, got %q", boom.Error(), m.errMsg)
	}
	if m.infoMsg != "" {
		t.Fatalf("expected info cleared on error, got %q", m.infoMsg)
	}
}

func TestPreferencesPromptOpensFormAndEscCancels(t *testing.T) {
	m := NewModel(Options{})
	m.handlePreferencesPromptMsg(menu.PreferencesPrompt{AppID: "WordCount", Initial: map[string]string{"owner": "examples"}})
	if m.mode != ModePreferencesForm || m.prefsForm == nil {
		t.Fatalf("expected preferences form to open")
	}
	if got := m.prefsForm.Value(); got != "owner=examples" {
		t.Fatalf("expected current preferences prefilled, got %q", got)
	}
	handled, _ := m.handlePreferencesForm(tea.KeyMsg{Type: tea.KeyEsc})
	if !handled || m.mode != ModeMenu || m.prefsForm != nil {
		t.Fatalf("expected esc to close the form")
	}
}

func TestPreferencesFormLetsBackendEventsThrough(t *testing.T) {
	m := NewModel(Options{})
	m.startPreferencesForm(menu.PreferencesPrompt{AppID: "WordCount"})
	if handled, _ := m.handlePreferencesForm(backendDoneMsg{}); handled {
		t.Fatalf("non-key messages should reach the handler registry")
	}
}
