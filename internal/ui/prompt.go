package ui

import (
	"github.com/atomicstack/pipeline-console/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

type promptResult struct {
	Cmd  tea.Cmd
	Info string
	Err  error
}

// withPrompt centralises the common prompt flow: reset pending state and run
// the provided action. The action returns a promptResult to control
// follow-up behaviour.
func (m *Model) withPrompt(action func() promptResult) tea.Cmd {
	m.loading = false
	m.pendingID = ""
	m.pendingLabel = ""
	m.forceClearInfo()
	m.errMsg = ""
	if action == nil {
		return nil
	}
	result := action()
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		return nil
	}
	if result.Info != "" && m.verbose {
		m.setInfo(result.Info)
	}
	return result.Cmd
}

func (m *Model) handlePreferencesPromptMsg(msg tea.Msg) tea.Cmd {
	prompt, ok := msg.(menu.PreferencesPrompt)
	if !ok {
		return nil
	}
	return m.withPrompt(func() promptResult {
		m.startPreferencesForm(prompt)
		return promptResult{Info: "Editing preferences for " + prompt.AppID}
	})
}
