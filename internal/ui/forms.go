package ui

import (
	"strings"

	"github.com/atomicstack/pipeline-console/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handlePreferencesForm(msg tea.Msg) (bool, tea.Cmd) {
	if m.prefsForm == nil {
		return false, nil
	}
	if _, ok := msg.(tea.KeyMsg); !ok {
		return false, nil
	}
	cmd, done, cancel := m.prefsForm.Update(msg)
	if cancel {
		m.prefsForm = nil
		m.mode = ModeMenu
		return true, cmd
	}
	if done {
		target := m.prefsForm.Target()
		m.prefsForm = nil
		m.mode = ModeMenu
		m.loading = true
		m.pendingID = "applications:preferences"
		m.pendingLabel = target
		return true, cmd
	}
	return true, cmd
}

func (m *Model) startPreferencesForm(prompt menu.PreferencesPrompt) {
	m.prefsForm = menu.NewPreferencesForm(prompt)
	m.mode = ModePreferencesForm
}

func (m *Model) viewPreferencesFormWithHeader(header string) string {
	lines := []string{}
	if header != "" {
		lines = append(lines, header)
	}
	lines = append(lines, m.prefsForm.Title(), "", m.prefsForm.InputView())
	if err := m.prefsForm.Error(); err != "" {
		lines = append(lines, "", styles.Error.Render(err))
	}
	lines = append(lines, "", m.prefsForm.Help())
	return strings.Join(lines, "\n")
}
