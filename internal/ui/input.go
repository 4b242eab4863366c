package ui

import (
	"unicode"

	"github.com/atomicstack/pipeline-console/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// filterOp is one editing key of the filter line. Ops that change the
// query (op != "") refilter the level; the rest only move the caret.
type filterOp struct {
	op    string
	apply func(*level) bool
}

var filterKeys = map[string]filterOp{
	"ctrl+u": {op: "clear", apply: func(l *level) bool {
		if l.Filter == "" {
			return false
		}
		l.SetFilter("", 0)
		return true
	}},
	"ctrl+w":    {op: "word-backspace", apply: (*level).DeleteFilterWordBackward},
	"backspace": {op: "backspace", apply: (*level).DeleteFilterRuneBackward},
	"ctrl+h":    {op: "backspace", apply: (*level).DeleteFilterRuneBackward},
	"ctrl+a":    {apply: (*level).MoveFilterCursorStart},
	"ctrl+e":    {apply: (*level).MoveFilterCursorEnd},
	"alt+b":     {apply: (*level).MoveFilterCursorWordBackward},
	"alt+f":     {apply: (*level).MoveFilterCursorWordForward},
	"left":      {apply: (*level).MoveFilterCursorRuneBackward},
	"right":     {apply: (*level).MoveFilterCursorRuneForward},
}

var filterPlaceholders = map[string]string{
	levelApplications: "(type to filter applications)",
	levelDetail:       "(type to filter programs, datasets and streams)",
	levelTopics:       "(type to filter topics)",
}

const defaultFilterPlaceholder = "(type to search)"

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

// handleTextInput routes filter editing keys to the current level and
// reports whether the key was consumed.
func (m *Model) handleTextInput(msg tea.KeyMsg) bool {
	if m.loading {
		return false
	}
	current := m.currentLevel()
	if current == nil {
		return false
	}
	if op, ok := filterKeys[msg.String()]; ok {
		return m.applyFilterOp(current, op)
	}
	switch msg.Type {
	case tea.KeySpace:
		return m.insertFilterText(current, " ")
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) || unicode.IsSpace(r) {
				return false
			}
		}
		return m.insertFilterText(current, string(msg.Runes))
	}
	return false
}

func (m *Model) insertFilterText(l *level, text string) bool {
	return m.applyFilterOp(l, filterOp{op: "append", apply: func(l *level) bool {
		return l.InsertFilterText(text)
	}})
}

func (m *Model) applyFilterOp(l *level, op filterOp) bool {
	before := l.FilterCursorPos()
	if !op.apply(l) {
		return false
	}
	if before != l.FilterCursorPos() {
		m.filterCursorDirty = true
	}
	if op.op == "" {
		events.Filter.Cursor(l.ID, l.FilterCursor)
		return true
	}
	m.forceClearInfo()
	m.errMsg = ""
	events.Filter.Edit(l.ID, op.op, l.Filter)
	m.syncViewport(l)
	return true
}

func (m *Model) filterPrompt() (string, *lipgloss.Style) {
	current := m.currentLevel()
	if current == nil {
		return ">", styles.Filter
	}
	if styles.Cursor != nil {
		m.filterCursor.Style = styles.Cursor.Copy()
	}
	m.filterCursor.TextStyle = lipgloss.Style{}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	}
	prompt := "» "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}

	if current.Filter == "" {
		placeholder := []rune(placeholderFor(current.ID))
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		return prompt + m.renderFilterCursor(string(placeholder[0])) +
			renderWith(styles.FilterPlaceholder, string(placeholder[1:])), nil
	}

	runes := []rune(current.Filter)
	pos := current.FilterCursorPos()
	caret, after := " ", ""
	if pos < len(runes) {
		caret = string(runes[pos])
		after = renderWith(styles.Filter, string(runes[pos+1:]))
	}
	return prompt + renderWith(styles.Filter, string(runes[:pos])) + m.renderFilterCursor(caret) + after, nil
}

func placeholderFor(levelID string) string {
	if p, ok := filterPlaceholders[levelID]; ok {
		return p
	}
	return defaultFilterPlaceholder
}

func renderWith(style *lipgloss.Style, value string) string {
	if style == nil || value == "" {
		return value
	}
	return style.Render(value)
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)
	base := m.filterCursor.TextStyle.Copy().Inline(true)
	switch {
	case m.filterCursor.Blink:
		return base.Render(char)
	case styles.Cursor != nil:
		return base.Inherit(styles.Cursor.Copy().Inline(true)).Blink(false).Render(char)
	}
	return base.Reverse(true).Render(char)
}
