package menu

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/pipeline-console/internal/logging/events"
)

// ParsePreferences reads "key=value,key2=value2". Keys must be non-empty and
// unique; values may be empty.
func ParsePreferences(raw string) (map[string]string, error) {
	prefs := map[string]string{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("expected key=value, got %q", part)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("empty key in %q", part)
		}
		if _, dup := prefs[key]; dup {
			return nil, fmt.Errorf("duplicate key %q", key)
		}
		prefs[key] = strings.TrimSpace(value)
	}
	if len(prefs) == 0 {
		return nil, fmt.Errorf("at least one key=value pair required")
	}
	return prefs, nil
}

// FormatPreferences renders prefs in the form ParsePreferences reads, sorted
// by key.
func FormatPreferences(prefs map[string]string) string {
	keys := make([]string, 0, len(prefs))
	for k := range prefs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+prefs[k])
	}
	return strings.Join(parts, ",")
}

type PreferencesForm struct {
	input textinput.Model
	ctx   Context
	app   string
	err   string
}

func NewPreferencesForm(prompt PreferencesPrompt) *PreferencesForm {
	ti := textinput.New()
	ti.Placeholder = "key=value,key2=value2"
	ti.CharLimit = 512
	ti.Focus()
	if len(prompt.Initial) > 0 {
		ti.SetValue(FormatPreferences(prompt.Initial))
	}
	return &PreferencesForm{input: ti, ctx: prompt.Context, app: prompt.AppID}
}

func (f *PreferencesForm) Context() Context  { return f.ctx }
func (f *PreferencesForm) Value() string     { return strings.TrimSpace(f.input.Value()) }
func (f *PreferencesForm) InputView() string { return f.input.View() }
func (f *PreferencesForm) Error() string     { return f.err }
func (f *PreferencesForm) Target() string    { return f.app }
func (f *PreferencesForm) Title() string     { return fmt.Sprintf("Preferences for %s", f.app) }
func (f *PreferencesForm) Help() string      { return "Press Enter to save. Esc to cancel." }

// Update returns the command to run, whether the form completed and whether
// it was cancelled.
func (f *PreferencesForm) Update(msg tea.Msg) (tea.Cmd, bool, bool) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+u":
			if f.input.Value() != "" {
				f.input.SetValue("")
				f.input.CursorStart()
				f.err = ""
			}
			return nil, false, false
		}
		switch key.Type {
		case tea.KeyEsc:
			events.Action.PreferencesCancel(f.app, "escape")
			return nil, false, true
		case tea.KeyEnter:
			prefs, err := ParsePreferences(f.Value())
			if err != nil {
				f.err = err.Error()
				return nil, false, false
			}
			f.err = ""
			return PreferencesCommand(f.ctx, f.app, prefs), true, false
		}
	}
	updated, cmd := f.input.Update(msg)
	f.input = updated
	return cmd, false, false
}
