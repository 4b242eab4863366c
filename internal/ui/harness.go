package ui

import tea "github.com/charmbracelet/bubbletea"

// harnessMaxSteps bounds how many follow-up messages one Send may process.
const harnessMaxSteps = 64

// Harness drives the UI model programmatically for integration tests.
type Harness struct {
	model *Model
}

// NewHarness creates a harness for the provided model.
func NewHarness(model *Model) *Harness {
	return &Harness{model: model}
}

// Send routes a message through the model and executes any returned commands,
// including every command of a batch, synchronously.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	steps := 0
	h.dispatch(msg, &steps)
}

func (h *Harness) dispatch(msg tea.Msg, steps *int) {
	if msg == nil || *steps >= harnessMaxSteps {
		return
	}
	*steps++
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, cmd := range batch {
			h.processCmd(cmd, steps)
		}
		return
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(cmd, steps)
}

func (h *Harness) processCmd(cmd tea.Cmd, steps *int) {
	if cmd == nil {
		return
	}
	h.dispatch(cmd(), steps)
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}
