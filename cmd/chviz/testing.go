package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/chunkpool/pool"
)

// TestHelper drives a Model through Update the way the tea runtime would.
type TestHelper struct {
	model Model
}

// NewTestHelper wraps chain in a model with a fixed seed.
func NewTestHelper(chain *pool.Chain) *TestHelper {
	return &TestHelper{model: NewModel(chain, 1)}
}

// SendKeyRune simulates a character key press
func (h *TestHelper) SendKeyRune(r rune) *TestHelper {
	updated, _ := h.model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	h.model = updated.(Model)
	return h
}

// SendWindowSize simulates a window resize
func (h *TestHelper) SendWindowSize(width, height int) *TestHelper {
	updated, _ := h.model.Update(tea.WindowSizeMsg{Width: width, Height: height})
	h.model = updated.(Model)
	return h
}

// GetModel returns the current model.
func (h *TestHelper) GetModel() Model { return h.model }

// GetView renders the current model.
func (h *TestHelper) GetView() string { return h.model.View() }
