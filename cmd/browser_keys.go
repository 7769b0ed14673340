package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
)

// KeyHandler interface for handling specific key combinations
type KeyHandler interface {
	HandleKey(m *browserModel, msg tea.KeyMsg) (tea.Model, tea.Cmd)
}

// KeyDispatcher handles key routing based on current state
type KeyDispatcher struct {
	handlers map[string]KeyHandler
}

// NewKeyDispatcher creates a new key dispatcher with all handlers
func NewKeyDispatcher() *KeyDispatcher {
	return &KeyDispatcher{
		handlers: map[string]KeyHandler{
			"q":      &quitHandler{},
			"ctrl+c": &quitHandler{},
			"?":      &helpHandler{},
			"esc":    &escapeHandler{},
			"g":      &navigationHandler{key: "g"},
			"G":      &navigationHandler{key: "G"},
			"up":     &navigationHandler{key: "up"},
			"k":      &navigationHandler{key: "up"},
			"down":   &navigationHandler{key: "down"},
			"j":      &navigationHandler{key: "down"},
			"y":      &yankHandler{},
			"enter":  &activateHandler{},
			"r":      &reloadHandler{},
		},
	}
}

// Dispatch handles a key press by routing to the appropriate handler
func (kd *KeyDispatcher) Dispatch(m *browserModel, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Handle help mode - only allow certain keys
	if m.state == stateHelp {
		switch key {
		case "q", "ctrl+c", "?", "esc":
			// These keys work in help mode - continue to handlers
		default:
			m.state = m.previousState
			m.lastKey = ""
			return m, nil
		}
	}

	if handler, exists := kd.handlers[key]; exists {
		return handler.HandleKey(m, msg)
	}

	// No specific handler - clear lastKey for any unhandled key
	m.lastKey = ""
	return m, nil
}

// quitHandler handles quit operations
type quitHandler struct{}

func (h *quitHandler) HandleKey(m *browserModel, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.lastKey = ""
	return m, tea.Quit
}

// helpHandler toggles help display
type helpHandler struct{}

func (h *helpHandler) HandleKey(m *browserModel, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state == stateHelp {
		m.state = m.previousState
	} else {
		m.previousState = m.state
		m.state = stateHelp
	}
	m.lastKey = ""
	return m, nil
}

// escapeHandler handles escape key
type escapeHandler struct{}

func (h *escapeHandler) HandleKey(m *browserModel, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state == stateHelp {
		m.state = m.previousState
	}
	m.lastKey = ""
	return m, nil
}

// navigationHandler handles navigation keys including vim-style sequences
type navigationHandler struct {
	key string
}

func (h *navigationHandler) HandleKey(m *browserModel, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch h.key {
	case "g":
		if m.lastKey == "g" { // gg sequence - jump to top
			m.handleNavigation("top")
			m.lastKey = ""
			return m, nil
		}
		m.lastKey = "g"
		return m, nil
	case "G":
		m.handleNavigation("bottom")
	case "up":
		m.handleNavigation("up")
	case "down":
		m.handleNavigation("down")
	}

	m.lastKey = ""
	return m, nil
}

// yankHandler copies the selected file (yy sequence)
type yankHandler struct{}

func (h *yankHandler) HandleKey(m *browserModel, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.lastKey == "y" {
		m.activateSelected()
		m.lastKey = ""
		return m, nil
	}
	m.lastKey = "y"
	return m, nil
}

// activateHandler copies the selected file
type activateHandler struct{}

func (h *activateHandler) HandleKey(m *browserModel, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.lastKey = ""
	m.activateSelected()
	return m, nil
}

// reloadHandler loads the page again and re-attaches
type reloadHandler struct{}

func (h *reloadHandler) HandleKey(m *browserModel, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.lastKey = ""
	if m.state == stateLoading {
		return m, nil
	}
	return m, m.reload()
}
