package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"casccopy/internal/config"
	"casccopy/internal/notify"
	"casccopy/internal/remotecopy"
	"casccopy/internal/trigger"
)

// browserState represents the current view state
type browserState int

const (
	stateLoading browserState = iota
	stateTriggerList
	stateHelp
	stateError
)

// browserModel is the main Bubble Tea model
type browserModel struct {
	state  browserState
	ctx    context.Context
	source string
	load   containerLoader
	keys   *KeyDispatcher

	controller    *remotecopy.Controller
	notifications <-chan notify.Event
	settled       <-chan remotecopy.Result

	// Trigger list state
	container  *trigger.Container
	triggers   []trigger.Trigger
	tableModel table.Model
	results    map[string]remotecopy.Result
	pending    map[string]bool

	// UI state
	err    error
	width  int
	height int

	// Vim-style navigation state
	lastKey string

	// Status bar state
	statusMessage  string
	statusSeverity notify.Severity
	statusTimeout  time.Time

	previousState browserState
}

func newBrowserModel(ctx context.Context, source string, load containerLoader, controller *remotecopy.Controller, notifications <-chan notify.Event, settled <-chan remotecopy.Result) *browserModel {
	columns := []table.Column{
		{Title: "Last", Width: config.LastColumnWidth},
		{Title: "File", Width: config.FileColumnWidth},
		{Title: "URL", Width: config.URLColumnWidth},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(config.DefaultTableHeight),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(darkGray).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(selectedFg).
		Background(selectedBg).
		Bold(false)
	t.SetStyles(s)

	return &browserModel{
		state:         stateLoading,
		ctx:           ctx,
		source:        source,
		load:          load,
		keys:          NewKeyDispatcher(),
		controller:    controller,
		notifications: notifications,
		settled:       settled,
		tableModel:    t,
		results:       make(map[string]remotecopy.Result),
		pending:       make(map[string]bool),
	}
}

// Init implements tea.Model
func (m *browserModel) Init() tea.Cmd {
	return tea.Batch(
		loadPage(m.ctx, m.load),
		waitForNotification(m.notifications),
		waitForSettled(m.settled),
	)
}

// Update implements tea.Model
func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Account for header, status bar and footer
		tableHeight := m.height - 10
		if tableHeight < config.MinTableHeight {
			tableHeight = config.MinTableHeight
		}
		m.tableModel.SetHeight(tableHeight)
		return m, nil

	case tea.KeyMsg:
		return m.keys.Dispatch(m, msg)

	case pageLoadedMsg:
		m.container = msg.container
		m.triggers = msg.container.Triggers()
		m.controller.Attach(m.container)
		m.state = stateTriggerList
		m.err = nil
		m.updateTriggerRows()
		return m, nil

	case errorMsg:
		m.err = msg.err
		m.state = stateError
		return m, nil

	case notificationMsg:
		m.statusMessage = msg.event.Message
		m.statusSeverity = msg.event.Severity
		m.statusTimeout = time.Now().Add(config.StatusTimeout)
		return m, tea.Batch(
			waitForNotification(m.notifications),
			tea.Tick(config.StatusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{} }),
		)

	case settledMsg:
		id := msg.result.Request.Trigger.ID
		delete(m.pending, id)
		m.results[id] = msg.result
		m.updateTriggerRows()
		return m, waitForSettled(m.settled)

	case clearStatusMsg:
		if !time.Now().Before(m.statusTimeout) {
			m.statusMessage = ""
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model
func (m *browserModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.state {
	case stateLoading:
		return m.renderLoading()
	case stateTriggerList:
		return m.renderTriggerList()
	case stateHelp:
		return m.renderHelp()
	case stateError:
		return m.renderError()
	default:
		return "Unknown state"
	}
}

// activateSelected dispatches an activation on the selected trigger, the way
// a click on its link would
func (m *browserModel) activateSelected() {
	if m.state != stateTriggerList || m.container == nil {
		return
	}

	idx := m.tableModel.Cursor()
	src, ok := m.container.TriggerSource(idx)
	if !ok {
		return
	}

	ev := trigger.NewEvent(src)
	m.container.Dispatch(m.ctx, ev)

	t := m.triggers[idx]
	if ev.DefaultPrevented() && t.HasURL() {
		m.pending[t.ID] = true
		m.updateTriggerRows()
	}
}

// reload fetches the page again; the new container is attached when it arrives
func (m *browserModel) reload() tea.Cmd {
	m.state = stateLoading
	return loadPage(m.ctx, m.load)
}

// handleNavigation moves the table cursor
func (m *browserModel) handleNavigation(direction string) {
	if m.state != stateTriggerList {
		return
	}

	switch direction {
	case "up":
		m.tableModel.MoveUp(1)
	case "down":
		m.tableModel.MoveDown(1)
	case "top":
		m.tableModel.GotoTop()
	case "bottom":
		m.tableModel.GotoBottom()
	}
}

// updateTriggerRows populates the table component with the triggers and their last outcome
func (m *browserModel) updateTriggerRows() {
	rows := make([]table.Row, len(m.triggers))
	for i, t := range m.triggers {
		u := t.URL
		if !t.HasURL() {
			u = "(no url)"
		}
		rows[i] = table.Row{m.lastOutcome(t.ID), t.DisplayName(), u}
	}
	m.tableModel.SetRows(rows)
}

// lastOutcome renders the Last column of one trigger
func (m *browserModel) lastOutcome(id string) string {
	if m.pending[id] {
		return "… copying"
	}

	res, ok := m.results[id]
	if !ok {
		return ""
	}
	if res.Copied() {
		return "✓ " + humanize.Bytes(uint64(res.Bytes))
	}
	if res.Outcome == remotecopy.OutcomeHTTPError {
		return fmt.Sprintf("✗ HTTP %d", res.Status)
	}
	return "✗ " + res.Outcome.String()
}

// Messages for async operations
type pageLoadedMsg struct {
	container *trigger.Container
}

type errorMsg struct {
	err error
}

type notificationMsg struct {
	event notify.Event
}

type settledMsg struct {
	result remotecopy.Result
}

type clearStatusMsg struct{}

// Commands for async operations
func loadPage(ctx context.Context, load containerLoader) tea.Cmd {
	return func() tea.Msg {
		container, err := load(ctx)
		if err != nil {
			return errorMsg{err}
		}
		return pageLoadedMsg{container}
	}
}

func waitForNotification(ch <-chan notify.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return notificationMsg{ev}
	}
}

func waitForSettled(ch <-chan remotecopy.Result) tea.Cmd {
	return func() tea.Msg {
		res, ok := <-ch
		if !ok {
			return nil
		}
		return settledMsg{res}
	}
}
