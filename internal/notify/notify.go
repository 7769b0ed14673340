// Package notify is the notification surface copy outcomes are reported to.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Severity of a notification
type Severity int

const (
	SeverityOK Severity = iota
	SeverityError
)

// String returns the severity name
func (s Severity) String() string {
	if s == SeverityError {
		return "ERROR"
	}
	return "OK"
}

// Event is one (message, severity) pair shown to the user
type Event struct {
	Message  string
	Severity Severity
}

// Notifier displays transient success/error messages
type Notifier interface {
	Show(message string, severity Severity)
}

// Func adapts a plain function to Notifier
type Func func(message string, severity Severity)

// Show calls f
func (f Func) Show(message string, severity Severity) {
	f(message, severity)
}

// Discard drops every notification
var Discard Notifier = Func(func(string, Severity) {})

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// Console writes one styled line per notification
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsole creates a console notifier writing to out
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// Show writes the notification
func (c *Console) Show(message string, severity Severity) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if severity == SeverityError {
		fmt.Fprintln(c.out, errorStyle.Render("✗ "+message))
		return
	}
	fmt.Fprintln(c.out, okStyle.Render("✓ "+message))
}

// Channel forwards notifications to a channel so an event loop can pick them up
type Channel struct {
	events chan Event
}

// NewChannel creates a channel notifier with the given buffer size
func NewChannel(buffer int) *Channel {
	return &Channel{events: make(chan Event, buffer)}
}

// Show sends the event; it blocks when the buffer is full
func (c *Channel) Show(message string, severity Severity) {
	c.events <- Event{Message: message, Severity: severity}
}

// Events returns the receive side
func (c *Channel) Events() <-chan Event {
	return c.events
}

var (
	_ Notifier = Func(nil)
	_ Notifier = (*Console)(nil)
	_ Notifier = (*Channel)(nil)
)
