package notify

import "sync"

// MockNotifier records notifications for testing
type MockNotifier struct {
	mu     sync.Mutex
	events []Event
}

// NewMockNotifier creates a new mock notifier
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) Show(message string, severity Severity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, Event{Message: message, Severity: severity})
}

// Events returns a copy of everything shown so far
func (m *MockNotifier) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

// Count returns the number of notifications shown
func (m *MockNotifier) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

var _ Notifier = (*MockNotifier)(nil)
