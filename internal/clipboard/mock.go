package clipboard

import (
	"context"
	"sync"
)

// MockWriter is an in-memory clipboard for testing
type MockWriter struct {
	mu     sync.Mutex
	text   string
	writes []string
	err    error
}

// NewMockWriter creates a new mock clipboard
func NewMockWriter() *MockWriter {
	return &MockWriter{}
}

// FailWith makes every following write fail with err (nil restores success)
func (m *MockWriter) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockWriter) Write(ctx context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.text = text
	m.writes = append(m.writes, text)
	return nil
}

// Text returns the current clipboard content
func (m *MockWriter) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

// Writes returns every successful write in order
func (m *MockWriter) Writes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.writes))
	copy(out, m.writes)
	return out
}

var _ Writer = (*MockWriter)(nil)
