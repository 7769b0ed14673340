package notify

import (
	"bytes"
	"strings"
	"testing"
)

func TestConsoleShow(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsole(&buf)

	console.Show("Copied!", SeverityOK)
	console.Show("Failed (Not Found)", SeverityError)

	out := buf.String()
	if !strings.Contains(out, "✓ Copied!") {
		t.Errorf("Expected success line, got %q", out)
	}
	if !strings.Contains(out, "✗ Failed (Not Found)") {
		t.Errorf("Expected error line, got %q", out)
	}
	if strings.Count(out, "\n") != 2 {
		t.Errorf("Expected one line per notification, got %q", out)
	}
}

func TestChannelForwardsEvents(t *testing.T) {
	ch := NewChannel(1)
	ch.Show("Copied!", SeverityOK)

	evt := <-ch.Events()
	if evt.Message != "Copied!" || evt.Severity != SeverityOK {
		t.Errorf("Unexpected event %+v", evt)
	}
}

func TestFuncAndMock(t *testing.T) {
	mock := NewMockNotifier()
	var n Notifier = Func(func(message string, severity Severity) {
		mock.Show(strings.ToUpper(message), severity)
	})

	n.Show("empty", SeverityError)

	events := mock.Events()
	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}
	if events[0].Message != "EMPTY" || events[0].Severity != SeverityError {
		t.Errorf("Unexpected event %+v", events[0])
	}
}

func TestSeverityString(t *testing.T) {
	if SeverityOK.String() != "OK" || SeverityError.String() != "ERROR" {
		t.Errorf("Unexpected severity names %s/%s", SeverityOK, SeverityError)
	}
}
