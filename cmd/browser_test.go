package cmd

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"casccopy/internal/clipboard"
	"casccopy/internal/config"
	"casccopy/internal/fetch"
	"casccopy/internal/notify"
	"casccopy/internal/remotecopy"
	"casccopy/internal/trigger"
)

type testBrowser struct {
	model         *browserModel
	clipboard     *clipboard.MockWriter
	controller    *remotecopy.Controller
	container     *trigger.Container
	notifications *notify.Channel
	settled       chan remotecopy.Result
}

func newTestBrowser(t *testing.T) *testBrowser {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/jenkins.yaml" {
			_, _ = w.Write([]byte("hello"))
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(ts.Close)

	container := trigger.NewContainer(trigger.DefaultContainerID)
	entries := []struct {
		src trigger.Source
		t   trigger.Trigger
	}{
		{"jenkins", trigger.Trigger{Label: "jenkins.yaml", URL: ts.URL + "/jenkins.yaml", SuccessMessage: "Copied!"}},
		{"items", trigger.Trigger{Label: "items.yaml", URL: ts.URL + "/items.yaml", ErrorMessage: "Failed"}},
		{"broken", trigger.Trigger{Label: "broken.yaml", ErrorMessage: "Failed"}},
	}
	for _, e := range entries {
		if err := container.AddTrigger(e.src, container.Root(), e.t); err != nil {
			t.Fatal(err)
		}
	}

	tb := &testBrowser{
		clipboard:     clipboard.NewMockWriter(),
		container:     container,
		notifications: notify.NewChannel(16),
		settled:       make(chan remotecopy.Result, 16),
	}
	tb.controller = remotecopy.New(fetch.NewClient(fetch.Config{}), tb.clipboard, tb.notifications,
		remotecopy.OnSettled(deliverSettled(tb.settled)))

	load := func(context.Context) (*trigger.Container, error) { return container, nil }
	tb.model = newBrowserModel(context.Background(), "bundle.yaml", load, tb.controller, tb.notifications.Events(), tb.settled)
	tb.model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	tb.model.Update(pageLoadedMsg{container})
	return tb
}

// settle waits for the background copy and feeds its result to the model
func (tb *testBrowser) settle(t *testing.T) {
	t.Helper()
	tb.controller.Wait()
	msg := waitForSettled(tb.settled)()
	tb.model.Update(msg)
}

func (tb *testBrowser) lastColumn(row int) string {
	return tb.model.tableModel.Rows()[row][0]
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPageLoadAttachesController(t *testing.T) {
	tb := newTestBrowser(t)

	if tb.model.state != stateTriggerList {
		t.Fatalf("expected trigger list state, got %v", tb.model.state)
	}
	if tb.container.ListenerCount() != 1 {
		t.Errorf("expected controller attached once, got %d listeners", tb.container.ListenerCount())
	}
	if len(tb.model.tableModel.Rows()) != 3 {
		t.Errorf("expected 3 rows, got %d", len(tb.model.tableModel.Rows()))
	}
	if got := tb.model.tableModel.Rows()[2][2]; got != "(no url)" {
		t.Errorf("expected missing url marker, got %q", got)
	}
}

func TestEnterCopiesSelectedFile(t *testing.T) {
	tb := newTestBrowser(t)

	tb.model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := tb.lastColumn(0); got != "… copying" {
		t.Errorf("expected pending marker, got %q", got)
	}

	tb.settle(t)

	if tb.clipboard.Text() != "hello" {
		t.Errorf("expected clipboard 'hello', got %q", tb.clipboard.Text())
	}
	if got := tb.lastColumn(0); got != "✓ 5 B" {
		t.Errorf("expected copied size in Last column, got %q", got)
	}

	tb.model.Update(waitForNotification(tb.notifications.Events())())
	if tb.model.statusMessage != "Copied!" || tb.model.statusSeverity != notify.SeverityOK {
		t.Errorf("unexpected status %q (%v)", tb.model.statusMessage, tb.model.statusSeverity)
	}
	if !strings.Contains(tb.model.View(), "Copied!") {
		t.Error("expected notification in the status bar")
	}
}

func TestYankSequenceCopiesSelectedFile(t *testing.T) {
	tb := newTestBrowser(t)

	tb.model.Update(keyRunes("j"))
	tb.model.Update(keyRunes("y"))
	if tb.model.lastKey != "y" {
		t.Fatalf("expected pending y, got %q", tb.model.lastKey)
	}
	tb.model.Update(keyRunes("y"))

	tb.settle(t)

	if got := tb.lastColumn(1); got != "✗ HTTP 404" {
		t.Errorf("expected HTTP failure in Last column, got %q", got)
	}
	if len(tb.clipboard.Writes()) != 0 {
		t.Errorf("expected no clipboard write, got %v", tb.clipboard.Writes())
	}

	tb.model.Update(waitForNotification(tb.notifications.Events())())
	if tb.model.statusMessage != "Failed (Not Found)" || tb.model.statusSeverity != notify.SeverityError {
		t.Errorf("unexpected status %q (%v)", tb.model.statusMessage, tb.model.statusSeverity)
	}
}

func TestTriggerWithoutURLIsSilent(t *testing.T) {
	tb := newTestBrowser(t)

	tb.model.Update(keyRunes("G"))
	if tb.model.tableModel.Cursor() != 2 {
		t.Fatalf("expected cursor on last row, got %d", tb.model.tableModel.Cursor())
	}
	tb.model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if tb.model.pending["broken"] {
		t.Error("trigger without url must not be pending")
	}
	tb.settle(t)
	if got := tb.lastColumn(2); got != "✗ no url" {
		t.Errorf("expected missing url outcome, got %q", got)
	}

	select {
	case ev := <-tb.notifications.Events():
		t.Errorf("expected no notification, got %+v", ev)
	default:
	}
}

func TestNavigationSequences(t *testing.T) {
	tb := newTestBrowser(t)

	tb.model.Update(keyRunes("G"))
	tb.model.Update(keyRunes("g"))
	if tb.model.tableModel.Cursor() != 2 {
		t.Errorf("single g must not move, got %d", tb.model.tableModel.Cursor())
	}
	tb.model.Update(keyRunes("g"))
	if tb.model.tableModel.Cursor() != 0 {
		t.Errorf("gg should jump to top, got %d", tb.model.tableModel.Cursor())
	}

	tb.model.Update(tea.KeyMsg{Type: tea.KeyDown})
	tb.model.Update(keyRunes("j"))
	tb.model.Update(keyRunes("k"))
	if tb.model.tableModel.Cursor() != 1 {
		t.Errorf("expected cursor 1, got %d", tb.model.tableModel.Cursor())
	}
}

func TestHelpToggle(t *testing.T) {
	tb := newTestBrowser(t)

	tb.model.Update(keyRunes("?"))
	if tb.model.state != stateHelp {
		t.Fatalf("expected help state, got %v", tb.model.state)
	}
	if !strings.Contains(tb.model.View(), "casccopy Help") {
		t.Error("expected help overlay")
	}

	// Any other key closes help without acting
	tb.model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if tb.model.state != stateTriggerList {
		t.Errorf("expected help closed, got %v", tb.model.state)
	}
	if tb.model.pending["jenkins"] {
		t.Error("closing help must not activate a trigger")
	}

	tb.model.Update(keyRunes("?"))
	tb.model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if tb.model.state != stateTriggerList {
		t.Errorf("expected esc to close help, got %v", tb.model.state)
	}
}

func TestQuit(t *testing.T) {
	tb := newTestBrowser(t)

	_, cmd := tb.model.Update(keyRunes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestReloadReattaches(t *testing.T) {
	tb := newTestBrowser(t)

	_, cmd := tb.model.Update(keyRunes("r"))
	if tb.model.state != stateLoading {
		t.Fatalf("expected loading state, got %v", tb.model.state)
	}
	tb.model.Update(cmd())

	if tb.model.state != stateTriggerList {
		t.Errorf("expected trigger list after reload, got %v", tb.model.state)
	}
	if tb.container.ListenerCount() != 1 {
		t.Errorf("reload must not register a second listener, got %d", tb.container.ListenerCount())
	}
}

func TestLoadErrorShowsErrorState(t *testing.T) {
	load := func(context.Context) (*trigger.Container, error) {
		return nil, errors.New("container not found")
	}
	controller := remotecopy.New(fetch.NewClient(fetch.Config{}), clipboard.NewMockWriter(), nil)
	m := newBrowserModel(context.Background(), "page.html", load, controller, nil, nil)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	m.Update(loadPage(context.Background(), load)())

	if m.state != stateError {
		t.Fatalf("expected error state, got %v", m.state)
	}
	if !strings.Contains(m.View(), "container not found") {
		t.Error("expected error in view")
	}
}

func TestStatusClearsAfterTimeout(t *testing.T) {
	tb := newTestBrowser(t)

	tb.model.Update(notificationMsg{notify.Event{Message: "Copied!", Severity: notify.SeverityOK}})
	tb.model.Update(clearStatusMsg{})
	if tb.model.statusMessage == "" {
		t.Error("status must survive a clear tick before its timeout")
	}

	tb.model.statusTimeout = tb.model.statusTimeout.Add(-time.Hour)
	tb.model.Update(clearStatusMsg{})
	if tb.model.statusMessage != "" {
		t.Errorf("expected status cleared, got %q", tb.model.statusMessage)
	}
}

func TestRepeatedActivationsNeverBlockUpdate(t *testing.T) {
	tb := newTestBrowser(t)
	tb.model.Update(keyRunes("G"))

	presses := 2*config.NotificationBuffer + 4
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < presses; i++ {
			tb.model.Update(tea.KeyMsg{Type: tea.KeyEnter})
		}
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("Update blocked with %d undrained results", config.NotificationBuffer)
	}

	// Every result still arrives once the event loop drains the channel
	for i := 0; i < presses; i++ {
		select {
		case res := <-tb.settled:
			if res.Outcome != remotecopy.OutcomeMissingURL {
				t.Errorf("unexpected outcome %s", res.Outcome)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("only %d of %d results delivered", i, presses)
		}
	}
}

func TestPageLoadHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	load := func(ctx context.Context) (*trigger.Container, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return trigger.NewContainer(trigger.DefaultContainerID), nil
	}
	controller := remotecopy.New(fetch.NewClient(fetch.Config{}), clipboard.NewMockWriter(), nil)
	m := newBrowserModel(ctx, "https://ci.example.com/", load, controller, nil, nil)

	m.Update(m.reload()())
	if m.state != stateError || !errors.Is(m.err, context.Canceled) {
		t.Errorf("expected cancelled load to end in the error state, got %v (%v)", m.state, m.err)
	}
}
