package cmd

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"casccopy/internal/clipboard"
)

// runCLI executes the root command with a mock clipboard and returns stdout
func runCLI(t *testing.T, args ...string) (*clipboard.MockWriter, string, error) {
	t.Helper()
	t.Setenv("CASCCOPY_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	mock := clipboard.NewMockWriter()
	origClipboard := newClipboard
	newClipboard = func(string, io.Writer) (clipboard.Writer, error) { return mock, nil }
	t.Cleanup(func() { newClipboard = origClipboard })

	// Flag values survive between executions of the same command tree
	copySuccessMessage, copyEmptyFileMessage, copyErrorMessage, copyClipboardErrorMessage = "", "", "", ""
	configPath, verbose, logFile, clipboardBackend = "", false, "", ""
	listBaseURL, browseBaseURL = "", ""
	docsDir, docsFormat = "./docs", "man"

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return mock, out.String(), err
}

func newBundleServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/f.txt":
			_, _ = w.Write([]byte("hello"))
		case "/empty.txt":
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestCopyCommand(t *testing.T) {
	ts := newBundleServer(t)

	mock, out, err := runCLI(t, "copy", ts.URL+"/f.txt", "--success-message", "Copied!", "--error-message", "Failed")
	if err != nil {
		t.Fatalf("copy: %v", err)
	}
	if mock.Text() != "hello" {
		t.Errorf("expected clipboard 'hello', got %q", mock.Text())
	}
	if !strings.Contains(out, "Copied!") {
		t.Errorf("expected success notification, got %q", out)
	}
}

func TestCopyCommandHTTPError(t *testing.T) {
	ts := newBundleServer(t)

	mock, out, err := runCLI(t, "copy", ts.URL+"/missing.txt", "--error-message", "Failed")
	if err == nil {
		t.Fatal("expected non-zero exit for a failed copy")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("expected status in error, got %v", err)
	}
	if !strings.Contains(out, "Failed (Not Found)") {
		t.Errorf("expected error notification, got %q", out)
	}
	if len(mock.Writes()) != 0 {
		t.Errorf("expected no clipboard write, got %v", mock.Writes())
	}
}

func TestCopyCommandEmptyFile(t *testing.T) {
	ts := newBundleServer(t)

	_, out, err := runCLI(t, "copy", ts.URL+"/empty.txt")
	if err == nil {
		t.Fatal("expected failure for an empty file")
	}
	if strings.TrimSpace(out) != "" {
		t.Errorf("expected no notification without messages, got %q", out)
	}
}

func TestCopyCommandRejectsInvalidURL(t *testing.T) {
	_, _, err := runCLI(t, "copy", "jenkins.yaml")
	if err == nil || !strings.Contains(err.Error(), "jenkins.yaml") {
		t.Errorf("expected validation error naming the input, got %v", err)
	}
}

func TestCopyCommandRejectsUnknownBackend(t *testing.T) {
	ts := newBundleServer(t)

	_, _, err := runCLI(t, "copy", ts.URL+"/f.txt", "--clipboard", "pasteboard")
	if err == nil {
		t.Error("expected unknown backend to fail")
	}
}
