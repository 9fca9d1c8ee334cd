// ABOUTME: Tests for the catalog/config file watcher
// ABOUTME: Verifies change detection, filtering of unrelated files and clean shutdown

package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func noDebug(string, ...interface{}) {}

func waitMsg(t *testing.T, cmd tea.Cmd) <-chan tea.Msg {
	t.Helper()

	ch := make(chan tea.Msg, 1)

	go func() {
		ch <- cmd()
	}()

	return ch
}

func TestFileWatcherReportsWatchedFile(t *testing.T) {
	dir := t.TempDir()
	catalog := filepath.Join(dir, "catalog.yaml")

	if err := os.WriteFile(catalog, []byte("rows: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	fw, err := newFileWatcher(noDebug, catalog, "")
	if err != nil {
		t.Fatalf("newFileWatcher failed: %v", err)
	}

	defer func() { _ = fw.Close() }()

	ch := waitMsg(t, fw.wait())

	// Unrelated files in the same directory are ignored
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(catalog, []byte("rows: [] # edited\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case msg := <-ch:
		change, ok := msg.(fileChangeMsg)
		if !ok {
			t.Fatalf("Expected fileChangeMsg, got %T", msg)
		}

		if !fw.matches(change.path, catalog) {
			t.Errorf("Change reported for %s, want %s", change.path, catalog)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("No change reported")
	}
}

func TestFileWatcherCloseEndsWait(t *testing.T) {
	fw, err := newFileWatcher(noDebug, filepath.Join(t.TempDir(), "showreel.toml"))
	if err != nil {
		t.Fatal(err)
	}

	ch := waitMsg(t, fw.wait())

	if err := fw.Close(); err != nil {
		t.Fatal(err)
	}

	select {
	case msg := <-ch:
		if msg != nil {
			t.Errorf("Expected nil after close, got %T", msg)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("wait did not return after Close")
	}
}

func TestFileWatcherMissingDirectory(t *testing.T) {
	if _, err := newFileWatcher(noDebug, "/nonexistent/showreel/catalog.yaml"); err == nil {
		t.Error("Expected error watching a missing directory")
	}
}
