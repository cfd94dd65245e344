package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewWatcher_EmptyPath(t *testing.T) {
	if _, err := NewWatcher(""); err == nil {
		t.Error("NewWatcher(\"\") = nil error, want error")
	}
}

func TestWatcher_ReportsDebouncedChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "refs.yaml")
	if err := os.WriteFile(path, []byte("- id: a\n"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	w, err := NewWatcher(path, WithDebounce(50*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	if !w.Running() {
		t.Error("Running() = false after Start")
	}
	if err := w.Start(context.Background()); !errors.Is(err, ErrWatcherRunning) {
		t.Errorf("second Start error = %v, want ErrWatcherRunning", err)
	}

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("- id: b\n"), 0644); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}

	select {
	case <-w.Changes():
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported")
	}

	// The burst collapses into a single notification
	select {
	case <-w.Changes():
		t.Error("burst produced more than one notification")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "refs.yaml")
	if err := os.WriteFile(path, []byte("[]"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	w, err := NewWatcher(path, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	select {
	case <-w.Changes():
		t.Error("change reported for unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_StopOnContextCancel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "refs.yaml")

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	cancel()

	deadline := time.Now().Add(2 * time.Second)
	for w.Running() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if w.Running() {
		t.Error("watcher still running after context cancel")
	}

	// Stop after exit is a no-op
	w.Stop()
}
