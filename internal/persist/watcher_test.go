package persist

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchFileReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.csv")

	w, err := WatchFile(path)
	if err != nil {
		t.Fatalf("WatchFile error: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("operation,operand_a,operand_b,result,timestamp\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-w.Events():
		if filepath.Clean(ev.Path) != filepath.Clean(path) {
			t.Errorf("event path = %q, want %q", ev.Path, path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event for history file write")
	}
}

func TestWatchFileIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.csv")

	w, err := WatchFile(path)
	if err != nil {
		t.Fatalf("WatchFile error: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-w.Events():
		t.Errorf("unexpected event for sibling file: %+v", ev)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatchFileClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.csv")

	w, err := WatchFile(path)
	if err != nil {
		t.Fatalf("WatchFile error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close error: %v", err)
	}
	// Double close is safe.
	if err := w.Close(); err != nil {
		t.Errorf("second Close error: %v", err)
	}
}
