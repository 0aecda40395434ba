package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	cases := map[string]ChangeKind{
		"prefabs/scene.yaml":            ChangeScene,
		"prefabs/other.YML":             ChangeScene,
		"prefabs/scripts/uniform.tengo": ChangeScript,
	}
	for path, want := range cases {
		got, ok := classify(path)
		if !ok || got != want {
			t.Fatalf("classify(%q) = %v, %v; want %v", path, got, ok, want)
		}
	}
	if _, ok := classify("prefabs/notes.txt"); ok {
		t.Fatalf("text files should be ignored")
	}
}

func TestWatchDirs(t *testing.T) {
	root := t.TempDir()
	if got := WatchDirs(filepath.Join(root, "missing")); len(got) != 0 {
		t.Fatalf("expected nothing to watch, got %v", got)
	}
	if got := WatchDirs(root); len(got) != 1 || got[0] != root {
		t.Fatalf("expected only %s without a scripts dir, got %v", root, got)
	}
	scripts := filepath.Join(root, "scripts")
	if err := os.Mkdir(scripts, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if got := WatchDirs(root); len(got) != 2 || got[1] != scripts {
		t.Fatalf("expected %s and %s, got %v", root, scripts, got)
	}
}

// waitChanges polls until at least one change arrives or the deadline passes,
// then keeps polling for settle to catch stragglers.
func waitChanges(t *testing.T, w *Watcher, settle time.Duration) []Change {
	t.Helper()
	var got []Change
	deadline := time.Now().Add(2 * time.Second)
	for len(got) == 0 && time.Now().Before(deadline) {
		got = append(got, w.Poll()...)
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(settle)
	return append(got, w.Poll()...)
}

func TestWatcherDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(WatchDirs(dir)...)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer w.Close()

	scene := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := os.WriteFile(scene, []byte("gravity: -25\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	got := waitChanges(t, w, 50*time.Millisecond)
	if len(got) != 1 {
		t.Fatalf("expected one debounced change, got %v", got)
	}
	if got[0].Name != "scene.yaml" || got[0].Kind != ChangeScene {
		t.Fatalf("unexpected change %+v", got[0])
	}

	time.Sleep(150 * time.Millisecond)
	if err := os.WriteFile(scene, []byte("gravity: -10\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := waitChanges(t, w, 50*time.Millisecond); len(got) != 1 {
		t.Fatalf("a write after the debounce window should be reported once, got %v", got)
	}
}

func TestPollNilWatcher(t *testing.T) {
	var w *Watcher
	if got := w.Poll(); got != nil {
		t.Fatalf("expected nil from a nil watcher, got %v", got)
	}
}
