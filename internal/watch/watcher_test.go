package watch

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/armature-dev/armature/internal/project"
)

func watchLayout(t *testing.T) project.Layout {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "src", "resources")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create resources dir: %v", err)
	}
	return project.Layout{Root: root, Src: "src", ResourcesDir: "src/resources", BaseFile: "base.ts"}
}

func TestFileWatcher_Start(t *testing.T) {
	layout := watchLayout(t)

	var mu sync.Mutex
	var changes [][]string

	watcher, err := NewFileWatcher(layout, func(files []string) error {
		mu.Lock()
		defer mu.Unlock()
		changes = append(changes, files)
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}
	defer watcher.Stop()

	if err := watcher.Start(); err != nil {
		t.Fatalf("Failed to start watcher: %v", err)
	}

	// Write a declaration
	time.Sleep(200 * time.Millisecond) // Allow watcher to initialize
	declPath := filepath.Join(layout.ResourcesPath(), "widget.ts")
	if err := os.WriteFile(declPath, []byte("defineResource({}, {})"), 0644); err != nil {
		t.Fatalf("Failed to write declaration: %v", err)
	}

	// Wait for debounce
	time.Sleep(300 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()

	if len(changes) == 0 {
		t.Error("Expected changes to be detected")
	}
}

func TestFileWatcher_IgnoresBaseFile(t *testing.T) {
	layout := watchLayout(t)

	var mu sync.Mutex
	var changes [][]string

	watcher, err := NewFileWatcher(layout, func(files []string) error {
		mu.Lock()
		defer mu.Unlock()
		changes = append(changes, files)
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}
	defer watcher.Stop()

	if err := watcher.Start(); err != nil {
		t.Fatalf("Failed to start watcher: %v", err)
	}

	time.Sleep(200 * time.Millisecond)
	basePath := filepath.Join(layout.ResourcesPath(), "base.ts")
	if err := os.WriteFile(basePath, []byte("export const f = {};"), 0644); err != nil {
		t.Fatalf("Failed to write base file: %v", err)
	}

	time.Sleep(300 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()

	if len(changes) != 0 {
		t.Errorf("Expected no changes for the base file, got %v", changes)
	}
}

func TestFileWatcher_IsDeclaration(t *testing.T) {
	watcher := &FileWatcher{layout: project.Layout{BaseFile: "base.ts"}}

	tests := []struct {
		path     string
		expected bool
	}{
		{"src/resources/widget.ts", true},
		{"src/resources/billing/plan.ts", true},
		{"src/resources/base.ts", false},
		{"src/resources/index.ts", false},
		{"src/resources/types.d.ts", false},
		{"src/resources/.widget.ts.swp", false},
		{"src/resources/notes.md", false},
	}

	for _, tt := range tests {
		result := watcher.IsDeclaration(tt.path)
		if result != tt.expected {
			t.Errorf("IsDeclaration(%q) = %v, expected %v", tt.path, result, tt.expected)
		}
	}
}

func TestResourceName(t *testing.T) {
	tests := map[string]string{
		"src/resources/widget.ts":       "widget",
		"src/resources/billing/plan.ts": "plan",
	}
	for path, want := range tests {
		if got := ResourceName(path); got != want {
			t.Errorf("ResourceName(%q) = %q, expected %q", path, got, want)
		}
	}
}

func TestDebouncer_Add(t *testing.T) {
	var mu sync.Mutex
	var called bool
	var files []string

	debouncer := NewDebouncer(50 * time.Millisecond)
	debouncer.SetCallback(func(f []string) {
		mu.Lock()
		defer mu.Unlock()
		called = true
		files = f
	})

	// Add multiple files
	debouncer.Add("widget.ts")
	debouncer.Add("invoice.ts")
	debouncer.Add("widget.ts") // Duplicate

	// Wait for debounce
	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()

	if !called {
		t.Error("Expected callback to be called")
	}

	if len(files) != 2 {
		t.Errorf("Expected 2 unique files, got %d", len(files))
	}
}

func TestDebouncer_MultipleFlushes(t *testing.T) {
	var mu sync.Mutex
	var callCount int

	debouncer := NewDebouncer(30 * time.Millisecond)
	debouncer.SetCallback(func(f []string) {
		mu.Lock()
		defer mu.Unlock()
		callCount++
	})

	// First batch
	debouncer.Add("widget.ts")
	time.Sleep(50 * time.Millisecond)

	// Second batch
	debouncer.Add("invoice.ts")
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()

	if callCount != 2 {
		t.Errorf("Expected 2 callback calls, got %d", callCount)
	}
}

func TestFileWatcher_Stop(t *testing.T) {
	layout := watchLayout(t)

	watcher, err := NewFileWatcher(layout, func(files []string) error { return nil })
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}

	if err := watcher.Start(); err != nil {
		t.Fatalf("Failed to start watcher: %v", err)
	}

	if err := watcher.Stop(); err != nil {
		t.Errorf("Stop() returned error: %v", err)
	}

	// Second stop should not panic
	watcher.Stop()
}

func BenchmarkDebouncer_Add(b *testing.B) {
	debouncer := NewDebouncer(100 * time.Millisecond)
	debouncer.SetCallback(func(files []string) {})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		debouncer.Add("widget.ts")
	}
}
