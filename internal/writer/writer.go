// Package writer centralizes file output for generated artifacts and
// hub updates. Artifact writes go through the overwrite gate; hub
// rewrites are unconditional because their idempotency lives in the
// merge probe, not in file existence.
package writer

import (
	"fmt"
	"os"
	"path/filepath"
)

// Status reports what a gated write did
type Status int

const (
	Written Status = iota
	Skipped
)

// String returns the string representation of the status
func (s Status) String() string {
	switch s {
	case Written:
		return "written"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Writer writes files under a project root
type Writer struct {
	Root string
}

// New creates a Writer rooted at dir
func New(root string) *Writer {
	return &Writer{Root: root}
}

// Path resolves a project-relative path against the root
func (w *Writer) Path(rel string) string {
	return filepath.Join(w.Root, filepath.FromSlash(rel))
}

// Exists reports whether the project-relative path exists
func (w *Writer) Exists(rel string) bool {
	_, err := os.Stat(w.Path(rel))
	return err == nil
}

// Read returns the content of a project-relative file
func (w *Writer) Read(rel string) (string, error) {
	data, err := os.ReadFile(w.Path(rel))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Write creates the file with its parent directories. An existing file
// is left untouched and reported Skipped unless force is set.
func (w *Writer) Write(rel, content string, force bool) (Status, error) {
	path := w.Path(rel)

	if _, err := os.Stat(path); err == nil && !force {
		return Skipped, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return Skipped, fmt.Errorf("creating directory for %s: %w", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return Skipped, fmt.Errorf("writing %s: %w", rel, err)
	}
	return Written, nil
}

// Put writes the file unconditionally, creating parent directories
func (w *Writer) Put(rel, content string) error {
	path := w.Path(rel)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	return nil
}
