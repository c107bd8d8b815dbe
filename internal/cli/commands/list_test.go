package commands

import (
	"encoding/json"
	"io"
	"os"
	"testing"
)

func TestNewListCommand(t *testing.T) {
	cmd := NewListCommand()

	if cmd.Use != "list" {
		t.Errorf("expected Use to be 'list', got %s", cmd.Use)
	}

	flag := cmd.Flags().Lookup("format")
	if flag == nil {
		t.Fatal("expected --format flag to be registered")
	}
	if flag.DefValue != "table" {
		t.Errorf("expected --format default 'table', got %s", flag.DefValue)
	}
}

func TestRunListOutsideProject(t *testing.T) {
	chdir(t, t.TempDir())
	listFormat = "table"

	cmd := NewListCommand()
	if err := runList(cmd, []string{}); err == nil {
		t.Fatal("expected error outside a project, got nil")
	}
}

func TestRunListJSON(t *testing.T) {
	dir := setupProject(t)
	writeDeclaration(t, dir, "invoice", invoiceDeclaration)
	writeDeclaration(t, dir, "broken", "const nope = 42;\n")
	listFormat = "json"
	defer func() { listFormat = "table" }()

	output := captureStdout(t, func() {
		cmd := NewListCommand()
		if err := runList(cmd, []string{}); err != nil {
			t.Errorf("runList failed: %v", err)
		}
	})

	var entries []listEntry
	if err := json.Unmarshal([]byte(output), &entries); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, output)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	byName := map[string]listEntry{}
	for _, entry := range entries {
		byName[entry.Name] = entry
	}

	invoice, ok := byName["invoice"]
	if !ok {
		t.Fatal("expected an invoice entry")
	}
	if invoice.Plural != "invoices" {
		t.Errorf("expected plural 'invoices', got %s", invoice.Plural)
	}
	if invoice.Fields != 3 {
		t.Errorf("expected 3 fields, got %d", invoice.Fields)
	}
	if invoice.Error != "" {
		t.Errorf("unexpected error on valid entry: %s", invoice.Error)
	}

	broken, ok := byName["broken"]
	if !ok {
		t.Fatal("expected a broken entry")
	}
	if broken.Error == "" {
		t.Error("expected extraction error on broken entry")
	}
}

func TestRunListEmptyProject(t *testing.T) {
	setupProject(t)
	listFormat = "table"

	cmd := NewListCommand()
	if err := runList(cmd, []string{}); err != nil {
		t.Fatalf("runList failed on empty project: %v", err)
	}
}

// captureStdout redirects os.Stdout for the duration of fn
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w

	done := make(chan string)
	go func() {
		data, _ := io.ReadAll(r)
		done <- string(data)
	}()

	fn()

	w.Close()
	os.Stdout = old
	return <-done
}
