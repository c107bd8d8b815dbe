package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestTable(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	table := NewTable(&buf, []string{"NAME", "PLURAL", "FIELDS", "FILE"}, &TableOptions{NoColor: true})

	table.AddRow("customer", "customers", "4", "src/resources/customer.ts")
	table.AddRow("invoice", "invoices", "6", "src/resources/invoice.ts")

	table.Render()

	output := buf.String()

	// Check headers
	for _, header := range []string{"NAME", "PLURAL", "FIELDS", "FILE"} {
		if !strings.Contains(output, header) {
			t.Errorf("Table output missing header %q", header)
		}
	}

	// Check rows
	if !strings.Contains(output, "customer") {
		t.Errorf("Table output missing row data 'customer'")
	}
	if !strings.Contains(output, "invoices") {
		t.Errorf("Table output missing row data 'invoices'")
	}
	if !strings.Contains(output, "src/resources/invoice.ts") {
		t.Errorf("Table output missing row data for the invoice file")
	}

	// Check separator
	if !strings.Contains(output, "─") {
		t.Errorf("Table output missing separator")
	}
}

func TestTableEmpty(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	table := NewTable(&buf, []string{}, &TableOptions{NoColor: true})

	table.Render()

	output := buf.String()
	if output != "" {
		t.Errorf("Expected empty output for table with no headers, got: %q", output)
	}
}

func TestTableAlignment(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	table := NewTable(&buf, []string{"NAME", "VeryLongHeaderColumn"}, &TableOptions{NoColor: true})

	table.AddRow("a", "b")
	table.AddRow("longer", "c")

	table.Render()

	output := buf.String()

	lines := strings.Split(output, "\n")
	if len(lines) < 3 {
		t.Errorf("Expected at least 3 lines (header, separator, row)")
	}

	// Columns are padded to the widest cell
	for i, line := range lines {
		if line == "" {
			continue
		}
		if i > 0 && len(line) < 10 {
			t.Errorf("Line %d seems too short for proper alignment: %q", i, line)
		}
	}
}

func TestKeyValueTable(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	kvTable := NewKeyValueTable(&buf, true)

	kvTable.AddRow("Project", "acme-admin")
	kvTable.AddRow("Resources", "src/resources")
	kvTable.AddRow("Reload", "ws://localhost:35729/ws")

	kvTable.Render()

	output := buf.String()

	expected := []string{
		"Project:",
		"acme-admin",
		"Resources:",
		"src/resources",
		"Reload:",
		"ws://localhost:35729/ws",
	}

	for _, exp := range expected {
		if !strings.Contains(output, exp) {
			t.Errorf("KeyValueTable output missing: %q", exp)
		}
	}
}

func TestKeyValueTableEmpty(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	kvTable := NewKeyValueTable(&buf, true)

	kvTable.Render()

	output := buf.String()
	if output != "" {
		t.Errorf("Expected empty output for empty KeyValueTable, got: %q", output)
	}
}

func TestList(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	list := NewList(&buf, ListOptions{Numbered: false, NoColor: true})

	list.AddItem("Edit src/resources/invoice.ts")
	list.AddItem("Run armature generate invoice")

	list.Render()

	output := buf.String()

	if !strings.Contains(output, "•") {
		t.Errorf("List output missing bullet points")
	}

	expected := []string{
		"Edit src/resources/invoice.ts",
		"Run armature generate invoice",
	}

	for _, exp := range expected {
		if !strings.Contains(output, exp) {
			t.Errorf("List output missing item: %q", exp)
		}
	}
}

func TestListNumbered(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	list := NewList(&buf, ListOptions{Numbered: true, NoColor: true})

	list.AddItem("First step")
	list.AddItem("Second step")
	list.AddItem("Third step")

	list.Render()

	output := buf.String()

	expected := []string{
		"1.",
		"2.",
		"3.",
		"First step",
		"Second step",
		"Third step",
	}

	for _, exp := range expected {
		if !strings.Contains(output, exp) {
			t.Errorf("Numbered list output missing: %q", exp)
		}
	}
}

func TestListEmpty(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	list := NewList(&buf, ListOptions{NoColor: true})

	list.Render()

	output := buf.String()
	if output != "" {
		t.Errorf("Expected empty output for empty list, got: %q", output)
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		expected string
	}{
		{"test", 10, "test      "},
		{"test", 4, "test"},
		{"test", 2, "test"},
		{"", 5, "     "},
	}

	for _, tt := range tests {
		result := padRight(tt.input, tt.width)
		if result != tt.expected {
			t.Errorf("padRight(%q, %d) = %q; want %q", tt.input, tt.width, result, tt.expected)
		}
	}
}
