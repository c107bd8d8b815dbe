package diag

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// TestDiagnostic_Creation tests basic diagnostic creation
func TestDiagnostic_Creation(t *testing.T) {
	loc := Location{
		File:   "src/resources/widget.ts",
		Line:   4,
		Column: 12,
		Length: 6,
	}

	d := New("extract", CodeInvalidDescriptor, "config is missing a name", loc, Error)

	if d.Stage != "extract" {
		t.Errorf("Expected stage 'extract', got '%s'", d.Stage)
	}
	if d.Code != CodeInvalidDescriptor {
		t.Errorf("Expected code '%s', got '%s'", CodeInvalidDescriptor, d.Code)
	}
	if d.Severity != Error {
		t.Errorf("Expected severity Error, got %v", d.Severity)
	}
	if d.Location.Line != 4 {
		t.Errorf("Expected line 4, got %d", d.Location.Line)
	}
}

// TestDiagnostic_ErrorString tests the error interface formatting
func TestDiagnostic_ErrorString(t *testing.T) {
	d := Invalid("expected exactly one defineResource call, found 2", Location{
		File:   "src/resources/widget.ts",
		Line:   9,
		Column: 1,
	})

	msg := d.Error()
	if !strings.Contains(msg, "src/resources/widget.ts:9:1") {
		t.Errorf("Expected location prefix in %q", msg)
	}
	if !strings.Contains(msg, CodeInvalidDescriptor) {
		t.Errorf("Expected code in %q", msg)
	}

	// Diagnostics without a file location drop the position prefix.
	nf := NotFound("widget", "src/resources/widget.ts")
	if strings.Contains(nf.Error(), ":0:0") {
		t.Errorf("Expected no zero location in %q", nf.Error())
	}
}

// TestDiagnostic_JSON tests JSON round-tripping of severity
func TestDiagnostic_JSON(t *testing.T) {
	d := MarkerMissing("src/registry.ts", "// <armature:registry>")

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"severity":"warning"`) {
		t.Errorf("Expected warning severity in %s", data)
	}

	var sev Severity
	if err := json.Unmarshal([]byte(`"fatal"`), &sev); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if sev != Fatal {
		t.Errorf("Expected Fatal, got %v", sev)
	}
}

// TestSeverity_Classification tests the severity predicates
func TestSeverity_Classification(t *testing.T) {
	if !MarkerMissing("a", "b").IsWarning() {
		t.Error("MarkerMissing should be a warning")
	}
	if MarkerMissing("a", "b").IsError() {
		t.Error("MarkerMissing should not be an error")
	}
	if !Invalid("x", Location{}).IsError() {
		t.Error("Invalid should be an error")
	}
	if ImportAnchorMissing("a").Severity != Info {
		t.Error("ImportAnchorMissing should be info")
	}
}

// TestBatchItemError_Unwrap tests the batch wrapper
func TestBatchItemError_Unwrap(t *testing.T) {
	inner := Invalid("no defineResource call found", Location{File: "src/resources/gadget.ts"})
	wrapped := WrapBatchItem("gadget", inner)

	var item *BatchItemError
	if !errors.As(wrapped, &item) {
		t.Fatal("Expected BatchItemError")
	}
	if item.Resource != "gadget" {
		t.Errorf("Expected resource 'gadget', got '%s'", item.Resource)
	}

	var d Diagnostic
	if !errors.As(wrapped, &d) {
		t.Fatal("Expected to unwrap to Diagnostic")
	}
	if d.Code != CodeInvalidDescriptor {
		t.Errorf("Expected %s, got %s", CodeInvalidDescriptor, d.Code)
	}

	if WrapBatchItem("gadget", nil) != nil {
		t.Error("Wrapping nil should stay nil")
	}
}
