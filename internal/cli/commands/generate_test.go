package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const invoiceDeclaration = `import { defineResource, f } from "./base";

export default defineResource(
  {
    name: "invoice",
    pluralName: "invoices",
  },
  {
    number: f.string().meta({ label: "Number", sortable: true }),
    total: f.money(),
    paid: f.boolean(),
  }
);
`

func resetGenerateFlags() {
	generateForce = false
	generateOnly = ""
	generateSkipWiring = false
}

func writeDeclaration(t *testing.T, dir, name, content string) {
	t.Helper()

	path := filepath.Join(dir, "src", "resources", name+".ts")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestNewGenerateCommand(t *testing.T) {
	cmd := NewGenerateCommand()

	if cmd.Use != "generate <resource>" {
		t.Errorf("expected Use to be 'generate <resource>', got %s", cmd.Use)
	}

	foundAlias := false
	for _, alias := range cmd.Aliases {
		if alias == "g" {
			foundAlias = true
		}
	}
	if !foundAlias {
		t.Error("expected 'g' alias to be registered")
	}

	for _, flag := range []string{"force", "only", "skip-wiring"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected --%s flag to be registered", flag)
		}
	}

	// JSON output belongs to generate-all
	if cmd.Flags().Lookup("json") != nil {
		t.Error("generate should not have a --json flag")
	}
}

func TestRunGenerateWritesArtifactsAndHubs(t *testing.T) {
	dir := setupProject(t)
	writeDeclaration(t, dir, "invoice", invoiceDeclaration)
	resetGenerateFlags()

	cmd := NewGenerateCommand()
	if err := runGenerate(cmd, []string{"invoice"}); err != nil {
		t.Fatalf("runGenerate failed: %v", err)
	}

	checks := []struct {
		path     string
		contains string
	}{
		{"src/schemas/invoices.ts", "export const invoicesSchema"},
		{"src/collections/invoices.ts", "export const invoicesCollection"},
		{"src/tables/invoices-columns.tsx", "invoicesColumns"},
		{"src/forms/invoice-form.tsx", "invoiceFormFields"},
		{"src/routes/invoices-routes.tsx", "invoicesRoutes"},
		{"src/schemas/index.ts", `export * from "./invoices";`},
		{"src/collections/index.ts", `export * from "./invoices";`},
		{"src/registry.ts", "invoices: invoicesCollection,"},
		{"src/store/resources.ts", "createResourceSlice(invoicesCollection)"},
		{"src/navigation.ts", "invoicesRoutes"},
	}

	for _, check := range checks {
		content, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(check.path)))
		if err != nil {
			t.Errorf("expected %s to exist: %v", check.path, err)
			continue
		}
		if !strings.Contains(string(content), check.contains) {
			t.Errorf("%s missing %q", check.path, check.contains)
		}
	}

	// Markers survive the merge, so this resource and the next both land
	for _, check := range []struct{ path, marker string }{
		{"src/schemas/index.ts", "// <armature:schemas>"},
		{"src/registry.ts", "// <armature:registry>"},
		{"src/navigation.ts", "// <armature:nav>"},
	} {
		content, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(check.path)))
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(content), check.marker) {
			t.Errorf("%s missing marker %q", check.path, check.marker)
		}
	}

	// A second run skips existing artifacts and still exits clean
	if err := runGenerate(cmd, []string{"invoice"}); err != nil {
		t.Fatalf("second runGenerate failed: %v", err)
	}
}

func TestRunGenerateOnlyForm(t *testing.T) {
	dir := setupProject(t)
	writeDeclaration(t, dir, "invoice", invoiceDeclaration)
	resetGenerateFlags()
	generateOnly = "form"

	cmd := NewGenerateCommand()
	if err := runGenerate(cmd, []string{"invoice"}); err != nil {
		t.Fatalf("runGenerate failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "src", "forms", "invoice-form.tsx")); err != nil {
		t.Errorf("expected form artifact: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "src", "schemas", "invoices.ts")); !os.IsNotExist(err) {
		t.Error("expected schema artifact to be excluded from the plan")
	}

	// Wiring still runs with a restricted plan
	if _, err := os.Stat(filepath.Join(dir, "src", "registry.ts")); err != nil {
		t.Errorf("expected registry hub: %v", err)
	}
}

func TestRunGenerateUnknownOnly(t *testing.T) {
	dir := setupProject(t)
	writeDeclaration(t, dir, "invoice", invoiceDeclaration)
	resetGenerateFlags()
	generateOnly = "widgets"

	cmd := NewGenerateCommand()
	if err := runGenerate(cmd, []string{"invoice"}); err != nil {
		t.Fatalf("unknown --only should not fail the run: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "src", "schemas", "invoices.ts")); !os.IsNotExist(err) {
		t.Error("expected an empty plan for an unknown kind")
	}
}

func TestRunGenerateSkipWiring(t *testing.T) {
	dir := setupProject(t)
	writeDeclaration(t, dir, "invoice", invoiceDeclaration)
	resetGenerateFlags()
	generateSkipWiring = true

	cmd := NewGenerateCommand()
	if err := runGenerate(cmd, []string{"invoice"}); err != nil {
		t.Fatalf("runGenerate failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "src", "schemas", "invoices.ts")); err != nil {
		t.Errorf("expected schema artifact: %v", err)
	}
	for _, hub := range []string{"src/registry.ts", "src/navigation.ts", "src/schemas/index.ts"} {
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(hub))); !os.IsNotExist(err) {
			t.Errorf("expected %s to be untouched with --skip-wiring", hub)
		}
	}
}

func TestRunGenerateMissingResource(t *testing.T) {
	setupProject(t)
	resetGenerateFlags()

	cmd := NewGenerateCommand()
	err := runGenerate(cmd, []string{"shipment"})
	if err == nil {
		t.Fatal("expected error for missing declaration, got nil")
	}
	if !strings.Contains(err.Error(), "generation failed") {
		t.Errorf("expected 'generation failed' error, got: %v", err)
	}
}

func TestRunGenerateInvalidDeclaration(t *testing.T) {
	dir := setupProject(t)
	writeDeclaration(t, dir, "invoice", "const nope = 42;\n")
	resetGenerateFlags()

	cmd := NewGenerateCommand()
	if err := runGenerate(cmd, []string{"invoice"}); err == nil {
		t.Fatal("expected error for invalid declaration, got nil")
	}
}
