package commands

import (
	"testing"
)

func TestNewGenerateAllCommand(t *testing.T) {
	cmd := NewGenerateAllCommand()

	if cmd.Use != "generate-all" {
		t.Errorf("expected Use to be 'generate-all', got %s", cmd.Use)
	}

	for _, flag := range []string{"force", "only", "skip-wiring", "json"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected --%s flag to be registered", flag)
		}
	}
}

func TestRunGenerateAllEmptyProject(t *testing.T) {
	setupProject(t)
	generateAllForce = false
	generateAllOnly = ""
	generateAllSkipWiring = false
	generateAllJSON = false

	// No declarations means no subprocesses; the run reports and exits clean
	cmd := NewGenerateAllCommand()
	if err := runGenerateAll(cmd, []string{}); err != nil {
		t.Fatalf("runGenerateAll failed on empty project: %v", err)
	}
}

func TestRunGenerateAllOutsideProject(t *testing.T) {
	chdir(t, t.TempDir())
	generateAllJSON = false

	cmd := NewGenerateAllCommand()
	if err := runGenerateAll(cmd, []string{}); err == nil {
		t.Fatal("expected error outside a project, got nil")
	}
}
