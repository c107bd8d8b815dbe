package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	// Test loading with no config file (should use defaults)
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading defaults, got %v", err)
	}

	if cfg == nil {
		t.Fatal("expected config to be non-nil")
	}

	// Check defaults
	if cfg.UI.Src != "src" {
		t.Errorf("expected default ui src 'src', got %s", cfg.UI.Src)
	}

	if cfg.Resources.Dir != "src/resources" {
		t.Errorf("expected default resources dir 'src/resources', got %s", cfg.Resources.Dir)
	}

	if cfg.Resources.Base != "base.ts" {
		t.Errorf("expected default base 'base.ts', got %s", cfg.Resources.Base)
	}

	if cfg.Generator.Factory != "defineResource" {
		t.Errorf("expected default factory 'defineResource', got %s", cfg.Generator.Factory)
	}
}

func TestLoadWithConfigFile(t *testing.T) {
	// Create temporary directory with config file
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	// Write config file
	configContent := `
project_name: test-admin
ui:
  src: app
resources:
  dir: app/resources
  base: builders.ts
generator:
  factory: resource
`
	os.WriteFile("armature.yml", []byte(configContent), 0644)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading config, got %v", err)
	}

	if cfg.ProjectName != "test-admin" {
		t.Errorf("expected project name 'test-admin', got %s", cfg.ProjectName)
	}

	if cfg.UI.Src != "app" {
		t.Errorf("expected ui src 'app', got %s", cfg.UI.Src)
	}

	if cfg.Resources.Dir != "app/resources" {
		t.Errorf("expected resources dir 'app/resources', got %s", cfg.Resources.Dir)
	}

	if cfg.Generator.Factory != "resource" {
		t.Errorf("expected factory 'resource', got %s", cfg.Generator.Factory)
	}
}

func TestLoadFrom(t *testing.T) {
	tmpDir := t.TempDir()
	configContent := `
ui:
  src: frontend
`
	os.WriteFile(filepath.Join(tmpDir, "armature.yaml"), []byte(configContent), 0644)

	cfg, err := LoadFrom(tmpDir)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.UI.Src != "frontend" {
		t.Errorf("expected ui src 'frontend', got %s", cfg.UI.Src)
	}

	// Untouched sections keep their defaults
	if cfg.Resources.Base != "base.ts" {
		t.Errorf("expected default base 'base.ts', got %s", cfg.Resources.Base)
	}
}

func TestLoadRejectsInvalidFactory(t *testing.T) {
	tmpDir := t.TempDir()
	configContent := `
generator:
  factory: "not an identifier"
`
	os.WriteFile(filepath.Join(tmpDir, "armature.yml"), []byte(configContent), 0644)

	_, err := LoadFrom(tmpDir)
	if err == nil {
		t.Error("expected error for invalid factory name, got nil")
	}
}

func TestLayout(t *testing.T) {
	cfg := &Config{
		UI:        UIConfig{Src: "src"},
		Resources: ResourcesConfig{Dir: "src/resources", Base: "base.ts"},
		Generator: GeneratorConfig{Factory: "defineResource"},
	}

	layout := cfg.Layout("/work/admin")
	if layout.Root != "/work/admin" {
		t.Errorf("expected root '/work/admin', got %s", layout.Root)
	}
	if layout.ResourcesPath() != filepath.Join("/work/admin", "src", "resources") {
		t.Errorf("unexpected resources path %s", layout.ResourcesPath())
	}
}

func TestInProject(t *testing.T) {
	// Test in non-project directory
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	if InProject() {
		t.Error("expected InProject to return false in non-project directory")
	}

	os.WriteFile("armature.yml", []byte(""), 0644)

	if !InProject() {
		t.Error("expected InProject to return true in project directory")
	}
}

func TestGetProjectRoot(t *testing.T) {
	// Create nested directory structure
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	defer os.Chdir(oldWd)

	// Create project root with armature.yml
	os.WriteFile(filepath.Join(tmpDir, "armature.yml"), []byte(""), 0644)

	// Create nested subdirectory
	subDir := filepath.Join(tmpDir, "src", "resources")
	os.MkdirAll(subDir, 0755)
	os.Chdir(subDir)

	root, err := GetProjectRoot()
	if err != nil {
		t.Fatalf("expected to find project root, got error: %v", err)
	}

	// On macOS, /tmp is symlinked to /private/tmp, so resolve both paths
	resolvedRoot, _ := filepath.EvalSymlinks(root)
	resolvedTmpDir, _ := filepath.EvalSymlinks(tmpDir)

	if resolvedRoot != resolvedTmpDir {
		t.Errorf("expected project root to be %s, got %s", resolvedTmpDir, resolvedRoot)
	}
}

func TestGetProjectRootNotInProject(t *testing.T) {
	// Create temporary directory with no project markers
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	_, err := GetProjectRoot()
	if err == nil {
		t.Error("expected error when not in a project, got nil")
	}
}
