package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/armature-dev/armature/internal/cli/ui"
)

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize armature in an admin app",
		Long: `Create the armature scaffolding inside an existing admin app: an
armature.yaml config, the resources directory with the builder module,
and the runtime support module generated code imports from.

Run it at the root of the app you want to generate into. Files that
already exist are kept; init refuses to run where armature.yaml is
already present.`,
		Example: `  # Initialize the current directory
  armature init

  # Initialize another directory
  armature init apps/admin`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	successColor := color.New(color.FgGreen, color.Bold)
	infoColor := color.New(color.FgCyan)
	promptColor := color.New(color.FgYellow)

	for _, name := range []string{"armature.yaml", "armature.yml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return fmt.Errorf("%s already exists in %s", name, dir)
		}
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	projectName := filepath.Base(absDir)

	infoColor.Printf("Initializing armature in %s\n\n", dir)

	data := map[string]interface{}{
		"ProjectName": projectName,
	}

	files := []struct {
		dest string
		tmpl string
	}{
		{"armature.yaml", "templates/config.yaml.tmpl"},
		{"src/resources/base.ts", "templates/base.ts.tmpl"},
		{"src/lib/resource.ts", "templates/resource-lib.ts.tmpl"},
	}

	for _, f := range files {
		destPath := filepath.Join(dir, filepath.FromSlash(f.dest))

		// An adopted app may already carry these; keep what exists
		if _, err := os.Stat(destPath); err == nil {
			infoColor.Printf("  - kept existing %s\n", f.dest)
			continue
		}

		if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", f.dest, err)
		}

		if err := renderTemplate(f.tmpl, destPath, data); err != nil {
			return err
		}

		infoColor.Printf("  ✓ Created %s\n", f.dest)
	}

	fmt.Println()
	successColor.Printf("✓ Initialized armature in %s\n\n", dir)

	promptColor.Println("Next steps:")
	steps := ui.NewList(os.Stdout, ui.ListOptions{Numbered: true, NoColor: color.NoColor})
	if dir != "." {
		steps.AddItem(fmt.Sprintf("cd %s", dir))
	}
	steps.AddItem("Declare a resource: armature new invoice")
	steps.AddItem("Generate its modules: armature generate invoice")
	steps.AddItem("Develop with reload: armature watch --reload")
	steps.Render()
	fmt.Println()

	return nil
}
