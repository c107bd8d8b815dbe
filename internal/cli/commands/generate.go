package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/armature-dev/armature/internal/artifact"
	"github.com/armature-dev/armature/internal/cli/config"
	"github.com/armature-dev/armature/internal/cli/ui"
	"github.com/armature-dev/armature/internal/diag"
	"github.com/armature-dev/armature/internal/project"
	"github.com/armature-dev/armature/internal/runner"
	"github.com/armature-dev/armature/internal/wiring"
)

var (
	generateForce      bool
	generateOnly       string
	generateSkipWiring bool
)

// NewGenerateCommand creates the generate command
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate <resource>",
		Aliases: []string{"g"},
		Short:   "Generate admin modules for one resource",
		Long: `Read one resource declaration and generate its admin modules.

The pipeline:
  1. Extraction - parse the declaration into a descriptor
  2. Artifacts - write the schema, collection, table, form, and route files
  3. Wiring - splice the resource into the shared hub files

Existing artifact files are never overwritten unless --force is given.
Hub merges are idempotent; a missing marker degrades to a warning and
leaves the hub untouched.

The exit code reflects whether the declaration was found and parsed.
Skipped artifacts and wiring warnings exit 0.`,
		Example: `  # Generate everything for the invoice resource
  armature generate invoice

  # Overwrite files generated earlier
  armature generate invoice --force

  # Regenerate only the form artifact
  armature generate invoice --only form

  # Write artifacts without touching the hub files
  armature generate invoice --skip-wiring`,
		Args: cobra.ExactArgs(1),
		RunE: runGenerate,
	}

	cmd.Flags().BoolVarP(&generateForce, "force", "f", false, "Overwrite existing generated files")
	cmd.Flags().StringVar(&generateOnly, "only", "", "Generate a single artifact kind (schema, collection, columns, form, routes, analytics)")
	cmd.Flags().BoolVar(&generateSkipWiring, "skip-wiring", false, "Skip hub file wiring")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	startTime := time.Now()
	resource := args[0]

	successColor := color.New(color.FgGreen, color.Bold)
	errorColor := color.New(color.FgRed, color.Bold)
	infoColor := color.New(color.FgCyan)
	warningColor := color.New(color.FgYellow)

	root, err := config.GetProjectRoot()
	if err != nil {
		return err
	}

	cfg, err := config.LoadFrom(root)
	if err != nil {
		return err
	}

	layout := cfg.Layout(root)
	r := runner.New(layout, cfg.Generator.Factory)

	// A mistyped --only yields an empty plan rather than an error; say
	// so up front instead of printing nothing.
	if generateOnly != "" && !r.Registry.Has(artifact.Kind(generateOnly)) {
		kinds := kindNames(r.Registry)
		suggestions := []string{}
		if best := ui.FindBestMatch(generateOnly, kinds, nil); best != "" {
			suggestions = append(suggestions, best)
		}
		fmt.Fprint(os.Stderr, ui.Warning(
			fmt.Sprintf("unknown artifact kind %q, nothing to generate (valid: %s)", generateOnly, strings.Join(kinds, ", ")),
			suggestions, color.NoColor))
	}

	result := r.Run(resource, runner.Options{
		Force:      generateForce,
		Only:       generateOnly,
		SkipWiring: generateSkipWiring,
	})

	if result.Err != nil {
		printRunError(result, layout)
		return fmt.Errorf("generation failed")
	}

	problems := 0
	for _, a := range result.Artifacts {
		switch a.Status {
		case artifact.OutcomeWrote:
			successColor.Printf("  ✓ wrote %s\n", a.Path)
		case artifact.OutcomeSkippedExisting:
			warningColor.Printf("  - skipped %s (exists, use --force)\n", a.Path)
		case artifact.OutcomeFailed:
			errorColor.Printf("  ✗ failed %s: %v\n", a.Path, a.Err)
			problems++
		}
	}

	for _, w := range result.Wiring {
		switch w.Status {
		case wiring.StatusCreated:
			successColor.Printf("  ✓ created %s\n", w.HubPath)
		case wiring.StatusWired:
			successColor.Printf("  ✓ wired %s\n", w.HubPath)
		case wiring.StatusAlreadyWired:
			infoColor.Printf("  = already wired %s\n", w.HubPath)
		case wiring.StatusMarkerMissing:
			warningColor.Printf("  ! %s\n", w.Warn.Message)
		case wiring.StatusFailed:
			errorColor.Printf("  ✗ wiring %s: %v\n", w.HubPath, w.Err)
			problems++
		}
	}

	elapsed := time.Since(startTime)
	fmt.Println()
	if problems > 0 {
		warningColor.Printf("Generated %s with %d problem(s) in %s\n", result.Name, problems, elapsed.Round(time.Millisecond))
		return nil
	}

	successColor.Printf("✓ Generated %s in %s\n", result.Name, elapsed.Round(time.Millisecond))
	return nil
}

// printRunError renders a descriptor-level failure with context
func printRunError(result *runner.Result, layout project.Layout) {
	var d diag.Diagnostic
	if errors.As(result.Err, &d) {
		switch d.Code {
		case diag.CodeDescriptorNotFound:
			suggestions := ui.FindSimilar(result.Resource, discoveredNames(layout), nil)
			fmt.Fprint(os.Stderr, ui.ResourceNotFoundError(result.Resource, suggestions, color.NoColor))
			return
		case diag.CodeInvalidDescriptor:
			fmt.Fprint(os.Stderr, ui.DeclarationError(result.File, d.Message, color.NoColor))
			return
		}
	}

	color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "✗ %v\n", result.Err)
}

// discoveredNames lists the declared resource names for suggestions.
// Discovery problems just mean no suggestions.
func discoveredNames(layout project.Layout) []string {
	resources, err := layout.Discover()
	if err != nil {
		return nil
	}
	names := make([]string, len(resources))
	for i, res := range resources {
		names[i] = res.Name
	}
	return names
}

// kindNames lists the registered artifact kinds
func kindNames(registry *artifact.Registry) []string {
	kinds := registry.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return names
}
