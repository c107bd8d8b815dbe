package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/armature-dev/armature/internal/cli/config"
	"github.com/armature-dev/armature/internal/cli/ui"
	"github.com/armature-dev/armature/internal/runner"
)

var (
	generateAllForce      bool
	generateAllOnly       string
	generateAllSkipWiring bool
	generateAllJSON       bool
)

// NewGenerateAllCommand creates the generate-all command
func NewGenerateAllCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate-all",
		Short: "Generate admin modules for every declared resource",
		Long: `Discover every resource declaration and run the generation pipeline
once per resource, each in an isolated subprocess.

A failing resource is recorded and the batch moves on. The command
exits non-zero when any resource failed, after attempting all of them.`,
		Example: `  # Generate everything
  armature generate-all

  # Overwrite files generated earlier
  armature generate-all --force

  # Machine-readable batch report
  armature generate-all --json`,
		Args: cobra.NoArgs,
		RunE: runGenerateAll,
	}

	cmd.Flags().BoolVarP(&generateAllForce, "force", "f", false, "Overwrite existing generated files")
	cmd.Flags().StringVar(&generateAllOnly, "only", "", "Generate a single artifact kind per resource")
	cmd.Flags().BoolVar(&generateAllSkipWiring, "skip-wiring", false, "Skip hub file wiring")
	cmd.Flags().BoolVar(&generateAllJSON, "json", false, "Output the batch report as JSON")

	return cmd
}

func runGenerateAll(cmd *cobra.Command, args []string) error {
	successColor := color.New(color.FgGreen, color.Bold)
	errorColor := color.New(color.FgRed, color.Bold)
	infoColor := color.New(color.FgCyan)

	root, err := config.GetProjectRoot()
	if err != nil {
		return err
	}

	cfg, err := config.LoadFrom(root)
	if err != nil {
		return err
	}

	layout := cfg.Layout(root)
	opts := runner.Options{
		Force:      generateAllForce,
		Only:       generateAllOnly,
		SkipWiring: generateAllSkipWiring,
	}
	inv := &runner.SubprocessInvoker{Dir: root}

	var spinner *ui.Spinner
	if !generateAllJSON {
		spinner = ui.NewSpinner(os.Stdout, ui.SpinnerOptions{Message: "Generating resources", NoColor: color.NoColor})
		spinner.Start()
	}

	report, err := runner.Batch(layout, inv, opts)
	if err != nil {
		if spinner != nil {
			spinner.Error("Discovery failed")
		}
		return err
	}

	if spinner != nil {
		if report.Failed() {
			spinner.Error(fmt.Sprintf("Generated with %d failure(s)", report.Failures))
		} else {
			spinner.Success(fmt.Sprintf("Generated %d resource(s)", len(report.Items)))
		}
	}

	if generateAllJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		encoder.Encode(report)
		if report.Failed() {
			return fmt.Errorf("%d of %d resource(s) failed", report.Failures, len(report.Items))
		}
		return nil
	}

	if len(report.Items) == 0 {
		fmt.Println()
		infoColor.Printf("No resource declarations found in %s\n", layout.ResourcesDir)
		fmt.Println("Scaffold one with: armature new <name>")
		return nil
	}

	fmt.Println()
	for _, item := range report.Items {
		if item.Err != nil {
			errorColor.Printf("  ✗ %s\n", item.Resource)
			if output := strings.TrimSpace(item.Output); output != "" {
				for _, line := range strings.Split(output, "\n") {
					fmt.Printf("      %s\n", line)
				}
			}
		} else {
			successColor.Printf("  ✓ %s\n", item.Resource)
		}
	}

	fmt.Println()
	infoColor.Printf("  Run %s finished in %.2fs\n", report.RunID, report.ElapsedSeconds)

	if report.Failed() {
		return fmt.Errorf("%d of %d resource(s) failed", report.Failures, len(report.Items))
	}
	return nil
}
