package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/armature-dev/armature/internal/cli/config"
	"github.com/armature-dev/armature/internal/cli/ui"
	"github.com/armature-dev/armature/internal/descriptor"
)

var listFormat string

// listEntry is one discovered declaration in the list output
type listEntry struct {
	Name   string `json:"name"`
	Plural string `json:"plural,omitempty"`
	Fields int    `json:"fields"`
	File   string `json:"file"`
	Error  string `json:"error,omitempty"`
}

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List resource declarations",
		Long: `Discover every resource declaration in the project and show what the
generator extracts from each: the resource name, plural, and field
count. Declarations that fail extraction are listed with the error.`,
		Example: `  # Table output
  armature list

  # Machine-readable output
  armature list --format json`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	cmd.Flags().StringVar(&listFormat, "format", "table", "Output format (table, json)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	root, err := config.GetProjectRoot()
	if err != nil {
		return err
	}

	cfg, err := config.LoadFrom(root)
	if err != nil {
		return err
	}

	layout := cfg.Layout(root)
	resources, err := layout.Discover()
	if err != nil {
		return err
	}

	entries := make([]listEntry, 0, len(resources))
	for _, res := range resources {
		rel, relErr := filepath.Rel(root, res.Path)
		if relErr != nil {
			rel = res.Path
		}
		entry := listEntry{Name: res.Name, File: rel}

		source, err := os.ReadFile(res.Path)
		if err != nil {
			entry.Error = err.Error()
			entries = append(entries, entry)
			continue
		}

		desc, err := descriptor.Extract(string(source), res.Path, descriptor.Options{Factory: cfg.Generator.Factory})
		if err != nil {
			entry.Error = err.Error()
		} else {
			entry.Plural = desc.Plural
			entry.Fields = len(desc.Fields)
		}
		entries = append(entries, entry)
	}

	if listFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Printf("No resource declarations found in %s\n", layout.ResourcesDir)
		fmt.Println("Scaffold one with: armature new <name>")
		return nil
	}

	table := ui.NewTable(os.Stdout, []string{"NAME", "PLURAL", "FIELDS", "FILE"}, &ui.TableOptions{NoColor: color.NoColor})
	invalid := 0
	for _, entry := range entries {
		if entry.Error != "" {
			table.AddRow(entry.Name, "-", "-", entry.File+"  (invalid)")
			invalid++
			continue
		}
		table.AddRow(entry.Name, entry.Plural, strconv.Itoa(entry.Fields), entry.File)
	}
	table.Render()

	if invalid > 0 {
		fmt.Println()
		color.New(color.FgYellow).Printf("%d declaration(s) failed extraction; run armature generate <name> for details\n", invalid)
	}

	return nil
}
