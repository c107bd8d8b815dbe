package commands

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/armature-dev/armature/internal/cli/config"
	"github.com/armature-dev/armature/internal/cli/ui"
	utilstrings "github.com/armature-dev/armature/internal/util/strings"
)

//go:embed templates/*
var templatesFS embed.FS

var (
	newInteractive bool
	newFields      string
	newIcon        string
	newLabel       string
)

// scaffoldField is one field in a scaffolded declaration
type scaffoldField struct {
	Name        string
	Constructor string
}

var fieldSpecPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// validateResourceName validates a resource name with security checks
func validateResourceName(name string) error {
	name = strings.TrimSpace(name)

	// Check length
	if len(name) == 0 || len(name) > 100 {
		return fmt.Errorf("resource name must be 1-100 characters")
	}

	// Check for absolute paths
	if filepath.IsAbs(name) {
		return fmt.Errorf("resource name cannot be an absolute path")
	}

	// Only allow alphanumeric, dash, and underscore
	// This regex already prevents dots (including ".."), so no additional check needed
	matched, _ := regexp.MatchString(`^[a-zA-Z0-9_-]+$`, name)
	if !matched {
		return fmt.Errorf("resource name can only contain letters, numbers, dashes, and underscores")
	}

	return nil
}

// parseFieldSpecs parses a comma-separated name:kind list
func parseFieldSpecs(spec string) ([]scaffoldField, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, nil
	}

	var fields []scaffoldField
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, constructor := part, "string"
		if idx := strings.Index(part, ":"); idx >= 0 {
			name = strings.TrimSpace(part[:idx])
			constructor = strings.TrimSpace(part[idx+1:])
		}

		if !fieldSpecPattern.MatchString(name) {
			return nil, fmt.Errorf("invalid field name %q in --fields", name)
		}
		if !fieldSpecPattern.MatchString(constructor) {
			return nil, fmt.Errorf("invalid field kind %q in --fields", constructor)
		}

		fields = append(fields, scaffoldField{Name: name, Constructor: constructor})
	}
	return fields, nil
}

// NewNewCommand creates the new command
func NewNewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new [resource-name]",
		Short: "Scaffold a resource declaration",
		Long: `Create a declaration file for one resource under the resources
directory. The file is a starting point: edit the config and fields,
then run armature generate.

Fields are given as comma-separated name:kind pairs. Kinds name the
builder constructors from the base module (string, text, number, money,
boolean, date, enum, ...). A bare name defaults to string.

Examples:
  armature new invoice
  armature new invoice --fields number:string,total:money,paid:boolean
  armature new --interactive`,
		RunE: runNew,
	}

	cmd.Flags().BoolVarP(&newInteractive, "interactive", "i", false, "Interactive scaffold with prompts")
	cmd.Flags().StringVar(&newFields, "fields", "", "Comma-separated name:kind field list")
	cmd.Flags().StringVar(&newIcon, "icon", "", "Icon name for the resource config")
	cmd.Flags().StringVar(&newLabel, "label", "", "Display label override")

	return cmd
}

func runNew(cmd *cobra.Command, args []string) error {
	successColor := color.New(color.FgGreen, color.Bold)
	infoColor := color.New(color.FgCyan)
	promptColor := color.New(color.FgYellow)

	var resourceName string
	if len(args) > 0 {
		resourceName = args[0]
	}

	// Get resource name from prompt if not provided
	if resourceName == "" {
		prompt := &survey.Input{
			Message: "Resource name:",
		}
		if err := survey.AskOne(prompt, &resourceName, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}

	if err := validateResourceName(resourceName); err != nil {
		return err
	}

	label := newLabel
	icon := newIcon
	fieldsSpec := newFields

	// Interactive mode
	if newInteractive {
		questions := []*survey.Question{
			{
				Name: "label",
				Prompt: &survey.Input{
					Message: "Label:",
					Default: utilstrings.Humanize(resourceName),
				},
			},
			{
				Name: "icon",
				Prompt: &survey.Select{
					Message: "Icon:",
					Options: []string{"file-text", "users", "package", "credit-card", "bar-chart", "settings", "database"},
					Default: "file-text",
				},
			},
			{
				Name: "fields",
				Prompt: &survey.Input{
					Message: "Fields (name:kind, comma separated):",
					Default: "name:string",
					Help:    "Kinds name the builder constructors, e.g. number:string,total:money",
				},
			},
		}

		answers := struct {
			Label  string
			Icon   string
			Fields string
		}{}

		if err := survey.Ask(questions, &answers); err != nil {
			return err
		}

		label = answers.Label
		icon = answers.Icon
		fieldsSpec = answers.Fields
	}

	fields, err := parseFieldSpecs(fieldsSpec)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		fields = []scaffoldField{{Name: "name", Constructor: "string"}}
	}

	root, err := config.GetProjectRoot()
	if err != nil {
		return err
	}

	cfg, err := config.LoadFrom(root)
	if err != nil {
		return err
	}

	layout := cfg.Layout(root)
	destPath := layout.ResourceFile(resourceName)
	relPath, relErr := filepath.Rel(root, destPath)
	if relErr != nil {
		relPath = destPath
	}

	if _, err := os.Stat(destPath); err == nil {
		return fmt.Errorf("declaration %s already exists", relPath)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("failed to create resources directory: %w", err)
	}

	infoColor.Printf("Creating resource: %s\n\n", resourceName)

	data := map[string]interface{}{
		"Name":    resourceName,
		"Label":   label,
		"Icon":    icon,
		"Factory": cfg.Generator.Factory,
		"Base":    "./" + strings.TrimSuffix(cfg.Resources.Base, ".ts"),
		"Fields":  fields,
	}

	if err := renderTemplate("templates/resource.ts.tmpl", destPath, data); err != nil {
		return err
	}

	infoColor.Printf("  ✓ Created %s\n", relPath)

	// Print success message
	fmt.Println()
	successColor.Printf("✓ Scaffolded resource: %s\n\n", resourceName)

	promptColor.Println("Next steps:")
	steps := ui.NewList(os.Stdout, ui.ListOptions{Numbered: true, NoColor: color.NoColor})
	steps.AddItem(fmt.Sprintf("Edit %s", relPath))
	steps.AddItem(fmt.Sprintf("Generate its modules: armature generate %s", resourceName))
	steps.AddItem("Keep them current: armature watch")
	steps.Render()
	fmt.Println()

	return nil
}

// renderTemplate renders one embedded template to a destination file
func renderTemplate(tmplPath, destPath string, data map[string]interface{}) error {
	tmplContent, err := templatesFS.ReadFile(tmplPath)
	if err != nil {
		return fmt.Errorf("failed to read template %s: %w", tmplPath, err)
	}

	tmpl, err := template.New(filepath.Base(tmplPath)).Parse(string(tmplContent))
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", tmplPath, err)
	}

	f, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", destPath, err)
	}

	if err := tmpl.Execute(f, data); err != nil {
		f.Close()
		os.Remove(destPath)
		return fmt.Errorf("failed to execute template %s: %w", tmplPath, err)
	}

	if err := f.Close(); err != nil {
		os.Remove(destPath)
		return fmt.Errorf("failed to close file %s: %w", destPath, err)
	}

	return nil
}
