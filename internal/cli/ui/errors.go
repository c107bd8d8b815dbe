package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// ErrorLevel represents the severity of a rendered message
type ErrorLevel int

const (
	ErrorLevelError ErrorLevel = iota
	ErrorLevelWarning
	ErrorLevelInfo
)

// ErrorOptions configures the error message formatting
type ErrorOptions struct {
	Level        ErrorLevel
	Context      string // Upper-cased category, e.g. "RESOURCE NOT FOUND"
	Subject      string // What the category applies to, e.g. the resource name
	Detail       string // Sentence under the heading
	Suggestions  []string
	HelpCommands []string
	NoColor      bool
}

// FormatError creates a standardized error message with suggestions and help commands
//
// Example output:
//
//	✗ RESOURCE NOT FOUND: invocie
//	   No declaration file for 'invocie'.
//
//	   Did you mean: invoice?
//
//	   → See all resources: armature list
//	   → Scaffold it: armature new invocie
func FormatError(opts ErrorOptions) string {
	var b strings.Builder

	var headerColor, bodyColor *color.Color
	var symbol string

	switch opts.Level {
	case ErrorLevelError:
		headerColor = color.New(color.FgRed, color.Bold)
		bodyColor = color.New(color.FgRed)
		symbol = "✗"
	case ErrorLevelWarning:
		headerColor = color.New(color.FgYellow, color.Bold)
		bodyColor = color.New(color.FgYellow)
		symbol = "⚠"
	case ErrorLevelInfo:
		headerColor = color.New(color.FgCyan, color.Bold)
		bodyColor = color.New(color.FgCyan)
		symbol = "ℹ"
	}

	if opts.NoColor {
		headerColor.DisableColor()
		bodyColor.DisableColor()
	}

	// Heading
	switch {
	case opts.Context != "" && opts.Subject != "":
		headerColor.Fprintf(&b, "%s %s: %s\n", symbol, strings.ToUpper(opts.Context), opts.Subject)
	case opts.Context != "":
		headerColor.Fprintf(&b, "%s %s\n", symbol, strings.ToUpper(opts.Context))
	default:
		headerColor.Fprintf(&b, "%s %s\n", symbol, opts.Detail)
	}

	// Detail under the heading, unless it already served as the heading
	if opts.Detail != "" && opts.Context != "" {
		bodyColor.Fprintf(&b, "   %s\n", opts.Detail)
	}

	if len(opts.Suggestions) > 0 {
		b.WriteString("\n")
		yellow := color.New(color.FgYellow)
		if opts.NoColor {
			yellow.DisableColor()
		}
		yellow.Fprintf(&b, "   Did you mean: %s?\n", strings.Join(opts.Suggestions, ", "))
	}

	if len(opts.HelpCommands) > 0 {
		b.WriteString("\n")
		cyan := color.New(color.FgCyan)
		if opts.NoColor {
			cyan.DisableColor()
		}
		for _, cmd := range opts.HelpCommands {
			cyan.Fprintf(&b, "   → %s\n", cmd)
		}
	}

	return b.String()
}

// WriteError writes a formatted error message to the writer
func WriteError(w io.Writer, opts ErrorOptions) {
	fmt.Fprint(w, FormatError(opts))
}

// FormatSuccess creates a success message
func FormatSuccess(message string, noColor bool) string {
	green := color.New(color.FgGreen, color.Bold)
	if noColor {
		green.DisableColor()
	}
	return green.Sprintf("✓ %s", message)
}

// WriteSuccess writes a success message to the writer
func WriteSuccess(w io.Writer, message string, noColor bool) {
	fmt.Fprintln(w, FormatSuccess(message, noColor))
}

// ResourceNotFoundError renders a missing-declaration error with fuzzy
// suggestions against the discovered resource names
func ResourceNotFoundError(resourceName string, suggestions []string, noColor bool) string {
	opts := ErrorOptions{
		Level:       ErrorLevelError,
		Context:     "RESOURCE NOT FOUND",
		Subject:     resourceName,
		Detail:      fmt.Sprintf("No declaration file for '%s'.", resourceName),
		Suggestions: suggestions,
		HelpCommands: []string{
			"See all resources: armature list",
			fmt.Sprintf("Scaffold it: armature new %s", resourceName),
		},
		NoColor: noColor,
	}
	return FormatError(opts)
}

// DeclarationError renders an extraction failure for a declaration file
func DeclarationError(file, message string, noColor bool) string {
	opts := ErrorOptions{
		Level:   ErrorLevelError,
		Context: "INVALID DECLARATION",
		Subject: file,
		Detail:  message,
		HelpCommands: []string{
			"The declaration must contain exactly one defineResource(config, fields) call",
			"Get help: armature generate --help",
		},
		NoColor: noColor,
	}
	return FormatError(opts)
}

// ConfigError renders a configuration problem
func ConfigError(message string, suggestions []string, noColor bool) string {
	opts := ErrorOptions{
		Level:       ErrorLevelError,
		Context:     "CONFIGURATION ERROR",
		Subject:     "armature.yaml",
		Detail:      message,
		Suggestions: suggestions,
		HelpCommands: []string{
			"View config: cat armature.yaml",
			"Get help: armature --help",
		},
		NoColor: noColor,
	}
	return FormatError(opts)
}

// Warning renders a standalone warning message
func Warning(message string, suggestions []string, noColor bool) string {
	opts := ErrorOptions{
		Level:       ErrorLevelWarning,
		Detail:      message,
		Suggestions: suggestions,
		NoColor:     noColor,
	}
	return FormatError(opts)
}

// Info renders a standalone informational message
func Info(message string, noColor bool) string {
	opts := ErrorOptions{
		Level:   ErrorLevelInfo,
		Detail:  message,
		NoColor: noColor,
	}
	return FormatError(opts)
}
