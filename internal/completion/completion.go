// Package completion provides shell completion scripts for pairpilot.
package completion

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/template"

	"github.com/martinemde/pairpilot/internal/config"
)

// Subcommands are the pairpilot subcommands offered for completion
var Subcommands = []string{"serve", "console", "completion"}

var templates = map[string]string{
	"bash": bashTemplate,
	"zsh":  zshTemplate,
	"fish": fishTemplate,
}

// templateData holds the space-separated value lists the scripts complete
type templateData struct {
	Subcommands     string
	Shells          string
	TransportValues string
	ColorValues     string
	LogLevelValues  string
	ThemeValues     string
}

func newTemplateData() templateData {
	return templateData{
		Subcommands:     strings.Join(Subcommands, " "),
		Shells:          strings.Join(SupportedShells(), " "),
		TransportValues: strings.Join(config.Transports, " "),
		ColorValues:     strings.Join(config.ColorModes, " "),
		LogLevelValues:  strings.Join(config.LogLevels, " "),
		ThemeValues:     strings.Join(config.Themes, " "),
	}
}

// Generate writes the completion script for the given shell to the writer.
func Generate(w io.Writer, shell string) error {
	text, ok := templates[shell]
	if !ok {
		return fmt.Errorf("unsupported shell: %s (supported: %s)", shell, strings.Join(SupportedShells(), ", "))
	}

	tmpl, err := template.New(shell).Parse(text)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, newTemplateData())
}

// SupportedShells returns a list of supported shell names.
func SupportedShells() []string {
	shells := make([]string, 0, len(templates))
	for shell := range templates {
		shells = append(shells, shell)
	}
	sort.Strings(shells)
	return shells
}
