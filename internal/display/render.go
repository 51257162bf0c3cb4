package display

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// newMarkdownRenderer returns a glamour renderer for the color mode, or nil
// when markdown should be printed as plain text.
func newMarkdownRenderer(colorMode string, wrap int) *glamour.TermRenderer {
	opts := []glamour.TermRendererOption{
		glamour.WithWordWrap(wrap),
	}

	switch colorMode {
	case "never":
		opts = append(opts, glamour.WithStandardStyle("notty"))
	case "always":
		opts = append(opts,
			glamour.WithAutoStyle(),
			glamour.WithColorProfile(termenv.TrueColor),
		)
	default:
		opts = append(opts, glamour.WithAutoStyle())
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil
	}
	return r
}

// RenderMarkdown renders text with r, falling back to the raw text
func RenderMarkdown(r *glamour.TermRenderer, text string) string {
	if r == nil {
		return text
	}
	rendered, err := r.Render(text)
	if err != nil {
		return text
	}
	// glamour pads output with blank lines
	return strings.TrimSpace(rendered)
}

// NewHelpRenderer returns a markdown renderer for CLI help output
func NewHelpRenderer(colorMode string) *glamour.TermRenderer {
	return newMarkdownRenderer(colorMode, 0)
}
