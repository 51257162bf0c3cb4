// Package display draws the panels shown to the human operator while an
// agent is waiting on them.
package display

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// NoOptionsMessage is shown when a multiple-choice question has no options.
const NoOptionsMessage = "Error: No options provided by the agent for the multiple-choice question."

// Kind identifies which kind of question is being asked.
type Kind int

const (
	FreeForm Kind = iota
	YesNo
	MultipleChoice
)

// Title is the panel heading for the kind
func (k Kind) Title() string {
	switch k {
	case YesNo:
		return "Agent Asks (Yes/No)"
	case MultipleChoice:
		return "Agent Asks (Multiple Choice)"
	default:
		return "Agent Asks (Free-form)"
	}
}

func (k Kind) borderColor() lipgloss.Color {
	switch k {
	case YesNo:
		return lipgloss.Color("3") // Yellow
	case MultipleChoice:
		return lipgloss.Color("5") // Magenta
	default:
		return lipgloss.Color("2") // Green
	}
}

// Presenter shows questions and errors to the human. Implementations that
// draw remotely give up when ctx is done.
type Presenter interface {
	Question(ctx context.Context, kind Kind, question string)
	Error(ctx context.Context, message string)
}

// Config configures a Panel
type Config struct {
	Output   io.Writer
	Color    string // "auto", "always", or "never"
	Markdown bool   // render question text as markdown
	Width    int    // wrap width for markdown, 0 disables wrapping
}

// Panel is a Presenter drawing lipgloss bordered boxes.
type Panel struct {
	out        io.Writer
	mdRenderer *glamour.TermRenderer

	titleStyle lipgloss.Style
	bodyStyle  lipgloss.Style
	boxStyle   lipgloss.Style
	errorTitle lipgloss.Style
	dimStyle   lipgloss.Style
	linkStyle  lipgloss.Style
}

// NewPanel creates a panel presenter writing to cfg.Output
func NewPanel(cfg Config) *Panel {
	r := lipgloss.NewRenderer(cfg.Output)
	applyColorProfile(r, cfg.Color)

	p := &Panel{
		out: cfg.Output,
		titleStyle: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("4")), // Blue
		bodyStyle: r.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("7")),
		boxStyle: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1),
		errorTitle: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("1")), // Red
		dimStyle:  r.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		linkStyle: r.NewStyle().Underline(true).Foreground(lipgloss.Color("6")),
	}
	if cfg.Markdown {
		p.mdRenderer = newMarkdownRenderer(cfg.Color, cfg.Width)
	}
	return p
}

// Question draws the question inside a box colored for its kind
func (p *Panel) Question(_ context.Context, kind Kind, question string) {
	body := p.bodyStyle.Render(question)
	if p.mdRenderer != nil {
		body = RenderMarkdown(p.mdRenderer, question)
	}

	box := p.boxStyle.
		BorderForeground(kind.borderColor()).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			p.titleStyle.Render("🤖 "+kind.Title()),
			body,
		))
	_, _ = fmt.Fprintln(p.out, box)
}

// Error draws a red "Server Error" box
func (p *Panel) Error(_ context.Context, message string) {
	box := p.boxStyle.
		BorderForeground(lipgloss.Color("1")).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			p.errorTitle.Render("Server Error"),
			message,
		))
	_, _ = fmt.Fprintln(p.out, box)
}

// Banner prints the startup message for a server listening at url.
// An empty url means the server talks over stdio.
func (p *Panel) Banner(name, url string) {
	_, _ = fmt.Fprintf(p.out, "🚀 Starting Interactive MCP Server (%s)...\n", p.titleStyle.Render(name))
	if url != "" {
		_, _ = fmt.Fprintf(p.out, "   Listening on %s\n", p.linkStyle.Render(url))
	}
	_, _ = fmt.Fprintln(p.out, p.dimStyle.Render("   Waiting for agent connections. Press Ctrl+C to stop."))
}
