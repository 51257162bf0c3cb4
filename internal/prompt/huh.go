package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/huh"
)

// Themes are the huh themes selectable by name.
var Themes = map[string]func() *huh.Theme{
	"charm":      huh.ThemeCharm,
	"base":       huh.ThemeBase,
	"dracula":    huh.ThemeDracula,
	"catppuccin": huh.ThemeCatppuccin,
}

// HuhProvider renders prompts with huh forms. Only one form runs at a time
// since a second one would corrupt the terminal.
type HuhProvider struct {
	mu     sync.Mutex
	input  io.Reader
	output io.Writer
	theme  *huh.Theme
}

// HuhOption configures a HuhProvider
type HuhOption func(*HuhProvider)

// WithIO sets the reader and writer the forms use instead of stdin/stdout.
func WithIO(r io.Reader, w io.Writer) HuhOption {
	return func(p *HuhProvider) {
		p.input = r
		p.output = w
	}
}

// WithTheme selects a named theme. Unknown names keep the default.
func WithTheme(name string) HuhOption {
	return func(p *HuhProvider) {
		if theme, ok := Themes[name]; ok {
			p.theme = theme()
		}
	}
}

// NewHuhProvider creates a terminal prompt provider
func NewHuhProvider(opts ...HuhOption) *HuhProvider {
	p := &HuhProvider{theme: huh.ThemeCharm()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Text prompts for a single line of free text
func (p *HuhProvider) Text(ctx context.Context, prompt string) (string, error) {
	var text string
	field := huh.NewInput().
		Title(prompt).
		Value(&text)

	if err := p.run(ctx, field); err != nil {
		return "", err
	}
	return text, nil
}

// Confirm prompts for yes or no with def preselected
func (p *HuhProvider) Confirm(ctx context.Context, prompt string, def bool) (bool, error) {
	confirmed := def
	field := huh.NewConfirm().
		Title(prompt).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed)

	if err := p.run(ctx, field); err != nil {
		return false, err
	}
	return confirmed, nil
}

// MultiSelect prompts with a checkbox list of options
func (p *HuhProvider) MultiSelect(ctx context.Context, prompt string, options []string) ([]string, error) {
	selected := []string{}
	field := huh.NewMultiSelect[string]().
		Title(prompt).
		Options(huh.NewOptions(options...)...).
		Value(&selected)

	if err := p.run(ctx, field); err != nil {
		return nil, err
	}
	return selected, nil
}

// run shows a one-field form and maps an abort to ErrCancelled
func (p *HuhProvider) run(ctx context.Context, field huh.Field) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(p.theme).
		WithShowHelp(true)
	if p.input != nil {
		form = form.WithInput(p.input)
	}
	if p.output != nil {
		form = form.WithOutput(p.output)
	}

	err := form.RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrCancelled
	}
	if err != nil {
		return fmt.Errorf("failed to run prompt: %w", err)
	}
	return nil
}
