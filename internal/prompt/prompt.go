// Package prompt asks a human operator for input at a terminal.
//
// A Provider renders the raw prompts. The Adapter wraps a Provider and
// folds cancellation into plain default values so callers never see it.
package prompt

import (
	"context"
	"errors"
)

// NoOptionsSentinel is the literal reported when a multiple-choice question
// arrives without options. Agents match on it, so it must not change.
const NoOptionsSentinel = "ERROR_NO_OPTIONS"

var (
	// ErrCancelled is returned by a Provider when the human aborts a prompt.
	ErrCancelled = errors.New("prompt cancelled")

	// ErrNoOptions is returned by AskMultipleChoice when options is empty.
	ErrNoOptions = errors.New(NoOptionsSentinel)
)

// Provider renders a single prompt and blocks until it is answered or
// cancelled. Implementations return ErrCancelled on user abort.
type Provider interface {
	Text(ctx context.Context, prompt string) (string, error)
	Confirm(ctx context.Context, prompt string, def bool) (bool, error)
	MultiSelect(ctx context.Context, prompt string, options []string) ([]string, error)
}

// Adapter turns provider results into request-safe values.
type Adapter struct {
	provider Provider
}

// NewAdapter creates an adapter backed by the given provider
func NewAdapter(p Provider) *Adapter {
	return &Adapter{provider: p}
}

// AskFreeForm returns the text the human typed, or "" if they cancelled.
func (a *Adapter) AskFreeForm(ctx context.Context, prompt string) (string, error) {
	answer, err := a.provider.Text(ctx, prompt)
	if errors.Is(err, ErrCancelled) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return answer, nil
}

// AskYesNo asks for confirmation with "yes" preselected. Cancelling counts
// as "no".
func (a *Adapter) AskYesNo(ctx context.Context, prompt string) (bool, error) {
	answer, err := a.provider.Confirm(ctx, prompt, true)
	if errors.Is(err, ErrCancelled) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return answer, nil
}

// AskMultipleChoice lets the human pick any subset of options. An empty
// option set returns ErrNoOptions without prompting; cancelling returns an
// empty selection.
func (a *Adapter) AskMultipleChoice(ctx context.Context, prompt string, options []string) ([]string, error) {
	if len(options) == 0 {
		return nil, ErrNoOptions
	}

	selected, err := a.provider.MultiSelect(ctx, prompt, options)
	if errors.Is(err, ErrCancelled) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	if selected == nil {
		selected = []string{}
	}
	return selected, nil
}
