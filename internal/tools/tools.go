// Package tools implements the human-in-the-loop operations an agent can
// invoke: free-form text, yes/no confirmation and multiple choice.
package tools

import (
	"context"
	"log/slog"
	"time"

	"github.com/martinemde/pairpilot/internal/display"
	"github.com/martinemde/pairpilot/internal/prompt"
)

// Prompt texts shown under the question panel.
const (
	AnswerPrompt   = "Your answer: "
	YesNoSuffix    = " (yes/no):"
	SelectPrompt   = "Select an option:"
	CommentsPrompt = "Additional comments (optional, press Enter to skip): "
)

// YesNoAnswer is the result of a yes/no question.
type YesNoAnswer struct {
	Answer   bool   `json:"answer" jsonschema_description:"True if the user answered yes"`
	Comments string `json:"comments" jsonschema_description:"Optional comments, empty if skipped"`
}

// ChoiceAnswer is the result of a multiple-choice question.
type ChoiceAnswer struct {
	Selection []string `json:"selection" jsonschema_description:"The options the user selected"`
	Comments  string   `json:"comments" jsonschema_description:"Optional comments, empty if skipped"`
}

// Service runs the operations against one human. Invocations are
// serialized: the question panel and its prompts always appear together.
type Service struct {
	session   chan struct{} // one-slot semaphore held for a whole invocation
	adapter   *prompt.Adapter
	presenter display.Presenter
	logger    *slog.Logger
}

// NewService creates the tool service
func NewService(adapter *prompt.Adapter, presenter display.Presenter, logger *slog.Logger) *Service {
	return &Service{
		session:   make(chan struct{}, 1),
		adapter:   adapter,
		presenter: presenter,
		logger:    logger,
	}
}

// RequestFreeFormInput asks question and returns the typed answer, or "" if
// the human cancelled.
func (s *Service) RequestFreeFormInput(ctx context.Context, question string) (string, error) {
	end, err := s.begin(ctx, "request_free_form_input")
	if err != nil {
		return "", err
	}
	defer end()

	s.presenter.Question(ctx, display.FreeForm, question)
	return s.adapter.AskFreeForm(ctx, AnswerPrompt)
}

// RequestYesNoInput asks question, then always asks for optional comments.
func (s *Service) RequestYesNoInput(ctx context.Context, question string) (YesNoAnswer, error) {
	end, err := s.begin(ctx, "request_yes_no_input")
	if err != nil {
		return YesNoAnswer{}, err
	}
	defer end()

	s.presenter.Question(ctx, display.YesNo, question)

	answer, err := s.adapter.AskYesNo(ctx, question+YesNoSuffix)
	if err != nil {
		return YesNoAnswer{}, err
	}

	comments, err := s.adapter.AskFreeForm(ctx, CommentsPrompt)
	if err != nil {
		return YesNoAnswer{}, err
	}

	return YesNoAnswer{Answer: answer, Comments: comments}, nil
}

// RequestMultipleChoiceInput lets the human select from options and then
// asks for optional comments. With no options it returns the
// ERROR_NO_OPTIONS sentinel in Comments without prompting.
func (s *Service) RequestMultipleChoiceInput(ctx context.Context, question string, options []string) (ChoiceAnswer, error) {
	end, err := s.begin(ctx, "request_multiple_choice_input")
	if err != nil {
		return ChoiceAnswer{}, err
	}
	defer end()

	if len(options) == 0 {
		s.presenter.Error(ctx, display.NoOptionsMessage)
		s.logger.Warn("multiple choice question without options", "question", question)
		return noOptionsAnswer(), nil
	}

	s.presenter.Question(ctx, display.MultipleChoice, question)

	selection, err := s.adapter.AskMultipleChoice(ctx, SelectPrompt, options)
	if err != nil {
		return ChoiceAnswer{}, err
	}

	comments, err := s.adapter.AskFreeForm(ctx, CommentsPrompt)
	if err != nil {
		return ChoiceAnswer{}, err
	}

	return ChoiceAnswer{Selection: selection, Comments: comments}, nil
}

func noOptionsAnswer() ChoiceAnswer {
	return ChoiceAnswer{Selection: []string{}, Comments: prompt.NoOptionsSentinel}
}

// begin waits for the session and returns the function releasing it. A
// caller that gives up while queued never reaches the human.
func (s *Service) begin(ctx context.Context, tool string) (func(), error) {
	select {
	case s.session <- struct{}{}:
	case <-ctx.Done():
		s.logger.Debug("tool abandoned while queued", "tool", tool, "error", ctx.Err())
		return nil, ctx.Err()
	}

	// Both cases may be ready at once; a cancelled caller still gives up.
	if err := ctx.Err(); err != nil {
		<-s.session
		return nil, err
	}

	start := time.Now()
	s.logger.Debug("tool invoked", "tool", tool)

	return func() {
		s.logger.Debug("tool finished", "tool", tool, "elapsed", time.Since(start))
		<-s.session
	}, nil
}
