package tools

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/martinemde/pairpilot/internal/display"
	"github.com/martinemde/pairpilot/internal/logging"
	"github.com/martinemde/pairpilot/internal/prompt"
)

// fakePresenter records what would have been drawn
type fakePresenter struct {
	mu        sync.Mutex
	questions []string
	kinds     []display.Kind
	errors    []string
}

func (f *fakePresenter) Question(_ context.Context, kind display.Kind, question string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.kinds = append(f.kinds, kind)
	f.questions = append(f.questions, question)
}

func (f *fakePresenter) Error(_ context.Context, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors = append(f.errors, message)
}

func newTestService(replies ...prompt.Reply) (*Service, *prompt.Recorder, *fakePresenter) {
	rec := prompt.NewRecorder(replies...)
	pres := &fakePresenter{}
	return NewService(prompt.NewAdapter(rec), pres, logging.NewNop()), rec, pres
}

func TestRequestFreeFormInput(t *testing.T) {
	svc, rec, pres := newTestService(prompt.Reply{Text: "blue"})

	got, err := svc.RequestFreeFormInput(context.Background(), "Favorite color?")
	if err != nil {
		t.Fatalf("RequestFreeFormInput failed: %v", err)
	}
	if got != "blue" {
		t.Errorf("got %q, want %q", got, "blue")
	}

	want := []prompt.Call{{Method: "text", Prompt: "Your answer: "}}
	if calls := rec.Calls(); !reflect.DeepEqual(calls, want) {
		t.Errorf("calls = %+v, want %+v", calls, want)
	}
	if len(pres.questions) != 1 || pres.questions[0] != "Favorite color?" || pres.kinds[0] != display.FreeForm {
		t.Errorf("question panel not shown: %+v", pres)
	}
}

func TestRequestFreeFormInput_Cancelled(t *testing.T) {
	svc, _, _ := newTestService(prompt.Reply{Err: prompt.ErrCancelled})

	got, err := svc.RequestFreeFormInput(context.Background(), "Favorite color?")
	if err != nil {
		t.Fatalf("RequestFreeFormInput failed: %v", err)
	}
	if got != "" {
		t.Errorf("cancelled answer should be empty, got %q", got)
	}
}

func TestRequestYesNoInput(t *testing.T) {
	tests := []struct {
		name     string
		question string
		replies  []prompt.Reply
		want     YesNoAnswer
	}{
		{
			name:     "yes without comments",
			question: "Proceed?",
			replies:  []prompt.Reply{{Confirmed: true}, {Text: ""}},
			want:     YesNoAnswer{Answer: true, Comments: ""},
		},
		{
			name:     "no with comments",
			question: "Delete?",
			replies:  []prompt.Reply{{Confirmed: false}, {Text: "keep it"}},
			want:     YesNoAnswer{Answer: false, Comments: "keep it"},
		},
		{
			name:     "cancelled confirm still asks for comments",
			question: "Deploy?",
			replies:  []prompt.Reply{{Err: prompt.ErrCancelled}, {Text: "not now"}},
			want:     YesNoAnswer{Answer: false, Comments: "not now"},
		},
		{
			name:     "cancelled comments",
			question: "Deploy?",
			replies:  []prompt.Reply{{Confirmed: true}, {Err: prompt.ErrCancelled}},
			want:     YesNoAnswer{Answer: true, Comments: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, rec, pres := newTestService(tt.replies...)

			got, err := svc.RequestYesNoInput(context.Background(), tt.question)
			if err != nil {
				t.Fatalf("RequestYesNoInput failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}

			want := []prompt.Call{
				{Method: "confirm", Prompt: tt.question + " (yes/no):", Default: true},
				{Method: "text", Prompt: "Additional comments (optional, press Enter to skip): "},
			}
			if calls := rec.Calls(); !reflect.DeepEqual(calls, want) {
				t.Errorf("calls = %+v, want %+v", calls, want)
			}
			if len(pres.kinds) != 1 || pres.kinds[0] != display.YesNo {
				t.Errorf("expected one yes/no panel, got %+v", pres.kinds)
			}
		})
	}
}

func TestRequestMultipleChoiceInput(t *testing.T) {
	svc, rec, pres := newTestService(
		prompt.Reply{Selected: []string{"B"}},
		prompt.Reply{Text: ""},
	)

	got, err := svc.RequestMultipleChoiceInput(context.Background(), "Pick one", []string{"A", "B"})
	if err != nil {
		t.Fatalf("RequestMultipleChoiceInput failed: %v", err)
	}

	want := ChoiceAnswer{Selection: []string{"B"}, Comments: ""}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}

	wantCalls := []prompt.Call{
		{Method: "multi_select", Prompt: "Select an option:", Options: []string{"A", "B"}},
		{Method: "text", Prompt: "Additional comments (optional, press Enter to skip): "},
	}
	if calls := rec.Calls(); !reflect.DeepEqual(calls, wantCalls) {
		t.Errorf("calls = %+v, want %+v", calls, wantCalls)
	}
	if len(pres.kinds) != 1 || pres.kinds[0] != display.MultipleChoice {
		t.Errorf("expected one multiple choice panel, got %+v", pres.kinds)
	}
}

func TestRequestMultipleChoiceInput_Cancelled(t *testing.T) {
	svc, _, _ := newTestService(
		prompt.Reply{Err: prompt.ErrCancelled},
		prompt.Reply{Text: "changed my mind"},
	)

	got, err := svc.RequestMultipleChoiceInput(context.Background(), "Pick", []string{"A"})
	if err != nil {
		t.Fatalf("RequestMultipleChoiceInput failed: %v", err)
	}
	if got.Selection == nil || len(got.Selection) != 0 {
		t.Errorf("expected empty selection, got %#v", got.Selection)
	}
	if got.Comments != "changed my mind" {
		t.Errorf("comments = %q", got.Comments)
	}
}

func TestRequestMultipleChoiceInput_NoOptions(t *testing.T) {
	svc, rec, pres := newTestService()

	got, err := svc.RequestMultipleChoiceInput(context.Background(), "Pick one", []string{})
	if err != nil {
		t.Fatalf("RequestMultipleChoiceInput failed: %v", err)
	}

	want := ChoiceAnswer{Selection: []string{}, Comments: "ERROR_NO_OPTIONS"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if calls := rec.Calls(); len(calls) != 0 {
		t.Errorf("provider should not be invoked, got %+v", calls)
	}
	if len(pres.errors) != 1 || len(pres.questions) != 0 {
		t.Errorf("expected only the error panel, got %+v", pres)
	}

	data, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `{"selection":[],"comments":"ERROR_NO_OPTIONS"}` {
		t.Errorf("unexpected JSON: %s", data)
	}
}

func TestRequests_NoHiddenState(t *testing.T) {
	replies := []prompt.Reply{{Confirmed: true}, {Text: "ok"}}

	var results []YesNoAnswer
	svc, _, _ := newTestService(append(replies, replies...)...)
	for i := 0; i < 2; i++ {
		got, err := svc.RequestYesNoInput(context.Background(), "Proceed?")
		if err != nil {
			t.Fatalf("RequestYesNoInput failed: %v", err)
		}
		results = append(results, got)
	}

	if results[0] != results[1] {
		t.Errorf("repeated invocations differ: %+v vs %+v", results[0], results[1])
	}
}

func TestRequests_ProviderFault(t *testing.T) {
	fault := errors.New("terminal gone")
	svc, rec, _ := newTestService(prompt.Reply{Err: fault})

	_, err := svc.RequestYesNoInput(context.Background(), "Proceed?")
	if !errors.Is(err, fault) {
		t.Fatalf("expected fault, got %v", err)
	}
	if n := len(rec.Calls()); n != 1 {
		t.Errorf("comments should not be asked after a fault, got %d calls", n)
	}
}

// gatedProvider blocks every prompt until released
type gatedProvider struct {
	started chan string
	release chan struct{}
}

func (g *gatedProvider) Text(ctx context.Context, p string) (string, error) {
	g.started <- p
	<-g.release
	return "", nil
}

func (g *gatedProvider) Confirm(ctx context.Context, p string, def bool) (bool, error) {
	g.started <- p
	<-g.release
	return def, nil
}

func (g *gatedProvider) MultiSelect(ctx context.Context, p string, options []string) ([]string, error) {
	g.started <- p
	<-g.release
	return options, nil
}

func TestRequests_SerializeInvocations(t *testing.T) {
	gate := &gatedProvider{started: make(chan string, 4), release: make(chan struct{})}
	pres := &fakePresenter{}
	svc := NewService(prompt.NewAdapter(gate), pres, logging.NewNop())

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, _ = svc.RequestYesNoInput(context.Background(), "First?")
	}()

	if got := <-gate.started; got != "First? (yes/no):" {
		t.Fatalf("first prompt = %q", got)
	}

	go func() {
		defer wg.Done()
		_, _ = svc.RequestFreeFormInput(context.Background(), "Second?")
	}()

	// The second invocation must wait for both prompts of the first.
	gate.release <- struct{}{}
	if got := <-gate.started; got != CommentsPrompt {
		t.Fatalf("expected first invocation's comment prompt, got %q", got)
	}
	gate.release <- struct{}{}

	select {
	case got := <-gate.started:
		if got != AnswerPrompt {
			t.Fatalf("expected second invocation prompt, got %q", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("second invocation never started")
	}
	gate.release <- struct{}{}
	wg.Wait()

	pres.mu.Lock()
	defer pres.mu.Unlock()
	if !reflect.DeepEqual(pres.questions, []string{"First?", "Second?"}) {
		t.Errorf("panels out of order: %v", pres.questions)
	}
}

func TestRequests_QueuedCallerGivesUp(t *testing.T) {
	gate := &gatedProvider{started: make(chan string, 4), release: make(chan struct{})}
	pres := &fakePresenter{}
	svc := NewService(prompt.NewAdapter(gate), pres, logging.NewNop())

	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		_, _ = svc.RequestFreeFormInput(context.Background(), "First?")
	}()
	if got := <-gate.started; got != AnswerPrompt {
		t.Fatalf("first prompt = %q", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	secondErr := make(chan error, 1)
	go func() {
		_, err := svc.RequestFreeFormInput(ctx, "Second?")
		secondErr <- err
	}()
	cancel()

	select {
	case err := <-secondErr:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("queued call stayed blocked after its context was cancelled")
	}

	gate.release <- struct{}{}
	<-firstDone

	select {
	case got := <-gate.started:
		t.Errorf("cancelled call still prompted the human: %q", got)
	default:
	}

	pres.mu.Lock()
	defer pres.mu.Unlock()
	if !reflect.DeepEqual(pres.questions, []string{"First?"}) {
		t.Errorf("cancelled call drew a panel: %v", pres.questions)
	}
}

func TestRequests_CancelledBeforeStart(t *testing.T) {
	svc, rec, pres := newTestService()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.RequestMultipleChoiceInput(ctx, "Pick", []string{"A"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(rec.Calls()) != 0 || len(pres.questions) != 0 {
		t.Errorf("cancelled call reached the human: calls=%v panels=%v", rec.Calls(), pres.questions)
	}
}
