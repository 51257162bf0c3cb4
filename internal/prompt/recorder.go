package prompt

import (
	"context"
	"fmt"
	"sync"
)

// Call is one provider invocation seen by a Recorder.
type Call struct {
	Method  string // "text", "confirm" or "multi_select"
	Prompt  string
	Default bool
	Options []string
}

// Reply is a scripted provider result. Set Err to ErrCancelled to simulate
// the human aborting.
type Reply struct {
	Text      string
	Confirmed bool
	Selected  []string
	Err       error
}

// Recorder is a Provider that replays queued replies and records calls.
// It is meant for tests.
type Recorder struct {
	mu      sync.Mutex
	replies []Reply
	calls   []Call
}

// NewRecorder creates a recorder that answers with replies in order
func NewRecorder(replies ...Reply) *Recorder {
	return &Recorder{replies: replies}
}

// Calls returns a copy of the calls made so far
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Text implements Provider
func (r *Recorder) Text(_ context.Context, prompt string) (string, error) {
	reply, err := r.next(Call{Method: "text", Prompt: prompt})
	if err != nil {
		return "", err
	}
	return reply.Text, reply.Err
}

// Confirm implements Provider
func (r *Recorder) Confirm(_ context.Context, prompt string, def bool) (bool, error) {
	reply, err := r.next(Call{Method: "confirm", Prompt: prompt, Default: def})
	if err != nil {
		return false, err
	}
	return reply.Confirmed, reply.Err
}

// MultiSelect implements Provider
func (r *Recorder) MultiSelect(_ context.Context, prompt string, options []string) ([]string, error) {
	reply, err := r.next(Call{Method: "multi_select", Prompt: prompt, Options: append([]string(nil), options...)})
	if err != nil {
		return nil, err
	}
	return reply.Selected, reply.Err
}

func (r *Recorder) next(call Call) (Reply, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, call)
	if len(r.replies) == 0 {
		return Reply{}, fmt.Errorf("unexpected %s prompt %q", call.Method, call.Prompt)
	}
	reply := r.replies[0]
	r.replies = r.replies[1:]
	return reply, nil
}
