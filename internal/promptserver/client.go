package promptserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/martinemde/pairpilot/internal/display"
	"github.com/martinemde/pairpilot/internal/prompt"
)

// Client forwards prompts and panels to a console Server over a Unix
// socket. It is both a prompt.Provider and a display.Presenter.
type Client struct {
	socketPath  string
	dialTimeout time.Duration
}

// NewClient creates a client for the socket named by PAIRPILOT_PROMPT_SOCK.
// Returns nil if it is not set.
func NewClient() *Client {
	socketPath := os.Getenv(SocketEnvVar)
	if socketPath == "" {
		return nil
	}
	return NewClientWithPath(socketPath)
}

// NewClientWithPath creates a client with an explicit socket path
func NewClientWithPath(socketPath string) *Client {
	return &Client{socketPath: socketPath, dialTimeout: 5 * time.Second}
}

// Text implements prompt.Provider
func (c *Client) Text(ctx context.Context, p string) (string, error) {
	resp, err := c.roundTrip(ctx, Request{Type: TypeText, Prompt: p})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// Confirm implements prompt.Provider
func (c *Client) Confirm(ctx context.Context, p string, def bool) (bool, error) {
	resp, err := c.roundTrip(ctx, Request{Type: TypeConfirm, Prompt: p, Default: def})
	if err != nil {
		return false, err
	}
	return resp.Confirmed, nil
}

// MultiSelect implements prompt.Provider
func (c *Client) MultiSelect(ctx context.Context, p string, options []string) ([]string, error) {
	resp, err := c.roundTrip(ctx, Request{Type: TypeMultiSelect, Prompt: p, Options: options})
	if err != nil {
		return nil, err
	}
	if resp.Selected == nil {
		return []string{}, nil
	}
	return resp.Selected, nil
}

// Question implements display.Presenter. A failure to draw is dropped;
// the prompt that follows reports the broken connection.
func (c *Client) Question(ctx context.Context, kind display.Kind, question string) {
	_, _ = c.roundTrip(ctx, Request{Type: TypeQuestion, Kind: kind, Message: question})
}

// Error implements display.Presenter
func (c *Client) Error(ctx context.Context, message string) {
	_, _ = c.roundTrip(ctx, Request{Type: TypeError, Message: message})
}

// roundTrip sends req and waits for the human. There is no read deadline
// because a prompt may stay open indefinitely; ctx cancels the wait.
func (c *Client) roundTrip(ctx context.Context, req Request) (Response, error) {
	dialer := net.Dialer{Timeout: c.dialTimeout}
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return Response{}, fmt.Errorf("failed to connect to prompt server: %w", err)
	}
	defer func() { _ = conn.Close() }()

	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})
	defer stop()

	if err := json.NewEncoder(conn).Encode(req); err != nil {
		return Response{}, fmt.Errorf("failed to send request: %w", err)
	}

	var resp Response
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Response{}, ctxErr
		}
		return Response{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.Cancelled {
		return Response{}, prompt.ErrCancelled
	}
	if !resp.Success {
		return Response{}, errors.New("prompt failed: " + resp.Error)
	}
	return resp, nil
}
