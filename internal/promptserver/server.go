package promptserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"sync"

	"github.com/martinemde/pairpilot/internal/display"
	"github.com/martinemde/pairpilot/internal/prompt"
)

// Server answers relayed prompts using a local provider and draws relayed
// panels with a local presenter
type Server struct {
	socketPath string
	provider   prompt.Provider
	presenter  display.Presenter
	logger     *slog.Logger
	listener   net.Listener
	mu         sync.Mutex
	done       chan struct{}
	wg         sync.WaitGroup
}

// DefaultSocketPath returns a per-process socket path in the temp dir
func DefaultSocketPath() string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("pairpilot-%d.sock", os.Getpid()))
}

// New creates a prompt server on socketPath. An empty path picks
// DefaultSocketPath.
func New(socketPath string, provider prompt.Provider, presenter display.Presenter, logger *slog.Logger) *Server {
	if socketPath == "" {
		socketPath = DefaultSocketPath()
	}
	return &Server{
		socketPath: socketPath,
		provider:   provider,
		presenter:  presenter,
		logger:     logger,
		done:       make(chan struct{}),
	}
}

// SocketPath returns the path to the Unix socket
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Start begins listening for connections
func (s *Server) Start(ctx context.Context) error {
	_ = os.Remove(s.socketPath)

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to listen on socket: %w", err)
	}
	s.listener = listener

	s.wg.Add(1)
	go s.acceptLoop(ctx)

	return nil
}

// Stop closes the server and removes the socket
func (s *Server) Stop() {
	close(s.done)
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	_ = os.Remove(s.socketPath)
}

func (s *Server) acceptLoop(ctx context.Context) {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.done:
				return
			case <-ctx.Done():
				return
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return
			}
			s.logger.Warn("accept failed", "error", err)
			continue
		}

		go s.handleConnection(ctx, conn)
	}
}

// handleConnection answers a single request
func (s *Server) handleConnection(ctx context.Context, conn net.Conn) {
	defer func() { _ = conn.Close() }()

	var req Request
	if err := json.NewDecoder(conn).Decode(&req); err != nil {
		s.reply(conn, Response{Error: fmt.Sprintf("failed to decode request: %v", err)})
		return
	}

	// The client sends nothing after its request, so a read returning means
	// it hung up and the prompt is no longer wanted.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		var buf [1]byte
		_, _ = conn.Read(buf[:])
		cancel()
	}()

	// One prompt on the terminal at a time; a client that left while
	// queued is skipped
	var resp Response
	s.mu.Lock()
	if ctx.Err() == nil {
		resp = s.answer(ctx, req)
	}
	s.mu.Unlock()

	if ctx.Err() != nil {
		s.logger.Debug("client went away before the prompt was answered", "type", req.Type)
		return
	}
	s.reply(conn, resp)
}

func (s *Server) answer(ctx context.Context, req Request) Response {
	var (
		resp Response
		err  error
	)

	switch req.Type {
	case TypeText:
		resp.Text, err = s.provider.Text(ctx, req.Prompt)
	case TypeConfirm:
		resp.Confirmed, err = s.provider.Confirm(ctx, req.Prompt, req.Default)
	case TypeMultiSelect:
		resp.Selected, err = s.provider.MultiSelect(ctx, req.Prompt, req.Options)
	case TypeQuestion:
		s.presenter.Question(ctx, req.Kind, req.Message)
	case TypeError:
		s.presenter.Error(ctx, req.Message)
	default:
		return Response{Error: fmt.Sprintf("unknown request type: %s", req.Type)}
	}

	switch {
	case errors.Is(err, prompt.ErrCancelled):
		return Response{Success: true, Cancelled: true}
	case err != nil:
		s.logger.Error("relayed prompt failed", "type", req.Type, "error", err)
		return Response{Error: err.Error()}
	}

	resp.Success = true
	return resp
}

func (s *Server) reply(conn net.Conn, resp Response) {
	if err := json.NewEncoder(conn).Encode(resp); err != nil {
		s.logger.Debug("failed to send response", "error", err)
	}
}
