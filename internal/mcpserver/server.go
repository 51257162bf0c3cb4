// Package mcpserver exposes the human-in-the-loop tools over the Model
// Context Protocol.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/martinemde/pairpilot/internal/tools"
)

const (
	// Name is the server name reported to MCP clients
	Name = "interactive_cli_server"
	// Version is the server version reported to MCP clients
	Version = "0.1.0"
)

// Server wraps the tool service in an MCP server.
type Server struct {
	service   *tools.Service
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// New creates the MCP server and registers the tools
func New(service *tools.Service, logger *slog.Logger) *Server {
	s := &Server{
		service: service,
		logger:  logger,
		mcpServer: server.NewMCPServer(
			Name,
			Version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
	}
	s.registerTools()
	return s
}

// MCPServer returns the underlying mcp-go server
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("request_free_form_input",
		mcp.WithDescription("Asks the user a free-form question and returns their textual response."),
		mcp.WithString("question",
			mcp.Required(),
			mcp.Description("The question to ask the user"),
		),
	), s.handleFreeForm)

	s.mcpServer.AddTool(mcp.NewTool("request_yes_no_input",
		mcp.WithDescription("Asks the user a yes/no question and returns their answer with optional comments."),
		mcp.WithString("question",
			mcp.Required(),
			mcp.Description("The yes/no question to ask the user"),
		),
		mcp.WithOutputSchema[tools.YesNoAnswer](),
	), s.handleYesNo)

	s.mcpServer.AddTool(mcp.NewTool("request_multiple_choice_input",
		mcp.WithDescription("Presents the user with a list of options and returns the selected options with optional comments."),
		mcp.WithString("question",
			mcp.Required(),
			mcp.Description("The question to ask the user"),
		),
		mcp.WithArray("options",
			mcp.Required(),
			mcp.Description("List of choices to present"),
			mcp.WithStringItems(),
		),
		mcp.WithOutputSchema[tools.ChoiceAnswer](),
	), s.handleMultipleChoice)
}

func (s *Server) handleFreeForm(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := requireString(req.GetArguments(), "question")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	answer, err := s.service.RequestFreeFormInput(ctx, question)
	if err != nil {
		return s.promptFailed("request_free_form_input", err), nil
	}
	return mcp.NewToolResultText(answer), nil
}

func (s *Server) handleYesNo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := requireString(req.GetArguments(), "question")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	answer, err := s.service.RequestYesNoInput(ctx, question)
	if err != nil {
		return s.promptFailed("request_yes_no_input", err), nil
	}
	return structuredResult(answer)
}

func (s *Server) handleMultipleChoice(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	question, err := requireString(args, "question")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	options, err := requireStrings(args, "options")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	answer, err := s.service.RequestMultipleChoiceInput(ctx, question, options)
	if err != nil {
		return s.promptFailed("request_multiple_choice_input", err), nil
	}
	return structuredResult(answer)
}

func (s *Server) promptFailed(tool string, err error) *mcp.CallToolResult {
	s.logger.Error("prompt failed", "tool", tool, "error", err)
	return mcp.NewToolResultError(fmt.Sprintf("User prompt failed: %v", err))
}

// structuredResult returns v as structured content with a JSON text copy
// for clients that only read text content
func structuredResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output: %w", err)
	}
	return mcp.NewToolResultStructured(v, string(data)), nil
}

// ServeStdio serves JSON-RPC over in and out until ctx is done
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	return server.NewStdioServer(s.mcpServer).Listen(ctx, in, out)
}

// Handler returns the HTTP handler for the "sse" or "http" transport.
// baseURL is advertised to SSE clients as the message endpoint prefix.
func (s *Server) Handler(transport, baseURL string) (http.Handler, error) {
	mux := http.NewServeMux()
	switch transport {
	case "sse":
		sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))
		mux.Handle("/sse", sseServer.SSEHandler())
		mux.Handle("/message", sseServer.MessageHandler())
	case "http":
		mux.Handle("/mcp", server.NewStreamableHTTPServer(s.mcpServer))
	default:
		return nil, fmt.Errorf("unsupported HTTP transport: %s", transport)
	}
	return mux, nil
}

// BaseURL is the address clients reach a server bound to host:port at.
// Wildcard binds are advertised as localhost.
func BaseURL(host string, port int) string {
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(port))
}

// Endpoint returns the URL clients connect to for transport on host:port.
func Endpoint(transport, host string, port int) string {
	base := BaseURL(host, port)
	switch transport {
	case "sse":
		return base + "/sse"
	case "http":
		return base + "/mcp"
	default:
		return ""
	}
}

// ServeHTTP listens on host:port with the given HTTP transport and shuts
// down gracefully when ctx is cancelled.
func (s *Server) ServeHTTP(ctx context.Context, transport, host string, port int) error {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.serveListener(ctx, listener, transport, host, port)
}

func (s *Server) serveListener(ctx context.Context, listener net.Listener, transport, host string, port int) error {
	handler, err := s.Handler(transport, BaseURL(host, port))
	if err != nil {
		_ = listener.Close()
		return err
	}

	httpServer := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening", "transport", transport, "address", listener.Addr().String())
		serverErrors <- httpServer.Serve(listener)
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutdown signal received, stopping server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}
