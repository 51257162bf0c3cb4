// Package promptserver relays prompts from an MCP server process without a
// terminal (stdio transport) to a console process that owns one.
package promptserver

import "github.com/martinemde/pairpilot/internal/display"

// SocketEnvVar is the environment variable name for the socket path
const SocketEnvVar = "PAIRPILOT_PROMPT_SOCK"

// Request types
const (
	TypeText        = "text"
	TypeConfirm     = "confirm"
	TypeMultiSelect = "multi_select"
	TypeQuestion    = "question"
	TypeError       = "error"
)

// Request is a single prompt sent from the MCP server to the console
type Request struct {
	Type    string   `json:"type"`
	Prompt  string   `json:"prompt"`
	Default bool     `json:"default,omitempty"`
	Options []string `json:"options,omitempty"`

	// Kind and Message are used by the question and error panels
	Kind    display.Kind `json:"kind,omitempty"`
	Message string       `json:"message,omitempty"`
}

// Response is the console's answer to a Request
type Response struct {
	Success   bool     `json:"success"`
	Cancelled bool     `json:"cancelled,omitempty"`
	Text      string   `json:"text,omitempty"`
	Confirmed bool     `json:"confirmed,omitempty"`
	Selected  []string `json:"selected,omitempty"`
	Error     string   `json:"error,omitempty"`
}
