package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/martinemde/pairpilot/internal/completion"
	"github.com/martinemde/pairpilot/internal/config"
	"github.com/martinemde/pairpilot/internal/display"
	"github.com/martinemde/pairpilot/internal/logging"
	"github.com/martinemde/pairpilot/internal/mcpserver"
	"github.com/martinemde/pairpilot/internal/prompt"
	"github.com/martinemde/pairpilot/internal/promptserver"
	"github.com/martinemde/pairpilot/internal/tools"
)

const version = mcpserver.Version

// boolFlags never consume the following argument
var boolFlags = map[string]bool{
	"version":  true,
	"help":     true,
	"h":        true,
	"markdown": true,
}

func main() {
	if err := run(os.Args, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// separateFlags separates flag arguments from positional arguments so flags
// may appear before or after the subcommand.
func separateFlags(args []string) ([]string, []string) {
	var flagArgs []string
	var posArgs []string

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if len(arg) == 0 || arg[0] != '-' {
			posArgs = append(posArgs, arg)
			continue
		}
		flagArgs = append(flagArgs, arg)

		if strings.Contains(arg, "=") {
			continue
		}
		name := strings.TrimLeft(arg, "-")
		if !boolFlags[name] && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			i++
			flagArgs = append(flagArgs, args[i])
		}
	}

	return flagArgs, posArgs
}

func run(args []string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet(args[0], flag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		showVersion = flags.Bool("version", false, "Show version information")
		showHelp    = flags.Bool("help", false, "Show help information")
		configPath  = flags.String("config", "", "Read settings from a YAML file")
	)
	config.RegisterFlags(flags)

	flagArgs, posArgs := separateFlags(args[1:])
	if err := flags.Parse(flagArgs); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printHelp(stdout, flags.Lookup("color").Value.String())
			return nil
		}
		return err
	}

	if *showVersion {
		_, _ = fmt.Fprintf(stdout, "pairpilot version %s\n", version)
		return nil
	}

	if *showHelp {
		printHelp(stdout, flags.Lookup("color").Value.String())
		return nil
	}

	cfg, err := loadConfig(*configPath, flags)
	if err != nil {
		return err
	}

	command := "serve"
	if len(posArgs) > 0 {
		command = posArgs[0]
	}

	switch command {
	case "serve":
		return withSignals(func(ctx context.Context) error {
			return serve(ctx, cfg, stdout, stderr)
		})
	case "console":
		return withSignals(func(ctx context.Context) error {
			return console(ctx, cfg, stdout, stderr)
		})
	case "completion":
		if len(posArgs) < 2 {
			return fmt.Errorf("usage: pairpilot completion <%s>", strings.Join(completion.SupportedShells(), "|"))
		}
		return completion.Generate(stdout, posArgs[1])
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

// loadConfig layers defaults, the config file, environment and flags
func loadConfig(path string, flags *flag.FlagSet) (config.Config, error) {
	cfg := config.Default()
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	if err := cfg.ApplyFlags(flags); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func withSignals(fn func(ctx context.Context) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return fn(ctx)
}

func newLogger(cfg config.Config, stderr io.Writer) *slog.Logger {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	return logging.New(stderr, level)
}

// serve runs the MCP server. Prompts go to the console relay when a socket
// is configured, to /dev/tty for stdio, and to the process terminal
// otherwise.
func serve(ctx context.Context, cfg config.Config, stdout, stderr io.Writer) error {
	logger := newLogger(cfg, stderr)

	var (
		provider  prompt.Provider
		presenter display.Presenter
		panel     *display.Panel
	)

	switch {
	case cfg.PromptSocket != "":
		client := promptserver.NewClientWithPath(cfg.PromptSocket)
		provider, presenter = client, client
		logger.Info("relaying prompts to console", "socket", cfg.PromptSocket)
	case cfg.Transport == "stdio":
		tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
		if err != nil {
			return fmt.Errorf("stdio transport needs a terminal for prompts (or --prompt-socket): %w", err)
		}
		defer func() { _ = tty.Close() }()

		provider = prompt.NewHuhProvider(prompt.WithIO(tty, tty), prompt.WithTheme(cfg.Theme))
		presenter = display.NewPanel(display.Config{Output: tty, Color: cfg.Color, Markdown: cfg.Markdown})
	default:
		provider = prompt.NewHuhProvider(prompt.WithTheme(cfg.Theme))
		panel = display.NewPanel(display.Config{Output: stdout, Color: cfg.Color, Markdown: cfg.Markdown})
		presenter = panel
	}

	service := tools.NewService(prompt.NewAdapter(provider), presenter, logger)
	srv := mcpserver.New(service, logger)

	if cfg.Transport == "stdio" {
		logger.Info("starting MCP server", "name", mcpserver.Name, "transport", "stdio")
		return srv.ServeStdio(ctx, os.Stdin, stdout)
	}

	if panel != nil {
		panel.Banner(mcpserver.Name, mcpserver.Endpoint(cfg.Transport, cfg.Host, cfg.Port))
	}
	if err := srv.ServeHTTP(ctx, cfg.Transport, cfg.Host, cfg.Port); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	logger.Info("MCP server stopped gracefully")
	return nil
}

// console owns the terminal and answers prompts relayed from a stdio server
func console(ctx context.Context, cfg config.Config, stdout, stderr io.Writer) error {
	logger := newLogger(cfg, stderr)

	provider := prompt.NewHuhProvider(prompt.WithTheme(cfg.Theme))
	panel := display.NewPanel(display.Config{Output: stdout, Color: cfg.Color, Markdown: cfg.Markdown})

	srv := promptserver.New(cfg.PromptSocket, provider, panel, logger)
	if err := srv.Start(ctx); err != nil {
		return err
	}
	defer srv.Stop()

	_, _ = fmt.Fprintf(stdout, "Prompt console ready. Start the MCP server with:\n  %s=%s pairpilot serve --transport stdio\n",
		promptserver.SocketEnvVar, srv.SocketPath())

	<-ctx.Done()
	return nil
}

func printHelp(w io.Writer, colorMode string) {
	useColors := display.ShouldUseColors(colorMode, os.Stdout)

	mdRenderer := display.NewHelpRenderer("never")
	if useColors {
		mdRenderer = display.NewHelpRenderer(colorMode)
	}

	titleStyle := lipgloss.NewStyle().Bold(true).MarginBottom(1)
	sectionStyle := lipgloss.NewStyle().Bold(true).MarginTop(1)
	optionStyle := lipgloss.NewStyle()
	descStyle := lipgloss.NewStyle()

	if useColors {
		titleStyle = titleStyle.Foreground(lipgloss.Color("6"))     // Cyan
		sectionStyle = sectionStyle.Foreground(lipgloss.Color("3")) // Yellow
		optionStyle = optionStyle.Foreground(lipgloss.Color("2"))   // Green
		descStyle = descStyle.Foreground(lipgloss.Color("7"))       // Light gray
	}

	title := titleStyle.Render("pairpilot - Ask a human from inside an agent's workflow")

	usage := lipgloss.JoinVertical(lipgloss.Left,
		sectionStyle.Render("Usage:"),
		"  pairpilot [options] [serve]",
		"  pairpilot [options] console",
		"  pairpilot completion <bash|zsh|fish>",
	)

	description := lipgloss.JoinVertical(lipgloss.Left,
		sectionStyle.Render("Description:"),
		descStyle.Render("  pairpilot is an MCP server with three tools that pause the agent and"),
		descStyle.Render("  ask the person at this terminal: request_free_form_input,"),
		descStyle.Render("  request_yes_no_input and request_multiple_choice_input."),
	)

	options := lipgloss.JoinVertical(lipgloss.Left,
		sectionStyle.Render("Options:"),
		fmt.Sprintf("  %s              Show this help message", optionStyle.Render("--help")),
		fmt.Sprintf("  %s           Show version information", optionStyle.Render("--version")),
		fmt.Sprintf("  %s            Read settings from a YAML file", optionStyle.Render("--config")),
		fmt.Sprintf("  %s              Address to bind (env HOST, default: 0.0.0.0)", optionStyle.Render("--host")),
		fmt.Sprintf("  %s              Port to listen on (env PORT, default: 8100)", optionStyle.Render("--port")),
		fmt.Sprintf("  %s         Transport: sse, http, or stdio (default: sse)", optionStyle.Render("--transport")),
		fmt.Sprintf("  %s             Control color output (auto, always, never)", optionStyle.Render("--color")),
		fmt.Sprintf("  %s         Log level: debug, info, warn, or error", optionStyle.Render("--log-level")),
		fmt.Sprintf("  %s          Render questions as markdown", optionStyle.Render("--markdown")),
		fmt.Sprintf("  %s             Prompt theme: charm, base, dracula, or catppuccin", optionStyle.Render("--theme")),
		fmt.Sprintf("  %s     Relay prompts to a running console", optionStyle.Render("--prompt-socket")),
	)

	examplesBlock := `~~~sh
# Serve over SSE on http://localhost:8100/sse
pairpilot

# Serve streamable HTTP on a different port
pairpilot --transport http --port 9000

# Let an agent spawn the server over stdio; prompts appear in the console
pairpilot console
PAIRPILOT_PROMPT_SOCK=/tmp/pairpilot-123.sock pairpilot serve --transport stdio
~~~`

	examples := lipgloss.JoinVertical(lipgloss.Left,
		sectionStyle.Render("Examples:"),
		display.RenderMarkdown(mdRenderer, examplesBlock),
	)

	configExample := `~~~yaml
host: 127.0.0.1
port: 8100
transport: sse
color: auto
log_level: info
markdown: true
theme: charm
~~~`

	configFormat := lipgloss.JoinVertical(lipgloss.Left,
		sectionStyle.Render("Config File:"),
		display.RenderMarkdown(mdRenderer, configExample),
	)

	help := lipgloss.JoinVertical(lipgloss.Left,
		title,
		usage,
		description,
		options,
		examples,
		configFormat,
	)

	_, _ = fmt.Fprintln(w, help)
}
