// Package config loads pairpilot settings from defaults, an optional YAML
// file, environment variables and command line flags, in that order.
package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Defaults
const (
	DefaultHost      = "0.0.0.0"
	DefaultPort      = 8100
	DefaultTransport = "sse"
	DefaultColor     = "auto"
	DefaultLogLevel  = "info"
	DefaultTheme     = "charm"
)

// Accepted values, shared with flag help and shell completion.
var (
	Transports = []string{"sse", "http", "stdio"}
	ColorModes = []string{"auto", "always", "never"}
	LogLevels  = []string{"debug", "info", "warn", "error"}
	Themes     = []string{"charm", "base", "dracula", "catppuccin"}
)

// Config holds the process settings
type Config struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	Transport    string `yaml:"transport"`
	Color        string `yaml:"color"`
	LogLevel     string `yaml:"log_level"`
	Markdown     bool   `yaml:"markdown"`
	Theme        string `yaml:"theme"`
	PromptSocket string `yaml:"prompt_socket"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Host:      DefaultHost,
		Port:      DefaultPort,
		Transport: DefaultTransport,
		Color:     DefaultColor,
		LogLevel:  DefaultLogLevel,
		Theme:     DefaultTheme,
	}
}

// LoadFile overlays settings from a YAML file. Fields missing from the
// file keep their current value; unknown fields are an error.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays settings from the environment using lookup, which is
// normally os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("HOST"); ok && v != "" {
		c.Host = v
	}
	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Port = port
	}
	if v, ok := lookup("PAIRPILOT_TRANSPORT"); ok && v != "" {
		c.Transport = v
	}
	if v, ok := lookup("PAIRPILOT_PROMPT_SOCK"); ok && v != "" {
		c.PromptSocket = v
	}
	if v, ok := lookup("NO_COLOR"); ok && v != "" {
		c.Color = "never"
	}
	return nil
}

// Validate checks every setting against its accepted values
func (c Config) Validate() error {
	var errs []error

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range 1-65535", c.Port))
	}
	if !slices.Contains(Transports, c.Transport) {
		errs = append(errs, fmt.Errorf("unknown transport %q (supported: %v)", c.Transport, Transports))
	}
	if !slices.Contains(ColorModes, c.Color) {
		errs = append(errs, fmt.Errorf("unknown color mode %q (supported: %v)", c.Color, ColorModes))
	}
	if !slices.Contains(LogLevels, c.LogLevel) {
		errs = append(errs, fmt.Errorf("unknown log level %q (supported: %v)", c.LogLevel, LogLevels))
	}
	if !slices.Contains(Themes, c.Theme) {
		errs = append(errs, fmt.Errorf("unknown theme %q (supported: %v)", c.Theme, Themes))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// RegisterFlags defines the command line flags for every setting
func RegisterFlags(fs *flag.FlagSet) {
	d := Default()
	fs.String("host", d.Host, "Address to bind the HTTP transports to (env HOST)")
	fs.Int("port", d.Port, "Port to listen on (env PORT)")
	fs.String("transport", d.Transport, "Transport: sse, http, or stdio (env PAIRPILOT_TRANSPORT)")
	fs.String("color", d.Color, "Control color output (auto, always, never)")
	fs.String("log-level", d.LogLevel, "Log level: debug, info, warn, or error")
	fs.Bool("markdown", d.Markdown, "Render questions as markdown")
	fs.String("theme", d.Theme, "Prompt theme: charm, base, dracula, or catppuccin")
	fs.String("prompt-socket", d.PromptSocket, "Relay prompts through a console at this socket (env PAIRPILOT_PROMPT_SOCK)")
}

// ApplyFlags overlays the flags that were set explicitly on fs
func (c *Config) ApplyFlags(fs *flag.FlagSet) error {
	var err error
	fs.Visit(func(f *flag.Flag) {
		if err != nil {
			return
		}
		v := f.Value.String()
		switch f.Name {
		case "host":
			c.Host = v
		case "port":
			c.Port, err = strconv.Atoi(v)
		case "transport":
			c.Transport = v
		case "color":
			c.Color = v
		case "log-level":
			c.LogLevel = v
		case "markdown":
			c.Markdown, err = strconv.ParseBool(v)
		case "theme":
			c.Theme = v
		case "prompt-socket":
			c.PromptSocket = v
		}
	})
	if err != nil {
		return fmt.Errorf("invalid flag value: %w", err)
	}
	return nil
}
