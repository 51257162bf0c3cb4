package completion

const zshTemplate = `#compdef pairpilot

# Zsh completion for pairpilot
# Install: source <(pairpilot completion zsh)
# Or: pairpilot completion zsh > "${fpath[1]}/_pairpilot"

_pairpilot() {
    _arguments -C \
        '--version[Show version information]' \
        '--help[Show help information]' \
        '--config[Read settings from a YAML file]:file:_files' \
        '--host[Address to bind the HTTP transports to]:host:' \
        '--port[Port to listen on]:port:' \
        '--transport[MCP transport]:transport:({{.TransportValues}})' \
        '--color[Control color output]:color:({{.ColorValues}})' \
        '--log-level[Log level]:level:({{.LogLevelValues}})' \
        '--markdown[Render questions as markdown]' \
        '--theme[Prompt theme]:theme:({{.ThemeValues}})' \
        '--prompt-socket[Prompt relay socket]:socket:_files' \
        '1:command:({{.Subcommands}})' \
        '*::arguments:_pairpilot_args'
}

_pairpilot_args() {
    if [[ ${words[1]} == completion ]]; then
        _values 'shell' {{.Shells}}
    fi
}

# Register completion function (works when sourced directly)
if [[ -n ${_comps+1} ]]; then
    compdef _pairpilot pairpilot
fi
`
