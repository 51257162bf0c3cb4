package completion

const fishTemplate = `# Fish completion for pairpilot
# Install: pairpilot completion fish | source
# Or: pairpilot completion fish > ~/.config/fish/completions/pairpilot.fish

# Disable file completion by default
complete -c pairpilot -f

# Subcommands
complete -c pairpilot -n '__fish_use_subcommand' -a '{{.Subcommands}}'
complete -c pairpilot -n '__fish_seen_subcommand_from completion' -a '{{.Shells}}'

# Boolean flags
complete -c pairpilot -l version -d 'Show version information'
complete -c pairpilot -l help -d 'Show help information'
complete -c pairpilot -l markdown -d 'Render questions as markdown'

# Flags with values
complete -c pairpilot -l config -r -F -d 'Read settings from a YAML file'
complete -c pairpilot -l host -r -d 'Address to bind the HTTP transports to'
complete -c pairpilot -l port -r -d 'Port to listen on'
complete -c pairpilot -l transport -r -f -a '{{.TransportValues}}' -d 'MCP transport'
complete -c pairpilot -l color -r -f -a '{{.ColorValues}}' -d 'Control color output'
complete -c pairpilot -l log-level -r -f -a '{{.LogLevelValues}}' -d 'Log level'
complete -c pairpilot -l theme -r -f -a '{{.ThemeValues}}' -d 'Prompt theme'
complete -c pairpilot -l prompt-socket -r -F -d 'Prompt relay socket'
`
