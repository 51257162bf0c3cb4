package completion

const bashTemplate = `# Bash completion for pairpilot
# Install: source <(pairpilot completion bash)
# Or: pairpilot completion bash > /etc/bash_completion.d/pairpilot

_pairpilot_completions() {
    local cur prev words cword
    _init_completion || return

    local flags="--version --help --config --host --port --transport --color --log-level --markdown --theme --prompt-socket"

    case "${prev}" in
        --transport)
            COMPREPLY=($(compgen -W "{{.TransportValues}}" -- "${cur}"))
            return 0
            ;;
        --color)
            COMPREPLY=($(compgen -W "{{.ColorValues}}" -- "${cur}"))
            return 0
            ;;
        --log-level)
            COMPREPLY=($(compgen -W "{{.LogLevelValues}}" -- "${cur}"))
            return 0
            ;;
        --theme)
            COMPREPLY=($(compgen -W "{{.ThemeValues}}" -- "${cur}"))
            return 0
            ;;
        --config|--prompt-socket)
            _filedir
            return 0
            ;;
        --host|--port)
            return 0
            ;;
        completion)
            COMPREPLY=($(compgen -W "{{.Shells}}" -- "${cur}"))
            return 0
            ;;
    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=($(compgen -W "${flags}" -- "${cur}"))
        return 0
    fi

    if [[ ${cword} -eq 1 ]]; then
        COMPREPLY=($(compgen -W "{{.Subcommands}}" -- "${cur}"))
    fi
}

complete -F _pairpilot_completions pairpilot
`
