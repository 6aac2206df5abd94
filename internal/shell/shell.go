// Package shell generates the integration scripts sourced by the user's
// shell. The scripts define a `p` wrapper around the picker and a prompt
// hook that auto-records visited git repositories.
package shell

import "fmt"

const bashZshScript = `# Pavo shell integration
# Add this line to your ~/.bashrc or ~/.zshrc:
# eval "$(pavo init bash)" or eval "$(pavo init zsh)"

p() {
    local result
    local args=()

    while [[ $# -gt 0 ]]; do
        case "$1" in
            -t|--tag)
                args+=("$1" "$2")
                shift 2
                ;;
            *)
                args+=("$1")
                shift
                ;;
        esac
    done

    result=$(pavo "${args[@]}" </dev/tty)
    if [ $? -eq 0 ] && [ -n "$result" ]; then
        if [ -d "$result" ]; then
            cd "$result" || return
        else
            echo "$result"
        fi
    fi
}

# Auto-record git repositories on directory change
_pavo_record_hook() {
    if git rev-parse --is-inside-work-tree >/dev/null 2>&1; then
        local git_root
        git_root=$(git rev-parse --show-toplevel 2>/dev/null)
        if [ -n "$git_root" ]; then
            pavo add "$git_root" 2>/dev/null
        fi
    fi
}

if [ -n "$BASH_VERSION" ]; then
    if [[ "$PROMPT_COMMAND" != *"_pavo_record_hook"* ]]; then
        PROMPT_COMMAND="_pavo_record_hook${PROMPT_COMMAND:+; $PROMPT_COMMAND}"
    fi
fi

if [ -n "$ZSH_VERSION" ]; then
    autoload -Uz add-zsh-hook
    add-zsh-hook precmd _pavo_record_hook
fi
`

const fishScript = `# Pavo shell integration
# Add this line to your ~/.config/fish/config.fish:
# pavo init fish | source

function p
    set -l args

    argparse 't/tag=' -- $argv
    if set -q _flag_tag
        set args --tag $_flag_tag
    end

    set -l result (pavo $args </dev/tty)
    if test $status -eq 0 -a -n "$result"
        if test -d "$result"
            cd $result
        else
            echo $result
        end
    end
end

# Auto-record git repositories on directory change
function _pavo_record_hook --on-variable PWD
    if git rev-parse --is-inside-work-tree >/dev/null 2>&1
        set -l git_root (git rev-parse --show-toplevel 2>/dev/null)
        if test -n "$git_root"
            pavo add $git_root 2>/dev/null
        end
    end
end
`

// InitScript returns the integration script for the named shell.
func InitScript(shell string) (string, error) {
	switch shell {
	case "bash", "zsh":
		return bashZshScript, nil
	case "fish":
		return fishScript, nil
	default:
		return "", fmt.Errorf("unsupported shell %q, supported shells are: bash, zsh, fish", shell)
	}
}
