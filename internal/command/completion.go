// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/blockdiff/internal/meta"
)

const bashCompletionScript = `# bash completion for blockdiff
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_blockdiff()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "assets canon commits history revisions scripts completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--color -c --filter -f --output -o --padding --sort -s --titles -t"
    local source="--bucket --key --profile --region --endpoint --path-style --limit -l"
    local differ="--differ -d --context --pick -p"

    case "$cmd" in
        assets|commits)
            local opts="$common $source $differ"
            ;;
        scripts)
            local opts="$common $source $differ --raw"
            ;;
        history)
            local opts="$common $source --differ -d --context"
            ;;
        canon)
            local opts="$common $source --path"
            ;;
        revisions)
            local opts="$common $source"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
            return 0
            ;;
        --differ|-d)
            COMPREPLY=( $(compgen -W "difflib git" -- "$cur") )
            return 0
            ;;
    esac

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # RootDir or a project file.
    COMPREPLY=( $(compgen -f -- "$cur") )
    return 0
}

complete -F _blockdiff blockdiff
`

const zshCompletionScript = `#compdef blockdiff

_blockdiff() {
  local -a cmds
  cmds=(
    'assets:list added, removed and modified costumes and sounds'
    'canon:print the canonical text of every sprite'
    'commits:summarize changes as commit lines'
    'history:summarize each revision against the one before it'
    'revisions:list the revisions of the project'
    'scripts:count added and removed blocks per sprite'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '--padding[cell padding]:padding'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--bucket[S3 bucket]:bucket'
  '--key[S3 object key]:key'
  '--profile[AWS profile]:profile'
  '--region[AWS region]:region'
  '--endpoint[S3 endpoint]:url'
  '--path-style[path-style addressing]'
  '(-l --limit)'{-l,--limit}'[limit revisions]:limit'
  )

  local -a differ
  differ=(
  '(-d --differ)'{-d,--differ}'[line differ]:differ:(difflib git)'
  '--context[context lines]:lines'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'blockdiff commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    assets|commits)
      _arguments -C $common $differ \
        '(-p --pick)'{-p,--pick}'[pick revisions]' \
        '*:RootDir or revision:_files'
      ;;
    scripts)
      _arguments -C $common $differ \
        '(-p --pick)'{-p,--pick}'[pick revisions]' \
        '--raw[structural delta]' \
        '*:RootDir or revision:_files'
      ;;
    history)
      _arguments -C $common $differ '::RootDir:_files'
      ;;
    canon)
      _arguments -C $common '--path[document path]:path' '*:RootDir or revision:_files'
      ;;
    revisions)
      _arguments -C $common '::RootDir:_files'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common '*:file:_files'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _blockdiff blockdiff
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := writer(cmd)

	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(w, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(w, bashCompletionScript)
		default:
			fmt.Fprintln(os.Stderr, "usage: blockdiff completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "blockdiff completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
