package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/raphi011/hk/internal/hooks"
)

func newRunCmd() *cobra.Command {
	var (
		ignoreMissing bool
		toStdin       string
		jobs          int
		dir           string
		env           []string
	)

	cmd := &cobra.Command{
		Use:   "run <event> [-- args...]",
		Short: "Run the hooks registered for an event",
		Args:  cobra.MinimumNArgs(1),
		Long: `Run every hook registered for the given event.

Configured hooks run first, in declaration order, followed by the repo's
<gitdir>/hooks/<event> file if it is executable. The exit code is the
bitwise OR of all hook exit codes. Arguments after -- are passed to each
hook unchanged.`,
		Example: `  hk run pre-commit                   # Run all pre-commit hooks
  hk run pre-push -- origin url       # Pass arguments to the hooks
  hk run -j 1 pre-commit              # Run hooks one at a time
  hk run --to-stdin msgs post-rewrite # Feed a file to each hook's stdin
  git log -1 | hk run --to-stdin - x  # Feed piped stdin line by line`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			event := args[0]
			if event == "" {
				return errors.New("event name must not be empty")
			}

			// Hook arguments come after an explicit --
			var hookArgs []string
			if dash := cmd.ArgsLenAtDash(); dash >= 0 {
				if dash != 1 {
					return errors.New("expected exactly one event before --")
				}
				hookArgs = args[1:]
			} else if len(args) > 1 {
				return fmt.Errorf("unexpected arguments %v (use -- to pass arguments to hooks)", args[1:])
			}

			for _, e := range env {
				if !strings.Contains(e, "=") {
					return fmt.Errorf("invalid environment entry %q, expected KEY=VALUE", e)
				}
			}

			var stdinFile string
			var stdinLines []string
			switch toStdin {
			case "":
			case "-":
				if isatty.IsTerminal(os.Stdin.Fd()) {
					return errors.New("refusing to read hook input from a terminal (pipe data, or pass a file to --to-stdin)")
				}
				scanner := bufio.NewScanner(os.Stdin)
				for scanner.Scan() {
					stdinLines = append(stdinLines, scanner.Text())
				}
				if err := scanner.Err(); err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			default:
				stdinFile = toStdin
			}

			repo, cfg, err := resolveRepo(ctx, dir)
			if err != nil {
				return err
			}

			code, err := hooks.Run(ctx, cfg, repo, event, &hooks.RunOptions{
				Jobs:           jobs,
				StdinFile:      stdinFile,
				StdinLines:     stdinLines,
				Args:           hookArgs,
				Dir:            dir,
				Env:            env,
				ErrorIfMissing: !ignoreMissing,
			})

			var notFound *hooks.NotFoundError
			if errors.As(err, &notFound) {
				msg := err.Error()
				if suggestion := suggestEvent(cfg, event); suggestion != "" {
					msg += fmt.Sprintf("\n\nDid you mean %q?", suggestion)
				}
				return errors.New(msg)
			}
			if err != nil {
				return err
			}
			if code != 0 {
				// The hooks already reported; just propagate their status
				return &exitCodeError{code: code}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&ignoreMissing, "ignore-missing", false, "Exit successfully when no hooks are registered for the event")
	cmd.Flags().StringVar(&toStdin, "to-stdin", "", "File to connect to each hook's stdin (- feeds piped stdin line by line)")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "Maximum hooks to run at once (0 = configured value, then CPU count)")
	cmd.Flags().StringVarP(&dir, "dir", "C", "", "Run hooks in this directory instead of the current one")
	cmd.Flags().StringArrayVarP(&env, "env", "e", nil, "Extra KEY=VALUE environment entry for every hook (repeatable)")

	return cmd
}
