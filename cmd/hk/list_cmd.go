package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/raphi011/hk/internal/hooks"
	"github.com/raphi011/hk/internal/output"
)

func newListCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:     "list <event>",
		Short:   "List the hooks registered for an event",
		Aliases: []string{"ls"},
		Args:    cobra.ExactArgs(1),
		Long: `List the hooks registered for an event, one per line, in the
order they would run: configured hook names first, then the path of the
repo's hook-dir hook.

Exits 1 without output when nothing is registered, so scripts can probe
for hooks cheaply.`,
		Example: `  hk list pre-commit
  hk list pre-push && echo "pre-push hooks present"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			event := args[0]
			if event == "" {
				return errors.New("event name must not be empty")
			}

			repo, cfg, err := resolveRepo(ctx, dir)
			if err != nil {
				return err
			}

			list := hooks.Discover(ctx, cfg, repo, event)
			if list.Len() == 0 {
				// Empty is a distinguishable condition, not an error
				return &exitCodeError{code: 1}
			}

			printer := output.FromContext(ctx)
			for _, hook := range list.Hooks() {
				printer.Println(hook.Describe())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "C", "", "List hooks for the repository containing this directory")

	return cmd
}
