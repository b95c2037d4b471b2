package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/hk/internal/doctor"
)

func newDoctorCmd() *cobra.Command {
	var (
		fix bool
		dir string
	)

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose and repair hook setup issues",
		Args:  cobra.NoArgs,
		Long: `Diagnose and repair hook setup issues.

Checks:
- Hooks bound to events without a command (these abort every run)
- Hooks with a command but no events (these never run)
- Hook-dir files that are not executable (these are silently skipped)

Examples:
  hk doctor          # Check for issues
  hk doctor --fix    # Mark skipped hook files executable`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			repo, cfg, err := resolveRepo(ctx, dir)
			if err != nil {
				return err
			}

			return doctor.Run(ctx, cfg, repo, fix)
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Auto-fix recoverable issues")
	cmd.Flags().StringVarP(&dir, "dir", "C", "", "Check the repository containing this directory")

	return cmd
}
