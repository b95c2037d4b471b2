package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/hk/internal/config"
	"github.com/raphi011/hk/internal/git"
	"github.com/raphi011/hk/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		Long: `Manage hk configuration.

Global config: ~/.config/hk/config.toml
Local config:  .hk.toml (in the repository root)`,
		Example: `  hk config init          # Create default global config
  hk config init --local  # Create local repo config
  hk config show          # Show effective config`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		stdout bool
		local  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Long: `Create default config file.

Without flags, creates the global config at ~/.config/hk/config.toml.
With --local, creates a per-repo .hk.toml at the current repo root.`,
		Example: `  hk config init           # Create global config
  hk config init --local   # Create local repo config
  hk config init -f        # Overwrite existing config
  hk config init -s        # Print the template to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			printer := output.FromContext(ctx)

			if stdout {
				if local {
					printer.Print(config.DefaultLocalConfig())
				} else {
					printer.Print(config.DefaultConfig())
				}
				return nil
			}

			if local {
				repo, err := git.Find(config.WorkDirFromContext(ctx))
				if err != nil {
					return fmt.Errorf("local config needs a repository: %w", err)
				}
				path, err := config.InitLocal(repo.Root, force)
				if err != nil {
					return err
				}
				printer.Printf("Created local config: %s\n", path)
				return nil
			}

			path, err := config.Init(force)
			if err != nil {
				return err
			}
			printer.Printf("Created config file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print config to stdout")
	cmd.Flags().BoolVar(&local, "local", false, "Create per-repo .hk.toml instead of global config")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		Long: `Show the effective configuration: the global config with the
repository's .hk.toml merged in when run inside a repo. Hooks are listed
in the order they would run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			printer := output.FromContext(ctx)

			repo, cfg, err := resolveRepo(ctx, dir)
			if err != nil {
				return err
			}

			globalPath, err := config.Path()
			if err != nil {
				return err
			}
			printer.Printf("Global config: %s\n", globalPath)
			if repo != nil {
				printer.Printf("Local config:  %s\n", filepath.Join(repo.Root, config.LocalConfigFileName))
			} else {
				printer.Println("Local config:  (not in a repository)")
			}
			printer.Println()

			if cfg.Jobs > 0 {
				printer.Printf("jobs: %d\n", cfg.Jobs)
			} else {
				printer.Println("jobs: (number of CPUs)")
			}
			printer.Printf("advice.ignored_hook: %v\n", cfg.AdviceEnabled())
			printer.Println()

			names := cfg.Names()
			if len(names) == 0 {
				printer.Println("No hooks configured")
				return nil
			}

			for _, name := range names {
				hook, ok := cfg.Lookup(name)
				if !ok {
					continue
				}
				printer.Printf("%s:\n", name)
				if hook.Command == "" {
					printer.Println("  command: (missing)")
				} else {
					printer.Printf("  command: %s\n", hook.Command)
				}
				if hook.Description != "" {
					printer.Printf("  description: %s\n", hook.Description)
				}
				if len(hook.Events) > 0 {
					printer.Printf("  events: %s\n", strings.Join(hook.Events, ", "))
				}
				printer.Println()
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "C", "", "Show the config for the repository containing this directory")

	return cmd
}
