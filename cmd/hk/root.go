package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/raphi011/hk/internal/config"
	"github.com/raphi011/hk/internal/log"
	"github.com/raphi011/hk/internal/output"
	"github.com/raphi011/hk/internal/ui/styles"
)

var (
	// Global flags
	verbose bool
	quiet   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hk",
	Short: "Run git hooks declared in layered TOML config",
	Long: `hk runs the hooks registered for a named event.

Hooks come from [hook.NAME] tables in ~/.config/hk/config.toml and a
repo's .hk.toml, plus the classic executable file <gitdir>/hooks/<event>.
They run as child processes with bounded concurrency; the exit code is
the bitwise OR of every hook's exit code.`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2, // Enable typo suggestions
	// Run is not set - shows help when no subcommand provided
}

// exitCodeError carries a hook run's aggregate exit code to Execute
// without printing anything: the hooks already wrote their output.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	// Load global config; commands merge in the repo's .hk.toml themselves
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		cfg = config.Default()
	}

	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "hk: failed to get working directory: %v\n", err)
		os.Exit(1)
	}

	// Styled output only on a terminal; piped output stays plain
	styles.SetEnabled(isatty.IsTerminal(os.Stdout.Fd()))

	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Logger on stderr for diagnostics, printer on stdout for data
	ctx = log.WithLogger(ctx, log.New(os.Stderr, verbose, quiet))
	ctx = output.WithPrinter(ctx, os.Stdout)
	ctx = config.WithConfig(ctx, cfg)
	ctx = config.WithWorkDir(ctx, workDir)

	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		var exitErr *exitCodeError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show per-hook diagnostics")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newDoctorCmd())
	rootCmd.AddCommand(newConfigCmd())
}
