package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raphi011/hookr/internal/hooks"
	"github.com/raphi011/hookr/internal/log"
	"github.com/raphi011/hookr/internal/output"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	configFlag string
	dbFlag     string
)

// Command group IDs for organizing help output
const (
	GroupCore    = "core"
	GroupShim    = "shim"
	GroupUtility = "utility"
	GroupConfig  = "config"
)

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hookr",
		Short: "Reusable git hooks, installed per repository",
		Long: `hookr manages git hooks from a single config file.

Hooks are defined once with a command and glob patterns, then applied to
any repository's trigger points (pre-commit, pre-push, ...). When git fires
a trigger, the hook only runs if a changed file matches one of its patterns.`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2, // Enable typo suggestions
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Flags are parsed by now, so the logger sees -v/-q
			logger := log.New(os.Stderr, verbose, quiet)
			cmd.SetContext(log.WithLogger(cmd.Context(), logger))
			return nil
		},
		// Run is not set - shows help when no subcommand provided
	}

	// Global flags
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")
	root.PersistentFlags().StringVar(&configFlag, "config", "", "Config file (default $HOOKR_CONFIG or ~/.config/hookr/config.toml)")
	root.PersistentFlags().StringVar(&dbFlag, "db", "", "Database file (default $HOOKR_DB or ~/.local/share/hookr/hookr.db)")

	// Version flag
	root.Version = versionString()
	root.SetVersionTemplate("{{.Version}}\n")

	// Add command groups for organized help output
	root.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupShim, Title: "Shim Commands:"},
		&cobra.Group{ID: GroupUtility, Title: "Utility Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	// Core commands
	root.AddCommand(newListCmd())
	root.AddCommand(newApplyCmd())
	root.AddCommand(newRemoveCmd())
	root.AddCommand(newDeleteCmd())

	// Shim commands
	root.AddCommand(newRunCmd())

	// Utility commands
	root.AddCommand(newStatsCmd())
	root.AddCommand(newReposCmd())
	root.AddCommand(newShowCmd())

	// Config commands
	root.AddCommand(newValidateCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newDoctorCmd())
	root.AddCommand(newCompletionCmd())

	return root
}

// Execute runs the root command and exits with its status.
func Execute() {
	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Add output printer (stdout for primary data)
	ctx = output.WithPrinter(ctx, os.Stdout)

	err := newRootCmd().ExecuteContext(ctx)
	cancel()
	os.Exit(exitCode(err))
}

// exitCode reports err and returns the process status. A failed hook
// passes its own exit code on so that git sees it.
func exitCode(err error) int {
	if err == nil {
		return 0
	}

	var cmdErr *hooks.CommandError
	if errors.As(err, &cmdErr) {
		fmt.Fprintln(os.Stderr, "hookr:", err)
		return cmdErr.ExitCode()
	}

	fmt.Fprintln(os.Stderr, err)
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Run 'hookr -h' for help")
	return 1
}
