// Package cmd implements the CLI commands for tramp.
package cmd

import (
	"fmt"

	"github.com/dgerlanc/tramp/internal/constants"
	"github.com/dgerlanc/tramp/internal/logger"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose     bool
	dryRun      bool
	initConfig  bool
	initForce   bool
	setupBinary string
)

// exitCode is the process exit code Execute reports once the root command
// finishes. RunE errors take precedence over it.
var exitCode int

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tramp [flags] <command> [args...]",
	Short: "Proxy commands through rewrite rules, hooks, and trampolines",
	Long: `Tramp runs a command on your behalf, first consulting .tramp.toml files
found in the current directory and its ancestors. Matching rules can
rewrite arguments, swap in an alternate command, intercept the command
entirely, or wrap it with pre and post hooks.

Nearer config files take precedence. A file with root = true stops the
upward walk, and ~/.tramp.toml is consulted last unless disabled.

Examples:
  tramp cargo build --release     # proxy cargo through the rule cascade
  tramp --dry-run cargo build     # show what would run without running it
  tramp --init                    # write a starter .tramp.toml here
  tramp --setup cargo             # print a trampoline script for cargo
  tramp config show               # display discovered configuration`,
	Version: "0.3.0",
	Args:    cobra.ArbitraryArgs,
	RunE:    runRoot,
	// Silence usage on errors
	SilenceUsage: true,
}

// Execute runs the root command and returns the exit code for the process:
// the proxied command's own code, or 2 for tramp-level failures.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return constants.ExitInternal
	}
	return exitCode
}

func init() {
	// Initialize before running any command
	cobra.OnInitialize(initApp)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output (debug logging)")

	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the rule decision without running anything")
	rootCmd.Flags().BoolVar(&initConfig, "init", false, "Create a template .tramp.toml in the current directory")
	rootCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing .tramp.toml (requires --init)")
	rootCmd.Flags().StringVar(&setupBinary, "setup", "", "Print a trampoline wrapper script for the given binary")

	// Flags after the command name belong to the proxied command.
	rootCmd.Flags().SetInterspersed(false)
}

// initApp initializes the application logger
func initApp() {
	logger.Init(logger.Options{Verbose: verbose})
}

// runRoot dispatches the mode flags, falling through to command proxying.
func runRoot(cmd *cobra.Command, args []string) error {
	if setupBinary != "" {
		return runSetup(cmd)
	}
	if initConfig {
		return runInit(cmd)
	}
	if initForce {
		return fmt.Errorf("--force requires --init")
	}
	if len(args) == 0 {
		// No command given: print usage and reserve the internal code.
		fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
		exitCode = constants.ExitInternal
		return nil
	}
	return runProxy(cmd, args)
}
