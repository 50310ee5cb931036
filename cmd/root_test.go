package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dgerlanc/tramp/internal/constants"
	"github.com/spf13/cobra"
)

// resetGlobalState resets all global flags to their default values
func resetGlobalState() {
	verbose = false
	dryRun = false
	initConfig = false
	initForce = false
	setupBinary = ""
	exitCode = 0
}

func TestRootCmdFlags(t *testing.T) {
	resetGlobalState()

	// Create a fresh root command mirroring the real flag registration
	cmd := &cobra.Command{Use: "tramp", Args: cobra.ArbitraryArgs}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the rule decision")
	cmd.Flags().BoolVar(&initConfig, "init", false, "Create a template config")
	cmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing config")
	cmd.Flags().StringVar(&setupBinary, "setup", "", "Print a trampoline script")
	cmd.Flags().SetInterspersed(false)

	tests := []struct {
		name          string
		args          []string
		expectVerbose bool
		expectDryRun  bool
		expectSetup   string
		expectArgs    string
	}{
		{
			name: "no flags",
			args: []string{},
		},
		{
			name:          "verbose short flag",
			args:          []string{"-v", "true"},
			expectVerbose: true,
			expectArgs:    "true",
		},
		{
			name:          "verbose long flag",
			args:          []string{"--verbose", "true"},
			expectVerbose: true,
			expectArgs:    "true",
		},
		{
			name:         "dry-run flag",
			args:         []string{"--dry-run", "echo", "hi"},
			expectDryRun: true,
			expectArgs:   "echo hi",
		},
		{
			name:        "setup flag",
			args:        []string{"--setup", "cargo"},
			expectSetup: "cargo",
		},
		{
			name:       "flags after the command pass through",
			args:       []string{"echo", "--verbose"},
			expectArgs: "echo --verbose",
		},
		{
			name:         "command keeps its own flags",
			args:         []string{"--dry-run", "ls", "-la", "--color"},
			expectDryRun: true,
			expectArgs:   "ls -la --color",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset flags
			verbose = false
			dryRun = false
			initConfig = false
			initForce = false
			setupBinary = ""

			var gotArgs []string
			cmd.RunE = func(cmd *cobra.Command, args []string) error {
				gotArgs = args
				return nil
			}
			cmd.SetArgs(tt.args)
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})

			if err := cmd.Execute(); err != nil {
				t.Fatalf("Execute() error = %v", err)
			}

			if verbose != tt.expectVerbose {
				t.Errorf("verbose = %v, want %v", verbose, tt.expectVerbose)
			}
			if dryRun != tt.expectDryRun {
				t.Errorf("dryRun = %v, want %v", dryRun, tt.expectDryRun)
			}
			if setupBinary != tt.expectSetup {
				t.Errorf("setupBinary = %q, want %q", setupBinary, tt.expectSetup)
			}
			if got := strings.Join(gotArgs, " "); got != tt.expectArgs {
				t.Errorf("args = %q, want %q", got, tt.expectArgs)
			}
		})
	}
}

func TestRunRootForceRequiresInit(t *testing.T) {
	resetGlobalState()
	initForce = true
	defer func() { initForce = false }()

	cmd := &cobra.Command{Use: "tramp"}
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := runRoot(cmd, nil)
	if err == nil {
		t.Fatal("expected error for --force without --init")
	}
	if !strings.Contains(err.Error(), "--force requires --init") {
		t.Errorf("error = %v, want --force requires --init", err)
	}
}

func TestRunRootNoArgsPrintsUsage(t *testing.T) {
	resetGlobalState()

	cmd := &cobra.Command{Use: "tramp [flags] <command> [args...]"}
	var stderr bytes.Buffer
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&stderr)

	if err := runRoot(cmd, nil); err != nil {
		t.Fatalf("runRoot() error = %v", err)
	}

	if !strings.Contains(stderr.String(), "Usage:") {
		t.Errorf("stderr = %q, want usage text", stderr.String())
	}
	if exitCode != constants.ExitInternal {
		t.Errorf("exitCode = %d, want %d", exitCode, constants.ExitInternal)
	}
}

func TestRootCmdHasExpectedSubcommands(t *testing.T) {
	expectedCommands := []string{"config", "completion"}

	for _, cmdName := range expectedCommands {
		found := false
		for _, cmd := range rootCmd.Commands() {
			if cmd.Name() == cmdName {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected subcommand %q not found", cmdName)
		}
	}
}

func TestRootCmdUsageContainsDescription(t *testing.T) {
	if rootCmd.Short == "" {
		t.Error("rootCmd.Short should not be empty")
	}
	if rootCmd.Long == "" {
		t.Error("rootCmd.Long should not be empty")
	}
	if !strings.HasPrefix(rootCmd.Use, "tramp") {
		t.Errorf("rootCmd.Use = %q, want tramp prefix", rootCmd.Use)
	}
}
