package cmd

import (
	"fmt"

	"github.com/dgerlanc/tramp/internal/trampoline"
	"github.com/spf13/cobra"
)

// runSetup prints a trampoline wrapper script for the binary named by
// --setup. Installed ahead of the real binary on PATH, the script routes
// every invocation through tramp.
func runSetup(cmd *cobra.Command) error {
	script, err := trampoline.Script(setupBinary, "")
	if err != nil {
		return fmt.Errorf("failed to generate trampoline script: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), script)
	return nil
}
