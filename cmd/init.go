package cmd

import (
	"fmt"
	"os"

	"github.com/dgerlanc/tramp/internal/config"
	"github.com/dgerlanc/tramp/internal/constants"
	"github.com/spf13/cobra"
)

// runInit writes the template config into the current directory.
func runInit(cmd *cobra.Command) error {
	// Check if a config already exists
	if _, err := os.Stat(constants.ConfigFileName); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", constants.ConfigFileName)
	}

	if err := os.WriteFile(constants.ConfigFileName, config.DefaultTemplate(), constants.FileMode); err != nil {
		return fmt.Errorf("failed to write %s: %w", constants.ConfigFileName, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", constants.ConfigFileName)
	return nil
}
