package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/dgerlanc/tramp/internal/config"
	"github.com/dgerlanc/tramp/internal/hooks"
	"github.com/dgerlanc/tramp/internal/rules"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management commands",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display discovered configuration with source annotations",
	Long: `Show lists every .tramp.toml the cascade discovers for the current
directory, nearest first, with its flags and rules, followed by the user
config path.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check all config files for errors without running anything",
	Long: `Validate parses every discovered config file, compiles all rule patterns
and rewrite expressions, and checks hook commands for shell syntax
errors.`,
	Args: cobra.NoArgs,
	RunE: runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	configs, err := config.Discover(cwd)
	if err != nil {
		return fmt.Errorf("failed to discover config files: %w", err)
	}

	w := cmd.OutOrStdout()
	if len(configs) == 0 {
		fmt.Fprintln(w, "No configuration files found.")
		return nil
	}

	fmt.Fprintf(w, "Configuration files (in cascade order):\n\n")
	for _, loaded := range configs {
		fmt.Fprintf(w, "# Source: %s\n", loaded.Path)
		fmt.Fprintf(w, "# root: %t\n", loaded.Config.Root)
		fmt.Fprintf(w, "# no-external-lookup: %t\n", loaded.Config.NoExternalLookup)
		if loaded.Config.RootConfigLookupDisableEnvVar != "" {
			fmt.Fprintf(w, "# root-config-lookup-disable-env-var: %s\n", loaded.Config.RootConfigLookupDisableEnvVar)
		}
		fmt.Fprintf(w, "# rules: %d\n\n", len(loaded.Config.Rules))

		for i, rule := range loaded.Config.Rules {
			fmt.Fprintf(w, "  Rule %d:\n", i+1)
			printRuleField(w, "binary_pattern", rule.BinaryPattern)
			printRuleField(w, "cwd_pattern", rule.CwdPattern)
			printRuleField(w, "arg_rewrite", rule.ArgRewrite)
			printRuleField(w, "command_rewrite", rule.CommandRewrite)
			printRuleField(w, "alternate_command", rule.AlternateCommand)
			printRuleField(w, "pre_hook", rule.PreHook)
			printRuleField(w, "post_hook", rule.PostHook)
			printRuleField(w, "intercept_hook", rule.InterceptHook)
			fmt.Fprintln(w)
		}
	}

	if path, ok := config.UserConfigPath(); ok {
		fmt.Fprintf(w, "User config path: %s\n", path)
		if _, err := os.Stat(path); err == nil {
			fmt.Fprintln(w, "  (exists)")
		} else {
			fmt.Fprintln(w, "  (not found)")
		}
	}

	return nil
}

// printRuleField prints one rule field, skipping unset values.
func printRuleField(w io.Writer, name, value string) {
	if value != "" {
		fmt.Fprintf(w, "    %s: %s\n", name, value)
	}
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	configs, err := config.Discover(cwd)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Compile every pattern and rewrite expression
	if _, err := rules.Compile(config.Merge(configs)); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Lint hook command lines
	for _, loaded := range configs {
		for i, rule := range loaded.Config.Rules {
			for _, hook := range []string{rule.PreHook, rule.PostHook, rule.InterceptHook} {
				if hook == "" {
					continue
				}
				if err := hooks.CheckSyntax(hook); err != nil {
					return fmt.Errorf("configuration error in %s, rule %d: %w", loaded.Path, i+1, err)
				}
			}
		}
	}

	w := cmd.OutOrStdout()
	if len(configs) == 0 {
		fmt.Fprintln(w, "No configuration files found.")
		return nil
	}

	fmt.Fprintln(w, "All configuration files are valid:")
	for _, loaded := range configs {
		fmt.Fprintf(w, "  %s (%d rules)\n", loaded.Path, len(loaded.Config.Rules))
	}
	return nil
}
