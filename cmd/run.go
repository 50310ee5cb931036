package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/dgerlanc/tramp/internal/config"
	"github.com/dgerlanc/tramp/internal/constants"
	"github.com/dgerlanc/tramp/internal/hooks"
	"github.com/dgerlanc/tramp/internal/logger"
	"github.com/dgerlanc/tramp/internal/proc"
	"github.com/dgerlanc/tramp/internal/proxy"
	"github.com/dgerlanc/tramp/internal/rules"
	"github.com/spf13/cobra"
)

// runProxy is the default command path: proxy args[0] through the rules.
func runProxy(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	if dryRun {
		return dryRunCommand(cmd, cwd, args)
	}

	out, err := proxyCommand(cwd, args, &proc.StdioRunner{})
	if err != nil {
		return err
	}
	logger.Debug("command finished", "code", out.Code, "via", out.Via)
	exitCode = out.Code
	return nil
}

// proxyCommand resolves, matches, and executes one invocation. Command-level
// failures (unresolvable command, spawn failure, hook abort) land in the
// Outcome; the error return is for tramp's own failures.
func proxyCommand(dir string, argv []string, runner proc.Runner) (proxy.Outcome, error) {
	binary, err := proc.Resolve(argv[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "tramp: command not found: %s\n", argv[0])
		return proxy.Outcome{Code: constants.ExitSpawnFailure, Via: proxy.ViaOriginal}, nil
	}

	merged, err := config.Load(dir)
	if err != nil {
		return proxy.Outcome{}, err
	}
	compiled, err := rules.Compile(merged)
	if err != nil {
		return proxy.Outcome{}, err
	}

	p := &proxy.Proxy{
		Rules:  compiled,
		Runner: runner,
		Hooks:  hooks.Runner{Proc: runner},
	}
	return p.Run(rules.Invocation{Binary: binary, Args: argv[1:], Dir: dir})
}

// dryRunCommand previews the rule decision for one invocation without
// spawning hooks or the command.
func dryRunCommand(cmd *cobra.Command, dir string, argv []string) error {
	w := cmd.OutOrStdout()

	binary, err := proc.Resolve(argv[0])
	if err != nil {
		fmt.Fprintf(w, "command not found: %s\n", argv[0])
		exitCode = constants.ExitSpawnFailure
		return nil
	}

	merged, err := config.Load(dir)
	if err != nil {
		return err
	}
	compiled, err := rules.Compile(merged)
	if err != nil {
		return err
	}

	inv := rules.Invocation{Binary: binary, Args: argv[1:], Dir: dir}
	rule := rules.Match(compiled, inv)
	if rule == nil {
		fmt.Fprintln(w, "no rule matched")
		fmt.Fprintf(w, "would run: %s\n", formatCommand(binary, inv.Args))
		return nil
	}

	fmt.Fprintf(w, "rule matched: %s\n", rule.Source)
	if rule.Rule.PreHook != "" {
		fmt.Fprintf(w, "pre-hook: %s\n", rule.Rule.PreHook)
	}

	tr := rule.Transform(inv)
	if tr.Action == rules.ActionIntercept {
		fmt.Fprintf(w, "would intercept: %s\n", rule.Rule.InterceptHook)
		return nil
	}
	if tr.Action == rules.ActionNone {
		fmt.Fprintf(w, "would run: %s\n", formatCommand(tr.Binary, tr.Args))
	} else {
		fmt.Fprintf(w, "would run (%s): %s\n", tr.Action, formatCommand(tr.Binary, tr.Args))
	}
	if rule.Rule.PostHook != "" {
		fmt.Fprintf(w, "post-hook: %s\n", rule.Rule.PostHook)
	}
	return nil
}

// formatCommand renders a binary and its arguments as one display string.
func formatCommand(binary string, args []string) string {
	if len(args) == 0 {
		return binary
	}
	return binary + " " + strings.Join(args, " ")
}
