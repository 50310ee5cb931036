// Package proxy drives a proxied command through rule matching, hooks,
// and execution, producing the exit code tramp itself should report.
package proxy

import (
	"fmt"

	"github.com/dgerlanc/tramp/internal/constants"
	"github.com/dgerlanc/tramp/internal/hooks"
	"github.com/dgerlanc/tramp/internal/logger"
	"github.com/dgerlanc/tramp/internal/proc"
	"github.com/dgerlanc/tramp/internal/rules"
)

// Via records how an outcome's exit code came about.
type Via int

const (
	// ViaOriginal means the requested command ran unmodified.
	ViaOriginal Via = iota
	// ViaRewritten means a transformed command ran in its place.
	ViaRewritten
	// ViaIntercepted means an intercept hook ran instead of the command.
	ViaIntercepted
	// ViaAborted means a pre-hook stopped the command from running.
	ViaAborted
)

// String returns a human-readable name for the via.
func (v Via) String() string {
	switch v {
	case ViaOriginal:
		return "original"
	case ViaRewritten:
		return "rewritten"
	case ViaIntercepted:
		return "intercepted"
	case ViaAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Outcome is the result of proxying one invocation. Code is the exit
// code tramp reports to its caller.
type Outcome struct {
	Code int
	Via  Via
}

// Proxy executes invocations under the configured rules.
type Proxy struct {
	Rules  []rules.Compiled
	Runner proc.Runner
	Hooks  hooks.Runner
}

// Run proxies inv to completion. The error return is reserved for
// tramp-internal failures such as a pre-hook that cannot start; every
// command-level result, including spawn failures and hook aborts,
// arrives in the Outcome.
//
// The order of operations for a matched rule: transform, pre-hook,
// then either the intercept hook or the primary command, then the
// post-hook. A non-zero pre-hook aborts with the pre-hook's own exit
// code. The post-hook observes the primary's exit code but can never
// change it.
func (p *Proxy) Run(inv rules.Invocation) (Outcome, error) {
	rule := rules.Match(p.Rules, inv)
	if rule == nil {
		logger.Debug("no rule matched", "binary", inv.Binary)
		return Outcome{Code: p.execute(inv.Binary, inv.Args, inv.Dir), Via: ViaOriginal}, nil
	}
	logger.Debug("rule matched", "source", rule.Source, "binary", inv.Binary)

	transformed := rule.Transform(inv)
	execBinary := resolveTransformed(inv, transformed)

	if hook := rule.Rule.PreHook; hook != "" {
		logger.Debug("running pre-hook", "hook", hook)
		code, err := p.Hooks.Run(hook, hooks.Context{Invocation: inv, Type: hooks.TypePre})
		if err != nil {
			return Outcome{}, fmt.Errorf("pre-hook failed to start: %w", err)
		}
		if code != 0 {
			logger.Debug("pre-hook aborted the command", "code", code)
			return Outcome{Code: code, Via: ViaAborted}, nil
		}
	}

	if transformed.Action == rules.ActionIntercept {
		hook := rule.Rule.InterceptHook
		logger.Debug("intercepting command", "hook", hook)
		code, err := p.Hooks.Run(hook, hooks.Context{
			Invocation:     inv,
			Type:           hooks.TypeIntercept,
			ExecutedBinary: execBinary,
			ExecutedArgs:   transformed.Args,
		})
		if err != nil {
			return Outcome{}, fmt.Errorf("intercept hook failed to start: %w", err)
		}
		return Outcome{Code: code, Via: ViaIntercepted}, nil
	}

	if transformed.Action != rules.ActionNone {
		logger.Debug("command transformed",
			"action", transformed.Action.String(), "binary", execBinary, "args", transformed.Args)
	}
	code := p.execute(execBinary, transformed.Args, inv.Dir)

	if hook := rule.Rule.PostHook; hook != "" {
		logger.Debug("running post-hook", "hook", hook)
		postCode, err := p.Hooks.Run(hook, hooks.Context{
			Invocation:     inv,
			Type:           hooks.TypePost,
			ExecutedBinary: execBinary,
			ExecutedArgs:   transformed.Args,
			ExitCode:       &code,
		})
		switch {
		case err != nil:
			logger.Warn("post-hook failed", "hook", hook, "error", err)
		case postCode != 0:
			logger.Warn("post-hook exited non-zero", "hook", hook, "code", postCode)
		}
	}

	via := ViaOriginal
	if transformed.Action != rules.ActionNone {
		via = ViaRewritten
	}
	return Outcome{Code: code, Via: via}, nil
}

// execute runs the primary command. Failure to start it at all maps to
// the shell's conventional exit 127 for a missing command.
func (p *Proxy) execute(binary string, args []string, dir string) int {
	code, err := p.Runner.Run(proc.Command{Path: binary, Args: args, Dir: dir})
	if err != nil {
		logger.Error("failed to execute command", "binary", binary, "error", err)
		return constants.ExitSpawnFailure
	}
	return code
}

// resolveTransformed resolves a rewritten binary name to an absolute
// path so hooks see where the command actually lives. Resolution
// failures are left for execution to report.
func resolveTransformed(inv rules.Invocation, tr rules.Transformed) string {
	if tr.Binary == inv.Binary {
		return tr.Binary
	}
	resolved, err := proc.Resolve(tr.Binary)
	if err != nil {
		logger.Debug("could not resolve rewritten binary", "binary", tr.Binary, "error", err)
		return tr.Binary
	}
	return resolved
}
