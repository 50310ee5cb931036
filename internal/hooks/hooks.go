// Package hooks runs rule hooks through the shell with a TRAMP_*
// environment describing the proxied command.
package hooks

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/dgerlanc/tramp/internal/constants"
	"github.com/dgerlanc/tramp/internal/proc"
	"github.com/dgerlanc/tramp/internal/rules"
)

// Type names the hook slots a rule can fill. The value is exported to
// hooks as TRAMP_HOOK_TYPE.
type Type string

const (
	TypePre       Type = "pre"
	TypePost      Type = "post"
	TypeIntercept Type = "intercept"
)

// Context carries the invocation details a hook sees in its environment.
type Context struct {
	Invocation rules.Invocation
	Type       Type

	// ExecutedBinary and ExecutedArgs describe the command after any
	// transformation. Empty for pre hooks, which run before the final
	// command shape is interesting.
	ExecutedBinary string
	ExecutedArgs   []string

	// ExitCode is the primary command's exit code. Post hooks only.
	ExitCode *int
}

// Env renders the context as TRAMP_* environment entries in a stable
// order. Argument lists are exported both space-joined and as numbered
// TRAMP_ORIGINAL_ARG_<n> variables, so hooks can recover arguments that
// contain spaces.
func (c Context) Env() []string {
	inv := c.Invocation
	env := []string{
		constants.EnvOriginalBinary + "=" + inv.Binary,
		constants.EnvOriginalArgs + "=" + strings.Join(inv.Args, " "),
		constants.EnvOriginalArgc + "=" + strconv.Itoa(len(inv.Args)),
	}
	for i, arg := range inv.Args {
		env = append(env, constants.EnvOriginalArgN+strconv.Itoa(i)+"="+arg)
	}
	env = append(env,
		constants.EnvCwd+"="+inv.Dir,
		constants.EnvHookType+"="+string(c.Type),
	)
	if c.ExecutedBinary != "" {
		env = append(env,
			constants.EnvExecutedBinary+"="+c.ExecutedBinary,
			constants.EnvExecutedArgs+"="+strings.Join(c.ExecutedArgs, " "),
		)
	}
	if c.ExitCode != nil {
		env = append(env, constants.EnvExitCode+"="+strconv.Itoa(*c.ExitCode))
	}
	return env
}

// SpawnError reports a hook whose process could not be started at all,
// as opposed to one that ran and exited non-zero.
type SpawnError struct {
	Hook string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to spawn hook %q: %v", e.Hook, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// Runner executes hook command lines via sh -c in the invocation's
// working directory, with stdio inherited from the proxy.
type Runner struct {
	Proc proc.Runner
}

// Run executes hook and returns its exit code. Failure to start the hook
// is reported as a *SpawnError; a hook that runs and fails is not an
// error.
func (r Runner) Run(hook string, ctx Context) (int, error) {
	if err := checkSpawnable(hook, ctx.Invocation.Dir); err != nil {
		return 0, &SpawnError{Hook: hook, Err: err}
	}

	code, err := r.Proc.Run(proc.Command{
		Path: "sh",
		Args: []string{"-c", hook},
		Dir:  ctx.Invocation.Dir,
		Env:  ctx.Env(),
	})
	if err != nil {
		return 0, &SpawnError{Hook: hook, Err: err}
	}
	return code, nil
}

// checkSpawnable catches hooks that cannot start before handing them to
// the shell, which would otherwise fold a missing script into a plain
// exit 127. Only a first word that is an unquoted path is checked; bare
// words are left to the shell, which may satisfy them with builtins or
// PATH lookup.
func checkSpawnable(hook, dir string) error {
	fields := strings.Fields(hook)
	if len(fields) == 0 {
		return nil
	}
	first := fields[0]
	if !strings.ContainsRune(first, os.PathSeparator) {
		return nil
	}
	if strings.ContainsAny(first, `'"$`+"`") {
		return nil
	}

	path := first
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", first)
	}
	if info.Mode()&0111 == 0 {
		return fmt.Errorf("%s is not executable", first)
	}
	return nil
}

// CheckSyntax parses hook as a POSIX shell command line and reports
// syntax errors without running anything.
func CheckSyntax(hook string) error {
	parser := syntax.NewParser(syntax.Variant(syntax.LangPOSIX))
	if _, err := parser.Parse(strings.NewReader(hook), ""); err != nil {
		return fmt.Errorf("invalid hook command: %w", err)
	}
	return nil
}
