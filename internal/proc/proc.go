// Package proc runs child processes attached to this process's stdio and
// reports their exit codes.
package proc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
)

// Command describes a child process to run.
type Command struct {
	Path string   // binary to execute
	Args []string // arguments, not including the binary itself
	Dir  string   // working directory; empty inherits ours
	Env  []string // extra KEY=value entries on top of the inherited environment
}

// Runner runs commands and reports their exit codes. The error return is
// reserved for failing to run at all; a non-zero exit from a process that
// did run is reported through the code.
type Runner interface {
	Run(cmd Command) (int, error)
}

// StdioRunner executes commands synchronously. Nil stream fields fall
// back to os.Stdin, os.Stdout, and os.Stderr, so the zero value wires a
// child straight through to the terminal; tests substitute buffers.
type StdioRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes cmd and blocks until it exits. A child killed by a signal
// reports exit code 1.
func (r *StdioRunner) Run(cmd Command) (int, error) {
	c := exec.Command(cmd.Path, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdin = r.Stdin
	c.Stdout = r.Stdout
	c.Stderr = r.Stderr
	if c.Stdin == nil {
		c.Stdin = os.Stdin
	}
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
	if c.Stderr == nil {
		c.Stderr = os.Stderr
	}
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}

	err := c.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return code, nil
		}
		return 1, nil
	}
	return 0, fmt.Errorf("failed to start %s: %w", cmd.Path, err)
}

// Resolve locates name the way the shell would and returns an absolute
// path to the binary.
func Resolve(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", err
	}
	return filepath.Abs(path)
}
