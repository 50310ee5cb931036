// Package trampoline generates wrapper scripts that route a binary
// through tramp transparently.
package trampoline

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/dgerlanc/tramp/internal/constants"
)

// Script returns a POSIX shell wrapper that forwards binary and all of
// its arguments through trampPath. An empty trampPath relies on tramp
// being on PATH. Both paths are shell-quoted, so spaces survive.
//
// Installed ahead of the real binary on PATH, the wrapper makes every
// invocation of that binary pass through the rule engine.
func Script(binary, trampPath string) (string, error) {
	if trampPath == "" {
		trampPath = constants.AppName
	}

	quotedTramp, err := syntax.Quote(trampPath, syntax.LangPOSIX)
	if err != nil {
		return "", fmt.Errorf("cannot quote tramp path %q: %w", trampPath, err)
	}
	quotedBinary, err := syntax.Quote(binary, syntax.LangPOSIX)
	if err != nil {
		return "", fmt.Errorf("cannot quote binary path %q: %w", binary, err)
	}

	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	fmt.Fprintf(&b, "# Trampoline for %s. Install this ahead of the real binary on PATH.\n", binary)
	fmt.Fprintf(&b, "exec %s %s \"$@\"\n", quotedTramp, quotedBinary)
	return b.String(), nil
}
