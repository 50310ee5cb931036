// Tramp is a transparent command proxy. It resolves the requested binary,
// consults .tramp.toml files from the current directory upward, and runs
// the command with any matching rewrites and hooks applied.
//
// Direct use:
//
//	tramp cargo build --release
//
// To route every invocation of a binary through tramp, install a
// trampoline script ahead of the real binary on PATH:
//
//	tramp --setup cargo > ~/.local/bin/cargo
//	chmod +x ~/.local/bin/cargo
//
// Tramp exits with the proxied command's code. Code 127 means the command
// could not be spawned; code 2 is reserved for tramp's own failures.
package main

import (
	"os"

	"github.com/dgerlanc/tramp/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
