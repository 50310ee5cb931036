// Package constants defines shared constants used across the tramp codebase.
package constants

import "os"

// FileMode is the permission set for files tramp writes.
const FileMode os.FileMode = 0644

// ConfigFileName is the per-directory (and user-level) config file name.
const ConfigFileName = ".tramp.toml"

// EnvUserConfig overrides the user-level config path (~/.tramp.toml).
const EnvUserConfig = "TRAMP_USER_CONFIG"

// Environment variables exported to hook processes.
const (
	EnvOriginalBinary = "TRAMP_ORIGINAL_BINARY"
	EnvOriginalArgs   = "TRAMP_ORIGINAL_ARGS"
	EnvOriginalArgc   = "TRAMP_ORIGINAL_ARGC"
	EnvOriginalArgN   = "TRAMP_ORIGINAL_ARG_" // + zero-based index
	EnvCwd            = "TRAMP_CWD"
	EnvHookType       = "TRAMP_HOOK_TYPE"
	EnvExitCode       = "TRAMP_EXIT_CODE"
	EnvExecutedBinary = "TRAMP_EXECUTED_BINARY"
	EnvExecutedArgs   = "TRAMP_EXECUTED_ARGS"
)

// Exit codes reserved by tramp itself. Everything else passes through from
// the target command or a hook.
const (
	// ExitInternal reports a tramp-internal failure (bad config, bad usage,
	// hook spawn failure) so it cannot be confused with a target's exit code.
	ExitInternal = 2

	// ExitSpawnFailure reports that the target command could not be found or
	// executed, following the shell convention.
	ExitSpawnFailure = 127
)

// AppName is the binary name, used in diagnostics and generated scripts.
const AppName = "tramp"
