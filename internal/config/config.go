// Package config handles tramp's cascading configuration: per-directory
// .tramp.toml files discovered by walking upward from the working directory,
// plus an optional user-level config consulted last.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed template.toml
var defaultTemplate []byte

// Config is the contents of a single .tramp.toml file.
type Config struct {
	// Root stops the upward cascade at the directory holding this file.
	Root bool `toml:"root"`

	// NoExternalLookup disables the user-level config for commands run
	// under this tree.
	NoExternalLookup bool `toml:"no-external-lookup"`

	// RootConfigLookupDisableEnvVar names an environment variable that,
	// when truthy, disables the user-level config. Useful for CI.
	RootConfigLookupDisableEnvVar string `toml:"root-config-lookup-disable-env-var"`

	// Rules are tried in order; the first match wins.
	Rules []Rule `toml:"rules"`
}

// Rule is one matching/action unit. A rule with no patterns matches every
// invocation; a rule with both patterns requires both to match. At most one
// action (arg_rewrite, command_rewrite, alternate_command, intercept_hook)
// may be set per rule; pre_hook and post_hook combine freely with any
// action or with none.
type Rule struct {
	BinaryPattern    string `toml:"binary_pattern"`
	CwdPattern       string `toml:"cwd_pattern"`
	ArgRewrite       string `toml:"arg_rewrite"`
	CommandRewrite   string `toml:"command_rewrite"`
	AlternateCommand string `toml:"alternate_command"`
	InterceptHook    string `toml:"intercept_hook"`
	PreHook          string `toml:"pre_hook"`
	PostHook         string `toml:"post_hook"`
}

// Loaded is a parsed config file together with the path it came from.
type Loaded struct {
	Config Config
	Path   string

	// noExternalLookupDefined records whether the file sets the key at
	// all, so an explicit false can override an ancestor's true.
	noExternalLookupDefined bool
}

// SourcedRule is a rule annotated with the config file that declared it.
type SourcedRule struct {
	Rule
	Source string
}

// Merged is the effective configuration produced by the cascade: every
// discovered rule in precedence order, plus the resolved scalar flags
// (kept for display by `config validate` and `config show`).
type Merged struct {
	Rules            []SourcedRule
	NoExternalLookup bool
	DisableEnvVar    string
}

// ParseError reports a malformed config file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse config file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse parses and validates one config file's contents. path is used for
// error reporting only.
func Parse(data []byte, path string) (Loaded, error) {
	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Loaded{}, &ParseError{Path: path, Err: err}
	}
	if err := cfg.validate(); err != nil {
		return Loaded{}, &ParseError{Path: path, Err: err}
	}
	return Loaded{
		Config:                  cfg,
		Path:                    path,
		noExternalLookupDefined: md.IsDefined("no-external-lookup"),
	}, nil
}

// ParseFile reads and parses one config file. Callers that tolerate missing
// files should test the returned error with errors.Is(err, fs.ErrNotExist).
func ParseFile(path string) (Loaded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Loaded{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(data, path)
}

// validate checks every rule for action exclusivity.
func (c *Config) validate() error {
	for i := range c.Rules {
		if err := c.Rules[i].validate(); err != nil {
			return fmt.Errorf("rule %d: %w", i+1, err)
		}
	}
	return nil
}

func (r *Rule) validate() error {
	var set []string
	for _, action := range []struct {
		name  string
		value string
	}{
		{"arg_rewrite", r.ArgRewrite},
		{"command_rewrite", r.CommandRewrite},
		{"alternate_command", r.AlternateCommand},
		{"intercept_hook", r.InterceptHook},
	} {
		if action.value != "" {
			set = append(set, action.name)
		}
	}
	if len(set) > 1 {
		return fmt.Errorf("%s and %s are mutually exclusive", set[0], set[1])
	}
	return nil
}

// DefaultTemplate returns the commented starter config written by --init.
func DefaultTemplate() []byte {
	return defaultTemplate
}
