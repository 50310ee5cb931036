// Package rules matches command invocations against configured rules and
// applies their transformations.
package rules

import (
	"fmt"
	"regexp"

	"github.com/dgerlanc/tramp/internal/config"
)

// Invocation describes a command the proxy was asked to run.
type Invocation struct {
	Binary string   // resolved path of the requested binary
	Args   []string // arguments after the binary name
	Dir    string   // working directory of the invocation
}

// Compiled is a rule whose patterns and substitutions have been compiled.
type Compiled struct {
	Rule   config.Rule
	Source string // config file the rule came from

	binary *regexp.Regexp
	cwd    *regexp.Regexp
	argSub *Substitution
	cmdSub *Substitution
}

// Compile compiles every merged rule, preserving order. Pattern and
// substitution errors name the offending rule and its source file.
func Compile(merged config.Merged) ([]Compiled, error) {
	compiled := make([]Compiled, 0, len(merged.Rules))
	for i, rule := range merged.Rules {
		c, err := compileRule(rule)
		if err != nil {
			return nil, fmt.Errorf("rule %d in %s: %w", i+1, rule.Source, err)
		}
		compiled = append(compiled, c)
	}
	return compiled, nil
}

func compileRule(rule config.SourcedRule) (Compiled, error) {
	c := Compiled{Rule: rule.Rule, Source: rule.Source}
	var err error

	if rule.BinaryPattern != "" {
		if c.binary, err = regexp.Compile(rule.BinaryPattern); err != nil {
			return Compiled{}, fmt.Errorf("invalid binary_pattern %q: %w", rule.BinaryPattern, err)
		}
	}
	if rule.CwdPattern != "" {
		if c.cwd, err = regexp.Compile(rule.CwdPattern); err != nil {
			return Compiled{}, fmt.Errorf("invalid cwd_pattern %q: %w", rule.CwdPattern, err)
		}
	}
	if rule.ArgRewrite != "" {
		if c.argSub, err = ParseSubstitution(rule.ArgRewrite); err != nil {
			return Compiled{}, fmt.Errorf("invalid arg_rewrite: %w", err)
		}
	}
	if rule.CommandRewrite != "" {
		if c.cmdSub, err = ParseSubstitution(rule.CommandRewrite); err != nil {
			return Compiled{}, fmt.Errorf("invalid command_rewrite: %w", err)
		}
	}
	return c, nil
}

// Matches reports whether the rule applies to inv. Patterns search
// anywhere in their subject rather than matching it whole. A rule with
// no patterns matches every invocation; a rule with both patterns
// requires both to match.
func (c *Compiled) Matches(inv Invocation) bool {
	if c.binary != nil && !c.binary.MatchString(inv.Binary) {
		return false
	}
	if c.cwd != nil && !c.cwd.MatchString(inv.Dir) {
		return false
	}
	return true
}

// Match returns the first rule that matches inv, or nil when none does.
func Match(rules []Compiled, inv Invocation) *Compiled {
	for i := range rules {
		if rules[i].Matches(inv) {
			return &rules[i]
		}
	}
	return nil
}
