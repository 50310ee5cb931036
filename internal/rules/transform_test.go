package rules

import (
	"testing"

	"github.com/dgerlanc/tramp/internal/config"
)

func assertTransformed(t *testing.T, got Transformed, binary string, args []string, action Action) {
	t.Helper()
	if got.Binary != binary {
		t.Errorf("binary = %q, want %q", got.Binary, binary)
	}
	if len(got.Args) != len(args) {
		t.Fatalf("args = %q, want %q", got.Args, args)
	}
	for i := range args {
		if got.Args[i] != args[i] {
			t.Errorf("arg %d = %q, want %q", i, got.Args[i], args[i])
		}
	}
	if got.Action != action {
		t.Errorf("action = %v, want %v", got.Action, action)
	}
}

func TestTransformNoAction(t *testing.T) {
	rule := mustCompileRule(t, config.Rule{BinaryPattern: "cargo", PreHook: "echo hi"})
	inv := Invocation{Binary: "/usr/bin/cargo", Args: []string{"build"}, Dir: "/p"}

	assertTransformed(t, rule.Transform(inv), "/usr/bin/cargo", []string{"build"}, ActionNone)
}

func TestTransformArgRewrite(t *testing.T) {
	rule := mustCompileRule(t, config.Rule{ArgRewrite: "s/^build$/build --release/"})
	inv := Invocation{Binary: "/usr/bin/cargo", Args: []string{"build"}, Dir: "/p"}

	assertTransformed(t, rule.Transform(inv),
		"/usr/bin/cargo", []string{"build", "--release"}, ActionArgRewrite)
}

func TestTransformArgRewriteNoMatch(t *testing.T) {
	rule := mustCompileRule(t, config.Rule{ArgRewrite: "s/^build$/build --release/"})
	inv := Invocation{Binary: "/usr/bin/cargo", Args: []string{"test", "--workspace"}, Dir: "/p"}

	assertTransformed(t, rule.Transform(inv),
		"/usr/bin/cargo", []string{"test", "--workspace"}, ActionNone)
}

func TestTransformArgRewriteGlobal(t *testing.T) {
	rule := mustCompileRule(t, config.Rule{ArgRewrite: "s/dev/prod/g"})
	inv := Invocation{Binary: "/usr/bin/deploy", Args: []string{"dev", "--env", "dev"}, Dir: "/p"}

	assertTransformed(t, rule.Transform(inv),
		"/usr/bin/deploy", []string{"prod", "--env", "prod"}, ActionArgRewrite)
}

func TestTransformCommandRewrite(t *testing.T) {
	rule := mustCompileRule(t, config.Rule{CommandRewrite: "s/kubectl/kubectl --context=dev/"})
	inv := Invocation{Binary: "kubectl", Args: []string{"get", "pods"}, Dir: "/p"}

	assertTransformed(t, rule.Transform(inv),
		"kubectl", []string{"--context=dev", "get", "pods"}, ActionCommandRewrite)
}

func TestTransformCommandRewriteChangesBinary(t *testing.T) {
	rule := mustCompileRule(t, config.Rule{CommandRewrite: `s#.*/npm#pnpm#`})
	inv := Invocation{Binary: "/usr/local/bin/npm", Args: []string{"install"}, Dir: "/p"}

	assertTransformed(t, rule.Transform(inv),
		"pnpm", []string{"install"}, ActionCommandRewrite)
}

func TestTransformCommandRewriteNoMatch(t *testing.T) {
	rule := mustCompileRule(t, config.Rule{CommandRewrite: "s/absent/x/"})
	inv := Invocation{Binary: "/bin/ls", Args: []string{"-la"}, Dir: "/p"}

	assertTransformed(t, rule.Transform(inv), "/bin/ls", []string{"-la"}, ActionNone)
}

func TestTransformCommandRewriteEverythingRemoved(t *testing.T) {
	rule := mustCompileRule(t, config.Rule{CommandRewrite: "s/.*//"})
	inv := Invocation{Binary: "/bin/echo", Args: []string{"hello"}, Dir: "/p"}

	// The binary survives even when the substitution erases the whole command.
	assertTransformed(t, rule.Transform(inv), "/bin/echo", nil, ActionCommandRewrite)
}

func TestTransformAlternateCommand(t *testing.T) {
	rule := mustCompileRule(t, config.Rule{AlternateCommand: "pnpm"})
	inv := Invocation{Binary: "/usr/local/bin/npm", Args: []string{"install", "--save"}, Dir: "/p"}

	assertTransformed(t, rule.Transform(inv),
		"pnpm", []string{"install", "--save"}, ActionAlternate)
}

func TestTransformIntercept(t *testing.T) {
	rule := mustCompileRule(t, config.Rule{InterceptHook: "echo blocked"})
	inv := Invocation{Binary: "/usr/local/bin/deploy", Args: []string{"--prod"}, Dir: "/p"}

	assertTransformed(t, rule.Transform(inv),
		"/usr/local/bin/deploy", []string{"--prod"}, ActionIntercept)
}

func TestTransformRetokenizesOnWhitespace(t *testing.T) {
	// Substitutions work on the joined string, so an argument containing
	// a space is split apart once any rewrite fires.
	rule := mustCompileRule(t, config.Rule{ArgRewrite: "s/hello/hi/"})
	inv := Invocation{Binary: "/bin/echo", Args: []string{"hello there", "world"}, Dir: "/p"}

	assertTransformed(t, rule.Transform(inv),
		"/bin/echo", []string{"hi", "there", "world"}, ActionArgRewrite)
}

func TestTransformCaptureGroups(t *testing.T) {
	rule := mustCompileRule(t, config.Rule{ArgRewrite: `s/--env=(\w+)/--environment $1/`})
	inv := Invocation{Binary: "/usr/bin/deploy", Args: []string{"--env=staging"}, Dir: "/p"}

	assertTransformed(t, rule.Transform(inv),
		"/usr/bin/deploy", []string{"--environment", "staging"}, ActionArgRewrite)
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action Action
		want   string
	}{
		{ActionNone, "none"},
		{ActionArgRewrite, "arg-rewrite"},
		{ActionCommandRewrite, "command-rewrite"},
		{ActionAlternate, "alternate-command"},
		{ActionIntercept, "intercept"},
		{Action(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.action.String(); got != tt.want {
			t.Errorf("Action(%d).String() = %q, want %q", tt.action, got, tt.want)
		}
	}
}
