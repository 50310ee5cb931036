package rules

import "strings"

// Action identifies which transformation a rule applied to an invocation.
type Action int

const (
	// ActionNone leaves the invocation untouched.
	ActionNone Action = iota
	// ActionArgRewrite rewrote the argument list.
	ActionArgRewrite
	// ActionCommandRewrite rewrote the binary and arguments together.
	ActionCommandRewrite
	// ActionAlternate swapped in an alternate binary.
	ActionAlternate
	// ActionIntercept runs the rule's intercept hook instead of the command.
	ActionIntercept
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionArgRewrite:
		return "arg-rewrite"
	case ActionCommandRewrite:
		return "command-rewrite"
	case ActionAlternate:
		return "alternate-command"
	case ActionIntercept:
		return "intercept"
	default:
		return "unknown"
	}
}

// Transformed is the command that will actually execute.
type Transformed struct {
	Binary string
	Args   []string
	Action Action
}

// Transform applies the rule's action to inv. Substitutions operate on
// the space-joined argument string and the result is split back on
// whitespace, so arguments containing spaces do not survive a rewrite
// intact. A substitution whose pattern does not match leaves the
// invocation unchanged.
func (c *Compiled) Transform(inv Invocation) Transformed {
	unchanged := Transformed{Binary: inv.Binary, Args: inv.Args, Action: ActionNone}

	switch {
	case c.Rule.InterceptHook != "":
		return Transformed{Binary: inv.Binary, Args: inv.Args, Action: ActionIntercept}

	case c.Rule.AlternateCommand != "":
		return Transformed{Binary: c.Rule.AlternateCommand, Args: inv.Args, Action: ActionAlternate}

	case c.argSub != nil:
		joined := strings.Join(inv.Args, " ")
		rewritten := c.argSub.Apply(joined)
		if rewritten == joined {
			return unchanged
		}
		return Transformed{Binary: inv.Binary, Args: strings.Fields(rewritten), Action: ActionArgRewrite}

	case c.cmdSub != nil:
		joined := strings.Join(append([]string{inv.Binary}, inv.Args...), " ")
		rewritten := c.cmdSub.Apply(joined)
		if rewritten == joined {
			return unchanged
		}
		parts := strings.Fields(rewritten)
		if len(parts) == 0 {
			// Everything substituted away; keep the binary, drop the args.
			return Transformed{Binary: inv.Binary, Args: nil, Action: ActionCommandRewrite}
		}
		return Transformed{Binary: parts[0], Args: parts[1:], Action: ActionCommandRewrite}
	}

	return unchanged
}
