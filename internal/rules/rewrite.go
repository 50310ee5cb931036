package rules

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Substitution is a parsed sed-style substitution expression such as
// "s/pattern/replacement/" or "s#pattern#replacement#g". The character
// after the leading 's' is the delimiter; a backslash escapes the
// delimiter inside a part and passes through before anything else, so
// regex escapes like \d survive. The trailing delimiter is optional.
// The only recognized flag is g, which replaces all occurrences instead
// of the first.
type Substitution struct {
	re     *regexp.Regexp
	repl   string
	global bool
}

// ParseSubstitution parses expr into a Substitution. The pattern is
// compiled immediately so malformed expressions surface at load time.
func ParseSubstitution(expr string) (*Substitution, error) {
	if !strings.HasPrefix(expr, "s") {
		return nil, fmt.Errorf("substitution %q must start with 's'", expr)
	}
	if utf8.RuneCountInString(expr) < 2 {
		return nil, fmt.Errorf("substitution %q is missing a delimiter", expr)
	}

	delim, size := utf8.DecodeRuneInString(expr[1:])
	parts := splitByDelimiter(expr[1+size:], delim)
	if len(parts) < 2 {
		return nil, fmt.Errorf("substitution %q needs a pattern and a replacement", expr)
	}

	var flags string
	if len(parts) > 2 {
		flags = parts[2]
	}

	re, err := regexp.Compile(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid pattern in substitution %q: %w", expr, err)
	}

	return &Substitution{
		re:     re,
		repl:   parts[1],
		global: strings.ContainsRune(flags, 'g'),
	}, nil
}

// splitByDelimiter splits s on delim. A backslash followed by the
// delimiter produces a literal delimiter; a backslash followed by any
// other character is kept as-is.
func splitByDelimiter(s string, delim rune) []string {
	runes := []rune(s)
	var parts []string
	var current []rune
	for i := 0; i < len(runes); i++ {
		switch {
		case runes[i] == '\\' && i+1 < len(runes) && runes[i+1] == delim:
			current = append(current, delim)
			i++
		case runes[i] == delim:
			parts = append(parts, string(current))
			current = current[:0]
		default:
			current = append(current, runes[i])
		}
	}
	return append(parts, string(current))
}

// Apply runs the substitution against in, replacing the first occurrence
// or every occurrence when the g flag was given. Replacement strings may
// reference capture groups as $1, $2, and so on. Input that the pattern
// does not match is returned unchanged.
func (s *Substitution) Apply(in string) string {
	if s.global {
		return s.re.ReplaceAllString(in, s.repl)
	}

	m := s.re.FindStringSubmatchIndex(in)
	if m == nil {
		return in
	}
	out := make([]byte, 0, len(in))
	out = append(out, in[:m[0]]...)
	out = s.re.ExpandString(out, s.repl, in, m)
	return string(append(out, in[m[1]:]...))
}
