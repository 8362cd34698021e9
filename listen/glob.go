package listen

import "github.com/tidwall/match"

// Glob builds a pass-through listener that accepts strings matching the
// given glob pattern ('*' matches any run, '?' matches one character).
func Glob(pattern string) Listener[string, string] {
	return Filter(func(s string) bool {
		return match.Match(s, pattern)
	})
}
