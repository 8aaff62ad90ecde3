package menu

import (
	"strings"
	"sync"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldPool hands out NFD -> whitelist chains. A transform.Chain keeps
// internal buffers, so each caller borrows its own.
var foldPool = sync.Pool{
	New: func() any {
		return transform.Chain(norm.NFD, runes.Remove(runes.Predicate(disallowed)))
	},
}

// disallowed reports whether r is outside [A-Za-z0-9 ].
func disallowed(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == ' ':
		return false
	}
	return true
}

// Normalize folds s into its comparison form: canonical decomposition,
// every rune outside ASCII letters, digits and space dropped, then lower-cased.
// "Řízek" and "rizek!" both become "rizek".
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	t := foldPool.Get().(transform.Transformer)
	out, _, err := transform.String(t, s)
	foldPool.Put(t)
	if err != nil {
		out = strings.Map(func(r rune) rune {
			if disallowed(r) {
				return -1
			}
			return r
		}, norm.NFD.String(s))
	}
	return strings.ToLower(out)
}
