package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// normalizeFormat rewrites a printf template that may use C length modifiers
// ("%ld", "%lf", "%zu", "%i") into Go verbs. It also returns the verb each
// positional argument is consumed by; a '*' width or precision consumes an int.
func normalizeFormat(format string) (string, []rune) {
	var b strings.Builder
	var verbs []rune
	runes := []rune(format)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		b.WriteRune(r)
		if r != '%' {
			continue
		}
		i++
		if i >= len(runes) {
			break
		}
		if runes[i] == '%' {
			b.WriteRune('%')
			continue
		}
		for ; i < len(runes) && strings.ContainsRune("+-# 0123456789.*", runes[i]); i++ {
			if runes[i] == '*' {
				verbs = append(verbs, 'd')
			}
			b.WriteRune(runes[i])
		}
		for i < len(runes) && strings.ContainsRune("hlLqjzt", runes[i]) {
			i++
		}
		if i >= len(runes) {
			break
		}
		verb := runes[i]
		if verb == 'i' || verb == 'u' {
			verb = 'd'
		}
		b.WriteRune(verb)
		verbs = append(verbs, verb)
	}
	return b.String(), verbs
}

// formatArgs converts positional command-line arguments to the type their
// verb expects. Arguments that do not parse stay strings. Arguments past the
// last verb are dropped, as printf ignores them.
func formatArgs(verbs []rune, args []string) ([]any, error) {
	if len(args) < len(verbs) {
		return nil, newWithSentinel(ErrTooFewFormatArgs,
			fmt.Sprintf("format has %d verbs but %d arguments were given", len(verbs), len(args)))
	}
	out := make([]any, len(verbs))
	for i, verb := range verbs {
		arg := args[i]
		out[i] = arg
		switch verb {
		case 'd', 'b', 'o', 'O', 'x', 'X', 'c', 'U':
			if n, err := strconv.ParseInt(arg, 0, 64); err == nil {
				out[i] = n
			}
		case 'e', 'E', 'f', 'F', 'g', 'G':
			if f, err := strconv.ParseFloat(arg, 64); err == nil {
				out[i] = f
			}
		}
	}
	return out, nil
}
