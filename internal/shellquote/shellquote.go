// Package shellquote produces strings that are safe to splice literally
// into a command line interpreted by a POSIX shell.
package shellquote

import "strings"

// safe matches characters that never need quoting. Anything outside this
// set gets the single-quote treatment.
func safe(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '-' || r == '_' || r == '.' || r == '/' || r == ':' || r == '=' || r == ',' || r == '+' || r == '@' || r == '%':
		return true
	}
	return false
}

// Quote returns a shell-safe representation of s. The shell's own
// unescaping yields s byte-for-byte; quoting is total over all inputs,
// including the empty string.
func Quote(s string) string {
	if s == "" {
		return "''"
	}

	plain := true
	for _, r := range s {
		if !safe(r) {
			plain = false
			break
		}
	}
	if plain {
		return s
	}

	// Single quotes preserve everything except a single quote itself,
	// which is closed, escaped, and reopened: ' -> '\''
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Join quotes each argument and joins them with spaces, producing a
// command string suitable for `sh -c` or a picker reload binding.
func Join(args []string) string {
	quoted := make([]string, 0, len(args))
	for _, a := range args {
		quoted = append(quoted, Quote(a))
	}
	return strings.Join(quoted, " ")
}
