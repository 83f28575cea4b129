package core

import "strings"

// ShellEscapePosix returns a single shell token using single-quote strategy,
// including surrounding single quotes.
// example: abc -> 'abc'
// example: a'b -> 'a'"'"'b'
// example: "" -> ''
func ShellEscapePosix(s string) string {
	if s == "" {
		return "''"
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

// FormatArgv renders argv as a copy-pasteable shell line. Elements made only
// of safe characters are left bare.
func FormatArgv(argv []string) string {
	parts := make([]string, len(argv))
	for i, a := range argv {
		if a != "" && isShellSafe(a) {
			parts[i] = a
		} else {
			parts[i] = ShellEscapePosix(a)
		}
	}
	return strings.Join(parts, " ")
}

func isShellSafe(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune("-_./=:+@%", r):
		default:
			return false
		}
	}
	return true
}
