package formatter

import "regexp"

// ansiPattern matches ANSI escape sequences for stripping in assertions.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
