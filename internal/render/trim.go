package render

import (
	"regexp"
	"strings"
)

// ansiPattern matches SGR escape sequences.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// isDecorativeLine checks if a line is blank or only horizontal rule
// characters once styling is removed.
func isDecorativeLine(line string) bool {
	stripped := ansiPattern.ReplaceAllString(line, "")
	stripped = strings.TrimSpace(stripped)
	if stripped == "" {
		return true
	}
	for _, r := range stripped {
		if r != '─' && r != '━' && r != '-' && r != '=' {
			return false
		}
	}
	return true
}

// trimDecorative drops glamour's leading and trailing margin lines.
func trimDecorative(content string) string {
	lines := strings.Split(content, "\n")

	start := 0
	for start < len(lines) && isDecorativeLine(lines[start]) {
		start++
	}

	end := len(lines)
	for end > start && isDecorativeLine(lines[end-1]) {
		end--
	}

	return strings.Join(lines[start:end], "\n")
}
