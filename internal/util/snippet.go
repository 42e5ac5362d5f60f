package util

import "strings"

// ExtractSnippet returns up to maxLines lines of context around the 1-based
// line number.
func ExtractSnippet(lines []string, line, maxLines int) string {
	if maxLines <= 0 {
		maxLines = 4
	}
	if len(lines) == 0 {
		return ""
	}
	idx := line - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(lines) {
		idx = len(lines) - 1
	}
	s := idx - maxLines/2
	if s < 0 {
		s = 0
	}
	e := idx + maxLines/2
	if e >= len(lines) {
		e = len(lines) - 1
	}
	out := make([]string, 0, e-s+1)
	for i := s; i <= e; i++ {
		out = append(out, lines[i])
	}
	return strings.Join(out, "\n")
}
