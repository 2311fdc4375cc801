// Package parser converts the text output of git commands into typed records.
//
// Every parser is a pure function: it takes the raw stdout of one command and
// returns fresh values. Nothing here runs git, touches the filesystem or logs.
package parser

import (
	"strconv"
	"strings"
)

// splitLines splits raw command output into logical lines. A trailing "\r"
// is dropped from each line so CRLF output parses like LF output.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// nonBlankLines returns the lines that are not empty after trimming,
// untrimmed and in input order.
func nonBlankLines(text string) []string {
	var out []string
	for _, line := range splitLines(text) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// unquotePath unwraps a path git printed in C-style quotes. Escapes are
// resolved when possible; otherwise only the surrounding quotes go.
func unquotePath(p string) string {
	if len(p) < 2 || p[0] != '"' || p[len(p)-1] != '"' {
		return p
	}
	if s, err := strconv.Unquote(p); err == nil {
		return s
	}
	return p[1 : len(p)-1]
}

// pathTokens splits s on blanks, honoring double-quoted tokens with
// backslash escapes (`"a/with space"`).
func pathTokens(s string) []string {
	var tokens []string
	for {
		s = strings.TrimLeft(s, " \t")
		if s == "" {
			break
		}
		if s[0] == '"' {
			var buf strings.Builder
			escaped := false
			i := 1
			for i < len(s) {
				ch := s[i]
				if escaped {
					buf.WriteByte(ch)
					escaped = false
					i++
					continue
				}
				if ch == '\\' {
					escaped = true
					i++
					continue
				}
				if ch == '"' {
					i++
					break
				}
				buf.WriteByte(ch)
				i++
			}
			tokens = append(tokens, buf.String())
			s = s[i:]
			continue
		}
		j := 0
		for j < len(s) && s[j] != ' ' && s[j] != '\t' {
			j++
		}
		tokens = append(tokens, s[:j])
		s = s[j:]
	}
	return tokens
}
