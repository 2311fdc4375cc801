package parser

import (
	"fmt"
	"regexp"
	"strings"
)

type CommitResult struct {
	Branch string `json:"branch"`
	Sha1   string `json:"sha1"`
	Title  string `json:"title"`
}

// commitResultRe matches the first line `git commit` prints:
//
//	[master a081a59] A
//	[master (root-commit) 3b8505e] init
var commitResultRe = regexp.MustCompile(`(?i)^\[([-_a-z0-9]*)\s([^\]]*\s)?([0-9a-f]{4,40})\] (.*)$`)

// ParseCommitResult reads the branch, abbreviated sha1 and title from the
// confirmation `git commit` prints. Any other first line is an error.
func ParseCommitResult(text string) (CommitResult, error) {
	first := splitLines(text)[0]
	m := commitResultRe.FindStringSubmatch(first)
	if m == nil {
		return CommitResult{}, fmt.Errorf("%w: %q", ErrUnexpectedOutput, strings.TrimSpace(first))
	}
	return CommitResult{Branch: m[1], Sha1: m[3], Title: m[4]}, nil
}
