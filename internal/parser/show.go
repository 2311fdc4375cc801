package parser

import "strings"

const (
	ActionAdded   = "added"
	ActionRemoved = "removed"
	ActionChanged = "changed"
)

type ChangedFile struct {
	Path   string `json:"path,omitempty"`
	Action string `json:"action,omitempty"`
}

// CommitShow is one commit as printed by
// `git show --pretty=fuller --parents --decorate=full <sha>`.
type CommitShow struct {
	Sha1       string        `json:"sha1"`
	Parents    []string      `json:"parents"`
	IsMerge    bool          `json:"isMerge"`
	Author     string        `json:"author"`
	AuthorDate string        `json:"authorDate"`
	Committer  string        `json:"committer"`
	CommitDate string        `json:"commitDate"`
	Message    string        `json:"message"`
	Files      []ChangedFile `json:"files"`
}

// showParse is the commit being built plus whether the cursor is inside a
// hunk of the current file.
type showParse struct {
	CommitShow
	inHunk bool
}

// showMatcher consumes a line and reports true, or declines it. A declined
// matcher is never tried again.
type showMatcher func(c *showParse, line string) bool

// showChain is ordered; the cursor in ParseCommitShow only moves forward.
// matchAny is last so every line is consumed by some matcher.
var showChain = []showMatcher{
	matchShaLine,
	matchMergeLine,
	prefixMatcher("Author: ", func(c *CommitShow, v string) { c.Author = v }),
	prefixMatcher("AuthorDate: ", func(c *CommitShow, v string) { c.AuthorDate = v }),
	prefixMatcher("Commit: ", func(c *CommitShow, v string) { c.Committer = v }),
	prefixMatcher("CommitDate: ", func(c *CommitShow, v string) { c.CommitDate = v }),
	matchSeparator,
	matchMessageLine,
	matchSeparator,
	matchFileListLine,
	matchAny,
}

// ParseCommitShow parses the show output of a single commit and the list of
// files its diff touches.
func ParseCommitShow(text string) CommitShow {
	p := &showParse{CommitShow: CommitShow{Parents: []string{}, Files: []ChangedFile{}}}
	cursor := 0
	for _, line := range splitLines(text) {
		for !showChain[cursor](p, line) {
			cursor++
		}
	}
	return p.CommitShow
}

func matchShaLine(c *showParse, line string) bool {
	if !strings.HasPrefix(line, "commit ") {
		return false
	}
	shas, _, _ := strings.Cut(line, "(")
	fields := strings.Fields(shas)[1:]
	if len(fields) > 0 {
		c.Sha1 = fields[0]
		c.Parents = append(c.Parents, fields[1:]...)
	}
	return true
}

// matchMergeLine only flags the commit; parents come from the sha line.
func matchMergeLine(c *showParse, line string) bool {
	if !strings.HasPrefix(line, "Merge: ") {
		return false
	}
	c.IsMerge = true
	return true
}

func prefixMatcher(prefix string, set func(*CommitShow, string)) showMatcher {
	key := strings.TrimSuffix(prefix, " ")
	return func(c *showParse, line string) bool {
		if !strings.HasPrefix(line, prefix) {
			return false
		}
		set(&c.CommitShow, strings.TrimSpace(strings.TrimPrefix(line, key)))
		return true
	}
}

func matchSeparator(_ *showParse, line string) bool {
	return line == ""
}

func matchMessageLine(c *showParse, line string) bool {
	if !strings.HasPrefix(line, "    ") {
		return false
	}
	line = strings.TrimSpace(line)
	if c.Message != "" && line != "" {
		c.Message += "\n"
	}
	c.Message += line
	return true
}

// matchFileListLine tracks "diff " headers and their ---/+++ paths. A
// /dev/null source means the file was added, a /dev/null target that it was
// removed. Only lines before the first "@@" of a file are headers.
func matchFileListLine(c *showParse, line string) bool {
	if line == "" {
		return false
	}
	if strings.HasPrefix(line, "diff ") {
		c.Files = append(c.Files, ChangedFile{})
		c.inHunk = false
		return true
	}
	if strings.HasPrefix(line, "@@") {
		c.inHunk = true
	}
	if c.inHunk {
		return true
	}
	isOld := strings.HasPrefix(line, "--- ")
	if !isOld && !strings.HasPrefix(line, "+++ ") {
		return true
	}
	if len(c.Files) == 0 {
		return true
	}
	file := &c.Files[len(c.Files)-1]
	p := strings.TrimRight(line[4:], "\t")
	if p == "/dev/null" {
		if isOld {
			file.Action = ActionAdded
		} else {
			file.Action = ActionRemoved
		}
		return true
	}
	if _, rest, ok := strings.Cut(p, "/"); ok {
		file.Path = rest
	} else {
		file.Path = ""
	}
	if file.Action == "" {
		file.Action = ActionChanged
	}
	return true
}

func matchAny(_ *showParse, _ string) bool {
	return true
}
