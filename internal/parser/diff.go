package parser

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	diffHeaderRe  = regexp.MustCompile(`^diff\s--git\s\w/(.+?)\s\w/(.+)$`)
	oldModeRe     = regexp.MustCompile(`^old mode (\d+)`)
	newModeRe     = regexp.MustCompile(`^new mode (\d+)`)
	newFileModeRe = regexp.MustCompile(`^new file mode (.+)$`)
	delFileModeRe = regexp.MustCompile(`^deleted file mode (.+)$`)
	similarityRe  = regexp.MustCompile(`^similarity index (\d+)%`)
	hunkRe        = regexp.MustCompile(`^@@ -(\d+)(?:,\d+)? \+(\d+)(?:,\d+)? @@`)
)

const diffHeaderHead = "diff --git "

// DiffLine is one line of a file section. Hunk markers and
// "\ No newline at end of file" carry no line numbers; added lines only have
// NewLine, removed lines only OldLine, context lines both.
type DiffLine struct {
	OldLine *int
	NewLine *int
	Text    string
}

// MarshalJSON encodes the line as the triple [old, new, text].
func (l DiffLine) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{l.OldLine, l.NewLine, l.Text})
}

func (l *DiffLine) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 3 {
		return fmt.Errorf("diff line: want 3 elements, got %d", len(raw))
	}
	var out DiffLine
	if err := json.Unmarshal(raw[0], &out.OldLine); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[1], &out.NewLine); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[2], &out.Text); err != nil {
		return err
	}
	*l = out
	return nil
}

// DiffEntry is one file section of a `git diff` stream.
type DiffEntry struct {
	APath           string     `json:"aPath"`
	BPath           string     `json:"bPath"`
	AMode           string     `json:"aMode,omitempty"` // empty for new files
	BMode           string     `json:"bMode,omitempty"` // empty for deleted files
	NewFile         bool       `json:"newFile"`
	DeletedFile     bool       `json:"deletedFile"`
	RenamedFile     bool       `json:"renamedFile"`
	SimilarityIndex int        `json:"simIndex"`
	Lines           []DiffLine `json:"lines"`

	// Header holds the raw lines consumed before the first hunk.
	Header []string `json:"-"`
}

// ParseDiff splits a `git diff` stream into per-file entries. A file section
// that does not start with a "diff --git a/... b/..." line aborts the parse.
// Line text is kept byte for byte, including the "\r" of CRLF content.
func ParseDiff(text string) ([]DiffEntry, error) {
	c := &diffCursor{lines: strings.Split(text, "\n")}
	entries := []DiffEntry{}
	for !c.atEnd() {
		entry, err := c.parseFile()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// FormatDiff re-assembles the text ParseDiff consumed.
func FormatDiff(entries []DiffEntry) string {
	var b strings.Builder
	for _, e := range entries {
		for _, line := range e.Header {
			b.WriteString(line)
			b.WriteByte('\n')
		}
		for _, line := range e.Lines {
			b.WriteString(line.Text)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

type diffCursor struct {
	lines []string
	pos   int
}

// atEnd reports exhausted input. An empty line terminates the stream.
func (c *diffCursor) atEnd() bool {
	return c.pos >= len(c.lines) || c.lines[c.pos] == ""
}

func (c *diffCursor) atSectionEnd() bool {
	return c.atEnd() || strings.HasPrefix(c.lines[c.pos], "diff ")
}

// peek returns the next line without its "\r" for header matching.
func (c *diffCursor) peek() string {
	if c.atEnd() {
		return ""
	}
	return strings.TrimSuffix(c.lines[c.pos], "\r")
}

func (c *diffCursor) take() string {
	line := c.lines[c.pos]
	c.pos++
	return line
}

func (c *diffCursor) parseFile() (DiffEntry, error) {
	e := DiffEntry{Lines: []DiffLine{}}
	lineNo := c.pos + 1
	first := c.take()
	e.Header = append(e.Header, first)

	a, b, ok := parseDiffHeader(strings.TrimSuffix(first, "\r"))
	if !ok {
		return e, fmt.Errorf("%w: line %d: %q", ErrMalformedHeader, lineNo, first)
	}
	e.APath, e.BPath = a, b

	// skip consumes one header line, never crossing into the next section.
	skip := func() (string, bool) {
		if c.atSectionEnd() {
			return "", false
		}
		line := c.take()
		e.Header = append(e.Header, line)
		return line, true
	}

	if m := oldModeRe.FindStringSubmatch(c.peek()); m != nil {
		skip()
		e.AMode = m[1]
		if m := newModeRe.FindStringSubmatch(c.peek()); m != nil {
			skip()
			e.BMode = m[1]
		}
	}
	if c.atSectionEnd() {
		return e, nil
	}

	switch next := c.peek(); {
	case strings.HasPrefix(next, "new file"):
		skip()
		e.AMode = ""
		if m := newFileModeRe.FindStringSubmatch(next); m != nil {
			e.BMode = m[1]
		}
		e.NewFile = true
	case strings.HasPrefix(next, "deleted file"):
		skip()
		e.BMode = ""
		if m := delFileModeRe.FindStringSubmatch(next); m != nil {
			e.AMode = m[1]
		}
		e.DeletedFile = true
	default:
		if m := similarityRe.FindStringSubmatch(next); m != nil {
			skip()
			e.SimilarityIndex, _ = strconv.Atoi(m[1])
			e.RenamedFile = true
			// rename from / rename to
			skip()
			skip()
		}
	}

	// index line, then ---/+++ (or a single "Binary files" line).
	if line, ok := skip(); ok && strings.HasPrefix(line, "index ") {
		skip()
	}
	skip()

	var oldLine, newLine int
	for !c.atSectionEnd() {
		lineNo := c.pos + 1
		line := c.take()
		switch {
		case strings.HasPrefix(line, "@@ "):
			m := hunkRe.FindStringSubmatch(line)
			if m == nil {
				return e, fmt.Errorf("%w: line %d: %q", ErrMalformedHunk, lineNo, line)
			}
			oldLine, _ = strconv.Atoi(m[1])
			newLine, _ = strconv.Atoi(m[2])
			e.Lines = append(e.Lines, DiffLine{Text: line})
		case strings.HasPrefix(line, `\`):
			// "\ No newline at end of file" marks the previous line; it is not a context line.
			e.Lines = append(e.Lines, DiffLine{Text: line})
		case strings.HasPrefix(line, "+"):
			e.Lines = append(e.Lines, DiffLine{NewLine: intPtr(newLine), Text: line})
			newLine++
		case strings.HasPrefix(line, "-"):
			e.Lines = append(e.Lines, DiffLine{OldLine: intPtr(oldLine), Text: line})
			oldLine++
		default:
			e.Lines = append(e.Lines, DiffLine{OldLine: intPtr(oldLine), NewLine: intPtr(newLine), Text: line})
			oldLine++
			newLine++
		}
	}
	return e, nil
}

func parseDiffHeader(line string) (string, string, bool) {
	if m := diffHeaderRe.FindStringSubmatch(line); m != nil {
		return m[1], m[2], true
	}
	rest, ok := strings.CutPrefix(line, diffHeaderHead)
	if !ok {
		return "", "", false
	}
	tokens := pathTokens(rest)
	if len(tokens) != 2 {
		return "", "", false
	}
	a, okA := stripSidePrefix(tokens[0])
	b, okB := stripSidePrefix(tokens[1])
	if !okA || !okB {
		return "", "", false
	}
	return a, b, true
}

// stripSidePrefix drops the one-letter "a/" style prefix of a diff path.
func stripSidePrefix(token string) (string, bool) {
	if len(token) < 3 || token[1] != '/' {
		return "", false
	}
	return token[2:], true
}

func intPtr(n int) *int {
	return &n
}
