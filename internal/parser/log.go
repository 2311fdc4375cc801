package parser

import (
	"regexp"
	"strings"
)

// LogEntry is one commit of `git log --pretty=fuller --parents --decorate=full`.
type LogEntry struct {
	Sha1              string   `json:"sha1"`
	Parents           []string `json:"parents"`
	Refs              []string `json:"refs"`
	AuthorName        string   `json:"authorName,omitempty"`
	AuthorEmail       string   `json:"authorEmail,omitempty"`
	CommitterName     string   `json:"committerName,omitempty"`
	CommitterEmail    string   `json:"committerEmail,omitempty"`
	AuthorDate        string   `json:"authorDate,omitempty"`
	CommitDate        string   `json:"commitDate,omitempty"`
	ReflogName        string   `json:"reflogName,omitempty"`
	ReflogAuthorName  string   `json:"reflogAuthorName,omitempty"`
	ReflogAuthorEmail string   `json:"reflogAuthorEmail,omitempty"`
	Message           string   `json:"message"`
}

var personRe = regexp.MustCompile(`([^<]+)<([^>]+)>`)

// splitPerson splits "Name <email>". Without an email the whole value is
// the name.
func splitPerson(s string) (name, email string) {
	m := personRe.FindStringSubmatch(s)
	if m == nil {
		return s, ""
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
}

type headerKind int

const (
	headerAuthor headerKind = iota
	headerCommitter
	headerAuthorDate
	headerCommitDate
	headerReflog
)

var logHeaderKinds = map[string]headerKind{
	"Author":     headerAuthor,
	"Commit":     headerCommitter,
	"AuthorDate": headerAuthorDate,
	"CommitDate": headerCommitDate,
	"Reflog":     headerReflog,
}

var logHeaderHandlers = map[headerKind]func(*LogEntry, string){
	headerAuthor: func(e *LogEntry, v string) {
		e.AuthorName, e.AuthorEmail = splitPerson(v)
	},
	headerCommitter: func(e *LogEntry, v string) {
		e.CommitterName, e.CommitterEmail = splitPerson(v)
	},
	headerAuthorDate: func(e *LogEntry, v string) {
		e.AuthorDate = v
	},
	headerCommitDate: func(e *LogEntry, v string) {
		e.CommitDate = v
	},
	headerReflog: func(e *LogEntry, v string) {
		// "HEAD@{0} (Name <email>)"
		name, author, found := strings.Cut(v, " ")
		e.ReflogName = name
		if !found {
			return
		}
		author = strings.TrimSuffix(strings.TrimPrefix(author, "("), ")")
		e.ReflogAuthorName, e.ReflogAuthorEmail = splitPerson(author)
	},
}

type logState int

const (
	stateCommitLine logState = iota
	stateHeaderLine
	stateCommitMessage
)

type logParser struct {
	rows    []string
	state   logState
	commits []LogEntry
}

// ParseLog splits a multi-commit log stream into entries, in stream order.
func ParseLog(text string) []LogEntry {
	p := &logParser{rows: splitLines(text), commits: []LogEntry{}}
	for i, row := range p.rows {
		switch p.state {
		case stateCommitLine:
			p.commitLine(row)
		case stateHeaderLine:
			p.headerLine(row)
		case stateCommitMessage:
			p.messageLine(i, row)
		}
	}
	for i := range p.commits {
		p.commits[i].Message = strings.TrimSpace(p.commits[i].Message)
	}
	return p.commits
}

func (p *logParser) current() *LogEntry {
	return &p.commits[len(p.commits)-1]
}

// commitLine reads "commit <sha1> [<parent>...] [(<ref>, <ref>)]".
func (p *logParser) commitLine(row string) {
	if strings.TrimSpace(row) == "" {
		return
	}
	entry := LogEntry{Parents: []string{}, Refs: []string{}}
	shas, refs, hasRefs := strings.Cut(row, "(")
	fields := strings.Fields(shas)
	if len(fields) > 1 {
		entry.Sha1 = fields[1]
		entry.Parents = append(entry.Parents, fields[2:]...)
	}
	if hasRefs {
		refs = strings.TrimSuffix(strings.TrimSpace(refs), ")")
		entry.Refs = strings.Split(refs, ", ")
	}
	p.commits = append(p.commits, entry)
	p.state = stateHeaderLine
}

func (p *logParser) headerLine(row string) {
	if strings.TrimSpace(row) == "" {
		p.state = stateCommitMessage
		return
	}
	key, value, ok := strings.Cut(row, ": ")
	if !ok {
		return
	}
	kind, ok := logHeaderKinds[key]
	if !ok {
		return
	}
	logHeaderHandlers[kind](p.current(), strings.TrimSpace(value))
}

// messageLine appends a message row unless the next row opens a new commit,
// in which case the row is dropped and the next row is read as a commit line.
func (p *logParser) messageLine(i int, row string) {
	if i+1 < len(p.rows) && strings.HasPrefix(p.rows[i+1], "commit ") {
		p.state = stateCommitLine
		return
	}
	e := p.current()
	if e.Message != "" {
		e.Message += "\n"
	}
	e.Message += strings.TrimSpace(row)
}
