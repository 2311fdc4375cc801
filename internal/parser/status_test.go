package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	res := ParseStatus("## main\nA  a.txt\n?? b.txt\nUU c.txt\n")

	assert.Equal(t, "main", res.Branch)
	assert.Len(t, res.Files, 3)
	assert.Equal(t, FileStatus{Staged: true, IsNew: true}, res.Files["a.txt"])
	assert.Equal(t, FileStatus{IsNew: true}, res.Files["b.txt"])
	assert.Equal(t, FileStatus{Conflict: true}, res.Files["c.txt"])
}

func TestParseStatus_Codes(t *testing.T) {
	tests := []struct {
		line     string
		path     string
		expected FileStatus
	}{
		{" M mod.go", "mod.go", FileStatus{}},
		{"M  staged.go", "staged.go", FileStatus{Staged: true}},
		{"MM both.go", "both.go", FileStatus{Staged: true}},
		{"D  gone.go", "gone.go", FileStatus{Removed: true}},
		{" D wt-gone.go", "wt-gone.go", FileStatus{Removed: true}},
		{"AD added-then-deleted.go", "added-then-deleted.go", FileStatus{Staged: true, Removed: true}},
		{"AU conflict.go", "conflict.go", FileStatus{Staged: true, IsNew: true, Conflict: true}},
		{"R  old.go -> new.go", "new.go", FileStatus{}},
		{`?? "with space.txt"`, "with space.txt", FileStatus{IsNew: true}},
		{`?? "caf\303\251.txt"`, "café.txt", FileStatus{IsNew: true}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			res := ParseStatus("## master\n" + tt.line + "\n")
			assert.Equal(t, map[string]FileStatus{tt.path: tt.expected}, res.Files)
		})
	}
}

func TestParseStatus_Branch(t *testing.T) {
	tests := []struct {
		header   string
		expected string
	}{
		{"## master", "master"},
		{"## feature/x...origin/feature/x", "feature/x"},
		{"## main...origin/main [ahead 1, behind 2]", "main"},
		{"## No commits yet on master", "master"},
		{"##", ""},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseStatus(tt.header).Branch)
		})
	}
}

func TestParseStatus_CRLF(t *testing.T) {
	res := ParseStatus("## main\r\n?? b.txt\r\n")
	assert.Equal(t, "main", res.Branch)
	assert.Contains(t, res.Files, "b.txt")
}
