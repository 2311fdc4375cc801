package parser

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLog = `commit 1111111111111111111111111111111111111111 2222222222222222222222222222222222222222 (HEAD -> refs/heads/master, refs/remotes/origin/master)
Author:     Jane Doe <jane@example.com>
AuthorDate: Mon Jan 2 15:04:05 2006 +0000
Commit:     John Roe <john@example.com>
CommitDate: Tue Jan 3 15:04:05 2006 +0000

    Second commit

    With a body.

commit 2222222222222222222222222222222222222222
Author:     Jane Doe <jane@example.com>
AuthorDate: Sun Jan 1 15:04:05 2006 +0000
Commit:     Jane Doe <jane@example.com>
CommitDate: Sun Jan 1 15:04:05 2006 +0000

    First commit
`

func TestParseLog(t *testing.T) {
	entries := ParseLog(sampleLog)
	require.Len(t, entries, 2)

	assert.Equal(t, LogEntry{
		Sha1:           "1111111111111111111111111111111111111111",
		Parents:        []string{"2222222222222222222222222222222222222222"},
		Refs:           []string{"HEAD -> refs/heads/master", "refs/remotes/origin/master"},
		AuthorName:     "Jane Doe",
		AuthorEmail:    "jane@example.com",
		CommitterName:  "John Roe",
		CommitterEmail: "john@example.com",
		AuthorDate:     "Mon Jan 2 15:04:05 2006 +0000",
		CommitDate:     "Tue Jan 3 15:04:05 2006 +0000",
		Message:        "Second commit\n\nWith a body.",
	}, entries[0])

	root := entries[1]
	assert.Equal(t, "2222222222222222222222222222222222222222", root.Sha1)
	assert.Empty(t, root.Parents)
	assert.NotNil(t, root.Parents)
	assert.NotNil(t, root.Refs)
	assert.Equal(t, "First commit", root.Message)
}

func TestParseLog_Idempotent(t *testing.T) {
	assert.Equal(t, ParseLog(sampleLog), ParseLog(sampleLog))
}

func TestParseLog_Empty(t *testing.T) {
	entries := ParseLog("")
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestParseLog_NoMessage(t *testing.T) {
	tests := []string{
		"commit abcdef0\nAuthor: A <a@example.com>\n\n",
		"commit abcdef0\nAuthor: A <a@example.com>\n",
		"commit abcdef0\n",
	}

	for _, input := range tests {
		entries := ParseLog(input)
		require.Len(t, entries, 1)
		assert.Equal(t, "abcdef0", entries[0].Sha1)
		assert.Equal(t, "", entries[0].Message)
	}
}

func TestParseLog_Headers(t *testing.T) {
	text := "commit abcdef0 (tag: refs/tags/v1)\n" +
		"Reflog: HEAD@{0} (Jane Doe <jane@example.com>)\n" +
		"Reflog message: commit: init\n" +
		"Author:     nobody\n" +
		"Merge: 1234 5678\n" +
		"\n" +
		"    init\n"

	entries := ParseLog(text)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, []string{"tag: refs/tags/v1"}, e.Refs)
	assert.Equal(t, "HEAD@{0}", e.ReflogName)
	assert.Equal(t, "Jane Doe", e.ReflogAuthorName)
	assert.Equal(t, "jane@example.com", e.ReflogAuthorEmail)
	assert.Equal(t, "nobody", e.AuthorName)
	assert.Empty(t, e.AuthorEmail)
	assert.Equal(t, "init", e.Message)
}

func TestLogEntry_JSON(t *testing.T) {
	out, err := json.Marshal(ParseLog("commit abcdef0\n"))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"sha1":"abcdef0","parents":[],"refs":[],"message":""}]`, string(out))
}
