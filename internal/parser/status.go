package parser

import "strings"

type FileStatus struct {
	Staged   bool `json:"staged"`
	Removed  bool `json:"removed"`
	IsNew    bool `json:"isNew"`
	Conflict bool `json:"conflict"`
}

type StatusResult struct {
	Branch string                `json:"branch"`
	Files  map[string]FileStatus `json:"files"`
}

// ParseStatus parses `git status --porcelain -b` output: a "## <branch>"
// header followed by "XY <path>" lines.
func ParseStatus(text string) StatusResult {
	res := StatusResult{Files: make(map[string]FileStatus)}
	lines := splitLines(text)
	res.Branch = statusBranch(lines[0])

	for _, line := range lines[1:] {
		if len(line) < 4 {
			continue
		}
		x, y := line[0], line[1]
		path := strings.TrimSpace(line[3:])
		if x == 'R' || x == 'C' {
			if _, dst, ok := strings.Cut(path, " -> "); ok {
				path = dst
			}
		}
		path = unquotePath(path)

		var st FileStatus
		st.Staged = x == 'A' || x == 'M'
		st.Removed = x == 'D' || y == 'D'
		st.IsNew = (x == '?' || x == 'A') && !st.Removed
		st.Conflict = x == 'U' || y == 'U'
		res.Files[path] = st
	}
	return res
}

// statusBranch takes the last token of the header, ignoring the
// "[ahead N, behind M]" block and the "...upstream" suffix.
func statusBranch(header string) string {
	header = strings.TrimSpace(strings.TrimPrefix(header, "##"))
	if i := strings.LastIndex(header, " ["); i >= 0 && strings.HasSuffix(header, "]") {
		header = header[:i]
	}
	fields := strings.Fields(header)
	if len(fields) == 0 {
		return ""
	}
	branch := fields[len(fields)-1]
	if local, _, ok := strings.Cut(branch, "..."); ok {
		branch = local
	}
	return branch
}
