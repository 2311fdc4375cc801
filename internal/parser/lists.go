package parser

import "strings"

type Branch struct {
	Name    string `json:"name"`
	Current bool   `json:"current,omitempty"`
}

type Remote struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type ConfigEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type LsRemoteEntry struct {
	Sha1 string `json:"sha1"`
	Name string `json:"name"`
}

type StashFile struct {
	Filename string `json:"filename"`
}

// ParseBranches parses `git branch --list`. The two leading columns hold the
// "* " marker of the checked-out branch.
func ParseBranches(text string) []Branch {
	branches := []Branch{}
	for _, row := range nonBlankLines(text) {
		b := Branch{Current: row[0] == '*'}
		if len(row) > 2 {
			b.Name = row[2:]
		}
		branches = append(branches, b)
	}
	return branches
}

func ParseTags(text string) []string {
	tags := []string{}
	for _, row := range splitLines(text) {
		if row == "" {
			continue
		}
		tags = append(tags, row)
	}
	return tags
}

// ParseRemotes parses `git remote -v`. Each remote is listed once per
// direction; only the first url seen for a name is kept.
func ParseRemotes(text string) []Remote {
	remotes := []Remote{}
	seen := make(map[string]bool)
	for _, row := range nonBlankLines(text) {
		fields := strings.Fields(row)
		name := fields[0]
		if seen[name] {
			continue
		}
		seen[name] = true
		r := Remote{Name: name}
		if len(fields) > 1 {
			r.URL = fields[1]
		}
		remotes = append(remotes, r)
	}
	return remotes
}

// ParseConfigValues parses `git config --get-all <key>`: one value per line.
func ParseConfigValues(text string) []string {
	values := []string{}
	for _, row := range nonBlankLines(text) {
		values = append(values, row)
	}
	return values
}

// ParseConfigList parses `git config -l`. Keys may repeat; every entry is
// kept in output order.
func ParseConfigList(text string) []ConfigEntry {
	entries := []ConfigEntry{}
	for _, row := range nonBlankLines(text) {
		key, value, _ := strings.Cut(row, "=")
		entries = append(entries, ConfigEntry{Key: key, Value: value})
	}
	return entries
}

// ParseLsRemote parses `git ls-remote`: a 40 character sha1, a tab, the ref.
// The "From <url>" banner is skipped.
func ParseLsRemote(text string) []LsRemoteEntry {
	entries := []LsRemoteEntry{}
	for _, row := range splitLines(text) {
		if row == "" || strings.HasPrefix(row, "From ") {
			continue
		}
		var e LsRemoteEntry
		if len(row) <= 40 {
			e.Sha1 = row
		} else {
			e.Sha1 = row[:40]
			e.Name = strings.TrimSpace(row[41:])
		}
		entries = append(entries, e)
	}
	return entries
}

// ParseStashShow parses `git stash show --stat`. The trailing
// "N files changed" summary is not a file.
func ParseStashShow(text string) []StashFile {
	files := []StashFile{}
	rows := splitLines(text)
	var kept []string
	for _, row := range rows {
		if row != "" {
			kept = append(kept, row)
		}
	}
	if len(kept) == 0 {
		return files
	}
	for _, row := range kept[:len(kept)-1] {
		name, _, _ := strings.Cut(row, "|")
		files = append(files, StashFile{Filename: strings.TrimSpace(name)})
	}
	return files
}
