package parser

import (
	"path"
	"strings"
)

const (
	TypeBlob = "blob"
	TypeTree = "tree"
)

// TreeEntry is one `git ls-tree` object. Contents is only set for trees
// built by ParseLsTree.
type TreeEntry struct {
	Name     string       `json:"name"`
	Mode     string       `json:"mode,omitempty"`
	Type     string       `json:"type"`
	Sha1     string       `json:"sha1,omitempty"`
	Contents []*TreeEntry `json:"contents,omitempty"`
}

// lsTreeLine reads "<mode> SP <type> SP <object> TAB <file>".
func lsTreeLine(line string) (TreeEntry, string) {
	meta, filePath, _ := strings.Cut(line, "\t")
	filePath = unquotePath(filePath)
	fields := strings.Split(meta, " ")
	e := TreeEntry{Name: path.Base(filePath)}
	if len(fields) > 0 {
		e.Mode = fields[0]
	}
	if len(fields) > 1 {
		e.Type = fields[1]
	}
	if len(fields) > 2 {
		e.Sha1 = fields[2]
	}
	return e, filePath
}

// ParseLsTreeSimple returns the entries of a flat `git ls-tree` listing.
func ParseLsTreeSimple(text string) []TreeEntry {
	entries := []TreeEntry{}
	for _, row := range splitLines(text) {
		row = strings.TrimSpace(row)
		if row == "" {
			continue
		}
		e, _ := lsTreeLine(row)
		entries = append(entries, e)
	}
	return entries
}

// ParseLsTree folds recursive `git ls-tree -tr` output into a tree rooted at
// "." and returns the entry at filterPath, the root when filterPath is empty,
// or nil when the listing does not contain it.
func ParseLsTree(text, filterPath string) *TreeEntry {
	root := &TreeEntry{Name: ".", Type: TypeTree, Contents: []*TreeEntry{}}
	index := map[string]*TreeEntry{".": root}
	for _, row := range splitLines(text) {
		row = strings.TrimSpace(row)
		if row == "" {
			continue
		}
		e, filePath := lsTreeLine(row)
		obj := &e
		if obj.Type == TypeTree {
			obj.Contents = []*TreeEntry{}
		}
		parent, ok := index[path.Dir(filePath)]
		if !ok {
			parent = root
		}
		parent.Contents = append(parent.Contents, obj)
		index[filePath] = obj
	}
	key := strings.Trim(filterPath, "/")
	if key == "" {
		key = "."
	}
	return index[key]
}
