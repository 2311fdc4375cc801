package workspace

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/util"
)

const (
	NodeDir  = "dir"
	NodeFile = "file"
)

// Node is one entry of a work tree listing.
type Node struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Contents []*Node `json:"contents,omitempty"`
}

// resolve maps a repo-relative path to a workspace path. Paths that pass
// through a symlink are rejected, whatever the link points at.
func (w *Workspace) resolve(repo, p string) (string, error) {
	if !w.HasRepo(repo) {
		return "", fmt.Errorf("%w: %s", ErrRepoNotFound, repo)
	}
	cleaned, err := CleanPath(p)
	if err != nil {
		return "", err
	}
	if cleaned == "" {
		return repo, nil
	}
	full := repo
	for _, part := range strings.Split(cleaned, "/") {
		full = path.Join(full, part)
		fi, err := w.Filesystem.Lstat(full)
		if err != nil {
			// Missing components are created by WriteFile.
			break
		}
		if fi.Mode()&os.ModeSymlink != 0 {
			return "", fmt.Errorf("%w: %s is a symlink", ErrInvalidPath, p)
		}
	}
	return path.Join(repo, cleaned), nil
}

func notFound(err error, p string) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, p)
	}
	return err
}

// Stat describes the file at p inside repo.
func (w *Workspace) Stat(repo, p string) (os.FileInfo, error) {
	full, err := w.resolve(repo, p)
	if err != nil {
		return nil, err
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	fi, err := w.Filesystem.Stat(full)
	if err != nil {
		return nil, notFound(err, p)
	}
	return fi, nil
}

// ReadFile returns the content of the work tree file p.
func (w *Workspace) ReadFile(repo, p string) ([]byte, error) {
	full, err := w.resolve(repo, p)
	if err != nil {
		return nil, err
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	data, err := util.ReadFile(w.Filesystem, full)
	if err != nil {
		return nil, notFound(err, p)
	}
	return data, nil
}

// WriteFile stores the content of r at p, creating parent directories. An
// existing directory at p is not replaced.
func (w *Workspace) WriteFile(repo, p string, r io.Reader) error {
	full, err := w.resolve(repo, p)
	if err != nil {
		return err
	}
	if full == repo {
		return fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if fi, err := w.Filesystem.Stat(full); err == nil && !fi.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotRegularFile, p)
	}
	if err := w.Filesystem.MkdirAll(path.Dir(full), 0755); err != nil {
		return err
	}
	f, err := w.Filesystem.Create(full)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ListTree returns the work tree below dir inside repo, skipping .git.
// Directories are listed before files at every level.
func (w *Workspace) ListTree(repo, dir string) ([]*Node, error) {
	full, err := w.resolve(repo, dir)
	if err != nil {
		return nil, err
	}
	w.mu.RLock()
	defer w.mu.RUnlock()

	top := &Node{Contents: []*Node{}}
	index := map[string]*Node{filepath.Clean(full): top}
	var files []string

	err = util.Walk(w.Filesystem, full, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		p = filepath.Clean(p)
		if _, ok := index[p]; ok {
			return nil
		}
		if fi.IsDir() {
			if fi.Name() == ".git" {
				return filepath.SkipDir
			}
			node := &Node{Name: fi.Name(), Type: NodeDir, Contents: []*Node{}}
			parent := index[filepath.Dir(p)]
			parent.Contents = append(parent.Contents, node)
			index[p] = node
			return nil
		}
		files = append(files, p)
		return nil
	})
	if err != nil {
		return nil, notFound(err, dir)
	}

	for _, f := range files {
		parent := index[filepath.Dir(f)]
		parent.Contents = append(parent.Contents, &Node{Name: filepath.Base(f), Type: NodeFile})
	}
	return top.Contents, nil
}
