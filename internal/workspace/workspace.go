// Package workspace manages the per-session directories that hold cloned and
// initialized repositories.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/google/uuid"
)

var (
	ErrInvalidName    = errors.New("invalid repo name")
	ErrInvalidPath    = errors.New("invalid path")
	ErrRepoExists     = errors.New("repository already exists")
	ErrRepoNotFound   = errors.New("unknown repo")
	ErrNotFound       = errors.New("no such file")
	ErrNotRegularFile = errors.New("not a regular file")
)

// Workspace is one session's directory under the data root.
type Workspace struct {
	ID         string
	Root       string          // absolute path on disk
	Filesystem billy.Filesystem // bound to Root
	OpenedAt   time.Time
	mu         sync.RWMutex
}

// Manager handles concurrent access to workspaces
type Manager struct {
	root       string
	fs         billy.Filesystem
	workspaces map[string]*Workspace
	mu         sync.RWMutex
}

// NewManager creates the data root if needed.
func NewManager(root string) (*Manager, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("create data root: %w", err)
	}
	return &Manager{
		root:       abs,
		fs:         osfs.New(abs, osfs.WithBoundOS()),
		workspaces: make(map[string]*Workspace),
	}, nil
}

// Root returns the absolute data root.
func (m *Manager) Root() string {
	return m.root
}

// Resolve returns the workspace for id. A workspace left on disk by an
// earlier run is reopened. Anything else, including an empty or malformed
// id, gets a fresh workspace with a new id.
func (m *Manager) Resolve(id string) (*Workspace, error) {
	m.mu.RLock()
	ws, ok := m.workspaces[id]
	m.mu.RUnlock()
	if ok {
		return ws, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if ws, ok := m.workspaces[id]; ok {
		return ws, nil
	}
	if parsed, err := uuid.Parse(id); err == nil && parsed.String() == id {
		if fi, err := m.fs.Stat(id); err == nil && fi.IsDir() {
			return m.open(id)
		}
	}

	id = uuid.NewString()
	if err := m.fs.MkdirAll(id, 0755); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return m.open(id)
}

// open must be called with m.mu held. The workspace gets its own bound
// filesystem since a chrooted BoundOS no longer confines symlinks.
func (m *Manager) open(id string) (*Workspace, error) {
	root := filepath.Join(m.root, id)
	ws := &Workspace{
		ID:         id,
		Root:       root,
		Filesystem: osfs.New(root, osfs.WithBoundOS()),
		OpenedAt:   time.Now(),
	}
	m.workspaces[id] = ws
	return ws, nil
}

// ListRepos returns the repository directory names, sorted.
func (w *Workspace) ListRepos() ([]string, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	infos, err := w.Filesystem.ReadDir(".")
	if err != nil {
		return nil, err
	}
	repos := []string{}
	for _, fi := range infos {
		if fi.IsDir() {
			repos = append(repos, fi.Name())
		}
	}
	sort.Strings(repos)
	return repos, nil
}

// RepoDir returns the absolute directory of repo.
func (w *Workspace) RepoDir(repo string) string {
	return filepath.Join(w.Root, repo)
}

// HasRepo reports whether repo is a valid name with a directory behind it.
// A symlink to a directory is not a repo.
func (w *Workspace) HasRepo(repo string) bool {
	if ValidName(repo) != nil {
		return false
	}
	fi, err := w.Filesystem.Lstat(repo)
	return err == nil && fi.IsDir()
}
