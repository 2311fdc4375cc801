package workspace

import (
	"fmt"

	"github.com/go-git/go-billy/v5/util"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// InitOptions mirror `git init [--bare] [--shared]`.
type InitOptions struct {
	Bare          bool
	Shared        bool
	DefaultBranch string
}

// InitRepo creates an empty repository named repo.
func (w *Workspace) InitRepo(repo string, opts InitOptions) error {
	if err := ValidName(repo); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.Filesystem.Lstat(repo); err == nil {
		return fmt.Errorf("%w: %s", ErrRepoExists, repo)
	}

	initOpts := &gogit.PlainInitOptions{Bare: opts.Bare}
	if opts.DefaultBranch != "" {
		initOpts.InitOptions.DefaultBranch = plumbing.NewBranchReferenceName(opts.DefaultBranch)
	}
	r, err := gogit.PlainInitWithOptions(w.RepoDir(repo), initOpts)
	if err != nil {
		return fmt.Errorf("init %s: %w", repo, err)
	}

	if opts.Shared {
		cfg, err := r.Config()
		if err != nil {
			return err
		}
		cfg.Raw.Section("core").SetOption("sharedRepository", "true")
		if err := r.SetConfig(cfg); err != nil {
			return fmt.Errorf("init %s: %w", repo, err)
		}
	}
	return nil
}

// RemoveRepo deletes repo and everything in it.
func (w *Workspace) RemoveRepo(repo string) error {
	if !w.HasRepo(repo) {
		return fmt.Errorf("%w: %s", ErrRepoNotFound, repo)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return util.RemoveAll(w.Filesystem, repo)
}
