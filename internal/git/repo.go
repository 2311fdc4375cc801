package git

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/kurobon/gitrest/internal/parser"
)

var (
	ErrUnknownBranch   = errors.New("unknown branch")
	ErrEmptyMessage    = errors.New("empty commit message")
	ErrMissingArgument = errors.New("missing argument")
	ErrPathNotInTree   = errors.New("path not in tree")
	ErrInvalidParam    = errors.New("invalid parameter")
)

// Repo runs git inside one repository directory and parses what it prints.
type Repo struct {
	Name string
	Dir  string

	runner Runner
}

func NewRepo(r Runner, name, dir string) *Repo {
	return &Repo{Name: name, Dir: dir, runner: r}
}

func (r *Repo) run(ctx context.Context, args ...string) (string, error) {
	return r.runner.Run(ctx, r.Dir, args...)
}

func required(name, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s", ErrMissingArgument, name)
	}
	return nil
}

// notOption rejects a revision, ref or remote that git would parse as an
// option. Values reach git as positional arguments before any "--".
func notOption(name, value string) error {
	if strings.HasPrefix(value, "-") {
		return fmt.Errorf("%w: %s=%q must not start with '-'", ErrInvalidParam, name, value)
	}
	return nil
}

func (r *Repo) Status(ctx context.Context) (parser.StatusResult, error) {
	out, err := r.run(ctx, "status", "--porcelain", "-b")
	if err != nil {
		return parser.StatusResult{}, err
	}
	return parser.ParseStatus(out), nil
}

// DiffOptions select what Diff compares. The zero value compares the work
// tree with the index.
type DiffOptions struct {
	Cached bool
	From   string
	To     string
	Path   string
}

func (o DiffOptions) validate() error {
	if err := notOption("from", o.From); err != nil {
		return err
	}
	return notOption("to", o.To)
}

// args keeps blank context lines as " " so an empty line only ever ends the
// stream.
func (o DiffOptions) args() []string {
	args := []string{"-c", "diff.suppressBlankEmpty=false", "diff", "--no-color", "--no-ext-diff", "-M"}
	if o.Cached {
		args = append(args, "--cached")
	}
	if o.From != "" {
		args = append(args, o.From)
	}
	if o.To != "" {
		args = append(args, o.To)
	}
	if o.Path != "" {
		args = append(args, "--", o.Path)
	}
	return args
}

func (r *Repo) Diff(ctx context.Context, opts DiffOptions) ([]parser.DiffEntry, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	out, err := r.run(ctx, opts.args()...)
	if err != nil {
		return nil, err
	}
	entries, err := parser.ParseDiff(out)
	if err != nil {
		return nil, fmt.Errorf("parse diff: %w", err)
	}
	return entries, nil
}

// Log lists the commits reachable from any ref. A positive limit caps the count.
func (r *Repo) Log(ctx context.Context, limit int) ([]parser.LogEntry, error) {
	args := []string{"log", "--decorate=full", "--pretty=fuller", "--all", "--parents"}
	if limit > 0 {
		args = append(args, "-n", strconv.Itoa(limit))
	}
	out, err := r.run(ctx, args...)
	if err != nil {
		return nil, err
	}
	return parser.ParseLog(out), nil
}

// Reflog walks the reflog of ref, HEAD when empty.
func (r *Repo) Reflog(ctx context.Context, ref string, limit int) ([]parser.LogEntry, error) {
	if err := notOption("ref", ref); err != nil {
		return nil, err
	}
	args := []string{"log", "-g", "--decorate=full", "--pretty=fuller"}
	if limit > 0 {
		args = append(args, "-n", strconv.Itoa(limit))
	}
	if ref != "" {
		args = append(args, ref, "--")
	}
	out, err := r.run(ctx, args...)
	if err != nil {
		return nil, err
	}
	return parser.ParseLog(out), nil
}

func (r *Repo) Show(ctx context.Context, commit string) (parser.CommitShow, error) {
	if err := required("commit", commit); err != nil {
		return parser.CommitShow{}, err
	}
	if err := notOption("commit", commit); err != nil {
		return parser.CommitShow{}, err
	}
	out, err := r.run(ctx, "show", "--no-color", "--decorate=full", "--pretty=fuller", "--parents", commit)
	if err != nil {
		return parser.CommitShow{}, err
	}
	return parser.ParseCommitShow(out), nil
}

// ShowFile returns the content of path at rev, HEAD when rev is empty.
func (r *Repo) ShowFile(ctx context.Context, rev, path string) (string, error) {
	if err := required("path", path); err != nil {
		return "", err
	}
	if err := notOption("rev", rev); err != nil {
		return "", err
	}
	if rev == "" {
		rev = "HEAD"
	}
	return r.run(ctx, "show", rev+":"+path)
}

// LsTree returns the tree entry for path at rev, or the root tree when path
// is empty.
func (r *Repo) LsTree(ctx context.Context, rev, path string) (*parser.TreeEntry, error) {
	if err := notOption("rev", rev); err != nil {
		return nil, err
	}
	if rev == "" {
		rev = "HEAD"
	}
	args := []string{"ls-tree", "-tr", rev}
	if path != "" {
		args = append(args, "--", path)
	}
	out, err := r.run(ctx, args...)
	if err != nil {
		return nil, err
	}
	entry := parser.ParseLsTree(out, path)
	if entry == nil {
		return nil, fmt.Errorf("%w: %s at %s", ErrPathNotInTree, path, rev)
	}
	return entry, nil
}

func (r *Repo) Branches(ctx context.Context) ([]parser.Branch, error) {
	out, err := r.run(ctx, "branch", "--list", "--no-color")
	if err != nil {
		return nil, err
	}
	return parser.ParseBranches(out), nil
}

func (r *Repo) CreateBranch(ctx context.Context, name string) error {
	if err := required("branch", name); err != nil {
		return err
	}
	if err := notOption("branch", name); err != nil {
		return err
	}
	_, err := r.run(ctx, "branch", name)
	return err
}

// Checkout switches to an existing local branch. Any other name is
// ErrUnknownBranch, including paths and remote branches.
func (r *Repo) Checkout(ctx context.Context, branch string) error {
	if err := required("branch", branch); err != nil {
		return err
	}
	if err := notOption("branch", branch); err != nil {
		return err
	}
	repo, err := gogit.PlainOpen(r.Dir)
	if err != nil {
		return fmt.Errorf("open %s: %w", r.Name, err)
	}
	if _, err := repo.Reference(plumbing.NewBranchReferenceName(branch), false); err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return fmt.Errorf("%w: %s", ErrUnknownBranch, branch)
		}
		return err
	}
	_, err = r.run(ctx, "checkout", branch)
	return err
}

func (r *Repo) Move(ctx context.Context, src, dst string) error {
	if err := required("source", src); err != nil {
		return err
	}
	if err := required("destination", dst); err != nil {
		return err
	}
	_, err := r.run(ctx, "mv", "--", src, dst)
	return err
}

func (r *Repo) Remotes(ctx context.Context) ([]parser.Remote, error) {
	out, err := r.run(ctx, "remote", "-v")
	if err != nil {
		return nil, err
	}
	return parser.ParseRemotes(out), nil
}

func (r *Repo) AddRemote(ctx context.Context, name, url string) error {
	if err := required("name", name); err != nil {
		return err
	}
	if err := required("url", url); err != nil {
		return err
	}
	if err := notOption("name", name); err != nil {
		return err
	}
	if err := notOption("url", url); err != nil {
		return err
	}
	_, err := r.run(ctx, "remote", "add", name, url)
	return err
}

func (r *Repo) RemoveRemote(ctx context.Context, name string) error {
	if err := required("name", name); err != nil {
		return err
	}
	if err := notOption("name", name); err != nil {
		return err
	}
	_, err := r.run(ctx, "remote", "remove", name)
	return err
}

func (r *Repo) Tags(ctx context.Context) ([]string, error) {
	out, err := r.run(ctx, "tag")
	if err != nil {
		return nil, err
	}
	return parser.ParseTags(out), nil
}

// ConfigValues returns every local value of key. An unset key yields an
// empty list: git reports it with exit status 1 and no message.
func (r *Repo) ConfigValues(ctx context.Context, key string) ([]string, error) {
	if err := required("key", key); err != nil {
		return nil, err
	}
	if err := notOption("key", key); err != nil {
		return nil, err
	}
	out, err := r.run(ctx, "config", "--local", "--get-all", key)
	if err != nil {
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) && cmdErr.ExitCode() == 1 && cmdErr.Stderr == "" {
			return []string{}, nil
		}
		return nil, err
	}
	return parser.ParseConfigValues(out), nil
}

func (r *Repo) ConfigList(ctx context.Context) ([]parser.ConfigEntry, error) {
	out, err := r.run(ctx, "config", "--local", "-l")
	if err != nil {
		return nil, err
	}
	return parser.ParseConfigList(out), nil
}

// LsRemote lists the refs of remote, or of the default remote when empty.
func (r *Repo) LsRemote(ctx context.Context, remote string) ([]parser.LsRemoteEntry, error) {
	if err := notOption("remote", remote); err != nil {
		return nil, err
	}
	args := []string{"ls-remote"}
	if remote != "" {
		args = append(args, remote)
	}
	out, err := r.run(ctx, args...)
	if err != nil {
		return nil, err
	}
	return parser.ParseLsRemote(out), nil
}

// StashShow lists the files of stash, the latest entry when empty.
func (r *Repo) StashShow(ctx context.Context, stash string) ([]parser.StashFile, error) {
	if err := notOption("stash", stash); err != nil {
		return nil, err
	}
	args := []string{"stash", "show", "--stat"}
	if stash != "" {
		args = append(args, stash)
	}
	out, err := r.run(ctx, args...)
	if err != nil {
		return nil, err
	}
	return parser.ParseStashShow(out), nil
}

func (r *Repo) Commit(ctx context.Context, message string, allowEmpty bool) (parser.CommitResult, error) {
	if message == "" {
		return parser.CommitResult{}, ErrEmptyMessage
	}
	args := []string{"commit", "-m", message}
	if allowEmpty {
		args = append(args, "--allow-empty")
	}
	out, err := r.run(ctx, args...)
	if err != nil {
		return parser.CommitResult{}, err
	}
	res, err := parser.ParseCommitResult(out)
	if err != nil {
		return parser.CommitResult{}, fmt.Errorf("commit: %w", err)
	}
	return res, nil
}

// Push pushes branch to remote ("origin" when empty). An empty branch lets
// git apply its push.default rule.
func (r *Repo) Push(ctx context.Context, remote, branch string) error {
	if err := notOption("remote", remote); err != nil {
		return err
	}
	if err := notOption("branch", branch); err != nil {
		return err
	}
	if remote == "" {
		remote = "origin"
	}
	args := []string{"push", remote}
	if branch != "" {
		args = append(args, branch)
	}
	_, err := r.run(ctx, args...)
	return err
}

func (r *Repo) Add(ctx context.Context, path string) error {
	if err := required("path", path); err != nil {
		return err
	}
	_, err := r.run(ctx, "add", "--", path)
	return err
}

func (r *Repo) Remove(ctx context.Context, path string) error {
	if err := required("path", path); err != nil {
		return err
	}
	_, err := r.run(ctx, "rm", "-rf", "--", path)
	return err
}

// Clone clones remote into workDir/name.
func Clone(ctx context.Context, r Runner, workDir, remote, name string, bare bool) error {
	if err := required("remote", remote); err != nil {
		return err
	}
	if err := required("repo", name); err != nil {
		return err
	}
	args := []string{"clone"}
	if bare {
		args = append(args, "--bare")
	}
	args = append(args, "--", remote, name)
	_, err := r.Run(ctx, workDir, args...)
	return err
}
