package workspace

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
)

var repoNameRe = regexp.MustCompile(`^[-._a-zA-Z0-9]+$`)

// ValidName checks a repository name: letters, digits, '-', '_' and '.',
// but not "." or "..".
func ValidName(name string) error {
	if !repoNameRe.MatchString(name) || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// RepoNameFromURL derives a local repository name from a clone address:
// the last path segment without a ".git" suffix.
//
//	https://github.com/user/project.git -> project
//	git@github.com:user/project.git     -> project
//	/srv/repos/project/                 -> project
func RepoNameFromURL(remote string) (string, error) {
	ep, err := transport.NewEndpoint(remote)
	if err != nil {
		return "", fmt.Errorf("parse remote %q: %w", remote, err)
	}
	p := strings.TrimRight(ep.Path, "/")
	name := strings.TrimSuffix(path.Base(p), ".git")
	if err := ValidName(name); err != nil {
		return "", err
	}
	return name, nil
}

// CleanPath normalizes a path inside a repository: leading slashes and ".."
// segments cannot leave it, and its .git directory is off limits. The
// repository root itself is "".
func CleanPath(p string) (string, error) {
	cleaned := strings.TrimPrefix(path.Clean("/"+p), "/")
	first, _, _ := strings.Cut(cleaned, "/")
	if first == ".git" {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	return cleaned, nil
}
