package git

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

var versionRe = regexp.MustCompile(`git version (\d+(?:\.\d+)+)`)

// Version returns the numeric version reported by `git --version`,
// e.g. "2.44.0" for "git version 2.44.0 (Apple Git-146)".
func Version(ctx context.Context, r Runner) (string, error) {
	out, err := r.Run(ctx, "", "--version")
	if err != nil {
		return "", err
	}
	m := versionRe.FindStringSubmatch(out)
	if m == nil {
		return "", fmt.Errorf("unable to parse git version output: %q", strings.TrimSpace(out))
	}
	return m[1], nil
}
