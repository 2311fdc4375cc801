// Package gittest provides a scripted git.Runner for tests.
package gittest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/kurobon/gitrest/internal/git"
)

// Call records one invocation seen by Runner.
type Call struct {
	Dir  string
	Args []string
}

// ExitError carries a process exit status.
type ExitError int

func (e ExitError) Error() string { return fmt.Sprintf("exit status %d", int(e)) }

func (e ExitError) ExitCode() int { return int(e) }

// Runner answers commands from canned outputs keyed by the space-joined
// argument list. Unknown commands fail like git does for a bad subcommand.
type Runner struct {
	mu      sync.Mutex
	outputs map[string]string
	errors  map[string]error
	calls   []Call
}

func NewRunner() *Runner {
	return &Runner{outputs: make(map[string]string), errors: make(map[string]error)}
}

// On scripts the stdout of a command.
func (r *Runner) On(cmdline, stdout string) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outputs[cmdline] = stdout
	return r
}

// Fail scripts a failing command with the given exit status and stderr.
func (r *Runner) Fail(cmdline string, code int, stderr string) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors[cmdline] = &git.CommandError{
		Args:   strings.Fields(cmdline),
		Stderr: stderr,
		Err:    ExitError(code),
	}
	return r
}

func (r *Runner) Run(_ context.Context, dir string, args ...string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Dir: dir, Args: append([]string(nil), args...)})

	key := strings.Join(args, " ")
	if err, ok := r.errors[key]; ok {
		return "", err
	}
	if out, ok := r.outputs[key]; ok {
		return out, nil
	}
	return "", &git.CommandError{
		Args:   args,
		Stderr: fmt.Sprintf("unscripted command: git %s", key),
		Err:    ExitError(128),
	}
}

// Calls returns the invocations so far.
func (r *Runner) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Commands returns the space-joined argument list of each invocation.
func (r *Runner) Commands() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	cmds := make([]string, len(r.calls))
	for i, c := range r.calls {
		cmds[i] = strings.Join(c.Args, " ")
	}
	return cmds
}
