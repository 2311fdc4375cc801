package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"strings"
	"time"
)

// Runner executes one git command and returns its stdout.
// An empty dir runs git in the process working directory.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// CommandError is returned when git exits with a non-zero status.
type CommandError struct {
	Args   []string
	Stdout string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		msg = strings.TrimSpace(e.Stdout)
	}
	if msg == "" {
		return fmt.Sprintf("git %s: %v", strings.Join(e.Args, " "), e.Err)
	}
	return fmt.Sprintf("git %s: %s", strings.Join(e.Args, " "), msg)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit status of git, or -1 when it did not exit normally.
func (e *CommandError) ExitCode() int {
	var coder interface{ ExitCode() int }
	if errors.As(e.Err, &coder) {
		return coder.ExitCode()
	}
	return -1
}

// CLI runs the git executable.
type CLI struct {
	Binary  string
	Timeout time.Duration
	Verbose bool
}

// NewCLI returns a runner for binary; "git" when empty.
func NewCLI(binary string, timeout time.Duration, verbose bool) *CLI {
	if binary == "" {
		binary = "git"
	}
	return &CLI{Binary: binary, Timeout: timeout, Verbose: verbose}
}

func (c *CLI) Run(ctx context.Context, dir string, args ...string) (string, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	cmdArgs := args
	if dir != "" {
		cmdArgs = append([]string{"-C", dir}, args...)
	}
	if c.Verbose {
		log.Printf("git %s", strings.Join(cmdArgs, " "))
	}

	cmd := exec.CommandContext(ctx, c.Binary, cmdArgs...)
	// Parsers expect untranslated output and no prompts.
	cmd.Env = append(cmd.Environ(), "LC_ALL=C", "GIT_PAGER=cat", "GIT_TERMINAL_PROMPT=0")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return stdout.String(), &CommandError{
			Args:   args,
			Stdout: stdout.String(),
			Stderr: stderr.String(),
			Err:    err,
		}
	}
	return stdout.String(), nil
}
