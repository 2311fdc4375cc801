package parser

import "errors"

var (
	// ErrMalformedHeader reports a structural header line (diff --git) that
	// does not have the expected shape.
	ErrMalformedHeader = errors.New("malformed header")
	// ErrMalformedHunk reports an @@ marker whose ranges cannot be read.
	ErrMalformedHunk = errors.New("malformed hunk marker")
	// ErrUnexpectedOutput reports a confirmation line that does not match,
	// which means the command itself did not do what was asked.
	ErrUnexpectedOutput = errors.New("unexpected command output")
)
