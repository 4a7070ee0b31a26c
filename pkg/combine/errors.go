package combine

import (
	"errors"
	"fmt"
)

// Kind classifies a combine failure by how the pipeline reacts to it.
type Kind int

const (
	KindEnvironment Kind = iota + 1 // root directory cannot be resolved or named
	KindConfig                      // ignore or config files cannot be loaded
	KindWalk                        // a directory entry cannot be read
	KindOpen                        // an input file cannot be opened
	KindRead                        // an input file fails mid-read for reasons other than decoding
	KindRecord                      // a record cannot be decoded
	KindOutput                      // the output cannot be created, written or flushed
)

func (k Kind) String() string {
	switch k {
	case KindEnvironment:
		return "environment"
	case KindConfig:
		return "config"
	case KindWalk:
		return "walk"
	case KindOpen:
		return "open"
	case KindRead:
		return "read"
	case KindRecord:
		return "record"
	case KindOutput:
		return "output"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Recoverable reports whether errors of this kind are skipped and logged
// instead of aborting the run.
func (k Kind) Recoverable() bool {
	return k == KindWalk || k == KindRecord
}

// Error is the error type returned by the combine pipeline.
type Error struct {
	Kind Kind
	Op   string // what was being attempted, e.g. "open input"
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Recoverable reports whether err is a combine error the pipeline skips past.
// Errors that are not *Error are treated as fatal.
func Recoverable(err error) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind.Recoverable()
	}
	return false
}

// KindOf returns the Kind of err, or 0 if err is not a combine error.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return 0
}

func newError(kind Kind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}
