package vault

import "errors"

var (
	ErrNoteExists       = errors.New("note already exists")
	ErrNoteNotFound     = errors.New("note not found")
	ErrInvalidPath      = errors.New("invalid note path")
	ErrKeyNotFound      = errors.New("frontmatter key not found")
	ErrKeyExists        = errors.New("frontmatter key already exists")
	ErrVaultUnavailable = errors.New("vault unavailable")
	ErrInvalidArguments = errors.New("invalid arguments")
)

// Process exit codes shared by the command line and the assistant tools.
const (
	ExitOK               = 0
	ExitFailure          = 1
	ExitNoteExists       = 1
	ExitNotFound         = 2
	ExitKeyNotFound      = 4
	ExitKeyExists        = 5
	ExitInvalidArguments = 6
)

// ExitCode maps an error onto the exit-code space. Nil maps to ExitOK and
// unclassified errors to ExitFailure.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrNoteNotFound):
		return ExitNotFound
	case errors.Is(err, ErrNoteExists):
		return ExitNoteExists
	case errors.Is(err, ErrKeyNotFound):
		return ExitKeyNotFound
	case errors.Is(err, ErrKeyExists):
		return ExitKeyExists
	case errors.Is(err, ErrInvalidPath), errors.Is(err, ErrInvalidArguments):
		return ExitInvalidArguments
	default:
		return ExitFailure
	}
}
