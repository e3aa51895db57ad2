package dispatch

import (
	"errors"
	"fmt"
)

// ErrUnknownIntent is returned by Dispatch for intents without a handler.
var ErrUnknownIntent = errors.New("unknown intent")

// FileError reports a failed read or write. The command that hit it is
// aborted and the session is left as it was.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }
